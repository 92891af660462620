// Package smoke drives a running server through every feature of Word,
// Excel and PowerPoint and reports each call, for manual verification on a
// machine with Office installed.
package smoke

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
)

var (
	// ErrServerDown is returned when the health check fails.
	ErrServerDown = errors.New("server not running")
	// ErrFailed is returned when at least one step did not succeed.
	ErrFailed = errors.New("smoke test failed")
)

const rule = "=================================================="

// Step is one request of a suite.
type Step struct {
	Method string
	Path   string
	Body   map[string]any
	// Report prints extra lines about a successful result.
	Report func(w io.Writer, result map[string]any)
}

type Section struct {
	Name  string
	Steps []Step
}

type Suite struct {
	Title    string
	Sections []Section
}

type Runner struct {
	BaseURL string
	Client  *http.Client
	Out     io.Writer
	// LaunchPause is waited after each launch request.
	LaunchPause time.Duration
	// SuitePause is waited between suites.
	SuitePause time.Duration

	failures int
}

// Run checks health, then runs the suites in order.
func (r *Runner) Run(ctx context.Context, suites []Suite) error {
	r.failures = 0
	fmt.Fprintln(r.Out, strings.Repeat("=", 60))
	fmt.Fprintln(r.Out, "Office Automation Server - Comprehensive Feature Test")
	fmt.Fprintln(r.Out, strings.Repeat("=", 60))

	fmt.Fprintln(r.Out, "\n=== Health Check ===")
	health := r.call(ctx, Step{Method: http.MethodGet, Path: "/health"})
	if success, _ := health["success"].(bool); !success {
		fmt.Fprintln(r.Out, "\n[ERROR] Server not running! Please start the server first.")
		return errors.Wrap(ErrServerDown, r.BaseURL)
	}
	fmt.Fprintf(r.Out, "\nServer Status: %v\n", health["status"])
	fmt.Fprintf(r.Out, "Version: %v\n", health["version"])

	for i, suite := range suites {
		if i > 0 {
			if err := sleep(ctx, r.SuitePause); err != nil {
				return err
			}
		}
		if err := r.runSuite(ctx, suite); err != nil {
			return err
		}
	}

	fmt.Fprintln(r.Out, "\n"+strings.Repeat("=", 60))
	fmt.Fprintln(r.Out, "All tests completed!")
	fmt.Fprintln(r.Out, strings.Repeat("=", 60))
	if r.failures > 0 {
		return errors.Wrapf(ErrFailed, "%d step(s) failed", r.failures)
	}
	return nil
}

func (r *Runner) runSuite(ctx context.Context, suite Suite) error {
	fmt.Fprintln(r.Out, "\n"+rule)
	fmt.Fprintf(r.Out, "=== Microsoft %s Tests ===\n", suite.Title)
	fmt.Fprintln(r.Out, rule)
	for _, section := range suite.Sections {
		fmt.Fprintf(r.Out, "\n--- %s ---\n", section.Name)
		for _, step := range section.Steps {
			if err := ctx.Err(); err != nil {
				return err
			}
			result := r.call(ctx, step)
			if success, _ := result["success"].(bool); success && step.Report != nil {
				step.Report(r.Out, result)
			}
			if strings.HasSuffix(step.Path, "/launch") {
				if err := sleep(ctx, r.LaunchPause); err != nil {
					return err
				}
			}
		}
	}
	fmt.Fprintf(r.Out, "\n[%s Tests Complete]\n", suite.Title)
	return nil
}

// call sends a step and prints its outcome. Transport failures are reported
// as a failed result.
func (r *Runner) call(ctx context.Context, step Step) map[string]any {
	result, err := r.send(ctx, step)
	if err != nil {
		r.failures++
		fmt.Fprintf(r.Out, "  [ERROR] %s %s: %v\n", step.Method, step.Path, err)
		return map[string]any{"success": false, "error": err.Error()}
	}
	success, _ := result["success"].(bool)
	status := "OK"
	if !success {
		status = "FAIL"
		r.failures++
	}
	fmt.Fprintf(r.Out, "  [%s] %s %s\n", status, step.Method, step.Path)
	if !success {
		message := result["error"]
		if message == nil {
			message = result["message"]
		}
		if message == nil {
			message = "Unknown"
		}
		fmt.Fprintf(r.Out, "       Error: %v\n", message)
	}
	return result
}

func (r *Runner) send(ctx context.Context, step Step) (map[string]any, error) {
	var body io.Reader
	if step.Body != nil {
		data, err := json.Marshal(step.Body)
		if err != nil {
			return nil, errors.Wrap(err, "failed to encode request")
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, step.Method, strings.TrimRight(r.BaseURL, "/")+step.Path, body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	client := r.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	result := map[string]any{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, errors.Wrapf(err, "HTTP %d with a body that is not JSON", resp.StatusCode)
	}
	return result, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
