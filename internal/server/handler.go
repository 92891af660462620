package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.alis.build/alog"

	"github.com/negokaz/office-server/internal/com"
	"github.com/negokaz/office-server/internal/office"
	"github.com/negokaz/office-server/internal/tools"
)

var errInvalidJSON = errors.New("request body is not a JSON object")

// arguments merges the JSON body of a request with its query parameters.
// Body values win over query values of the same name.
func arguments(c *gin.Context) (map[string]any, error) {
	args := map[string]any{}
	if c.Request.Body != nil {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			return nil, errors.Wrap(err, "failed to read request body")
		}
		if strings.TrimSpace(string(body)) != "" {
			if err := json.Unmarshal(body, &args); err != nil {
				return nil, errors.Wrap(errInvalidJSON, err.Error())
			}
			if args == nil {
				args = map[string]any{}
			}
		}
	}
	for key, values := range c.Request.URL.Query() {
		if _, ok := args[key]; ok || len(values) == 0 {
			continue
		}
		args[key] = values[0]
	}
	return args, nil
}

func handle(tool tools.Tool) gin.HandlerFunc {
	return func(c *gin.Context) {
		args, err := arguments(c)
		if err != nil {
			fail(c, http.StatusBadRequest, err, nil)
			return
		}
		result, err := tool.Handler(c.Request.Context(), args)
		if err != nil {
			var argErr *tools.ArgumentError
			if errors.As(err, &argErr) {
				fail(c, http.StatusBadRequest, err, argErr.Issues)
				return
			}
			fail(c, statusOf(err), err, nil)
			return
		}
		body, err := flatten(result)
		if err != nil {
			fail(c, http.StatusInternalServerError, err, nil)
			return
		}
		c.JSON(http.StatusOK, body)
	}
}

// statusOf maps a tool error to an HTTP status.
func statusOf(err error) int {
	switch {
	case errors.Is(err, office.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, office.ErrOutOfRange):
		return http.StatusNotFound
	case errors.Is(err, office.ErrNotLaunched), errors.Is(err, office.ErrNoDocument):
		return http.StatusConflict
	case errors.Is(err, com.ErrCallTimeout), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// flatten merges the JSON fields of result into a success body. Results
// that are not JSON objects are returned under "result".
func flatten(result any) (map[string]any, error) {
	body := map[string]any{}
	if result != nil {
		data, err := json.Marshal(result)
		if err != nil {
			return nil, errors.Wrap(err, "failed to marshal result")
		}
		if err := json.Unmarshal(data, &body); err != nil || body == nil {
			var value any
			if err := json.Unmarshal(data, &value); err != nil {
				return nil, errors.Wrap(err, "failed to marshal result")
			}
			body = map[string]any{"result": value}
		}
	}
	body["success"] = true
	return body, nil
}

type failure struct {
	Success bool                `json:"success"`
	Error   string              `json:"error"`
	Issues  map[string][]string `json:"issues,omitempty"`
}

func fail(c *gin.Context, status int, err error, issues map[string][]string) {
	if status >= http.StatusInternalServerError {
		alog.Errorf(c.Request.Context(), "%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.AbortWithStatusJSON(status, failure{Error: err.Error(), Issues: issues})
}
