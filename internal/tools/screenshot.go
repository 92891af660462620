package tools

import (
	"context"
	"fmt"
	"os"
	"sync"

	z "github.com/Oudwins/zog"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/negokaz/office-server/internal/com"
	"github.com/negokaz/office-server/internal/office"
	"github.com/negokaz/office-server/internal/screenshot"
)

// Screenshot is an image result. MCP clients receive it as image content.
type Screenshot struct {
	*screenshot.Image
	Source string `json:"source"`
}

func (s *Screenshot) Caption() string {
	return fmt.Sprintf("%s (%dx%d)", s.Source, s.Width, s.Height)
}

func maxWidthParam() mcp.ToolOption {
	return mcp.WithNumber("max_width",
		mcp.Description("Scale the image down to this width in pixels"),
	)
}

var maxWidthSchema = z.Int().GTE(0)

// exportImage has the application write a PNG to a temporary file and reads
// it back. A job still running when the call gives up removes the file
// itself once the export finishes.
func exportImage[T any](ctx context.Context, capturer *screenshot.Capturer, session *office.Session, prefix string, maxWidth int, export func(app com.Object, path string) (T, error)) (*screenshot.Image, T, error) {
	var zero T
	path, err := capturer.TempFile(prefix)
	if err != nil {
		return nil, zero, err
	}
	var (
		mu        sync.Mutex
		abandoned bool
	)
	result, err := do(ctx, session, func(app com.Object) (T, error) {
		result, err := export(app, path)
		mu.Lock()
		defer mu.Unlock()
		if abandoned {
			os.Remove(path)
		}
		return result, err
	})
	if err != nil {
		mu.Lock()
		abandoned = true
		os.Remove(path)
		mu.Unlock()
		return nil, zero, err
	}
	img, err := capturer.FromFile(path, maxWidth)
	if err != nil {
		return nil, zero, err
	}
	return img, result, nil
}
