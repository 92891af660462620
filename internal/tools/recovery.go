package tools

import (
	"context"

	"github.com/pkg/errors"
)

// WithRecovery wraps a tool handler with panic recovery.
// If the handler panics, it returns an error instead of crashing the server.
func WithRecovery(handler Handler) Handler {
	return func(ctx context.Context, args map[string]any) (result any, err error) {
		defer func() {
			if r := recover(); r != nil {
				err = errors.Errorf("internal error: %v", r)
				result = nil
			}
		}()
		return handler(ctx, args)
	}
}
