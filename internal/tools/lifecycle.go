package tools

import (
	"context"
	"fmt"

	z "github.com/Oudwins/zog"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/negokaz/office-server/internal/com"
	"github.com/negokaz/office-server/internal/office"
)

type OpenArguments struct {
	Path string `zog:"path"`
}

var openArgumentsSchema = z.Struct(z.Shape{
	"path": z.String().Required(),
})

type SaveArguments struct {
	Path string `zog:"path"`
}

var saveArgumentsSchema = z.Struct(z.Shape{
	"path": z.String(),
})

type CloseArguments struct {
	Save bool `zog:"save"`
}

var closeArgumentsSchema = z.Struct(z.Shape{
	"save": z.Bool().Default(false),
})

// documents are the lifecycle functions of one application package.
type documents[T any] struct {
	name    string // "document", "workbook", "presentation"
	create  func(app com.Object) (T, error)
	open    func(app com.Object, path string) (T, error)
	save    func(app com.Object, path string) (T, error)
	close   func(app com.Object, save bool) (T, error)
	session *office.Session
}

// lifecycleTools builds launch, create, open, save, close and quit for an
// application mounted under prefix.
func lifecycleTools[T any](prefix, label string, d documents[T]) []Tool {
	return []Tool{
		post(prefix+"/launch", fmt.Sprintf("Launch %s or attach to the running instance", label),
			func(ctx context.Context, args map[string]any) (any, error) {
				return d.session.Launch(ctx)
			}),
		post(prefix+"/create", fmt.Sprintf("Create a new %s", d.name),
			func(ctx context.Context, args map[string]any) (any, error) {
				return do(ctx, d.session, d.create)
			}),
		post(prefix+"/open", fmt.Sprintf("Open a %s file", d.name),
			func(ctx context.Context, args map[string]any) (any, error) {
				a := OpenArguments{}
				if err := parse(openArgumentsSchema, args, &a); err != nil {
					return nil, err
				}
				if err := checkOpenPath(a.Path); err != nil {
					return nil, err
				}
				return do(ctx, d.session, func(app com.Object) (T, error) {
					return d.open(app, a.Path)
				})
			},
			mcp.WithString("path",
				mcp.Required(),
				mcp.Description("Absolute path to the file"),
			),
		),
		post(prefix+"/save", fmt.Sprintf("Save the active %s, optionally under a new path", d.name),
			func(ctx context.Context, args map[string]any) (any, error) {
				a := SaveArguments{}
				if err := parse(saveArgumentsSchema, args, &a); err != nil {
					return nil, err
				}
				if err := checkSavePath(a.Path); err != nil {
					return nil, err
				}
				return do(ctx, d.session, func(app com.Object) (T, error) {
					return d.save(app, a.Path)
				})
			},
			mcp.WithString("path",
				mcp.Description("Absolute path to save to; omitted saves in place"),
			),
		),
		post(prefix+"/close", fmt.Sprintf("Close the active %s", d.name),
			func(ctx context.Context, args map[string]any) (any, error) {
				a := CloseArguments{}
				if err := parse(closeArgumentsSchema, args, &a); err != nil {
					return nil, err
				}
				return do(ctx, d.session, func(app com.Object) (T, error) {
					return d.close(app, a.Save)
				})
			},
			mcp.WithBoolean("save",
				mcp.Description("Save changes before closing (default false)"),
			),
		),
		post(prefix+"/quit", fmt.Sprintf("Quit %s without saving", label),
			func(ctx context.Context, args map[string]any) (any, error) {
				return done(label+" closed", d.session.Quit(ctx))
			}),
	}
}
