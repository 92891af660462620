package tools

import (
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/negokaz/office-server/internal/com"
)

func fontParams() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("font_name",
			mcp.Description("Font name (e.g., \"Arial\")"),
		),
		mcp.WithNumber("font_size",
			mcp.Description("Font size in points"),
		),
		mcp.WithBoolean("bold",
			mcp.Description("Bold on or off"),
		),
		mcp.WithBoolean("italic",
			mcp.Description("Italic on or off"),
		),
		mcp.WithBoolean("underline",
			mcp.Description("Single underline on or off"),
		),
		mcp.WithString("color",
			mcp.Description("Font color as #RRGGBB"),
		),
	}
}

// withAny declares a property that accepts any JSON type.
func withAny(name, description string, required bool) mcp.ToolOption {
	return func(t *mcp.Tool) {
		t.InputSchema.Properties[name] = map[string]any{"description": description}
		if required {
			t.InputSchema.Required = append(t.InputSchema.Required, name)
		}
	}
}

func withParams(groups ...[]mcp.ToolOption) []mcp.ToolOption {
	var all []mcp.ToolOption
	for _, g := range groups {
		all = append(all, g...)
	}
	return all
}

func oneOf(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = fmt.Sprintf("%q", v)
	}
	return strings.Join(quoted, ", ")
}

// table reads an array of arrays from the raw arguments. JSON arrays decode
// to []any, so this is done by hand instead of through a schema.
func table(args map[string]any, key string) ([][]any, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return nil, nil
	}
	outer, ok := raw.([]any)
	if !ok {
		return nil, &ArgumentError{Issues: map[string][]string{key: {"must be an array of rows"}}}
	}
	rows := make([][]any, len(outer))
	for i, row := range outer {
		switch r := row.(type) {
		case []any:
			rows[i] = r
		case nil:
			rows[i] = nil
		default:
			return nil, &ArgumentError{Issues: map[string][]string{key: {fmt.Sprintf("row %d is not an array", i+1)}}}
		}
	}
	return rows, nil
}

func textTable(rows [][]any) [][]string {
	if rows == nil {
		return nil
	}
	out := make([][]string, len(rows))
	for i, row := range rows {
		out[i] = make([]string, len(row))
		for j, v := range row {
			out[i][j] = com.ToString(v)
		}
	}
	return out
}
