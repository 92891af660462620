// Package mcp builds tool results shared by the MCP and HTTP surfaces.
package mcp

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	z "github.com/Oudwins/zog"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/pkg/errors"
)

// firstIssueKey duplicates the first issue of the map.
const firstIssueKey = "$first"

// Issues flattens zog issues to field -> messages.
func Issues(issues z.ZogIssueMap) map[string][]string {
	out := make(map[string][]string, len(issues))
	for field, list := range issues {
		if field == firstIssueKey {
			continue
		}
		for _, issue := range list {
			out[field] = append(out[field], issue.Message)
		}
	}
	return out
}

// FormatIssues renders issues one field per line, fields sorted.
func FormatIssues(issues map[string][]string) string {
	fields := make([]string, 0, len(issues))
	for field := range issues {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	var b strings.Builder
	for _, field := range fields {
		fmt.Fprintf(&b, "- %s: %s\n", field, strings.Join(issues[field], ", "))
	}
	return b.String()
}

func NewToolResultZogIssueMap(issues z.ZogIssueMap) *mcp.CallToolResult {
	return mcp.NewToolResultError("Invalid arguments:\n" + FormatIssues(Issues(issues)))
}

func NewToolResultInvalidArgumentError(message string) *mcp.CallToolResult {
	return mcp.NewToolResultError("Invalid argument: " + message)
}

// NewToolResultJSON returns v as indented JSON text.
func NewToolResultJSON(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal result")
	}
	return mcp.NewToolResultText(string(data)), nil
}

// NewToolResultPNG returns a base64 PNG with a caption.
func NewToolResultPNG(caption, data string) *mcp.CallToolResult {
	return mcp.NewToolResultImage(caption, data, "image/png")
}
