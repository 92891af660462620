package mcp

import (
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatIssues(t *testing.T) {
	got := FormatIssues(map[string][]string{
		"text": {"is required"},
		"cell": {"is required", "must be a string"},
	})
	assert.Equal(t, "- cell: is required, must be a string\n- text: is required\n", got)
	assert.Empty(t, FormatIssues(nil))
}

func TestNewToolResultInvalidArgumentError(t *testing.T) {
	result := NewToolResultInvalidArgumentError("unknown chart type \"donut\"")
	assert.True(t, result.IsError)
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	assert.Equal(t, "Invalid argument: unknown chart type \"donut\"", text.Text)
}

func TestNewToolResultJSON(t *testing.T) {
	result, err := NewToolResultJSON(map[string]any{"count": 2})
	require.NoError(t, err)
	assert.False(t, result.IsError)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	assert.JSONEq(t, `{"count": 2}`, text.Text)
}

func TestNewToolResultPNG(t *testing.T) {
	result := NewToolResultPNG("slide 1", "iVBORw0KGgo=")
	require.Len(t, result.Content, 2)
	image, ok := result.Content[1].(mcp.ImageContent)
	require.True(t, ok)
	assert.Equal(t, "image/png", image.MIMEType)
	assert.Equal(t, "iVBORw0KGgo=", image.Data)
}
