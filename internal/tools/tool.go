// Package tools defines every endpoint of the server once: its route, its
// argument schema and the Office call it makes. The HTTP and MCP surfaces
// are both built from the same list.
package tools

import (
	"context"
	"net/http"
	"strings"

	z "github.com/Oudwins/zog"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/pkg/errors"

	"github.com/negokaz/office-server/internal/com"
	imcp "github.com/negokaz/office-server/internal/mcp"
	"github.com/negokaz/office-server/internal/office"
	"github.com/negokaz/office-server/internal/screenshot"
)

// Handler runs a tool with the raw arguments of a request. The result is
// serialised to a JSON object.
type Handler func(ctx context.Context, args map[string]any) (any, error)

type Tool struct {
	Name        string
	Method      string
	Path        string
	Description string
	Params      []mcp.ToolOption
	Handler     Handler
}

func newTool(method, path, description string, handler Handler, params ...mcp.ToolOption) Tool {
	return Tool{
		Name:        strings.ReplaceAll(strings.TrimPrefix(path, "/"), "/", "_"),
		Method:      method,
		Path:        path,
		Description: description,
		Params:      params,
		Handler:     WithRecovery(handler),
	}
}

func get(path, description string, handler Handler, params ...mcp.ToolOption) Tool {
	return newTool(http.MethodGet, path, description, handler, params...)
}

func post(path, description string, handler Handler, params ...mcp.ToolOption) Tool {
	return newTool(http.MethodPost, path, description, handler, params...)
}

// MCPTool describes the tool for MCP clients.
func (t Tool) MCPTool() mcp.Tool {
	options := append([]mcp.ToolOption{mcp.WithDescription(t.Description)}, t.Params...)
	return mcp.NewTool(t.Name, options...)
}

// ArgumentError reports arguments that failed schema validation.
type ArgumentError struct {
	Issues map[string][]string
}

func (e *ArgumentError) Error() string {
	return "invalid arguments:\n" + imcp.FormatIssues(e.Issues)
}

func (e *ArgumentError) Unwrap() error {
	return office.ErrInvalidArgument
}

func parse(schema *z.StructSchema, args map[string]any, dest any) error {
	if args == nil {
		args = map[string]any{}
	}
	if issues := schema.Parse(args, dest); len(issues) != 0 {
		return &ArgumentError{Issues: imcp.Issues(issues)}
	}
	return nil
}

// Toolbox holds what the tools operate on.
type Toolbox struct {
	Word       *office.Session
	Excel      *office.Session
	PowerPoint *office.Session
	Capturer   *screenshot.Capturer
}

// Tools lists every tool, grouped by application.
func (tb *Toolbox) Tools() []Tool {
	var tools []Tool
	tools = append(tools, tb.wordTools()...)
	tools = append(tools, tb.excelTools()...)
	tools = append(tools, tb.powerPointTools()...)
	return tools
}

// Register adds every tool to an MCP server.
func (tb *Toolbox) Register(s *server.MCPServer) {
	for _, tool := range tb.Tools() {
		s.AddTool(tool.MCPTool(), mcpHandler(tool))
	}
}

func mcpHandler(tool Tool) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := tool.Handler(ctx, request.GetArguments())
		var argErr *ArgumentError
		switch {
		case errors.As(err, &argErr):
			return mcp.NewToolResultError("Invalid arguments:\n" + imcp.FormatIssues(argErr.Issues)), nil
		case errors.Is(err, office.ErrInvalidArgument):
			return imcp.NewToolResultInvalidArgumentError(err.Error()), nil
		case err != nil:
			return mcp.NewToolResultError(err.Error()), nil
		}
		if shot, ok := result.(*Screenshot); ok {
			return imcp.NewToolResultPNG(shot.Caption(), shot.Image.Image), nil
		}
		return imcp.NewToolResultJSON(result)
	}
}

// do runs fn on the application of a session.
func do[T any](ctx context.Context, session *office.Session, fn func(app com.Object) (T, error)) (T, error) {
	var result T
	err := session.Do(ctx, func(app com.Object) error {
		var err error
		result, err = fn(app)
		return err
	})
	return result, err
}

// Message is the result of operations that have nothing else to report.
type Message struct {
	Message string `json:"message"`
}

func done(message string, err error) (*Message, error) {
	if err != nil {
		return nil, err
	}
	return &Message{Message: message}, nil
}
