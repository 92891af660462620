package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/negokaz/office-server/internal/com"
	"github.com/negokaz/office-server/internal/com/comtest"
	"github.com/negokaz/office-server/internal/office"
	"github.com/negokaz/office-server/internal/screenshot"
	"github.com/negokaz/office-server/internal/tools"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fixture struct {
	handler    http.Handler
	toolbox    *tools.Toolbox
	powerPoint *comtest.Object
}

func newFixture(t *testing.T, mcp bool) *fixture {
	t.Helper()
	apartment, err := com.OpenApartment(nil, nil)
	require.NoError(t, err)
	t.Cleanup(apartment.Close)

	f := &fixture{powerPoint: comtest.New("app")}
	f.toolbox = &tools.Toolbox{
		Word:       office.NewSession(office.Word, apartment, &comtest.Connector{App: comtest.New("app").Set("Version", "16.0")}, office.Options{}),
		Excel:      office.NewSession(office.Excel, apartment, &comtest.Connector{App: comtest.New("app")}, office.Options{}),
		PowerPoint: office.NewSession(office.PowerPoint, apartment, &comtest.Connector{App: f.powerPoint}, office.Options{}),
		Capturer:   &screenshot.Capturer{TempDir: t.TempDir()},
	}
	f.handler = New("1.2.3", f.toolbox, Options{MCP: mcp}).Handler()
	return f
}

func (f *fixture) do(t *testing.T, method, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	decoded := map[string]any{}
	if rec.Body.Len() > 0 && strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded), rec.Body.String())
	}
	return rec, decoded
}

func TestHealth(t *testing.T) {
	f := newFixture(t, false)

	rec, body := f.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "running", body["status"])
	assert.Equal(t, "1.2.3", body["version"])
	assert.Equal(t, map[string]any{"word": false, "excel": false, "powerpoint": false}, body["applications"])

	rec, body = f.do(t, http.MethodPost, "/word/launch", "")
	require.Equal(t, http.StatusOK, rec.Code, body)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, office.Word, body["application"])
	assert.Equal(t, "16.0", body["version"])

	_, body = f.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, map[string]any{"word": true, "excel": false, "powerpoint": false}, body["applications"])
}

func TestListTools(t *testing.T) {
	f := newFixture(t, false)

	rec, body := f.do(t, http.MethodGet, "/tools", "")
	require.Equal(t, http.StatusOK, rec.Code)
	list, ok := body["tools"].([]any)
	require.True(t, ok)
	assert.Len(t, list, len(f.toolbox.Tools()))

	paths := map[string]string{}
	for _, item := range list {
		e := item.(map[string]any)
		paths[e["path"].(string)] = e["method"].(string)
	}
	assert.Equal(t, http.MethodPost, paths["/excel/set_formula"])
	assert.Equal(t, http.MethodGet, paths["/powerpoint/get_slide_count"])
}

func TestNotLaunched(t *testing.T) {
	f := newFixture(t, false)

	rec, body := f.do(t, http.MethodPost, "/word/write", `{"text": "Hello"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["error"], "not launched")
}

func TestInvalidArguments(t *testing.T) {
	f := newFixture(t, false)

	rec, body := f.do(t, http.MethodPost, "/excel/set_formula", `{"formula": "=SUM(D2:D4)"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, false, body["success"])
	issues, ok := body["issues"].(map[string]any)
	require.True(t, ok, body)
	assert.Contains(t, issues, "cell")
}

func TestInvalidJSON(t *testing.T) {
	f := newFixture(t, false)

	rec, body := f.do(t, http.MethodPost, "/word/write", `{"text": `)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, body["error"], "not a JSON object")
}

func TestQueryArguments(t *testing.T) {
	f := newFixture(t, false)
	f.powerPoint.Path("Presentations").Set("Count", int32(1))
	f.powerPoint.Path("ActivePresentation", "Slides").Set("Count", int32(3))

	rec, _ := f.do(t, http.MethodPost, "/powerpoint/launch", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec, body := f.do(t, http.MethodGet, "/powerpoint/get_slide_count", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{"success": true, "count": 3.0}, body)

	rec, body = f.do(t, http.MethodPost, "/powerpoint/delete_slide?slide=9", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, body["error"], "slide 9 does not exist")

	rec, _ = f.do(t, http.MethodPost, "/powerpoint/delete_slide?slide=9", `{"slide": 2}`)
	assert.Equal(t, http.StatusOK, rec.Code, "body wins over the query")
	assert.Contains(t, f.powerPoint.Log(), "call app.ActivePresentation.Slides.Item(2).Delete()")
}

func TestRequestID(t *testing.T) {
	f := newFixture(t, false)

	rec, _ := f.do(t, http.MethodGet, "/health", "")
	assert.Len(t, rec.Header().Get(RequestIDHeader), 36)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "abc")
	rec = httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	assert.Equal(t, "abc", rec.Header().Get(RequestIDHeader))
}

func TestUnknownRoute(t *testing.T) {
	f := newFixture(t, false)

	rec, body := f.do(t, http.MethodGet, "/excel/nothing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, false, body["success"])

	rec, body = f.do(t, http.MethodGet, "/word/write", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, false, body["success"])

	rec, _ = f.do(t, http.MethodPost, "/mcp", "{}")
	assert.Equal(t, http.StatusNotFound, rec.Code, "MCP is not mounted")
}

func TestMCPEndpoint(t *testing.T) {
	f := newFixture(t, true)

	req := httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader(`{
		"jsonrpc": "2.0", "id": 1, "method": "initialize",
		"params": {"protocolVersion": "2025-03-26", "capabilities": {}, "clientInfo": {"name": "test", "version": "1"}}
	}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/event-stream")
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), Name)
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{office.InvalidArgument("bad color"), http.StatusBadRequest},
		{office.OutOfRange("slide 4"), http.StatusNotFound},
		{errors.Wrap(office.ErrNotLaunched, office.Excel), http.StatusConflict},
		{office.ErrNoDocument, http.StatusConflict},
		{com.ErrCallTimeout, http.StatusGatewayTimeout},
		{errors.Wrap(context.DeadlineExceeded, "wait"), http.StatusGatewayTimeout},
		{errors.New("Range.Value: exception occurred"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusOf(tt.err), tt.err.Error())
	}
}

func TestFlatten(t *testing.T) {
	body, err := flatten(&tools.Message{Message: "Text written"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"success": true, "message": "Text written"}, body)

	body, err = flatten([]string{"Sheet1", "Sheet2"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"success": true, "result": []any{"Sheet1", "Sheet2"}}, body)

	body, err = flatten(nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"success": true}, body)
}

func TestCORSPreflight(t *testing.T) {
	f := newFixture(t, false)
	preflight := func(t *testing.T, handler http.Handler, origin string) *httptest.ResponseRecorder {
		t.Helper()
		req := httptest.NewRequest(http.MethodOptions, "/word/write", nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		req.Header.Set("Access-Control-Request-Headers", "Content-Type")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	t.Run("any origin", func(t *testing.T) {
		handler := New("1.2.3", f.toolbox, Options{CORSOrigins: []string{"*"}}).Handler()
		rec := preflight(t, handler, "http://localhost:3000")
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
	})
	t.Run("listed origins", func(t *testing.T) {
		handler := New("1.2.3", f.toolbox, Options{CORSOrigins: []string{"http://localhost:3000"}}).Handler()
		rec := preflight(t, handler, "http://localhost:3000")
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))

		rec = preflight(t, handler, "http://evil.example")
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})
	t.Run("disabled", func(t *testing.T) {
		rec := preflight(t, f.handler, "http://localhost:3000")
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})
	t.Run("simple request", func(t *testing.T) {
		handler := New("1.2.3", f.toolbox, Options{CORSOrigins: []string{"*"}}).Handler()
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, rec.Header().Get("Access-Control-Expose-Headers"), RequestIDHeader)
	})
}
