package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hrbridge/pkg/middleware"
)

func testServer(t *testing.T) (*Server, *Registry) {
	t.Helper()
	reg := NewRegistry()
	err := reg.Register(ToolDef{
		Name:        "staffing_get_worker",
		Description: "Fetch one worker.",
		InputSchema: map[string]any{"type": "object", "properties": map[string]any{"workerId": map[string]any{"type": "string"}}},
		Handler: func(_ context.Context, args map[string]any) (string, error) {
			id, _ := args["workerId"].(string)
			if id == "" {
				return "", errors.New("workerId is required")
			}
			return `{"id":"` + id + `"}`, nil
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	return &Server{Registry: reg}, reg
}

func post(t *testing.T, s *Server, body string) Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	var resp Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v (body %q)", err, rec.Body.String())
	}
	return resp
}

func TestInitialize(t *testing.T) {
	s, _ := testServer(t)
	resp := post(t, s, `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`)
	if resp.Error != nil {
		t.Fatalf("error: %+v", resp.Error)
	}
	result := resp.Result.(map[string]any)
	if result["protocolVersion"] == "" {
		t.Fatalf("result = %v", result)
	}
	info := result["serverInfo"].(map[string]any)
	if info["name"] != "hrbridge" {
		t.Fatalf("serverInfo = %v", info)
	}
}

func TestToolsList(t *testing.T) {
	s, _ := testServer(t)
	resp := post(t, s, `{"jsonrpc":"2.0","id":2,"method":"tools/list"}`)
	if resp.Error != nil {
		t.Fatalf("error: %+v", resp.Error)
	}
	tools := resp.Result.(map[string]any)["tools"].([]any)
	if len(tools) != 1 {
		t.Fatalf("got %d tools", len(tools))
	}
	tool := tools[0].(map[string]any)
	if tool["name"] != "staffing_get_worker" || tool["inputSchema"] == nil {
		t.Fatalf("tool = %v", tool)
	}
}

func TestToolsCallSuccess(t *testing.T) {
	s, _ := testServer(t)
	resp := post(t, s, `{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"staffing_get_worker","arguments":{"workerId":"W-42"}}}`)
	if resp.Error != nil {
		t.Fatalf("error: %+v", resp.Error)
	}
	b, _ := json.Marshal(resp.Result)
	var result ToolResult
	if err := json.Unmarshal(b, &result); err != nil {
		t.Fatal(err)
	}
	if result.IsError || len(result.Content) != 1 || !strings.Contains(result.Content[0].Text, "W-42") {
		t.Fatalf("result = %+v", result)
	}
}

func TestToolsCallHandlerErrorIsInBand(t *testing.T) {
	s, _ := testServer(t)
	resp := post(t, s, `{"jsonrpc":"2.0","id":4,"method":"tools/call","params":{"name":"staffing_get_worker","arguments":{}}}`)
	if resp.Error != nil {
		t.Fatalf("handler failure must not be a JSON-RPC error: %+v", resp.Error)
	}
	b, _ := json.Marshal(resp.Result)
	var result ToolResult
	_ = json.Unmarshal(b, &result)
	if !result.IsError {
		t.Fatalf("result = %+v, want IsError", result)
	}
}

func TestToolsCallUnknownTool(t *testing.T) {
	s, _ := testServer(t)
	resp := post(t, s, `{"jsonrpc":"2.0","id":5,"method":"tools/call","params":{"name":"nope"}}`)
	if resp.Error == nil || resp.Error.Code != codeInvalidParams {
		t.Fatalf("resp = %+v", resp)
	}
}

func TestMethodNotFound(t *testing.T) {
	s, _ := testServer(t)
	resp := post(t, s, `{"jsonrpc":"2.0","id":6,"method":"resources/list"}`)
	if resp.Error == nil || resp.Error.Code != codeMethodNotFound {
		t.Fatalf("resp = %+v", resp)
	}
}

func TestGateBlocksCall(t *testing.T) {
	s, _ := testServer(t)
	s.Gate = func(_ context.Context, tool string, _ map[string]any) error {
		return fmt.Errorf("tool %s denied for caller", tool)
	}
	resp := post(t, s, `{"jsonrpc":"2.0","id":7,"method":"tools/call","params":{"name":"staffing_get_worker","arguments":{"workerId":"W-1"}}}`)
	b, _ := json.Marshal(resp.Result)
	var result ToolResult
	_ = json.Unmarshal(b, &result)
	if !result.IsError || !strings.Contains(result.Content[0].Text, "policy") {
		t.Fatalf("result = %+v", result)
	}
}

func TestAuditHookSeesInvocation(t *testing.T) {
	s, _ := testServer(t)
	var got Invocation
	s.Audit = func(_ context.Context, inv Invocation) { got = inv }
	post(t, s, `{"jsonrpc":"2.0","id":8,"method":"tools/call","params":{"name":"staffing_get_worker","arguments":{"workerId":"W-1"}}}`)
	if got.Tool != "staffing_get_worker" || got.IsError {
		t.Fatalf("invocation = %+v", got)
	}
}

func TestNotificationGets202(t *testing.T) {
	s, _ := testServer(t)
	req := httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader(`{"jsonrpc":"2.0","method":"notifications/initialized"}`))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202", rec.Code)
	}
}

func TestParseError(t *testing.T) {
	s, _ := testServer(t)
	resp := post(t, s, `{not json`)
	if resp.Error == nil || resp.Error.Code != codeParse {
		t.Fatalf("resp = %+v", resp)
	}
}

func TestScopeEnforcementForAuthenticatedCallers(t *testing.T) {
	reg := NewRegistry()
	_ = reg.Register(ToolDef{
		Name:   "payroll_get_payslips",
		Scopes: []string{"payroll:read"},
		Handler: func(context.Context, map[string]any) (string, error) {
			return "ok", nil
		},
	})
	s := &Server{Registry: reg}
	body := `{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"payroll_get_payslips"}}`

	call := func(scopes []string) ToolResult {
		req := httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader(body))
		if scopes != nil {
			req = req.WithContext(middleware.WithScopes(req.Context(), scopes))
		}
		rec := httptest.NewRecorder()
		s.ServeHTTP(rec, req)
		var resp Response
		_ = json.Unmarshal(rec.Body.Bytes(), &resp)
		b, _ := json.Marshal(resp.Result)
		var result ToolResult
		_ = json.Unmarshal(b, &result)
		return result
	}

	if r := call(nil); r.IsError {
		t.Fatalf("unauthenticated transport should not be scope-gated: %+v", r)
	}
	if r := call([]string{"staffing:read"}); !r.IsError {
		t.Fatalf("caller without payroll scope should be rejected: %+v", r)
	}
	if r := call([]string{"payroll:read"}); r.IsError {
		t.Fatalf("caller with payroll scope should pass: %+v", r)
	}
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	_, reg := testServer(t)
	err := reg.Register(ToolDef{Name: "staffing_get_worker", Handler: func(context.Context, map[string]any) (string, error) { return "", nil }})
	if err == nil {
		t.Fatal("want duplicate error")
	}
}
