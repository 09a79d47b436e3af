// pkg/mcp/server.go
package mcp

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"hrbridge/pkg/metrics"
	"hrbridge/pkg/middleware"
)

// Invocation is handed to the audit hook after every tools/call.
type Invocation struct {
	Tool       string
	RequestID  string
	ActorSub   string
	IsError    bool
	DurationMS int64
	StartedAt  time.Time
}

// Server serves the MCP JSON-RPC surface over HTTP POST.
type Server struct {
	Registry *Registry
	Log      *zap.SugaredLogger

	// Gate is consulted before every tools/call; a non-nil error blocks the
	// call and is reported in-band. Nil Gate allows everything.
	Gate func(ctx context.Context, tool string, args map[string]any) error

	// Audit receives a record of every tools/call after it completes.
	Audit func(ctx context.Context, inv Invocation)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 4<<20))
	if err != nil {
		writeResponse(w, Response{JSONRPC: "2.0", Error: &RPCError{Code: codeParse, Message: "request too large or unreadable"}})
		return
	}
	var req Request
	if err := json.Unmarshal(body, &req); err != nil {
		writeResponse(w, Response{JSONRPC: "2.0", Error: &RPCError{Code: codeParse, Message: "parse error"}})
		return
	}
	if req.JSONRPC != "2.0" || req.Method == "" {
		writeResponse(w, Response{JSONRPC: "2.0", ID: req.ID, Error: &RPCError{Code: codeInvalidRequest, Message: "invalid request"}})
		return
	}

	// Notifications get a 202 and no body.
	if len(req.ID) == 0 {
		w.WriteHeader(http.StatusAccepted)
		return
	}

	resp := s.dispatch(r.Context(), req)
	writeResponse(w, resp)
}

func (s *Server) dispatch(ctx context.Context, req Request) Response {
	resp := Response{JSONRPC: "2.0", ID: req.ID}
	switch req.Method {
	case "initialize":
		resp.Result = map[string]any{
			"protocolVersion": protocolVersion,
			"capabilities":    map[string]any{"tools": map[string]any{}},
			"serverInfo":      map[string]any{"name": "hrbridge", "version": "1.0.0"},
		}
	case "ping":
		resp.Result = map[string]any{}
	case "tools/list":
		resp.Result = map[string]any{"tools": s.Registry.List()}
	case "tools/call":
		resp = s.callTool(ctx, req)
	default:
		resp.Error = &RPCError{Code: codeMethodNotFound, Message: "method not found: " + req.Method}
	}
	return resp
}

func (s *Server) callTool(ctx context.Context, req Request) Response {
	resp := Response{JSONRPC: "2.0", ID: req.ID}
	var params callParams
	if err := json.Unmarshal(req.Params, &params); err != nil || params.Name == "" {
		resp.Error = &RPCError{Code: codeInvalidParams, Message: "tools/call requires a tool name"}
		return resp
	}
	def, ok := s.Registry.Lookup(params.Name)
	if !ok {
		resp.Error = &RPCError{Code: codeInvalidParams, Message: "unknown tool: " + params.Name}
		return resp
	}
	if params.Arguments == nil {
		params.Arguments = map[string]any{}
	}

	start := time.Now()
	result := s.execute(ctx, def, params.Arguments)
	status := "ok"
	if result.IsError {
		status = "error"
	}
	metrics.ToolCalls.WithLabelValues(def.Name, status).Inc()
	if s.Audit != nil {
		s.Audit(ctx, Invocation{
			Tool:       def.Name,
			RequestID:  middleware.RequestIDFrom(ctx),
			ActorSub:   middleware.ActorSub(ctx),
			IsError:    result.IsError,
			DurationMS: time.Since(start).Milliseconds(),
			StartedAt:  start,
		})
	}
	resp.Result = result
	return resp
}

func (s *Server) execute(ctx context.Context, def ToolDef, args map[string]any) *ToolResult {
	// Scope enforcement applies to authenticated callers only; transports
	// without bearer auth carry no scope claims at all.
	if sc := middleware.ScopesFrom(ctx); sc != nil && !middleware.HasAnyScope(ctx, def.Scopes) {
		return ErrorResult("insufficient_scope: tool " + def.Name + " requires one of its declared scopes")
	}
	if s.Gate != nil {
		if err := s.Gate(ctx, def.Name, args); err != nil {
			return ErrorResult("blocked by policy: " + err.Error())
		}
	}
	text, err := def.Handler(ctx, args)
	if err != nil {
		if s.Log != nil {
			s.Log.Warnw("tool call failed", "tool", def.Name, "err", err)
		}
		return ErrorResult(err.Error())
	}
	return TextResult(text)
}

func writeResponse(w http.ResponseWriter, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}
