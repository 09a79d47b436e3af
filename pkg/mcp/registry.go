package mcp

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Handler executes one tool call and returns the text handed back to the
// client. Errors become in-band tool errors, never JSON-RPC failures.
type Handler func(ctx context.Context, args map[string]any) (string, error)

// ToolDef is the registered form of a tool: the tools/list descriptor plus
// its handler and required inbound scopes.
type ToolDef struct {
	Name        string
	Title       string
	Description string
	InputSchema map[string]any
	Scopes      []string
	Handler     Handler
}

// Registry maps tool names to handlers. Registration happens at startup;
// lookups are concurrent afterwards.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]ToolDef
}

func NewRegistry() *Registry {
	return &Registry{tools: map[string]ToolDef{}}
}

func (r *Registry) Register(def ToolDef) error {
	if def.Name == "" {
		return fmt.Errorf("mcp: tool with empty name")
	}
	if def.Handler == nil {
		return fmt.Errorf("mcp: tool %s has no handler", def.Name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.tools[def.Name]; dup {
		return fmt.Errorf("mcp: tool %s already registered", def.Name)
	}
	r.tools[def.Name] = def
	return nil
}

func (r *Registry) Lookup(name string) (ToolDef, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.tools[name]
	return def, ok
}

// List returns tools/list descriptors sorted by name for stable output.
func (r *Registry) List() []map[string]any {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.tools))
	for n := range r.tools {
		names = append(names, n)
	}
	sort.Strings(names)
	out := make([]map[string]any, 0, len(names))
	for _, n := range names {
		def := r.tools[n]
		schema := def.InputSchema
		if schema == nil {
			schema = map[string]any{"type": "object", "properties": map[string]any{}}
		}
		d := map[string]any{
			"name":        def.Name,
			"description": def.Description,
			"inputSchema": schema,
		}
		if def.Title != "" {
			d["title"] = def.Title
		}
		out = append(out, d)
	}
	return out
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}
