package policy

import (
	"context"
	"fmt"
	"os"

	"github.com/open-policy-agent/opa/rego"
)

// Engine gates tools/call against a Rego policy. With no policy file
// configured every call is allowed; with one, the entrypoint
// data.hrbridge.allow must evaluate to true for the call to proceed.
type Engine struct {
	prepared rego.PreparedEvalQuery
	enabled  bool
}

// Input is what a policy sees for each call.
type Input struct {
	Tool      string         `json:"tool"`
	Arguments map[string]any `json:"arguments"`
	Scopes    []string       `json:"scopes"`
	Actor     string         `json:"actor"`
}

func New(ctx context.Context, path string) (*Engine, error) {
	if path == "" {
		return &Engine{}, nil
	}
	mod, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read policy: %w", err)
	}
	pq, err := rego.New(
		rego.Query("data.hrbridge.allow"),
		rego.Module("policy.rego", string(mod)),
	).PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("compile policy: %w", err)
	}
	return &Engine{prepared: pq, enabled: true}, nil
}

func (e *Engine) Enabled() bool { return e.enabled }

// Allow returns nil when the call may proceed. Evaluation errors block the
// call: a broken policy must fail closed.
func (e *Engine) Allow(ctx context.Context, in Input) error {
	if !e.enabled {
		return nil
	}
	rs, err := e.prepared.Eval(ctx, rego.EvalInput(map[string]any{
		"tool":      in.Tool,
		"arguments": in.Arguments,
		"scopes":    in.Scopes,
		"actor":     in.Actor,
	}))
	if err != nil {
		return fmt.Errorf("policy evaluation failed: %w", err)
	}
	if len(rs) > 0 && len(rs[0].Expressions) > 0 {
		if allowed, ok := rs[0].Expressions[0].Value.(bool); ok && allowed {
			return nil
		}
	}
	return fmt.Errorf("tool %s not permitted for this caller", in.Tool)
}
