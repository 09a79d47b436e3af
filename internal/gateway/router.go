// internal/gateway/router.go
package gateway

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"hrbridge/internal/policy"
	"hrbridge/pkg/config"
	"hrbridge/pkg/mcp"
	"hrbridge/pkg/middleware"
)

// New wires the full HTTP surface: health, metrics, and the MCP endpoint
// guarded by policy with audit logging.
func New(cfg config.Config, log *zap.SugaredLogger, reg *mcp.Registry, pol *policy.Engine, audit *AuditLog) http.Handler {
	srv := &mcp.Server{
		Registry: reg,
		Log:      log,
		Gate: func(ctx context.Context, tool string, args map[string]any) error {
			return pol.Allow(ctx, policy.Input{
				Tool:      tool,
				Arguments: args,
				Scopes:    middleware.ScopesFrom(ctx),
				Actor:     middleware.ActorSub(ctx),
			})
		},
		Audit: audit.Record,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID())
	r.Use(middleware.Recover(log))
	r.Use(middleware.Tracing())
	r.Use(middleware.JWTAuth(cfg))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true}`))
	})
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	// Tool descriptors are also exposed as plain JSON for operators; the
	// MCP tools/list result is the authoritative surface.
	r.Get("/tools", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"tools": reg.List()})
	})

	r.Post("/mcp", srv.ServeHTTP)
	return r
}
