// internal/gateway/audit.go
package gateway

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"hrbridge/pkg/mcp"
)

// AuditLog records every tools/call in Postgres. A nil pool disables it.
type AuditLog struct {
	pool *pgxpool.Pool
	log  *zap.SugaredLogger
}

func NewAuditLog(pool *pgxpool.Pool, log *zap.SugaredLogger) *AuditLog {
	return &AuditLog{pool: pool, log: log}
}

func (a *AuditLog) EnsureSchema(ctx context.Context) error {
	if a.pool == nil {
		return nil
	}
	_, err := a.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS tool_invocations (
			id          uuid PRIMARY KEY,
			tool        text NOT NULL,
			actor_sub   text NOT NULL DEFAULT '',
			request_id  text NOT NULL DEFAULT '',
			is_error    boolean NOT NULL DEFAULT false,
			duration_ms bigint NOT NULL DEFAULT 0,
			started_at  timestamptz NOT NULL,
			finished_at timestamptz NOT NULL DEFAULT now()
		)`)
	return err
}

// Record is installed as the MCP server's Audit hook. Failures are logged,
// never surfaced to the caller.
func (a *AuditLog) Record(ctx context.Context, inv mcp.Invocation) {
	if a.pool == nil {
		return
	}
	_, err := a.pool.Exec(ctx, `
		INSERT INTO tool_invocations(id, tool, actor_sub, request_id, is_error, duration_ms, started_at, finished_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`, uuid.NewString(), inv.Tool, inv.ActorSub, inv.RequestID, inv.IsError, inv.DurationMS, inv.StartedAt.UTC(), time.Now().UTC())
	if err != nil {
		a.log.Warnw("audit insert failed", "tool", inv.Tool, "err", err)
	}
}
