// cmd/gateway-service/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hrbridge/internal/gateway"
	"hrbridge/internal/hcm"
	"hrbridge/internal/policy"
	"hrbridge/pkg/auth"
	"hrbridge/pkg/catalog"
	"hrbridge/pkg/config"
	"hrbridge/pkg/db"
	"hrbridge/pkg/logger"
	"hrbridge/pkg/mcp"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)

	pool := db.MustConnect(cfg, log)
	rdb := db.MustRedis(cfg, log)

	// Credential store preference: Postgres, then Redis, then local file.
	var store auth.CredentialStore
	switch {
	case pool != nil:
		pg := auth.NewPostgresStore(pool)
		if err := pg.EnsureSchema(context.Background()); err != nil {
			log.Fatalw("credential schema", "err", err)
		}
		store = pg
	case rdb != nil:
		store = auth.NewRedisStore(rdb)
	default:
		store = auth.NewFileStore(cfg.TokenCachePath)
	}

	exch := auth.NewExchangeClient(cfg.TokenURL, cfg.ClientID, cfg.ClientSecret, cfg.TokenHTTPTimeout)
	tokens := auth.NewManager(store, exch, cfg.RefreshToken, log)

	client := hcm.NewClient(cfg.RESTBaseURL, cfg.SOAPBaseURL, tokens, log)

	files, err := catalog.Load(cfg.CatalogDir)
	if err != nil {
		log.Fatalw("catalog load", "dir", cfg.CatalogDir, "err", err)
	}
	if len(files) == 0 {
		files = hcm.DefaultCatalog()
	}
	reg := mcp.NewRegistry()
	if err := hcm.RegisterCatalogTools(reg, client, files); err != nil {
		log.Fatalw("tool registration", "err", err)
	}
	log.Infow("tool catalog loaded", "tools", reg.Len(), "domains", len(files))

	pol, err := policy.New(context.Background(), cfg.PolicyPath)
	if err != nil {
		log.Fatalw("policy load", "path", cfg.PolicyPath, "err", err)
	}
	if pol.Enabled() {
		log.Infow("tool policy active", "path", cfg.PolicyPath)
	}

	audit := gateway.NewAuditLog(pool, log)
	if err := audit.EnsureSchema(context.Background()); err != nil {
		log.Fatalw("audit schema", "err", err)
	}

	handler := gateway.New(cfg, log, reg, pol, audit)
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: handler}
	go func() {
		log.Infow("gateway-service listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("ListenAndServe", "err", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	fmt.Println("gateway-service stopped")
}
