// pkg/config/config.go
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env      string
	HTTPAddr string

	// Vendor HR platform endpoints
	RESTBaseURL string // e.g. https://impl-services1.example-hcm.com/api/v1/acme
	SOAPBaseURL string // e.g. https://impl-services1.example-hcm.com/service/acme

	// OAuth token exchange (outbound credentials)
	TokenURL         string
	ClientID         string
	ClientSecret     string
	RefreshToken     string // bootstrap refresh token, used when nothing is persisted
	TokenCachePath   string // JSON file used by the default credential store
	TokenHTTPTimeout time.Duration

	// Inbound MCP client auth (optional; empty issuer disables verification)
	Issuer   string
	Audience string
	JWKSURL  string

	// Tool catalog and policy
	CatalogDir string
	PolicyPath string

	// Redis & Postgres (optional credential-store backends / audit log)
	RedisURL    string
	DatabaseURL string
}

func Load() Config {
	_ = godotenv.Load()
	return Config{
		Env:              env("HRBRIDGE_ENV", "dev"),
		HTTPAddr:         env("HRBRIDGE_HTTP_ADDR", ":8080"),
		RESTBaseURL:      env("HR_REST_BASE_URL", ""),
		SOAPBaseURL:      env("HR_SOAP_BASE_URL", ""),
		TokenURL:         env("HR_TOKEN_URL", ""),
		ClientID:         env("HR_CLIENT_ID", ""),
		ClientSecret:     env("HR_CLIENT_SECRET", ""),
		RefreshToken:     env("HR_REFRESH_TOKEN", ""),
		TokenCachePath:   env("HR_TOKEN_CACHE_PATH", ".hrbridge-token.json"),
		TokenHTTPTimeout: envDur("HR_TOKEN_TIMEOUT_SEC", 30) * time.Second,
		Issuer:           env("OIDC_ISSUER", ""),
		Audience:         env("OIDC_AUDIENCE", "hrbridge-gateway"),
		JWKSURL:          env("JWKS_URL", ""),
		CatalogDir:       env("HRBRIDGE_CATALOG_DIR", "catalog"),
		PolicyPath:       env("HRBRIDGE_POLICY_PATH", ""),
		RedisURL:         env("REDIS_URL", ""),
		DatabaseURL:      env("DATABASE_URL", ""),
	}
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envDur(k string, def int) time.Duration {
	if v := os.Getenv(k); v != "" {
		i, _ := strconv.Atoi(v)
		return time.Duration(i)
	}
	return time.Duration(def)
}
