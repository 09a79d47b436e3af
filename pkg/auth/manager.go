// pkg/auth/manager.go
package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"hrbridge/pkg/metrics"
)

// Manager owns the credential lifecycle: it serves the cached access token
// while valid and otherwise performs one refresh-token exchange, persisting
// the result. Concurrent callers observing an expired token share a single
// in-flight exchange.
type Manager struct {
	store     CredentialStore
	exch      Exchanger
	bootstrap string // refresh token from configuration, used when nothing is persisted
	log       *zap.SugaredLogger
	now       func() time.Time

	mu      sync.RWMutex
	current *TokenSet
	loaded  bool // persisted set read from the store at least once

	group singleflight.Group
}

func NewManager(store CredentialStore, exch Exchanger, bootstrapRefreshToken string, log *zap.SugaredLogger) *Manager {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Manager{
		store:     store,
		exch:      exch,
		bootstrap: bootstrapRefreshToken,
		log:       log,
		now:       time.Now,
	}
}

// Token returns a currently-valid access token. The fast path is a local
// read with no I/O; everything else funnels through one refresh at a time.
func (m *Manager) Token(ctx context.Context) (string, error) {
	m.mu.RLock()
	cur, loaded := m.current, m.loaded
	m.mu.RUnlock()
	if loaded && cur.Valid(m.now()) {
		return cur.AccessToken, nil
	}

	v, err, _ := m.group.Do("refresh", func() (any, error) {
		return m.refresh(ctx)
	})
	if err != nil {
		return "", err
	}
	return v.(*TokenSet).AccessToken, nil
}

// refresh loads the persisted set on first use, re-checks validity (another
// caller may have refreshed while we waited on the flight), and otherwise
// exchanges. Runs inside the singleflight group only.
func (m *Manager) refresh(ctx context.Context) (*TokenSet, error) {
	m.mu.Lock()
	if !m.loaded {
		if m.store != nil {
			ts, err := m.store.Load(ctx)
			if err != nil {
				m.log.Warnw("credential store load failed", "err", err)
			} else if ts != nil {
				m.current = ts
			}
		}
		m.loaded = true
	}
	cur := m.current
	m.mu.Unlock()

	if cur.Valid(m.now()) {
		metrics.TokenRefreshes.WithLabelValues("hit").Inc()
		return cur, nil
	}

	refreshToken := ""
	if cur != nil {
		refreshToken = cur.RefreshToken
	}
	triedBootstrap := false
	if refreshToken == "" {
		refreshToken = m.bootstrap
		triedBootstrap = true
	}
	if refreshToken == "" {
		metrics.TokenRefreshes.WithLabelValues("config_error").Inc()
		return nil, &ConfigurationError{Missing: "no refresh token configured"}
	}

	ts, err := m.exch.Exchange(ctx, refreshToken)
	if err != nil && !triedBootstrap && m.bootstrap != "" && m.bootstrap != refreshToken {
		// The persisted refresh token may have been invalidated (rotation race
		// or revocation). One fallback attempt with the configured bootstrap
		// token, then give up.
		m.log.Warnw("exchange with persisted refresh token failed, retrying with configured token", "err", err)
		if ts2, err2 := m.exch.Exchange(ctx, m.bootstrap); err2 == nil {
			ts, err = ts2, nil
			refreshToken = m.bootstrap
		}
	}
	if err != nil {
		metrics.TokenRefreshes.WithLabelValues(outcomeLabel(err)).Inc()
		return nil, err
	}

	if ts.RefreshToken == "" {
		ts.RefreshToken = refreshToken
	}
	if m.store != nil {
		if serr := m.store.Save(ctx, ts); serr != nil {
			// Persistence is best-effort: the in-memory set stays authoritative.
			m.log.Warnw("credential store save failed", "err", serr)
		}
	}
	m.mu.Lock()
	m.current = ts
	m.mu.Unlock()
	metrics.TokenRefreshes.WithLabelValues("ok").Inc()
	m.log.Infow("access token refreshed", "expires_at", ts.ExpiresAt.UTC().Format(time.RFC3339))
	return ts, nil
}

func outcomeLabel(err error) string {
	var ce *ConfigurationError
	var ae *AuthenticationError
	var te *TransportError
	switch {
	case errors.As(err, &ce):
		return "config_error"
	case errors.As(err, &ae):
		return "auth_error"
	case errors.As(err, &te):
		return "transport_error"
	default:
		return "error"
	}
}
