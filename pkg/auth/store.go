// pkg/auth/store.go
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// CredentialStore persists the last-obtained token set across restarts.
// Load returns (nil, nil) when nothing has been persisted yet. Save failures
// are logged by the manager and never fail the calling refresh.
type CredentialStore interface {
	Load(ctx context.Context) (*TokenSet, error)
	Save(ctx context.Context, ts *TokenSet) error
}

// FileStore keeps the token set in a local JSON file. This is the default
// store for single-node deployments.
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load(_ context.Context) (*TokenSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var ts TokenSet
	if err := json.Unmarshal(b, &ts); err != nil {
		return nil, err
	}
	if ts.AccessToken == "" && ts.RefreshToken == "" {
		return nil, nil
	}
	return &ts, nil
}

func (s *FileStore) Save(_ context.Context, ts *TokenSet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := json.MarshalIndent(ts, "", "  ")
	if err != nil {
		return err
	}
	// Write-then-rename so a crash never leaves a truncated file behind.
	tmp := s.path + ".tmp"
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return err
		}
	}
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
