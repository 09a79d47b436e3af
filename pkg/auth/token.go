package auth

import "time"

// expiryBuffer is subtracted from the provider-reported lifetime when judging
// validity: a token within this window of expiring is treated as already
// expired so it cannot lapse mid-flight on the provider side.
const expiryBuffer = 60 * time.Second

// defaultLifetime applies when the provider omits expires_in. One hour is the
// conservative choice; tokens are never treated as eternal.
const defaultLifetime = time.Hour

// TokenSet is the full credential state obtained from one exchange. It is
// replaced wholesale on every successful refresh and persisted as a unit.
type TokenSet struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	Scope        string    `json:"scope,omitempty"`
}

// Valid reports whether the access token may still be presented upstream at
// the given instant. Nil receivers and empty access tokens are invalid.
func (t *TokenSet) Valid(now time.Time) bool {
	if t == nil || t.AccessToken == "" {
		return false
	}
	return now.Add(expiryBuffer).Before(t.ExpiresAt)
}
