// pkg/auth/exchange.go
package auth

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Exchanger trades a refresh token for a fresh token set. Implementations
// perform exactly one attempt; retry and fallback policy live in the Manager.
type Exchanger interface {
	Exchange(ctx context.Context, refreshToken string) (*TokenSet, error)
}

// ExchangeClient implements the provider's token-endpoint wire contract:
// POST with HTTP Basic client credentials and a form-encoded
// grant_type=refresh_token body.
type ExchangeClient struct {
	TokenURL     string
	ClientID     string
	ClientSecret string
	HTTPClient   *http.Client
	Now          func() time.Time // test hook; defaults to time.Now
}

func NewExchangeClient(tokenURL, clientID, clientSecret string, timeout time.Duration) *ExchangeClient {
	return &ExchangeClient{
		TokenURL:     tokenURL,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		HTTPClient:   &http.Client{Timeout: timeout},
	}
}

// tokenResponse is the provider's JSON success body.
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	Scope        string `json:"scope"`
}

type tokenError struct {
	Code        string `json:"error"`
	Description string `json:"error_description"`
}

func (c *ExchangeClient) Exchange(ctx context.Context, refreshToken string) (*TokenSet, error) {
	if refreshToken == "" {
		return nil, &ConfigurationError{Missing: "no refresh token configured"}
	}
	if c.TokenURL == "" {
		return nil, &ConfigurationError{Missing: "token endpoint URL"}
	}
	if c.ClientID == "" || c.ClientSecret == "" {
		return nil, &ConfigurationError{Missing: "client credentials"}
	}

	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", refreshToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &ConfigurationError{Missing: "valid token endpoint URL: " + err.Error()}
	}
	req.SetBasicAuth(c.ClientID, c.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	httpc := c.HTTPClient
	if httpc == nil {
		httpc = http.DefaultClient
	}
	resp, err := httpc.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))

	if resp.StatusCode != http.StatusOK {
		var te tokenError
		_ = json.Unmarshal(body, &te)
		return nil, &AuthenticationError{Status: resp.StatusCode, Code: te.Code, Detail: te.Description}
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return nil, &AuthenticationError{Status: resp.StatusCode, Detail: "malformed token response: " + err.Error()}
	}
	if tr.AccessToken == "" {
		return nil, &AuthenticationError{Status: resp.StatusCode, Detail: "token response missing access_token"}
	}

	lifetime := defaultLifetime
	if tr.ExpiresIn > 0 {
		lifetime = time.Duration(tr.ExpiresIn) * time.Second
	}
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	ts := &TokenSet{
		AccessToken:  tr.AccessToken,
		RefreshToken: tr.RefreshToken,
		ExpiresAt:    now().Add(lifetime),
		Scope:        tr.Scope,
	}
	// Providers may rotate the refresh token; when they omit it, the one just
	// used stays live and must be retained.
	if ts.RefreshToken == "" {
		ts.RefreshToken = refreshToken
	}
	return ts, nil
}
