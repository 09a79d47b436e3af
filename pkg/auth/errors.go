package auth

import "fmt"

// ConfigurationError means a credential or endpoint required for the exchange
// is missing. No network call is made; operator intervention is required.
type ConfigurationError struct {
	Missing string
}

func (e *ConfigurationError) Error() string {
	return "auth: configuration: " + e.Missing
}

// AuthenticationError means the identity provider rejected the exchange, or
// returned a 200 whose body could not be used (malformed JSON, empty
// access_token). Status is the HTTP status; Code carries the provider's
// error field (e.g. invalid_grant) when present.
type AuthenticationError struct {
	Status int
	Code   string
	Detail string
}

func (e *AuthenticationError) Error() string {
	msg := fmt.Sprintf("auth: exchange rejected (status %d)", e.Status)
	if e.Code != "" {
		msg += ": " + e.Code
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// TransportError means the provider could not be reached at all (DNS,
// connection reset, timeout). Distinct from AuthenticationError so operators
// can tell "provider said no" apart from "couldn't reach provider".
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "auth: transport: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error { return e.Err }
