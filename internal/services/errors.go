package services

import "errors"

// Expected, user-facing failures. Handlers translate these to HTTP statuses;
// anything else coming out of a service is a system failure (500).
var (
	ErrMissingCredentials = errors.New("email and password required")
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrInvalidResetInput = errors.New("invalid token or password (8 characters minimum)")
	ErrTokenInvalid      = errors.New("invalid or expired token")
	ErrTokenExpired      = errors.New("token has expired")

	ErrInvalidProxyPath = errors.New("invalid path")
	ErrInvalidProxyBody = errors.New("invalid JSON body")
	ErrNotConfigured    = errors.New("upstream URL not configured")
	ErrUpstreamDown     = errors.New("backend unavailable")
)
