package services

import "errors"

// Service-level error taxonomy. Handlers map these onto HTTP statuses;
// anything else is reported as a generic server fault so storage details
// never reach the client.
var (
	// ErrValidation: missing or malformed input, the caller must fix it.
	ErrValidation = errors.New("validation failed")
	// ErrConflict: username or email already taken.
	ErrConflict = errors.New("user with this email or username already exists")
	// ErrInvalidCredentials: wrong email/password pair. Unknown email and
	// wrong password are indistinguishable to prevent account enumeration.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidToken: refresh token failed signature, expiry, or the
	// server-side revocation check. All three collapse into one outcome.
	ErrInvalidToken = errors.New("invalid refresh token")
	// ErrNotFound: the entity an identity-bearing operation targets is gone.
	ErrNotFound = errors.New("not found")
)
