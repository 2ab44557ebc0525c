package auth

import "errors"

// Sentinel failures for the authentication pipeline. Callers at the HTTP
// boundary collapse ErrUnauthenticated and ErrInvalidCredential into one
// uniform rejection so the two cases cannot be told apart from outside.
var (
	// ErrUnauthenticated means no usable credential was present at all.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrInvalidCredential means a credential was present but failed
	// signature, expiry, or shape validation.
	ErrInvalidCredential = errors.New("invalid credential")

	// ErrForbidden means the credential was valid but the kind or role
	// check failed.
	ErrForbidden = errors.New("forbidden")
)
