package tokenx

import "errors"

// Decode failures are distinct error conditions. An expired but correctly
// signed token is not the same failure as a bad signature, and callers
// branch on these with errors.Is.
var (
	// ErrMalformed reports a string that cannot be parsed as a JWT.
	ErrMalformed = errors.New("tokenx: malformed token")

	// ErrInvalidSignature reports a signature that does not verify
	// against the signing key.
	ErrInvalidSignature = errors.New("tokenx: invalid signature")

	// ErrExpired reports a correctly signed token whose exp has passed.
	ErrExpired = errors.New("tokenx: token expired")

	// ErrNotYetValid reports a token presented before its nbf.
	ErrNotYetValid = errors.New("tokenx: token not yet valid")

	// ErrMissingSubject reports a valid token without a sub claim.
	ErrMissingSubject = errors.New("tokenx: missing subject claim")

	// ErrPurposeMismatch reports a valid token presented for a purpose
	// it was not issued for.
	ErrPurposeMismatch = errors.New("tokenx: token purpose mismatch")
)
