package model

import (
	"context"
	"time"
)

// CodeTTL is the lifetime of a one-time verification code.
const CodeTTL = 300 * time.Second

// VerificationStore persists one-time verification codes with expiry.
// Keys are derived from the normalized E.164 phone number.
type VerificationStore interface {
	// Set stores the code under key for the given TTL, replacing any
	// previous code for that key.
	Set(ctx context.Context, key, code string, ttl time.Duration) error
	// Consume deletes the stored code if and only if it equals code, in a
	// single atomic step. Returns ErrCodeNotFound when no unexpired code
	// exists for the key, ErrCodeMismatch when the codes differ; a
	// mismatch leaves the stored code in place.
	Consume(ctx context.Context, key, code string) error
}
