// Package memory implements the verification code store in process
// memory. It exists for single-node deployments without Redis and for
// deterministic tests: the clock is injectable.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/dtroode/referral-server/internal/model"
)

var _ model.VerificationStore = (*VerificationRepository)(nil)

type entry struct {
	code      string
	expiresAt time.Time
}

type VerificationRepository struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

func NewVerificationRepository() *VerificationRepository {
	return NewVerificationRepositoryWithClock(time.Now)
}

// NewVerificationRepositoryWithClock uses the given clock instead of
// time.Now.
func NewVerificationRepositoryWithClock(now func() time.Time) *VerificationRepository {
	return &VerificationRepository{
		entries: make(map[string]entry),
		now:     now,
	}
}

func (r *VerificationRepository) Set(_ context.Context, key, code string, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[key] = entry{
		code:      code,
		expiresAt: r.now().Add(ttl),
	}
	return nil
}

func (r *VerificationRepository) Consume(_ context.Context, key, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[key]
	if !ok {
		return model.ErrCodeNotFound
	}
	if r.now().After(e.expiresAt) {
		delete(r.entries, key)
		return model.ErrCodeNotFound
	}
	if e.code != code {
		return model.ErrCodeMismatch
	}
	delete(r.entries, key)
	return nil
}
