package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// VerificationStore is a mock implementation of model.VerificationStore.
type VerificationStore struct {
	mock.Mock
}

func (m *VerificationStore) Set(ctx context.Context, key, code string, ttl time.Duration) error {
	args := m.Called(ctx, key, code, ttl)
	return args.Error(0)
}

func (m *VerificationStore) Consume(ctx context.Context, key, code string) error {
	args := m.Called(ctx, key, code)
	return args.Error(0)
}
