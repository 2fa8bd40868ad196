package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/referral-server/internal/model"
)

// UserStore is a mock implementation of model.UserStore.
type UserStore struct {
	mock.Mock
}

func (m *UserStore) GetByPhoneNumber(ctx context.Context, phoneNumber string) (model.User, error) {
	args := m.Called(ctx, phoneNumber)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) GetByInviteCode(ctx context.Context, inviteCode string) (model.User, error) {
	args := m.Called(ctx, inviteCode)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) Create(ctx context.Context, user model.User) (model.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) SetInvitedBy(ctx context.Context, userID, inviterID uuid.UUID) error {
	args := m.Called(ctx, userID, inviterID)
	return args.Error(0)
}

func (m *UserStore) ListInvitedPhoneNumbers(ctx context.Context, inviterID uuid.UUID) ([]string, error) {
	args := m.Called(ctx, inviterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
