package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/referral-server/internal/logger"
	"github.com/dtroode/referral-server/internal/mocks"
	"github.com/dtroode/referral-server/internal/model"
)

func TestProfile_Get(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	inviterID := uuid.New()

	userStore := &mocks.UserStore{}
	userStore.On("GetByID", ctx, userID).Return(model.User{
		ID:          userID,
		PhoneNumber: "+79174044144",
		InviteCode:  "ABC123",
		InvitedBy:   &inviterID,
	}, nil).Once()
	userStore.On("GetByID", ctx, inviterID).Return(model.User{
		ID:          inviterID,
		PhoneNumber: "+79990001122",
		InviteCode:  "ZZZ999",
	}, nil).Once()
	userStore.On("ListInvitedPhoneNumbers", ctx, userID).Return([]string{"+15551230001", "+15551230002"}, nil).Once()

	svc := NewProfile(userStore, logger.New(0))

	info, err := svc.Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "+79174044144", info.PhoneNumber)
	assert.Equal(t, "ABC123", info.InviteCode)
	require.NotNil(t, info.InvitedBy)
	assert.Equal(t, "+79990001122", *info.InvitedBy)
	assert.Equal(t, []string{"+15551230001", "+15551230002"}, info.InvitedUsers)
}

func TestProfile_Get_NoInviter(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	userStore := &mocks.UserStore{}
	userStore.On("GetByID", ctx, userID).Return(model.User{
		ID:          userID,
		PhoneNumber: "+79174044144",
		InviteCode:  "ABC123",
	}, nil).Once()
	userStore.On("ListInvitedPhoneNumbers", ctx, userID).Return(nil, nil).Once()

	svc := NewProfile(userStore, logger.New(0))

	info, err := svc.Get(ctx, userID)
	require.NoError(t, err)
	assert.Nil(t, info.InvitedBy)
	assert.Empty(t, info.InvitedUsers)
}

func TestProfile_ActivateInvite(t *testing.T) {
	ctx := context.Background()
	callerID := uuid.New()
	inviterID := uuid.New()

	userStore := &mocks.UserStore{}
	userStore.On("GetByInviteCode", ctx, "ABC123").Return(model.User{
		ID:         inviterID,
		InviteCode: "ABC123",
	}, nil).Once()
	userStore.On("GetByID", ctx, callerID).Return(model.User{ID: callerID}, nil).Once()
	userStore.On("SetInvitedBy", ctx, callerID, inviterID).Return(nil).Once()

	svc := NewProfile(userStore, logger.New(0))

	err := svc.ActivateInvite(ctx, callerID, "ABC123")
	require.NoError(t, err)
	userStore.AssertExpectations(t)
}

func TestProfile_ActivateInvite_Missing(t *testing.T) {
	ctx := context.Background()

	userStore := &mocks.UserStore{}
	svc := NewProfile(userStore, logger.New(0))

	err := svc.ActivateInvite(ctx, uuid.New(), "")
	require.ErrorIs(t, err, model.ErrInviteCodeMissing)
	userStore.AssertNotCalled(t, "GetByInviteCode", mock.Anything, mock.Anything)
}

func TestProfile_ActivateInvite_NotFound(t *testing.T) {
	ctx := context.Background()

	userStore := &mocks.UserStore{}
	userStore.On("GetByInviteCode", ctx, "NOPE00").Return(model.User{}, model.ErrNotFound).Once()

	svc := NewProfile(userStore, logger.New(0))

	err := svc.ActivateInvite(ctx, uuid.New(), "NOPE00")
	require.ErrorIs(t, err, model.ErrInviteNotFound)
}

func TestProfile_ActivateInvite_AlreadyActivated(t *testing.T) {
	ctx := context.Background()
	callerID := uuid.New()
	previousInviter := uuid.New()

	userStore := &mocks.UserStore{}
	userStore.On("GetByInviteCode", ctx, "ABC123").Return(model.User{ID: uuid.New()}, nil).Once()
	userStore.On("GetByID", ctx, callerID).Return(model.User{
		ID:        callerID,
		InvitedBy: &previousInviter,
	}, nil).Once()

	svc := NewProfile(userStore, logger.New(0))

	// A second activation fails even with a different valid code.
	err := svc.ActivateInvite(ctx, callerID, "ABC123")
	require.ErrorIs(t, err, model.ErrAlreadyActivated)
	userStore.AssertNotCalled(t, "SetInvitedBy", mock.Anything, mock.Anything, mock.Anything)
}

func TestProfile_ActivateInvite_SelfInvite(t *testing.T) {
	ctx := context.Background()
	callerID := uuid.New()

	userStore := &mocks.UserStore{}
	userStore.On("GetByInviteCode", ctx, "ABC123").Return(model.User{
		ID:         callerID,
		InviteCode: "ABC123",
	}, nil).Once()
	userStore.On("GetByID", ctx, callerID).Return(model.User{
		ID:         callerID,
		InviteCode: "ABC123",
	}, nil).Once()

	svc := NewProfile(userStore, logger.New(0))

	err := svc.ActivateInvite(ctx, callerID, "ABC123")
	require.ErrorIs(t, err, model.ErrSelfInvite)
	userStore.AssertNotCalled(t, "SetInvitedBy", mock.Anything, mock.Anything, mock.Anything)
}

func TestProfile_ActivateInvite_RaceLosesToStore(t *testing.T) {
	ctx := context.Background()
	callerID := uuid.New()
	inviterID := uuid.New()

	userStore := &mocks.UserStore{}
	userStore.On("GetByInviteCode", ctx, "ABC123").Return(model.User{ID: inviterID}, nil).Once()
	userStore.On("GetByID", ctx, callerID).Return(model.User{ID: callerID}, nil).Once()
	// Another activation won between the read and the write; the
	// conditional update reports it.
	userStore.On("SetInvitedBy", ctx, callerID, inviterID).Return(model.ErrAlreadyActivated).Once()

	svc := NewProfile(userStore, logger.New(0))

	err := svc.ActivateInvite(ctx, callerID, "ABC123")
	require.ErrorIs(t, err, model.ErrAlreadyActivated)
}
