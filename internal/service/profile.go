package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/referral-server/internal/logger"
	"github.com/dtroode/referral-server/internal/model"
)

// Profile exposes a user's own referral data and invite activation.
type Profile struct {
	userStore model.UserStore
	logger    *logger.Logger
}

func NewProfile(userStore model.UserStore, logger *logger.Logger) *Profile {
	return &Profile{userStore: userStore, logger: logger}
}

// Info is the read-only view of a user's referral state.
type Info struct {
	PhoneNumber  string
	InviteCode   string
	InvitedBy    *string
	InvitedUsers []string
}

// Get returns the caller's phone number, invite code, the inviter's phone
// number when an invite was activated, and the phone numbers of everyone
// the caller invited.
func (p *Profile) Get(ctx context.Context, userID uuid.UUID) (Info, error) {
	user, err := p.userStore.GetByID(ctx, userID)
	if err != nil {
		return Info{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	info := Info{
		PhoneNumber: user.PhoneNumber,
		InviteCode:  user.InviteCode,
	}

	if user.InvitedBy != nil {
		inviter, err := p.userStore.GetByID(ctx, *user.InvitedBy)
		if err != nil {
			return Info{}, fmt.Errorf("failed to get inviter: %w", err)
		}
		info.InvitedBy = &inviter.PhoneNumber
	}

	invited, err := p.userStore.ListInvitedPhoneNumbers(ctx, userID)
	if err != nil {
		return Info{}, fmt.Errorf("failed to list invited users: %w", err)
	}
	info.InvitedUsers = invited

	return info, nil
}

// ActivateInvite records the owner of inviteCode as the caller's inviter.
// A user activates at most one invite code, ever; the write is a
// conditional update so two racing activations cannot both win.
func (p *Profile) ActivateInvite(ctx context.Context, userID uuid.UUID, inviteCode string) error {
	if inviteCode == "" {
		return model.ErrInviteCodeMissing
	}

	inviter, err := p.userStore.GetByInviteCode(ctx, inviteCode)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrInviteNotFound
		}
		return fmt.Errorf("failed to get user by invite code: %w", err)
	}

	caller, err := p.userStore.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user by id: %w", err)
	}

	if caller.InvitedBy != nil {
		return model.ErrAlreadyActivated
	}

	if inviter.ID == caller.ID {
		return model.ErrSelfInvite
	}

	if err := p.userStore.SetInvitedBy(ctx, caller.ID, inviter.ID); err != nil {
		return err
	}

	p.logger.Info("Profile service: invite code activated",
		"user_id", caller.ID,
		"inviter_id", inviter.ID)

	return nil
}
