package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	GetByPhoneNumber(ctx context.Context, phoneNumber string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByInviteCode(ctx context.Context, inviteCode string) (User, error)
	Create(ctx context.Context, user User) (User, error)
	// SetInvitedBy records the inviter for a user only if none is recorded
	// yet. Returns ErrAlreadyActivated when the inviter field is already set.
	SetInvitedBy(ctx context.Context, userID, inviterID uuid.UUID) error
	ListInvitedPhoneNumbers(ctx context.Context, inviterID uuid.UUID) ([]string, error)
}

// User represents a stored user. PhoneNumber is the canonical E.164 form
// and is unique across users, as is InviteCode.
type User struct {
	ID           uuid.UUID
	PhoneNumber  string
	PasswordHash []byte
	InviteCode   string
	InvitedBy    *uuid.UUID
	IsStaff      bool
	IsSuperuser  bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
