package model

import "errors"

var (
	// ErrNotFound is returned by stores when a record does not exist.
	ErrNotFound = errors.New("record not found")

	ErrCodeNotFound = errors.New("verification code not found")
	ErrCodeMismatch = errors.New("verification code mismatch")

	ErrInvalidPhoneNumber = errors.New("invalid phone number")
	ErrInvalidPassword    = errors.New("invalid password")

	ErrSMSDeliveryFailed = errors.New("sms delivery failed")

	ErrInviteCodeMissing = errors.New("invite code not provided")
	ErrInviteNotFound    = errors.New("invite code not found")
	ErrAlreadyActivated  = errors.New("invite code already activated")
	ErrSelfInvite        = errors.New("cannot use your own invite code")

	ErrTokenRevoked  = errors.New("refresh token revoked")
	ErrTokenExpired  = errors.New("refresh token expired")
	ErrTokenMismatch = errors.New("refresh token mismatch")
)
