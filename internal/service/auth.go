package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dtroode/referral-server/internal/invite"
	"github.com/dtroode/referral-server/internal/logger"
	"github.com/dtroode/referral-server/internal/model"
	"github.com/dtroode/referral-server/internal/phone"
)

// inviteCodeRetries bounds the collision retry loop at user creation.
const inviteCodeRetries = 5

// Auth orchestrates the one-time-code login flow: code issuance on login,
// single-use verification, and session token issuance.
type Auth struct {
	userStore    model.UserStore
	codeStore    model.VerificationStore
	gateway      model.SMSGateway
	tokenService *TokenService
	logger       *logger.Logger
}

func NewAuth(
	userStore model.UserStore,
	codeStore model.VerificationStore,
	gateway model.SMSGateway,
	tokenService *TokenService,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		userStore:    userStore,
		codeStore:    codeStore,
		gateway:      gateway,
		tokenService: tokenService,
		logger:       logger,
	}
}

// TokenPair is the session credential pair returned on successful
// verification.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Login validates the phone number, gets or creates the user record and
// issues a one-time code to the phone via SMS. The code lives in the
// ephemeral store under the normalized number for model.CodeTTL.
func (a *Auth) Login(ctx context.Context, rawPhoneNumber, password string) (string, error) {
	a.logger.Debug("Auth service: starting login", "phone_number", rawPhoneNumber)

	phoneNumber, err := phone.Normalize(rawPhoneNumber)
	if err != nil {
		return "", err
	}

	user, err := a.userStore.GetByPhoneNumber(ctx, phoneNumber)
	if errors.Is(err, model.ErrNotFound) {
		user, err = a.createUser(ctx, phoneNumber, password)
		if err != nil {
			a.logger.Error("Auth service: failed to create user",
				"phone_number", phoneNumber,
				"error", err.Error())
			return "", fmt.Errorf("failed to create user: %w", err)
		}
	} else if err != nil {
		return "", fmt.Errorf("failed to get user by phone number: %w", err)
	} else if len(user.PasswordHash) > 0 {
		if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
			a.logger.Info("Auth service: password check failed", "phone_number", phoneNumber)
			return "", model.ErrInvalidPassword
		}
	}

	code, err := generateCode()
	if err != nil {
		return "", fmt.Errorf("failed to generate verification code: %w", err)
	}

	if err := a.codeStore.Set(ctx, phoneNumber, code, model.CodeTTL); err != nil {
		return "", fmt.Errorf("failed to store verification code: %w", err)
	}

	if err := a.gateway.Send(ctx, phoneNumber, "Your verification code is: "+code); err != nil {
		// The cached code is left in place; the user only learns that
		// delivery failed.
		a.logger.Error("Auth service: failed to send verification code",
			"phone_number", phoneNumber,
			"error", err.Error())
		return "", fmt.Errorf("%w: %s", model.ErrSMSDeliveryFailed, err)
	}

	a.logger.Info("Auth service: verification code issued", "phone_number", phoneNumber)

	return phoneNumber, nil
}

// VerifyCode consumes the one-time code for the phone number and issues a
// token pair on match. A mismatched submission does not invalidate the
// stored code.
func (a *Auth) VerifyCode(ctx context.Context, rawPhoneNumber, code string) (TokenPair, error) {
	phoneNumber, err := phone.Normalize(rawPhoneNumber)
	if err != nil {
		return TokenPair{}, err
	}

	if err := a.codeStore.Consume(ctx, phoneNumber, code); err != nil {
		if errors.Is(err, model.ErrCodeNotFound) || errors.Is(err, model.ErrCodeMismatch) {
			// Collapsed into one error so a caller cannot probe whether
			// the phone number has a login in flight.
			a.logger.Info("Auth service: incorrect verification code", "phone_number", phoneNumber)
			return TokenPair{}, model.ErrCodeMismatch
		}
		return TokenPair{}, fmt.Errorf("failed to consume verification code: %w", err)
	}

	user, err := a.userStore.GetByPhoneNumber(ctx, phoneNumber)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			a.logger.Error("Auth service: user disappeared after code match", "phone_number", phoneNumber)
			return TokenPair{}, model.ErrNotFound
		}
		return TokenPair{}, fmt.Errorf("failed to get user by phone number: %w", err)
	}

	access, refresh, err := a.tokenService.Issue(ctx, user.ID)
	if err != nil {
		return TokenPair{}, fmt.Errorf("failed to issue token: %w", err)
	}

	a.logger.Info("Auth service: login completed", "phone_number", phoneNumber, "user_id", user.ID)

	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh rotates a refresh token into a new token pair.
func (a *Auth) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	access, refresh, err := a.tokenService.Refresh(ctx, refreshToken)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Logout revokes the presented refresh token.
func (a *Auth) Logout(ctx context.Context, refreshToken string) error {
	return a.tokenService.RevokeByToken(ctx, refreshToken)
}

func (a *Auth) createUser(ctx context.Context, phoneNumber, password string) (model.User, error) {
	var passwordHash []byte
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return model.User{}, fmt.Errorf("failed to hash password: %w", err)
		}
		passwordHash = hash
	}

	var lastErr error
	for i := 0; i < inviteCodeRetries; i++ {
		inviteCode, err := invite.NewCode()
		if err != nil {
			return model.User{}, err
		}

		now := time.Now()
		user, err := a.userStore.Create(ctx, model.User{
			ID:           uuid.New(),
			PhoneNumber:  phoneNumber,
			PasswordHash: passwordHash,
			InviteCode:   inviteCode,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if err == nil {
			return user, nil
		}
		// The invite_code unique constraint may reject a collision; draw
		// a new code and try again.
		lastErr = err
	}

	return model.User{}, lastErr
}

// generateCode draws a 4-digit code uniformly from [1000,9999].
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%04d", n.Int64()+1000), nil
}
