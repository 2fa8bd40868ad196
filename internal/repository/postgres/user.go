package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/referral-server/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

type UserRepository struct {
	db *Connection
}

func NewUserRepository(db *Connection) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

const userColumns = `id, phone_number, password_hash, invite_code, invited_by, is_staff, is_superuser, created_at, updated_at`

func (r *UserRepository) GetByPhoneNumber(ctx context.Context, phoneNumber string) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE phone_number = $1`

	user, err := r.scanUser(r.db.QueryRow(ctx, query, phoneNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by phone number: %w", err)
	}

	return user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := r.scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

func (r *UserRepository) GetByInviteCode(ctx context.Context, inviteCode string) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE invite_code = $1`

	user, err := r.scanUser(r.db.QueryRow(ctx, query, inviteCode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by invite code: %w", err)
	}

	return user, nil
}

func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	query := `INSERT INTO users (id, phone_number, password_hash, invite_code, invited_by, is_staff, is_superuser, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  RETURNING ` + userColumns

	savedUser, err := r.scanUser(r.db.QueryRow(ctx, query,
		user.ID, user.PhoneNumber, user.PasswordHash, user.InviteCode, user.InvitedBy,
		user.IsStaff, user.IsSuperuser, user.CreatedAt, user.UpdatedAt,
	))
	if err != nil {
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return savedUser, nil
}

// SetInvitedBy is a conditional update: the inviter is written only when no
// inviter is recorded yet, so concurrent activations cannot overwrite it.
func (r *UserRepository) SetInvitedBy(ctx context.Context, userID, inviterID uuid.UUID) error {
	query := `UPDATE users SET invited_by = $1, updated_at = NOW()
			  WHERE id = $2 AND invited_by IS NULL`

	tag, err := r.db.Exec(ctx, query, inviterID, userID)
	if err != nil {
		return fmt.Errorf("failed to set inviter: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrAlreadyActivated
	}
	return nil
}

func (r *UserRepository) ListInvitedPhoneNumbers(ctx context.Context, inviterID uuid.UUID) ([]string, error) {
	query := `SELECT phone_number FROM users WHERE invited_by = $1 ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, inviterID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invited users: %w", err)
	}
	defer rows.Close()

	var phoneNumbers []string
	for rows.Next() {
		var pn string
		if err := rows.Scan(&pn); err != nil {
			return nil, fmt.Errorf("failed to scan invited user: %w", err)
		}
		phoneNumbers = append(phoneNumbers, pn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate invited users: %w", err)
	}

	return phoneNumbers, nil
}

func (r *UserRepository) scanUser(row pgx.Row) (model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID, &user.PhoneNumber, &user.PasswordHash, &user.InviteCode, &user.InvitedBy,
		&user.IsStaff, &user.IsSuperuser, &user.CreatedAt, &user.UpdatedAt,
	)
	return user, err
}
