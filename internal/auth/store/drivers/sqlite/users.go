package sqlite

import (
	"context"
	"time"

	"github.com/powoftech/relic-chat/internal/auth/domain"
	"github.com/powoftech/relic-chat/internal/auth/store"
)

type usersRepo struct {
	db dbtx
}

const userColumns = `id, email, normalized_email, username, normalized_username,
	display_name, avatar_url, password_hash, email_confirmed, created_at, updated_at`

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	now := formatTime(time.Now())
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (
			id, email, normalized_email, username, normalized_username,
			display_name, avatar_url, password_hash, email_confirmed,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID,
		u.Email,
		u.NormalizedEmail,
		u.Username,
		u.NormalizedUsername,
		u.DisplayName,
		mapOptionalString(u.AvatarURL),
		u.PasswordHash,
		u.EmailConfirmed,
		now,
		now,
	)
	return mapConstraint(err)
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`,
		id,
	)
	return scanUser(row)
}

func (r *usersRepo) GetUserByNormalizedEmail(ctx context.Context, normalizedEmail string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE normalized_email = ?`,
		normalizedEmail,
	)
	return scanUser(row)
}

func (r *usersRepo) GetUserByNormalizedUsername(ctx context.Context, normalizedUsername string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE normalized_username = ?`,
		normalizedUsername,
	)
	return scanUser(row)
}

func (r *usersRepo) MarkEmailConfirmed(ctx context.Context, userID string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET email_confirmed = 1, updated_at = ? WHERE id = ?`,
		formatTime(time.Now()), userID,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *usersRepo) DeleteUser(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, userID)
	return err
}
