package service

import (
	"context"
	"errors"
	"strings"

	"github.com/powoftech/relic-chat/internal/auth/domain"
	"github.com/powoftech/relic-chat/internal/auth/store"
	"github.com/powoftech/relic-chat/pkg/cryptox"
	"github.com/powoftech/relic-chat/pkg/idx"
)

// DirectoryService is the account directory: creation, lookup, password
// verification and confirmation flags. It owns identity normalization, so
// every other layer works with normalized values.
type DirectoryService struct {
	Store store.Store
}

// NormalizeEmail lower-cases and trims an email. The normalized form is
// the token subject everywhere.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeUsername lower-cases and trims a username for uniqueness
// checks; the display form keeps its original casing.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// Create inserts a new unconfirmed account with a hashed password.
// A collision on email or username returns ErrDuplicateAccount.
func (s *DirectoryService) Create(ctx context.Context, email, username, displayName, password string) (domain.User, error) {
	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, err
	}

	u := domain.User{
		ID:                 idx.New().String(),
		Email:              strings.TrimSpace(email),
		NormalizedEmail:    NormalizeEmail(email),
		Username:           strings.TrimSpace(username),
		NormalizedUsername: NormalizeUsername(username),
		DisplayName:        strings.TrimSpace(displayName),
		PasswordHash:       hash,
		EmailConfirmed:     false,
	}

	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrDuplicateAccount
		}
		return domain.User{}, err
	}
	return u, nil
}

// FindByEmail looks up an account by email, normalizing first.
func (s *DirectoryService) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	return s.Store.Users().GetUserByNormalizedEmail(ctx, NormalizeEmail(email))
}

// FindByUsername looks up an account by username, normalizing first.
func (s *DirectoryService) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	return s.Store.Users().GetUserByNormalizedUsername(ctx, NormalizeUsername(username))
}

// VerifyPassword checks email+password and returns the account on match.
// Unknown account and wrong password are both ErrUnauthorized; callers
// must not tell them apart.
func (s *DirectoryService) VerifyPassword(ctx context.Context, email, password string) (domain.User, error) {
	u, err := s.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUnauthorized
		}
		return domain.User{}, err
	}

	if err := cryptox.VerifyPassword(password, u.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			return domain.User{}, ErrUnauthorized
		}
		return domain.User{}, err
	}
	return u, nil
}

// MarkEmailConfirmed flips the confirmation flag.
func (s *DirectoryService) MarkEmailConfirmed(ctx context.Context, userID string) error {
	return s.Store.Users().MarkEmailConfirmed(ctx, userID)
}

// Delete removes an account. Used to roll back a signup whose
// verification mail could not be delivered.
func (s *DirectoryService) Delete(ctx context.Context, userID string) error {
	return s.Store.Users().DeleteUser(ctx, userID)
}

// Availability reports per-field availability for live form feedback.
// This is the one place a field-level leak is intentional; signup itself
// reports collisions generically.
func (s *DirectoryService) Availability(ctx context.Context, email, username string) (emailAvailable, usernameAvailable bool, err error) {
	_, err = s.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, store.ErrNotFound):
		emailAvailable = true
	case err != nil:
		return false, false, err
	}

	_, err = s.FindByUsername(ctx, username)
	switch {
	case errors.Is(err, store.ErrNotFound):
		usernameAvailable = true
	case err != nil:
		return false, false, err
	}

	return emailAvailable, usernameAvailable, nil
}
