package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/powoftech/relic-chat/internal/auth/domain"
	"github.com/powoftech/relic-chat/internal/auth/store"
	"github.com/powoftech/relic-chat/pkg/cryptox"
	"github.com/powoftech/relic-chat/pkg/slogx"
	"github.com/powoftech/relic-chat/pkg/tokenx"
)

// DefaultRefreshTTL is how long a refresh token stays exchangeable.
const DefaultRefreshTTL = 7 * 24 * time.Hour

// SessionService issues, rotates and revokes refresh-token-backed
// sessions, pairing each refresh token with a short-lived access token.
type SessionService struct {
	Codec      *tokenx.Codec
	Store      store.Store
	RefreshTTL time.Duration
}

func (s *SessionService) refreshTTL() time.Duration {
	// Zero means unset. Negative is honored so tests can mint
	// born-expired sessions.
	if s.RefreshTTL != 0 {
		return s.RefreshTTL
	}
	return DefaultRefreshTTL
}

// Create mints a fresh token pair for the user: a signed access token for
// the normalized email and an opaque refresh token persisted by
// fingerprint.
func (s *SessionService) Create(ctx context.Context, user domain.User) (*domain.TokenPair, error) {
	now := time.Now()

	accessToken, err := s.Codec.Issue(user.NormalizedEmail, tokenx.PurposeAccess)
	if err != nil {
		return nil, err
	}

	refreshToken, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return nil, err
	}

	refreshExpiry := now.Add(s.refreshTTL())
	err = s.Store.Sessions().CreateSession(ctx, domain.Session{
		TokenHash: cryptox.FingerprintToken(refreshToken),
		UserID:    user.ID,
		ExpiresAt: refreshExpiry,
	})
	if err != nil {
		return nil, err
	}

	return &domain.TokenPair{
		AccessToken:      accessToken,
		AccessExpiresAt:  now.Add(s.Codec.TTL(tokenx.PurposeAccess)),
		RefreshToken:     refreshToken,
		RefreshExpiresAt: refreshExpiry,
	}, nil
}

// Refresh rotates a presented refresh token: the old row is deleted and a
// replacement inserted in one transaction. The delete doubles as the
// winner election; a second concurrent exchange of the same token finds
// nothing to delete and fails with ErrInvalidRefresh.
func (s *SessionService) Refresh(ctx context.Context, presentedToken string) (*domain.TokenPair, error) {
	l := slogx.FromContext(ctx)
	now := time.Now()

	if presentedToken == "" {
		return nil, ErrInvalidRefresh
	}
	hash := cryptox.FingerprintToken(presentedToken)

	var pair *domain.TokenPair

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		session, err := tx.Sessions().GetSessionByTokenHash(ctx, hash)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInvalidRefresh
			}
			return err
		}

		if session.Expired(now) {
			// Expired rows are useless; drop them on sight.
			_, _ = tx.Sessions().DeleteSessionByTokenHash(ctx, hash)
			return ErrInvalidRefresh
		}

		deleted, err := tx.Sessions().DeleteSessionByTokenHash(ctx, hash)
		if err != nil {
			return err
		}
		if !deleted {
			// Another exchange won the race.
			l.Warn("refresh rotation lost race", slog.String("user_id", session.UserID))
			return ErrInvalidRefresh
		}

		user, err := tx.Users().GetUserByID(ctx, session.UserID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInvalidRefresh
			}
			return err
		}

		accessToken, err := s.Codec.Issue(user.NormalizedEmail, tokenx.PurposeAccess)
		if err != nil {
			return err
		}

		refreshToken, err := cryptox.GenerateToken(cryptox.TokenSize256)
		if err != nil {
			return err
		}

		refreshExpiry := now.Add(s.refreshTTL())
		err = tx.Sessions().CreateSession(ctx, domain.Session{
			TokenHash: cryptox.FingerprintToken(refreshToken),
			UserID:    user.ID,
			ExpiresAt: refreshExpiry,
		})
		if err != nil {
			return err
		}

		pair = &domain.TokenPair{
			AccessToken:      accessToken,
			AccessExpiresAt:  now.Add(s.Codec.TTL(tokenx.PurposeAccess)),
			RefreshToken:     refreshToken,
			RefreshExpiresAt: refreshExpiry,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return pair, nil
}

// Revoke deletes the session for a presented refresh token. Idempotent;
// revoking an unknown token is not an error.
func (s *SessionService) Revoke(ctx context.Context, presentedToken string) error {
	if presentedToken == "" {
		return nil
	}
	_, err := s.Store.Sessions().DeleteSessionByTokenHash(ctx, cryptox.FingerprintToken(presentedToken))
	return err
}
