package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"unicode"

	"github.com/powoftech/relic-chat/internal/auth/domain"
	"github.com/powoftech/relic-chat/internal/auth/mail"
	"github.com/powoftech/relic-chat/internal/auth/otp"
	"github.com/powoftech/relic-chat/internal/auth/store"
	"github.com/powoftech/relic-chat/pkg/slogx"
	"github.com/powoftech/relic-chat/pkg/tokenx"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// VerificationService drives signup and signin attempts through the
// credentials-accepted, passcode-issued, passcode-confirmed states, and
// hands confirmed attempts to the session manager.
type VerificationService struct {
	Directory *DirectoryService
	Sessions  *SessionService
	OTP       otp.Store
	Mailer    mail.Mailer
	Codec     *tokenx.Codec
}

// BeginSignup validates input, creates the unconfirmed account and issues
// the verification challenge. If the challenge mail cannot be delivered
// the freshly created account is rolled back, so a failed signup never
// leaves an unreachable account behind.
func (s *VerificationService) BeginSignup(ctx context.Context, email, username, displayName, password string) (*domain.VerificationAttempt, error) {
	l := slogx.FromContext(ctx)

	if err := validateSignup(email, username, displayName, password); err != nil {
		return nil, err
	}

	user, err := s.Directory.Create(ctx, email, username, displayName, password)
	if err != nil {
		return nil, err
	}

	attempt, err := s.challenge(ctx, user)
	if err != nil {
		// Compensate: the account must not survive without a way to
		// confirm it.
		if delErr := s.Directory.Delete(ctx, user.ID); delErr != nil {
			l.Error("signup rollback failed",
				slog.String("user_id", user.ID),
				slog.Any("err", delErr),
			)
		}
		return nil, fmt.Errorf("send verification mail: %w", err)
	}

	l.Info("signup attempt started", slog.String("user_id", user.ID))
	return attempt, nil
}

// BeginSignin verifies credentials and issues the verification challenge.
// Unknown account and wrong password both come back as ErrUnauthorized.
func (s *VerificationService) BeginSignin(ctx context.Context, email, password string) (*domain.VerificationAttempt, error) {
	l := slogx.FromContext(ctx)

	if strings.TrimSpace(email) == "" || password == "" {
		return nil, ErrUnauthorized
	}

	user, err := s.Directory.VerifyPassword(ctx, email, password)
	if err != nil {
		return nil, err
	}

	attempt, err := s.challenge(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("send verification mail: %w", err)
	}

	l.Info("signin attempt started", slog.String("user_id", user.ID))
	return attempt, nil
}

// Confirm redeems a {verification token, code} pair for a session. The
// code is taken atomically before the token is decoded, so an expired
// attempt reads as a bad code, and a replay can never double-issue a
// session.
func (s *VerificationService) Confirm(ctx context.Context, verificationToken, suppliedCode string) (*domain.TokenPair, error) {
	l := slogx.FromContext(ctx)

	if verificationToken == "" || suppliedCode == "" {
		return nil, ErrUnauthorized
	}

	taken, err := s.OTP.Take(ctx, verificationToken, suppliedCode)
	if err != nil {
		return nil, err
	}
	if !taken {
		return nil, ErrInvalidCode
	}

	subject, err := s.Codec.DecodeSubject(verificationToken, tokenx.PurposeVerification)
	if err != nil {
		l.Warn("verification token rejected", slog.Any("err", err))
		return nil, ErrInvalidToken
	}

	user, err := s.Directory.FindByEmail(ctx, subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}

	if err := s.Directory.MarkEmailConfirmed(ctx, user.ID); err != nil {
		return nil, err
	}

	pair, err := s.Sessions.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	l.Info("verification confirmed", slog.String("user_id", user.ID))
	return pair, nil
}

// challenge issues the verification token, binds a fresh OTP to it and
// mails the code.
func (s *VerificationService) challenge(ctx context.Context, user domain.User) (*domain.VerificationAttempt, error) {
	token, err := s.Codec.Issue(user.NormalizedEmail, tokenx.PurposeVerification)
	if err != nil {
		return nil, err
	}

	code, err := s.OTP.Issue(ctx, token)
	if err != nil {
		return nil, err
	}

	body := mail.VerificationBody(user.DisplayName, code)
	if err := s.Mailer.Send(ctx, user.Email, mail.VerificationSubject, body); err != nil {
		// The orphaned code expires on its own, but there is no reason
		// to keep it live.
		_ = s.OTP.Consume(ctx, token)
		return nil, err
	}

	return &domain.VerificationAttempt{Token: token}, nil
}

func validateSignup(email, username, displayName, password string) error {
	if strings.TrimSpace(email) == "" {
		return invalid("email", "must not be empty")
	}
	if !strings.Contains(email, "@") {
		return invalid("email", "must be a valid email address")
	}

	username = strings.TrimSpace(username)
	switch {
	case len(username) < 2:
		return invalid("username", "must be at least 2 characters")
	case len(username) > 30:
		return invalid("username", "must be at most 30 characters")
	case !usernamePattern.MatchString(username):
		return invalid("username", "may only contain letters, digits and underscores")
	case !containsLetter(username):
		return invalid("username", "must contain at least one letter")
	}

	if len(strings.TrimSpace(displayName)) < 2 {
		return invalid("displayName", "must be at least 2 characters")
	}

	if password == "" {
		return invalid("password", "must not be empty")
	}

	return nil
}

func containsLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
