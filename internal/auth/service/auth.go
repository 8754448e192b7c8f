package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/quartzlabs/signet/internal/auth/domain"
	"github.com/quartzlabs/signet/internal/auth/mail"
	"github.com/quartzlabs/signet/internal/auth/store"
	"github.com/quartzlabs/signet/pkg/cryptox"
	"github.com/quartzlabs/signet/pkg/idx"
	"github.com/quartzlabs/signet/pkg/slogx"
)

// Caller-facing error kinds. The HTTP layer translates these into status
// codes; anything else that escapes the service is an internal error and is
// logged with context before being surfaced as an opaque failure.
var (
	ErrEmailTaken            = errors.New("email_taken")
	ErrUserNotFound          = errors.New("user_not_found")
	ErrInvalidCredentials    = errors.New("invalid_credentials")
	ErrInvalidActivationLink = errors.New("invalid_activation_link")
	ErrUnauthenticated       = errors.New("unauthenticated")
)

// Session is what a successful register/login/refresh hands back: the token
// pair plus the claims embedded in it.
type Session struct {
	Tokens domain.TokenPair
	User   domain.UserClaims
}

// AuthService orchestrates the registration, activation and session
// lifecycle use cases over the store, token service and mailer.
type AuthService struct {
	Store  store.Store
	Tokens *TokenService
	Mail   *mail.ActivationSender
}

// Register creates an unactivated user, issues a first token pair, and
// dispatches the activation mail. The user row and the refresh token are
// written in one transaction; the mail attempt happens after commit and a
// delivery failure does not fail the registration.
func (s *AuthService) Register(ctx context.Context, email, password string) (Session, error) {
	now := time.Now()
	l := slogx.FromContext(ctx)

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return Session{}, err
	}

	u := domain.User{
		ID:             idx.New().String(),
		Email:          email,
		PasswordHash:   hash,
		ActivationLink: uuid.NewString(),
	}

	pair, err := s.Tokens.GenerateTokens(u.Claims(), now)
	if err != nil {
		return Session{}, err
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, u); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrEmailTaken
			}
			return err
		}
		return s.Tokens.SaveToken(ctx, tx.RefreshTokens(), u.ID, pair.RefreshToken, now)
	})
	if err != nil {
		return Session{}, err
	}

	if err := s.Mail.SendActivationMail(ctx, u.Email, u.ActivationLink); err != nil {
		l.Warn("activation mail send failed",
			slog.String("user_id", u.ID),
			slog.Any("error", err),
		)
	}

	return Session{Tokens: pair, User: u.Claims()}, nil
}

// Activate flips the user behind the presented link to activated. Presenting
// the same link again after activation succeeds and changes nothing.
func (s *AuthService) Activate(ctx context.Context, link string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByActivationLink(ctx, link)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrInvalidActivationLink
		}
		return domain.User{}, err
	}

	if !u.Activated {
		if err := s.Store.Users().MarkUserActivated(ctx, u.ID); err != nil {
			return domain.User{}, err
		}
		u.Activated = true
	}

	return u, nil
}

// Login verifies the credentials and issues a fresh token pair, overwriting
// any refresh token the user held before.
func (s *AuthService) Login(ctx context.Context, email, password string) (Session, error) {
	now := time.Now()
	l := slogx.FromContext(ctx)

	u, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Session{}, ErrUserNotFound
		}
		return Session{}, err
	}

	if err := cryptox.VerifyPassword(password, u.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			l.Info("login password verification failed", slog.String("user_id", u.ID))
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, err
	}

	pair, err := s.Tokens.GenerateTokens(u.Claims(), now)
	if err != nil {
		return Session{}, err
	}

	if err := s.Tokens.SaveToken(ctx, s.Store.RefreshTokens(), u.ID, pair.RefreshToken, now); err != nil {
		return Session{}, err
	}

	return Session{Tokens: pair, User: u.Claims()}, nil
}

// Logout drops the stored refresh token. It succeeds whether or not the
// token was still stored, so repeated logouts are harmless.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.Tokens.RemoveToken(ctx, s.Store.RefreshTokens(), refreshToken)
}

// Refresh exchanges a refresh token for a new token pair. The presented
// token must both carry a valid signature and still exist in the store; a
// rotated-out token keeps a valid signature until expiry but fails the store
// check. Claims are rebuilt from the current user record so a login state
// change (activation) is reflected in the new pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (Session, error) {
	now := time.Now()
	l := slogx.FromContext(ctx)

	if refreshToken == "" {
		return Session{}, ErrUnauthenticated
	}

	claims, err := s.Tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		l.Debug("refresh token verification failed", slog.Any("error", err))
		return Session{}, ErrUnauthenticated
	}

	var sess Session
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := s.Tokens.FindToken(ctx, tx.RefreshTokens(), refreshToken); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrUnauthenticated
			}
			return err
		}

		u, err := tx.Users().GetUserByID(ctx, claims.ID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrUnauthenticated
			}
			return err
		}

		pair, err := s.Tokens.GenerateTokens(u.Claims(), now)
		if err != nil {
			return err
		}

		// The upsert keyed by user id is the rotation point: storing the
		// new fingerprint replaces the old one, so the presented token
		// stops resolving the moment the transaction commits.
		if err := s.Tokens.SaveToken(ctx, tx.RefreshTokens(), u.ID, pair.RefreshToken, now); err != nil {
			return err
		}

		sess = Session{Tokens: pair, User: u.Claims()}
		return nil
	})
	if err != nil {
		return Session{}, err
	}

	return sess, nil
}
