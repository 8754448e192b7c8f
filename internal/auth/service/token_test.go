package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/quartzlabs/signet/internal/auth/domain"
	"github.com/quartzlabs/signet/internal/auth/store"
	"github.com/quartzlabs/signet/pkg/jwtx"
)

func TestGenerateTokensUsesDistinctSecrets(t *testing.T) {
	f := newFixture(t)
	now := time.Now()

	claims := domain.UserClaims{ID: "user-1", Email: "u@example.com"}
	pair, err := f.tokens.GenerateTokens(claims, now)
	require.NoError(t, err)
	require.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	// Each token only verifies against its own secret.
	_, err = f.tokens.VerifyAccessToken(pair.AccessToken)
	require.NoError(t, err)
	_, err = f.tokens.VerifyAccessToken(pair.RefreshToken)
	require.ErrorIs(t, err, jwtx.ErrInvalidSig)
	_, err = f.tokens.VerifyRefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	_, err = f.tokens.VerifyRefreshToken(pair.AccessToken)
	require.ErrorIs(t, err, jwtx.ErrInvalidSig)
}

func TestVerifyAccessTokenExpired(t *testing.T) {
	f := newFixture(t)

	// Mint a pair whose access token expired an hour ago.
	past := time.Now().Add(-time.Hour - jwtx.DefaultAccessTokenTTL)
	pair, err := f.tokens.GenerateTokens(domain.UserClaims{ID: "user-1"}, past)
	require.NoError(t, err)

	_, err = f.tokens.VerifyAccessToken(pair.AccessToken)
	require.ErrorIs(t, err, jwtx.ErrExpired)
}

func TestSaveTokenOverwritesPerUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	now := time.Now()

	sess, err := f.auth.Register(ctx, "u@example.com", "pw123")
	require.NoError(t, err)

	pair, err := f.tokens.GenerateTokens(sess.User, now)
	require.NoError(t, err)
	require.NoError(t, f.tokens.SaveToken(ctx, f.store.RefreshTokens(), sess.User.ID, pair.RefreshToken, now))

	// At most one stored token per user: the registration-time one is gone.
	_, err = f.tokens.FindToken(ctx, f.store.RefreshTokens(), sess.Tokens.RefreshToken)
	require.ErrorIs(t, err, store.ErrNotFound)

	rec, err := f.tokens.FindToken(ctx, f.store.RefreshTokens(), pair.RefreshToken)
	require.NoError(t, err)
	require.Equal(t, sess.User.ID, rec.UserID)
	require.WithinDuration(t, now.Add(f.tokens.RefreshTTL), rec.ExpiresAt, time.Second)
}

func TestRemoveTokenIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	sess, err := f.auth.Register(ctx, "u@example.com", "pw123")
	require.NoError(t, err)

	require.NoError(t, f.tokens.RemoveToken(ctx, f.store.RefreshTokens(), sess.Tokens.RefreshToken))
	require.NoError(t, f.tokens.RemoveToken(ctx, f.store.RefreshTokens(), sess.Tokens.RefreshToken))

	_, err = f.tokens.FindToken(ctx, f.store.RefreshTokens(), sess.Tokens.RefreshToken)
	require.ErrorIs(t, err, store.ErrNotFound)
}
