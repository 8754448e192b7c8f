package service

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/quartzlabs/signet/internal/auth/mail"
	"github.com/quartzlabs/signet/internal/auth/store"
	"github.com/quartzlabs/signet/internal/auth/store/drivers/sqlite"
	"github.com/quartzlabs/signet/pkg/cryptox"
	"github.com/quartzlabs/signet/pkg/jwtx"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "service-test")
	if err != nil {
		panic(err)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

type fixture struct {
	store  store.Store
	auth   *AuthService
	tokens *TokenService
	mailer *mail.RecordingMailer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	access, err := jwtx.NewHS256([]byte("test-access-secret-0123456789abcdef"), "signet-test")
	require.NoError(t, err)
	refresh, err := jwtx.NewHS256([]byte("test-refresh-secret-0123456789abcdef"), "signet-test")
	require.NoError(t, err)

	tokens := &TokenService{
		Access:     access,
		Refresh:    refresh,
		AccessTTL:  jwtx.DefaultAccessTokenTTL,
		RefreshTTL: jwtx.DefaultRefreshTokenTTL,
	}

	mailer := &mail.RecordingMailer{}

	return &fixture{
		store:  st,
		tokens: tokens,
		mailer: mailer,
		auth: &AuthService{
			Store:  st,
			Tokens: tokens,
			Mail: &mail.ActivationSender{
				Mailer:     mailer,
				APIBaseURL: "http://auth.test",
			},
		},
	}
}

func TestRegisterIssuesSessionAndMail(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	sess, err := f.auth.Register(ctx, "u@example.com", "pw123")
	require.NoError(t, err)

	require.Equal(t, "u@example.com", sess.User.Email)
	require.False(t, sess.User.Activated)
	require.NotEmpty(t, sess.Tokens.AccessToken)
	require.NotEmpty(t, sess.Tokens.RefreshToken)
	require.Equal(t, jwtx.DefaultAccessTokenTTL, sess.Tokens.ExpiresIn)

	// Access token verifies statelessly and carries the user's claims.
	claims, err := f.tokens.VerifyAccessToken(sess.Tokens.AccessToken)
	require.NoError(t, err)
	require.Equal(t, sess.User.ID, claims.ID)
	require.Equal(t, "u@example.com", claims.Email)
	require.False(t, claims.Activated)

	// Refresh token is persisted for the new user.
	rec, err := f.tokens.FindToken(ctx, f.store.RefreshTokens(), sess.Tokens.RefreshToken)
	require.NoError(t, err)
	require.Equal(t, sess.User.ID, rec.UserID)

	// One activation mail went out, linking back to this service.
	sent := f.mailer.Sent()
	require.Len(t, sent, 1)
	require.Equal(t, "u@example.com", sent[0].To)
	require.Contains(t, sent[0].Body, "http://auth.test/activate/")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.auth.Register(ctx, "dup@example.com", "pw123")
	require.NoError(t, err)

	_, err = f.auth.Register(ctx, "dup@example.com", "other")
	require.ErrorIs(t, err, ErrEmailTaken)

	// The failed attempt sent no mail.
	require.Len(t, f.mailer.Sent(), 1)
}

func TestRegisterSurvivesMailFailure(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.mailer.FailWith = context.DeadlineExceeded

	sess, err := f.auth.Register(ctx, "u@example.com", "pw123")
	require.NoError(t, err)
	require.NotEmpty(t, sess.Tokens.RefreshToken)

	// User exists despite the failed delivery.
	_, err = f.store.Users().GetUserByEmail(ctx, "u@example.com")
	require.NoError(t, err)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	reg, err := f.auth.Register(ctx, "u@example.com", "pw123")
	require.NoError(t, err)

	sess, err := f.auth.Login(ctx, "u@example.com", "pw123")
	require.NoError(t, err)
	require.Equal(t, reg.User.ID, sess.User.ID)

	claims, err := f.tokens.VerifyAccessToken(sess.Tokens.AccessToken)
	require.NoError(t, err)
	require.Equal(t, reg.User.ID, claims.ID)

	// Login overwrote the registration-time refresh token.
	_, err = f.tokens.FindToken(ctx, f.store.RefreshTokens(), reg.Tokens.RefreshToken)
	require.ErrorIs(t, err, store.ErrNotFound)
	_, err = f.tokens.FindToken(ctx, f.store.RefreshTokens(), sess.Tokens.RefreshToken)
	require.NoError(t, err)
}

func TestLoginWrongPassword(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	reg, err := f.auth.Register(ctx, "u@example.com", "pw123")
	require.NoError(t, err)

	_, err = f.auth.Login(ctx, "u@example.com", "wrongpw")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	// The failed login did not disturb the stored refresh token.
	_, err = f.tokens.FindToken(ctx, f.store.RefreshTokens(), reg.Tokens.RefreshToken)
	require.NoError(t, err)
}

func TestLoginUnknownEmail(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.auth.Login(ctx, "nobody@example.com", "pw123")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestActivate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	sess, err := f.auth.Register(ctx, "u@example.com", "pw123")
	require.NoError(t, err)

	u, err := f.store.Users().GetUserByID(ctx, sess.User.ID)
	require.NoError(t, err)

	activated, err := f.auth.Activate(ctx, u.ActivationLink)
	require.NoError(t, err)
	require.True(t, activated.Activated)

	// Presenting the link again is a no-op, not an error.
	again, err := f.auth.Activate(ctx, u.ActivationLink)
	require.NoError(t, err)
	require.True(t, again.Activated)
}

func TestActivateUnknownLink(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.auth.Activate(ctx, "not-a-real-link")
	require.ErrorIs(t, err, ErrInvalidActivationLink)
}

func TestRefreshRotatesToken(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	reg, err := f.auth.Register(ctx, "u@example.com", "pw123")
	require.NoError(t, err)

	next, err := f.auth.Refresh(ctx, reg.Tokens.RefreshToken)
	require.NoError(t, err)
	require.NotEqual(t, reg.Tokens.RefreshToken, next.Tokens.RefreshToken)

	// The superseded token still has a valid signature but fails the store
	// check, so replaying it is rejected.
	_, err = f.tokens.VerifyRefreshToken(reg.Tokens.RefreshToken)
	require.NoError(t, err)
	_, err = f.auth.Refresh(ctx, reg.Tokens.RefreshToken)
	require.ErrorIs(t, err, ErrUnauthenticated)

	// The new token refreshes fine.
	_, err = f.auth.Refresh(ctx, next.Tokens.RefreshToken)
	require.NoError(t, err)
}

func TestRefreshRejectsGarbage(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.auth.Refresh(ctx, "")
	require.ErrorIs(t, err, ErrUnauthenticated)

	_, err = f.auth.Refresh(ctx, "not.a.jwt")
	require.ErrorIs(t, err, ErrUnauthenticated)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	sess, err := f.auth.Register(ctx, "u@example.com", "pw123")
	require.NoError(t, err)

	// Access tokens are signed with a different secret and must never pass
	// as refresh tokens.
	_, err = f.auth.Refresh(ctx, sess.Tokens.AccessToken)
	require.ErrorIs(t, err, ErrUnauthenticated)
}

func TestLogoutInvalidatesRefresh(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	sess, err := f.auth.Register(ctx, "u@example.com", "pw123")
	require.NoError(t, err)

	require.NoError(t, f.auth.Logout(ctx, sess.Tokens.RefreshToken))

	_, err = f.auth.Refresh(ctx, sess.Tokens.RefreshToken)
	require.ErrorIs(t, err, ErrUnauthenticated)

	// Logout is idempotent, even with junk input.
	require.NoError(t, f.auth.Logout(ctx, sess.Tokens.RefreshToken))
	require.NoError(t, f.auth.Logout(ctx, ""))
	require.NoError(t, f.auth.Logout(ctx, "never-issued"))
}

func TestRegisterLoginActivateRefreshFlow(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	reg, err := f.auth.Register(ctx, "u@example.com", "pw123")
	require.NoError(t, err)
	require.False(t, reg.User.Activated)

	_, err = f.auth.Login(ctx, "u@example.com", "wrongpw")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	u, err := f.store.Users().GetUserByID(ctx, reg.User.ID)
	require.NoError(t, err)
	_, err = f.auth.Activate(ctx, u.ActivationLink)
	require.NoError(t, err)

	// Login again so we hold the current refresh token, then refresh: the
	// new claims reflect the activation that happened in between.
	sess, err := f.auth.Login(ctx, "u@example.com", "pw123")
	require.NoError(t, err)

	next, err := f.auth.Refresh(ctx, sess.Tokens.RefreshToken)
	require.NoError(t, err)
	require.True(t, next.User.Activated)

	claims, err := f.tokens.VerifyAccessToken(next.Tokens.AccessToken)
	require.NoError(t, err)
	require.True(t, claims.Activated)

	_, err = f.auth.Refresh(ctx, sess.Tokens.RefreshToken)
	require.ErrorIs(t, err, ErrUnauthenticated)
}

func TestRefreshExpiredStoredToken(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	sess, err := f.auth.Register(ctx, "u@example.com", "pw123")
	require.NoError(t, err)

	// Housekeeping removed the stored record; the signature alone is not
	// enough to refresh.
	require.NoError(t, f.store.RefreshTokens().DeleteExpiredRefreshTokens(ctx))
	require.NoError(t, f.auth.Logout(ctx, sess.Tokens.RefreshToken))

	_, err = f.auth.Refresh(ctx, sess.Tokens.RefreshToken)
	require.ErrorIs(t, err, ErrUnauthenticated)
}

func TestHousekeepingStartStop(t *testing.T) {
	f := newFixture(t)

	hk := NewHousekeepingService(f.store, slog.New(slog.DiscardHandler), 50*time.Millisecond)
	hk.Start()
	time.Sleep(75 * time.Millisecond)
	hk.Stop()
}
