package service

import (
	"context"
	"time"

	"github.com/quartzlabs/signet/internal/auth/domain"
	"github.com/quartzlabs/signet/internal/auth/store"
	"github.com/quartzlabs/signet/pkg/cryptox"
	"github.com/quartzlabs/signet/pkg/idx"
	"github.com/quartzlabs/signet/pkg/jwtx"
)

// TokenService mints and verifies the two token kinds. Access tokens are
// verified statelessly (signature + expiry only); refresh tokens must
// additionally exist in the store, which is what makes logout and rotation
// effective before the token's natural expiry.
type TokenService struct {
	Access  *jwtx.HS256
	Refresh *jwtx.HS256

	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// GenerateTokens signs a fresh access/refresh pair carrying the user's
// claims. The two tokens use distinct secrets, so a refresh token never
// verifies as an access token or vice versa.
func (s *TokenService) GenerateTokens(u domain.UserClaims, now time.Time) (domain.TokenPair, error) {
	access, err := s.Access.Sign(
		jwtx.NewClaims(u.ID, u.Email, u.Activated, s.AccessTTL, s.Access.Issuer(), now))
	if err != nil {
		return domain.TokenPair{}, err
	}

	refresh, err := s.Refresh.Sign(
		jwtx.NewClaims(u.ID, u.Email, u.Activated, s.RefreshTTL, s.Refresh.Issuer(), now))
	if err != nil {
		return domain.TokenPair{}, err
	}

	return domain.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    s.AccessTTL,
	}, nil
}

// VerifyAccessToken checks signature and validity window against the access
// secret. No store lookup happens here.
func (s *TokenService) VerifyAccessToken(token string) (domain.UserClaims, error) {
	return s.verify(s.Access, token)
}

// VerifyRefreshToken checks signature and validity window against the refresh
// secret. Callers still need FindToken to learn whether the token has been
// rotated out or revoked.
func (s *TokenService) VerifyRefreshToken(token string) (domain.UserClaims, error) {
	return s.verify(s.Refresh, token)
}

func (s *TokenService) verify(v *jwtx.HS256, token string) (domain.UserClaims, error) {
	claims, err := v.Verify(token)
	if err != nil {
		return domain.UserClaims{}, err
	}
	return domain.UserClaims{
		ID:        claims.Subject,
		Email:     claims.Email,
		Activated: claims.Activated,
	}, nil
}

// SaveToken persists the refresh token for userID, overwriting any prior
// record for that user. The overwrite is the rotation point: the superseded
// token stops resolving in FindToken even though its signature stays valid.
func (s *TokenService) SaveToken(ctx context.Context, tokens store.RefreshTokens, userID, refreshToken string, now time.Time) error {
	return tokens.UpsertRefreshToken(ctx, domain.RefreshToken{
		ID:        idx.New().String(),
		UserID:    userID,
		TokenHash: cryptox.FingerprintToken(refreshToken),
		ExpiresAt: now.Add(s.RefreshTTL),
	})
}

// FindToken resolves the stored record for a presented refresh token, or
// store.ErrNotFound if it was rotated out, revoked, or never issued.
func (s *TokenService) FindToken(ctx context.Context, tokens store.RefreshTokens, refreshToken string) (domain.RefreshToken, error) {
	return tokens.GetRefreshTokenByHash(ctx, cryptox.FingerprintToken(refreshToken))
}

// RemoveToken deletes the stored record for a presented refresh token.
// Removing a token that is not stored is a no-op.
func (s *TokenService) RemoveToken(ctx context.Context, tokens store.RefreshTokens, refreshToken string) error {
	return tokens.DeleteRefreshTokenByHash(ctx, cryptox.FingerprintToken(refreshToken))
}
