package service

import (
	"context"

	"github.com/quartzlabs/signet/internal/auth/domain"
	"github.com/quartzlabs/signet/internal/auth/store"
)

type UserService struct {
	Store store.Store
}

// GetUserByID fetches a user by id.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (domain.User, error) {
	return s.Store.Users().GetUserByID(ctx, userID)
}

// ListUsers returns all users as claim projections, oldest first. Password
// hashes and activation links never leave the service.
func (s *UserService) ListUsers(ctx context.Context) ([]domain.UserClaims, error) {
	users, err := s.Store.Users().ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.UserClaims, 0, len(users))
	for _, u := range users {
		out = append(out, u.Claims())
	}
	return out, nil
}

// CountUsers reports the total number of registered users.
func (s *UserService) CountUsers(ctx context.Context) (int64, error) {
	return s.Store.Users().CountUsers(ctx)
}
