package services

import (
	"context"
	"fmt"

	"github.com/zatekoja/travelplanner/internal/domain/entities"
	"github.com/zatekoja/travelplanner/internal/domain/repositories"
	apperrors "github.com/zatekoja/travelplanner/pkg/errors"
)

// UserService manages user profiles. Accounts are created elsewhere.
type UserService struct {
	repo repositories.UserRepository
}

// NewUserService creates a new user service
func NewUserService(repo repositories.UserRepository) *UserService {
	return &UserService{repo: repo}
}

// List returns every user
func (s *UserService) List(ctx context.Context) ([]*entities.User, error) {
	return s.repo.List(ctx)
}

// Get returns a user. Callers may read themselves; admins may read anyone.
func (s *UserService) Get(ctx context.Context, principal *entities.Principal, id int64) (*entities.User, error) {
	if err := requireSelfOrAdmin(principal, id); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// Update applies a profile patch. Only admins may change role or verification.
func (s *UserService) Update(ctx context.Context, principal *entities.Principal, id int64, patch *entities.UserPatch) (*entities.User, error) {
	if err := requireSelfOrAdmin(principal, id); err != nil {
		return nil, err
	}
	if patch.Privileged() && !principal.IsAdmin() {
		return nil, apperrors.NewForbiddenError("only admins may change role or verification")
	}
	if err := patch.Validate(); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(user)
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete deletes a user
func (s *UserService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func requireSelfOrAdmin(principal *entities.Principal, id int64) error {
	if principal == nil {
		return apperrors.NewUnauthorizedError("authentication required")
	}
	if principal.UserID != id && !principal.IsAdmin() {
		return apperrors.NewForbiddenError(fmt.Sprintf("cannot access user %d", id))
	}
	return nil
}
