package services_test

import (
	"context"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/travelplanner/internal/application/services"
	"github.com/zatekoja/travelplanner/internal/domain/entities"
	apperrors "github.com/zatekoja/travelplanner/pkg/errors"
	"github.com/zatekoja/travelplanner/tests/mocks"
)

func TestUserService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("self", func(t *testing.T) {
		repo := mocks.NewUserRepository(t)
		repo.On("GetByID", ctx, int64(5)).Return(&entities.User{ID: 5}, nil)

		user, err := services.NewUserService(repo).Get(ctx, &entities.Principal{UserID: 5, Role: entities.RoleUser}, 5)
		require.NoError(t, err)
		assert.Equal(t, int64(5), user.ID)
	})

	t.Run("another user", func(t *testing.T) {
		_, err := services.NewUserService(mocks.NewUserRepository(t)).Get(ctx, &entities.Principal{UserID: 6, Role: entities.RoleUser}, 5)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeForbidden))
	})

	t.Run("anonymous", func(t *testing.T) {
		_, err := services.NewUserService(mocks.NewUserRepository(t)).Get(ctx, nil, 5)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnauthorized))
	})
}

func TestUserService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("self edits profile", func(t *testing.T) {
		repo := mocks.NewUserRepository(t)
		repo.On("GetByID", ctx, int64(5)).Return(&entities.User{ID: 5, FullName: "Old", Role: entities.RoleUser}, nil)
		repo.On("Update", ctx, mock.MatchedBy(func(u *entities.User) bool {
			return u.FullName == "New" && u.Role == entities.RoleUser
		})).Return(nil)

		user, err := services.NewUserService(repo).Update(ctx, &entities.Principal{UserID: 5, Role: entities.RoleUser}, 5,
			&entities.UserPatch{FullName: lo.ToPtr("New")})
		require.NoError(t, err)
		assert.Equal(t, "New", user.FullName)
	})

	t.Run("self cannot promote", func(t *testing.T) {
		_, err := services.NewUserService(mocks.NewUserRepository(t)).Update(ctx, &entities.Principal{UserID: 5, Role: entities.RoleUser}, 5,
			&entities.UserPatch{Role: lo.ToPtr(entities.RoleAdmin)})
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeForbidden))
	})

	t.Run("admin verifies user", func(t *testing.T) {
		repo := mocks.NewUserRepository(t)
		repo.On("GetByID", ctx, int64(5)).Return(&entities.User{ID: 5}, nil)
		repo.On("Update", ctx, mock.MatchedBy(func(u *entities.User) bool { return u.IsVerified })).Return(nil)

		_, err := services.NewUserService(repo).Update(ctx, &entities.Principal{UserID: 1, Role: entities.RoleAdmin}, 5,
			&entities.UserPatch{IsVerified: lo.ToPtr(true)})
		assert.NoError(t, err)
	})

	t.Run("unknown role", func(t *testing.T) {
		_, err := services.NewUserService(mocks.NewUserRepository(t)).Update(ctx, &entities.Principal{UserID: 1, Role: entities.RoleAdmin}, 5,
			&entities.UserPatch{Role: lo.ToPtr("owner")})
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})
}
