package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/zatekoja/travelplanner/internal/domain/entities"
	"github.com/zatekoja/travelplanner/internal/domain/repositories"
	"github.com/zatekoja/travelplanner/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/travelplanner/pkg/errors"
)

var userColumns = []string{
	"id", "email", "password_hash", "full_name", "avatar_url", "phone", "address",
	"bio", "role", "is_verified", "created_at", "updated_at",
}

// UserAdapter implements UserRepository. Accounts are created by the auth flow.
type UserAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewUserAdapter creates a new user adapter
func NewUserAdapter(client *postgres.Client) repositories.UserRepository {
	return &UserAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// GetByID retrieves a user by ID
func (a *UserAdapter) GetByID(ctx context.Context, id int64) (*entities.User, error) {
	query, _, err := a.db.Select(columns(userColumns...)...).From("users").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	user, err := scanUser(a.client.DB().QueryRowContext(ctx, query))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("user with id %d not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get user", err)
	}
	return user, nil
}

// List returns every user, newest first
func (a *UserAdapter) List(ctx context.Context) ([]*entities.User, error) {
	query, _, err := a.db.Select(columns(userColumns...)...).From("users").
		Order(goqu.I("created_at").Desc(), goqu.I("id").Desc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list users", err)
	}
	defer rows.Close()

	users := make([]*entities.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan user", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate users", err)
	}
	return users, nil
}

// Update writes the profile fields, role and verification flag
func (a *UserAdapter) Update(ctx context.Context, user *entities.User) error {
	user.UpdatedAt = time.Now().UTC()
	query, _, err := a.db.Update("users").
		Set(goqu.Record{
			"full_name":   nullString(user.FullName),
			"avatar_url":  nullString(user.AvatarURL),
			"phone":       nullString(user.Phone),
			"address":     nullString(user.Address),
			"bio":         nullString(user.Bio),
			"role":        user.Role,
			"is_verified": user.IsVerified,
			"updated_at":  user.UpdatedAt,
		}).
		Where(goqu.Ex{"id": user.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	return execExpectingRow(ctx, a.client.DB(), query, fmt.Sprintf("user with id %d not found", user.ID), "failed to update user")
}

// Delete deletes a user
func (a *UserAdapter) Delete(ctx context.Context, id int64) error {
	query, _, err := a.db.Delete("users").Where(goqu.Ex{"id": id}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}
	return execExpectingRow(ctx, a.client.DB(), query, fmt.Sprintf("user with id %d not found", id), "failed to delete user")
}

func scanUser(row rowScanner) (*entities.User, error) {
	user := &entities.User{}
	var fullName, avatarURL, phone, address, bio sql.NullString

	if err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&fullName,
		&avatarURL,
		&phone,
		&address,
		&bio,
		&user.Role,
		&user.IsVerified,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}

	user.FullName = fullName.String
	user.AvatarURL = avatarURL.String
	user.Phone = phone.String
	user.Address = address.String
	user.Bio = bio.String
	return user, nil
}
