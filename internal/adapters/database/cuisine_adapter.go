package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/doug-martin/goqu/v9"
	"github.com/zatekoja/travelplanner/internal/domain/entities"
	"github.com/zatekoja/travelplanner/internal/domain/repositories"
	"github.com/zatekoja/travelplanner/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/travelplanner/pkg/errors"
)

// CuisineAdapter implements CuisineRepository
type CuisineAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewCuisineAdapter creates a new cuisine adapter
func NewCuisineAdapter(client *postgres.Client) repositories.CuisineRepository {
	return &CuisineAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a cuisine
func (a *CuisineAdapter) Create(ctx context.Context, cuisine *entities.Cuisine) error {
	cuisine.Name = strings.TrimSpace(cuisine.Name)
	query, _, err := a.db.Insert("cuisines").
		Rows(goqu.Record{"name": cuisine.Name}).
		Returning("id").
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if err := a.client.DB().QueryRowContext(ctx, query).Scan(&cuisine.ID); err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewValidationError(fmt.Sprintf("cuisine %q already exists", cuisine.Name))
		}
		return apperrors.NewInternalError("failed to create cuisine", err)
	}
	return nil
}

// List returns every cuisine ordered by name
func (a *CuisineAdapter) List(ctx context.Context) ([]*entities.Cuisine, error) {
	query, _, err := a.db.Select("id", "name").From("cuisines").
		Order(goqu.I("name").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list cuisines", err)
	}
	defer rows.Close()

	cuisines := make([]*entities.Cuisine, 0)
	for rows.Next() {
		c := &entities.Cuisine{}
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, apperrors.NewInternalError("failed to scan cuisine", err)
		}
		cuisines = append(cuisines, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate cuisines", err)
	}
	return cuisines, nil
}

// Update renames a cuisine
func (a *CuisineAdapter) Update(ctx context.Context, cuisine *entities.Cuisine) error {
	cuisine.Name = strings.TrimSpace(cuisine.Name)
	query, _, err := a.db.Update("cuisines").
		Set(goqu.Record{"name": cuisine.Name}).
		Where(goqu.Ex{"id": cuisine.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	err = execExpectingRow(ctx, a.client.DB(), query, fmt.Sprintf("cuisine with id %d not found", cuisine.ID), "failed to update cuisine")
	if isUniqueViolation(err) {
		return apperrors.NewValidationError(fmt.Sprintf("cuisine %q already exists", cuisine.Name))
	}
	return err
}

// Delete deletes a cuisine. Join rows go with it.
func (a *CuisineAdapter) Delete(ctx context.Context, id int64) error {
	query, _, err := a.db.Delete("cuisines").Where(goqu.Ex{"id": id}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}
	return execExpectingRow(ctx, a.client.DB(), query, fmt.Sprintf("cuisine with id %d not found", id), "failed to delete cuisine")
}
