package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/zatekoja/travelplanner/internal/domain/entities"
	"github.com/zatekoja/travelplanner/internal/domain/repositories"
	"github.com/zatekoja/travelplanner/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/travelplanner/pkg/errors"
)

var regionColumns = []interface{}{
	"id", "name", "description", "cover_image", "latitude", "longitude", "created_at",
}

// RegionAdapter implements RegionRepository
type RegionAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewRegionAdapter creates a new region adapter
func NewRegionAdapter(client *postgres.Client) repositories.RegionRepository {
	return &RegionAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

func regionRecord(region *entities.Region) goqu.Record {
	return goqu.Record{
		"name":        region.Name,
		"description": nullString(region.Description),
		"cover_image": nullString(region.CoverImage),
		"latitude":    nullFloat64(region.Latitude),
		"longitude":   nullFloat64(region.Longitude),
	}
}

// Create inserts a region
func (a *RegionAdapter) Create(ctx context.Context, region *entities.Region) error {
	record := regionRecord(region)
	region.CreatedAt = time.Now().UTC()
	record["created_at"] = region.CreatedAt

	query, _, err := a.db.Insert("regions").Rows(record).Returning("id").ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if err := a.client.DB().QueryRowContext(ctx, query).Scan(&region.ID); err != nil {
		return apperrors.NewInternalError("failed to create region", err)
	}
	return nil
}

// GetByID retrieves a region by ID
func (a *RegionAdapter) GetByID(ctx context.Context, id int64) (*entities.Region, error) {
	query, _, err := a.db.Select(regionColumns...).From("regions").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	region, err := scanRegion(a.client.DB().QueryRowContext(ctx, query))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("region with id %d not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get region", err)
	}
	return region, nil
}

// List returns every region ordered by ID
func (a *RegionAdapter) List(ctx context.Context) ([]*entities.Region, error) {
	query, _, err := a.db.Select(regionColumns...).From("regions").
		Order(goqu.I("id").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list regions", err)
	}
	defer rows.Close()

	regions := make([]*entities.Region, 0)
	for rows.Next() {
		region, err := scanRegion(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan region", err)
		}
		regions = append(regions, region)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate regions", err)
	}
	return regions, nil
}

// Update updates a region
func (a *RegionAdapter) Update(ctx context.Context, region *entities.Region) error {
	query, _, err := a.db.Update("regions").
		Set(regionRecord(region)).
		Where(goqu.Ex{"id": region.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	return execExpectingRow(ctx, a.client.DB(), query, fmt.Sprintf("region with id %d not found", region.ID), "failed to update region")
}

// Delete deletes a region
func (a *RegionAdapter) Delete(ctx context.Context, id int64) error {
	query, _, err := a.db.Delete("regions").Where(goqu.Ex{"id": id}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	return execExpectingRow(ctx, a.client.DB(), query, fmt.Sprintf("region with id %d not found", id), "failed to delete region")
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRegion(row rowScanner) (*entities.Region, error) {
	region := &entities.Region{}
	var description, coverImage sql.NullString
	var latitude, longitude sql.NullFloat64

	if err := row.Scan(
		&region.ID,
		&region.Name,
		&description,
		&coverImage,
		&latitude,
		&longitude,
		&region.CreatedAt,
	); err != nil {
		return nil, err
	}

	region.Description = description.String
	region.CoverImage = coverImage.String
	region.Latitude = float64Ptr(latitude)
	region.Longitude = float64Ptr(longitude)
	return region, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// execExpectingRow runs a single-row UPDATE or DELETE and maps zero affected rows to not found
func execExpectingRow(ctx context.Context, db execer, query, notFoundMsg, failMsg string) error {
	result, err := db.ExecContext(ctx, query)
	if err != nil {
		return apperrors.NewInternalError(failMsg, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(notFoundMsg)
	}
	return nil
}
