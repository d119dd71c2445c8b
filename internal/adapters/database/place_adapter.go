package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"
	"github.com/zatekoja/travelplanner/internal/domain/entities"
	"github.com/zatekoja/travelplanner/internal/domain/repositories"
	"github.com/zatekoja/travelplanner/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/travelplanner/pkg/errors"
)

var placeColumns = []string{
	"id", "region_id", "name", "place_type", "description", "address", "map_url",
	"average_price", "price_range", "rating", "image_urls", "tags", "is_active", "created_at",
}

// PlaceAdapter implements PlaceRepository
type PlaceAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewPlaceAdapter creates a new place adapter
func NewPlaceAdapter(client *postgres.Client) repositories.PlaceRepository {
	return &PlaceAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

func placeRecord(p *entities.Place) goqu.Record {
	return goqu.Record{
		"region_id":     nullInt64(p.RegionID),
		"name":          p.Name,
		"place_type":    nullString(p.PlaceType),
		"description":   nullString(p.Description),
		"address":       nullString(p.Address),
		"map_url":       nullString(p.MapURL),
		"average_price": nullInt64(p.AveragePrice),
		"price_range":   nullString(p.PriceRange),
		"rating":        nullFloat64(p.Rating),
		"image_urls":    stringArray(p.ImageURLs),
		"tags":          stringArray(p.Tags),
		"is_active":     p.IsActive,
	}
}

// Create inserts a place
func (a *PlaceAdapter) Create(ctx context.Context, place *entities.Place) error {
	record := placeRecord(place)
	place.CreatedAt = time.Now().UTC()
	record["created_at"] = place.CreatedAt

	query, _, err := a.db.Insert("places").Rows(record).Returning("id").ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if err := a.client.DB().QueryRowContext(ctx, query).Scan(&place.ID); err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.NewValidationError("region_id does not reference an existing region")
		}
		return apperrors.NewInternalError("failed to create place", err)
	}
	return nil
}

// GetByID retrieves a place by ID
func (a *PlaceAdapter) GetByID(ctx context.Context, id int64) (*entities.Place, error) {
	query, _, err := a.db.Select(columns(placeColumns...)...).From("places").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	place, err := scanPlace(a.client.DB().QueryRowContext(ctx, query))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("place with id %d not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get place", err)
	}
	return place, nil
}

// List returns places matching the filter ordered by ID
func (a *PlaceAdapter) List(ctx context.Context, filter entities.PlaceFilter) ([]*entities.Place, error) {
	ds := a.db.Select(columns(placeColumns...)...).From("places").Order(goqu.I("id").Asc())
	if filter.RegionID != nil {
		ds = ds.Where(goqu.Ex{"region_id": *filter.RegionID})
	}
	if placeType := strings.TrimSpace(filter.PlaceType); placeType != "" {
		ds = ds.Where(goqu.Ex{"place_type": placeType})
	}

	query, _, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list places", err)
	}
	defer rows.Close()

	places := make([]*entities.Place, 0)
	for rows.Next() {
		place, err := scanPlace(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan place", err)
		}
		places = append(places, place)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate places", err)
	}
	return places, nil
}

// Update updates a place
func (a *PlaceAdapter) Update(ctx context.Context, place *entities.Place) error {
	query, _, err := a.db.Update("places").
		Set(placeRecord(place)).
		Where(goqu.Ex{"id": place.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	err = execExpectingRow(ctx, a.client.DB(), query, fmt.Sprintf("place with id %d not found", place.ID), "failed to update place")
	if isForeignKeyViolation(err) {
		return apperrors.NewValidationError("region_id does not reference an existing region")
	}
	return err
}

// Delete deletes a place
func (a *PlaceAdapter) Delete(ctx context.Context, id int64) error {
	query, _, err := a.db.Delete("places").Where(goqu.Ex{"id": id}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}
	return execExpectingRow(ctx, a.client.DB(), query, fmt.Sprintf("place with id %d not found", id), "failed to delete place")
}

func scanPlace(row rowScanner) (*entities.Place, error) {
	place := &entities.Place{}
	var regionID, averagePrice sql.NullInt64
	var placeType, description, address, mapURL, priceRange sql.NullString
	var rating sql.NullFloat64

	if err := row.Scan(
		&place.ID,
		&regionID,
		&place.Name,
		&placeType,
		&description,
		&address,
		&mapURL,
		&averagePrice,
		&priceRange,
		&rating,
		pq.Array(&place.ImageURLs),
		pq.Array(&place.Tags),
		&place.IsActive,
		&place.CreatedAt,
	); err != nil {
		return nil, err
	}

	place.RegionID = int64Ptr(regionID)
	place.PlaceType = placeType.String
	place.Description = description.String
	place.Address = address.String
	place.MapURL = mapURL.String
	place.AveragePrice = int64Ptr(averagePrice)
	place.PriceRange = priceRange.String
	place.Rating = float64Ptr(rating)
	return place, nil
}
