package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"
	"github.com/zatekoja/travelplanner/internal/domain/entities"
	"github.com/zatekoja/travelplanner/internal/domain/repositories"
	"github.com/zatekoja/travelplanner/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/travelplanner/pkg/errors"
)

var hotelColumns = []string{
	"id", "region_id", "name", "description", "address", "price_per_night",
	"rating", "map_url", "image_urls", "tags", "is_active",
}

// HotelAdapter implements HotelRepository
type HotelAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewHotelAdapter creates a new hotel adapter
func NewHotelAdapter(client *postgres.Client) repositories.HotelRepository {
	return &HotelAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

func hotelRecord(hotel *entities.Hotel) goqu.Record {
	return goqu.Record{
		"region_id":       nullInt64(hotel.RegionID),
		"name":            hotel.Name,
		"description":     nullString(hotel.Description),
		"address":         nullString(hotel.Address),
		"price_per_night": hotel.PricePerNight,
		"rating":          nullFloat64(hotel.Rating),
		"map_url":         nullString(hotel.MapURL),
		"image_urls":      stringArray(hotel.ImageURLs),
		"tags":            stringArray(hotel.Tags),
		"is_active":       hotel.IsActive,
	}
}

// Create inserts a hotel
func (a *HotelAdapter) Create(ctx context.Context, hotel *entities.Hotel) error {
	query, _, err := a.db.Insert("hotels").Rows(hotelRecord(hotel)).Returning("id").ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if err := a.client.DB().QueryRowContext(ctx, query).Scan(&hotel.ID); err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.NewValidationError("region_id does not reference an existing region")
		}
		return apperrors.NewInternalError("failed to create hotel", err)
	}
	return nil
}

// GetByID retrieves a hotel by ID
func (a *HotelAdapter) GetByID(ctx context.Context, id int64) (*entities.Hotel, error) {
	query, _, err := a.db.Select(columns(hotelColumns...)...).From("hotels").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	hotel, err := scanHotel(a.client.DB().QueryRowContext(ctx, query))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("hotel with id %d not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get hotel", err)
	}
	return hotel, nil
}

// List returns every hotel with its region name
func (a *HotelAdapter) List(ctx context.Context) ([]*entities.HotelView, error) {
	selectCols := append(qualified("h", hotelColumns...), goqu.COALESCE(goqu.I("r.name"), "").As("region_name"))

	query, _, err := a.db.From(goqu.T("hotels").As("h")).
		LeftJoin(goqu.T("regions").As("r"), goqu.On(goqu.I("r.id").Eq(goqu.I("h.region_id")))).
		Select(selectCols...).
		Order(goqu.I("h.id").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list hotels", err)
	}
	defer rows.Close()

	hotels := make([]*entities.HotelView, 0)
	for rows.Next() {
		view := &entities.HotelView{}
		if err := scanHotelInto(rows, &view.Hotel, &view.RegionName); err != nil {
			return nil, apperrors.NewInternalError("failed to scan hotel", err)
		}
		hotels = append(hotels, view)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate hotels", err)
	}
	return hotels, nil
}

// ListByRegion returns the hotels of a region
func (a *HotelAdapter) ListByRegion(ctx context.Context, regionID int64) ([]*entities.Hotel, error) {
	ds := a.db.Select(columns(hotelColumns...)...).From("hotels").
		Where(goqu.Ex{"region_id": regionID}).
		Order(goqu.I("id").Asc())
	return a.queryHotels(ctx, ds)
}

// TopRated returns active hotels ordered by rating, best first
func (a *HotelAdapter) TopRated(ctx context.Context, regionID *int64, limit int) ([]*entities.Hotel, error) {
	where := goqu.Ex{"is_active": true}
	if regionID != nil {
		where["region_id"] = *regionID
	}

	ds := a.db.Select(columns(hotelColumns...)...).From("hotels").
		Where(where).
		Order(goqu.I("rating").Desc().NullsLast(), goqu.I("id").Asc()).
		Limit(uint(limit))
	return a.queryHotels(ctx, ds)
}

// ExistingIDs returns the subset of ids that exist
func (a *HotelAdapter) ExistingIDs(ctx context.Context, ids []int64) ([]int64, error) {
	return existingIDs(ctx, a.client.DB(), a.db, "hotels", ids)
}

// Update updates a hotel
func (a *HotelAdapter) Update(ctx context.Context, hotel *entities.Hotel) error {
	query, _, err := a.db.Update("hotels").
		Set(hotelRecord(hotel)).
		Where(goqu.Ex{"id": hotel.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	err = execExpectingRow(ctx, a.client.DB(), query, fmt.Sprintf("hotel with id %d not found", hotel.ID), "failed to update hotel")
	if isForeignKeyViolation(err) {
		return apperrors.NewValidationError("region_id does not reference an existing region")
	}
	return err
}

// Delete deletes a hotel. Hotels with bookings cannot be deleted.
func (a *HotelAdapter) Delete(ctx context.Context, id int64) error {
	query, _, err := a.db.Delete("hotels").Where(goqu.Ex{"id": id}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	err = execExpectingRow(ctx, a.client.DB(), query, fmt.Sprintf("hotel with id %d not found", id), "failed to delete hotel")
	if isForeignKeyViolation(err) {
		return apperrors.NewConflictError(fmt.Sprintf("hotel %d has bookings and cannot be deleted", id))
	}
	return err
}

func (a *HotelAdapter) queryHotels(ctx context.Context, ds *goqu.SelectDataset) ([]*entities.Hotel, error) {
	query, _, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query hotels", err)
	}
	defer rows.Close()

	hotels := make([]*entities.Hotel, 0)
	for rows.Next() {
		hotel, err := scanHotel(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan hotel", err)
		}
		hotels = append(hotels, hotel)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate hotels", err)
	}
	return hotels, nil
}

func scanHotel(row rowScanner) (*entities.Hotel, error) {
	hotel := &entities.Hotel{}
	if err := scanHotelInto(row, hotel); err != nil {
		return nil, err
	}
	return hotel, nil
}

func scanHotelInto(row rowScanner, hotel *entities.Hotel, extra ...interface{}) error {
	var regionID sql.NullInt64
	var description, address, mapURL sql.NullString
	var rating sql.NullFloat64

	dest := []interface{}{
		&hotel.ID,
		&regionID,
		&hotel.Name,
		&description,
		&address,
		&hotel.PricePerNight,
		&rating,
		&mapURL,
		pq.Array(&hotel.ImageURLs),
		pq.Array(&hotel.Tags),
		&hotel.IsActive,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return err
	}

	hotel.RegionID = int64Ptr(regionID)
	hotel.Description = description.String
	hotel.Address = address.String
	hotel.MapURL = mapURL.String
	hotel.Rating = float64Ptr(rating)
	return nil
}

func columns(names ...string) []interface{} {
	out := make([]interface{}, len(names))
	for i, name := range names {
		out[i] = goqu.C(name)
	}
	return out
}

func qualified(alias string, names ...string) []interface{} {
	out := make([]interface{}, len(names))
	for i, name := range names {
		out[i] = goqu.I(alias + "." + name)
	}
	return out
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

func existingIDs(ctx context.Context, q querier, db *goqu.Database, table string, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return []int64{}, nil
	}

	query, _, err := db.Select("id").From(table).Where(goqu.Ex{"id": ids}).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.NewInternalError(fmt.Sprintf("failed to look up %s ids", table), err)
	}
	defer rows.Close()

	found := make([]int64, 0, len(ids))
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, apperrors.NewInternalError("failed to scan id", err)
		}
		found = append(found, id)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate ids", err)
	}
	return found, nil
}
