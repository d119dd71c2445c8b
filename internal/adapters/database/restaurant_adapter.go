package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"
	"github.com/samber/lo"
	"github.com/zatekoja/travelplanner/internal/domain/entities"
	"github.com/zatekoja/travelplanner/internal/domain/repositories"
	"github.com/zatekoja/travelplanner/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/travelplanner/pkg/errors"
)

var restaurantColumns = []string{
	"id", "region_id", "name", "description", "address", "rating",
	"map_url", "image_urls", "tags", "is_active", "created_at",
}

// RestaurantAdapter implements RestaurantRepository. Cuisine join rows are
// always written in the same transaction as their restaurant.
type RestaurantAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewRestaurantAdapter creates a new restaurant adapter
func NewRestaurantAdapter(client *postgres.Client) repositories.RestaurantRepository {
	return &RestaurantAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

func restaurantRecord(r *entities.Restaurant) goqu.Record {
	return goqu.Record{
		"region_id":   nullInt64(r.RegionID),
		"name":        r.Name,
		"description": nullString(r.Description),
		"address":     nullString(r.Address),
		"rating":      nullFloat64(r.Rating),
		"map_url":     nullString(r.MapURL),
		"image_urls":  stringArray(r.ImageURLs),
		"tags":        stringArray(r.Tags),
		"is_active":   r.IsActive,
	}
}

// Create inserts a restaurant and its cuisine rows
func (a *RestaurantAdapter) Create(ctx context.Context, input *entities.RestaurantInput) error {
	record := restaurantRecord(&input.Restaurant)
	input.CreatedAt = time.Now().UTC()
	record["created_at"] = input.CreatedAt

	query, _, err := a.db.Insert("restaurants").Rows(record).Returning("id").ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	err = a.client.WithTx(ctx, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx, query).Scan(&input.ID); err != nil {
			return err
		}
		return a.insertCuisines(ctx, tx, input.ID, input.Cuisines)
	})
	if err != nil {
		return a.mapWriteError(err, "failed to create restaurant")
	}
	return nil
}

// GetByID retrieves a restaurant with its cuisines
func (a *RestaurantAdapter) GetByID(ctx context.Context, id int64) (*entities.RestaurantView, error) {
	views, err := a.queryViews(ctx, goqu.Ex{"rs.id": id})
	if err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("restaurant with id %d not found", id))
	}
	return views[0], nil
}

// List returns every restaurant with its cuisines
func (a *RestaurantAdapter) List(ctx context.Context) ([]*entities.RestaurantView, error) {
	return a.queryViews(ctx, nil)
}

// ListByRegion returns the restaurants of a region
func (a *RestaurantAdapter) ListByRegion(ctx context.Context, regionID int64) ([]*entities.RestaurantView, error) {
	return a.queryViews(ctx, goqu.Ex{"rs.region_id": regionID})
}

// TopRated returns active restaurants ordered by rating, best first
func (a *RestaurantAdapter) TopRated(ctx context.Context, regionID *int64, limit int) ([]*entities.Restaurant, error) {
	where := goqu.Ex{"is_active": true}
	if regionID != nil {
		where["region_id"] = *regionID
	}

	query, _, err := a.db.Select(columns(restaurantColumns...)...).From("restaurants").
		Where(where).
		Order(goqu.I("rating").Desc().NullsLast(), goqu.I("id").Asc()).
		Limit(uint(limit)).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query restaurants", err)
	}
	defer rows.Close()

	restaurants := make([]*entities.Restaurant, 0)
	for rows.Next() {
		r := &entities.Restaurant{}
		if err := scanRestaurantInto(rows, r); err != nil {
			return nil, apperrors.NewInternalError("failed to scan restaurant", err)
		}
		restaurants = append(restaurants, r)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate restaurants", err)
	}
	return restaurants, nil
}

// ExistingIDs returns the subset of ids that exist
func (a *RestaurantAdapter) ExistingIDs(ctx context.Context, ids []int64) ([]int64, error) {
	return existingIDs(ctx, a.client.DB(), a.db, "restaurants", ids)
}

// Update updates the restaurant and, when cuisines is set, rewrites its join rows
func (a *RestaurantAdapter) Update(ctx context.Context, restaurant *entities.Restaurant, cuisines *[]entities.RestaurantCuisine) error {
	query, _, err := a.db.Update("restaurants").
		Set(restaurantRecord(restaurant)).
		Where(goqu.Ex{"id": restaurant.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	err = a.client.WithTx(ctx, func(tx *sql.Tx) error {
		if err := execExpectingRow(ctx, tx, query, fmt.Sprintf("restaurant with id %d not found", restaurant.ID), "failed to update restaurant"); err != nil {
			return err
		}
		if cuisines == nil {
			return nil
		}

		deleteQuery, _, err := a.db.Delete("restaurant_cuisines").
			Where(goqu.Ex{"restaurant_id": restaurant.ID}).
			ToSQL()
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, deleteQuery); err != nil {
			return err
		}
		return a.insertCuisines(ctx, tx, restaurant.ID, *cuisines)
	})
	if err != nil {
		return a.mapWriteError(err, "failed to update restaurant")
	}
	return nil
}

// Delete deletes a restaurant and its cuisine rows
func (a *RestaurantAdapter) Delete(ctx context.Context, id int64) error {
	cuisinesQuery, _, err := a.db.Delete("restaurant_cuisines").Where(goqu.Ex{"restaurant_id": id}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}
	restaurantQuery, _, err := a.db.Delete("restaurants").Where(goqu.Ex{"id": id}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	err = a.client.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, cuisinesQuery); err != nil {
			return err
		}
		return execExpectingRow(ctx, tx, restaurantQuery, fmt.Sprintf("restaurant with id %d not found", id), "failed to delete restaurant")
	})
	if err != nil {
		return a.mapWriteError(err, "failed to delete restaurant")
	}
	return nil
}

func (a *RestaurantAdapter) insertCuisines(ctx context.Context, tx *sql.Tx, restaurantID int64, cuisines []entities.RestaurantCuisine) error {
	if len(cuisines) == 0 {
		return nil
	}

	rows := lo.Map(cuisines, func(c entities.RestaurantCuisine, _ int) interface{} {
		return goqu.Record{
			"restaurant_id": restaurantID,
			"cuisine_id":    c.CuisineID,
			"description":   nullString(c.Description),
			"average_price": nullInt64(c.AveragePrice),
			"price_range":   nullString(c.PriceRange),
			"image_url":     nullString(c.ImageURL),
			"is_available":  c.IsAvailable,
		}
	})

	query, _, err := a.db.Insert("restaurant_cuisines").Rows(rows...).ToSQL()
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, query)
	return err
}

func (a *RestaurantAdapter) mapWriteError(err error, msg string) error {
	if isForeignKeyViolation(err) {
		return apperrors.NewValidationError("region_id or cuisine_id does not reference an existing row")
	}
	if _, ok := apperrors.AsAppError(err); ok {
		return err
	}
	return apperrors.NewInternalError(msg, err)
}

func (a *RestaurantAdapter) queryViews(ctx context.Context, where goqu.Ex) ([]*entities.RestaurantView, error) {
	selectCols := append(qualified("rs", restaurantColumns...), goqu.COALESCE(goqu.I("r.name"), "").As("region_name"))

	ds := a.db.From(goqu.T("restaurants").As("rs")).
		LeftJoin(goqu.T("regions").As("r"), goqu.On(goqu.I("r.id").Eq(goqu.I("rs.region_id")))).
		Select(selectCols...).
		Order(goqu.I("rs.id").Asc())
	if where != nil {
		ds = ds.Where(where)
	}

	query, _, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list restaurants", err)
	}
	defer rows.Close()

	views := make([]*entities.RestaurantView, 0)
	for rows.Next() {
		view := &entities.RestaurantView{Cuisines: []*entities.RestaurantCuisineView{}}
		if err := scanRestaurantInto(rows, &view.Restaurant, &view.RegionName); err != nil {
			return nil, apperrors.NewInternalError("failed to scan restaurant", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate restaurants", err)
	}

	if len(views) == 0 {
		return views, nil
	}

	ids := lo.Map(views, func(v *entities.RestaurantView, _ int) int64 { return v.ID })
	cuisines, err := a.cuisinesFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	byRestaurant := lo.GroupBy(cuisines, func(c *entities.RestaurantCuisineView) int64 { return c.RestaurantID })
	for _, view := range views {
		if rows, ok := byRestaurant[view.ID]; ok {
			view.Cuisines = rows
		}
	}
	return views, nil
}

func (a *RestaurantAdapter) cuisinesFor(ctx context.Context, restaurantIDs []int64) ([]*entities.RestaurantCuisineView, error) {
	query, _, err := a.db.From(goqu.T("restaurant_cuisines").As("rc")).
		InnerJoin(goqu.T("cuisines").As("c"), goqu.On(goqu.I("c.id").Eq(goqu.I("rc.cuisine_id")))).
		Select(
			"rc.id", "rc.restaurant_id", "rc.cuisine_id", "rc.description", "rc.average_price",
			"rc.price_range", "rc.image_url", "rc.is_available", "c.name",
		).
		Where(goqu.Ex{"rc.restaurant_id": restaurantIDs}).
		Order(goqu.I("rc.restaurant_id").Asc(), goqu.I("rc.id").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load restaurant cuisines", err)
	}
	defer rows.Close()

	out := make([]*entities.RestaurantCuisineView, 0)
	for rows.Next() {
		c := &entities.RestaurantCuisineView{}
		var description, priceRange, imageURL sql.NullString
		var averagePrice sql.NullInt64
		if err := rows.Scan(
			&c.ID,
			&c.RestaurantID,
			&c.CuisineID,
			&description,
			&averagePrice,
			&priceRange,
			&imageURL,
			&c.IsAvailable,
			&c.CuisineName,
		); err != nil {
			return nil, apperrors.NewInternalError("failed to scan restaurant cuisine", err)
		}
		c.Description = description.String
		c.AveragePrice = int64Ptr(averagePrice)
		c.PriceRange = priceRange.String
		c.ImageURL = imageURL.String
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate restaurant cuisines", err)
	}
	return out, nil
}

func scanRestaurantInto(row rowScanner, r *entities.Restaurant, extra ...interface{}) error {
	var regionID sql.NullInt64
	var description, address, mapURL sql.NullString
	var rating sql.NullFloat64

	dest := []interface{}{
		&r.ID,
		&regionID,
		&r.Name,
		&description,
		&address,
		&rating,
		&mapURL,
		pq.Array(&r.ImageURLs),
		pq.Array(&r.Tags),
		&r.IsActive,
		&r.CreatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return err
	}

	r.RegionID = int64Ptr(regionID)
	r.Description = description.String
	r.Address = address.String
	r.MapURL = mapURL.String
	r.Rating = float64Ptr(rating)
	return nil
}
