package repositories

import (
	"context"

	"github.com/zatekoja/travelplanner/internal/domain/entities"
)

// RestaurantRepository defines the interface for restaurant data operations
type RestaurantRepository interface {
	// Create inserts a restaurant and its cuisine rows in one transaction
	Create(ctx context.Context, input *entities.RestaurantInput) error

	// GetByID retrieves a restaurant with its region name and cuisines
	GetByID(ctx context.Context, id int64) (*entities.RestaurantView, error)

	// List returns every restaurant with its region name and cuisines
	List(ctx context.Context) ([]*entities.RestaurantView, error)

	// ListByRegion returns the restaurants of a region with their cuisines
	ListByRegion(ctx context.Context, regionID int64) ([]*entities.RestaurantView, error)

	// TopRated returns active restaurants ordered by rating, optionally within a region
	TopRated(ctx context.Context, regionID *int64, limit int) ([]*entities.Restaurant, error)

	// ExistingIDs returns the subset of ids that exist
	ExistingIDs(ctx context.Context, ids []int64) ([]int64, error)

	// Update updates the restaurant. A non-nil cuisines replaces all join rows.
	Update(ctx context.Context, restaurant *entities.Restaurant, cuisines *[]entities.RestaurantCuisine) error

	// Delete deletes a restaurant and its cuisine rows
	Delete(ctx context.Context, id int64) error
}

// CuisineRepository defines the interface for cuisine data operations
type CuisineRepository interface {
	// Create inserts a cuisine. A duplicate name is a validation error.
	Create(ctx context.Context, cuisine *entities.Cuisine) error

	// List returns every cuisine ordered by name
	List(ctx context.Context) ([]*entities.Cuisine, error)

	// Update renames a cuisine
	Update(ctx context.Context, cuisine *entities.Cuisine) error

	// Delete deletes a cuisine
	Delete(ctx context.Context, id int64) error
}
