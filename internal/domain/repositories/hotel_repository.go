package repositories

import (
	"context"

	"github.com/zatekoja/travelplanner/internal/domain/entities"
)

// HotelRepository defines the interface for hotel data operations
type HotelRepository interface {
	// Create inserts a hotel and sets its ID
	Create(ctx context.Context, hotel *entities.Hotel) error

	// GetByID retrieves a hotel by ID
	GetByID(ctx context.Context, id int64) (*entities.Hotel, error)

	// List returns every hotel with its region name
	List(ctx context.Context) ([]*entities.HotelView, error)

	// ListByRegion returns the hotels of a region
	ListByRegion(ctx context.Context, regionID int64) ([]*entities.Hotel, error)

	// TopRated returns active hotels ordered by rating, optionally within a region
	TopRated(ctx context.Context, regionID *int64, limit int) ([]*entities.Hotel, error)

	// ExistingIDs returns the subset of ids that exist
	ExistingIDs(ctx context.Context, ids []int64) ([]int64, error)

	// Update updates a hotel
	Update(ctx context.Context, hotel *entities.Hotel) error

	// Delete deletes a hotel
	Delete(ctx context.Context, id int64) error
}
