package repositories

import (
	"context"

	"github.com/zatekoja/travelplanner/internal/domain/entities"
)

// TripRepository defines the interface for saved trip operations. Every write
// covers the trip and all of its items in a single transaction.
type TripRepository interface {
	// Save inserts the trip and its items and returns the new trip ID
	Save(ctx context.Context, trip *entities.Trip, items []entities.TripItem) (int64, error)

	// GetByID retrieves the trip row without items
	GetByID(ctx context.Context, id int64) (*entities.Trip, error)

	// ListByUser returns a user's trips newest first, items regrouped by day
	ListByUser(ctx context.Context, userID int64) ([]*entities.SavedTrip, error)

	// ListAll returns every trip with its owner
	ListAll(ctx context.Context) ([]*entities.AdminTripView, error)

	// Replace overwrites the trip scalars and replaces every item
	Replace(ctx context.Context, trip *entities.Trip, items []entities.TripItem) error

	// Delete removes the items and then the trip
	Delete(ctx context.Context, id int64) error
}
