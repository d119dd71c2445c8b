package repositories

import (
	"context"

	"github.com/zatekoja/travelplanner/internal/domain/entities"
)

// PlaceRepository defines the interface for place data operations
type PlaceRepository interface {
	Create(ctx context.Context, place *entities.Place) error
	GetByID(ctx context.Context, id int64) (*entities.Place, error)
	List(ctx context.Context, filter entities.PlaceFilter) ([]*entities.Place, error)
	Update(ctx context.Context, place *entities.Place) error
	Delete(ctx context.Context, id int64) error
}
