package repositories

import (
	"context"

	"github.com/zatekoja/travelplanner/internal/domain/entities"
)

// RegionRepository defines the interface for region data operations
type RegionRepository interface {
	// Create inserts a region and sets its ID and CreatedAt
	Create(ctx context.Context, region *entities.Region) error

	// GetByID retrieves a region by ID
	GetByID(ctx context.Context, id int64) (*entities.Region, error)

	// List returns every region ordered by ID ascending
	List(ctx context.Context) ([]*entities.Region, error)

	// Update updates a region
	Update(ctx context.Context, region *entities.Region) error

	// Delete deletes a region
	Delete(ctx context.Context, id int64) error
}
