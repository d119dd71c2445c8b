package services

import (
	"context"

	"github.com/zatekoja/travelplanner/internal/domain/entities"
	"github.com/zatekoja/travelplanner/internal/domain/providers"
	"github.com/zatekoja/travelplanner/internal/domain/repositories"
	apperrors "github.com/zatekoja/travelplanner/pkg/errors"
)

// RegionService handles business logic for regions
type RegionService struct {
	repo   repositories.RegionRepository
	events catalogPublisher
}

// NewRegionService creates a new region service. bus may be nil.
func NewRegionService(repo repositories.RegionRepository, bus providers.EventBus) *RegionService {
	return &RegionService{repo: repo, events: catalogPublisher{bus: bus}}
}

// List returns every region ordered by ID
func (s *RegionService) List(ctx context.Context) ([]*entities.Region, error) {
	return s.repo.List(ctx)
}

// GetByID retrieves a region by ID
func (s *RegionService) GetByID(ctx context.Context, id int64) (*entities.Region, error) {
	return s.repo.GetByID(ctx, id)
}

// Create creates a region
func (s *RegionService) Create(ctx context.Context, region *entities.Region) error {
	if err := region.Validate(); err != nil {
		return apperrors.NewValidationError(err.Error())
	}
	if err := s.repo.Create(ctx, region); err != nil {
		return err
	}
	s.events.publish(ctx, entities.CatalogEntityRegion, region.ID, entities.CatalogActionCreated)
	return nil
}

// Update applies a partial update to a region
func (s *RegionService) Update(ctx context.Context, id int64, patch *entities.RegionPatch) (*entities.Region, error) {
	if err := patch.Validate(); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	region, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(region)
	if err := s.repo.Update(ctx, region); err != nil {
		return nil, err
	}
	s.events.publish(ctx, entities.CatalogEntityRegion, id, entities.CatalogActionUpdated)
	return region, nil
}

// Delete deletes a region
func (s *RegionService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.events.publish(ctx, entities.CatalogEntityRegion, id, entities.CatalogActionDeleted)
	return nil
}
