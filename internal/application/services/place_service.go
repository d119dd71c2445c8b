package services

import (
	"context"

	"github.com/zatekoja/travelplanner/internal/domain/entities"
	"github.com/zatekoja/travelplanner/internal/domain/providers"
	"github.com/zatekoja/travelplanner/internal/domain/repositories"
	apperrors "github.com/zatekoja/travelplanner/pkg/errors"
)

// PlaceService handles business logic for places
type PlaceService struct {
	repo   repositories.PlaceRepository
	events catalogPublisher
}

// NewPlaceService creates a new place service
func NewPlaceService(repo repositories.PlaceRepository, bus providers.EventBus) *PlaceService {
	return &PlaceService{repo: repo, events: catalogPublisher{bus: bus}}
}

// List returns places matching filter
func (s *PlaceService) List(ctx context.Context, filter entities.PlaceFilter) ([]*entities.Place, error) {
	return s.repo.List(ctx, filter)
}

// GetByID retrieves a place by ID
func (s *PlaceService) GetByID(ctx context.Context, id int64) (*entities.Place, error) {
	return s.repo.GetByID(ctx, id)
}

// Create creates a place
func (s *PlaceService) Create(ctx context.Context, place *entities.Place) error {
	if err := place.Validate(); err != nil {
		return apperrors.NewValidationError(err.Error())
	}
	if err := s.repo.Create(ctx, place); err != nil {
		return err
	}
	s.events.publish(ctx, entities.CatalogEntityPlace, place.ID, entities.CatalogActionCreated)
	return nil
}

// Update applies a partial update to a place
func (s *PlaceService) Update(ctx context.Context, id int64, patch *entities.PlacePatch) (*entities.Place, error) {
	if err := patch.Validate(); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	place, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(place)
	if err := s.repo.Update(ctx, place); err != nil {
		return nil, err
	}
	s.events.publish(ctx, entities.CatalogEntityPlace, id, entities.CatalogActionUpdated)
	return place, nil
}

// Delete deletes a place
func (s *PlaceService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.events.publish(ctx, entities.CatalogEntityPlace, id, entities.CatalogActionDeleted)
	return nil
}
