package services

import (
	"context"
	"strings"

	"github.com/zatekoja/travelplanner/internal/domain/entities"
	"github.com/zatekoja/travelplanner/internal/domain/providers"
	"github.com/zatekoja/travelplanner/internal/domain/repositories"
	apperrors "github.com/zatekoja/travelplanner/pkg/errors"
)

// RestaurantService handles business logic for restaurants and cuisines
type RestaurantService struct {
	repo     repositories.RestaurantRepository
	cuisines repositories.CuisineRepository
	events   catalogPublisher
}

// NewRestaurantService creates a new restaurant service
func NewRestaurantService(repo repositories.RestaurantRepository, cuisines repositories.CuisineRepository, bus providers.EventBus) *RestaurantService {
	return &RestaurantService{repo: repo, cuisines: cuisines, events: catalogPublisher{bus: bus}}
}

// List returns every restaurant with region name and cuisines
func (s *RestaurantService) List(ctx context.Context) ([]*entities.RestaurantView, error) {
	return s.repo.List(ctx)
}

// GetByID retrieves a restaurant by ID
func (s *RestaurantService) GetByID(ctx context.Context, id int64) (*entities.RestaurantView, error) {
	return s.repo.GetByID(ctx, id)
}

// Create creates a restaurant together with its cuisine rows
func (s *RestaurantService) Create(ctx context.Context, input *entities.RestaurantInput) (*entities.RestaurantView, error) {
	if err := input.Validate(); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if err := s.repo.Create(ctx, input); err != nil {
		return nil, err
	}
	s.events.publish(ctx, entities.CatalogEntityRestaurant, input.ID, entities.CatalogActionCreated)
	return s.repo.GetByID(ctx, input.ID)
}

// Update applies a partial update. Cuisines, when present, replace every join row.
func (s *RestaurantService) Update(ctx context.Context, id int64, patch *entities.RestaurantPatch) (*entities.RestaurantView, error) {
	if err := patch.Validate(); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	view, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	restaurant := view.Restaurant
	patch.Apply(&restaurant)
	if err := s.repo.Update(ctx, &restaurant, patch.Cuisines); err != nil {
		return nil, err
	}
	s.events.publish(ctx, entities.CatalogEntityRestaurant, id, entities.CatalogActionUpdated)
	return s.repo.GetByID(ctx, id)
}

// Delete deletes a restaurant
func (s *RestaurantService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.events.publish(ctx, entities.CatalogEntityRestaurant, id, entities.CatalogActionDeleted)
	return nil
}

// ListCuisines returns every cuisine ordered by name
func (s *RestaurantService) ListCuisines(ctx context.Context) ([]*entities.Cuisine, error) {
	return s.cuisines.List(ctx)
}

// CreateCuisine creates a cuisine
func (s *RestaurantService) CreateCuisine(ctx context.Context, cuisine *entities.Cuisine) error {
	if strings.TrimSpace(cuisine.Name) == "" {
		return apperrors.NewValidationError("cuisine name is required")
	}
	return s.cuisines.Create(ctx, cuisine)
}

// RenameCuisine renames a cuisine
func (s *RestaurantService) RenameCuisine(ctx context.Context, id int64, name string) (*entities.Cuisine, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.NewValidationError("cuisine name is required")
	}
	cuisine := &entities.Cuisine{ID: id, Name: name}
	if err := s.cuisines.Update(ctx, cuisine); err != nil {
		return nil, err
	}
	return cuisine, nil
}

// DeleteCuisine deletes a cuisine
func (s *RestaurantService) DeleteCuisine(ctx context.Context, id int64) error {
	return s.cuisines.Delete(ctx, id)
}
