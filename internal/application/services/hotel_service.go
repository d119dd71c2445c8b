package services

import (
	"context"

	"github.com/zatekoja/travelplanner/internal/domain/entities"
	"github.com/zatekoja/travelplanner/internal/domain/providers"
	"github.com/zatekoja/travelplanner/internal/domain/repositories"
	apperrors "github.com/zatekoja/travelplanner/pkg/errors"
)

// HotelService handles business logic for hotels
type HotelService struct {
	repo   repositories.HotelRepository
	events catalogPublisher
}

// NewHotelService creates a new hotel service
func NewHotelService(repo repositories.HotelRepository, bus providers.EventBus) *HotelService {
	return &HotelService{repo: repo, events: catalogPublisher{bus: bus}}
}

// List returns every hotel with its region name
func (s *HotelService) List(ctx context.Context) ([]*entities.HotelView, error) {
	return s.repo.List(ctx)
}

// GetByID retrieves a hotel by ID
func (s *HotelService) GetByID(ctx context.Context, id int64) (*entities.Hotel, error) {
	return s.repo.GetByID(ctx, id)
}

// Create creates a hotel
func (s *HotelService) Create(ctx context.Context, hotel *entities.Hotel) error {
	if err := hotel.Validate(); err != nil {
		return apperrors.NewValidationError(err.Error())
	}
	if err := s.repo.Create(ctx, hotel); err != nil {
		return err
	}
	s.events.publish(ctx, entities.CatalogEntityHotel, hotel.ID, entities.CatalogActionCreated)
	return nil
}

// Update applies a partial update to a hotel
func (s *HotelService) Update(ctx context.Context, id int64, patch *entities.HotelPatch) (*entities.Hotel, error) {
	if err := patch.Validate(); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	hotel, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(hotel)
	if err := s.repo.Update(ctx, hotel); err != nil {
		return nil, err
	}
	s.events.publish(ctx, entities.CatalogEntityHotel, id, entities.CatalogActionUpdated)
	return hotel, nil
}

// Delete deletes a hotel
func (s *HotelService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.events.publish(ctx, entities.CatalogEntityHotel, id, entities.CatalogActionDeleted)
	return nil
}
