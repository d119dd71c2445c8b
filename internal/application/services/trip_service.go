package services

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"github.com/zatekoja/travelplanner/internal/domain/entities"
	"github.com/zatekoja/travelplanner/internal/domain/repositories"
	apperrors "github.com/zatekoja/travelplanner/pkg/errors"
)

// TripService saves generated itineraries and enforces trip ownership
type TripService struct {
	trips       repositories.TripRepository
	hotels      repositories.HotelRepository
	restaurants repositories.RestaurantRepository
}

// NewTripService creates a new trip service
func NewTripService(trips repositories.TripRepository, hotels repositories.HotelRepository, restaurants repositories.RestaurantRepository) *TripService {
	return &TripService{
		trips:       trips,
		hotels:      hotels,
		restaurants: restaurants,
	}
}

// Save stores a trip for userID and returns its ID
func (s *TripService) Save(ctx context.Context, userID int64, input *entities.TripInput) (int64, error) {
	trip, items, err := s.prepare(ctx, userID, input)
	if err != nil {
		return 0, err
	}
	return s.trips.Save(ctx, trip, items)
}

// ListByUser returns the caller's trips newest first
func (s *TripService) ListByUser(ctx context.Context, userID int64) ([]*entities.SavedTrip, error) {
	return s.trips.ListByUser(ctx, userID)
}

// ListAll returns every trip with its owner
func (s *TripService) ListAll(ctx context.Context) ([]*entities.AdminTripView, error) {
	return s.trips.ListAll(ctx)
}

// Update replaces the trip and all of its items. Owner or admin only.
func (s *TripService) Update(ctx context.Context, principal *entities.Principal, id int64, input *entities.TripInput) error {
	existing, err := s.authorize(ctx, principal, id)
	if err != nil {
		return err
	}

	trip, items, err := s.prepare(ctx, existing.UserID, input)
	if err != nil {
		return err
	}
	trip.ID = existing.ID
	trip.CreatedAt = existing.CreatedAt
	return s.trips.Replace(ctx, trip, items)
}

// Delete removes the trip. Owner or admin only.
func (s *TripService) Delete(ctx context.Context, principal *entities.Principal, id int64) error {
	if _, err := s.authorize(ctx, principal, id); err != nil {
		return err
	}
	return s.trips.Delete(ctx, id)
}

// FilterReferenceIDs nulls every item_id that is neither a hotel nor a restaurant
func (s *TripService) FilterReferenceIDs(ctx context.Context, itinerary *entities.Itinerary) error {
	ids := lo.Uniq(itinerary.ReferenceIDs())
	if len(ids) == 0 {
		return nil
	}

	hotelIDs, err := s.hotels.ExistingIDs(ctx, ids)
	if err != nil {
		return err
	}
	restaurantIDs, err := s.restaurants.ExistingIDs(ctx, ids)
	if err != nil {
		return err
	}

	known := make(map[int64]struct{}, len(hotelIDs)+len(restaurantIDs))
	for _, id := range append(hotelIDs, restaurantIDs...) {
		known[id] = struct{}{}
	}
	itinerary.DropUnknownReferences(known)
	return nil
}

func (s *TripService) prepare(ctx context.Context, userID int64, input *entities.TripInput) (*entities.Trip, []entities.TripItem, error) {
	if input == nil {
		return nil, nil, apperrors.NewValidationError("request body is required")
	}
	if err := input.Validate(); err != nil {
		return nil, nil, apperrors.NewValidationError(err.Error())
	}

	input.AIResult.Normalize()
	if err := s.FilterReferenceIDs(ctx, input.AIResult); err != nil {
		return nil, nil, err
	}

	trip, items, err := input.ToTrip(userID)
	if err != nil {
		return nil, nil, apperrors.NewValidationError(err.Error())
	}
	return trip, items, nil
}

func (s *TripService) authorize(ctx context.Context, principal *entities.Principal, id int64) (*entities.Trip, error) {
	trip, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if principal == nil || (trip.UserID != principal.UserID && !principal.IsAdmin()) {
		return nil, apperrors.NewForbiddenError(fmt.Sprintf("trip %d belongs to another user", id))
	}
	return trip, nil
}
