package services

import (
	"context"

	"github.com/zatekoja/travelplanner/internal/domain/entities"
	"github.com/zatekoja/travelplanner/internal/domain/repositories"
)

// DestinationService assembles everything known about one region
type DestinationService struct {
	regions     repositories.RegionRepository
	hotels      repositories.HotelRepository
	restaurants repositories.RestaurantRepository
	places      repositories.PlaceRepository
}

// NewDestinationService creates a new destination service
func NewDestinationService(regions repositories.RegionRepository, hotels repositories.HotelRepository, restaurants repositories.RestaurantRepository, places repositories.PlaceRepository) *DestinationService {
	return &DestinationService{
		regions:     regions,
		hotels:      hotels,
		restaurants: restaurants,
		places:      places,
	}
}

// Get returns the region with its hotels, restaurants and places
func (s *DestinationService) Get(ctx context.Context, regionID int64) (*entities.DestinationDetail, error) {
	region, err := s.regions.GetByID(ctx, regionID)
	if err != nil {
		return nil, err
	}

	hotels, err := s.hotels.ListByRegion(ctx, regionID)
	if err != nil {
		return nil, err
	}
	restaurants, err := s.restaurants.ListByRegion(ctx, regionID)
	if err != nil {
		return nil, err
	}
	places, err := s.places.List(ctx, entities.PlaceFilter{RegionID: &regionID})
	if err != nil {
		return nil, err
	}

	return &entities.DestinationDetail{
		Region:      region,
		Hotels:      hotels,
		Restaurants: restaurants,
		Places:      places,
	}, nil
}
