package services

import (
	"context"
	"strings"

	"github.com/zatekoja/travelplanner/internal/domain/entities"
	"github.com/zatekoja/travelplanner/internal/domain/repositories"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	hotelCandidateLimit      = 3
	restaurantCandidateLimit = 5
)

// PromptContextService picks the region a prompt talks about and the best
// rated catalog entries to offer the generator.
type PromptContextService struct {
	regions     repositories.RegionRepository
	hotels      repositories.HotelRepository
	restaurants repositories.RestaurantRepository
}

// NewPromptContextService creates a new prompt context service
func NewPromptContextService(regions repositories.RegionRepository, hotels repositories.HotelRepository, restaurants repositories.RestaurantRepository) *PromptContextService {
	return &PromptContextService{
		regions:     regions,
		hotels:      hotels,
		restaurants: restaurants,
	}
}

// Build resolves the region by substring match in id order and loads candidates.
// Without a match candidates are drawn from every region.
func (s *PromptContextService) Build(ctx context.Context, prompt string) (*entities.PromptContext, error) {
	regions, err := s.regions.List(ctx)
	if err != nil {
		return nil, err
	}

	promptCtx := &entities.PromptContext{
		Hotels:      []*entities.Hotel{},
		Restaurants: []*entities.Restaurant{},
	}
	if region := matchRegion(prompt, regions); region != nil {
		id := region.ID
		promptCtx.RegionID = &id
		promptCtx.RegionName = region.Name
	}

	hotels, err := s.hotels.TopRated(ctx, promptCtx.RegionID, hotelCandidateLimit)
	if err != nil {
		return nil, err
	}
	if hotels != nil {
		promptCtx.Hotels = hotels
	}

	restaurants, err := s.restaurants.TopRated(ctx, promptCtx.RegionID, restaurantCandidateLimit)
	if err != nil {
		return nil, err
	}
	if restaurants != nil {
		promptCtx.Restaurants = restaurants
	}

	return promptCtx, nil
}

func matchRegion(prompt string, regions []*entities.Region) *entities.Region {
	lower := cases.Lower(language.Und)
	text := lower.String(prompt)
	for _, region := range regions {
		name := strings.TrimSpace(lower.String(region.Name))
		if name != "" && strings.Contains(text, name) {
			return region
		}
	}
	return nil
}
