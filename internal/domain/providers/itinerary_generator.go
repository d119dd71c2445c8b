package providers

import (
	"context"
	"errors"

	"github.com/zatekoja/travelplanner/internal/domain/entities"
)

var (
	// ErrItineraryUpstream means the model produced no usable response
	ErrItineraryUpstream = errors.New("itinerary generator unavailable")

	// ErrItineraryMalformed means the model answered but no JSON object could be parsed
	ErrItineraryMalformed = errors.New("itinerary response malformed")
)

// ItineraryGenerator turns a free-text request and catalog context into an itinerary
type ItineraryGenerator interface {
	GenerateItinerary(ctx context.Context, prompt string, promptCtx *entities.PromptContext) (*entities.Itinerary, error)
}
