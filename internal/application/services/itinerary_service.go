package services

import (
	"context"
	"errors"
	"strings"

	"github.com/zatekoja/travelplanner/internal/domain/entities"
	"github.com/zatekoja/travelplanner/internal/domain/providers"
	"github.com/zatekoja/travelplanner/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/travelplanner/pkg/errors"
)

// GenerationOutcome tells the caller whether the itinerary is real or the fallback
type GenerationOutcome string

const (
	OutcomeOK                GenerationOutcome = "ok"
	OutcomeContextError      GenerationOutcome = "context_error"
	OutcomeUpstreamError     GenerationOutcome = "upstream_error"
	OutcomeMalformedResponse GenerationOutcome = "malformed_response"
)

// PromptContextBuilder builds the catalog context for a prompt
type PromptContextBuilder interface {
	Build(ctx context.Context, prompt string) (*entities.PromptContext, error)
}

// ItineraryService generates itineraries. Generation never fails outright:
// every failure yields the fallback itinerary and a non-ok outcome.
type ItineraryService struct {
	contexts  PromptContextBuilder
	generator providers.ItineraryGenerator
	metrics   *observability.Metrics
}

// NewItineraryService creates a new itinerary service. A nil generator makes
// every request return the fallback with an upstream outcome.
func NewItineraryService(contexts PromptContextBuilder, generator providers.ItineraryGenerator, metrics *observability.Metrics) *ItineraryService {
	return &ItineraryService{
		contexts:  contexts,
		generator: generator,
		metrics:   metrics,
	}
}

// Generate builds an itinerary for prompt. The only error is an empty prompt.
func (s *ItineraryService) Generate(ctx context.Context, prompt string) (*entities.Itinerary, GenerationOutcome, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, "", apperrors.NewValidationError("prompt is required")
	}

	ctx, span := observability.StartSpan(ctx, "ItineraryService.Generate")
	defer span.End()
	logger := observability.LoggerFromContext(ctx)

	promptCtx, err := s.contexts.Build(ctx, prompt)
	if err != nil {
		observability.RecordError(span, err)
		logger.Error().Err(err).Msg("Failed to build prompt context")
		return s.fallback(ctx, nil, OutcomeContextError)
	}

	if s.generator == nil {
		logger.Warn().Msg("No itinerary generator configured")
		return s.fallback(ctx, promptCtx.RegionID, OutcomeUpstreamError)
	}

	itinerary, err := s.generator.GenerateItinerary(ctx, prompt, promptCtx)
	if err != nil {
		observability.RecordError(span, err)
		outcome := OutcomeUpstreamError
		if errors.Is(err, providers.ErrItineraryMalformed) {
			outcome = OutcomeMalformedResponse
		}
		logger.Warn().Err(err).Str("outcome", string(outcome)).Msg("Itinerary generation failed")
		return s.fallback(ctx, promptCtx.RegionID, outcome)
	}

	itinerary.RegionID = promptCtx.RegionID
	itinerary.Normalize()
	observability.RecordItineraryOutcome(ctx, s.metrics, string(OutcomeOK))
	return itinerary, OutcomeOK, nil
}

func (s *ItineraryService) fallback(ctx context.Context, regionID *int64, outcome GenerationOutcome) (*entities.Itinerary, GenerationOutcome, error) {
	observability.RecordItineraryOutcome(ctx, s.metrics, string(outcome))
	return entities.NewFallbackItinerary(regionID), outcome, nil
}
