package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/travelplanner/internal/application/services"
	"github.com/zatekoja/travelplanner/internal/domain/entities"
	"github.com/zatekoja/travelplanner/internal/domain/providers"
	apperrors "github.com/zatekoja/travelplanner/pkg/errors"
	"github.com/zatekoja/travelplanner/tests/mocks"
)

type stubContextBuilder struct {
	promptCtx *entities.PromptContext
	err       error
}

func (s stubContextBuilder) Build(ctx context.Context, prompt string) (*entities.PromptContext, error) {
	return s.promptCtx, s.err
}

func TestItineraryService_Generate_EmptyPrompt(t *testing.T) {
	svc := services.NewItineraryService(stubContextBuilder{}, nil, nil)

	_, _, err := svc.Generate(context.Background(), "   ")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
}

func TestItineraryService_Generate(t *testing.T) {
	regionID := lo.ToPtr(int64(3))
	promptCtx := &entities.PromptContext{RegionID: regionID, RegionName: "Đà Lạt"}

	tests := []struct {
		name        string
		genErr      error
		wantOutcome services.GenerationOutcome
	}{
		{"upstream failure", fmt.Errorf("%w: timeout", providers.ErrItineraryUpstream), services.OutcomeUpstreamError},
		{"malformed answer", fmt.Errorf("%w: no object", providers.ErrItineraryMalformed), services.OutcomeMalformedResponse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			generator := mocks.NewItineraryGenerator(t)
			generator.On("GenerateItinerary", mock.Anything, "2 days in Đà Lạt", promptCtx).Return(nil, tt.genErr)
			svc := services.NewItineraryService(stubContextBuilder{promptCtx: promptCtx}, generator, nil)

			itinerary, outcome, err := svc.Generate(context.Background(), "2 days in Đà Lạt")
			require.NoError(t, err)
			assert.Equal(t, tt.wantOutcome, outcome)
			assert.Equal(t, entities.FallbackItineraryTitle, itinerary.Title)
			assert.Equal(t, regionID, itinerary.RegionID)
			assert.NotNil(t, itinerary.Itinerary)
			assert.Empty(t, itinerary.Itinerary)
		})
	}
}

func TestItineraryService_Generate_OK(t *testing.T) {
	regionID := lo.ToPtr(int64(3))
	promptCtx := &entities.PromptContext{RegionID: regionID}
	generator := mocks.NewItineraryGenerator(t)
	generator.On("GenerateItinerary", mock.Anything, "beach trip", promptCtx).Return(&entities.Itinerary{
		Title:     "Beach",
		RegionID:  lo.ToPtr(int64(8)),
		Itinerary: []entities.DayPlan{{Day: 0}},
	}, nil)
	svc := services.NewItineraryService(stubContextBuilder{promptCtx: promptCtx}, generator, nil)

	itinerary, outcome, err := svc.Generate(context.Background(), "beach trip")
	require.NoError(t, err)
	assert.Equal(t, services.OutcomeOK, outcome)
	assert.Equal(t, "Beach", itinerary.Title)
	assert.Equal(t, regionID, itinerary.RegionID)
	assert.Equal(t, 1, itinerary.Itinerary[0].Day)
	assert.NotNil(t, itinerary.Itinerary[0].Items)
}

func TestItineraryService_Generate_ContextError(t *testing.T) {
	svc := services.NewItineraryService(stubContextBuilder{err: errors.New("db down")}, mocks.NewItineraryGenerator(t), nil)

	itinerary, outcome, err := svc.Generate(context.Background(), "anything")
	require.NoError(t, err)
	assert.Equal(t, services.OutcomeContextError, outcome)
	assert.Nil(t, itinerary.RegionID)
}

func TestItineraryService_Generate_NoGenerator(t *testing.T) {
	svc := services.NewItineraryService(stubContextBuilder{promptCtx: &entities.PromptContext{}}, nil, nil)

	itinerary, outcome, err := svc.Generate(context.Background(), "anything")
	require.NoError(t, err)
	assert.Equal(t, services.OutcomeUpstreamError, outcome)
	assert.Equal(t, entities.FallbackItineraryTitle, itinerary.Title)
}
