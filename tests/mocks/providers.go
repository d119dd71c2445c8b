package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/zatekoja/travelplanner/internal/domain/entities"
)

// ItineraryGenerator mocks providers.ItineraryGenerator
type ItineraryGenerator struct{ mock.Mock }

// NewItineraryGenerator creates a generator mock
func NewItineraryGenerator(t cleanupT) *ItineraryGenerator {
	m := &ItineraryGenerator{}
	register(&m.Mock, t)
	return m
}

func (m *ItineraryGenerator) GenerateItinerary(ctx context.Context, prompt string, promptCtx *entities.PromptContext) (*entities.Itinerary, error) {
	args := m.Called(ctx, prompt, promptCtx)
	itinerary, _ := args.Get(0).(*entities.Itinerary)
	return itinerary, args.Error(1)
}

// EventBus mocks providers.EventBus
type EventBus struct{ mock.Mock }

// NewEventBus creates an event bus mock
func NewEventBus(t cleanupT) *EventBus {
	m := &EventBus{}
	register(&m.Mock, t)
	return m
}

func (m *EventBus) Publish(ctx context.Context, channel string, event *entities.CatalogEvent) error {
	return m.Called(ctx, channel, event).Error(0)
}

func (m *EventBus) Subscribe(ctx context.Context, channel string) (<-chan *entities.CatalogEvent, error) {
	args := m.Called(ctx, channel)
	ch, _ := args.Get(0).(<-chan *entities.CatalogEvent)
	return ch, args.Error(1)
}

func (m *EventBus) Unsubscribe(ctx context.Context, channel string) error {
	return m.Called(ctx, channel).Error(0)
}

func (m *EventBus) Close() error {
	return m.Called().Error(0)
}
