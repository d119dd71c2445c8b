package services

import (
	"context"

	"github.com/zatekoja/travelplanner/internal/domain/entities"
	"github.com/zatekoja/travelplanner/internal/domain/providers"
	"github.com/zatekoja/travelplanner/internal/infrastructure/observability"
)

// catalogPublisher announces catalog writes. Publishing is best effort: the
// write has already committed, so failures are only logged.
type catalogPublisher struct {
	bus providers.EventBus
}

func (p catalogPublisher) publish(ctx context.Context, entity entities.CatalogEntity, id int64, action entities.CatalogAction) {
	if p.bus == nil {
		return
	}
	event := entities.NewCatalogEvent(entity, id, action)
	if err := p.bus.Publish(ctx, providers.EventChannelCatalogUpdates, event); err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).
			Str("entity", string(entity)).
			Int64("entity_id", id).
			Str("action", string(action)).
			Msg("Failed to publish catalog event")
	}
}
