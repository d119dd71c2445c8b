package entities

import (
	"time"

	"github.com/google/uuid"
)

// CatalogEntity names the kind of catalog row an event refers to
type CatalogEntity string

const (
	CatalogEntityRegion     CatalogEntity = "region"
	CatalogEntityHotel      CatalogEntity = "hotel"
	CatalogEntityRestaurant CatalogEntity = "restaurant"
	CatalogEntityPlace      CatalogEntity = "place"
)

// CatalogAction is the kind of change applied to a catalog row
type CatalogAction string

const (
	CatalogActionCreated CatalogAction = "created"
	CatalogActionUpdated CatalogAction = "updated"
	CatalogActionDeleted CatalogAction = "deleted"
)

// CatalogEvent announces a write to the catalog so readers can drop stale copies
type CatalogEvent struct {
	ID        string        `json:"id"`
	Entity    CatalogEntity `json:"entity"`
	EntityID  int64         `json:"entity_id"`
	Action    CatalogAction `json:"action"`
	Timestamp time.Time     `json:"timestamp"`
}

// NewCatalogEvent creates a new catalog event
func NewCatalogEvent(entity CatalogEntity, entityID int64, action CatalogAction) *CatalogEvent {
	return &CatalogEvent{
		ID:        uuid.NewString(),
		Entity:    entity,
		EntityID:  entityID,
		Action:    action,
		Timestamp: time.Now().UTC(),
	}
}
