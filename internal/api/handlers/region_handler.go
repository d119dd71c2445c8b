package handlers

import (
	"context"
	"net/http"

	"github.com/zatekoja/travelplanner/internal/domain/entities"
)

// RegionService defines the region operations used by the handler
type RegionService interface {
	List(ctx context.Context) ([]*entities.Region, error)
	GetByID(ctx context.Context, id int64) (*entities.Region, error)
	Create(ctx context.Context, region *entities.Region) error
	Update(ctx context.Context, id int64, patch *entities.RegionPatch) (*entities.Region, error)
	Delete(ctx context.Context, id int64) error
}

// DestinationService defines the destination lookup used by the handler
type DestinationService interface {
	Get(ctx context.Context, regionID int64) (*entities.DestinationDetail, error)
}

// RegionHandler handles regions and destination details
type RegionHandler struct {
	service      RegionService
	destinations DestinationService
}

// NewRegionHandler creates a new region handler
func NewRegionHandler(service RegionService, destinations DestinationService) *RegionHandler {
	return &RegionHandler{service: service, destinations: destinations}
}

// ListRegions handles GET /api/regions
func (h *RegionHandler) ListRegions(w http.ResponseWriter, r *http.Request) {
	regions, err := h.service.List(r.Context())
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, orEmpty(regions))
}

// GetRegion handles GET /api/regions/{id}
func (h *RegionHandler) GetRegion(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	region, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, region)
}

// CreateRegion handles POST /api/regions
func (h *RegionHandler) CreateRegion(w http.ResponseWriter, r *http.Request) {
	var region entities.Region
	if err := decodeJSON(r, &region); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	if err := h.service.Create(r.Context(), &region); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, region)
}

// UpdateRegion handles PUT /api/regions/{id}
func (h *RegionHandler) UpdateRegion(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	var patch entities.RegionPatch
	if err := decodeJSON(r, &patch); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	region, err := h.service.Update(r.Context(), id, &patch)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, region)
}

// DeleteRegion handles DELETE /api/regions/{id}
func (h *RegionHandler) DeleteRegion(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, messageResponse{Message: "region deleted"})
}

// GetDestination handles GET /api/destinations/{region_id}
func (h *RegionHandler) GetDestination(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "region_id")
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	detail, err := h.destinations.Get(r.Context(), id)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	detail.Hotels = orEmpty(detail.Hotels)
	detail.Restaurants = orEmpty(detail.Restaurants)
	detail.Places = orEmpty(detail.Places)
	respondWithJSON(w, http.StatusOK, detail)
}
