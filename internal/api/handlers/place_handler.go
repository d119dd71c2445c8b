package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/zatekoja/travelplanner/internal/domain/entities"
	apperrors "github.com/zatekoja/travelplanner/pkg/errors"
)

// PlaceService defines the place operations used by the handler
type PlaceService interface {
	List(ctx context.Context, filter entities.PlaceFilter) ([]*entities.Place, error)
	GetByID(ctx context.Context, id int64) (*entities.Place, error)
	Create(ctx context.Context, place *entities.Place) error
	Update(ctx context.Context, id int64, patch *entities.PlacePatch) (*entities.Place, error)
	Delete(ctx context.Context, id int64) error
}

// PlaceHandler handles sightseeing places
type PlaceHandler struct {
	service PlaceService
}

// NewPlaceHandler creates a new place handler
func NewPlaceHandler(service PlaceService) *PlaceHandler {
	return &PlaceHandler{service: service}
}

// ListPlaces handles GET /api/places?region_id=&place_type=
func (h *PlaceHandler) ListPlaces(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := entities.PlaceFilter{PlaceType: query.Get("place_type")}
	if raw := query.Get("region_id"); raw != "" {
		regionID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			respondWithAppError(w, r, apperrors.NewValidationError("region_id must be an integer"))
			return
		}
		filter.RegionID = &regionID
	}

	places, err := h.service.List(r.Context(), filter)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, orEmpty(places))
}

// GetPlace handles GET /api/places/{id}
func (h *PlaceHandler) GetPlace(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	place, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, place)
}

// CreatePlace handles POST /api/places
func (h *PlaceHandler) CreatePlace(w http.ResponseWriter, r *http.Request) {
	place := entities.Place{IsActive: true}
	if err := decodeJSON(r, &place); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	if err := h.service.Create(r.Context(), &place); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, place)
}

// UpdatePlace handles PUT /api/places/{id}
func (h *PlaceHandler) UpdatePlace(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	var patch entities.PlacePatch
	if err := decodeJSON(r, &patch); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	place, err := h.service.Update(r.Context(), id, &patch)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, place)
}

// DeletePlace handles DELETE /api/places/{id}
func (h *PlaceHandler) DeletePlace(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, messageResponse{Message: "place deleted"})
}
