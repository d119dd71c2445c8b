package handlers

import (
	"context"
	"net/http"

	"github.com/zatekoja/travelplanner/internal/api/middleware"
	"github.com/zatekoja/travelplanner/internal/domain/entities"
)

// TripService defines the trip operations used by the handler
type TripService interface {
	Save(ctx context.Context, userID int64, input *entities.TripInput) (int64, error)
	ListByUser(ctx context.Context, userID int64) ([]*entities.SavedTrip, error)
	ListAll(ctx context.Context) ([]*entities.AdminTripView, error)
	Update(ctx context.Context, principal *entities.Principal, id int64, input *entities.TripInput) error
	Delete(ctx context.Context, principal *entities.Principal, id int64) error
}

// TripHandler handles saved trips
type TripHandler struct {
	service TripService
}

// NewTripHandler creates a new trip handler
func NewTripHandler(service TripService) *TripHandler {
	return &TripHandler{service: service}
}

type tripIDResponse struct {
	Message string `json:"message"`
	TripID  int64  `json:"trip_id"`
}

// SaveTrip handles POST /api/v1/save and POST /api/v1/trips/save
func (h *TripHandler) SaveTrip(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFromContext(r.Context())

	var input entities.TripInput
	if err := decodeJSON(r, &input); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	id, err := h.service.Save(r.Context(), principal.UserID, &input)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, tripIDResponse{Message: "trip saved", TripID: id})
}

// ListMyTrips handles GET /api/v1/my-trips
func (h *TripHandler) ListMyTrips(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFromContext(r.Context())

	trips, err := h.service.ListByUser(r.Context(), principal.UserID)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, orEmpty(trips))
}

// ListAllTrips handles GET /api/v1/admin/trips/all
func (h *TripHandler) ListAllTrips(w http.ResponseWriter, r *http.Request) {
	trips, err := h.service.ListAll(r.Context())
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, orEmpty(trips))
}

// UpdateTrip handles PUT /api/v1/trips/{id}
func (h *TripHandler) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	var input entities.TripInput
	if err := decodeJSON(r, &input); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	if err := h.service.Update(r.Context(), middleware.PrincipalFromContext(r.Context()), id, &input); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, tripIDResponse{Message: "trip updated", TripID: id})
}

// DeleteTrip handles DELETE /api/v1/trips/{id}
func (h *TripHandler) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	if err := h.service.Delete(r.Context(), middleware.PrincipalFromContext(r.Context()), id); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, messageResponse{Message: "trip deleted"})
}
