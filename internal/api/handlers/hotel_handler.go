package handlers

import (
	"context"
	"net/http"

	"github.com/zatekoja/travelplanner/internal/domain/entities"
)

// HotelService defines the hotel operations used by the handler
type HotelService interface {
	List(ctx context.Context) ([]*entities.HotelView, error)
	GetByID(ctx context.Context, id int64) (*entities.Hotel, error)
	Create(ctx context.Context, hotel *entities.Hotel) error
	Update(ctx context.Context, id int64, patch *entities.HotelPatch) (*entities.Hotel, error)
	Delete(ctx context.Context, id int64) error
}

// HotelHandler handles hotel requests
type HotelHandler struct {
	service HotelService
}

// NewHotelHandler creates a new hotel handler
func NewHotelHandler(service HotelService) *HotelHandler {
	return &HotelHandler{service: service}
}

// ListHotels handles GET /api/hotels
func (h *HotelHandler) ListHotels(w http.ResponseWriter, r *http.Request) {
	hotels, err := h.service.List(r.Context())
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, orEmpty(hotels))
}

// GetHotel handles GET /api/hotels/{id}
func (h *HotelHandler) GetHotel(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	hotel, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, hotel)
}

// CreateHotel handles POST /api/hotels
func (h *HotelHandler) CreateHotel(w http.ResponseWriter, r *http.Request) {
	hotel := entities.Hotel{IsActive: true}
	if err := decodeJSON(r, &hotel); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	if err := h.service.Create(r.Context(), &hotel); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, hotel)
}

// UpdateHotel handles PUT /api/hotels/{id}
func (h *HotelHandler) UpdateHotel(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	var patch entities.HotelPatch
	if err := decodeJSON(r, &patch); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	hotel, err := h.service.Update(r.Context(), id, &patch)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, hotel)
}

// DeleteHotel handles DELETE /api/hotels/{id}
func (h *HotelHandler) DeleteHotel(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, messageResponse{Message: "hotel deleted"})
}
