package handlers

import (
	"context"
	"net/http"

	"github.com/zatekoja/travelplanner/internal/api/middleware"
	"github.com/zatekoja/travelplanner/internal/application/services"
	"github.com/zatekoja/travelplanner/internal/domain/entities"
)

// BookingService defines the booking workflow used by the handler
type BookingService interface {
	Create(ctx context.Context, userID int64, input *entities.BookingInput) (*services.BookingResult, error)
	ListMine(ctx context.Context, userID int64) ([]*entities.BookingView, error)
	ListAll(ctx context.Context) ([]*entities.BookingView, error)
	Approve(ctx context.Context, id int64) error
	Cancel(ctx context.Context, id int64) error
	DeleteOwn(ctx context.Context, userID, id int64) error
}

// BookingHandler handles hotel bookings
type BookingHandler struct {
	service BookingService
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(service BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

type bookingStatusResponse struct {
	Message string                 `json:"message"`
	Status  entities.BookingStatus `json:"status"`
}

// CreateBooking handles POST /api/bookings
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var input entities.BookingInput
	if err := decodeJSON(r, &input); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	result, err := h.service.Create(r.Context(), middleware.PrincipalFromContext(r.Context()).UserID, &input)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, result)
}

// ListMyBookings handles GET /api/bookings/my-bookings
func (h *BookingHandler) ListMyBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.service.ListMine(r.Context(), middleware.PrincipalFromContext(r.Context()).UserID)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, orEmpty(bookings))
}

// ListBookings handles GET /api/bookings
func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.service.ListAll(r.Context())
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, orEmpty(bookings))
}

// ApproveBooking handles PATCH /api/bookings/{id}/approve
func (h *BookingHandler) ApproveBooking(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.Approve, entities.BookingStatusConfirmed)
}

// CancelBooking handles PATCH /api/bookings/{id}/cancel
func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.Cancel, entities.BookingStatusCancelled)
}

func (h *BookingHandler) transition(w http.ResponseWriter, r *http.Request, apply func(context.Context, int64) error, status entities.BookingStatus) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	if err := apply(r.Context(), id); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, bookingStatusResponse{Message: "booking " + string(status), Status: status})
}

// DeleteBooking handles DELETE /api/bookings/{id}
func (h *BookingHandler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	if err := h.service.DeleteOwn(r.Context(), middleware.PrincipalFromContext(r.Context()).UserID, id); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, messageResponse{Message: "booking deleted"})
}
