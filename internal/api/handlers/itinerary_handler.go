package handlers

import (
	"context"
	"net/http"

	"github.com/zatekoja/travelplanner/internal/application/services"
	"github.com/zatekoja/travelplanner/internal/domain/entities"
)

// ItineraryOutcomeHeader tells clients whether the body is a real plan or the fallback
const ItineraryOutcomeHeader = "X-Itinerary-Outcome"

// ItineraryService defines the generation operation used by the handler
type ItineraryService interface {
	Generate(ctx context.Context, prompt string) (*entities.Itinerary, services.GenerationOutcome, error)
}

// ItineraryHandler handles itinerary generation
type ItineraryHandler struct {
	service ItineraryService
}

// NewItineraryHandler creates a new itinerary handler
func NewItineraryHandler(service ItineraryService) *ItineraryHandler {
	return &ItineraryHandler{service: service}
}

type generateRequest struct {
	Prompt string `json:"prompt"`
}

// Generate handles POST /api/v1/generate. Generation failures still answer
// 200 with the fallback plan; the outcome header carries the reason.
func (h *ItineraryHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	itinerary, outcome, err := h.service.Generate(r.Context(), req.Prompt)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	w.Header().Set(ItineraryOutcomeHeader, string(outcome))
	respondWithJSON(w, http.StatusOK, itinerary)
}
