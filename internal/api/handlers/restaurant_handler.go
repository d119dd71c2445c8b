package handlers

import (
	"context"
	"net/http"

	"github.com/zatekoja/travelplanner/internal/domain/entities"
)

// RestaurantService defines the restaurant and cuisine operations used by the handler
type RestaurantService interface {
	List(ctx context.Context) ([]*entities.RestaurantView, error)
	GetByID(ctx context.Context, id int64) (*entities.RestaurantView, error)
	Create(ctx context.Context, input *entities.RestaurantInput) (*entities.RestaurantView, error)
	Update(ctx context.Context, id int64, patch *entities.RestaurantPatch) (*entities.RestaurantView, error)
	Delete(ctx context.Context, id int64) error
	ListCuisines(ctx context.Context) ([]*entities.Cuisine, error)
	CreateCuisine(ctx context.Context, cuisine *entities.Cuisine) error
	RenameCuisine(ctx context.Context, id int64, name string) (*entities.Cuisine, error)
	DeleteCuisine(ctx context.Context, id int64) error
}

// RestaurantHandler handles restaurants and cuisines
type RestaurantHandler struct {
	service RestaurantService
}

// NewRestaurantHandler creates a new restaurant handler
func NewRestaurantHandler(service RestaurantService) *RestaurantHandler {
	return &RestaurantHandler{service: service}
}

// ListRestaurants handles GET /api/restaurants
func (h *RestaurantHandler) ListRestaurants(w http.ResponseWriter, r *http.Request) {
	restaurants, err := h.service.List(r.Context())
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, orEmpty(restaurants))
}

// GetRestaurant handles GET /api/restaurants/{id}
func (h *RestaurantHandler) GetRestaurant(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	restaurant, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, restaurant)
}

// CreateRestaurant handles POST /api/restaurants
func (h *RestaurantHandler) CreateRestaurant(w http.ResponseWriter, r *http.Request) {
	input := entities.RestaurantInput{Restaurant: entities.Restaurant{IsActive: true}}
	if err := decodeJSON(r, &input); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	restaurant, err := h.service.Create(r.Context(), &input)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, restaurant)
}

// UpdateRestaurant handles PUT /api/restaurants/{id}
func (h *RestaurantHandler) UpdateRestaurant(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	var patch entities.RestaurantPatch
	if err := decodeJSON(r, &patch); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	restaurant, err := h.service.Update(r.Context(), id, &patch)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, restaurant)
}

// DeleteRestaurant handles DELETE /api/restaurants/{id}
func (h *RestaurantHandler) DeleteRestaurant(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, messageResponse{Message: "restaurant deleted"})
}

// ListCuisines handles GET /api/cuisines
func (h *RestaurantHandler) ListCuisines(w http.ResponseWriter, r *http.Request) {
	cuisines, err := h.service.ListCuisines(r.Context())
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, orEmpty(cuisines))
}

// CreateCuisine handles POST /api/cuisines
func (h *RestaurantHandler) CreateCuisine(w http.ResponseWriter, r *http.Request) {
	var cuisine entities.Cuisine
	if err := decodeJSON(r, &cuisine); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	if err := h.service.CreateCuisine(r.Context(), &cuisine); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, cuisine)
}

// RenameCuisine handles PUT /api/cuisines/{id}
func (h *RestaurantHandler) RenameCuisine(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	var body entities.Cuisine
	if err := decodeJSON(r, &body); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	cuisine, err := h.service.RenameCuisine(r.Context(), id, body.Name)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, cuisine)
}

// DeleteCuisine handles DELETE /api/cuisines/{id}
func (h *RestaurantHandler) DeleteCuisine(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	if err := h.service.DeleteCuisine(r.Context(), id); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, messageResponse{Message: "cuisine deleted"})
}
