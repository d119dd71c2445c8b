package handlers

import (
	"context"
	"net/http"

	"github.com/zatekoja/travelplanner/internal/api/middleware"
	"github.com/zatekoja/travelplanner/internal/domain/entities"
)

// UserService defines the user operations used by the handler
type UserService interface {
	List(ctx context.Context) ([]*entities.User, error)
	Get(ctx context.Context, principal *entities.Principal, id int64) (*entities.User, error)
	Update(ctx context.Context, principal *entities.Principal, id int64, patch *entities.UserPatch) (*entities.User, error)
	Delete(ctx context.Context, id int64) error
}

// UserHandler handles user profiles
type UserHandler struct {
	service UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(service UserService) *UserHandler {
	return &UserHandler{service: service}
}

// ListUsers handles GET /api/users
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.List(r.Context())
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, orEmpty(users))
}

// GetUser handles GET /api/users/{id}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	user, err := h.service.Get(r.Context(), middleware.PrincipalFromContext(r.Context()), id)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, user)
}

// UpdateUser handles PUT and PATCH /api/users/{id}
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	var patch entities.UserPatch
	if err := decodeJSON(r, &patch); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	user, err := h.service.Update(r.Context(), middleware.PrincipalFromContext(r.Context()), id, &patch)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, user)
}

// DeleteUser handles DELETE /api/users/{id}
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, messageResponse{Message: "user deleted"})
}
