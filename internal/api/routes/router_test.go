package routes_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/travelplanner/internal/api/handlers"
	"github.com/zatekoja/travelplanner/internal/api/middleware"
	"github.com/zatekoja/travelplanner/internal/api/routes"
	"github.com/zatekoja/travelplanner/internal/domain/entities"
)

const secret = "router-secret"

type stubRegions struct{}

func (stubRegions) List(ctx context.Context) ([]*entities.Region, error) {
	return []*entities.Region{{ID: 1, Name: "Hà Nội"}}, nil
}

func (stubRegions) GetByID(ctx context.Context, id int64) (*entities.Region, error) {
	return &entities.Region{ID: id}, nil
}

func (stubRegions) Create(ctx context.Context, region *entities.Region) error {
	region.ID = 10
	return nil
}

func (stubRegions) Update(ctx context.Context, id int64, patch *entities.RegionPatch) (*entities.Region, error) {
	return &entities.Region{ID: id}, nil
}

func (stubRegions) Delete(ctx context.Context, id int64) error { return nil }

func newServer(t *testing.T) http.Handler {
	t.Helper()
	router := routes.NewRouter(routes.Handlers{
		Health:     handlers.NewHealthHandler(nil),
		Itinerary:  handlers.NewItineraryHandler(nil),
		Trip:       handlers.NewTripHandler(nil),
		Booking:    handlers.NewBookingHandler(nil),
		Region:     handlers.NewRegionHandler(stubRegions{}, nil),
		Hotel:      handlers.NewHotelHandler(nil),
		Restaurant: handlers.NewRestaurantHandler(nil),
		Place:      handlers.NewPlaceHandler(nil),
		User:       handlers.NewUserHandler(nil),
	}, middleware.NewAuthenticator(secret), nil, nil)
	return router.SetupRoutes()
}

func bearer(t *testing.T, userID int64, role string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, middleware.Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte(secret))
	require.NoError(t, err)
	return "Bearer " + token
}

func TestRouter_Access(t *testing.T) {
	server := newServer(t)

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		auth       string
		wantStatus int
	}{
		{name: "health", method: http.MethodGet, path: "/health", wantStatus: http.StatusOK},
		{name: "public region list", method: http.MethodGet, path: "/api/regions", wantStatus: http.StatusOK},
		{name: "anonymous region write", method: http.MethodPost, path: "/api/regions", body: `{"name":"Huế"}`, wantStatus: http.StatusUnauthorized},
		{name: "user region write", method: http.MethodPost, path: "/api/regions", body: `{"name":"Huế"}`, auth: bearer(t, 5, entities.RoleUser), wantStatus: http.StatusForbidden},
		{name: "admin region write", method: http.MethodPost, path: "/api/regions", body: `{"name":"Huế"}`, auth: bearer(t, 1, entities.RoleAdmin), wantStatus: http.StatusCreated},
		{name: "anonymous trips", method: http.MethodGet, path: "/api/v1/my-trips", wantStatus: http.StatusUnauthorized},
		{name: "user lists all bookings", method: http.MethodGet, path: "/api/bookings", auth: bearer(t, 5, entities.RoleUser), wantStatus: http.StatusForbidden},
		{name: "user approves booking", method: http.MethodPatch, path: "/api/bookings/3/approve", auth: bearer(t, 5, entities.RoleUser), wantStatus: http.StatusForbidden},
		{name: "wrong method", method: http.MethodDelete, path: "/api/regions", wantStatus: http.StatusMethodNotAllowed},
		{name: "unknown route", method: http.MethodGet, path: "/api/nothing", wantStatus: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			if tt.auth != "" {
				req.Header.Set("Authorization", tt.auth)
			}
			w := httptest.NewRecorder()
			server.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
		})
	}
}
