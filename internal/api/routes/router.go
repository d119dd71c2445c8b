package routes

import (
	"net/http"

	"github.com/zatekoja/travelplanner/internal/api/handlers"
	"github.com/zatekoja/travelplanner/internal/api/middleware"
	"github.com/zatekoja/travelplanner/internal/infrastructure/observability"
)

// Handlers groups every route handler the router serves
type Handlers struct {
	Health     *handlers.HealthHandler
	Itinerary  *handlers.ItineraryHandler
	Trip       *handlers.TripHandler
	Booking    *handlers.BookingHandler
	Region     *handlers.RegionHandler
	Hotel      *handlers.HotelHandler
	Restaurant *handlers.RestaurantHandler
	Place      *handlers.PlaceHandler
	User       *handlers.UserHandler
}

// Router holds all route handlers
type Router struct {
	mux            *http.ServeMux
	handlers       Handlers
	auth           *middleware.Authenticator
	metrics        *observability.Metrics
	allowedOrigins []string
}

// NewRouter creates a new router
func NewRouter(h Handlers, auth *middleware.Authenticator, metrics *observability.Metrics, allowedOrigins []string) *Router {
	return &Router{
		mux:            http.NewServeMux(),
		handlers:       h,
		auth:           auth,
		metrics:        metrics,
		allowedOrigins: allowedOrigins,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	h := r.handlers
	authed := r.auth.RequireAuth
	admin := r.auth.RequireAdmin

	r.mux.HandleFunc("GET /health", h.Health.Health)

	// Itinerary generation and saved trips
	r.mux.HandleFunc("POST /api/v1/generate", h.Itinerary.Generate)
	r.mux.HandleFunc("POST /api/v1/save", authed(h.Trip.SaveTrip))
	r.mux.HandleFunc("POST /api/v1/trips/save", authed(h.Trip.SaveTrip))
	r.mux.HandleFunc("GET /api/v1/my-trips", authed(h.Trip.ListMyTrips))
	r.mux.HandleFunc("PUT /api/v1/trips/{id}", authed(h.Trip.UpdateTrip))
	r.mux.HandleFunc("DELETE /api/v1/trips/{id}", authed(h.Trip.DeleteTrip))
	r.mux.HandleFunc("GET /api/v1/admin/trips/all", admin(h.Trip.ListAllTrips))

	// Bookings
	r.mux.HandleFunc("POST /api/bookings", authed(h.Booking.CreateBooking))
	r.mux.HandleFunc("GET /api/bookings/my-bookings", authed(h.Booking.ListMyBookings))
	r.mux.HandleFunc("GET /api/bookings", admin(h.Booking.ListBookings))
	r.mux.HandleFunc("PATCH /api/bookings/{id}/approve", admin(h.Booking.ApproveBooking))
	r.mux.HandleFunc("PATCH /api/bookings/{id}/cancel", admin(h.Booking.CancelBooking))
	r.mux.HandleFunc("DELETE /api/bookings/{id}", authed(h.Booking.DeleteBooking))

	// Regions and destinations
	r.mux.HandleFunc("GET /api/regions", h.Region.ListRegions)
	r.mux.HandleFunc("GET /api/regions/{id}", h.Region.GetRegion)
	r.mux.HandleFunc("POST /api/regions", admin(h.Region.CreateRegion))
	r.mux.HandleFunc("PUT /api/regions/{id}", admin(h.Region.UpdateRegion))
	r.mux.HandleFunc("DELETE /api/regions/{id}", admin(h.Region.DeleteRegion))
	r.mux.HandleFunc("GET /api/destinations/{region_id}", h.Region.GetDestination)

	// Hotels
	r.mux.HandleFunc("GET /api/hotels", h.Hotel.ListHotels)
	r.mux.HandleFunc("GET /api/hotels/{id}", h.Hotel.GetHotel)
	r.mux.HandleFunc("POST /api/hotels", admin(h.Hotel.CreateHotel))
	r.mux.HandleFunc("PUT /api/hotels/{id}", admin(h.Hotel.UpdateHotel))
	r.mux.HandleFunc("DELETE /api/hotels/{id}", admin(h.Hotel.DeleteHotel))

	// Restaurants and cuisines
	r.mux.HandleFunc("GET /api/restaurants", h.Restaurant.ListRestaurants)
	r.mux.HandleFunc("GET /api/restaurants/{id}", h.Restaurant.GetRestaurant)
	r.mux.HandleFunc("POST /api/restaurants", admin(h.Restaurant.CreateRestaurant))
	r.mux.HandleFunc("PUT /api/restaurants/{id}", admin(h.Restaurant.UpdateRestaurant))
	r.mux.HandleFunc("DELETE /api/restaurants/{id}", admin(h.Restaurant.DeleteRestaurant))
	r.mux.HandleFunc("GET /api/cuisines", h.Restaurant.ListCuisines)
	r.mux.HandleFunc("POST /api/cuisines", admin(h.Restaurant.CreateCuisine))
	r.mux.HandleFunc("PUT /api/cuisines/{id}", admin(h.Restaurant.RenameCuisine))
	r.mux.HandleFunc("DELETE /api/cuisines/{id}", admin(h.Restaurant.DeleteCuisine))

	// Places
	r.mux.HandleFunc("GET /api/places", h.Place.ListPlaces)
	r.mux.HandleFunc("GET /api/places/{id}", h.Place.GetPlace)
	r.mux.HandleFunc("POST /api/places", admin(h.Place.CreatePlace))
	r.mux.HandleFunc("PUT /api/places/{id}", admin(h.Place.UpdatePlace))
	r.mux.HandleFunc("DELETE /api/places/{id}", admin(h.Place.DeletePlace))

	// Users
	r.mux.HandleFunc("GET /api/users", admin(h.User.ListUsers))
	r.mux.HandleFunc("GET /api/users/{id}", authed(h.User.GetUser))
	r.mux.HandleFunc("PUT /api/users/{id}", authed(h.User.UpdateUser))
	r.mux.HandleFunc("PATCH /api/users/{id}", authed(h.User.UpdateUser))
	r.mux.HandleFunc("DELETE /api/users/{id}", admin(h.User.DeleteUser))

	// Apply middleware in reverse order (last middleware wraps first)
	var handler http.Handler = r.mux
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ResponseOptimization(handler)
	handler = middleware.CORSMiddleware(r.allowedOrigins)(handler)

	return handler
}
