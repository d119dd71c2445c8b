package repositories

import (
	"context"

	"github.com/zatekoja/travelplanner/internal/domain/entities"
)

// BookingRepository defines the interface for hotel booking data operations
type BookingRepository interface {
	// CreateWithPayment inserts the booking and its unpaid payment row in one transaction
	CreateWithPayment(ctx context.Context, booking *entities.HotelBooking) (*entities.Payment, error)

	// GetByID retrieves a booking by ID
	GetByID(ctx context.Context, id int64) (*entities.HotelBooking, error)

	// ListByUser returns a user's bookings with the short hotel projection
	ListByUser(ctx context.Context, userID int64) ([]*entities.BookingView, error)

	// ListAll returns every booking with hotel and user projections
	ListAll(ctx context.Context) ([]*entities.BookingView, error)

	// TransitionFromPending moves a pending booking to status. It reports false
	// when no pending booking with that ID exists.
	TransitionFromPending(ctx context.Context, id int64, status entities.BookingStatus) (bool, error)

	// Delete deletes a booking and its payment
	Delete(ctx context.Context, id int64) error
}
