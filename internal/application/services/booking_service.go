package services

import (
	"context"
	"fmt"
	"time"

	"github.com/zatekoja/travelplanner/internal/domain/entities"
	"github.com/zatekoja/travelplanner/internal/domain/repositories"
	"github.com/zatekoja/travelplanner/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/travelplanner/pkg/errors"
)

// DefaultBookingDeleteWindow is how long an owner may delete a fresh booking
const DefaultBookingDeleteWindow = time.Hour

// BookingService runs the hotel booking workflow: pending to confirmed or cancelled
type BookingService struct {
	bookings     repositories.BookingRepository
	hotels       repositories.HotelRepository
	deleteWindow time.Duration
	now          func() time.Time
}

// NewBookingService creates a new booking service. A non-positive window uses the default.
func NewBookingService(bookings repositories.BookingRepository, hotels repositories.HotelRepository, deleteWindow time.Duration) *BookingService {
	if deleteWindow <= 0 {
		deleteWindow = DefaultBookingDeleteWindow
	}
	return &BookingService{
		bookings:     bookings,
		hotels:       hotels,
		deleteWindow: deleteWindow,
		now:          time.Now,
	}
}

// WithClock replaces the clock used for the delete window
func (s *BookingService) WithClock(now func() time.Time) *BookingService {
	s.now = now
	return s
}

// BookingResult is the outcome of a successful Create
type BookingResult struct {
	Booking *entities.HotelBooking `json:"booking"`
	Payment *entities.Payment      `json:"payment"`
}

// Create prices the request at the hotel's current rate and stores it as pending
func (s *BookingService) Create(ctx context.Context, userID int64, input *entities.BookingInput) (*BookingResult, error) {
	if input == nil {
		return nil, apperrors.NewValidationError("request body is required")
	}
	if err := input.Validate(); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	hotel, err := s.hotels.GetByID(ctx, input.HotelID)
	if err != nil {
		return nil, err
	}

	booking := entities.NewPendingBooking(input, hotel, &userID)
	payment, err := s.bookings.CreateWithPayment(ctx, booking)
	if err != nil {
		return nil, err
	}

	observability.LoggerFromContext(ctx).Info().
		Int64("booking_id", booking.ID).
		Int64("hotel_id", hotel.ID).
		Int("nights", booking.TotalNights).
		Msg("Booking created")
	return &BookingResult{Booking: booking, Payment: payment}, nil
}

// ListMine returns the caller's bookings
func (s *BookingService) ListMine(ctx context.Context, userID int64) ([]*entities.BookingView, error) {
	return s.bookings.ListByUser(ctx, userID)
}

// ListAll returns every booking
func (s *BookingService) ListAll(ctx context.Context) ([]*entities.BookingView, error) {
	return s.bookings.ListAll(ctx)
}

// Approve confirms a pending booking
func (s *BookingService) Approve(ctx context.Context, id int64) error {
	return s.transition(ctx, id, entities.BookingStatusConfirmed)
}

// Cancel cancels a pending booking
func (s *BookingService) Cancel(ctx context.Context, id int64) error {
	return s.transition(ctx, id, entities.BookingStatusCancelled)
}

func (s *BookingService) transition(ctx context.Context, id int64, status entities.BookingStatus) error {
	moved, err := s.bookings.TransitionFromPending(ctx, id, status)
	if err != nil {
		return err
	}
	if moved {
		return nil
	}

	// Nothing moved: either the booking is gone or it already left pending.
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return apperrors.NewUnsupportedTransitionError(
		fmt.Sprintf("booking %d is %s and cannot become %s", id, booking.Status, status),
	)
}

// DeleteOwn lets the owner delete a booking shortly after creating it
func (s *BookingService) DeleteOwn(ctx context.Context, userID, id int64) error {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !booking.OwnedBy(userID) {
		return apperrors.NewForbiddenError(fmt.Sprintf("booking %d belongs to another user", id))
	}
	if !booking.WithinDeleteWindow(s.now(), s.deleteWindow) {
		return apperrors.NewValidationError(
			fmt.Sprintf("bookings can only be deleted within %s of creation; please contact support", s.deleteWindow),
		)
	}
	return s.bookings.Delete(ctx, id)
}
