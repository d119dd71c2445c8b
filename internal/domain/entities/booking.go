package entities

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// BookingStatus is the lifecycle state of a hotel booking
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Payment defaults written alongside every new booking
const (
	PaymentMethodCash   = "cash"
	PaymentStatusUnpaid = "unpaid"
)

const dateLayout = "2006-01-02"

// Date is a calendar date serialized as YYYY-MM-DD
type Date struct {
	time.Time
}

// NewDate truncates t to its calendar date in UTC
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// MarshalJSON implements json.Marshaler
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(dateLayout))
}

// UnmarshalJSON accepts YYYY-MM-DD or a full RFC 3339 timestamp
func (d *Date) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		d.Time = time.Time{}
		return nil
	}
	if t, err := time.Parse(dateLayout, raw); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return fmt.Errorf("invalid date %q: expected YYYY-MM-DD", raw)
	}
	d.Time = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return nil
}

// HotelBooking is a reservation of a hotel for a date range
type HotelBooking struct {
	ID             int64         `json:"id" db:"id"`
	HotelID        int64         `json:"hotel_id" db:"hotel_id"`
	UserID         *int64        `json:"user_id" db:"user_id"`
	GuestFullName  string        `json:"guest_full_name" db:"guest_full_name"`
	GuestEmail     string        `json:"guest_email" db:"guest_email"`
	GuestPhone     string        `json:"guest_phone" db:"guest_phone"`
	CheckIn        Date          `json:"check_in" db:"check_in"`
	CheckOut       Date          `json:"check_out" db:"check_out"`
	Guests         int           `json:"guests" db:"guests"`
	SpecialRequest string        `json:"special_request" db:"special_request"`
	PricePerNight  int64         `json:"price_per_night" db:"price_per_night"`
	TotalNights    int           `json:"total_nights" db:"total_nights"`
	TotalAmount    int64         `json:"total_amount" db:"total_amount"`
	Status         BookingStatus `json:"status" db:"status"`
	CreatedAt      time.Time     `json:"created_at" db:"created_at"`
}

// Payment records how a booking is to be settled
type Payment struct {
	ID            int64      `json:"id" db:"id"`
	BookingID     int64      `json:"booking_id" db:"booking_id"`
	PaymentMethod string     `json:"payment_method" db:"payment_method"`
	PaymentStatus string     `json:"payment_status" db:"payment_status"`
	TransactionID string     `json:"transaction_id" db:"transaction_id"`
	PaidAt        *time.Time `json:"paid_at" db:"paid_at"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
}

// BookingView is a booking with its hotel and, for admin listings, its owner
type BookingView struct {
	HotelBooking
	Hotel *HotelSummary `json:"hotel"`
	User  *UserSummary  `json:"user,omitempty"`
}

// BookingInput is the payload for creating a booking
type BookingInput struct {
	HotelID        int64  `json:"hotel_id"`
	CheckIn        Date   `json:"check_in"`
	CheckOut       Date   `json:"check_out"`
	Guests         int    `json:"guests"`
	GuestFullName  string `json:"guest_full_name"`
	GuestEmail     string `json:"guest_email"`
	GuestPhone     string `json:"guest_phone"`
	SpecialRequest string `json:"special_request"`
}

// ErrInvalidDateRange is returned when check_out is not after check_in
var ErrInvalidDateRange = errors.New("invalid date range: check_out must be after check_in")

// Validate checks the booking request before any lookup or write
func (in *BookingInput) Validate() error {
	if in.HotelID <= 0 {
		return errors.New("hotel_id is required")
	}
	if in.CheckIn.IsZero() || in.CheckOut.IsZero() {
		return errors.New("check_in and check_out are required")
	}
	if NightsBetween(in.CheckIn, in.CheckOut) <= 0 {
		return ErrInvalidDateRange
	}
	if in.Guests <= 0 {
		return errors.New("guests must be greater than zero")
	}
	return nil
}

// NightsBetween returns the number of whole calendar days from checkIn to checkOut
func NightsBetween(checkIn, checkOut Date) int {
	in := time.Date(checkIn.Year(), checkIn.Month(), checkIn.Day(), 0, 0, 0, 0, time.UTC)
	out := time.Date(checkOut.Year(), checkOut.Month(), checkOut.Day(), 0, 0, 0, 0, time.UTC)
	return int(out.Sub(in).Hours() / 24)
}

// NewPendingBooking prices a request against the hotel's current nightly rate
func NewPendingBooking(in *BookingInput, hotel *Hotel, userID *int64) *HotelBooking {
	nights := NightsBetween(in.CheckIn, in.CheckOut)
	return &HotelBooking{
		HotelID:        hotel.ID,
		UserID:         userID,
		GuestFullName:  strings.TrimSpace(in.GuestFullName),
		GuestEmail:     strings.TrimSpace(in.GuestEmail),
		GuestPhone:     strings.TrimSpace(in.GuestPhone),
		CheckIn:        in.CheckIn,
		CheckOut:       in.CheckOut,
		Guests:         in.Guests,
		SpecialRequest: in.SpecialRequest,
		PricePerNight:  hotel.PricePerNight,
		TotalNights:    nights,
		TotalAmount:    int64(nights) * hotel.PricePerNight,
		Status:         BookingStatusPending,
	}
}

// OwnedBy reports whether the booking belongs to the user
func (b *HotelBooking) OwnedBy(userID int64) bool {
	return b.UserID != nil && *b.UserID == userID
}

// WithinDeleteWindow reports whether the owner may still delete the booking at now
func (b *HotelBooking) WithinDeleteWindow(now time.Time, window time.Duration) bool {
	return now.Sub(b.CreatedAt) <= window
}
