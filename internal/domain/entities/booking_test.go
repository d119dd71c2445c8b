package entities

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPendingBooking_PricesNightsAtBookingTime(t *testing.T) {
	hotel := &Hotel{ID: 42, PricePerNight: 750000}
	in := &BookingInput{
		HotelID:  42,
		CheckIn:  NewDate(2025, time.January, 10),
		CheckOut: NewDate(2025, time.January, 13),
		Guests:   2,
	}
	userID := int64(5)

	booking := NewPendingBooking(in, hotel, &userID)

	assert.Equal(t, 3, booking.TotalNights)
	assert.Equal(t, int64(750000), booking.PricePerNight)
	assert.Equal(t, int64(2250000), booking.TotalAmount)
	assert.Equal(t, BookingStatusPending, booking.Status)
	assert.True(t, booking.OwnedBy(5))
	assert.False(t, booking.OwnedBy(6))

	hotel.PricePerNight = 999
	assert.Equal(t, int64(2250000), booking.TotalAmount)
}

func TestBookingInput_Validate(t *testing.T) {
	valid := func() *BookingInput {
		return &BookingInput{
			HotelID:  1,
			CheckIn:  NewDate(2025, time.March, 1),
			CheckOut: NewDate(2025, time.March, 2),
			Guests:   1,
		}
	}

	tests := []struct {
		name   string
		mutate func(in *BookingInput)
		ok     bool
	}{
		{name: "one night", mutate: func(in *BookingInput) {}, ok: true},
		{name: "same day", mutate: func(in *BookingInput) { in.CheckOut = in.CheckIn }},
		{name: "check out before check in", mutate: func(in *BookingInput) { in.CheckOut = NewDate(2025, time.February, 27) }},
		{name: "zero guests", mutate: func(in *BookingInput) { in.Guests = 0 }},
		{name: "missing hotel", mutate: func(in *BookingInput) { in.HotelID = 0 }},
		{name: "missing dates", mutate: func(in *BookingInput) { in.CheckIn = Date{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid()
			tt.mutate(in)
			err := in.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestBookingInput_ValidateReportsDateRange(t *testing.T) {
	in := &BookingInput{
		HotelID:  1,
		CheckIn:  NewDate(2025, time.March, 5),
		CheckOut: NewDate(2025, time.March, 5),
		Guests:   2,
	}
	assert.ErrorIs(t, in.Validate(), ErrInvalidDateRange)
}

func TestDate_JSON(t *testing.T) {
	var in BookingInput
	require.NoError(t, json.Unmarshal([]byte(`{"hotel_id":1,"check_in":"2025-01-10","check_out":"2025-01-12T15:00:00+07:00","guests":1}`), &in))

	assert.Equal(t, NewDate(2025, time.January, 10).Time, in.CheckIn.Time)
	assert.Equal(t, NewDate(2025, time.January, 12).Time, in.CheckOut.Time)

	out, err := json.Marshal(in.CheckIn)
	require.NoError(t, err)
	assert.Equal(t, `"2025-01-10"`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"check_in":"10/01/2025"}`), &in))
}

func TestHotelBooking_WithinDeleteWindow(t *testing.T) {
	created := time.Date(2025, time.May, 1, 9, 0, 0, 0, time.UTC)
	booking := &HotelBooking{CreatedAt: created}

	assert.True(t, booking.WithinDeleteWindow(created.Add(59*time.Minute), time.Hour))
	assert.True(t, booking.WithinDeleteWindow(created.Add(time.Hour), time.Hour))
	assert.False(t, booking.WithinDeleteWindow(created.Add(61*time.Minute), time.Hour))
}
