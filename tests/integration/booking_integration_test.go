//go:build integration

package integration

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/travelplanner/internal/adapters/database"
	"github.com/zatekoja/travelplanner/internal/application/services"
	"github.com/zatekoja/travelplanner/internal/domain/entities"
	apperrors "github.com/zatekoja/travelplanner/pkg/errors"
)

func TestBookingLifecycleIntegration(t *testing.T) {
	if os.Getenv("TEST_DB_HOST") == "" {
		t.Skip("Skipping integration test: TEST_DB_HOST not set")
	}

	dbClient := newTestPostgresClient(t)
	defer dbClient.Close()

	db := dbClient.DB()
	runMigrations(t, db, "../../migrations/0001_init.sql")
	resetTables(t, db)
	defer resetTables(t, db)

	ctx := context.Background()
	userID := seedUser(t, db, "guest@example.com")

	regionRepo := database.NewRegionAdapter(dbClient)
	hotelRepo := database.NewHotelAdapter(dbClient)
	bookingRepo := database.NewBookingAdapter(dbClient)

	region := &entities.Region{Name: "Đà Lạt"}
	require.NoError(t, regionRepo.Create(ctx, region))
	hotel := &entities.Hotel{RegionID: &region.ID, Name: "Pine Hill Lodge", PricePerNight: 1200000, Rating: lo.ToPtr(4.5), IsActive: true}
	require.NoError(t, hotelRepo.Create(ctx, hotel))

	service := services.NewBookingService(bookingRepo, hotelRepo, 2*time.Hour)

	result, err := service.Create(ctx, userID, &entities.BookingInput{
		HotelID:       hotel.ID,
		CheckIn:       entities.NewDate(2026, time.December, 1),
		CheckOut:      entities.NewDate(2026, time.December, 4),
		Guests:        2,
		GuestFullName: "Nguyễn Văn A",
		GuestEmail:    "guest@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3600000), result.Booking.TotalAmount)
	assert.Equal(t, entities.BookingStatusPending, result.Booking.Status)
	assert.Equal(t, result.Booking.ID, result.Payment.BookingID)

	mine, err := service.ListMine(ctx, userID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Pine Hill Lodge", mine[0].Hotel.Name)

	require.NoError(t, service.Approve(ctx, result.Booking.ID))

	err = service.Cancel(ctx, result.Booking.ID)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnsupportedTransition))

	require.NoError(t, service.DeleteOwn(ctx, userID, result.Booking.ID))

	mine, err = service.ListMine(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, mine)
}
