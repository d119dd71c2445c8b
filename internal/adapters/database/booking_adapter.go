package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"
	"github.com/zatekoja/travelplanner/internal/domain/entities"
	"github.com/zatekoja/travelplanner/internal/domain/repositories"
	"github.com/zatekoja/travelplanner/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/travelplanner/pkg/errors"
)

const sqlDateLayout = "2006-01-02"

var bookingColumns = []string{
	"id", "hotel_id", "user_id", "guest_full_name", "guest_email", "guest_phone",
	"check_in", "check_out", "guests", "special_request", "price_per_night",
	"total_nights", "total_amount", "status", "created_at",
}

// BookingAdapter implements BookingRepository
type BookingAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewBookingAdapter creates a new booking adapter
func NewBookingAdapter(client *postgres.Client) repositories.BookingRepository {
	return &BookingAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// CreateWithPayment inserts the booking and its payment row in one transaction
func (a *BookingAdapter) CreateWithPayment(ctx context.Context, booking *entities.HotelBooking) (*entities.Payment, error) {
	booking.CreatedAt = time.Now().UTC()
	if booking.Status == "" {
		booking.Status = entities.BookingStatusPending
	}

	bookingQuery, _, err := a.db.Insert("hotel_bookings").Rows(goqu.Record{
		"hotel_id":        booking.HotelID,
		"user_id":         nullInt64(booking.UserID),
		"guest_full_name": nullString(booking.GuestFullName),
		"guest_email":     nullString(booking.GuestEmail),
		"guest_phone":     nullString(booking.GuestPhone),
		"check_in":        booking.CheckIn.Format(sqlDateLayout),
		"check_out":       booking.CheckOut.Format(sqlDateLayout),
		"guests":          booking.Guests,
		"special_request": nullString(booking.SpecialRequest),
		"price_per_night": booking.PricePerNight,
		"total_nights":    booking.TotalNights,
		"total_amount":    booking.TotalAmount,
		"status":          string(booking.Status),
		"created_at":      booking.CreatedAt,
	}).Returning("id").ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build insert query", err)
	}

	payment := &entities.Payment{
		PaymentMethod: entities.PaymentMethodCash,
		PaymentStatus: entities.PaymentStatusUnpaid,
		CreatedAt:     booking.CreatedAt,
	}

	err = a.client.WithTx(ctx, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx, bookingQuery).Scan(&booking.ID); err != nil {
			return err
		}
		payment.BookingID = booking.ID

		paymentQuery, _, err := a.db.Insert("payments").Rows(goqu.Record{
			"booking_id":     payment.BookingID,
			"payment_method": payment.PaymentMethod,
			"payment_status": payment.PaymentStatus,
			"created_at":     payment.CreatedAt,
		}).Returning("id").ToSQL()
		if err != nil {
			return err
		}
		return tx.QueryRowContext(ctx, paymentQuery).Scan(&payment.ID)
	})
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, apperrors.NewValidationError("hotel_id or user_id does not reference an existing row")
		}
		return nil, apperrors.NewInternalError("failed to create booking", err)
	}
	return payment, nil
}

// GetByID retrieves a booking by ID
func (a *BookingAdapter) GetByID(ctx context.Context, id int64) (*entities.HotelBooking, error) {
	query, _, err := a.db.Select(columns(bookingColumns...)...).From("hotel_bookings").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	booking := &entities.HotelBooking{}
	err = scanBookingInto(a.client.DB().QueryRowContext(ctx, query), booking)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("booking with id %d not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get booking", err)
	}
	return booking, nil
}

// ListByUser returns a user's bookings newest first
func (a *BookingAdapter) ListByUser(ctx context.Context, userID int64) ([]*entities.BookingView, error) {
	return a.listViews(ctx, goqu.Ex{"b.user_id": userID}, false)
}

// ListAll returns every booking with hotel and user projections, newest first
func (a *BookingAdapter) ListAll(ctx context.Context) ([]*entities.BookingView, error) {
	return a.listViews(ctx, nil, true)
}

// TransitionFromPending sets status only while the booking is still pending
func (a *BookingAdapter) TransitionFromPending(ctx context.Context, id int64, status entities.BookingStatus) (bool, error) {
	query, _, err := a.db.Update("hotel_bookings").
		Set(goqu.Record{"status": string(status)}).
		Where(goqu.Ex{"id": id, "status": string(entities.BookingStatusPending)}).
		ToSQL()
	if err != nil {
		return false, apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query)
	if err != nil {
		return false, apperrors.NewInternalError("failed to update booking status", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, apperrors.NewInternalError("failed to get rows affected", err)
	}
	return rowsAffected == 1, nil
}

// Delete deletes a booking and its payment
func (a *BookingAdapter) Delete(ctx context.Context, id int64) error {
	paymentQuery, _, err := a.db.Delete("payments").Where(goqu.Ex{"booking_id": id}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}
	bookingQuery, _, err := a.db.Delete("hotel_bookings").Where(goqu.Ex{"id": id}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	err = a.client.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, paymentQuery); err != nil {
			return err
		}
		return execExpectingRow(ctx, tx, bookingQuery, fmt.Sprintf("booking with id %d not found", id), "failed to delete booking")
	})
	if err != nil {
		if _, ok := apperrors.AsAppError(err); ok {
			return err
		}
		return apperrors.NewInternalError("failed to delete booking", err)
	}
	return nil
}

func (a *BookingAdapter) listViews(ctx context.Context, where goqu.Ex, withUser bool) ([]*entities.BookingView, error) {
	selectCols := qualified("b", bookingColumns...)
	selectCols = append(selectCols,
		goqu.I("h.id"), goqu.I("h.name"), goqu.I("h.description"), goqu.I("h.map_url"), goqu.I("h.image_urls"),
	)

	ds := a.db.From(goqu.T("hotel_bookings").As("b")).
		LeftJoin(goqu.T("hotels").As("h"), goqu.On(goqu.I("h.id").Eq(goqu.I("b.hotel_id"))))
	if withUser {
		selectCols = append(selectCols, goqu.I("u.id"), goqu.I("u.email"), goqu.I("u.full_name"))
		ds = ds.LeftJoin(goqu.T("users").As("u"), goqu.On(goqu.I("u.id").Eq(goqu.I("b.user_id"))))
	}
	ds = ds.Select(selectCols...).Order(goqu.I("b.created_at").Desc(), goqu.I("b.id").Desc())
	if where != nil {
		ds = ds.Where(where)
	}

	query, _, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list bookings", err)
	}
	defer rows.Close()

	views := make([]*entities.BookingView, 0)
	for rows.Next() {
		view := &entities.BookingView{}
		var hotelID sql.NullInt64
		var hotelName, hotelDescription, hotelMapURL sql.NullString
		var hotelImages []string
		extra := []interface{}{&hotelID, &hotelName, &hotelDescription, &hotelMapURL, pq.Array(&hotelImages)}

		var userID sql.NullInt64
		var userEmail, userFullName sql.NullString
		if withUser {
			extra = append(extra, &userID, &userEmail, &userFullName)
		}

		if err := scanBookingInto(rows, &view.HotelBooking, extra...); err != nil {
			return nil, apperrors.NewInternalError("failed to scan booking", err)
		}

		if hotelID.Valid {
			view.Hotel = &entities.HotelSummary{
				ID:          hotelID.Int64,
				Name:        hotelName.String,
				Description: hotelDescription.String,
				MapURL:      hotelMapURL.String,
				ImageURLs:   hotelImages,
			}
		}
		if userID.Valid {
			view.User = &entities.UserSummary{
				ID:       userID.Int64,
				Email:    userEmail.String,
				FullName: userFullName.String,
			}
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate bookings", err)
	}
	return views, nil
}

func scanBookingInto(row rowScanner, b *entities.HotelBooking, extra ...interface{}) error {
	var userID sql.NullInt64
	var guestFullName, guestEmail, guestPhone, specialRequest sql.NullString
	var checkIn, checkOut time.Time
	var status string

	dest := []interface{}{
		&b.ID,
		&b.HotelID,
		&userID,
		&guestFullName,
		&guestEmail,
		&guestPhone,
		&checkIn,
		&checkOut,
		&b.Guests,
		&specialRequest,
		&b.PricePerNight,
		&b.TotalNights,
		&b.TotalAmount,
		&status,
		&b.CreatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return err
	}

	b.UserID = int64Ptr(userID)
	b.GuestFullName = guestFullName.String
	b.GuestEmail = guestEmail.String
	b.GuestPhone = guestPhone.String
	b.SpecialRequest = specialRequest.String
	b.CheckIn = entities.NewDate(checkIn.Year(), checkIn.Month(), checkIn.Day())
	b.CheckOut = entities.NewDate(checkOut.Year(), checkOut.Month(), checkOut.Day())
	b.Status = entities.BookingStatus(status)
	return nil
}
