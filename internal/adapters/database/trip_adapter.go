package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/samber/lo"
	"github.com/zatekoja/travelplanner/internal/domain/entities"
	"github.com/zatekoja/travelplanner/internal/domain/repositories"
	"github.com/zatekoja/travelplanner/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/travelplanner/pkg/errors"
)

var tripColumns = []string{
	"id", "user_id", "region_id", "title", "total_days", "total_budget", "members",
	"budget_per_person", "guest_full_name", "guest_email", "guest_phone", "transport",
	"special_request", "ai_result", "created_at", "updated_at",
}

var tripItemColumns = []string{
	"id", "trip_id", "day_number", "time_slot", "activity", "location", "item_type",
	"price", "image_url", "details", "map_url", "reference_id",
}

// TripAdapter implements TripRepository
type TripAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewTripAdapter creates a new trip adapter
func NewTripAdapter(client *postgres.Client) repositories.TripRepository {
	return &TripAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

func tripRecord(trip *entities.Trip) goqu.Record {
	var aiResult interface{}
	if len(trip.AIResult) > 0 {
		aiResult = string(trip.AIResult)
	}
	return goqu.Record{
		"user_id":           trip.UserID,
		"region_id":         nullInt64(trip.RegionID),
		"title":             nullString(trip.Title),
		"total_days":        trip.TotalDays,
		"total_budget":      trip.TotalBudget,
		"members":           trip.Members,
		"budget_per_person": trip.BudgetPerPerson,
		"guest_full_name":   nullString(trip.GuestFullName),
		"guest_email":       nullString(trip.GuestEmail),
		"guest_phone":       nullString(trip.GuestPhone),
		"transport":         nullString(trip.Transport),
		"special_request":   nullString(trip.SpecialRequest),
		"ai_result":         aiResult,
		"updated_at":        trip.UpdatedAt,
	}
}

// Save inserts the trip and its items in one transaction
func (a *TripAdapter) Save(ctx context.Context, trip *entities.Trip, items []entities.TripItem) (int64, error) {
	now := time.Now().UTC()
	trip.CreatedAt = now
	trip.UpdatedAt = now

	record := tripRecord(trip)
	record["created_at"] = trip.CreatedAt
	query, _, err := a.db.Insert("trips").Rows(record).Returning("id").ToSQL()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to build insert query", err)
	}

	err = a.client.WithTx(ctx, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx, query).Scan(&trip.ID); err != nil {
			return err
		}
		return a.insertItems(ctx, tx, trip.ID, items)
	})
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, apperrors.NewValidationError("region_id does not reference an existing region")
		}
		return 0, apperrors.NewInternalError("failed to save trip", err)
	}
	return trip.ID, nil
}

// GetByID retrieves the trip row
func (a *TripAdapter) GetByID(ctx context.Context, id int64) (*entities.Trip, error) {
	query, _, err := a.db.Select(columns(tripColumns...)...).From("trips").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	trip := &entities.Trip{}
	err = scanTripInto(a.client.DB().QueryRowContext(ctx, query), trip)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("trip with id %d not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get trip", err)
	}
	return trip, nil
}

// ListByUser returns a user's trips newest first
func (a *TripAdapter) ListByUser(ctx context.Context, userID int64) ([]*entities.SavedTrip, error) {
	query, _, err := a.db.Select(columns(tripColumns...)...).From("trips").
		Where(goqu.Ex{"user_id": userID}).
		Order(goqu.I("created_at").Desc(), goqu.I("id").Desc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list trips", err)
	}
	defer rows.Close()

	trips := make([]*entities.Trip, 0)
	for rows.Next() {
		trip := &entities.Trip{}
		if err := scanTripInto(rows, trip); err != nil {
			return nil, apperrors.NewInternalError("failed to scan trip", err)
		}
		trips = append(trips, trip)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate trips", err)
	}

	itemsByTrip, err := a.itemsFor(ctx, trips)
	if err != nil {
		return nil, err
	}

	return lo.Map(trips, func(trip *entities.Trip, _ int) *entities.SavedTrip {
		return entities.NewSavedTrip(trip, itemsByTrip[trip.ID])
	}), nil
}

// ListAll returns every trip with its owner, newest first
func (a *TripAdapter) ListAll(ctx context.Context) ([]*entities.AdminTripView, error) {
	selectCols := append(qualified("t", tripColumns...), goqu.I("u.id"), goqu.I("u.email"), goqu.I("u.full_name"))

	query, _, err := a.db.From(goqu.T("trips").As("t")).
		LeftJoin(goqu.T("users").As("u"), goqu.On(goqu.I("u.id").Eq(goqu.I("t.user_id")))).
		Select(selectCols...).
		Order(goqu.I("t.created_at").Desc(), goqu.I("t.id").Desc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list trips", err)
	}
	defer rows.Close()

	trips := make([]*entities.Trip, 0)
	owners := make(map[int64]entities.UserSummary)
	for rows.Next() {
		trip := &entities.Trip{}
		var ownerID sql.NullInt64
		var email, fullName sql.NullString
		if err := scanTripInto(rows, trip, &ownerID, &email, &fullName); err != nil {
			return nil, apperrors.NewInternalError("failed to scan trip", err)
		}
		trips = append(trips, trip)
		owners[trip.ID] = entities.UserSummary{ID: ownerID.Int64, Email: email.String, FullName: fullName.String}
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate trips", err)
	}

	itemsByTrip, err := a.itemsFor(ctx, trips)
	if err != nil {
		return nil, err
	}

	return lo.Map(trips, func(trip *entities.Trip, _ int) *entities.AdminTripView {
		return &entities.AdminTripView{
			SavedTrip: *entities.NewSavedTrip(trip, itemsByTrip[trip.ID]),
			User:      owners[trip.ID],
		}
	}), nil
}

// Replace overwrites the trip scalars and rewrites every item
func (a *TripAdapter) Replace(ctx context.Context, trip *entities.Trip, items []entities.TripItem) error {
	trip.UpdatedAt = time.Now().UTC()
	updateQuery, _, err := a.db.Update("trips").
		Set(tripRecord(trip)).
		Where(goqu.Ex{"id": trip.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}
	deleteQuery, _, err := a.db.Delete("trip_items").Where(goqu.Ex{"trip_id": trip.ID}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	err = a.client.WithTx(ctx, func(tx *sql.Tx) error {
		if err := execExpectingRow(ctx, tx, updateQuery, fmt.Sprintf("trip with id %d not found", trip.ID), "failed to update trip"); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, deleteQuery); err != nil {
			return err
		}
		return a.insertItems(ctx, tx, trip.ID, items)
	})
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.NewValidationError("region_id does not reference an existing region")
		}
		if _, ok := apperrors.AsAppError(err); ok {
			return err
		}
		return apperrors.NewInternalError("failed to update trip", err)
	}
	return nil
}

// Delete removes the items and then the trip
func (a *TripAdapter) Delete(ctx context.Context, id int64) error {
	itemsQuery, _, err := a.db.Delete("trip_items").Where(goqu.Ex{"trip_id": id}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}
	tripQuery, _, err := a.db.Delete("trips").Where(goqu.Ex{"id": id}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	err = a.client.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, itemsQuery); err != nil {
			return err
		}
		return execExpectingRow(ctx, tx, tripQuery, fmt.Sprintf("trip with id %d not found", id), "failed to delete trip")
	})
	if err != nil {
		if _, ok := apperrors.AsAppError(err); ok {
			return err
		}
		return apperrors.NewInternalError("failed to delete trip", err)
	}
	return nil
}

func (a *TripAdapter) insertItems(ctx context.Context, tx *sql.Tx, tripID int64, items []entities.TripItem) error {
	if len(items) == 0 {
		return nil
	}

	rows := lo.Map(items, func(item entities.TripItem, _ int) interface{} {
		return goqu.Record{
			"trip_id":      tripID,
			"day_number":   item.DayNumber,
			"time_slot":    nullString(item.TimeSlot),
			"activity":     nullString(item.Activity),
			"location":     nullString(item.Location),
			"item_type":    nullString(item.ItemType),
			"price":        item.Price,
			"image_url":    nullStringPtr(item.ImageURL),
			"details":      nullStringPtr(item.Details),
			"map_url":      nullStringPtr(item.MapURL),
			"reference_id": nullInt64(item.ReferenceID),
		}
	})

	query, _, err := a.db.Insert("trip_items").Rows(rows...).ToSQL()
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, query)
	return err
}

// itemsFor loads the items of every trip in one query, ordered for regrouping by day
func (a *TripAdapter) itemsFor(ctx context.Context, trips []*entities.Trip) (map[int64][]entities.TripItem, error) {
	out := make(map[int64][]entities.TripItem, len(trips))
	if len(trips) == 0 {
		return out, nil
	}

	ids := lo.Map(trips, func(t *entities.Trip, _ int) int64 { return t.ID })
	query, _, err := a.db.Select(columns(tripItemColumns...)...).From("trip_items").
		Where(goqu.Ex{"trip_id": ids}).
		Order(goqu.I("trip_id").Asc(), goqu.I("day_number").Asc(), goqu.I("time_slot").Asc(), goqu.I("id").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load trip items", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item entities.TripItem
		var timeSlot, activity, location, itemType, imageURL, details, mapURL sql.NullString
		var referenceID sql.NullInt64
		if err := rows.Scan(
			&item.ID,
			&item.TripID,
			&item.DayNumber,
			&timeSlot,
			&activity,
			&location,
			&itemType,
			&item.Price,
			&imageURL,
			&details,
			&mapURL,
			&referenceID,
		); err != nil {
			return nil, apperrors.NewInternalError("failed to scan trip item", err)
		}
		item.TimeSlot = timeSlot.String
		item.Activity = activity.String
		item.Location = location.String
		item.ItemType = itemType.String
		item.ImageURL = stringPtr(imageURL)
		item.Details = stringPtr(details)
		item.MapURL = stringPtr(mapURL)
		item.ReferenceID = int64Ptr(referenceID)
		out[item.TripID] = append(out[item.TripID], item)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate trip items", err)
	}
	return out, nil
}

func scanTripInto(row rowScanner, trip *entities.Trip, extra ...interface{}) error {
	var regionID sql.NullInt64
	var title, guestFullName, guestEmail, guestPhone, transport, specialRequest sql.NullString
	var aiResult []byte

	dest := []interface{}{
		&trip.ID,
		&trip.UserID,
		&regionID,
		&title,
		&trip.TotalDays,
		&trip.TotalBudget,
		&trip.Members,
		&trip.BudgetPerPerson,
		&guestFullName,
		&guestEmail,
		&guestPhone,
		&transport,
		&specialRequest,
		&aiResult,
		&trip.CreatedAt,
		&trip.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return err
	}

	trip.RegionID = int64Ptr(regionID)
	trip.Title = title.String
	trip.GuestFullName = guestFullName.String
	trip.GuestEmail = guestEmail.String
	trip.GuestPhone = guestPhone.String
	trip.Transport = transport.String
	trip.SpecialRequest = specialRequest.String
	if len(aiResult) > 0 {
		trip.AIResult = append([]byte(nil), aiResult...)
	}
	return nil
}
