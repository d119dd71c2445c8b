package database

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/travelplanner/internal/domain/entities"
	apperrors "github.com/zatekoja/travelplanner/pkg/errors"
)

func TestTripAdapter_Save(t *testing.T) {
	client, mock := setupMockClient(t)
	adapter := NewTripAdapter(client)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "trips"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectExec(`INSERT INTO "trip_items" .* VALUES \(.*\), \(.*\)`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	trip := &entities.Trip{UserID: 7, Title: "Đà Lạt", TotalDays: 2, Members: 1, AIResult: []byte(`{"title":"Đà Lạt"}`)}
	items := []entities.TripItem{
		{DayNumber: 1, TimeSlot: "08:00", Activity: "Breakfast", ReferenceID: lo.ToPtr(int64(4))},
		{DayNumber: 2, TimeSlot: "09:00", Activity: "Lake walk"},
	}

	id, err := adapter.Save(context.Background(), trip, items)

	require.NoError(t, err)
	assert.Equal(t, int64(11), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTripAdapter_Save_RollsBackWhenItemsFail(t *testing.T) {
	client, mock := setupMockClient(t)
	adapter := NewTripAdapter(client)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "trips"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectExec(`INSERT INTO "trip_items"`).WillReturnError(assert.AnError)
	mock.ExpectRollback()

	_, err := adapter.Save(context.Background(), &entities.Trip{UserID: 7}, []entities.TripItem{{DayNumber: 1}})

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInternal))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTripAdapter_ListByUser_RegroupsItems(t *testing.T) {
	client, mock := setupMockClient(t)
	adapter := NewTripAdapter(client)

	now := time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)
	tripRows := sqlmock.NewRows(tripColumns).
		AddRow(11, 7, 2, "Đà Lạt", 2, 4000000, 2, 2000000, nil, nil, nil, "car", nil,
			[]byte(`{"budget_summary":{"total_per_person":2000000,"note":"approx"}}`), now, now)
	mock.ExpectQuery(`SELECT .* FROM "trips" WHERE \("user_id" = 7\) ORDER BY "created_at" DESC`).WillReturnRows(tripRows)

	itemRows := sqlmock.NewRows(tripItemColumns).
		AddRow(1, 11, 1, "08:00", "Breakfast", "Cafe", "restaurant", 50000, nil, nil, nil, 4).
		AddRow(2, 11, 1, "12:00", "Lunch", "Market", "food", 80000, nil, nil, nil, nil).
		AddRow(3, 11, 2, "09:00", "Lake", "Xuan Huong", "sightseeing", 0, nil, nil, nil, nil)
	mock.ExpectQuery(`FROM "trip_items" WHERE \("trip_id" IN \(11\)\)`).WillReturnRows(itemRows)

	trips, err := adapter.ListByUser(context.Background(), 7)

	require.NoError(t, err)
	require.Len(t, trips, 1)
	saved := trips[0]
	assert.Equal(t, int64(2000000), saved.BudgetSummary.TotalPerPerson)
	require.Len(t, saved.Itinerary, 2)
	assert.Equal(t, 1, saved.Itinerary[0].Day)
	assert.Len(t, saved.Itinerary[0].Items, 2)
	assert.Equal(t, int64(4), *saved.Itinerary[0].Items[0].ItemID)
	assert.Nil(t, saved.Itinerary[0].Items[1].ItemID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTripAdapter_Delete(t *testing.T) {
	client, mock := setupMockClient(t)
	adapter := NewTripAdapter(client)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "trip_items" WHERE \("trip_id" = 11\)`).WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`DELETE FROM "trips" WHERE \("id" = 11\)`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, adapter.Delete(context.Background(), 11))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTripAdapter_Replace(t *testing.T) {
	replaceItems := []entities.TripItem{
		{DayNumber: 1, TimeSlot: "07:30", Activity: "Market", ReferenceID: lo.ToPtr(int64(5))},
		{DayNumber: 2, TimeSlot: "10:00", Activity: "Waterfall"},
	}

	tests := []struct {
		name    string
		setup   func(mock sqlmock.Sqlmock)
		items   []entities.TripItem
		errType apperrors.ErrorType
	}{
		{
			name: "rewrites items in one transaction",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`UPDATE "trips" SET .* WHERE \("id" = 11\)`).WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(`DELETE FROM "trip_items" WHERE \("trip_id" = 11\)`).WillReturnResult(sqlmock.NewResult(0, 3))
				mock.ExpectExec(`INSERT INTO "trip_items" .* VALUES \(.*\), \(.*\)`).WillReturnResult(sqlmock.NewResult(0, 2))
				mock.ExpectCommit()
			},
			items: replaceItems,
		},
		{
			name: "empty item set only clears",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`UPDATE "trips"`).WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(`DELETE FROM "trip_items" WHERE \("trip_id" = 11\)`).WillReturnResult(sqlmock.NewResult(0, 3))
				mock.ExpectCommit()
			},
		},
		{
			name: "missing trip",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`UPDATE "trips"`).WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectRollback()
			},
			items:   replaceItems,
			errType: apperrors.ErrorTypeNotFound,
		},
		{
			name: "insert failure rolls back",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`UPDATE "trips"`).WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(`DELETE FROM "trip_items"`).WillReturnResult(sqlmock.NewResult(0, 3))
				mock.ExpectExec(`INSERT INTO "trip_items"`).WillReturnError(assert.AnError)
				mock.ExpectRollback()
			},
			items:   replaceItems,
			errType: apperrors.ErrorTypeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, mock := setupMockClient(t)
			adapter := NewTripAdapter(client)
			tt.setup(mock)

			trip := &entities.Trip{ID: 11, UserID: 7, Title: "Đà Lạt", TotalDays: 2, Members: 2, AIResult: []byte(`{"title":"Đà Lạt"}`)}
			err := adapter.Replace(context.Background(), trip, tt.items)

			if tt.errType == "" {
				require.NoError(t, err)
				assert.False(t, trip.UpdatedAt.IsZero())
			} else {
				assert.True(t, apperrors.IsType(err, tt.errType), "got %v", err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestTripAdapter_ListAll_JoinsOwners(t *testing.T) {
	client, mock := setupMockClient(t)
	adapter := NewTripAdapter(client)

	now := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)
	cols := append(append([]string{}, tripColumns...), "id", "email", "full_name")
	tripRows := sqlmock.NewRows(cols).
		AddRow(12, 8, nil, "Hội An", 1, 0, 1, 0, nil, nil, nil, nil, nil, nil, now, now, 8, "lan@example.com", "Lan").
		AddRow(11, 7, 2, "Đà Lạt", 2, 0, 2, 0, nil, nil, nil, nil, nil, nil, now, now, nil, nil, nil)
	mock.ExpectQuery(`FROM "trips" AS "t" LEFT JOIN "users" AS "u" ON \("u"."id" = "t"."user_id"\) ORDER BY "t"."created_at" DESC`).
		WillReturnRows(tripRows)

	itemRows := sqlmock.NewRows(tripItemColumns).
		AddRow(1, 12, 1, "09:00", "Old town", "Hội An", "sightseeing", 0, nil, nil, nil, nil)
	mock.ExpectQuery(`FROM "trip_items" WHERE \("trip_id" IN \(12, 11\)\)`).WillReturnRows(itemRows)

	trips, err := adapter.ListAll(context.Background())

	require.NoError(t, err)
	require.Len(t, trips, 2)
	assert.Equal(t, int64(12), trips[0].ID)
	assert.Equal(t, entities.UserSummary{ID: 8, Email: "lan@example.com", FullName: "Lan"}, trips[0].User)
	require.Len(t, trips[0].Itinerary, 1)
	assert.Equal(t, "Old town", trips[0].Itinerary[0].Items[0].Activity)
	assert.Equal(t, entities.UserSummary{}, trips[1].User)
	assert.Empty(t, trips[1].Itinerary)
	assert.NoError(t, mock.ExpectationsWereMet())
}
