package database

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/travelplanner/internal/adapters/cache"
	"github.com/zatekoja/travelplanner/internal/domain/entities"
	"github.com/zatekoja/travelplanner/internal/domain/providers"
	apperrors "github.com/zatekoja/travelplanner/pkg/errors"
)

func TestHotelAdapter_GetByID_NotFound(t *testing.T) {
	client, mock := setupMockClient(t)
	adapter := NewHotelAdapter(client)

	mock.ExpectQuery(`FROM "hotels" WHERE \("id" = 404\)`).WillReturnError(sql.ErrNoRows)

	_, err := adapter.GetByID(context.Background(), 404)

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHotelAdapter_TopRated(t *testing.T) {
	client, mock := setupMockClient(t)
	adapter := NewHotelAdapter(client)

	rows := sqlmock.NewRows(hotelColumns).
		AddRow(1, 2, "Ana Mandara", nil, nil, 2000000, 4.8, nil, "{}", "{resort}", true).
		AddRow(2, 2, "Dalat Palace", nil, nil, 1500000, nil, nil, "{}", "{}", true)
	mock.ExpectQuery(`WHERE \(\("is_active" IS TRUE\) AND \("region_id" = 2\)\) ORDER BY "rating" DESC NULLS LAST, "id" ASC LIMIT 3`).
		WillReturnRows(rows)

	regionID := int64(2)
	hotels, err := adapter.TopRated(context.Background(), &regionID, 3)

	require.NoError(t, err)
	require.Len(t, hotels, 2)
	assert.InDelta(t, 4.8, *hotels[0].Rating, 0.001)
	assert.Nil(t, hotels[1].Rating)
	assert.Equal(t, []string{"resort"}, hotels[0].Tags)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHotelAdapter_Delete_WithBookings(t *testing.T) {
	client, mock := setupMockClient(t)
	adapter := NewHotelAdapter(client)

	mock.ExpectExec(`DELETE FROM "hotels"`).WillReturnError(&pq.Error{Code: pqForeignKeyViolation})

	err := adapter.Delete(context.Background(), 3)

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))
}

func TestHotelAdapter_ExistingIDs_Empty(t *testing.T) {
	client, mock := setupMockClient(t)
	adapter := NewHotelAdapter(client)

	ids, err := adapter.ExistingIDs(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCuisineAdapter_Create_DuplicateName(t *testing.T) {
	client, mock := setupMockClient(t)
	adapter := NewCuisineAdapter(client)

	mock.ExpectQuery(`INSERT INTO "cuisines"`).WillReturnError(&pq.Error{Code: pqUniqueViolation})

	err := adapter.Create(context.Background(), &entities.Cuisine{Name: " Phở "})

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRestaurantAdapter_GetByID_AttachesCuisines(t *testing.T) {
	client, mock := setupMockClient(t)
	adapter := NewRestaurantAdapter(client)

	created := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`FROM "restaurants" AS "rs" LEFT JOIN "regions" AS "r"`).
		WillReturnRows(sqlmock.NewRows(append(append([]string{}, restaurantColumns...), "region_name")).
			AddRow(5, 2, "Bún Chả", nil, nil, 4.5, nil, "{}", "{}", true, created, "Hà Nội"))
	mock.ExpectQuery(`FROM "restaurant_cuisines" AS "rc" INNER JOIN "cuisines" AS "c"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "restaurant_id", "cuisine_id", "description", "average_price", "price_range", "image_url", "is_available", "name"}).
			AddRow(1, 5, 3, "grilled pork", 60000, nil, nil, true, "Vietnamese"))

	view, err := adapter.GetByID(context.Background(), 5)

	require.NoError(t, err)
	assert.Equal(t, "Hà Nội", view.RegionName)
	require.Len(t, view.Cuisines, 1)
	assert.Equal(t, "Vietnamese", view.Cuisines[0].CuisineName)
	assert.Equal(t, int64(60000), *view.Cuisines[0].AveragePrice)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRestaurantAdapter_Update_RewritesCuisines(t *testing.T) {
	client, mock := setupMockClient(t)
	adapter := NewRestaurantAdapter(client)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "restaurants"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "restaurant_cuisines" WHERE \("restaurant_id" = 5\)`).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`INSERT INTO "restaurant_cuisines"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	cuisines := []entities.RestaurantCuisine{{CuisineID: 3, IsAvailable: true}}
	err := adapter.Update(context.Background(), &entities.Restaurant{ID: 5, Name: "Bún Chả"}, &cuisines)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlaceAdapter_List_Filters(t *testing.T) {
	client, mock := setupMockClient(t)
	adapter := NewPlaceAdapter(client)

	mock.ExpectQuery(`FROM "places" WHERE \(\("region_id" = 2\) AND \("place_type" = 'beach'\)\) ORDER BY "id" ASC`).
		WillReturnRows(sqlmock.NewRows(placeColumns))

	regionID := int64(2)
	places, err := adapter.List(context.Background(), entities.PlaceFilter{RegionID: &regionID, PlaceType: "beach"})

	require.NoError(t, err)
	assert.Empty(t, places)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachedRegionAdapter_ListServesFromCacheUntilWrite(t *testing.T) {
	client, mock := setupMockClient(t)
	store := cache.NewMemoryAdapter(time.Minute, time.Minute)
	adapter := NewCachedRegionAdapter(NewRegionAdapter(client), store, nil, 60)
	ctx := context.Background()

	created := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	regionRows := func() *sqlmock.Rows {
		return sqlmock.NewRows([]string{"id", "name", "description", "cover_image", "latitude", "longitude", "created_at"}).
			AddRow(1, "Đà Lạt", nil, nil, 11.94, 108.45, created)
	}

	mock.ExpectQuery(`SELECT .* FROM "regions" ORDER BY "id" ASC`).WillReturnRows(regionRows())

	first, err := adapter.List(ctx)
	require.NoError(t, err)
	second, err := adapter.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, first[0].Name, second[0].Name)

	mock.ExpectExec(`DELETE FROM "regions"`).WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, adapter.Delete(ctx, 9))

	exists, err := store.Exists(ctx, providers.CacheKeyRegionList)
	require.NoError(t, err)
	assert.False(t, exists)

	mock.ExpectQuery(`SELECT .* FROM "regions" ORDER BY "id" ASC`).WillReturnRows(regionRows())
	_, err = adapter.List(ctx)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
