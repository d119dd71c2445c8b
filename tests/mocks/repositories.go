// Package mocks holds testify mocks for the domain ports.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/zatekoja/travelplanner/internal/domain/entities"
)

type cleanupT interface {
	mock.TestingT
	Cleanup(func())
}

func register(m *mock.Mock, t cleanupT) {
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
}

func errAt(args mock.Arguments, i int) error {
	return args.Error(i)
}

// RegionRepository mocks repositories.RegionRepository
type RegionRepository struct{ mock.Mock }

// NewRegionRepository creates a region repository mock that asserts its expectations on cleanup
func NewRegionRepository(t cleanupT) *RegionRepository {
	m := &RegionRepository{}
	register(&m.Mock, t)
	return m
}

func (m *RegionRepository) Create(ctx context.Context, region *entities.Region) error {
	return errAt(m.Called(ctx, region), 0)
}

func (m *RegionRepository) GetByID(ctx context.Context, id int64) (*entities.Region, error) {
	args := m.Called(ctx, id)
	region, _ := args.Get(0).(*entities.Region)
	return region, args.Error(1)
}

func (m *RegionRepository) List(ctx context.Context) ([]*entities.Region, error) {
	args := m.Called(ctx)
	regions, _ := args.Get(0).([]*entities.Region)
	return regions, args.Error(1)
}

func (m *RegionRepository) Update(ctx context.Context, region *entities.Region) error {
	return errAt(m.Called(ctx, region), 0)
}

func (m *RegionRepository) Delete(ctx context.Context, id int64) error {
	return errAt(m.Called(ctx, id), 0)
}

// HotelRepository mocks repositories.HotelRepository
type HotelRepository struct{ mock.Mock }

// NewHotelRepository creates a hotel repository mock
func NewHotelRepository(t cleanupT) *HotelRepository {
	m := &HotelRepository{}
	register(&m.Mock, t)
	return m
}

func (m *HotelRepository) Create(ctx context.Context, hotel *entities.Hotel) error {
	return errAt(m.Called(ctx, hotel), 0)
}

func (m *HotelRepository) GetByID(ctx context.Context, id int64) (*entities.Hotel, error) {
	args := m.Called(ctx, id)
	hotel, _ := args.Get(0).(*entities.Hotel)
	return hotel, args.Error(1)
}

func (m *HotelRepository) List(ctx context.Context) ([]*entities.HotelView, error) {
	args := m.Called(ctx)
	hotels, _ := args.Get(0).([]*entities.HotelView)
	return hotels, args.Error(1)
}

func (m *HotelRepository) ListByRegion(ctx context.Context, regionID int64) ([]*entities.Hotel, error) {
	args := m.Called(ctx, regionID)
	hotels, _ := args.Get(0).([]*entities.Hotel)
	return hotels, args.Error(1)
}

func (m *HotelRepository) TopRated(ctx context.Context, regionID *int64, limit int) ([]*entities.Hotel, error) {
	args := m.Called(ctx, regionID, limit)
	hotels, _ := args.Get(0).([]*entities.Hotel)
	return hotels, args.Error(1)
}

func (m *HotelRepository) ExistingIDs(ctx context.Context, ids []int64) ([]int64, error) {
	args := m.Called(ctx, ids)
	found, _ := args.Get(0).([]int64)
	return found, args.Error(1)
}

func (m *HotelRepository) Update(ctx context.Context, hotel *entities.Hotel) error {
	return errAt(m.Called(ctx, hotel), 0)
}

func (m *HotelRepository) Delete(ctx context.Context, id int64) error {
	return errAt(m.Called(ctx, id), 0)
}

// RestaurantRepository mocks repositories.RestaurantRepository
type RestaurantRepository struct{ mock.Mock }

// NewRestaurantRepository creates a restaurant repository mock
func NewRestaurantRepository(t cleanupT) *RestaurantRepository {
	m := &RestaurantRepository{}
	register(&m.Mock, t)
	return m
}

func (m *RestaurantRepository) Create(ctx context.Context, input *entities.RestaurantInput) error {
	return errAt(m.Called(ctx, input), 0)
}

func (m *RestaurantRepository) GetByID(ctx context.Context, id int64) (*entities.RestaurantView, error) {
	args := m.Called(ctx, id)
	view, _ := args.Get(0).(*entities.RestaurantView)
	return view, args.Error(1)
}

func (m *RestaurantRepository) List(ctx context.Context) ([]*entities.RestaurantView, error) {
	args := m.Called(ctx)
	views, _ := args.Get(0).([]*entities.RestaurantView)
	return views, args.Error(1)
}

func (m *RestaurantRepository) ListByRegion(ctx context.Context, regionID int64) ([]*entities.RestaurantView, error) {
	args := m.Called(ctx, regionID)
	views, _ := args.Get(0).([]*entities.RestaurantView)
	return views, args.Error(1)
}

func (m *RestaurantRepository) TopRated(ctx context.Context, regionID *int64, limit int) ([]*entities.Restaurant, error) {
	args := m.Called(ctx, regionID, limit)
	restaurants, _ := args.Get(0).([]*entities.Restaurant)
	return restaurants, args.Error(1)
}

func (m *RestaurantRepository) ExistingIDs(ctx context.Context, ids []int64) ([]int64, error) {
	args := m.Called(ctx, ids)
	found, _ := args.Get(0).([]int64)
	return found, args.Error(1)
}

func (m *RestaurantRepository) Update(ctx context.Context, restaurant *entities.Restaurant, cuisines *[]entities.RestaurantCuisine) error {
	return errAt(m.Called(ctx, restaurant, cuisines), 0)
}

func (m *RestaurantRepository) Delete(ctx context.Context, id int64) error {
	return errAt(m.Called(ctx, id), 0)
}

// CuisineRepository mocks repositories.CuisineRepository
type CuisineRepository struct{ mock.Mock }

// NewCuisineRepository creates a cuisine repository mock
func NewCuisineRepository(t cleanupT) *CuisineRepository {
	m := &CuisineRepository{}
	register(&m.Mock, t)
	return m
}

func (m *CuisineRepository) Create(ctx context.Context, cuisine *entities.Cuisine) error {
	return errAt(m.Called(ctx, cuisine), 0)
}

func (m *CuisineRepository) List(ctx context.Context) ([]*entities.Cuisine, error) {
	args := m.Called(ctx)
	cuisines, _ := args.Get(0).([]*entities.Cuisine)
	return cuisines, args.Error(1)
}

func (m *CuisineRepository) Update(ctx context.Context, cuisine *entities.Cuisine) error {
	return errAt(m.Called(ctx, cuisine), 0)
}

func (m *CuisineRepository) Delete(ctx context.Context, id int64) error {
	return errAt(m.Called(ctx, id), 0)
}

// PlaceRepository mocks repositories.PlaceRepository
type PlaceRepository struct{ mock.Mock }

// NewPlaceRepository creates a place repository mock
func NewPlaceRepository(t cleanupT) *PlaceRepository {
	m := &PlaceRepository{}
	register(&m.Mock, t)
	return m
}

func (m *PlaceRepository) Create(ctx context.Context, place *entities.Place) error {
	return errAt(m.Called(ctx, place), 0)
}

func (m *PlaceRepository) GetByID(ctx context.Context, id int64) (*entities.Place, error) {
	args := m.Called(ctx, id)
	place, _ := args.Get(0).(*entities.Place)
	return place, args.Error(1)
}

func (m *PlaceRepository) List(ctx context.Context, filter entities.PlaceFilter) ([]*entities.Place, error) {
	args := m.Called(ctx, filter)
	places, _ := args.Get(0).([]*entities.Place)
	return places, args.Error(1)
}

func (m *PlaceRepository) Update(ctx context.Context, place *entities.Place) error {
	return errAt(m.Called(ctx, place), 0)
}

func (m *PlaceRepository) Delete(ctx context.Context, id int64) error {
	return errAt(m.Called(ctx, id), 0)
}

// UserRepository mocks repositories.UserRepository
type UserRepository struct{ mock.Mock }

// NewUserRepository creates a user repository mock
func NewUserRepository(t cleanupT) *UserRepository {
	m := &UserRepository{}
	register(&m.Mock, t)
	return m
}

func (m *UserRepository) GetByID(ctx context.Context, id int64) (*entities.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*entities.User)
	return user, args.Error(1)
}

func (m *UserRepository) List(ctx context.Context) ([]*entities.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]*entities.User)
	return users, args.Error(1)
}

func (m *UserRepository) Update(ctx context.Context, user *entities.User) error {
	return errAt(m.Called(ctx, user), 0)
}

func (m *UserRepository) Delete(ctx context.Context, id int64) error {
	return errAt(m.Called(ctx, id), 0)
}

// BookingRepository mocks repositories.BookingRepository
type BookingRepository struct{ mock.Mock }

// NewBookingRepository creates a booking repository mock
func NewBookingRepository(t cleanupT) *BookingRepository {
	m := &BookingRepository{}
	register(&m.Mock, t)
	return m
}

func (m *BookingRepository) CreateWithPayment(ctx context.Context, booking *entities.HotelBooking) (*entities.Payment, error) {
	args := m.Called(ctx, booking)
	payment, _ := args.Get(0).(*entities.Payment)
	return payment, args.Error(1)
}

func (m *BookingRepository) GetByID(ctx context.Context, id int64) (*entities.HotelBooking, error) {
	args := m.Called(ctx, id)
	booking, _ := args.Get(0).(*entities.HotelBooking)
	return booking, args.Error(1)
}

func (m *BookingRepository) ListByUser(ctx context.Context, userID int64) ([]*entities.BookingView, error) {
	args := m.Called(ctx, userID)
	views, _ := args.Get(0).([]*entities.BookingView)
	return views, args.Error(1)
}

func (m *BookingRepository) ListAll(ctx context.Context) ([]*entities.BookingView, error) {
	args := m.Called(ctx)
	views, _ := args.Get(0).([]*entities.BookingView)
	return views, args.Error(1)
}

func (m *BookingRepository) TransitionFromPending(ctx context.Context, id int64, status entities.BookingStatus) (bool, error) {
	args := m.Called(ctx, id, status)
	return args.Bool(0), args.Error(1)
}

func (m *BookingRepository) Delete(ctx context.Context, id int64) error {
	return errAt(m.Called(ctx, id), 0)
}

// TripRepository mocks repositories.TripRepository
type TripRepository struct{ mock.Mock }

// NewTripRepository creates a trip repository mock
func NewTripRepository(t cleanupT) *TripRepository {
	m := &TripRepository{}
	register(&m.Mock, t)
	return m
}

func (m *TripRepository) Save(ctx context.Context, trip *entities.Trip, items []entities.TripItem) (int64, error) {
	args := m.Called(ctx, trip, items)
	id, _ := args.Get(0).(int64)
	return id, args.Error(1)
}

func (m *TripRepository) GetByID(ctx context.Context, id int64) (*entities.Trip, error) {
	args := m.Called(ctx, id)
	trip, _ := args.Get(0).(*entities.Trip)
	return trip, args.Error(1)
}

func (m *TripRepository) ListByUser(ctx context.Context, userID int64) ([]*entities.SavedTrip, error) {
	args := m.Called(ctx, userID)
	trips, _ := args.Get(0).([]*entities.SavedTrip)
	return trips, args.Error(1)
}

func (m *TripRepository) ListAll(ctx context.Context) ([]*entities.AdminTripView, error) {
	args := m.Called(ctx)
	trips, _ := args.Get(0).([]*entities.AdminTripView)
	return trips, args.Error(1)
}

func (m *TripRepository) Replace(ctx context.Context, trip *entities.Trip, items []entities.TripItem) error {
	return errAt(m.Called(ctx, trip, items), 0)
}

func (m *TripRepository) Delete(ctx context.Context, id int64) error {
	return errAt(m.Called(ctx, id), 0)
}
