package entities

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"
)

// Trip is a saved itinerary owned by a user. AIResult keeps the generated
// document verbatim; TripItem rows are the queryable form of it.
type Trip struct {
	ID              int64           `json:"id" db:"id"`
	UserID          int64           `json:"user_id" db:"user_id"`
	RegionID        *int64          `json:"region_id" db:"region_id"`
	Title           string          `json:"title" db:"title"`
	TotalDays       int             `json:"total_days" db:"total_days"`
	TotalBudget     int64           `json:"total_budget" db:"total_budget"`
	Members         int             `json:"members" db:"members"`
	BudgetPerPerson int64           `json:"budget_per_person" db:"budget_per_person"`
	GuestFullName   string          `json:"guest_full_name" db:"guest_full_name"`
	GuestEmail      string          `json:"guest_email" db:"guest_email"`
	GuestPhone      string          `json:"guest_phone" db:"guest_phone"`
	Transport       string          `json:"transport" db:"transport"`
	SpecialRequest  string          `json:"special_request" db:"special_request"`
	AIResult        json.RawMessage `json:"-" db:"ai_result"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at" db:"updated_at"`
}

// TripItem is one activity of a saved trip. ReferenceID is a best-effort
// pointer to a hotel or restaurant and is not a foreign key.
type TripItem struct {
	ID          int64   `json:"id" db:"id"`
	TripID      int64   `json:"trip_id" db:"trip_id"`
	DayNumber   int     `json:"day_number" db:"day_number"`
	TimeSlot    string  `json:"time_slot" db:"time_slot"`
	Activity    string  `json:"activity" db:"activity"`
	Location    string  `json:"location" db:"location"`
	ItemType    string  `json:"item_type" db:"item_type"`
	Price       int64   `json:"price" db:"price"`
	ImageURL    *string `json:"image_url" db:"image_url"`
	Details     *string `json:"details" db:"details"`
	MapURL      *string `json:"map_url" db:"map_url"`
	ReferenceID *int64  `json:"reference_id" db:"reference_id"`
}

// SavedTrip is a trip read back in the same shape the generator produces
type SavedTrip struct {
	Trip
	BudgetSummary BudgetSummary `json:"budget_summary"`
	Itinerary     []DayPlan     `json:"itinerary"`
}

// AdminTripView is a saved trip together with its owner
type AdminTripView struct {
	SavedTrip
	User UserSummary `json:"user"`
}

// TripInput is the payload for saving or replacing a trip. Missing scalars
// are derived from the generated itinerary.
type TripInput struct {
	Title           *string    `json:"title"`
	RegionID        *int64     `json:"region_id"`
	TotalDays       *int       `json:"total_days"`
	TotalBudget     *int64     `json:"total_budget"`
	Members         *int       `json:"members"`
	BudgetPerPerson *int64     `json:"budget_per_person"`
	GuestFullName   string     `json:"guest_full_name"`
	GuestEmail      string     `json:"guest_email"`
	GuestPhone      string     `json:"guest_phone"`
	Transport       string     `json:"transport"`
	SpecialRequest  string     `json:"special_request"`
	AIResult        *Itinerary `json:"ai_result"`
}

// Validate checks the payload before it is turned into rows
func (in *TripInput) Validate() error {
	if in.AIResult == nil {
		return errors.New("ai_result is required")
	}
	if day, dup := in.AIResult.DuplicateDay(); dup {
		return fmt.Errorf("ai_result.itinerary has day %d more than once", day)
	}
	if in.TotalDays != nil && *in.TotalDays < 0 {
		return errors.New("total_days must not be negative")
	}
	if in.Members != nil && *in.Members < 0 {
		return errors.New("members must not be negative")
	}
	if in.TotalBudget != nil && *in.TotalBudget < 0 {
		return errors.New("total_budget must not be negative")
	}
	if in.BudgetPerPerson != nil && *in.BudgetPerPerson < 0 {
		return errors.New("budget_per_person must not be negative")
	}
	return nil
}

// ToTrip builds the trip row and its items. AIResult is normalized in place first.
func (in *TripInput) ToTrip(userID int64) (*Trip, []TripItem, error) {
	itinerary := in.AIResult
	itinerary.Normalize()

	raw, err := json.Marshal(itinerary)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode ai_result: %w", err)
	}

	trip := &Trip{
		UserID:          userID,
		RegionID:        itinerary.RegionID,
		Title:           strings.TrimSpace(itinerary.Title),
		TotalDays:       len(itinerary.Itinerary),
		Members:         1,
		BudgetPerPerson: itinerary.BudgetSummary.TotalPerPerson,
		GuestFullName:   strings.TrimSpace(in.GuestFullName),
		GuestEmail:      strings.TrimSpace(in.GuestEmail),
		GuestPhone:      strings.TrimSpace(in.GuestPhone),
		Transport:       in.Transport,
		SpecialRequest:  in.SpecialRequest,
		AIResult:        raw,
	}
	if in.Title != nil && strings.TrimSpace(*in.Title) != "" {
		trip.Title = strings.TrimSpace(*in.Title)
	}
	if in.RegionID != nil {
		trip.RegionID = in.RegionID
	}
	if trip.RegionID != nil && *trip.RegionID <= 0 {
		trip.RegionID = nil
	}
	if in.TotalDays != nil && *in.TotalDays > 0 {
		trip.TotalDays = *in.TotalDays
	}
	if in.Members != nil && *in.Members > 0 {
		trip.Members = *in.Members
	}
	if in.BudgetPerPerson != nil {
		trip.BudgetPerPerson = *in.BudgetPerPerson
	}
	trip.TotalBudget = trip.BudgetPerPerson * int64(trip.Members)
	if in.TotalBudget != nil {
		trip.TotalBudget = *in.TotalBudget
	}

	return trip, TripItemsFromItinerary(itinerary), nil
}

// TripItemsFromItinerary flattens the day plans into rows
func TripItemsFromItinerary(itinerary *Itinerary) []TripItem {
	items := make([]TripItem, 0)
	for i, day := range itinerary.Itinerary {
		dayNumber := day.Day
		if dayNumber <= 0 {
			dayNumber = i + 1
		}
		for _, item := range day.Items {
			var ref *int64
			if item.ItemID != nil && *item.ItemID > 0 {
				ref = lo.ToPtr(*item.ItemID)
			}
			items = append(items, TripItem{
				DayNumber:   dayNumber,
				TimeSlot:    item.Time,
				Activity:    item.Activity,
				Location:    item.Location,
				ItemType:    item.Type,
				Price:       item.Price,
				ImageURL:    item.ImageURL,
				Details:     item.Details,
				MapURL:      item.MapURL,
				ReferenceID: ref,
			})
		}
	}
	return items
}

// GroupTripItems regroups rows ordered by day into day plans, keeping arrival order
func GroupTripItems(items []TripItem) []DayPlan {
	days := lo.Uniq(lo.Map(items, func(item TripItem, _ int) int { return item.DayNumber }))
	byDay := lo.GroupBy(items, func(item TripItem) int { return item.DayNumber })

	plans := make([]DayPlan, 0, len(days))
	for _, day := range days {
		plans = append(plans, DayPlan{
			Day: day,
			Items: lo.Map(byDay[day], func(item TripItem, _ int) ItineraryItem {
				return ItineraryItem{
					Time:     item.TimeSlot,
					Activity: item.Activity,
					Location: item.Location,
					ItemID:   item.ReferenceID,
					Type:     item.ItemType,
					Price:    item.Price,
					ImageURL: item.ImageURL,
					Details:  item.Details,
					MapURL:   item.MapURL,
				}
			}),
		})
	}
	return plans
}

// NewSavedTrip assembles the read shape of a trip from its row and items
func NewSavedTrip(trip *Trip, items []TripItem) *SavedTrip {
	saved := &SavedTrip{
		Trip:      *trip,
		Itinerary: GroupTripItems(items),
	}
	if len(trip.AIResult) > 0 {
		var stored Itinerary
		if err := json.Unmarshal(trip.AIResult, &stored); err == nil {
			saved.BudgetSummary = stored.BudgetSummary
		}
	}
	return saved
}
