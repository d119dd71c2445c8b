package entities

import (
	"encoding/json"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleItinerary() *Itinerary {
	return &Itinerary{
		Title:         "Đà Nẵng 2 ngày",
		RegionID:      lo.ToPtr(int64(7)),
		BudgetSummary: BudgetSummary{TotalPerPerson: 1500000, Note: "tiết kiệm"},
		Itinerary: []DayPlan{
			{Day: 1, Items: []ItineraryItem{
				{Time: "08:00", Activity: "Check in", Location: "Sea View Hotel", ItemID: lo.ToPtr(int64(42)), Type: "hotel", Price: 500000},
				{Time: "12:00", Activity: "Lunch", Location: "Street stall", Type: "food", Price: 50000},
			}},
			{Day: 2, Items: []ItineraryItem{
				{Time: "09:00", Activity: "Beach", Location: "My Khe", ItemID: lo.ToPtr(int64(0)), Type: "place"},
			}},
		},
	}
}

func TestTripInput_ToTrip_DefaultsFromItinerary(t *testing.T) {
	in := &TripInput{AIResult: sampleItinerary()}
	require.NoError(t, in.Validate())

	trip, items, err := in.ToTrip(9)
	require.NoError(t, err)

	assert.Equal(t, int64(9), trip.UserID)
	assert.Equal(t, "Đà Nẵng 2 ngày", trip.Title)
	assert.Equal(t, int64(7), *trip.RegionID)
	assert.Equal(t, 2, trip.TotalDays)
	assert.Equal(t, 1, trip.Members)
	assert.Equal(t, int64(1500000), trip.BudgetPerPerson)
	assert.Equal(t, int64(1500000), trip.TotalBudget)

	var stored Itinerary
	require.NoError(t, json.Unmarshal(trip.AIResult, &stored))
	assert.Equal(t, "Đà Nẵng 2 ngày", stored.Title)

	require.Len(t, items, 3)
	assert.Equal(t, int64(42), *items[0].ReferenceID)
	assert.Nil(t, items[1].ReferenceID)
	assert.Nil(t, items[2].ReferenceID, "zero item_id must not become a reference")
	assert.Equal(t, 2, items[2].DayNumber)
}

func TestTripInput_ToTrip_ExplicitValuesWin(t *testing.T) {
	in := &TripInput{
		Title:     lo.ToPtr("Family trip"),
		RegionID:  lo.ToPtr(int64(3)),
		TotalDays: lo.ToPtr(4),
		Members:   lo.ToPtr(3),
		AIResult:  sampleItinerary(),
	}

	trip, _, err := in.ToTrip(1)
	require.NoError(t, err)

	assert.Equal(t, "Family trip", trip.Title)
	assert.Equal(t, int64(3), *trip.RegionID)
	assert.Equal(t, 4, trip.TotalDays)
	assert.Equal(t, int64(4500000), trip.TotalBudget)
}

func TestTripInput_ValidateRequiresItinerary(t *testing.T) {
	in := &TripInput{}
	assert.Error(t, in.Validate())

	in = &TripInput{AIResult: sampleItinerary(), Members: lo.ToPtr(-1)}
	assert.Error(t, in.Validate())
}

func TestGroupTripItems_KeepsDayAndArrivalOrder(t *testing.T) {
	items := []TripItem{
		{DayNumber: 1, TimeSlot: "08:00", Activity: "a"},
		{DayNumber: 1, TimeSlot: "12:00", Activity: "b", ReferenceID: lo.ToPtr(int64(5))},
		{DayNumber: 3, TimeSlot: "09:00", Activity: "c"},
	}

	plans := GroupTripItems(items)

	require.Len(t, plans, 2)
	assert.Equal(t, 1, plans[0].Day)
	assert.Equal(t, []string{"a", "b"}, lo.Map(plans[0].Items, func(i ItineraryItem, _ int) string { return i.Activity }))
	assert.Equal(t, int64(5), *plans[0].Items[1].ItemID)
	assert.Equal(t, 3, plans[1].Day)
}

func TestGroupTripItems_Empty(t *testing.T) {
	plans := GroupTripItems(nil)
	assert.NotNil(t, plans)
	assert.Empty(t, plans)
}

func TestSaveListRoundTripShape(t *testing.T) {
	in := &TripInput{AIResult: sampleItinerary()}
	trip, items, err := in.ToTrip(1)
	require.NoError(t, err)

	saved := NewSavedTrip(trip, items)

	assert.Equal(t, int64(1500000), saved.BudgetSummary.TotalPerPerson)
	require.Len(t, saved.Itinerary, 2)
	assert.Len(t, saved.Itinerary[0].Items, 2)
	assert.Len(t, saved.Itinerary[1].Items, 1)
	assert.Equal(t, "Lunch", saved.Itinerary[0].Items[1].Activity)
}

func TestItinerary_NormalizeAndFallback(t *testing.T) {
	it := &Itinerary{Itinerary: []DayPlan{{Day: 0}, {Day: -2, Items: []ItineraryItem{{ItemID: lo.ToPtr(int64(-1))}}}}}
	it.Normalize()

	assert.Equal(t, 1, it.Itinerary[0].Day)
	assert.NotNil(t, it.Itinerary[0].Items)
	assert.Equal(t, 2, it.Itinerary[1].Day)
	assert.Nil(t, it.Itinerary[1].Items[0].ItemID)

	fallback := NewFallbackItinerary(nil)
	raw, err := json.Marshal(fallback)
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"Không thể tạo lịch trình","region_id":null,"budget_summary":{"total_per_person":0,"note":""},"itinerary":[]}`, string(raw))
}

func TestItinerary_DropUnknownReferences(t *testing.T) {
	it := sampleItinerary()
	it.Itinerary[1].Items[0].ItemID = lo.ToPtr(int64(99))

	assert.Equal(t, []int64{42, 99}, it.ReferenceIDs())

	it.DropUnknownReferences(map[int64]struct{}{42: {}})
	assert.Equal(t, []int64{42}, it.ReferenceIDs())
}

func TestTripInput_ValidateRejectsDuplicateDays(t *testing.T) {
	tests := []struct {
		name    string
		days    []DayPlan
		wantErr string
	}{
		{name: "distinct days", days: []DayPlan{{Day: 1}, {Day: 2}}},
		{name: "missing days take their position", days: []DayPlan{{Day: 0}, {Day: 0}, {Day: 3}}},
		{name: "explicit repeat", days: []DayPlan{{Day: 2}, {Day: 2}}, wantErr: "day 2"},
		{name: "missing day collides after renumbering", days: []DayPlan{{Day: 0}, {Day: 1}}, wantErr: "day 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := &TripInput{AIResult: &Itinerary{Itinerary: tt.days}}
			err := in.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
