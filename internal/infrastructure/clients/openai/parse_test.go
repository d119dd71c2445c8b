package openai

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/travelplanner/internal/domain/providers"
)

func TestParseItinerary_StripsSurroundingText(t *testing.T) {
	text := "Here you go:\n```json\n{\"title\":\"Huế\",\"itinerary\":[]}\n```\nEnjoy!"

	itinerary, err := parseItinerary(text, nil)

	require.NoError(t, err)
	assert.Equal(t, "Huế", itinerary.Title)
	assert.Nil(t, itinerary.RegionID)
	assert.NotNil(t, itinerary.Itinerary)
	assert.Empty(t, itinerary.Itinerary)
}

func TestParseItinerary_ForcesContextRegion(t *testing.T) {
	regionID := int64(4)

	itinerary, err := parseItinerary(`{"title":"x","region_id":"77"}`, &regionID)
	require.NoError(t, err)
	require.NotNil(t, itinerary.RegionID)
	assert.Equal(t, int64(4), *itinerary.RegionID)

	regionID = 5
	assert.Equal(t, int64(4), *itinerary.RegionID)

	itinerary, err = parseItinerary(`{"title":"x","region_id":77}`, nil)
	require.NoError(t, err)
	assert.Nil(t, itinerary.RegionID)
}

func TestParseItinerary_RepairsDaysAndItems(t *testing.T) {
	text := `{
		"title": "Đà Nẵng",
		"budget_summary": {"total_per_person": null},
		"itinerary": [
			{"items": [{"activity": "Biển Mỹ Khê", "price": "0"}, "oops", {"activity": "Hải sản", "item_id": "15", "price": 120000.4}]},
			"not a day",
			{"day": 0, "items": null},
			{"day": 5, "items": [{"activity": "Bà Nà", "item_id": null, "price": "abc"}]}
		]
	}`

	itinerary, err := parseItinerary(text, nil)

	require.NoError(t, err)
	assert.Equal(t, int64(0), itinerary.BudgetSummary.TotalPerPerson)
	require.Len(t, itinerary.Itinerary, 3)

	first := itinerary.Itinerary[0]
	assert.Equal(t, 1, first.Day)
	require.Len(t, first.Items, 2)
	assert.Nil(t, first.Items[0].ItemID)
	require.NotNil(t, first.Items[1].ItemID)
	assert.Equal(t, int64(15), *first.Items[1].ItemID)
	assert.Equal(t, int64(120000), first.Items[1].Price)

	assert.Equal(t, 2, itinerary.Itinerary[1].Day)
	assert.NotNil(t, itinerary.Itinerary[1].Items)
	assert.Empty(t, itinerary.Itinerary[1].Items)

	last := itinerary.Itinerary[2]
	assert.Equal(t, 5, last.Day)
	assert.Nil(t, last.Items[0].ItemID)
	assert.Equal(t, int64(0), last.Items[0].Price)
}

func TestParseItinerary_Malformed(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "no braces", text: "sorry"},
		{name: "reversed braces", text: "} nope {"},
		{name: "broken object", text: `{"title": "x",}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseItinerary(tt.text, nil)
			assert.True(t, errors.Is(err, providers.ErrItineraryMalformed))
		})
	}
}
