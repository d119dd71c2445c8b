package openai

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/zatekoja/travelplanner/internal/domain/entities"
	"github.com/zatekoja/travelplanner/internal/domain/providers"
)

// parseItinerary extracts the outermost JSON object from text and repairs it
// into a well-formed itinerary. region_id always comes from the caller.
func parseItinerary(text string, regionID *int64) (*entities.Itinerary, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("%w: no JSON object in response", providers.ErrItineraryMalformed)
	}

	raw := text[start : end+1]
	if !gjson.Valid(raw) {
		return nil, fmt.Errorf("%w: invalid JSON object", providers.ErrItineraryMalformed)
	}
	doc := gjson.Parse(raw)
	if !doc.IsObject() {
		return nil, fmt.Errorf("%w: response is not an object", providers.ErrItineraryMalformed)
	}

	itinerary := &entities.Itinerary{
		Title:    doc.Get("title").String(),
		RegionID: copyID(regionID),
		BudgetSummary: entities.BudgetSummary{
			TotalPerPerson: lenientInt(doc.Get("budget_summary.total_per_person")),
			Note:           doc.Get("budget_summary.note").String(),
		},
		Itinerary: []entities.DayPlan{},
	}

	for _, day := range doc.Get("itinerary").Array() {
		if !day.IsObject() {
			continue
		}
		plan := entities.DayPlan{
			Day:   int(lenientInt(day.Get("day"))),
			Items: []entities.ItineraryItem{},
		}
		for _, item := range day.Get("items").Array() {
			if !item.IsObject() {
				continue
			}
			plan.Items = append(plan.Items, entities.ItineraryItem{
				Time:     item.Get("time").String(),
				Activity: item.Get("activity").String(),
				Location: item.Get("location").String(),
				ItemID:   lenientID(item.Get("item_id")),
				Type:     item.Get("type").String(),
				Price:    lenientInt(item.Get("price")),
				ImageURL: optionalString(item.Get("image_url")),
				Details:  optionalString(item.Get("details")),
				MapURL:   optionalString(item.Get("map_url")),
			})
		}
		itinerary.Itinerary = append(itinerary.Itinerary, plan)
	}

	itinerary.Normalize()
	return itinerary, nil
}

// lenientInt accepts 150000, 150000.0 and "150000". Anything else is zero.
func lenientInt(v gjson.Result) int64 {
	switch v.Type {
	case gjson.Number:
		return int64(math.Round(v.Num))
	case gjson.String:
		s := strings.TrimSpace(strings.ReplaceAll(v.Str, ",", ""))
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return int64(math.Round(f))
		}
	}
	return 0
}

func lenientID(v gjson.Result) *int64 {
	if !v.Exists() || v.Type == gjson.Null {
		return nil
	}
	id := lenientInt(v)
	if id <= 0 {
		return nil
	}
	return &id
}

func optionalString(v gjson.Result) *string {
	if v.Type != gjson.String {
		return nil
	}
	s := v.Str
	return &s
}

func copyID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	out := *id
	return &out
}
