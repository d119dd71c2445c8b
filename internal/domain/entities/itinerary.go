package entities

// FallbackItineraryTitle is shown when no itinerary could be generated
const FallbackItineraryTitle = "Không thể tạo lịch trình"

// Itinerary is a generated multi-day plan. Every key is always serialized,
// with null for unknown references.
type Itinerary struct {
	Title         string        `json:"title"`
	RegionID      *int64        `json:"region_id"`
	BudgetSummary BudgetSummary `json:"budget_summary"`
	Itinerary     []DayPlan     `json:"itinerary"`
}

// BudgetSummary is the per-person cost estimate of an itinerary
type BudgetSummary struct {
	TotalPerPerson int64  `json:"total_per_person"`
	Note           string `json:"note"`
}

// DayPlan is the ordered list of activities for one day
type DayPlan struct {
	Day   int             `json:"day"`
	Items []ItineraryItem `json:"items"`
}

// ItineraryItem is a single activity. ItemID refers to a hotel or restaurant row
// when the activity was taken from the catalog, and is nil for invented locations.
type ItineraryItem struct {
	Time     string  `json:"time"`
	Activity string  `json:"activity"`
	Location string  `json:"location"`
	ItemID   *int64  `json:"item_id"`
	Type     string  `json:"type"`
	Price    int64   `json:"price"`
	ImageURL *string `json:"image_url"`
	Details  *string `json:"details"`
	MapURL   *string `json:"map_url"`
}

// NewFallbackItinerary returns the well-formed empty itinerary used when generation fails
func NewFallbackItinerary(regionID *int64) *Itinerary {
	return &Itinerary{
		Title:         FallbackItineraryTitle,
		RegionID:      regionID,
		BudgetSummary: BudgetSummary{TotalPerPerson: 0, Note: ""},
		Itinerary:     []DayPlan{},
	}
}

// Normalize replaces nil slices with empty ones, numbers days that are missing
// or non-positive by position and drops non-positive item references.
func (it *Itinerary) Normalize() {
	if it.Itinerary == nil {
		it.Itinerary = []DayPlan{}
	}
	for i := range it.Itinerary {
		day := &it.Itinerary[i]
		if day.Day <= 0 {
			day.Day = i + 1
		}
		if day.Items == nil {
			day.Items = []ItineraryItem{}
		}
		for j := range day.Items {
			if id := day.Items[j].ItemID; id != nil && *id <= 0 {
				day.Items[j].ItemID = nil
			}
		}
	}
}

// DuplicateDay reports the first day number used twice once Normalize has
// filled in missing days from their position.
func (it *Itinerary) DuplicateDay() (int, bool) {
	seen := make(map[int]struct{}, len(it.Itinerary))
	for i, day := range it.Itinerary {
		n := day.Day
		if n <= 0 {
			n = i + 1
		}
		if _, ok := seen[n]; ok {
			return n, true
		}
		seen[n] = struct{}{}
	}
	return 0, false
}

// ReferenceIDs returns every non-nil item_id in order of appearance
func (it *Itinerary) ReferenceIDs() []int64 {
	var ids []int64
	for _, day := range it.Itinerary {
		for _, item := range day.Items {
			if item.ItemID != nil {
				ids = append(ids, *item.ItemID)
			}
		}
	}
	return ids
}

// DropUnknownReferences nulls every item_id that is not in known
func (it *Itinerary) DropUnknownReferences(known map[int64]struct{}) {
	for i := range it.Itinerary {
		for j := range it.Itinerary[i].Items {
			item := &it.Itinerary[i].Items[j]
			if item.ItemID == nil {
				continue
			}
			if _, ok := known[*item.ItemID]; !ok {
				item.ItemID = nil
			}
		}
	}
}
