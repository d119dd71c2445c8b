package entities

// PromptContext is the catalog slice offered to the itinerary generator.
// RegionID is nil when the prompt named no known region.
type PromptContext struct {
	RegionID    *int64        `json:"region_id"`
	RegionName  string        `json:"region_name"`
	Hotels      []*Hotel      `json:"hotels"`
	Restaurants []*Restaurant `json:"restaurants"`
}
