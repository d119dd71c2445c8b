package openai

import (
	"fmt"
	"strings"

	"github.com/zatekoja/travelplanner/internal/domain/entities"
)

const itinerarySystemPrompt = `You are a Vietnamese travel planner. Return ONLY one valid JSON object with this schema:
{
  "title": string,
  "region_id": number | null,
  "budget_summary": {"total_per_person": number (VND), "note": string},
  "itinerary": [
    {
      "day": number (starting at 1),
      "items": [
        {
          "time": string ("08:00"),
          "activity": string,
          "location": string,
          "item_id": number | null,
          "type": string (hotel, restaurant, sightseeing, transport, other),
          "price": number (VND per person),
          "image_url": string | null,
          "details": string | null,
          "map_url": string | null
        }
      ]
    }
  ]
}
Rules:
- Prefer the hotels and restaurants listed in the request. When you use one, copy its number from the [ID: n] tag into item_id.
- When a location is not from the list, item_id must be null. Never invent ids.
- Prices are integers in VND. Write activities and notes in Vietnamese.`

func buildItineraryUserPrompt(prompt string, promptCtx *entities.PromptContext) string {
	var b strings.Builder

	b.WriteString("Traveller request: ")
	b.WriteString(strings.TrimSpace(prompt))
	b.WriteString("\n")

	if promptCtx.RegionName != "" {
		fmt.Fprintf(&b, "Region: %s", promptCtx.RegionName)
		if promptCtx.RegionID != nil {
			fmt.Fprintf(&b, " [ID: %d]", *promptCtx.RegionID)
		}
		b.WriteString("\n")
	}

	b.WriteString("\nHotels:\n")
	if len(promptCtx.Hotels) == 0 {
		b.WriteString("- none\n")
	}
	for _, h := range promptCtx.Hotels {
		fmt.Fprintf(&b, "- [ID: %d] %s, %d VND/night%s%s\n", h.ID, h.Name, h.PricePerNight, ratingSuffix(h.Rating), addressSuffix(h.Address))
	}

	b.WriteString("\nRestaurants:\n")
	if len(promptCtx.Restaurants) == 0 {
		b.WriteString("- none\n")
	}
	for _, r := range promptCtx.Restaurants {
		fmt.Fprintf(&b, "- [ID: %d] %s%s%s\n", r.ID, r.Name, ratingSuffix(r.Rating), addressSuffix(r.Address))
	}

	return b.String()
}

func ratingSuffix(rating *float64) string {
	if rating == nil {
		return ""
	}
	return fmt.Sprintf(", rating %.1f", *rating)
}

func addressSuffix(address string) string {
	if address == "" {
		return ""
	}
	return ", " + address
}
