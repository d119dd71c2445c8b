package entities

import (
	"errors"
	"strings"
)

// Hotel represents a bookable hotel
type Hotel struct {
	ID            int64    `json:"id" db:"id"`
	RegionID      *int64   `json:"region_id" db:"region_id"`
	Name          string   `json:"name" db:"name"`
	Description   string   `json:"description" db:"description"`
	Address       string   `json:"address" db:"address"`
	PricePerNight int64    `json:"price_per_night" db:"price_per_night"`
	Rating        *float64 `json:"rating" db:"rating"`
	MapURL        string   `json:"map_url" db:"map_url"`
	ImageURLs     []string `json:"image_urls" db:"image_urls"`
	Tags          []string `json:"tags" db:"tags"`
	IsActive      bool     `json:"is_active" db:"is_active"`
}

// HotelView is a hotel as listed, with its region name resolved
type HotelView struct {
	Hotel
	RegionName string `json:"region_name"`
}

// HotelSummary is the short hotel projection embedded in bookings
type HotelSummary struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	MapURL      string   `json:"map_url"`
	ImageURLs   []string `json:"image_urls"`
}

// Validate checks the fields required to persist a hotel
func (h *Hotel) Validate() error {
	h.Name = strings.TrimSpace(h.Name)
	if h.Name == "" {
		return errors.New("hotel name is required")
	}
	if h.PricePerNight < 0 {
		return errors.New("price_per_night must not be negative")
	}
	return validateRating(h.Rating)
}

// HotelPatch holds the fields a partial hotel update may change
type HotelPatch struct {
	RegionID      *int64    `json:"region_id"`
	Name          *string   `json:"name"`
	Description   *string   `json:"description"`
	Address       *string   `json:"address"`
	PricePerNight *int64    `json:"price_per_night"`
	Rating        *float64  `json:"rating"`
	MapURL        *string   `json:"map_url"`
	ImageURLs     *[]string `json:"image_urls"`
	Tags          *[]string `json:"tags"`
	IsActive      *bool     `json:"is_active"`
}

// Validate checks the patch before anything is applied
func (p *HotelPatch) Validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return errors.New("hotel name cannot be empty")
	}
	if p.PricePerNight != nil && *p.PricePerNight < 0 {
		return errors.New("price_per_night must not be negative")
	}
	return validateRating(p.Rating)
}

// Apply copies the set fields onto the hotel
func (p *HotelPatch) Apply(h *Hotel) {
	if p.RegionID != nil {
		h.RegionID = p.RegionID
	}
	if p.Name != nil {
		h.Name = strings.TrimSpace(*p.Name)
	}
	if p.Description != nil {
		h.Description = *p.Description
	}
	if p.Address != nil {
		h.Address = *p.Address
	}
	if p.PricePerNight != nil {
		h.PricePerNight = *p.PricePerNight
	}
	if p.Rating != nil {
		h.Rating = p.Rating
	}
	if p.MapURL != nil {
		h.MapURL = *p.MapURL
	}
	if p.ImageURLs != nil {
		h.ImageURLs = *p.ImageURLs
	}
	if p.Tags != nil {
		h.Tags = *p.Tags
	}
	if p.IsActive != nil {
		h.IsActive = *p.IsActive
	}
}

// Summary returns the short projection of the hotel
func (h *Hotel) Summary() *HotelSummary {
	return &HotelSummary{
		ID:          h.ID,
		Name:        h.Name,
		Description: h.Description,
		MapURL:      h.MapURL,
		ImageURLs:   h.ImageURLs,
	}
}

func validateRating(rating *float64) error {
	if rating != nil && (*rating < 0 || *rating > 5) {
		return errors.New("rating must be between 0 and 5")
	}
	return nil
}
