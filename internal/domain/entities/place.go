package entities

import (
	"errors"
	"strings"
	"time"
)

// Place represents a sightseeing spot or activity venue
type Place struct {
	ID           int64     `json:"id" db:"id"`
	RegionID     *int64    `json:"region_id" db:"region_id"`
	Name         string    `json:"name" db:"name"`
	PlaceType    string    `json:"place_type" db:"place_type"`
	Description  string    `json:"description" db:"description"`
	Address      string    `json:"address" db:"address"`
	MapURL       string    `json:"map_url" db:"map_url"`
	AveragePrice *int64    `json:"average_price" db:"average_price"`
	PriceRange   string    `json:"price_range" db:"price_range"`
	Rating       *float64  `json:"rating" db:"rating"`
	ImageURLs    []string  `json:"image_urls" db:"image_urls"`
	Tags         []string  `json:"tags" db:"tags"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// PlaceFilter narrows a place listing
type PlaceFilter struct {
	RegionID  *int64
	PlaceType string
}

// Validate checks the fields required to persist a place
func (p *Place) Validate() error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return errors.New("place name is required")
	}
	if p.AveragePrice != nil && *p.AveragePrice < 0 {
		return errors.New("average_price must not be negative")
	}
	return validateRating(p.Rating)
}

// PlacePatch holds the fields a partial place update may change
type PlacePatch struct {
	RegionID     *int64    `json:"region_id"`
	Name         *string   `json:"name"`
	PlaceType    *string   `json:"place_type"`
	Description  *string   `json:"description"`
	Address      *string   `json:"address"`
	MapURL       *string   `json:"map_url"`
	AveragePrice *int64    `json:"average_price"`
	PriceRange   *string   `json:"price_range"`
	Rating       *float64  `json:"rating"`
	ImageURLs    *[]string `json:"image_urls"`
	Tags         *[]string `json:"tags"`
	IsActive     *bool     `json:"is_active"`
}

// Validate checks the patch before anything is applied
func (p *PlacePatch) Validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return errors.New("place name cannot be empty")
	}
	if p.AveragePrice != nil && *p.AveragePrice < 0 {
		return errors.New("average_price must not be negative")
	}
	return validateRating(p.Rating)
}

// Apply copies the set fields onto the place
func (p *PlacePatch) Apply(pl *Place) {
	if p.RegionID != nil {
		pl.RegionID = p.RegionID
	}
	if p.Name != nil {
		pl.Name = strings.TrimSpace(*p.Name)
	}
	if p.PlaceType != nil {
		pl.PlaceType = *p.PlaceType
	}
	if p.Description != nil {
		pl.Description = *p.Description
	}
	if p.Address != nil {
		pl.Address = *p.Address
	}
	if p.MapURL != nil {
		pl.MapURL = *p.MapURL
	}
	if p.AveragePrice != nil {
		pl.AveragePrice = p.AveragePrice
	}
	if p.PriceRange != nil {
		pl.PriceRange = *p.PriceRange
	}
	if p.Rating != nil {
		pl.Rating = p.Rating
	}
	if p.ImageURLs != nil {
		pl.ImageURLs = *p.ImageURLs
	}
	if p.Tags != nil {
		pl.Tags = *p.Tags
	}
	if p.IsActive != nil {
		pl.IsActive = *p.IsActive
	}
}
