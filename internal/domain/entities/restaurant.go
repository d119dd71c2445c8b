package entities

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Restaurant represents a restaurant in a region
type Restaurant struct {
	ID          int64     `json:"id" db:"id"`
	RegionID    *int64    `json:"region_id" db:"region_id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Address     string    `json:"address" db:"address"`
	Rating      *float64  `json:"rating" db:"rating"`
	MapURL      string    `json:"map_url" db:"map_url"`
	ImageURLs   []string  `json:"image_urls" db:"image_urls"`
	Tags        []string  `json:"tags" db:"tags"`
	IsActive    bool      `json:"is_active" db:"is_active"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// Cuisine is a named style of food, unique by name
type Cuisine struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// RestaurantCuisine links a restaurant to a cuisine it serves
type RestaurantCuisine struct {
	ID           int64  `json:"id" db:"id"`
	RestaurantID int64  `json:"restaurant_id" db:"restaurant_id"`
	CuisineID    int64  `json:"cuisine_id" db:"cuisine_id"`
	Description  string `json:"description" db:"description"`
	AveragePrice *int64 `json:"average_price" db:"average_price"`
	PriceRange   string `json:"price_range" db:"price_range"`
	ImageURL     string `json:"image_url" db:"image_url"`
	IsAvailable  bool   `json:"is_available" db:"is_available"`
}

// RestaurantCuisineView is a join row with the cuisine name resolved
type RestaurantCuisineView struct {
	RestaurantCuisine
	CuisineName string `json:"cuisine_name"`
}

// RestaurantView is a restaurant as listed, with region name and cuisines resolved
type RestaurantView struct {
	Restaurant
	RegionName string                   `json:"region_name"`
	Cuisines   []*RestaurantCuisineView `json:"cuisines_data"`
}

// RestaurantInput is the payload for creating a restaurant with its cuisines
type RestaurantInput struct {
	Restaurant
	Cuisines []RestaurantCuisine `json:"cuisines"`
}

// Validate checks the fields required to persist a restaurant
func (r *Restaurant) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return errors.New("restaurant name is required")
	}
	return validateRating(r.Rating)
}

// Validate checks the restaurant and each cuisine row
func (in *RestaurantInput) Validate() error {
	if err := in.Restaurant.Validate(); err != nil {
		return err
	}
	return validateCuisineRows(in.Cuisines)
}

// RestaurantPatch holds the fields a partial restaurant update may change.
// A non-nil Cuisines replaces every join row of the restaurant.
type RestaurantPatch struct {
	RegionID    *int64               `json:"region_id"`
	Name        *string              `json:"name"`
	Description *string              `json:"description"`
	Address     *string              `json:"address"`
	Rating      *float64             `json:"rating"`
	MapURL      *string              `json:"map_url"`
	ImageURLs   *[]string            `json:"image_urls"`
	Tags        *[]string            `json:"tags"`
	IsActive    *bool                `json:"is_active"`
	Cuisines    *[]RestaurantCuisine `json:"cuisines"`
}

// Validate checks the patch before anything is applied
func (p *RestaurantPatch) Validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return errors.New("restaurant name cannot be empty")
	}
	if err := validateRating(p.Rating); err != nil {
		return err
	}
	if p.Cuisines != nil {
		return validateCuisineRows(*p.Cuisines)
	}
	return nil
}

// Apply copies the set scalar fields onto the restaurant
func (p *RestaurantPatch) Apply(r *Restaurant) {
	if p.RegionID != nil {
		r.RegionID = p.RegionID
	}
	if p.Name != nil {
		r.Name = strings.TrimSpace(*p.Name)
	}
	if p.Description != nil {
		r.Description = *p.Description
	}
	if p.Address != nil {
		r.Address = *p.Address
	}
	if p.Rating != nil {
		r.Rating = p.Rating
	}
	if p.MapURL != nil {
		r.MapURL = *p.MapURL
	}
	if p.ImageURLs != nil {
		r.ImageURLs = *p.ImageURLs
	}
	if p.Tags != nil {
		r.Tags = *p.Tags
	}
	if p.IsActive != nil {
		r.IsActive = *p.IsActive
	}
}

func validateCuisineRows(rows []RestaurantCuisine) error {
	for i, row := range rows {
		if row.CuisineID <= 0 {
			return fmt.Errorf("cuisines[%d]: cuisine_id is required", i)
		}
		if row.AveragePrice != nil && *row.AveragePrice < 0 {
			return fmt.Errorf("cuisines[%d]: average_price must not be negative", i)
		}
	}
	return nil
}
