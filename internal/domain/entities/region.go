package entities

import (
	"errors"
	"strings"
	"time"
)

// Region represents a travel destination that hotels, restaurants and places belong to
type Region struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	CoverImage  string    `json:"cover_image" db:"cover_image"`
	Latitude    *float64  `json:"latitude" db:"latitude"`
	Longitude   *float64  `json:"longitude" db:"longitude"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// Validate checks the fields required to persist a region
func (r *Region) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return errors.New("region name is required")
	}
	return validateCoordinates(r.Latitude, r.Longitude)
}

// RegionPatch holds the fields a partial region update may change
type RegionPatch struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	CoverImage  *string  `json:"cover_image"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
}

// Validate checks the patch before anything is applied
func (p *RegionPatch) Validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return errors.New("region name cannot be empty")
	}
	return validateCoordinates(p.Latitude, p.Longitude)
}

// Apply copies the set fields onto the region
func (p *RegionPatch) Apply(r *Region) {
	if p.Name != nil {
		r.Name = strings.TrimSpace(*p.Name)
	}
	if p.Description != nil {
		r.Description = *p.Description
	}
	if p.CoverImage != nil {
		r.CoverImage = *p.CoverImage
	}
	if p.Latitude != nil {
		r.Latitude = p.Latitude
	}
	if p.Longitude != nil {
		r.Longitude = p.Longitude
	}
}

// DestinationDetail is a region together with everything located in it
type DestinationDetail struct {
	Region      *Region           `json:"region"`
	Hotels      []*Hotel          `json:"hotels"`
	Restaurants []*RestaurantView `json:"restaurants"`
	Places      []*Place          `json:"places"`
}

func validateCoordinates(lat, lng *float64) error {
	if lat != nil && (*lat < -90 || *lat > 90) {
		return errors.New("latitude must be between -90 and 90")
	}
	if lng != nil && (*lng < -180 || *lng > 180) {
		return errors.New("longitude must be between -180 and 180")
	}
	return nil
}
