package domain

import "github.com/google/uuid"

// RentalDuration is the rental period in days
type RentalDuration int

const (
	DurationWeek      RentalDuration = 7
	DurationHalfMonth RentalDuration = 15
	DurationMonth     RentalDuration = 30
)

// Durations lists all rental periods offered by the storefront
var Durations = []RentalDuration{DurationWeek, DurationHalfMonth, DurationMonth}

// Valid reports whether the duration is one of the offered periods
func (d RentalDuration) Valid() bool {
	switch d {
	case DurationWeek, DurationHalfMonth, DurationMonth:
		return true
	}
	return false
}

// Multiplier returns the price multiplier applied to an item's base
// (7-day) price. Longer rentals are discounted against the daily rate.
func (d RentalDuration) Multiplier() float64 {
	switch d {
	case DurationHalfMonth:
		return 1.8
	case DurationMonth:
		return 3.0
	default:
		return 1.0
	}
}

// Days returns the duration in days
func (d RentalDuration) Days() int {
	return int(d)
}

// CatalogItem is a board game available for rent. Items are created at
// catalog load and never mutated afterwards.
type CatalogItem struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ImageName   string    `json:"image_name"`
	BasePrice   float64   `json:"base_price"` // Price for a 7-day rental
	Category    string    `json:"category"`
}

// PriceFor returns the rental price of the item for the given duration
func (i CatalogItem) PriceFor(d RentalDuration) float64 {
	return i.BasePrice * d.Multiplier()
}
