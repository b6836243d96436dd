package domain

import "github.com/google/uuid"

// CartLine is one entry in a shopping cart. A cart holds at most one
// line per (item, duration) pair; repeat adds increment Quantity.
type CartLine struct {
	ID       uuid.UUID      `json:"id"`
	Item     CatalogItem    `json:"item"`
	Duration RentalDuration `json:"duration"`
	Quantity int            `json:"quantity"`
}

// Price returns the line price: item price at the chosen duration times quantity
func (l CartLine) Price() float64 {
	return l.Item.PriceFor(l.Duration) * float64(l.Quantity)
}
