package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusPaid      OrderStatus = "PAID"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// orderTransitions holds the valid status transitions. COMPLETED and
// CANCELLED are terminal.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending: {OrderStatusPaid, OrderStatusCancelled},
	OrderStatusPaid:    {OrderStatusCompleted, OrderStatusCancelled},
}

// CanTransitionTo reports whether a status change from s to next is valid
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, t := range orderTransitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// OrderLine is a snapshot of a cart line at checkout time. Quantity and
// duration never change once the order exists.
type OrderLine struct {
	ID       uuid.UUID      `json:"id"`
	Item     CatalogItem    `json:"item"`
	Duration RentalDuration `json:"duration"`
	Quantity int            `json:"quantity"`
}

// Price returns the line price, recomputed from the item and duration
func (l OrderLine) Price() float64 {
	return l.Item.PriceFor(l.Duration) * float64(l.Quantity)
}

// Order is a rental order. Orders are never deleted; only their status
// advances through the transitions above.
type Order struct {
	ID          uuid.UUID   `json:"id"`
	OrderNumber string      `json:"order_number"` // Display-facing, rendered as a pickup QR code
	Lines       []OrderLine `json:"lines"`
	Status      OrderStatus `json:"status"`
	CreatedOn   time.Time   `json:"created_on"`
}

// TotalPrice returns the sum of all line prices
func (o Order) TotalPrice() float64 {
	var total float64
	for _, l := range o.Lines {
		total += l.Price()
	}
	return total
}

// Transition advances the order status, rejecting invalid moves
func (o *Order) Transition(next OrderStatus) error {
	if !o.Status.CanTransitionTo(next) {
		return fmt.Errorf("invalid order status transition: %s -> %s", o.Status, next)
	}
	o.Status = next
	return nil
}
