package service

import (
	"context"

	"github.com/google/uuid"

	"boardrent-backend/internal/domain"
)

type checkoutService struct {
	cart   CartService
	orders OrderService
}

func NewCheckoutService(cart CartService, orders OrderService) CheckoutService {
	return &checkoutService{cart: cart, orders: orders}
}

// Checkout converts the selected cart lines into one merged order and
// removes them from the cart. Order creation is the durable step; cart
// cleanup afterwards is best-effort, never rolled back.
func (s *checkoutService) Checkout(ctx context.Context, lineIDs []uuid.UUID) (*domain.Order, error) {
	selected := make(map[uuid.UUID]bool, len(lineIDs))
	for _, id := range lineIDs {
		selected[id] = true
	}

	var orderLines []domain.OrderLine
	var consumed []uuid.UUID
	for _, line := range s.cart.Lines() {
		if !selected[line.ID] {
			continue
		}
		// Item, duration and quantity carry over verbatim; the price is
		// always recomputed from them, never copied.
		orderLines = append(orderLines, domain.OrderLine{
			ID:       uuid.New(),
			Item:     line.Item,
			Duration: line.Duration,
			Quantity: line.Quantity,
		})
		consumed = append(consumed, line.ID)
	}

	order, err := s.orders.CreateOrder(ctx, orderLines)
	if err != nil {
		return nil, err
	}

	for _, id := range consumed {
		s.cart.RemoveByID(ctx, id)
	}
	return order, nil
}
