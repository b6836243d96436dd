package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boardrent-backend/internal/domain"
	"boardrent-backend/internal/storage"
)

func newCheckoutFixture(t *testing.T) (context.Context, CartService, OrderService, CheckoutService) {
	t.Helper()
	ctx := context.Background()
	gw := storage.NewMemoryGateway()
	cart := NewCartService(ctx, gw)
	orders := NewOrderService(ctx, gw)
	return ctx, cart, orders, NewCheckoutService(cart, orders)
}

func TestCheckoutService_Checkout(t *testing.T) {
	ctx, cart, orders, checkout := newCheckoutFixture(t)

	// Catalog item X with base price 10: two adds at a week, one at a
	// month, giving lines priced 20.0 and 30.0.
	x := testItem("Catan", 10)
	require.NoError(t, cart.AddToCart(ctx, x, domain.DurationWeek))
	require.NoError(t, cart.AddToCart(ctx, x, domain.DurationWeek))
	require.NoError(t, cart.AddToCart(ctx, x, domain.DurationMonth))
	require.Equal(t, 50.0, cart.TotalAmount())
	require.Equal(t, 3, cart.TotalCount())

	var lineIDs []uuid.UUID
	for _, line := range cart.Lines() {
		lineIDs = append(lineIDs, line.ID)
	}

	order, err := checkout.Checkout(ctx, lineIDs)
	require.NoError(t, err)
	require.NotNil(t, order)

	t.Run("One merged order covers all selected lines", func(t *testing.T) {
		assert.Len(t, order.Lines, 2)
		assert.Equal(t, 50.0, order.TotalPrice())
		assert.Equal(t, domain.OrderStatusPending, order.Status)
		require.Len(t, orders.Orders(), 1)
	})

	t.Run("Selected lines leave the cart", func(t *testing.T) {
		assert.Empty(t, cart.Lines())
		assert.Zero(t, cart.TotalAmount())
	})

	t.Run("Line fields carry over verbatim", func(t *testing.T) {
		quantities := make(map[domain.RentalDuration]int)
		for _, l := range order.Lines {
			assert.Equal(t, x.ID, l.Item.ID)
			quantities[l.Duration] = l.Quantity
		}
		assert.Equal(t, 2, quantities[domain.DurationWeek])
		assert.Equal(t, 1, quantities[domain.DurationMonth])
	})

	t.Run("Payment flows through to the new order", func(t *testing.T) {
		paid := orders.PayOrders(ctx, []uuid.UUID{order.ID})
		assert.Equal(t, 1, paid)
		assert.Equal(t, domain.OrderStatusPaid, orders.Orders()[0].Status)

		// Unrelated id leaves it paid and does nothing else
		assert.Zero(t, orders.PayOrders(ctx, []uuid.UUID{uuid.New()}))
		assert.Equal(t, domain.OrderStatusPaid, orders.Orders()[0].Status)
	})
}

func TestCheckoutService_PartialSelection(t *testing.T) {
	ctx, cart, orders, checkout := newCheckoutFixture(t)

	a := testItem("Werewolf", 8)
	b := testItem("Splendor", 15)
	require.NoError(t, cart.AddToCart(ctx, a, domain.DurationWeek))
	require.NoError(t, cart.AddToCart(ctx, b, domain.DurationWeek))

	selected := cart.Lines()[0]
	order, err := checkout.Checkout(ctx, []uuid.UUID{selected.ID})
	require.NoError(t, err)

	assert.Len(t, order.Lines, 1)
	assert.Equal(t, a.ID, order.Lines[0].Item.ID)

	// The unselected line stays in the cart
	remaining := cart.Lines()
	require.Len(t, remaining, 1)
	assert.Equal(t, b.ID, remaining[0].Item.ID)
	require.Len(t, orders.Orders(), 1)
}

func TestCheckoutService_EmptySelection(t *testing.T) {
	ctx, cart, orders, checkout := newCheckoutFixture(t)

	require.NoError(t, cart.AddToCart(ctx, testItem("Avalon", 9), domain.DurationWeek))

	t.Run("No ids", func(t *testing.T) {
		order, err := checkout.Checkout(ctx, nil)
		assert.ErrorIs(t, err, ErrEmptyOrder)
		assert.Nil(t, order)
	})

	t.Run("Unknown ids only", func(t *testing.T) {
		order, err := checkout.Checkout(ctx, []uuid.UUID{uuid.New()})
		assert.ErrorIs(t, err, ErrEmptyOrder)
		assert.Nil(t, order)
	})

	// Nothing was consumed or created
	assert.Len(t, cart.Lines(), 1)
	assert.Empty(t, orders.Orders())
}
