package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boardrent-backend/internal/domain"
	"boardrent-backend/internal/storage"
)

func testOrderLine(name string, basePrice float64, duration domain.RentalDuration, qty int) domain.OrderLine {
	return domain.OrderLine{
		ID:       uuid.New(),
		Item:     testItem(name, basePrice),
		Duration: duration,
		Quantity: qty,
	}
}

func TestOrderService_CreateOrder(t *testing.T) {
	ctx := context.Background()
	orders := NewOrderService(ctx, storage.NewMemoryGateway())

	t.Run("Empty lines rejected", func(t *testing.T) {
		order, err := orders.CreateOrder(ctx, nil)
		assert.ErrorIs(t, err, ErrEmptyOrder)
		assert.Nil(t, order)
		assert.Empty(t, orders.Orders())
	})

	t.Run("Success", func(t *testing.T) {
		line := testOrderLine("Catan", 10, domain.DurationWeek, 2)
		order, err := orders.CreateOrder(ctx, []domain.OrderLine{line})
		require.NoError(t, err)
		require.NotNil(t, order)

		assert.Equal(t, domain.OrderStatusPending, order.Status)
		assert.True(t, strings.HasPrefix(order.OrderNumber, "ORD-"))
		assert.Equal(t, 20.0, order.TotalPrice())
		assert.False(t, order.CreatedOn.IsZero())

		require.Len(t, orders.Orders(), 1)
	})

	t.Run("Newest order is inserted at the front", func(t *testing.T) {
		line := testOrderLine("Dixit", 12, domain.DurationMonth, 1)
		newest, err := orders.CreateOrder(ctx, []domain.OrderLine{line})
		require.NoError(t, err)

		all := orders.Orders()
		require.Len(t, all, 2)
		assert.Equal(t, newest.ID, all[0].ID)
	})

	t.Run("Order numbers differ between creations", func(t *testing.T) {
		all := orders.Orders()
		require.Len(t, all, 2)
		assert.NotEqual(t, all[0].OrderNumber, all[1].OrderNumber)
		assert.NotEqual(t, all[0].ID, all[1].ID)
	})
}

func TestOrderService_PayOrders(t *testing.T) {
	ctx := context.Background()
	orders := NewOrderService(ctx, storage.NewMemoryGateway())

	first, err := orders.CreateOrder(ctx, []domain.OrderLine{testOrderLine("UNO", 5, domain.DurationWeek, 1)})
	require.NoError(t, err)
	second, err := orders.CreateOrder(ctx, []domain.OrderLine{testOrderLine("Azul", 14, domain.DurationWeek, 1)})
	require.NoError(t, err)

	t.Run("Pays a pending order", func(t *testing.T) {
		paid := orders.PayOrders(ctx, []uuid.UUID{first.ID})
		assert.Equal(t, 1, paid)

		byID := ordersByID(orders.Orders())
		assert.Equal(t, domain.OrderStatusPaid, byID[first.ID].Status)
		assert.Equal(t, domain.OrderStatusPending, byID[second.ID].Status)
	})

	t.Run("Repeat payment is a no-op", func(t *testing.T) {
		paid := orders.PayOrders(ctx, []uuid.UUID{first.ID})
		assert.Equal(t, 0, paid)
		assert.Equal(t, domain.OrderStatusPaid, ordersByID(orders.Orders())[first.ID].Status)
	})

	t.Run("Unknown ids are skipped", func(t *testing.T) {
		paid := orders.PayOrders(ctx, []uuid.UUID{uuid.New()})
		assert.Equal(t, 0, paid)
	})

	t.Run("Batch pays every matching pending order", func(t *testing.T) {
		paid := orders.PayOrders(ctx, []uuid.UUID{first.ID, second.ID, uuid.New()})
		assert.Equal(t, 1, paid)
		assert.Equal(t, domain.OrderStatusPaid, ordersByID(orders.Orders())[second.ID].Status)
	})
}

func TestOrderService_LineOwnership(t *testing.T) {
	ctx := context.Background()
	orders := NewOrderService(ctx, storage.NewMemoryGateway())

	t.Run("Caller mutation of the input slice does not reach the store", func(t *testing.T) {
		lines := []domain.OrderLine{testOrderLine("Catan", 10, domain.DurationWeek, 1)}
		_, err := orders.CreateOrder(ctx, lines)
		require.NoError(t, err)

		lines[0].Quantity = 99
		assert.Equal(t, 1, orders.Orders()[0].Lines[0].Quantity)
	})

	t.Run("Mutation through the returned order does not reach the store", func(t *testing.T) {
		order, err := orders.CreateOrder(ctx, []domain.OrderLine{testOrderLine("Dixit", 12, domain.DurationWeek, 2)})
		require.NoError(t, err)

		order.Lines[0].Quantity = 99
		assert.Equal(t, 2, ordersByID(orders.Orders())[order.ID].Lines[0].Quantity)
	})

	t.Run("Mutation through a listing does not reach the store", func(t *testing.T) {
		listed := orders.Orders()
		listed[0].Lines[0].Quantity = 99
		listed[0].Status = domain.OrderStatusCancelled

		fresh := orders.Orders()
		assert.NotEqual(t, 99, fresh[0].Lines[0].Quantity)
		assert.Equal(t, domain.OrderStatusPending, fresh[0].Status)
	})
}

func TestOrderService_PersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	gw := storage.NewMemoryGateway()

	first := NewOrderService(ctx, gw)
	order, err := first.CreateOrder(ctx, []domain.OrderLine{testOrderLine("Catan", 10, domain.DurationHalfMonth, 2)})
	require.NoError(t, err)
	first.PayOrders(ctx, []uuid.UUID{order.ID})

	second := NewOrderService(ctx, gw)
	all := second.Orders()
	require.Len(t, all, 1)
	assert.Equal(t, order.ID, all[0].ID)
	assert.Equal(t, order.OrderNumber, all[0].OrderNumber)
	assert.Equal(t, domain.OrderStatusPaid, all[0].Status)
	assert.Equal(t, 36.0, all[0].TotalPrice())
	assert.True(t, order.CreatedOn.Equal(all[0].CreatedOn))
}

func TestOrderService_IdentitySwitch(t *testing.T) {
	ctx := context.Background()
	orders := NewOrderService(ctx, storage.NewMemoryGateway())

	_, err := orders.CreateOrder(ctx, []domain.OrderLine{testOrderLine("Werewolf", 8, domain.DurationWeek, 1)})
	require.NoError(t, err)

	orders.SetIdentity(ctx, "alice@example.com")
	assert.Empty(t, orders.Orders())

	aliceOrder, err := orders.CreateOrder(ctx, []domain.OrderLine{testOrderLine("Dixit", 12, domain.DurationWeek, 1)})
	require.NoError(t, err)

	orders.SetIdentity(ctx, "")
	require.Len(t, orders.Orders(), 1)
	assert.NotEqual(t, aliceOrder.ID, orders.Orders()[0].ID)

	orders.SetIdentity(ctx, "alice@example.com")
	require.Len(t, orders.Orders(), 1)
	assert.Equal(t, aliceOrder.ID, orders.Orders()[0].ID)
}

func ordersByID(orders []domain.Order) map[uuid.UUID]domain.Order {
	out := make(map[uuid.UUID]domain.Order, len(orders))
	for _, o := range orders {
		out[o.ID] = o
	}
	return out
}
