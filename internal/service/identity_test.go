package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boardrent-backend/internal/domain"
	"boardrent-backend/internal/storage"
)

type recordingStore struct {
	identities []string
}

func (r *recordingStore) SetIdentity(ctx context.Context, identity string) {
	r.identities = append(r.identities, identity)
}

func TestIdentityNotifier_FansOut(t *testing.T) {
	ctx := context.Background()
	a := &recordingStore{}
	b := &recordingStore{}
	notifier := NewIdentityNotifier(a, b)

	notifier.OnIdentityChanged(ctx, "alice@example.com")
	notifier.OnIdentityChanged(ctx, "")

	assert.Equal(t, []string{"alice@example.com", ""}, a.identities)
	assert.Equal(t, []string{"alice@example.com", ""}, b.identities)
}

func TestIdentityNotifier_SwitchesBothStores(t *testing.T) {
	ctx := context.Background()
	gw := storage.NewMemoryGateway()
	cart := NewCartService(ctx, gw)
	orders := NewOrderService(ctx, gw)
	notifier := NewIdentityNotifier(cart, orders)

	require.NoError(t, cart.AddToCart(ctx, testItem("Catan", 10), domain.DurationWeek))
	_, err := orders.CreateOrder(ctx, []domain.OrderLine{testOrderLine("Catan", 10, domain.DurationWeek, 1)})
	require.NoError(t, err)

	notifier.OnIdentityChanged(ctx, "alice@example.com")
	assert.Empty(t, cart.Lines())
	assert.Empty(t, orders.Orders())

	notifier.OnIdentityChanged(ctx, "")
	assert.Len(t, cart.Lines(), 1)
	assert.Len(t, orders.Orders(), 1)
}
