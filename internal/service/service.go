package service

import (
	"context"

	"github.com/google/uuid"

	"boardrent-backend/internal/domain"
)

// CartService owns the cart lines of the active identity. Every
// mutation persists the whole collection under the current scope key
// before returning.
type CartService interface {
	IdentityScoped
	AddToCart(ctx context.Context, item domain.CatalogItem, duration domain.RentalDuration) error
	RemoveAt(ctx context.Context, indices []int) error
	RemoveByID(ctx context.Context, id uuid.UUID)
	Clear(ctx context.Context)
	Lines() []domain.CartLine
	TotalAmount() float64
	TotalCount() int
}

// OrderService owns the order history of the active identity,
// newest-first. Orders are created pending and only ever change status.
type OrderService interface {
	IdentityScoped
	CreateOrder(ctx context.Context, lines []domain.OrderLine) (*domain.Order, error)
	PayOrders(ctx context.Context, ids []uuid.UUID) int
	Orders() []domain.Order
}

// CheckoutService converts selected cart lines into one merged order
// and removes them from the cart.
type CheckoutService interface {
	Checkout(ctx context.Context, lineIDs []uuid.UUID) (*domain.Order, error)
}

// AuthService is the mock login collaborator. Identity changes fan out
// to all identity-scoped stores through the notifier.
type AuthService interface {
	Login(ctx context.Context, email, code string) (*domain.User, string, error)
	Logout(ctx context.Context)
	DeleteAccount(ctx context.Context)
	CurrentUser() *domain.User
}
