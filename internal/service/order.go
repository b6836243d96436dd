package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"boardrent-backend/internal/domain"
	"boardrent-backend/internal/logger"
	"boardrent-backend/internal/storage"
)

var ErrEmptyOrder = errors.New("order must contain at least one line")

type orderService struct {
	mu       sync.Mutex
	gateway  storage.Gateway
	log      *slog.Logger
	identity string
	orders   []domain.Order
}

// NewOrderService builds an order store scoped to the guest identity
// and loads whatever was last persisted for it.
func NewOrderService(ctx context.Context, gateway storage.Gateway) OrderService {
	s := &orderService{
		gateway: gateway,
		log:     logger.WithService("orders"),
	}
	s.reload(ctx)
	return s
}

func (s *orderService) scopeKey() string {
	return storage.ScopeKey(storage.NamespaceOrders, s.identity)
}

func (s *orderService) reload(ctx context.Context) {
	s.orders = nil
	storage.LoadJSON(ctx, s.gateway, s.scopeKey(), &s.orders)
}

func (s *orderService) persist(ctx context.Context, operation string) {
	orders := s.orders
	if orders == nil {
		orders = []domain.Order{}
	}
	if err := storage.SaveJSON(ctx, s.gateway, s.scopeKey(), orders); err != nil {
		logger.PersistenceFailure(operation, s.scopeKey(), err)
	}
}

func (s *orderService) SetIdentity(ctx context.Context, identity string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = identity
	s.reload(ctx)
}

func (s *orderService) CreateOrder(ctx context.Context, lines []domain.OrderLine) (*domain.Order, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyOrder
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	order := domain.Order{
		ID:          uuid.New(),
		OrderNumber: newOrderNumber(now),
		Lines:       copyLines(lines),
		Status:      domain.OrderStatusPending,
		CreatedOn:   now,
	}

	// Newest first
	s.orders = append([]domain.Order{order}, s.orders...)
	s.persist(ctx, "CreateOrder")

	s.log.Info("Order created", "order_number", order.OrderNumber, "lines", len(lines), "total", order.TotalPrice())

	out := order
	out.Lines = copyLines(order.Lines)
	return &out, nil
}

func (s *orderService) PayOrders(ctx context.Context, ids []uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	wanted := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}

	// Best-effort batch: unknown ids and orders that are not pending
	// are skipped, not errors.
	paid := 0
	for i := range s.orders {
		if !wanted[s.orders[i].ID] {
			continue
		}
		if err := s.orders[i].Transition(domain.OrderStatusPaid); err != nil {
			continue
		}
		paid++
	}

	if paid > 0 {
		s.persist(ctx, "PayOrders")
	}
	return paid
}

// Orders returns the stored orders newest first. Line slices are copied
// so callers cannot reach back into store state through the result.
func (s *orderService) Orders() []domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Order, len(s.orders))
	copy(out, s.orders)
	for i := range out {
		out[i].Lines = copyLines(out[i].Lines)
	}
	return out
}

func copyLines(lines []domain.OrderLine) []domain.OrderLine {
	out := make([]domain.OrderLine, len(lines))
	copy(out, lines)
	return out
}

// newOrderNumber builds a display-facing order number from the creation
// time plus a random disambiguator. It is never parsed, only shown.
func newOrderNumber(now time.Time) string {
	return fmt.Sprintf("ORD-%d-%d", now.Unix(), 100+rand.Intn(900))
}
