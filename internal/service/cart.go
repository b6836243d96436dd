package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"boardrent-backend/internal/domain"
	"boardrent-backend/internal/logger"
	"boardrent-backend/internal/storage"
)

var (
	ErrInvalidDuration = errors.New("invalid rental duration")
	ErrInvalidItem     = errors.New("catalog item has no valid price")
	ErrIndexOutOfRange = errors.New("cart index out of range")
)

type cartService struct {
	mu       sync.Mutex
	gateway  storage.Gateway
	identity string
	lines    []domain.CartLine
}

// NewCartService builds a cart store scoped to the guest identity and
// loads whatever was last persisted for it.
func NewCartService(ctx context.Context, gateway storage.Gateway) CartService {
	s := &cartService{gateway: gateway}
	s.reload(ctx)
	return s
}

func (s *cartService) scopeKey() string {
	return storage.ScopeKey(storage.NamespaceCart, s.identity)
}

// reload replaces the in-memory collection with the persisted one.
// Caller must hold the lock (or be the constructor).
func (s *cartService) reload(ctx context.Context) {
	s.lines = nil
	storage.LoadJSON(ctx, s.gateway, s.scopeKey(), &s.lines)
}

// persist writes the full collection under the current scope key.
// Failures are swallowed; the in-memory state stays authoritative.
func (s *cartService) persist(ctx context.Context, operation string) {
	lines := s.lines
	if lines == nil {
		lines = []domain.CartLine{}
	}
	if err := storage.SaveJSON(ctx, s.gateway, s.scopeKey(), lines); err != nil {
		logger.PersistenceFailure(operation, s.scopeKey(), err)
	}
}

func (s *cartService) SetIdentity(ctx context.Context, identity string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = identity
	s.reload(ctx)
}

func (s *cartService) AddToCart(ctx context.Context, item domain.CatalogItem, duration domain.RentalDuration) error {
	if !duration.Valid() {
		return fmt.Errorf("%w: %d days", ErrInvalidDuration, duration.Days())
	}
	if item.BasePrice <= 0 {
		return ErrInvalidItem
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Consolidate repeat adds of the same (item, duration) pair
	for i := range s.lines {
		if s.lines[i].Item.ID == item.ID && s.lines[i].Duration == duration {
			s.lines[i].Quantity++
			s.persist(ctx, "AddToCart")
			return nil
		}
	}

	s.lines = append(s.lines, domain.CartLine{
		ID:       uuid.New(),
		Item:     item,
		Duration: duration,
		Quantity: 1,
	})
	s.persist(ctx, "AddToCart")
	return nil
}

func (s *cartService) RemoveAt(ctx context.Context, indices []int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, idx := range indices {
		if idx < 0 || idx >= len(s.lines) {
			return fmt.Errorf("%w: %d", ErrIndexOutOfRange, idx)
		}
	}

	drop := make(map[int]bool, len(indices))
	for _, idx := range indices {
		drop[idx] = true
	}

	kept := s.lines[:0]
	for i, line := range s.lines {
		if !drop[i] {
			kept = append(kept, line)
		}
	}
	s.lines = kept
	s.persist(ctx, "RemoveAt")
	return nil
}

func (s *cartService) RemoveByID(ctx context.Context, id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, line := range s.lines {
		if line.ID == id {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			s.persist(ctx, "RemoveByID")
			return
		}
	}
	// Absent line is a no-op
}

func (s *cartService) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil
	s.persist(ctx, "Clear")
}

func (s *cartService) Lines() []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

func (s *cartService) TotalAmount() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total float64
	for _, line := range s.lines {
		total += line.Price()
	}
	return total
}

func (s *cartService) TotalCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int
	for _, line := range s.lines {
		count += line.Quantity
	}
	return count
}
