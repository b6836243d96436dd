package service

import (
	"context"

	"boardrent-backend/internal/logger"
)

// IdentityScoped is implemented by stores whose persisted state is
// partitioned by the active user identity. SetIdentity replaces the
// store's in-memory collection with the one persisted under the new
// identity's scope. An empty identity is the guest scope.
type IdentityScoped interface {
	SetIdentity(ctx context.Context, identity string)
}

// IdentityNotifier fans an identity change out to every registered
// store. The auth collaborator calls OnIdentityChanged on login,
// logout and account deletion; callers must sequence it strictly
// before any cart or order operation against the new identity.
type IdentityNotifier struct {
	stores []IdentityScoped
}

func NewIdentityNotifier(stores ...IdentityScoped) *IdentityNotifier {
	return &IdentityNotifier{stores: stores}
}

// OnIdentityChanged applies the new identity to all stores. Reloading
// is a deterministic re-read of the scope, so repeating the same
// identity is safe.
func (n *IdentityNotifier) OnIdentityChanged(ctx context.Context, identity string) {
	logger.Debug("Identity changed", "guest", identity == "")
	for _, s := range n.stores {
		s.SetIdentity(ctx, identity)
	}
}
