package storage

// Storage namespaces. Each namespace is partitioned further by scope
// key, one partition per identity plus a fixed guest partition.
const (
	NamespaceCart    = "cart"
	NamespaceOrders  = "orders"
	NamespaceSession = "session"
)

const (
	guestSuffix    = ":guest"
	identityPrefix = ":user:"
)

// SessionKey holds the persisted current user. It is not identity
// scoped; there is at most one active session per device.
const SessionKey = NamespaceSession + ":current"

// ScopeKey derives the storage partition key for a namespace and
// identity. An empty identity selects the guest partition. Identity
// keys carry a "user:" segment, so no identity string can produce the
// guest key.
func ScopeKey(namespace, identity string) string {
	if identity == "" {
		return namespace + guestSuffix
	}
	return namespace + identityPrefix + identity
}
