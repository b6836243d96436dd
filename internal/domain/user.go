package domain

import "github.com/google/uuid"

// User is the authenticated storefront account. The email doubles as
// the identity string scoping persisted carts and orders; an absent
// user means the guest scope.
type User struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Verified bool      `json:"verified"`
}
