// Package domain provides core business types and context helpers for the
// ordering backend.
//
// Context helpers centralize request-scoped identity access so that role
// checks are capability checks passed into services rather than reads of
// ambient session state.
package domain

import (
	"context"
)

// Roles assigned by the authentication collaborator.
const (
	RoleCustomer = "customer"
	RoleStore    = "store"
	RoleManager  = "manager"
)

// Identity represents the authenticated caller stored in context.
// CustomerID is the opaque netId supplied by the identity service.
type Identity struct {
	CustomerID string
	Role       string
}

// CanMutateCatalog reports whether the caller may modify the menu,
// ingredient, or coupon catalogs. Customers only order; stores and
// managers maintain the catalogs.
func (i Identity) CanMutateCatalog() bool {
	return i.Role == RoleStore || i.Role == RoleManager
}

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey int

const (
	// identityContextKey stores the authenticated identity in context.
	identityContextKey contextKey = iota
)

// NewContextWithIdentity returns a new context with the identity attached.
func NewContextWithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, identity)
}

// IdentityFromContext retrieves the identity from context.
// The second return value is false if no identity is present.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityContextKey).(Identity)
	return identity, ok
}

// CustomerIDFromContext retrieves the caller's customer ID from context.
// Returns the empty string if no identity is present.
func CustomerIDFromContext(ctx context.Context) string {
	if identity, ok := IdentityFromContext(ctx); ok {
		return identity.CustomerID
	}
	return ""
}
