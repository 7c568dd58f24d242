package middleware

import (
	"net/http"

	"github.com/Erhan1706/microservice-ordering-system/internal/domain"
)

type contextKey string

const (
	// CustomerIDHeader carries the caller's identity, set by the gateway
	// after token validation.
	CustomerIDHeader = "X-Customer-Id"

	// RoleHeader carries the caller's role (customer, store, manager).
	RoleHeader = "X-Role"
)

// WithIdentity extracts the caller's identity from the gateway headers and
// adds it to the request context. Requests without identity headers continue
// anonymously; RequireIdentity gates the routes that need one.
func WithIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		customerID := r.Header.Get(CustomerIDHeader)
		if customerID == "" {
			next.ServeHTTP(w, r)
			return
		}

		role := r.Header.Get(RoleHeader)
		switch role {
		case domain.RoleCustomer, domain.RoleStore, domain.RoleManager:
		default:
			role = domain.RoleCustomer
		}

		identity := domain.Identity{CustomerID: customerID, Role: role}
		ctx := domain.NewContextWithIdentity(r.Context(), identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireIdentity ensures the request carries an identity, returning 401 if not.
func RequireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := domain.IdentityFromContext(r.Context()); !ok {
			respondUnauthorized(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}
