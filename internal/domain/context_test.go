package domain

import (
	"context"
	"testing"
)

func TestIdentityContext(t *testing.T) {
	t.Run("IdentityFromContext reports absence", func(t *testing.T) {
		_, ok := IdentityFromContext(context.Background())
		if ok {
			t.Error("expected no identity in a fresh context")
		}
	})

	t.Run("round trip", func(t *testing.T) {
		expected := Identity{CustomerID: "net1234", Role: RoleCustomer}
		ctx := NewContextWithIdentity(context.Background(), expected)

		got, ok := IdentityFromContext(ctx)
		if !ok {
			t.Fatal("expected identity, got none")
		}
		if got != expected {
			t.Errorf("identity = %+v, want %+v", got, expected)
		}
	})
}

func TestCustomerIDFromContext(t *testing.T) {
	if got := CustomerIDFromContext(context.Background()); got != "" {
		t.Errorf("CustomerIDFromContext on empty context = %q, want empty", got)
	}

	ctx := NewContextWithIdentity(context.Background(), Identity{CustomerID: "net1234", Role: RoleStore})
	if got := CustomerIDFromContext(ctx); got != "net1234" {
		t.Errorf("CustomerIDFromContext = %q, want %q", got, "net1234")
	}
}

func TestCanMutateCatalog(t *testing.T) {
	tests := []struct {
		role     string
		expected bool
	}{
		{RoleCustomer, false},
		{RoleStore, true},
		{RoleManager, true},
		{"", false},
		{"admin", false},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			identity := Identity{CustomerID: "x", Role: tt.role}
			if got := identity.CanMutateCatalog(); got != tt.expected {
				t.Errorf("CanMutateCatalog(%q) = %v, want %v", tt.role, got, tt.expected)
			}
		})
	}
}
