// Package catalog provides the read/write repositories for pizzas,
// ingredients, and coupons. The basket core consumes the lookup side;
// the menu service drives the write side.
package catalog

import (
	"context"

	"github.com/Erhan1706/microservice-ordering-system/internal/domain"
)

// PizzaRepository stores named menu pizzas.
// Implementations: MemoryPizzaRepository, PostgresPizzaRepository.
type PizzaRepository interface {
	// FindByName returns the menu pizza with the given name, or an
	// ENOTFOUND error if no such pizza is on the menu.
	FindByName(ctx context.Context, name string) (domain.Pizza, error)

	// All returns every pizza on the menu.
	All(ctx context.Context) ([]domain.Pizza, error)

	// Save adds a pizza to the menu. Returns ECONFLICT if the name exists.
	Save(ctx context.Context, pizza domain.Pizza) error
}

// IngredientRepository stores priced ingredients.
type IngredientRepository interface {
	// FindByName returns the ingredient with the given name, or an
	// ENOTFOUND error.
	FindByName(ctx context.Context, name string) (domain.Ingredient, error)

	// FindByID returns the ingredient with the given ID, or an
	// ENOTFOUND error. Used to resolve allergy IDs reported by the
	// customer service.
	FindByID(ctx context.Context, id int64) (domain.Ingredient, error)

	// All returns every ingredient in the inventory.
	All(ctx context.Context) ([]domain.Ingredient, error)

	// Save adds an ingredient and assigns its ID. Returns ECONFLICT if
	// the name exists.
	Save(ctx context.Context, ingredient domain.Ingredient) (domain.Ingredient, error)
}

// CouponRepository stores coupons keyed by activation code.
type CouponRepository interface {
	// FindByCode returns the coupon with the given activation code, or
	// an ENOTFOUND error.
	FindByCode(ctx context.Context, code string) (domain.Coupon, error)

	// All returns every coupon in the repository.
	All(ctx context.Context) ([]domain.Coupon, error)

	// Save adds a coupon. Returns ECONFLICT if the code exists.
	Save(ctx context.Context, coupon domain.Coupon) error

	// Delete removes the coupon with the given code, or returns an
	// ENOTFOUND error.
	Delete(ctx context.Context, code string) error
}
