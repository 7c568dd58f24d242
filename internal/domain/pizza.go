package domain

import (
	"github.com/shopspring/decimal"
)

// Ingredient is a single priced component of a pizza.
// Ingredients are immutable once created; the ID is assigned by the
// ingredient catalog on save.
type Ingredient struct {
	ID    int64
	Name  string
	Price decimal.Decimal
}

// Pizza is a named, ordered set of ingredients. Price is derived from the
// ingredients and is never stored independently of them.
type Pizza struct {
	Name        string
	Ingredients []Ingredient
	Price       decimal.Decimal
}

// NewPizza validates and builds a Pizza in one step, deriving the price as
// the sum of ingredient prices in the given order. A pizza without
// ingredients is invalid.
func NewPizza(name string, ingredients []Ingredient) (Pizza, error) {
	if name == "" {
		return Pizza{}, Invalid("pizza.new", "pizza name is required")
	}
	if len(ingredients) == 0 {
		return Pizza{}, Invalid("pizza.new", "a pizza needs at least one ingredient")
	}

	price := decimal.Zero
	for _, ing := range ingredients {
		price = price.Add(ing.Price)
	}

	return Pizza{
		Name:        name,
		Ingredients: ingredients,
		Price:       price,
	}, nil
}

// Contains reports whether the pizza uses the given ingredient.
func (p Pizza) Contains(ingredient Ingredient) bool {
	for _, ing := range p.Ingredients {
		if ing.Name == ingredient.Name {
			return true
		}
	}
	return false
}
