package service

import (
	"context"
	"fmt"

	"github.com/Erhan1706/microservice-ordering-system/internal/catalog"
	"github.com/Erhan1706/microservice-ordering-system/internal/domain"
)

// PizzaComposer builds priced pizzas from the catalogs, either by menu name
// or from an explicit ingredient list. Pure given the catalog lookups.
type PizzaComposer struct {
	pizzas      catalog.PizzaRepository
	ingredients catalog.IngredientRepository
}

// NewPizzaComposer creates a composer over the given catalogs.
func NewPizzaComposer(pizzas catalog.PizzaRepository, ingredients catalog.IngredientRepository) *PizzaComposer {
	return &PizzaComposer{
		pizzas:      pizzas,
		ingredients: ingredients,
	}
}

// FromMenu returns the menu pizza with the given name.
// Fails with ErrPizzaNotOnMenu when the name is not on the menu.
func (c *PizzaComposer) FromMenu(ctx context.Context, name string) (domain.Pizza, error) {
	pizza, err := c.pizzas.FindByName(ctx, name)
	if err != nil {
		if domain.IsCode(err, domain.ENOTFOUND) {
			return domain.Pizza{}, ErrPizzaNotOnMenu
		}
		return domain.Pizza{}, err
	}
	return pizza, nil
}

// Custom builds a pizza from an explicit list of ingredient names.
// Every name must resolve in the ingredient catalog; resolution fails fast
// on the first unknown name and nothing is partially built.
func (c *PizzaComposer) Custom(ctx context.Context, name string, ingredientNames []string) (domain.Pizza, error) {
	if len(ingredientNames) == 0 {
		return domain.Pizza{}, ErrEmptyIngredients
	}

	ingredients := make([]domain.Ingredient, 0, len(ingredientNames))
	for _, ingredientName := range ingredientNames {
		ing, err := c.ingredients.FindByName(ctx, ingredientName)
		if err != nil {
			if domain.IsCode(err, domain.ENOTFOUND) {
				return domain.Pizza{}, domain.WrapError(ErrUnknownIngredient, domain.ENOTFOUND, "pizza.compose",
					fmt.Sprintf("we do not have %s as an ingredient in our inventory", ingredientName))
			}
			return domain.Pizza{}, err
		}
		ingredients = append(ingredients, ing)
	}

	return domain.NewPizza(name, ingredients)
}
