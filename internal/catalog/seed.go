package catalog

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Erhan1706/microservice-ordering-system/internal/domain"
)

// Seed fills an empty catalog with a starter menu so the service is usable
// out of the box with the memory backend. Existing entries are kept.
func Seed(ctx context.Context, pizzas PizzaRepository, ingredients IngredientRepository, coupons CouponRepository) error {
	starterIngredients := []struct {
		name  string
		price string
	}{
		{"dough", "2.00"},
		{"tomato sauce", "1.00"},
		{"mozzarella", "1.50"},
		{"pepperoni", "2.50"},
		{"mushrooms", "1.20"},
		{"onions", "0.80"},
		{"bell peppers", "1.00"},
		{"olives", "1.10"},
		{"ham", "2.20"},
		{"pineapple", "1.30"},
		{"basil", "0.50"},
		{"gorgonzola", "1.80"},
		{"parmesan", "1.60"},
		{"ricotta", "1.40"},
	}

	byName := make(map[string]domain.Ingredient, len(starterIngredients))
	for _, si := range starterIngredients {
		price, err := decimal.NewFromString(si.price)
		if err != nil {
			return err
		}
		existing, err := ingredients.FindByName(ctx, si.name)
		if err == nil {
			byName[si.name] = existing
			continue
		}
		saved, err := ingredients.Save(ctx, domain.Ingredient{Name: si.name, Price: price})
		if err != nil {
			return err
		}
		byName[si.name] = saved
	}

	starterPizzas := []struct {
		name        string
		ingredients []string
	}{
		{"margherita", []string{"dough", "tomato sauce", "mozzarella", "basil"}},
		{"pepperoni", []string{"dough", "tomato sauce", "mozzarella", "pepperoni"}},
		{"hawaii", []string{"dough", "tomato sauce", "mozzarella", "ham", "pineapple"}},
		{"quattro formaggi", []string{"dough", "mozzarella", "gorgonzola", "parmesan", "ricotta"}},
		{"vegetariana", []string{"dough", "tomato sauce", "mozzarella", "mushrooms", "onions", "bell peppers", "olives"}},
	}

	for _, sp := range starterPizzas {
		if _, err := pizzas.FindByName(ctx, sp.name); err == nil {
			continue
		}
		list := make([]domain.Ingredient, len(sp.ingredients))
		for i, name := range sp.ingredients {
			list[i] = byName[name]
		}
		pizza, err := domain.NewPizza(sp.name, list)
		if err != nil {
			return err
		}
		if err := pizzas.Save(ctx, pizza); err != nil {
			return err
		}
	}

	starterCoupons := []domain.Coupon{
		{Code: "DISC10", Type: domain.CouponPercentage, Rate: decimal.NewFromInt(10)},
		{Code: "HALF50", Type: domain.CouponPercentage, Rate: decimal.NewFromInt(50), LimitedTime: true},
		{Code: "BOGO01", Type: domain.CouponBuyOneGetOne},
		{Code: "FREE99", Type: domain.CouponOther},
	}
	for _, c := range starterCoupons {
		if _, err := coupons.FindByCode(ctx, c.Code); err == nil {
			continue
		}
		if err := coupons.Save(ctx, c); err != nil {
			return err
		}
	}

	return nil
}
