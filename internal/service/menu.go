package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Erhan1706/microservice-ordering-system/internal/catalog"
	"github.com/Erhan1706/microservice-ordering-system/internal/domain"
)

// AllergyProvider resolves a customer's allergy profile (ingredient IDs)
// from the customer service.
type AllergyProvider interface {
	Allergies(ctx context.Context, token string) ([]int64, error)
}

// MenuService is the catalog surface: browsing pizzas, ingredients, and
// coupons, plus the privileged mutations reserved for stores and managers.
// Role checks are capability checks against the identity in ctx.
type MenuService interface {
	// Pizzas lists the menu. With filterAllergens set, the customer's
	// allergy profile is fetched with token and pizzas containing any
	// allergen are excluded.
	Pizzas(ctx context.Context, filterAllergens bool, token string) ([]domain.Pizza, error)

	// Ingredients lists the ingredient inventory.
	Ingredients(ctx context.Context) ([]domain.Ingredient, error)

	// AllergyOptions lists ingredients as "{id} - {name}" choices for
	// the customer's allergy profile.
	AllergyOptions(ctx context.Context) ([]string, error)

	// Coupons lists every coupon in the repository.
	Coupons(ctx context.Context) ([]domain.Coupon, error)

	// CouponByCode returns the coupon with the given activation code.
	CouponByCode(ctx context.Context, code string) (domain.Coupon, error)

	// AddPizza adds a named pizza built from existing ingredients to the
	// menu. Privileged.
	AddPizza(ctx context.Context, name string, ingredientNames []string) (domain.Pizza, error)

	// AddIngredient adds a priced ingredient to the inventory. Privileged.
	AddIngredient(ctx context.Context, name string, price decimal.Decimal) (domain.Ingredient, error)

	// AddCoupon adds a coupon to the repository. Privileged.
	AddCoupon(ctx context.Context, coupon domain.Coupon) error

	// DeleteCoupon removes a coupon from the repository. Privileged.
	DeleteCoupon(ctx context.Context, code string) error
}

type menuService struct {
	pizzas      catalog.PizzaRepository
	ingredients catalog.IngredientRepository
	coupons     catalog.CouponRepository
	composer    *PizzaComposer
	allergies   AllergyProvider
}

// NewMenuService creates the catalog service.
func NewMenuService(
	pizzas catalog.PizzaRepository,
	ingredients catalog.IngredientRepository,
	coupons catalog.CouponRepository,
	composer *PizzaComposer,
	allergies AllergyProvider,
) MenuService {
	return &menuService{
		pizzas:      pizzas,
		ingredients: ingredients,
		coupons:     coupons,
		composer:    composer,
		allergies:   allergies,
	}
}

// requireCatalogWriter rejects catalog mutations from callers without the
// store or manager role.
func requireCatalogWriter(ctx context.Context) error {
	identity, ok := domain.IdentityFromContext(ctx)
	if !ok || !identity.CanMutateCatalog() {
		return ErrCatalogWriteForbidden
	}
	return nil
}

func (s *menuService) Pizzas(ctx context.Context, filterAllergens bool, token string) ([]domain.Pizza, error) {
	all, err := s.pizzas.All(ctx)
	if err != nil {
		return nil, err
	}
	if !filterAllergens {
		return all, nil
	}

	ids, err := s.allergies.Allergies(ctx, token)
	if err != nil {
		return nil, err
	}

	var allergens []domain.Ingredient
	for _, id := range ids {
		if id == 0 {
			// The customer service pads empty profiles with a zero ID.
			continue
		}
		ing, err := s.ingredients.FindByID(ctx, id)
		if err != nil {
			if domain.IsCode(err, domain.ENOTFOUND) {
				continue
			}
			return nil, err
		}
		allergens = append(allergens, ing)
	}

	return filterOutPizzas(all, allergens), nil
}

// filterOutPizzas removes pizzas containing any of the given allergens.
func filterOutPizzas(pizzas []domain.Pizza, allergens []domain.Ingredient) []domain.Pizza {
	filtered := make([]domain.Pizza, 0, len(pizzas))
	for _, pizza := range pizzas {
		safe := true
		for _, allergen := range allergens {
			if pizza.Contains(allergen) {
				safe = false
				break
			}
		}
		if safe {
			filtered = append(filtered, pizza)
		}
	}
	return filtered
}

func (s *menuService) Ingredients(ctx context.Context) ([]domain.Ingredient, error) {
	return s.ingredients.All(ctx)
}

func (s *menuService) AllergyOptions(ctx context.Context) ([]string, error) {
	all, err := s.ingredients.All(ctx)
	if err != nil {
		return nil, err
	}
	options := make([]string, len(all))
	for i, ing := range all {
		options[i] = fmt.Sprintf("%d - %s", ing.ID, ing.Name)
	}
	return options, nil
}

func (s *menuService) Coupons(ctx context.Context) ([]domain.Coupon, error) {
	return s.coupons.All(ctx)
}

func (s *menuService) CouponByCode(ctx context.Context, code string) (domain.Coupon, error) {
	return s.coupons.FindByCode(ctx, code)
}

func (s *menuService) AddPizza(ctx context.Context, name string, ingredientNames []string) (domain.Pizza, error) {
	if err := requireCatalogWriter(ctx); err != nil {
		return domain.Pizza{}, err
	}

	pizza, err := s.composer.Custom(ctx, name, ingredientNames)
	if err != nil {
		return domain.Pizza{}, err
	}
	if err := s.pizzas.Save(ctx, pizza); err != nil {
		return domain.Pizza{}, err
	}
	return pizza, nil
}

func (s *menuService) AddIngredient(ctx context.Context, name string, price decimal.Decimal) (domain.Ingredient, error) {
	if err := requireCatalogWriter(ctx); err != nil {
		return domain.Ingredient{}, err
	}
	if name == "" || !price.IsPositive() {
		return domain.Ingredient{}, ErrInvalidIngredient
	}
	return s.ingredients.Save(ctx, domain.Ingredient{Name: name, Price: price})
}

func (s *menuService) AddCoupon(ctx context.Context, coupon domain.Coupon) error {
	if err := requireCatalogWriter(ctx); err != nil {
		return err
	}
	if !domain.ValidCouponCode(coupon.Code) {
		return ErrMalformedCouponCode
	}
	switch coupon.Type {
	case domain.CouponPercentage, domain.CouponBuyOneGetOne, domain.CouponOther:
	default:
		return domain.Invalid("menu.addCoupon", "unknown coupon type")
	}
	return s.coupons.Save(ctx, coupon)
}

func (s *menuService) DeleteCoupon(ctx context.Context, code string) error {
	if err := requireCatalogWriter(ctx); err != nil {
		return err
	}
	if err := s.coupons.Delete(ctx, code); err != nil {
		if domain.IsCode(err, domain.ENOTFOUND) {
			return ErrCouponNotFound
		}
		return err
	}
	return nil
}
