package catalog

import (
	"context"
	"sort"
	"sync"

	"github.com/Erhan1706/microservice-ordering-system/internal/domain"
)

// MemoryPizzaRepository is an in-memory PizzaRepository.
// It is the default backend and the test double.
type MemoryPizzaRepository struct {
	mu     sync.RWMutex
	pizzas map[string]domain.Pizza
}

// NewMemoryPizzaRepository creates an empty in-memory pizza repository.
func NewMemoryPizzaRepository() *MemoryPizzaRepository {
	return &MemoryPizzaRepository{pizzas: make(map[string]domain.Pizza)}
}

func (r *MemoryPizzaRepository) FindByName(ctx context.Context, name string) (domain.Pizza, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	pizza, ok := r.pizzas[name]
	if !ok {
		return domain.Pizza{}, domain.NotFound("catalog.pizza", "pizza", name)
	}
	return pizza, nil
}

func (r *MemoryPizzaRepository) All(ctx context.Context) ([]domain.Pizza, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]domain.Pizza, 0, len(r.pizzas))
	for _, pizza := range r.pizzas {
		all = append(all, pizza)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all, nil
}

func (r *MemoryPizzaRepository) Save(ctx context.Context, pizza domain.Pizza) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.pizzas[pizza.Name]; ok {
		return domain.Conflict("catalog.pizza", "pizza already exists: "+pizza.Name)
	}
	r.pizzas[pizza.Name] = pizza
	return nil
}

// MemoryIngredientRepository is an in-memory IngredientRepository.
// IDs are assigned sequentially starting at 1; ID 0 is reserved as the
// "no allergies" sentinel reported by the customer service.
type MemoryIngredientRepository struct {
	mu     sync.RWMutex
	byName map[string]domain.Ingredient
	byID   map[int64]domain.Ingredient
	nextID int64
}

// NewMemoryIngredientRepository creates an empty in-memory ingredient repository.
func NewMemoryIngredientRepository() *MemoryIngredientRepository {
	return &MemoryIngredientRepository{
		byName: make(map[string]domain.Ingredient),
		byID:   make(map[int64]domain.Ingredient),
		nextID: 1,
	}
}

func (r *MemoryIngredientRepository) FindByName(ctx context.Context, name string) (domain.Ingredient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ing, ok := r.byName[name]
	if !ok {
		return domain.Ingredient{}, domain.NotFound("catalog.ingredient", "ingredient", name)
	}
	return ing, nil
}

func (r *MemoryIngredientRepository) FindByID(ctx context.Context, id int64) (domain.Ingredient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ing, ok := r.byID[id]
	if !ok {
		return domain.Ingredient{}, domain.Errorf(domain.ENOTFOUND, "catalog.ingredient", "ingredient not found: id %d", id)
	}
	return ing, nil
}

func (r *MemoryIngredientRepository) All(ctx context.Context) ([]domain.Ingredient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]domain.Ingredient, 0, len(r.byName))
	for _, ing := range r.byName {
		all = append(all, ing)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all, nil
}

func (r *MemoryIngredientRepository) Save(ctx context.Context, ingredient domain.Ingredient) (domain.Ingredient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byName[ingredient.Name]; ok {
		return domain.Ingredient{}, domain.Conflict("catalog.ingredient", "ingredient already exists: "+ingredient.Name)
	}
	ingredient.ID = r.nextID
	r.nextID++
	r.byName[ingredient.Name] = ingredient
	r.byID[ingredient.ID] = ingredient
	return ingredient, nil
}

// MemoryCouponRepository is an in-memory CouponRepository.
type MemoryCouponRepository struct {
	mu      sync.RWMutex
	coupons map[string]domain.Coupon
}

// NewMemoryCouponRepository creates an empty in-memory coupon repository.
func NewMemoryCouponRepository() *MemoryCouponRepository {
	return &MemoryCouponRepository{coupons: make(map[string]domain.Coupon)}
}

func (r *MemoryCouponRepository) FindByCode(ctx context.Context, code string) (domain.Coupon, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	coupon, ok := r.coupons[code]
	if !ok {
		return domain.Coupon{}, domain.NotFound("catalog.coupon", "coupon", code)
	}
	return coupon, nil
}

func (r *MemoryCouponRepository) All(ctx context.Context) ([]domain.Coupon, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]domain.Coupon, 0, len(r.coupons))
	for _, coupon := range r.coupons {
		all = append(all, coupon)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Code < all[j].Code })
	return all, nil
}

func (r *MemoryCouponRepository) Save(ctx context.Context, coupon domain.Coupon) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.coupons[coupon.Code]; ok {
		return domain.Conflict("catalog.coupon", "coupon code already exists: "+coupon.Code)
	}
	r.coupons[coupon.Code] = coupon
	return nil
}

func (r *MemoryCouponRepository) Delete(ctx context.Context, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.coupons[code]; !ok {
		return domain.NotFound("catalog.coupon", "coupon", code)
	}
	delete(r.coupons, code)
	return nil
}
