package service

import (
	"context"
	"errors"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/Erhan1706/microservice-ordering-system/internal/domain"
)

// BasketService owns per-customer basket state and composes the coupon
// engine, price calculator, and pickup validator to mutate it.
//
// Operations on the same customer's basket are serialized; operations on
// different customers proceed independently. Checkout (read plus destroy)
// is atomic with respect to concurrent mutations on the same customer.
type BasketService interface {
	// Get returns a priced snapshot of the customer's basket.
	Get(ctx context.Context, customerID string) (*BasketSummary, error)

	// Create ensures a basket exists for the customer. Idempotent.
	Create(ctx context.Context, customerID string) error

	// Checkout returns the basket and destroys it in one step. A new
	// basket for the same customer is a distinct entity.
	Checkout(ctx context.Context, customerID string) (*BasketSummary, error)

	// AddPizza appends a composed pizza, creating the basket if absent.
	// Duplicate pizza names within a basket are allowed.
	AddPizza(ctx context.Context, customerID string, pizza domain.Pizza) (*BasketSummary, error)

	// RemovePizza removes the first pizza with the given name, keeping
	// the rest in their original order.
	RemovePizza(ctx context.Context, customerID string, name string) (*BasketSummary, error)

	// ApplyCoupon resolves code and attaches it under the
	// cheaper-replacement policy.
	ApplyCoupon(ctx context.Context, customerID string, code string) (*BasketSummary, error)

	// RemoveCoupon detaches the applied coupon.
	RemoveCoupon(ctx context.Context, customerID string) (*BasketSummary, error)

	// SelectTime validates and stores the requested pickup time.
	SelectTime(ctx context.Context, customerID string, tomorrow bool, hour, minute int) (*BasketSummary, error)

	// SetStorePreference verifies the store ID with the store service
	// and attaches it to the basket.
	SetStorePreference(ctx context.Context, customerID string, storeID int) (*BasketSummary, error)
}

// StoreVerifier checks store IDs against the store service.
type StoreVerifier interface {
	VerifyStoreID(ctx context.Context, storeID int) (bool, error)
}

// BasketSummary is a priced snapshot of a basket. The total is recomputed
// on every read and never cached across mutations.
type BasketSummary struct {
	Basket *domain.Basket
	Total  decimal.Decimal
}

type basketStore struct {
	mu      sync.Mutex
	baskets map[string]*basketEntry

	coupons *CouponEngine
	pickup  *PickupTimeValidator
	stores  StoreVerifier
}

// basketEntry pairs a basket with its per-customer lock. removed marks an
// entry destroyed by checkout so a racing mutation can detect it went stale.
type basketEntry struct {
	mu      sync.Mutex
	basket  *domain.Basket
	removed bool
}

// NewBasketService creates the in-memory basket store.
func NewBasketService(coupons *CouponEngine, pickup *PickupTimeValidator, stores StoreVerifier) BasketService {
	return &basketStore{
		baskets: make(map[string]*basketEntry),
		coupons: coupons,
		pickup:  pickup,
		stores:  stores,
	}
}

// entryFor returns the live entry for a customer, creating one when asked.
// Only the map lock is held here; the entry lock is taken by callers.
func (s *basketStore) entryFor(customerID string, create bool) *basketEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.baskets[customerID]
	if e == nil && create {
		e = &basketEntry{basket: &domain.Basket{CustomerID: customerID}}
		s.baskets[customerID] = e
	}
	return e
}

// withBasket runs fn under the customer's basket lock. When the entry was
// destroyed by a concurrent checkout between lookup and lock acquisition,
// the lookup is retried so fn never observes a dead basket.
func (s *basketStore) withBasket(customerID string, create bool, fn func(*domain.Basket) error) error {
	for {
		e := s.entryFor(customerID, create)
		if e == nil {
			return ErrBasketNotFound
		}
		e.mu.Lock()
		if e.removed {
			e.mu.Unlock()
			continue
		}
		err := fn(e.basket)
		e.mu.Unlock()
		return err
	}
}

func (s *basketStore) Get(ctx context.Context, customerID string) (*BasketSummary, error) {
	var summary *BasketSummary
	err := s.withBasket(customerID, false, func(b *domain.Basket) error {
		summary = summarize(b)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

func (s *basketStore) Create(ctx context.Context, customerID string) error {
	return s.withBasket(customerID, true, func(*domain.Basket) error { return nil })
}

func (s *basketStore) Checkout(ctx context.Context, customerID string) (*BasketSummary, error) {
	s.mu.Lock()
	e := s.baskets[customerID]
	s.mu.Unlock()
	if e == nil {
		return nil, ErrBasketNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.removed {
		return nil, ErrBasketNotFound
	}
	e.removed = true

	s.mu.Lock()
	if s.baskets[customerID] == e {
		delete(s.baskets, customerID)
	}
	s.mu.Unlock()

	return summarize(e.basket), nil
}

func (s *basketStore) AddPizza(ctx context.Context, customerID string, pizza domain.Pizza) (*BasketSummary, error) {
	return s.mutate(customerID, true, func(b *domain.Basket) error {
		b.Pizzas = append(b.Pizzas, pizza)
		return nil
	})
}

func (s *basketStore) RemovePizza(ctx context.Context, customerID string, name string) (*BasketSummary, error) {
	return s.mutate(customerID, false, func(b *domain.Basket) error {
		for i, p := range b.Pizzas {
			if p.Name == name {
				b.Pizzas = append(b.Pizzas[:i], b.Pizzas[i+1:]...)
				return nil
			}
		}
		return ErrPizzaNotInBasket
	})
}

func (s *basketStore) ApplyCoupon(ctx context.Context, customerID string, code string) (*BasketSummary, error) {
	return s.mutate(customerID, false, func(b *domain.Basket) error {
		_, err := s.coupons.Apply(ctx, b, code)
		return err
	})
}

func (s *basketStore) RemoveCoupon(ctx context.Context, customerID string) (*BasketSummary, error) {
	summary, err := s.mutate(customerID, false, func(b *domain.Basket) error {
		_, err := s.coupons.Remove(b)
		return err
	})
	if errors.Is(err, ErrBasketNotFound) {
		// No basket means no coupon to remove.
		return nil, ErrNoCouponApplied
	}
	return summary, err
}

func (s *basketStore) SelectTime(ctx context.Context, customerID string, tomorrow bool, hour, minute int) (*BasketSummary, error) {
	summary, err := s.mutate(customerID, false, func(b *domain.Basket) error {
		pickupTime, err := s.pickup.Validate(b, tomorrow, hour, minute)
		if err != nil {
			return err
		}
		b.PickupTime = &pickupTime
		return nil
	})
	if errors.Is(err, ErrBasketNotFound) {
		// An absent basket and an empty one read the same to the customer.
		return nil, ErrEmptyBasket
	}
	return summary, err
}

func (s *basketStore) SetStorePreference(ctx context.Context, customerID string, storeID int) (*BasketSummary, error) {
	// The store service is authoritative; its verdict is not retried.
	ok, err := s.stores.VerifyStoreID(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidStoreID
	}
	return s.mutate(customerID, true, func(b *domain.Basket) error {
		b.StoreID = &storeID
		return nil
	})
}

// mutate applies fn under the basket lock and returns a fresh summary.
func (s *basketStore) mutate(customerID string, create bool, fn func(*domain.Basket) error) (*BasketSummary, error) {
	var summary *BasketSummary
	err := s.withBasket(customerID, create, func(b *domain.Basket) error {
		if err := fn(b); err != nil {
			return err
		}
		summary = summarize(b)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// summarize snapshots a basket and prices it. Called with the basket lock
// held; the returned summary shares nothing with the live basket.
func summarize(b *domain.Basket) *BasketSummary {
	snapshot := b.Clone()
	return &BasketSummary{
		Basket: snapshot,
		Total:  Price(snapshot.Pizzas, snapshot.Coupon),
	}
}
