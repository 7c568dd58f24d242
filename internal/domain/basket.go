package domain

import (
	"time"
)

// Basket is a customer's in-progress order: pizzas plus an optional coupon,
// pickup time, and store preference. Baskets are owned exclusively by the
// basket store, keyed one-to-one by customer ID; the displayed total is
// always recomputed from pizzas and coupon, never cached.
type Basket struct {
	CustomerID string
	Pizzas     []Pizza
	Coupon     *Coupon
	PickupTime *time.Time
	StoreID    *int
}

// ContainsPizza reports whether the basket holds a pizza with the given name.
func (b *Basket) ContainsPizza(name string) bool {
	for _, p := range b.Pizzas {
		if p.Name == name {
			return true
		}
	}
	return false
}

// Clone returns a snapshot of the basket that is safe to hand to callers
// while the store keeps mutating the original.
func (b *Basket) Clone() *Basket {
	c := &Basket{CustomerID: b.CustomerID}
	c.Pizzas = append([]Pizza(nil), b.Pizzas...)
	if b.Coupon != nil {
		coupon := *b.Coupon
		c.Coupon = &coupon
	}
	if b.PickupTime != nil {
		t := *b.PickupTime
		c.PickupTime = &t
	}
	if b.StoreID != nil {
		id := *b.StoreID
		c.StoreID = &id
	}
	return c
}
