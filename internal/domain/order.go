package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus enumerates the order lifecycle states.
// Placed is the initial state; Cancelled is terminal.
type OrderStatus string

const (
	OrderPlaced    OrderStatus = "placed"
	OrderCancelled OrderStatus = "cancelled"
)

// Order is a placed basket in the order lifecycle. The total is frozen at
// placement time; the basket it came from no longer exists.
type Order struct {
	ID         int
	CustomerID string
	Pizzas     []Pizza
	Total      decimal.Decimal
	Status     OrderStatus
	PickupTime *time.Time
	StoreID    *int
}
