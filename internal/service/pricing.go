package service

import (
	"github.com/shopspring/decimal"

	"github.com/Erhan1706/microservice-ordering-system/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// Price computes the total for a list of pizzas under an optional coupon.
// It is a pure function and must be called fresh on every basket read;
// pizzas and coupon can change between reads, so totals are never cached.
func Price(pizzas []domain.Pizza, coupon *domain.Coupon) decimal.Decimal {
	total := decimal.Zero
	for _, p := range pizzas {
		total = total.Add(p.Price)
	}
	if coupon == nil {
		return total
	}

	switch coupon.Type {
	case domain.CouponPercentage:
		total = total.Mul(hundred.Sub(coupon.Rate)).Div(hundred)
	case domain.CouponBuyOneGetOne:
		// One pizza alone has nothing to get free; the discount needs a pair.
		if len(pizzas) >= 2 {
			total = total.Sub(cheapestPizza(pizzas))
		}
	case domain.CouponOther:
		// Informational coupons (free delivery and the like) leave the
		// total untouched.
	}
	return total
}

func cheapestPizza(pizzas []domain.Pizza) decimal.Decimal {
	min := pizzas[0].Price
	for _, p := range pizzas[1:] {
		if p.Price.LessThan(min) {
			min = p.Price
		}
	}
	return min
}
