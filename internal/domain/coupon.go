package domain

import (
	"regexp"

	"github.com/shopspring/decimal"
)

// CouponType enumerates the supported coupon price semantics.
// The set is closed; price dispatch must handle every member explicitly.
type CouponType string

const (
	// CouponPercentage discounts the basket total by Rate percent.
	CouponPercentage CouponType = "percentage"
	// CouponBuyOneGetOne removes the price of the cheapest pizza when the
	// basket holds at least two pizzas.
	CouponBuyOneGetOne CouponType = "buy_one_get_one"
	// CouponOther attaches without changing the total, e.g. a free
	// delivery marker.
	CouponOther CouponType = "other"
)

// Coupon activation codes are exactly four letters followed by two digits.
var couponCodePattern = regexp.MustCompile(`^[A-Za-z]{4}[0-9]{2}$`)

// ValidCouponCode reports whether code has the required activation format.
// Malformed codes are rejected before any catalog lookup.
func ValidCouponCode(code string) bool {
	return couponCodePattern.MatchString(code)
}

// Coupon is an immutable catalog entry describing a discount.
// Rate is meaningful only for CouponPercentage and is expressed in percent
// (20 means 20% off).
type Coupon struct {
	Code        string
	Type        CouponType
	Rate        decimal.Decimal
	LimitedTime bool
}
