package service

import (
	"context"
	"strings"

	"github.com/Erhan1706/microservice-ordering-system/internal/catalog"
	"github.com/Erhan1706/microservice-ordering-system/internal/domain"
)

// CouponEngine validates coupon codes, computes their price effect, and
// enforces the cheaper-replacement policy on baskets.
type CouponEngine struct {
	coupons catalog.CouponRepository
}

// NewCouponEngine creates an engine over the coupon catalog.
func NewCouponEngine(coupons catalog.CouponRepository) *CouponEngine {
	return &CouponEngine{coupons: coupons}
}

// Apply resolves code and attaches the coupon to the basket if it makes the
// basket strictly cheaper than the currently attached coupon does. A first
// coupon attaches unconditionally; reapplying the attached code fails before
// any price comparison. The caller must hold the basket's lock.
func (e *CouponEngine) Apply(ctx context.Context, basket *domain.Basket, code string) (domain.Coupon, error) {
	if !domain.ValidCouponCode(code) {
		return domain.Coupon{}, ErrMalformedCouponCode
	}
	if basket == nil {
		return domain.Coupon{}, ErrBasketNotFound
	}

	coupon, err := e.coupons.FindByCode(ctx, code)
	if err != nil {
		if domain.IsCode(err, domain.ENOTFOUND) {
			return domain.Coupon{}, ErrCouponNotFound
		}
		return domain.Coupon{}, err
	}

	if basket.Coupon != nil {
		if strings.EqualFold(basket.Coupon.Code, code) {
			return domain.Coupon{}, ErrCouponAlreadyApplied
		}
		candidate := Price(basket.Pizzas, &coupon)
		current := Price(basket.Pizzas, basket.Coupon)
		if !candidate.LessThan(current) {
			return domain.Coupon{}, ErrCouponNotCheaper
		}
	}

	basket.Coupon = &coupon
	return coupon, nil
}

// Remove detaches the currently applied coupon and returns it.
// Fails with ErrNoCouponApplied when the basket is absent or bare.
func (e *CouponEngine) Remove(basket *domain.Basket) (domain.Coupon, error) {
	if basket == nil || basket.Coupon == nil {
		return domain.Coupon{}, ErrNoCouponApplied
	}
	removed := *basket.Coupon
	basket.Coupon = nil
	return removed, nil
}
