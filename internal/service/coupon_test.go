package service_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Erhan1706/microservice-ordering-system/internal/catalog"
	"github.com/Erhan1706/microservice-ordering-system/internal/domain"
	"github.com/Erhan1706/microservice-ordering-system/internal/service"
)

func newCouponEngine(t *testing.T, coupons ...domain.Coupon) *service.CouponEngine {
	t.Helper()
	repo := catalog.NewMemoryCouponRepository()
	for _, c := range coupons {
		require.NoError(t, repo.Save(context.Background(), c))
	}
	return service.NewCouponEngine(repo)
}

func twoPizzaBasket(t *testing.T) *domain.Basket {
	t.Helper()
	return &domain.Basket{
		CustomerID: "c1",
		Pizzas: []domain.Pizza{
			testPizza(t, "margherita", "5.00"),
			testPizza(t, "pepperoni", "8.00"),
		},
	}
}

func Test_CouponEngine_Apply_MalformedCode(t *testing.T) {
	engine := newCouponEngine(t)
	basket := twoPizzaBasket(t)

	tests := []string{"", "ABC12", "ABCDE1", "123456", "ABCD1", "ABCD123", "AB CD12"}
	for _, code := range tests {
		t.Run(code, func(t *testing.T) {
			_, err := engine.Apply(context.Background(), basket, code)
			assert.ErrorIs(t, err, service.ErrMalformedCouponCode)
		})
	}
	assert.Nil(t, basket.Coupon, "malformed codes never attach")
}

func Test_CouponEngine_Apply_UnknownCode(t *testing.T) {
	engine := newCouponEngine(t)
	basket := twoPizzaBasket(t)

	_, err := engine.Apply(context.Background(), basket, "NOPE00")

	assert.ErrorIs(t, err, service.ErrCouponNotFound)
	assert.Nil(t, basket.Coupon)
}

func Test_CouponEngine_Apply_FirstCouponAttaches(t *testing.T) {
	// A first coupon attaches regardless of its price effect, so an
	// informational coupon on an empty slot still succeeds.
	engine := newCouponEngine(t,
		domain.Coupon{Code: "FREE99", Type: domain.CouponOther},
	)
	basket := twoPizzaBasket(t)

	applied, err := engine.Apply(context.Background(), basket, "FREE99")

	require.NoError(t, err)
	assert.Equal(t, "FREE99", applied.Code)
	require.NotNil(t, basket.Coupon)
	assert.Equal(t, domain.CouponOther, basket.Coupon.Type)
}

func Test_CouponEngine_Apply_SameCodeRejected(t *testing.T) {
	engine := newCouponEngine(t,
		domain.Coupon{Code: "DISC10", Type: domain.CouponPercentage, Rate: decimal.NewFromInt(10)},
	)
	basket := twoPizzaBasket(t)

	_, err := engine.Apply(context.Background(), basket, "DISC10")
	require.NoError(t, err)

	_, err = engine.Apply(context.Background(), basket, "DISC10")
	assert.ErrorIs(t, err, service.ErrCouponAlreadyApplied)

	// Case differences do not make it a different coupon.
	_, err = engine.Apply(context.Background(), basket, "disc10")
	assert.ErrorIs(t, err, service.ErrCouponAlreadyApplied)
}

func Test_CouponEngine_Apply_CheaperReplacement(t *testing.T) {
	engine := newCouponEngine(t,
		domain.Coupon{Code: "DISC10", Type: domain.CouponPercentage, Rate: decimal.NewFromInt(10)},
		domain.Coupon{Code: "HALF50", Type: domain.CouponPercentage, Rate: decimal.NewFromInt(50)},
	)
	basket := twoPizzaBasket(t)

	_, err := engine.Apply(context.Background(), basket, "DISC10")
	require.NoError(t, err)

	// 50% beats 10%, so it replaces.
	_, err = engine.Apply(context.Background(), basket, "HALF50")
	require.NoError(t, err)
	assert.Equal(t, "HALF50", basket.Coupon.Code)

	// Going back to the weaker coupon is rejected and the stronger stays.
	_, err = engine.Apply(context.Background(), basket, "DISC10")
	assert.ErrorIs(t, err, service.ErrCouponNotCheaper)
	assert.Equal(t, "HALF50", basket.Coupon.Code)
}

func Test_CouponEngine_Apply_EqualPriceRejected(t *testing.T) {
	// Replacement requires a strictly lower total, so an equivalent coupon
	// under a different code is rejected.
	engine := newCouponEngine(t,
		domain.Coupon{Code: "TENA10", Type: domain.CouponPercentage, Rate: decimal.NewFromInt(10)},
		domain.Coupon{Code: "TENB10", Type: domain.CouponPercentage, Rate: decimal.NewFromInt(10)},
	)
	basket := twoPizzaBasket(t)

	_, err := engine.Apply(context.Background(), basket, "TENA10")
	require.NoError(t, err)

	_, err = engine.Apply(context.Background(), basket, "TENB10")
	assert.ErrorIs(t, err, service.ErrCouponNotCheaper)
	assert.Equal(t, "TENA10", basket.Coupon.Code)
}

func Test_CouponEngine_Remove(t *testing.T) {
	engine := newCouponEngine(t,
		domain.Coupon{Code: "DISC10", Type: domain.CouponPercentage, Rate: decimal.NewFromInt(10)},
	)
	basket := twoPizzaBasket(t)

	_, err := engine.Remove(basket)
	assert.ErrorIs(t, err, service.ErrNoCouponApplied, "nothing attached yet")

	_, err = engine.Apply(context.Background(), basket, "DISC10")
	require.NoError(t, err)

	removed, err := engine.Remove(basket)
	require.NoError(t, err)
	assert.Equal(t, "DISC10", removed.Code)
	assert.Nil(t, basket.Coupon)
}
