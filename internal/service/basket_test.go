package service_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Erhan1706/microservice-ordering-system/internal/catalog"
	"github.com/Erhan1706/microservice-ordering-system/internal/domain"
	"github.com/Erhan1706/microservice-ordering-system/internal/rest"
	"github.com/Erhan1706/microservice-ordering-system/internal/service"
)

func newBasketFixture(t *testing.T, stores service.StoreVerifier) service.BasketService {
	t.Helper()
	ctx := context.Background()

	coupons := catalog.NewMemoryCouponRepository()
	for _, c := range []domain.Coupon{
		{Code: "DISC10", Type: domain.CouponPercentage, Rate: decimal.NewFromInt(10)},
		{Code: "HALF50", Type: domain.CouponPercentage, Rate: decimal.NewFromInt(50)},
		{Code: "BOGO01", Type: domain.CouponBuyOneGetOne},
	} {
		require.NoError(t, coupons.Save(ctx, c))
	}

	if stores == nil {
		stores = &rest.Mock{}
	}

	return service.NewBasketService(
		service.NewCouponEngine(coupons),
		service.NewPickupTimeValidator(fixedClock),
		stores,
	)
}

func Test_BasketService_CreateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	baskets := newBasketFixture(t, nil)

	require.NoError(t, baskets.Create(ctx, "c1"))

	summary, err := baskets.AddPizza(ctx, "c1", testPizza(t, "margherita", "5.00"))
	require.NoError(t, err)
	require.Len(t, summary.Basket.Pizzas, 1)

	// Creating again keeps the existing basket intact.
	require.NoError(t, baskets.Create(ctx, "c1"))

	summary, err = baskets.Get(ctx, "c1")
	require.NoError(t, err)
	assert.Len(t, summary.Basket.Pizzas, 1, "repeated create does not reset the basket")
}

func Test_BasketService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	baskets := newBasketFixture(t, nil)

	// No basket yet.
	_, err := baskets.Get(ctx, "c1")
	assert.ErrorIs(t, err, service.ErrBasketNotFound)

	// Adding a pizza creates the basket.
	summary, err := baskets.AddPizza(ctx, "c1", testPizza(t, "margherita", "5.00"))
	require.NoError(t, err)
	assert.Len(t, summary.Basket.Pizzas, 1)
	assert.Equal(t, "5.00", summary.Total.StringFixed(2))

	summary, err = baskets.AddPizza(ctx, "c1", testPizza(t, "pepperoni", "8.00"))
	require.NoError(t, err)
	assert.Equal(t, "13.00", summary.Total.StringFixed(2))

	// Duplicate names are allowed.
	summary, err = baskets.AddPizza(ctx, "c1", testPizza(t, "margherita", "5.00"))
	require.NoError(t, err)
	assert.Len(t, summary.Basket.Pizzas, 3)
	assert.Equal(t, "18.00", summary.Total.StringFixed(2))

	// Removing by name drops the first match only.
	summary, err = baskets.RemovePizza(ctx, "c1", "margherita")
	require.NoError(t, err)
	assert.Len(t, summary.Basket.Pizzas, 2)
	assert.Equal(t, "13.00", summary.Total.StringFixed(2))

	_, err = baskets.RemovePizza(ctx, "c1", "hawaii")
	assert.ErrorIs(t, err, service.ErrPizzaNotInBasket)
}

func Test_BasketService_CouponChangesTotal(t *testing.T) {
	ctx := context.Background()
	baskets := newBasketFixture(t, nil)

	_, err := baskets.AddPizza(ctx, "c1", testPizza(t, "margherita", "5.00"))
	require.NoError(t, err)
	_, err = baskets.AddPizza(ctx, "c1", testPizza(t, "pepperoni", "8.00"))
	require.NoError(t, err)

	summary, err := baskets.ApplyCoupon(ctx, "c1", "DISC10")
	require.NoError(t, err)
	assert.Equal(t, "11.70", summary.Total.StringFixed(2), "13.00 * 0.90")

	// Totals are recomputed after every mutation, not cached.
	summary, err = baskets.AddPizza(ctx, "c1", testPizza(t, "hawaii", "7.00"))
	require.NoError(t, err)
	assert.Equal(t, "18.00", summary.Total.StringFixed(2), "20.00 * 0.90")

	summary, err = baskets.RemoveCoupon(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "20.00", summary.Total.StringFixed(2))

	_, err = baskets.RemoveCoupon(ctx, "c1")
	assert.ErrorIs(t, err, service.ErrNoCouponApplied)
}

func Test_BasketService_RemoveCoupon_NoBasket(t *testing.T) {
	baskets := newBasketFixture(t, nil)

	_, err := baskets.RemoveCoupon(context.Background(), "ghost")
	assert.ErrorIs(t, err, service.ErrNoCouponApplied)
}

func Test_BasketService_SelectTime(t *testing.T) {
	ctx := context.Background()
	baskets := newBasketFixture(t, nil)

	// Selecting a time before the basket exists reads as an empty basket.
	_, err := baskets.SelectTime(ctx, "c1", false, 21, 0)
	assert.ErrorIs(t, err, service.ErrEmptyBasket)

	_, err = baskets.AddPizza(ctx, "c1", testPizza(t, "margherita", "5.00"))
	require.NoError(t, err)

	summary, err := baskets.SelectTime(ctx, "c1", false, 21, 0)
	require.NoError(t, err)
	require.NotNil(t, summary.Basket.PickupTime)
	assert.Equal(t, 21, summary.Basket.PickupTime.Hour())

	_, err = baskets.SelectTime(ctx, "c1", false, 8, 0)
	assert.ErrorIs(t, err, service.ErrPastPickupTime)
}

func Test_BasketService_SetStorePreference(t *testing.T) {
	ctx := context.Background()

	verifier := &rest.Mock{
		VerifyStoreIDFunc: func(ctx context.Context, id int) (bool, error) {
			return id == 7, nil
		},
	}
	baskets := newBasketFixture(t, verifier)

	summary, err := baskets.SetStorePreference(ctx, "c1", 7)
	require.NoError(t, err)
	require.NotNil(t, summary.Basket.StoreID)
	assert.Equal(t, 7, *summary.Basket.StoreID)

	_, err = baskets.SetStorePreference(ctx, "c1", 99)
	assert.ErrorIs(t, err, service.ErrInvalidStoreID)
}

func Test_BasketService_CheckoutDestroysBasket(t *testing.T) {
	ctx := context.Background()
	baskets := newBasketFixture(t, nil)

	_, err := baskets.AddPizza(ctx, "c1", testPizza(t, "margherita", "5.00"))
	require.NoError(t, err)
	_, err = baskets.ApplyCoupon(ctx, "c1", "HALF50")
	require.NoError(t, err)

	summary, err := baskets.Checkout(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "2.50", summary.Total.StringFixed(2), "5.00 * 0.50")

	// The basket is gone; a second checkout finds nothing.
	_, err = baskets.Get(ctx, "c1")
	assert.ErrorIs(t, err, service.ErrBasketNotFound)
	_, err = baskets.Checkout(ctx, "c1")
	assert.ErrorIs(t, err, service.ErrBasketNotFound)

	// A new basket for the same customer starts fresh.
	summary, err = baskets.AddPizza(ctx, "c1", testPizza(t, "pepperoni", "8.00"))
	require.NoError(t, err)
	assert.Len(t, summary.Basket.Pizzas, 1)
	assert.Nil(t, summary.Basket.Coupon, "the old coupon did not survive checkout")
}

func Test_BasketService_SummaryIsSnapshot(t *testing.T) {
	ctx := context.Background()
	baskets := newBasketFixture(t, nil)

	summary, err := baskets.AddPizza(ctx, "c1", testPizza(t, "margherita", "5.00"))
	require.NoError(t, err)

	// Mutating the snapshot must not leak into the live basket.
	summary.Basket.Pizzas = nil

	fresh, err := baskets.Get(ctx, "c1")
	require.NoError(t, err)
	assert.Len(t, fresh.Basket.Pizzas, 1)
}

func Test_BasketService_ConcurrentAdds(t *testing.T) {
	ctx := context.Background()
	baskets := newBasketFixture(t, nil)

	const customers = 4
	const addsPerCustomer = 25
	pizza := testPizza(t, "margherita", "5.00")

	var wg sync.WaitGroup
	for c := 0; c < customers; c++ {
		customerID := fmt.Sprintf("c%d", c)
		for i := 0; i < addsPerCustomer; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := baskets.AddPizza(ctx, customerID, pizza)
				assert.NoError(t, err)
			}()
		}
	}
	wg.Wait()

	for c := 0; c < customers; c++ {
		summary, err := baskets.Get(ctx, fmt.Sprintf("c%d", c))
		require.NoError(t, err)
		assert.Len(t, summary.Basket.Pizzas, addsPerCustomer)
	}
}

func Test_BasketService_ConcurrentCheckout(t *testing.T) {
	ctx := context.Background()
	baskets := newBasketFixture(t, nil)

	_, err := baskets.AddPizza(ctx, "c1", testPizza(t, "margherita", "5.00"))
	require.NoError(t, err)

	// Exactly one of the racing checkouts may win.
	const racers = 8
	var wg sync.WaitGroup
	results := make(chan error, racers)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := baskets.Checkout(ctx, "c1")
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var wins int
	for err := range results {
		if err == nil {
			wins++
		} else {
			assert.ErrorIs(t, err, service.ErrBasketNotFound)
		}
	}
	assert.Equal(t, 1, wins, "checkout destroys the basket exactly once")
}
