package catalog_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Erhan1706/microservice-ordering-system/internal/catalog"
	"github.com/Erhan1706/microservice-ordering-system/internal/domain"
)

func Test_MemoryIngredientRepository_AssignsSequentialIDs(t *testing.T) {
	ctx := context.Background()
	repo := catalog.NewMemoryIngredientRepository()

	dough, err := repo.Save(ctx, domain.Ingredient{Name: "dough", Price: decimal.NewFromFloat(2.00)})
	require.NoError(t, err)
	cheese, err := repo.Save(ctx, domain.Ingredient{Name: "mozzarella", Price: decimal.NewFromFloat(1.50)})
	require.NoError(t, err)

	assert.Equal(t, int64(1), dough.ID, "first saved ingredient gets ID 1; 0 is the empty-profile sentinel")
	assert.Equal(t, int64(2), cheese.ID)

	byID, err := repo.FindByID(ctx, dough.ID)
	require.NoError(t, err)
	assert.Equal(t, "dough", byID.Name)

	byName, err := repo.FindByName(ctx, "mozzarella")
	require.NoError(t, err)
	assert.Equal(t, cheese.ID, byName.ID)
}

func Test_MemoryIngredientRepository_DuplicateName(t *testing.T) {
	ctx := context.Background()
	repo := catalog.NewMemoryIngredientRepository()

	_, err := repo.Save(ctx, domain.Ingredient{Name: "dough", Price: decimal.NewFromFloat(2.00)})
	require.NoError(t, err)

	_, err = repo.Save(ctx, domain.Ingredient{Name: "dough", Price: decimal.NewFromFloat(3.00)})
	require.Error(t, err)
	assert.Equal(t, domain.ECONFLICT, domain.ErrorCode(err))
}

func Test_MemoryIngredientRepository_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := catalog.NewMemoryIngredientRepository()

	_, err := repo.FindByName(ctx, "truffle")
	assert.Equal(t, domain.ENOTFOUND, domain.ErrorCode(err))

	_, err = repo.FindByID(ctx, 99)
	assert.Equal(t, domain.ENOTFOUND, domain.ErrorCode(err))
}

func Test_MemoryIngredientRepository_AllSortedByID(t *testing.T) {
	ctx := context.Background()
	repo := catalog.NewMemoryIngredientRepository()

	for _, name := range []string{"tomato sauce", "dough", "basil"} {
		_, err := repo.Save(ctx, domain.Ingredient{Name: name, Price: decimal.NewFromFloat(1.00)})
		require.NoError(t, err)
	}

	all, err := repo.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "tomato sauce", all[0].Name, "All returns ingredients in insertion order, by ID")
	assert.Equal(t, "dough", all[1].Name)
	assert.Equal(t, "basil", all[2].Name)
}

func Test_MemoryPizzaRepository_SaveAndFind(t *testing.T) {
	ctx := context.Background()
	repo := catalog.NewMemoryPizzaRepository()

	dough := domain.Ingredient{ID: 1, Name: "dough", Price: decimal.NewFromFloat(2.00)}
	margherita, err := domain.NewPizza("margherita", []domain.Ingredient{dough})
	require.NoError(t, err)

	require.NoError(t, repo.Save(ctx, margherita))

	got, findErr := repo.FindByName(ctx, "margherita")
	require.NoError(t, findErr)
	assert.Equal(t, "margherita", got.Name)

	err = repo.Save(ctx, margherita)
	assert.Equal(t, domain.ECONFLICT, domain.ErrorCode(err), "pizza names are unique")

	_, err = repo.FindByName(ctx, "calzone")
	assert.Equal(t, domain.ENOTFOUND, domain.ErrorCode(err))
}

func Test_MemoryPizzaRepository_AllSortedByName(t *testing.T) {
	ctx := context.Background()
	repo := catalog.NewMemoryPizzaRepository()

	dough := domain.Ingredient{ID: 1, Name: "dough", Price: decimal.NewFromFloat(2.00)}
	for _, name := range []string{"pepperoni", "hawaii", "margherita"} {
		pizza, err := domain.NewPizza(name, []domain.Ingredient{dough})
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, pizza))
	}

	all, err := repo.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "hawaii", all[0].Name)
	assert.Equal(t, "margherita", all[1].Name)
	assert.Equal(t, "pepperoni", all[2].Name)
}

func Test_MemoryCouponRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	repo := catalog.NewMemoryCouponRepository()

	disc := domain.Coupon{Code: "DISC10", Type: domain.CouponPercentage, Rate: decimal.NewFromInt(10)}
	require.NoError(t, repo.Save(ctx, disc))

	got, err := repo.FindByCode(ctx, "DISC10")
	require.NoError(t, err)
	assert.Equal(t, domain.CouponPercentage, got.Type)

	err = repo.Save(ctx, disc)
	assert.Equal(t, domain.ECONFLICT, domain.ErrorCode(err))

	require.NoError(t, repo.Delete(ctx, "DISC10"))

	_, err = repo.FindByCode(ctx, "DISC10")
	assert.Equal(t, domain.ENOTFOUND, domain.ErrorCode(err))

	err = repo.Delete(ctx, "DISC10")
	assert.Equal(t, domain.ENOTFOUND, domain.ErrorCode(err), "deleting twice reports not found")
}

func Test_MemoryCouponRepository_AllSortedByCode(t *testing.T) {
	ctx := context.Background()
	repo := catalog.NewMemoryCouponRepository()

	for _, code := range []string{"HALF50", "BOGO01", "DISC10"} {
		require.NoError(t, repo.Save(ctx, domain.Coupon{Code: code, Type: domain.CouponBuyOneGetOne}))
	}

	all, err := repo.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "BOGO01", all[0].Code)
	assert.Equal(t, "DISC10", all[1].Code)
	assert.Equal(t, "HALF50", all[2].Code)
}
