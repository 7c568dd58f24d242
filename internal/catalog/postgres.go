package catalog

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/Erhan1706/microservice-ordering-system/internal/domain"
)

// Compile-time checks that the Postgres repositories satisfy the interfaces.
var (
	_ PizzaRepository      = (*PostgresPizzaRepository)(nil)
	_ IngredientRepository = (*PostgresIngredientRepository)(nil)
	_ CouponRepository     = (*PostgresCouponRepository)(nil)
)

// PostgresPizzaRepository is a PizzaRepository backed by PostgreSQL.
// Ingredient order within a pizza is preserved via the position column.
type PostgresPizzaRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresPizzaRepository creates a PostgreSQL-backed pizza repository.
func NewPostgresPizzaRepository(pool *pgxpool.Pool) *PostgresPizzaRepository {
	return &PostgresPizzaRepository{pool: pool}
}

func (r *PostgresPizzaRepository) FindByName(ctx context.Context, name string) (domain.Pizza, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT i.id, i.name, i.price::text
		FROM pizzas p
		JOIN pizza_ingredients pi ON pi.pizza_id = p.id
		JOIN ingredients i ON i.id = pi.ingredient_id
		WHERE p.name = $1
		ORDER BY pi.position`, name)
	if err != nil {
		return domain.Pizza{}, domain.Internal(err, "catalog.pizza", "failed to query pizza")
	}
	defer rows.Close()

	ingredients, err := scanIngredients(rows)
	if err != nil {
		return domain.Pizza{}, err
	}
	if len(ingredients) == 0 {
		return domain.Pizza{}, domain.NotFound("catalog.pizza", "pizza", name)
	}
	return domain.NewPizza(name, ingredients)
}

func (r *PostgresPizzaRepository) All(ctx context.Context) ([]domain.Pizza, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT p.name, i.id, i.name, i.price::text
		FROM pizzas p
		JOIN pizza_ingredients pi ON pi.pizza_id = p.id
		JOIN ingredients i ON i.id = pi.ingredient_id
		ORDER BY p.name, pi.position`)
	if err != nil {
		return nil, domain.Internal(err, "catalog.pizza", "failed to list pizzas")
	}
	defer rows.Close()

	var (
		pizzas      []domain.Pizza
		currentName string
		ingredients []domain.Ingredient
	)
	flush := func() error {
		if currentName == "" {
			return nil
		}
		pizza, err := domain.NewPizza(currentName, ingredients)
		if err != nil {
			return err
		}
		pizzas = append(pizzas, pizza)
		return nil
	}
	for rows.Next() {
		var (
			pizzaName, price string
			ing              domain.Ingredient
		)
		if err := rows.Scan(&pizzaName, &ing.ID, &ing.Name, &price); err != nil {
			return nil, domain.Internal(err, "catalog.pizza", "failed to scan pizza row")
		}
		if ing.Price, err = decimal.NewFromString(price); err != nil {
			return nil, domain.Internal(err, "catalog.pizza", "invalid ingredient price")
		}
		if pizzaName != currentName {
			if err := flush(); err != nil {
				return nil, err
			}
			currentName = pizzaName
			ingredients = nil
		}
		ingredients = append(ingredients, ing)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Internal(err, "catalog.pizza", "failed to read pizza rows")
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return pizzas, nil
}

func (r *PostgresPizzaRepository) Save(ctx context.Context, pizza domain.Pizza) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return domain.Internal(err, "catalog.pizza", "failed to begin transaction")
	}
	defer tx.Rollback(ctx)

	var pizzaID int64
	err = tx.QueryRow(ctx, `
		INSERT INTO pizzas (name) VALUES ($1)
		ON CONFLICT (name) DO NOTHING
		RETURNING id`, pizza.Name).Scan(&pizzaID)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Conflict("catalog.pizza", "pizza already exists: "+pizza.Name)
	}
	if err != nil {
		return domain.Internal(err, "catalog.pizza", "failed to insert pizza")
	}

	for position, ing := range pizza.Ingredients {
		if _, err := tx.Exec(ctx, `
			INSERT INTO pizza_ingredients (pizza_id, ingredient_id, position)
			VALUES ($1, $2, $3)`, pizzaID, ing.ID, position); err != nil {
			return domain.Internal(err, "catalog.pizza", "failed to insert pizza ingredient")
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return domain.Internal(err, "catalog.pizza", "failed to commit pizza")
	}
	return nil
}

// PostgresIngredientRepository is an IngredientRepository backed by PostgreSQL.
type PostgresIngredientRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresIngredientRepository creates a PostgreSQL-backed ingredient repository.
func NewPostgresIngredientRepository(pool *pgxpool.Pool) *PostgresIngredientRepository {
	return &PostgresIngredientRepository{pool: pool}
}

func (r *PostgresIngredientRepository) FindByName(ctx context.Context, name string) (domain.Ingredient, error) {
	return r.findOne(ctx, `SELECT id, name, price::text FROM ingredients WHERE name = $1`, name)
}

func (r *PostgresIngredientRepository) FindByID(ctx context.Context, id int64) (domain.Ingredient, error) {
	return r.findOne(ctx, `SELECT id, name, price::text FROM ingredients WHERE id = $1`, id)
}

func (r *PostgresIngredientRepository) findOne(ctx context.Context, query string, arg any) (domain.Ingredient, error) {
	var (
		ing   domain.Ingredient
		price string
	)
	err := r.pool.QueryRow(ctx, query, arg).Scan(&ing.ID, &ing.Name, &price)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Ingredient{}, domain.Errorf(domain.ENOTFOUND, "catalog.ingredient", "ingredient not found: %v", arg)
	}
	if err != nil {
		return domain.Ingredient{}, domain.Internal(err, "catalog.ingredient", "failed to query ingredient")
	}
	if ing.Price, err = decimal.NewFromString(price); err != nil {
		return domain.Ingredient{}, domain.Internal(err, "catalog.ingredient", "invalid ingredient price")
	}
	return ing, nil
}

func (r *PostgresIngredientRepository) All(ctx context.Context) ([]domain.Ingredient, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, price::text FROM ingredients ORDER BY id`)
	if err != nil {
		return nil, domain.Internal(err, "catalog.ingredient", "failed to list ingredients")
	}
	defer rows.Close()
	return scanIngredients(rows)
}

func (r *PostgresIngredientRepository) Save(ctx context.Context, ingredient domain.Ingredient) (domain.Ingredient, error) {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO ingredients (name, price) VALUES ($1, $2)
		ON CONFLICT (name) DO NOTHING
		RETURNING id`, ingredient.Name, ingredient.Price.String()).Scan(&ingredient.ID)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Ingredient{}, domain.Conflict("catalog.ingredient", "ingredient already exists: "+ingredient.Name)
	}
	if err != nil {
		return domain.Ingredient{}, domain.Internal(err, "catalog.ingredient", "failed to insert ingredient")
	}
	return ingredient, nil
}

// PostgresCouponRepository is a CouponRepository backed by PostgreSQL.
type PostgresCouponRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresCouponRepository creates a PostgreSQL-backed coupon repository.
func NewPostgresCouponRepository(pool *pgxpool.Pool) *PostgresCouponRepository {
	return &PostgresCouponRepository{pool: pool}
}

func (r *PostgresCouponRepository) FindByCode(ctx context.Context, code string) (domain.Coupon, error) {
	var (
		coupon domain.Coupon
		rate   string
	)
	err := r.pool.QueryRow(ctx, `
		SELECT code, type, rate::text, limited_time
		FROM coupons WHERE code = $1`, code).
		Scan(&coupon.Code, &coupon.Type, &rate, &coupon.LimitedTime)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Coupon{}, domain.NotFound("catalog.coupon", "coupon", code)
	}
	if err != nil {
		return domain.Coupon{}, domain.Internal(err, "catalog.coupon", "failed to query coupon")
	}
	if coupon.Rate, err = decimal.NewFromString(rate); err != nil {
		return domain.Coupon{}, domain.Internal(err, "catalog.coupon", "invalid coupon rate")
	}
	return coupon, nil
}

func (r *PostgresCouponRepository) All(ctx context.Context) ([]domain.Coupon, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT code, type, rate::text, limited_time FROM coupons ORDER BY code`)
	if err != nil {
		return nil, domain.Internal(err, "catalog.coupon", "failed to list coupons")
	}
	defer rows.Close()

	var coupons []domain.Coupon
	for rows.Next() {
		var (
			coupon domain.Coupon
			rate   string
		)
		if err := rows.Scan(&coupon.Code, &coupon.Type, &rate, &coupon.LimitedTime); err != nil {
			return nil, domain.Internal(err, "catalog.coupon", "failed to scan coupon row")
		}
		if coupon.Rate, err = decimal.NewFromString(rate); err != nil {
			return nil, domain.Internal(err, "catalog.coupon", "invalid coupon rate")
		}
		coupons = append(coupons, coupon)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Internal(err, "catalog.coupon", "failed to read coupon rows")
	}
	return coupons, nil
}

func (r *PostgresCouponRepository) Save(ctx context.Context, coupon domain.Coupon) error {
	tag, err := r.pool.Exec(ctx, `
		INSERT INTO coupons (code, type, rate, limited_time) VALUES ($1, $2, $3, $4)
		ON CONFLICT (code) DO NOTHING`,
		coupon.Code, string(coupon.Type), coupon.Rate.String(), coupon.LimitedTime)
	if err != nil {
		return domain.Internal(err, "catalog.coupon", "failed to insert coupon")
	}
	if tag.RowsAffected() == 0 {
		return domain.Conflict("catalog.coupon", "coupon code already exists: "+coupon.Code)
	}
	return nil
}

func (r *PostgresCouponRepository) Delete(ctx context.Context, code string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM coupons WHERE code = $1`, code)
	if err != nil {
		return domain.Internal(err, "catalog.coupon", "failed to delete coupon")
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("catalog.coupon", "coupon", code)
	}
	return nil
}

// scanIngredients reads (id, name, price::text) rows into ingredients.
func scanIngredients(rows pgx.Rows) ([]domain.Ingredient, error) {
	var ingredients []domain.Ingredient
	for rows.Next() {
		var (
			ing   domain.Ingredient
			price string
		)
		if err := rows.Scan(&ing.ID, &ing.Name, &price); err != nil {
			return nil, domain.Internal(err, "catalog.ingredient", "failed to scan ingredient row")
		}
		var err error
		if ing.Price, err = decimal.NewFromString(price); err != nil {
			return nil, domain.Internal(err, "catalog.ingredient", "invalid ingredient price")
		}
		ingredients = append(ingredients, ing)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Internal(err, "catalog.ingredient", "failed to read ingredient rows")
	}
	return ingredients, nil
}
