package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/Erhan1706/microservice-ordering-system/internal"
	"github.com/Erhan1706/microservice-ordering-system/internal/catalog"
	"github.com/Erhan1706/microservice-ordering-system/internal/handler"
	"github.com/Erhan1706/microservice-ordering-system/internal/middleware"
	"github.com/Erhan1706/microservice-ordering-system/internal/rest"
	"github.com/Erhan1706/microservice-ordering-system/internal/router"
	"github.com/Erhan1706/microservice-ordering-system/internal/routes"
	"github.com/Erhan1706/microservice-ordering-system/internal/service"
	"github.com/Erhan1706/microservice-ordering-system/internal/telemetry"
)

func run() error {
	ctx := context.Background()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// ==========================================================================
	// Catalog backend
	// ==========================================================================

	var (
		pizzas      catalog.PizzaRepository
		ingredients catalog.IngredientRepository
		coupons     catalog.CouponRepository
	)

	switch cfg.CatalogBackend {
	case "postgres":
		logger.Info("Connecting to database...")
		sqlDB, err := sql.Open("pgx", cfg.DatabaseUrl)
		if err != nil {
			return fmt.Errorf("database connection failed: %w", err)
		}
		defer sqlDB.Close()

		if err := sqlDB.Ping(); err != nil {
			return fmt.Errorf("database ping failed: %w", err)
		}
		logger.Info("Database connection established")

		logger.Info("Running database migrations...")
		if err := internal.RunMigrations(sqlDB); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		logger.Info("Database migrations completed successfully")

		pool, err := pgxpool.New(ctx, cfg.DatabaseUrl)
		if err != nil {
			return fmt.Errorf("failed to create connection pool: %w", err)
		}
		defer pool.Close()

		pizzas = catalog.NewPostgresPizzaRepository(pool)
		ingredients = catalog.NewPostgresIngredientRepository(pool)
		coupons = catalog.NewPostgresCouponRepository(pool)

	default:
		pizzas = catalog.NewMemoryPizzaRepository()
		ingredients = catalog.NewMemoryIngredientRepository()
		coupons = catalog.NewMemoryCouponRepository()

		if cfg.SeedCatalog {
			logger.Info("Seeding starter catalog...")
			if err := catalog.Seed(ctx, pizzas, ingredients, coupons); err != nil {
				return fmt.Errorf("catalog seed failed: %w", err)
			}
		}
	}

	// ==========================================================================
	// Services
	// ==========================================================================

	peers := rest.NewClient(rest.Config{
		CustomerURL: cfg.Services.CustomerURL,
		StoreURL:    cfg.Services.StoreURL,
		Logger:      logger,
	})

	composer := service.NewPizzaComposer(pizzas, ingredients)
	couponEngine := service.NewCouponEngine(coupons)
	pickupValidator := service.NewPickupTimeValidator(nil)

	basketService := service.NewBasketService(couponEngine, pickupValidator, peers)
	orderService := service.NewOrderService()
	menuService := service.NewMenuService(pizzas, ingredients, coupons, composer, peers)

	// ==========================================================================
	// Middleware and routes
	// ==========================================================================

	metrics := middleware.NewMetrics("ordering")
	telemetry.InitBusinessMetrics("ordering")

	r := router.New(
		router.Recovery(logger),
		middleware.RequestID,
		metrics.Middleware,
		middleware.WithIdentity,
		middleware.WithRequestLogger(logger),
	)

	// Metrics endpoint (no auth required, but should be protected in production via firewall)
	r.Get("/metrics", func(w http.ResponseWriter, req *http.Request) {
		metrics.Handler().ServeHTTP(w, req)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	routes.Register(r, routes.Deps{
		Basket: handler.NewBasketHandler(basketService, composer, orderService, logger),
		Menu:   handler.NewMenuHandler(menuService, logger),
		Order:  handler.NewOrderHandler(orderService, logger),
	})

	// ==========================================================================
	// Start server
	// ==========================================================================

	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.Info("Starting basket server", "address", addr, "catalog_backend", cfg.CatalogBackend)

	if err := http.ListenAndServe(addr, r); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
