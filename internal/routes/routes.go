package routes

import (
	"github.com/Erhan1706/microservice-ordering-system/internal/middleware"
	"github.com/Erhan1706/microservice-ordering-system/internal/router"
)

// Register registers all API routes.
//
// Basket routes are customer-scoped: the basket is addressed by the identity
// in the request context, so they all require one. Catalog reads are open;
// catalog writes require the store or manager role.
func Register(r *router.Router, deps Deps) {
	// Basket lifecycle
	basket := r.Group(middleware.RequireIdentity)
	basket.Get("/basket", deps.Basket.View)
	basket.Post("/basket", deps.Basket.Create)
	basket.Get("/basket/overview", deps.Basket.Overview)
	basket.Post("/basket/pizzas", deps.Basket.AddPizza)
	basket.Post("/basket/pizzas/custom", deps.Basket.AddCustomPizza)
	basket.Delete("/basket/pizzas/{name}", deps.Basket.RemovePizza)
	basket.Post("/basket/coupon", deps.Basket.ApplyCoupon)
	basket.Delete("/basket/coupon", deps.Basket.RemoveCoupon)
	basket.Post("/basket/time", deps.Basket.SelectTime)
	basket.Post("/basket/store", deps.Basket.SetStore)
	basket.Post("/basket/checkout", deps.Basket.Checkout)

	// Menu browsing
	r.Get("/menu/pizzas", deps.Menu.Pizzas)
	r.Get("/menu/ingredients", deps.Menu.Ingredients)
	r.Get("/menu/allergy-options", deps.Menu.AllergyOptions)
	r.Get("/menu/coupons", deps.Menu.Coupons)
	r.Get("/menu/coupons/{code}", deps.Menu.CouponByCode)

	// Catalog mutations
	writers := r.Group(middleware.RequireIdentity)
	writers.Post("/menu/pizzas", deps.Menu.AddPizza)
	writers.Post("/menu/ingredients", deps.Menu.AddIngredient)
	writers.Post("/menu/coupons", deps.Menu.AddCoupon)
	writers.Delete("/menu/coupons/{code}", deps.Menu.DeleteCoupon)

	// Order lifecycle
	orders := r.Group(middleware.RequireIdentity)
	orders.Get("/orders", deps.Order.List)
	orders.Post("/orders/{id}/cancel", deps.Order.Cancel)
}
