package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Erhan1706/microservice-ordering-system/internal/domain"
	"github.com/Erhan1706/microservice-ordering-system/internal/service"
	"github.com/Erhan1706/microservice-ordering-system/internal/telemetry"
)

// BasketHandler exposes the basket lifecycle over HTTP. All routes require
// an authenticated customer; the basket is addressed by the identity in ctx.
type BasketHandler struct {
	baskets  service.BasketService
	composer *service.PizzaComposer
	orders   service.OrderService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewBasketHandler creates a new basket handler.
func NewBasketHandler(
	baskets service.BasketService,
	composer *service.PizzaComposer,
	orders service.OrderService,
	logger *slog.Logger,
) *BasketHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &BasketHandler{
		baskets:  baskets,
		composer: composer,
		orders:   orders,
		validate: validator.New(),
		logger:   logger,
	}
}

// pizzaView is the wire shape of a pizza.
type pizzaView struct {
	Name        string   `json:"name"`
	Ingredients []string `json:"ingredients"`
	Price       string   `json:"price"`
}

// basketView is the wire shape of a priced basket snapshot.
type basketView struct {
	CustomerID string      `json:"customer_id"`
	Pizzas     []pizzaView `json:"pizzas"`
	Coupon     *string     `json:"coupon,omitempty"`
	PickupTime *time.Time  `json:"pickup_time,omitempty"`
	StoreID    *int        `json:"store_id,omitempty"`
	Total      string      `json:"total"`
}

func toPizzaView(p domain.Pizza) pizzaView {
	ingredients := make([]string, len(p.Ingredients))
	for i, ing := range p.Ingredients {
		ingredients[i] = ing.Name
	}
	return pizzaView{
		Name:        p.Name,
		Ingredients: ingredients,
		Price:       p.Price.StringFixed(2),
	}
}

func toBasketView(s *service.BasketSummary) basketView {
	view := basketView{
		CustomerID: s.Basket.CustomerID,
		Pizzas:     make([]pizzaView, len(s.Basket.Pizzas)),
		PickupTime: s.Basket.PickupTime,
		StoreID:    s.Basket.StoreID,
		Total:      s.Total.StringFixed(2),
	}
	for i, p := range s.Basket.Pizzas {
		view.Pizzas[i] = toPizzaView(p)
	}
	if s.Basket.Coupon != nil {
		code := s.Basket.Coupon.Code
		view.Coupon = &code
	}
	return view
}

// View handles GET /basket
func (h *BasketHandler) View(w http.ResponseWriter, r *http.Request) {
	customerID := domain.CustomerIDFromContext(r.Context())

	summary, err := h.baskets.Get(r.Context(), customerID)
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toBasketView(summary))
}

// Create handles POST /basket
// Creating a basket is idempotent; an existing one is returned as is.
func (h *BasketHandler) Create(w http.ResponseWriter, r *http.Request) {
	customerID := domain.CustomerIDFromContext(r.Context())

	if err := h.baskets.Create(r.Context(), customerID); err != nil {
		ErrorResponse(w, r, err)
		return
	}
	summary, err := h.baskets.Get(r.Context(), customerID)
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}

	if telemetry.Business != nil {
		telemetry.Business.BasketsCreated.WithLabelValues().Inc()
	}
	respondJSON(w, http.StatusOK, toBasketView(summary))
}

// Overview handles GET /basket/overview
// It renders the basket as display lines: one per pizza, the applied coupon,
// the total, and the pickup time once one is selected.
func (h *BasketHandler) Overview(w http.ResponseWriter, r *http.Request) {
	customerID := domain.CustomerIDFromContext(r.Context())

	summary, err := h.baskets.Get(r.Context(), customerID)
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}

	lines := make([]string, 0, len(summary.Basket.Pizzas)+3)
	for _, p := range summary.Basket.Pizzas {
		lines = append(lines, fmt.Sprintf("%s - %s", p.Name, p.Price.StringFixed(2)))
	}
	lines = append(lines, "Coupon applied: "+couponSummary(summary.Basket.Coupon))
	lines = append(lines, fmt.Sprintf("Total: %s", summary.Total.StringFixed(2)))
	if summary.Basket.PickupTime != nil {
		lines = append(lines, fmt.Sprintf("Your order will be ready at %s",
			summary.Basket.PickupTime.Format("2006-01-02 15:04")))
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"lines": lines})
}

// couponSummary renders a coupon for the basket overview.
func couponSummary(c *domain.Coupon) string {
	if c == nil {
		return "None"
	}
	switch c.Type {
	case domain.CouponPercentage:
		return fmt.Sprintf("%s (%s%% discount)", c.Code, c.Rate.String())
	case domain.CouponBuyOneGetOne:
		return fmt.Sprintf("%s (buy one get one free)", c.Code)
	default:
		return c.Code
	}
}

type addPizzaRequest struct {
	Name string `json:"name" validate:"required"`
}

// AddPizza handles POST /basket/pizzas
func (h *BasketHandler) AddPizza(w http.ResponseWriter, r *http.Request) {
	customerID := domain.CustomerIDFromContext(r.Context())

	var req addPizzaRequest
	if err := decodeJSON(r, &req); err != nil {
		ErrorResponse(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		ErrorResponse(w, r, domain.Invalid("basket.addPizza", "name is required"))
		return
	}

	pizza, err := h.composer.FromMenu(r.Context(), req.Name)
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}

	summary, err := h.baskets.AddPizza(r.Context(), customerID, pizza)
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}

	if telemetry.Business != nil {
		telemetry.Business.PizzasAdded.WithLabelValues("menu").Inc()
	}
	respondJSON(w, http.StatusOK, toBasketView(summary))
}

type addCustomPizzaRequest struct {
	Name        string   `json:"name" validate:"required"`
	Ingredients []string `json:"ingredients" validate:"required,min=1,dive,required"`
}

// AddCustomPizza handles POST /basket/pizzas/custom
func (h *BasketHandler) AddCustomPizza(w http.ResponseWriter, r *http.Request) {
	customerID := domain.CustomerIDFromContext(r.Context())

	var req addCustomPizzaRequest
	if err := decodeJSON(r, &req); err != nil {
		ErrorResponse(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		ErrorResponse(w, r, domain.Invalid("basket.addCustomPizza", "name and at least one ingredient are required"))
		return
	}

	pizza, err := h.composer.Custom(r.Context(), req.Name, req.Ingredients)
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}

	summary, err := h.baskets.AddPizza(r.Context(), customerID, pizza)
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}

	if telemetry.Business != nil {
		telemetry.Business.PizzasAdded.WithLabelValues("custom").Inc()
	}
	respondJSON(w, http.StatusOK, toBasketView(summary))
}

// RemovePizza handles DELETE /basket/pizzas/{name}
func (h *BasketHandler) RemovePizza(w http.ResponseWriter, r *http.Request) {
	customerID := domain.CustomerIDFromContext(r.Context())
	name := r.PathValue("name")
	if name == "" {
		ErrorResponse(w, r, domain.Invalid("basket.removePizza", "pizza name is required"))
		return
	}

	summary, err := h.baskets.RemovePizza(r.Context(), customerID, name)
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}

	if telemetry.Business != nil {
		telemetry.Business.BasketUpdated.WithLabelValues("remove").Inc()
	}
	respondJSON(w, http.StatusOK, toBasketView(summary))
}

type applyCouponRequest struct {
	Code string `json:"code" validate:"required"`
}

// ApplyCoupon handles POST /basket/coupon
func (h *BasketHandler) ApplyCoupon(w http.ResponseWriter, r *http.Request) {
	customerID := domain.CustomerIDFromContext(r.Context())

	var req applyCouponRequest
	if err := decodeJSON(r, &req); err != nil {
		ErrorResponse(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		ErrorResponse(w, r, domain.Invalid("basket.applyCoupon", "code is required"))
		return
	}

	summary, err := h.baskets.ApplyCoupon(r.Context(), customerID, req.Code)
	if err != nil {
		recordCouponRejection(err)
		ErrorResponse(w, r, err)
		return
	}

	if telemetry.Business != nil && summary.Basket.Coupon != nil {
		telemetry.Business.CouponsApplied.WithLabelValues(string(summary.Basket.Coupon.Type)).Inc()
	}
	respondJSON(w, http.StatusOK, toBasketView(summary))
}

func recordCouponRejection(err error) {
	if telemetry.Business == nil {
		return
	}
	var reason string
	switch {
	case domain.IsCode(err, domain.EINVALID):
		reason = "malformed"
	case domain.IsCode(err, domain.ENOTFOUND):
		reason = "not_found"
	case domain.IsCode(err, domain.ECONFLICT):
		reason = "duplicate_or_not_cheaper"
	default:
		return
	}
	telemetry.Business.CouponsRejected.WithLabelValues(reason).Inc()
}

// RemoveCoupon handles DELETE /basket/coupon
func (h *BasketHandler) RemoveCoupon(w http.ResponseWriter, r *http.Request) {
	customerID := domain.CustomerIDFromContext(r.Context())

	summary, err := h.baskets.RemoveCoupon(r.Context(), customerID)
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}

	if telemetry.Business != nil {
		telemetry.Business.CouponsRemoved.WithLabelValues().Inc()
	}
	respondJSON(w, http.StatusOK, toBasketView(summary))
}

type selectTimeRequest struct {
	Tomorrow bool `json:"tomorrow"`
	Hour     int  `json:"hour" validate:"min=0,max=23"`
	Minute   int  `json:"minute" validate:"min=0,max=59"`
}

// SelectTime handles POST /basket/time
func (h *BasketHandler) SelectTime(w http.ResponseWriter, r *http.Request) {
	customerID := domain.CustomerIDFromContext(r.Context())

	var req selectTimeRequest
	if err := decodeJSON(r, &req); err != nil {
		ErrorResponse(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		ErrorResponse(w, r, domain.Invalid("basket.selectTime", "hour must be 0-23 and minute 0-59"))
		return
	}

	summary, err := h.baskets.SelectTime(r.Context(), customerID, req.Tomorrow, req.Hour, req.Minute)
	if err != nil {
		if telemetry.Business != nil && domain.IsCode(err, domain.EPOLICY) {
			telemetry.Business.PickupTimeRejected.WithLabelValues("past").Inc()
		}
		ErrorResponse(w, r, err)
		return
	}

	if telemetry.Business != nil {
		day := "today"
		if req.Tomorrow {
			day = "tomorrow"
		}
		telemetry.Business.PickupTimeSet.WithLabelValues(day).Inc()
	}
	respondJSON(w, http.StatusOK, toBasketView(summary))
}

type setStoreRequest struct {
	StoreID int `json:"store_id" validate:"min=1"`
}

// SetStore handles POST /basket/store
func (h *BasketHandler) SetStore(w http.ResponseWriter, r *http.Request) {
	customerID := domain.CustomerIDFromContext(r.Context())

	var req setStoreRequest
	if err := decodeJSON(r, &req); err != nil {
		ErrorResponse(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		ErrorResponse(w, r, domain.Invalid("basket.setStore", "store_id must be positive"))
		return
	}

	summary, err := h.baskets.SetStorePreference(r.Context(), customerID, req.StoreID)
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}

	if telemetry.Business != nil {
		telemetry.Business.BasketUpdated.WithLabelValues("set_store").Inc()
	}
	respondJSON(w, http.StatusOK, toBasketView(summary))
}

// Checkout handles POST /basket/checkout
// The basket is priced, destroyed, and frozen into a placed order in one step.
func (h *BasketHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	customerID := domain.CustomerIDFromContext(r.Context())

	summary, err := h.baskets.Checkout(r.Context(), customerID)
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}

	order, err := h.orders.Place(r.Context(), summary)
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}

	if telemetry.Business != nil {
		telemetry.Business.OrdersPlaced.WithLabelValues().Inc()
		total, _ := order.Total.Float64()
		telemetry.Business.OrderValue.WithLabelValues().Observe(total)
		telemetry.Business.BasketItemCount.WithLabelValues().Observe(float64(len(order.Pizzas)))
	}
	respondJSON(w, http.StatusCreated, toOrderView(order))
}
