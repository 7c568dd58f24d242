package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/Erhan1706/microservice-ordering-system/internal/domain"
	"github.com/Erhan1706/microservice-ordering-system/internal/service"
)

// MenuHandler exposes the catalog: menu browsing for customers and
// catalog mutations for stores and managers.
type MenuHandler struct {
	menu     service.MenuService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewMenuHandler creates a new menu handler.
func NewMenuHandler(menu service.MenuService, logger *slog.Logger) *MenuHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &MenuHandler{
		menu:     menu,
		validate: validator.New(),
		logger:   logger,
	}
}

// ingredientView is the wire shape of an ingredient.
type ingredientView struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Price string `json:"price"`
}

// couponView is the wire shape of a coupon.
type couponView struct {
	Code        string `json:"code"`
	Type        string `json:"type"`
	Rate        string `json:"rate,omitempty"`
	LimitedTime bool   `json:"limited_time"`
}

func toCouponView(c domain.Coupon) couponView {
	view := couponView{
		Code:        c.Code,
		Type:        string(c.Type),
		LimitedTime: c.LimitedTime,
	}
	if c.Type == domain.CouponPercentage {
		view.Rate = c.Rate.StringFixed(2)
	}
	return view
}

// Pizzas handles GET /menu/pizzas
// With ?filter_allergens=true the caller's allergy profile is fetched and
// pizzas containing an allergen are excluded.
func (h *MenuHandler) Pizzas(w http.ResponseWriter, r *http.Request) {
	filter := r.URL.Query().Get("filter_allergens") == "true"
	token := bearerToken(r)

	pizzas, err := h.menu.Pizzas(r.Context(), filter, token)
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}

	views := make([]pizzaView, len(pizzas))
	for i, p := range pizzas {
		views[i] = toPizzaView(p)
	}
	respondJSON(w, http.StatusOK, views)
}

// Ingredients handles GET /menu/ingredients
func (h *MenuHandler) Ingredients(w http.ResponseWriter, r *http.Request) {
	all, err := h.menu.Ingredients(r.Context())
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}

	views := make([]ingredientView, len(all))
	for i, ing := range all {
		views[i] = ingredientView{ID: ing.ID, Name: ing.Name, Price: ing.Price.StringFixed(2)}
	}
	respondJSON(w, http.StatusOK, views)
}

// AllergyOptions handles GET /menu/allergy-options
func (h *MenuHandler) AllergyOptions(w http.ResponseWriter, r *http.Request) {
	options, err := h.menu.AllergyOptions(r.Context())
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, options)
}

// Coupons handles GET /menu/coupons
func (h *MenuHandler) Coupons(w http.ResponseWriter, r *http.Request) {
	all, err := h.menu.Coupons(r.Context())
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}

	views := make([]couponView, len(all))
	for i, c := range all {
		views[i] = toCouponView(c)
	}
	respondJSON(w, http.StatusOK, views)
}

// CouponByCode handles GET /menu/coupons/{code}
func (h *MenuHandler) CouponByCode(w http.ResponseWriter, r *http.Request) {
	coupon, err := h.menu.CouponByCode(r.Context(), r.PathValue("code"))
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toCouponView(coupon))
}

type addMenuPizzaRequest struct {
	Name        string   `json:"name" validate:"required"`
	Ingredients []string `json:"ingredients" validate:"required,min=1,dive,required"`
}

// AddPizza handles POST /menu/pizzas
func (h *MenuHandler) AddPizza(w http.ResponseWriter, r *http.Request) {
	var req addMenuPizzaRequest
	if err := decodeJSON(r, &req); err != nil {
		ErrorResponse(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		ErrorResponse(w, r, domain.Invalid("menu.addPizza", "name and at least one ingredient are required"))
		return
	}

	pizza, err := h.menu.AddPizza(r.Context(), req.Name, req.Ingredients)
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, toPizzaView(pizza))
}

type addIngredientRequest struct {
	Name  string `json:"name" validate:"required"`
	Price string `json:"price" validate:"required"`
}

// AddIngredient handles POST /menu/ingredients
func (h *MenuHandler) AddIngredient(w http.ResponseWriter, r *http.Request) {
	var req addIngredientRequest
	if err := decodeJSON(r, &req); err != nil {
		ErrorResponse(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		ErrorResponse(w, r, domain.Invalid("menu.addIngredient", "name and price are required"))
		return
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		ErrorResponse(w, r, domain.Invalid("menu.addIngredient", "price must be a decimal number"))
		return
	}

	ingredient, err := h.menu.AddIngredient(r.Context(), req.Name, price)
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, ingredientView{
		ID:    ingredient.ID,
		Name:  ingredient.Name,
		Price: ingredient.Price.StringFixed(2),
	})
}

type addCouponRequest struct {
	Code        string `json:"code" validate:"required"`
	Type        string `json:"type" validate:"required,oneof=percentage buy_one_get_one other"`
	Rate        string `json:"rate"`
	LimitedTime bool   `json:"limited_time"`
}

// AddCoupon handles POST /menu/coupons
func (h *MenuHandler) AddCoupon(w http.ResponseWriter, r *http.Request) {
	var req addCouponRequest
	if err := decodeJSON(r, &req); err != nil {
		ErrorResponse(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		ErrorResponse(w, r, domain.Invalid("menu.addCoupon", "code and a known type are required"))
		return
	}

	coupon := domain.Coupon{
		Code:        req.Code,
		Type:        domain.CouponType(req.Type),
		LimitedTime: req.LimitedTime,
	}
	if coupon.Type == domain.CouponPercentage {
		rate, err := decimal.NewFromString(req.Rate)
		if err != nil || rate.LessThanOrEqual(decimal.Zero) || rate.GreaterThan(decimal.NewFromInt(100)) {
			ErrorResponse(w, r, domain.Invalid("menu.addCoupon", "rate must be a percentage between 0 and 100"))
			return
		}
		coupon.Rate = rate
	}

	if err := h.menu.AddCoupon(r.Context(), coupon); err != nil {
		ErrorResponse(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, toCouponView(coupon))
}

// DeleteCoupon handles DELETE /menu/coupons/{code}
func (h *MenuHandler) DeleteCoupon(w http.ResponseWriter, r *http.Request) {
	if err := h.menu.DeleteCoupon(r.Context(), r.PathValue("code")); err != nil {
		ErrorResponse(w, r, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// bearerToken extracts the bearer token from the Authorization header.
func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(auth, "Bearer "); ok {
		return token
	}
	return ""
}
