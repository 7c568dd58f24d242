package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/Erhan1706/microservice-ordering-system/internal/domain"
	"github.com/Erhan1706/microservice-ordering-system/internal/service"
	"github.com/Erhan1706/microservice-ordering-system/internal/telemetry"
)

// OrderHandler exposes the placed-order lifecycle.
type OrderHandler struct {
	orders service.OrderService
	logger *slog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(orders service.OrderService, logger *slog.Logger) *OrderHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &OrderHandler{orders: orders, logger: logger}
}

// orderView is the wire shape of an order.
type orderView struct {
	ID         int         `json:"id"`
	CustomerID string      `json:"customer_id"`
	Pizzas     []pizzaView `json:"pizzas"`
	Total      string      `json:"total"`
	Status     string      `json:"status"`
	PickupTime *time.Time  `json:"pickup_time,omitempty"`
	StoreID    *int        `json:"store_id,omitempty"`
}

func toOrderView(o *domain.Order) orderView {
	view := orderView{
		ID:         o.ID,
		CustomerID: o.CustomerID,
		Pizzas:     make([]pizzaView, len(o.Pizzas)),
		Total:      o.Total.StringFixed(2),
		Status:     string(o.Status),
		PickupTime: o.PickupTime,
		StoreID:    o.StoreID,
	}
	for i, p := range o.Pizzas {
		view.Pizzas[i] = toPizzaView(p)
	}
	return view
}

// List handles GET /orders
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	all, err := h.orders.SeeOrders(r.Context())
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}

	views := make([]orderView, len(all))
	for i := range all {
		views[i] = toOrderView(&all[i])
	}
	respondJSON(w, http.StatusOK, views)
}

// Cancel handles POST /orders/{id}/cancel
func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		ErrorResponse(w, r, domain.Invalid("order.cancel", "order ID must be a number"))
		return
	}

	order, err := h.orders.CancelOrder(r.Context(), id)
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}

	if telemetry.Business != nil {
		telemetry.Business.OrdersCancelled.WithLabelValues().Inc()
	}
	respondJSON(w, http.StatusOK, toOrderView(order))
}
