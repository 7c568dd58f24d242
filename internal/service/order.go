package service

import (
	"context"
	"sort"
	"sync"

	"github.com/Erhan1706/microservice-ordering-system/internal/domain"
)

// OrderService is the minimal order lifecycle: baskets become placed orders
// at checkout, and placed orders can be listed and cancelled. Cancelled is
// terminal; fulfillment states live elsewhere.
type OrderService interface {
	// Place freezes a checked-out basket into a Placed order.
	Place(ctx context.Context, summary *BasketSummary) (*domain.Order, error)

	// SeeOrders lists all orders, oldest first.
	SeeOrders(ctx context.Context) ([]domain.Order, error)

	// CancelOrder transitions a Placed order to Cancelled and returns it.
	// Unknown and already-cancelled IDs both fail with ErrIllegalOrderID.
	CancelOrder(ctx context.Context, id int) (*domain.Order, error)
}

type orderService struct {
	mu     sync.Mutex
	orders map[int]*domain.Order
	nextID int
}

// NewOrderService creates the in-memory order lifecycle.
func NewOrderService() OrderService {
	return &orderService{
		orders: make(map[int]*domain.Order),
		nextID: 1,
	}
}

func (s *orderService) Place(ctx context.Context, summary *BasketSummary) (*domain.Order, error) {
	if summary == nil || summary.Basket == nil {
		return nil, ErrBasketNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	order := &domain.Order{
		ID:         s.nextID,
		CustomerID: summary.Basket.CustomerID,
		Pizzas:     summary.Basket.Pizzas,
		Total:      summary.Total,
		Status:     domain.OrderPlaced,
		PickupTime: summary.Basket.PickupTime,
		StoreID:    summary.Basket.StoreID,
	}
	s.nextID++
	s.orders[order.ID] = order

	copied := *order
	return &copied, nil
}

func (s *orderService) SeeOrders(ctx context.Context) ([]domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := make([]domain.Order, 0, len(s.orders))
	for _, order := range s.orders {
		all = append(all, *order)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all, nil
}

func (s *orderService) CancelOrder(ctx context.Context, id int) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[id]
	if !ok || order.Status != domain.OrderPlaced {
		return nil, ErrIllegalOrderID
	}
	order.Status = domain.OrderCancelled

	copied := *order
	return &copied, nil
}
