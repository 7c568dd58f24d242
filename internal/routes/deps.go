package routes

import (
	"github.com/Erhan1706/microservice-ordering-system/internal/handler"
)

// Deps contains the handlers the route table wires up.
type Deps struct {
	Basket *handler.BasketHandler
	Menu   *handler.MenuHandler
	Order  *handler.OrderHandler
}
