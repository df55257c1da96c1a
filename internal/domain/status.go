package domain

import "fmt"

type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderConfirmed OrderStatus = "CONFIRMED"
	OrderShipped   OrderStatus = "SHIPPED"
	OrderDelivered OrderStatus = "DELIVERED"
	OrderCancelled OrderStatus = "CANCELLED"
	// OrderFailed marks an order whose payment was declined after the stock
	// reservation was already compensated. Terminal.
	OrderFailed OrderStatus = "FAILED"
)

type OrderAction string

const (
	ActionConfirm OrderAction = "confirm"
	ActionShip    OrderAction = "ship"
	ActionDeliver OrderAction = "deliver"
	ActionCancel  OrderAction = "cancel"
)

// transitions is the full lifecycle graph. A (status, action) pair absent
// from the table is an illegal transition; statuses absent entirely
// (DELIVERED, CANCELLED, FAILED) are terminal.
var transitions = map[OrderStatus]map[OrderAction]OrderStatus{
	OrderPending: {
		ActionConfirm: OrderConfirmed,
		ActionCancel:  OrderCancelled,
	},
	OrderConfirmed: {
		ActionShip:   OrderShipped,
		ActionCancel: OrderCancelled,
	},
	OrderShipped: {
		ActionDeliver: OrderDelivered,
		ActionCancel:  OrderCancelled,
	},
}

// NextStatus resolves a lifecycle action against the transition table.
func NextStatus(current OrderStatus, action OrderAction) (OrderStatus, error) {
	next, ok := transitions[current][action]
	if !ok {
		return current, fmt.Errorf("%w: cannot %s order in status %s", ErrInvalidTransition, action, current)
	}
	return next, nil
}

// IsTerminal reports whether no action can move the order further.
func (s OrderStatus) IsTerminal() bool {
	return len(transitions[s]) == 0
}
