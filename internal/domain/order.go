package domain

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

type Order struct {
	ID              uuid.UUID
	OrderNumber     string
	ProductID       uuid.UUID
	Quantity        int
	TotalAmount     int64 // frozen at creation: quantity * unit price at that time
	Status          OrderStatus
	CustomerName    string
	CustomerEmail   string
	DeliveryAddress string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// orderSeq feeds the order number suffix. Monotonic per process, so numbers
// never collide within a run; the store still rejects duplicates coming from
// elsewhere via its unique constraint.
var orderSeq atomic.Uint64

// GenerateOrderNumber returns an ORD-YYYYMMDD-NNNNNN identifier.
func GenerateOrderNumber(now time.Time) string {
	return fmt.Sprintf("ORD-%s-%06d", now.Format("20060102"), orderSeq.Add(1))
}

// NewOrder builds a PENDING order against a product, freezing the total at
// the product's current unit price.
func NewOrder(product *Product, quantity int, customerName, customerEmail, deliveryAddress string) *Order {
	now := time.Now()
	return &Order{
		ID:              uuid.New(),
		OrderNumber:     GenerateOrderNumber(now),
		ProductID:       product.ID,
		Quantity:        quantity,
		TotalAmount:     product.Price * int64(quantity),
		Status:          OrderPending,
		CustomerName:    customerName,
		CustomerEmail:   customerEmail,
		DeliveryAddress: deliveryAddress,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func (o *Order) apply(action OrderAction) error {
	next, err := NextStatus(o.Status, action)
	if err != nil {
		return err
	}
	o.Status = next
	o.UpdatedAt = time.Now()
	return nil
}

func (o *Order) Confirm() error { return o.apply(ActionConfirm) }
func (o *Order) Ship() error    { return o.apply(ActionShip) }
func (o *Order) Deliver() error { return o.apply(ActionDeliver) }
func (o *Order) Cancel() error  { return o.apply(ActionCancel) }

// IsCancellable reports whether the cancel action is still legal.
func (o *Order) IsCancellable() bool {
	_, err := NextStatus(o.Status, ActionCancel)
	return err == nil
}

// MarkPaymentFailed moves a PENDING order to FAILED after its payment was
// declined and the stock reservation rolled back.
func (o *Order) MarkPaymentFailed() error {
	if o.Status != OrderPending {
		return fmt.Errorf("%w: cannot fail order in status %s", ErrInvalidTransition, o.Status)
	}
	o.Status = OrderFailed
	o.UpdatedAt = time.Now()
	return nil
}
