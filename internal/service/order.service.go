package service

import (
	"context"
	"fmt"
	"log"
	"retail-orders/internal/domain"
	"retail-orders/internal/infrastructure/payment"
	"retail-orders/internal/inventory"
	"retail-orders/internal/repo"
	"retail-orders/internal/telemetry"

	"github.com/google/uuid"
)

// Telemetry event names emitted by the order service.
const (
	eventOrderCreated   = "order_created"
	eventOrderCancelled = "order_cancelled"
	eventPaymentFailed  = "payment_failed"
	eventRefundFailed   = "refund_failed"
)

// CreateOrderInput is the validated purchase request handed to the
// orchestrator by the transport layer.
type CreateOrderInput struct {
	ProductID       uuid.UUID
	Quantity        int
	CustomerName    string
	CustomerEmail   string
	DeliveryAddress string
}

// OrderService drives an order through its lifecycle, coordinating the
// inventory ledger, the payment gateway and the storage collaborator so that
// each operation looks atomic to the caller, with compensation on partial
// failure.
type OrderService interface {
	CreateOrder(ctx context.Context, in CreateOrderInput) (*domain.Order, error)
	ConfirmOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	ShipOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	DeliverOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	CancelOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error)

	FindAll(ctx context.Context) ([]domain.Order, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	FindByNumber(ctx context.Context, orderNumber string) (*domain.Order, error)
	FindByCustomerEmail(ctx context.Context, email string) ([]domain.Order, error)
}

type orderService struct {
	productRepo repo.ProductRepo
	orderRepo   repo.OrderRepo
	ledger      *inventory.Ledger
	gateway     payment.Gateway
	metrics     telemetry.Sink
}

func NewOrderService(
	productRepo repo.ProductRepo,
	orderRepo repo.OrderRepo,
	ledger *inventory.Ledger,
	gateway payment.Gateway,
	metrics telemetry.Sink,
) OrderService {
	return &orderService{
		productRepo: productRepo,
		orderRepo:   orderRepo,
		ledger:      ledger,
		gateway:     gateway,
		metrics:     metrics,
	}
}

func (s *orderService) CreateOrder(ctx context.Context, in CreateOrderInput) (*domain.Order, error) {
	product, err := s.productRepo.FindByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrProductNotFound, in.ProductID)
	}

	// Reserve first: when stock is short the operation aborts before any
	// order record exists.
	if _, err := s.ledger.Reserve(ctx, product.ID, in.Quantity); err != nil {
		return nil, err
	}

	order := domain.NewOrder(product, in.Quantity, in.CustomerName, in.CustomerEmail, in.DeliveryAddress)
	if err := s.orderRepo.Create(ctx, order); err != nil {
		// The reservation must not outlive the failed create.
		s.compensateReservation(ctx, product.ID, in.Quantity)
		return nil, err
	}

	if !s.gateway.Pay(ctx, order.OrderNumber, order.TotalAmount) {
		s.compensateReservation(ctx, product.ID, in.Quantity)
		s.markPaymentFailed(ctx, order)
		s.metrics.IncrementCounter(eventPaymentFailed)
		return nil, fmt.Errorf("%w: order %s", domain.ErrPaymentFailed, order.OrderNumber)
	}

	s.metrics.IncrementCounter(eventOrderCreated)
	s.metrics.RecordDistribution(eventOrderCreated, float64(order.TotalAmount))
	log.Printf("[order] created id=%s number=%s amount=%d", order.ID, order.OrderNumber, order.TotalAmount)
	return order, nil
}

// compensateReservation returns reserved stock after a downstream failure.
// Best effort: the original failure is what the caller needs to see.
func (s *orderService) compensateReservation(ctx context.Context, productID uuid.UUID, quantity int) {
	if err := s.ledger.Release(ctx, productID, quantity); err != nil {
		log.Printf("[order] WARN compensation failed product=%s qty=%d: %v", productID, quantity, err)
	}
}

// markPaymentFailed pins the orphaned PENDING record to FAILED so it cannot
// be mistaken for a live order.
func (s *orderService) markPaymentFailed(ctx context.Context, order *domain.Order) {
	if err := order.MarkPaymentFailed(); err != nil {
		log.Printf("[order] WARN cannot mark order %s failed: %v", order.OrderNumber, err)
		return
	}
	if err := s.orderRepo.Update(ctx, order); err != nil {
		log.Printf("[order] WARN persisting FAILED status for %s: %v", order.OrderNumber, err)
	}
}

func (s *orderService) ConfirmOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	return s.transition(ctx, id, (*domain.Order).Confirm)
}

func (s *orderService) ShipOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	return s.transition(ctx, id, (*domain.Order).Ship)
}

func (s *orderService) DeliverOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	return s.transition(ctx, id, (*domain.Order).Deliver)
}

func (s *orderService) transition(ctx context.Context, id uuid.UUID, step func(*domain.Order) error) (*domain.Order, error) {
	order, err := s.mustFind(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := step(order); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}
	log.Printf("[order] transition id=%s number=%s status=%s", order.ID, order.OrderNumber, order.Status)
	return order, nil
}

func (s *orderService) CancelOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	order, err := s.mustFind(ctx, id)
	if err != nil {
		return nil, err
	}
	if !order.IsCancellable() {
		return nil, fmt.Errorf("%w: order %s in status %s", domain.ErrNotCancellable, order.OrderNumber, order.Status)
	}

	if err := order.Cancel(); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	if err := s.ledger.Release(ctx, order.ProductID, order.Quantity); err != nil {
		log.Printf("[order] WARN stock release on cancel failed order=%s: %v", order.OrderNumber, err)
	}

	// Refund is best effort: a failure is reported, never fatal, and never
	// rolls back the cancellation or the stock release.
	if !s.gateway.Refund(ctx, order.OrderNumber, order.TotalAmount) {
		s.metrics.IncrementCounter(eventRefundFailed)
		log.Printf("[order] WARN refund failed order=%s amount=%d", order.OrderNumber, order.TotalAmount)
	}

	s.metrics.IncrementCounter(eventOrderCancelled)
	s.metrics.RecordDistribution(eventOrderCancelled, float64(order.TotalAmount))
	log.Printf("[order] cancelled id=%s number=%s refund=%d", order.ID, order.OrderNumber, order.TotalAmount)
	return order, nil
}

func (s *orderService) mustFind(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrOrderNotFound, id)
	}
	return order, nil
}

func (s *orderService) FindAll(ctx context.Context) ([]domain.Order, error) {
	return s.orderRepo.FindAll(ctx)
}

func (s *orderService) FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	return s.mustFind(ctx, id)
}

func (s *orderService) FindByNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	order, err := s.orderRepo.FindByNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("%w: number %s", domain.ErrOrderNotFound, orderNumber)
	}
	return order, nil
}

func (s *orderService) FindByCustomerEmail(ctx context.Context, email string) ([]domain.Order, error) {
	return s.orderRepo.FindByCustomerEmail(ctx, email)
}
