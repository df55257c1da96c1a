package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"retail-orders/internal/domain"
	"retail-orders/internal/infrastructure/payment"
	"retail-orders/internal/inventory"
	"retail-orders/internal/repo"
	"retail-orders/internal/service"
	"retail-orders/internal/telemetry"
)

// Console simulation of the order core against the in-memory store: creates
// a batch of orders with the real flaky gateway, cancels every other one and
// shows that compensation brings stock back where it should be.
func main() {
	ctx := context.Background()

	store := repo.NewMemoryStore()
	productRepo := store.Products()
	orderRepo := store.Orders()

	product := domain.NewProduct("Laptop", "High-end gaming laptop", 1_500_000, 40, "electronics")
	if err := productRepo.Create(ctx, product); err != nil {
		log.Fatal(err)
	}

	gateway := payment.NewGateway(payment.WithLatency(10 * time.Millisecond))
	ledger := inventory.NewLedger(productRepo)
	orders := service.NewOrderService(productRepo, orderRepo, ledger, gateway, telemetry.Noop{})

	fmt.Println("--- STARTING SIMULATION (20 ORDERS) ---")
	var created, failed, cancelled int
	for i := 0; i < 20; i++ {
		order, err := orders.CreateOrder(ctx, service.CreateOrderInput{
			ProductID:       product.ID,
			Quantity:        1,
			CustomerName:    fmt.Sprintf("customer-%02d", i+1),
			CustomerEmail:   fmt.Sprintf("customer-%02d@example.com", i+1),
			DeliveryAddress: "1 Main Street",
		})
		if err != nil {
			failed++
			fmt.Printf("[%2d] create FAILED: %v\n", i+1, err)
			if errors.Is(err, domain.ErrPaymentFailed) {
				// Give the gateway a chance to self-heal before retrying.
				time.Sleep(1100 * time.Millisecond)
			}
			continue
		}
		created++
		fmt.Printf("[%2d] created %s amount=%d\n", i+1, order.OrderNumber, order.TotalAmount)

		if i%2 == 1 {
			if _, err := orders.CancelOrder(ctx, order.ID); err != nil {
				fmt.Printf("[%2d] cancel FAILED: %v\n", i+1, err)
				continue
			}
			cancelled++
			fmt.Printf("[%2d] cancelled %s\n", i+1, order.OrderNumber)
		}
	}

	fresh, err := productRepo.FindByID(ctx, product.ID)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("---------------------------------------------------")
	fmt.Printf("created=%d failed=%d cancelled=%d\n", created, failed, cancelled)
	fmt.Printf("stock: started 40, now %d (expected %d)\n", fresh.Stock, 40-(created-cancelled))
}
