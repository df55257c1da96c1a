package inventory

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
)

// StockStore is the single storage primitive the ledger needs: an atomic
// stock delta that fails rather than going negative.
type StockStore interface {
	AdjustStock(ctx context.Context, productID uuid.UUID, delta int) (int, error)
}

// Ledger tracks per-product stock through reserve/release pairs. Reservations
// decrement, releases increment; a release is also the compensation path for
// a failed payment.
type Ledger struct {
	store StockStore
}

func NewLedger(store StockStore) *Ledger {
	return &Ledger{store: store}
}

// Reserve takes quantity units of stock and returns the remaining level.
func (l *Ledger) Reserve(ctx context.Context, productID uuid.UUID, quantity int) (int, error) {
	if quantity <= 0 {
		return 0, fmt.Errorf("reserve quantity must be positive, got %d", quantity)
	}
	remaining, err := l.store.AdjustStock(ctx, productID, -quantity)
	if err != nil {
		return 0, err
	}
	log.Printf("[inventory] reserved product=%s qty=%d remaining=%d", productID, quantity, remaining)
	return remaining, nil
}

// Release returns quantity units of stock. Restocking has no upper bound.
func (l *Ledger) Release(ctx context.Context, productID uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("release quantity must be positive, got %d", quantity)
	}
	remaining, err := l.store.AdjustStock(ctx, productID, quantity)
	if err != nil {
		return err
	}
	log.Printf("[inventory] released product=%s qty=%d stock=%d", productID, quantity, remaining)
	return nil
}
