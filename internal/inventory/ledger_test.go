package inventory

import (
	"context"
	"testing"

	"retail-orders/internal/domain"
	"retail-orders/internal/repo"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLedger(t *testing.T, stock int) (*Ledger, repo.ProductRepo, uuid.UUID) {
	t.Helper()
	store := repo.NewMemoryStore()
	products := store.Products()
	product := domain.NewProduct("Laptop", "gaming laptop", 1000, stock, "electronics")
	require.NoError(t, products.Create(context.Background(), product))
	return NewLedger(products), products, product.ID
}

func TestReserveThenReleaseRestoresStock(t *testing.T) {
	ctx := context.Background()
	ledger, products, id := newLedger(t, 10)

	remaining, err := ledger.Reserve(ctx, id, 4)
	require.NoError(t, err)
	assert.Equal(t, 6, remaining)

	require.NoError(t, ledger.Release(ctx, id, 4))

	p, err := products.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 10, p.Stock)
}

func TestReserveInsufficientStockLeavesStockUnchanged(t *testing.T) {
	ctx := context.Background()
	ledger, products, id := newLedger(t, 2)

	_, err := ledger.Reserve(ctx, id, 5)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	p, err := products.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 2, p.Stock)
}

func TestReserveUnknownProduct(t *testing.T) {
	ledger, _, _ := newLedger(t, 2)
	_, err := ledger.Reserve(context.Background(), uuid.New(), 1)
	require.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestReserveRejectsNonPositiveQuantity(t *testing.T) {
	ctx := context.Background()
	ledger, _, id := newLedger(t, 10)

	for _, qty := range []int{0, -3} {
		_, err := ledger.Reserve(ctx, id, qty)
		require.Error(t, err, "qty %d", qty)
		require.Error(t, ledger.Release(ctx, id, qty), "qty %d", qty)
	}
}

func TestReleaseHasNoUpperBound(t *testing.T) {
	ctx := context.Background()
	ledger, products, id := newLedger(t, 1)

	require.NoError(t, ledger.Release(ctx, id, 1000))

	p, err := products.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1001, p.Stock)
}

func TestReserveBumpsUpdatedAt(t *testing.T) {
	ctx := context.Background()
	ledger, products, id := newLedger(t, 10)

	before, err := products.FindByID(ctx, id)
	require.NoError(t, err)

	_, err = ledger.Reserve(ctx, id, 1)
	require.NoError(t, err)

	after, err := products.FindByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, after.UpdatedAt.After(before.UpdatedAt) || after.UpdatedAt.Equal(before.UpdatedAt))
	assert.Equal(t, 9, after.Stock)
}
