package repo

import (
	"context"
	"testing"

	"retail-orders/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryProductCRUD(t *testing.T) {
	ctx := context.Background()
	products := NewMemoryStore().Products()

	p := domain.NewProduct("Laptop", "gaming laptop", 1500, 10, "electronics")
	require.NoError(t, products.Create(ctx, p))

	found, err := products.FindByID(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Laptop", found.Name)

	missing, err := products.FindByID(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing, "absent product reads as nil, not error")

	byCategory, err := products.FindByCategory(ctx, "electronics")
	require.NoError(t, err)
	assert.Len(t, byCategory, 1)

	matched, err := products.SearchByName(ctx, "lap")
	require.NoError(t, err)
	assert.Len(t, matched, 1, "search is case-insensitive substring match")

	require.NoError(t, products.Delete(ctx, p.ID))
	require.ErrorIs(t, products.Delete(ctx, p.ID), domain.ErrProductNotFound)
}

func TestMemoryAdjustStock(t *testing.T) {
	ctx := context.Background()
	products := NewMemoryStore().Products()

	p := domain.NewProduct("Laptop", "gaming laptop", 1500, 5, "electronics")
	require.NoError(t, products.Create(ctx, p))

	stock, err := products.AdjustStock(ctx, p.ID, -3)
	require.NoError(t, err)
	assert.Equal(t, 2, stock)

	_, err = products.AdjustStock(ctx, p.ID, -3)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	stock, err = products.AdjustStock(ctx, p.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 5, stock)

	_, err = products.AdjustStock(ctx, uuid.New(), -1)
	require.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestMemoryOrderRepo(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	orders := store.Orders()

	product := domain.NewProduct("Laptop", "gaming laptop", 1500, 5, "electronics")
	o := domain.NewOrder(product, 2, "Alice", "alice@example.com", "1 Main Street")
	require.NoError(t, orders.Create(ctx, o))

	dup := *o
	dup.ID = uuid.New()
	require.ErrorIs(t, orders.Create(ctx, &dup), ErrDuplicateOrderNumber)

	byNumber, err := orders.FindByNumber(ctx, o.OrderNumber)
	require.NoError(t, err)
	require.NotNil(t, byNumber)
	assert.Equal(t, o.ID, byNumber.ID)

	byEmail, err := orders.FindByCustomerEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Len(t, byEmail, 1)

	o.Status = domain.OrderConfirmed
	require.NoError(t, orders.Update(ctx, o))
	stored, err := orders.FindByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderConfirmed, stored.Status)

	ghost := *o
	ghost.ID = uuid.New()
	require.ErrorIs(t, orders.Update(ctx, &ghost), domain.ErrOrderNotFound)
}

func TestSeedProductsIsIdempotent(t *testing.T) {
	ctx := context.Background()
	products := NewMemoryStore().Products()

	require.NoError(t, SeedProducts(ctx, products))
	first, err := products.FindAll(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	require.NoError(t, SeedProducts(ctx, products))
	second, err := products.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, second, len(first))
}
