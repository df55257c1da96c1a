package repo

import (
	"context"
	"log"
	"retail-orders/internal/domain"
)

// SeedProducts inserts the sample catalog when the store is empty, so a
// fresh instance has something to order against.
func SeedProducts(ctx context.Context, products ProductRepo) error {
	existing, err := products.FindAll(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	samples := []*domain.Product{
		domain.NewProduct("Laptop", "High-end gaming laptop", 1_500_000, 10, "electronics"),
		domain.NewProduct("Smartphone", "Latest flagship phone", 1_000_000, 20, "electronics"),
		domain.NewProduct("Tablet", "10-inch tablet", 500_000, 15, "electronics"),
		domain.NewProduct("T-Shirt", "100% cotton t-shirt", 25_000, 50, "apparel"),
		domain.NewProduct("Jeans", "Skinny fit jeans", 80_000, 30, "apparel"),
		domain.NewProduct("Go in Practice", "From basics to production Go", 35_000, 100, "books"),
	}
	for _, p := range samples {
		if err := products.Create(ctx, p); err != nil {
			return err
		}
	}
	log.Printf("[seed] inserted %d sample products", len(samples))
	return nil
}
