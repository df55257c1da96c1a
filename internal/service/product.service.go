package service

import (
	"context"
	"fmt"
	"log"
	"retail-orders/internal/domain"
	"retail-orders/internal/repo"

	"github.com/google/uuid"
)

type CreateProductInput struct {
	Name        string
	Description string
	Price       int64
	Stock       int
	Category    string
}

// ProductService is the catalog CRUD surface. Stock changes made here are
// admin edits; order flows go through the inventory ledger instead.
type ProductService interface {
	Create(ctx context.Context, in CreateProductInput) (*domain.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	FindAll(ctx context.Context) ([]domain.Product, error)
	FindByCategory(ctx context.Context, category string) ([]domain.Product, error)
	SearchByName(ctx context.Context, keyword string) ([]domain.Product, error)
	Update(ctx context.Context, id uuid.UUID, update domain.ProductUpdate) (*domain.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type productService struct {
	products repo.ProductRepo
}

func NewProductService(products repo.ProductRepo) ProductService {
	return &productService{products: products}
}

func (s *productService) Create(ctx context.Context, in CreateProductInput) (*domain.Product, error) {
	if in.Price < 0 {
		return nil, fmt.Errorf("price must not be negative, got %d", in.Price)
	}
	if in.Stock < 0 {
		return nil, fmt.Errorf("stock must not be negative, got %d", in.Stock)
	}
	product := domain.NewProduct(in.Name, in.Description, in.Price, in.Stock, in.Category)
	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	log.Printf("[product] created id=%s name=%q", product.ID, product.Name)
	return product, nil
}

func (s *productService) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	return s.mustFind(ctx, id)
}

func (s *productService) FindAll(ctx context.Context) ([]domain.Product, error) {
	return s.products.FindAll(ctx)
}

func (s *productService) FindByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	return s.products.FindByCategory(ctx, category)
}

func (s *productService) SearchByName(ctx context.Context, keyword string) ([]domain.Product, error) {
	return s.products.SearchByName(ctx, keyword)
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, update domain.ProductUpdate) (*domain.Product, error) {
	product, err := s.mustFind(ctx, id)
	if err != nil {
		return nil, err
	}
	if update.Price != nil && *update.Price < 0 {
		return nil, fmt.Errorf("price must not be negative, got %d", *update.Price)
	}
	if update.Stock != nil && *update.Stock < 0 {
		return nil, fmt.Errorf("stock must not be negative, got %d", *update.Stock)
	}
	product.Apply(update)
	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}
	log.Printf("[product] updated id=%s name=%q", product.ID, product.Name)
	return product, nil
}

func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.mustFind(ctx, id); err != nil {
		return err
	}
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	log.Printf("[product] deleted id=%s", id)
	return nil
}

func (s *productService) mustFind(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrProductNotFound, id)
	}
	return product, nil
}
