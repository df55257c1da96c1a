package repo

import (
	"context"
	"database/sql"
	"fmt"
	"retail-orders/internal/domain"

	"github.com/google/uuid"
)

// ProductRepo is the catalog half of the storage collaborator. FindByID
// returns (nil, nil) when the product does not exist; callers translate that
// into domain.ErrProductNotFound.
type ProductRepo interface {
	Create(ctx context.Context, product *domain.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	FindAll(ctx context.Context) ([]domain.Product, error)
	FindByCategory(ctx context.Context, category string) ([]domain.Product, error)
	SearchByName(ctx context.Context, keyword string) ([]domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id uuid.UUID) error

	// AdjustStock atomically applies a stock delta and returns the new
	// level. Fails with domain.ErrInsufficientStock when the result would
	// go negative, domain.ErrProductNotFound when the product is absent.
	AdjustStock(ctx context.Context, id uuid.UUID, delta int) (int, error)
}

type productRepo struct {
	db *sql.DB
}

func NewProductRepo(db *sql.DB) ProductRepo {
	return &productRepo{db: db}
}

const productColumns = "id, name, description, price, stock, category, created_at, updated_at"

func scanProduct(row interface{ Scan(...any) error }, p *domain.Product) error {
	return row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.Stock,
		&p.Category,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
}

func (r *productRepo) Create(ctx context.Context, p *domain.Product) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO products ("+productColumns+") VALUES ($1, $2, $3, $4, $5, $6, $7, $8)",
		p.ID, p.Name, p.Description, p.Price, p.Stock, p.Category, p.CreatedAt, p.UpdatedAt,
	)
	return err
}

func (r *productRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	var p domain.Product
	row := r.db.QueryRowContext(ctx, "SELECT "+productColumns+" FROM products WHERE id = $1", id)
	err := scanProduct(row, &p)
	if err == sql.ErrNoRows {
		return nil, nil // not found
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) FindAll(ctx context.Context) ([]domain.Product, error) {
	return r.queryProducts(ctx, "SELECT "+productColumns+" FROM products ORDER BY created_at")
}

func (r *productRepo) FindByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	return r.queryProducts(ctx,
		"SELECT "+productColumns+" FROM products WHERE category = $1 ORDER BY created_at", category)
}

func (r *productRepo) SearchByName(ctx context.Context, keyword string) ([]domain.Product, error) {
	return r.queryProducts(ctx,
		"SELECT "+productColumns+" FROM products WHERE name ILIKE '%' || $1 || '%' ORDER BY created_at", keyword)
}

func (r *productRepo) queryProducts(ctx context.Context, query string, args ...any) ([]domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *productRepo) Update(ctx context.Context, p *domain.Product) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE products SET name = $2, description = $3, price = $4, stock = $5, category = $6, updated_at = $7 WHERE id = $1",
		p.ID, p.Name, p.Description, p.Price, p.Stock, p.Category, p.UpdatedAt,
	)
	if err != nil {
		return err
	}
	return requireRow(res, domain.ErrProductNotFound)
}

func (r *productRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return err
	}
	return requireRow(res, domain.ErrProductNotFound)
}

func (r *productRepo) AdjustStock(ctx context.Context, id uuid.UUID, delta int) (int, error) {
	var stock int
	err := r.db.QueryRowContext(ctx,
		"UPDATE products SET stock = stock + $2, updated_at = now() WHERE id = $1 AND stock + $2 >= 0 RETURNING stock",
		id, delta,
	).Scan(&stock)
	if err == sql.ErrNoRows {
		// Either the product is missing or the guard rejected the delta.
		var exists bool
		if probe := r.db.QueryRowContext(ctx,
			"SELECT true FROM products WHERE id = $1", id).Scan(&exists); probe == sql.ErrNoRows {
			return 0, domain.ErrProductNotFound
		} else if probe != nil {
			return 0, probe
		}
		return 0, fmt.Errorf("%w: product %s, requested %d", domain.ErrInsufficientStock, id, -delta)
	}
	if err != nil {
		return 0, err
	}
	return stock, nil
}

func requireRow(res sql.Result, missing error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return missing
	}
	return nil
}
