package domain

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID          uuid.UUID
	Name        string
	Description string
	Price       int64 // minor currency units
	Stock       int   // never negative; mutated through the inventory ledger
	Category    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func NewProduct(name, description string, price int64, stock int, category string) *Product {
	now := time.Now()
	return &Product{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		Price:       price,
		Stock:       stock,
		Category:    category,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// ProductUpdate carries an admin edit; nil fields are left unchanged.
type ProductUpdate struct {
	Name        *string
	Description *string
	Price       *int64
	Stock       *int
	Category    *string
}

func (p *Product) Apply(u ProductUpdate) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.Price != nil {
		p.Price = *u.Price
	}
	if u.Stock != nil {
		p.Stock = *u.Stock
	}
	if u.Category != nil {
		p.Category = *u.Category
	}
	p.UpdatedAt = time.Now()
}
