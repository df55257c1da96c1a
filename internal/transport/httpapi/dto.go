package httpapi

import (
	"retail-orders/internal/domain"
	"retail-orders/internal/service"
	"time"

	"github.com/google/uuid"
)

type productRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=100"`
	Description string `json:"description" binding:"max=500"`
	Price       *int64 `json:"price" binding:"required,min=0"`
	Stock       *int   `json:"stock" binding:"required,min=0"`
	Category    string `json:"category" binding:"required,max=50"`
}

func (r productRequest) toInput() service.CreateProductInput {
	return service.CreateProductInput{
		Name:        r.Name,
		Description: r.Description,
		Price:       *r.Price,
		Stock:       *r.Stock,
		Category:    r.Category,
	}
}

type productUpdateRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=2,max=100"`
	Description *string `json:"description" binding:"omitempty,max=500"`
	Price       *int64  `json:"price" binding:"omitempty,min=0"`
	Stock       *int    `json:"stock" binding:"omitempty,min=0"`
	Category    *string `json:"category" binding:"omitempty,max=50"`
}

func (r productUpdateRequest) toUpdate() domain.ProductUpdate {
	return domain.ProductUpdate{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Stock:       r.Stock,
		Category:    r.Category,
	}
}

type orderRequest struct {
	ProductID       string `json:"productId" binding:"required,uuid"`
	Quantity        int    `json:"quantity" binding:"required,min=1,max=100"`
	CustomerName    string `json:"customerName" binding:"required,max=100"`
	CustomerEmail   string `json:"customerEmail" binding:"required,email"`
	DeliveryAddress string `json:"deliveryAddress" binding:"required,max=200"`
}

func (r orderRequest) toInput() service.CreateOrderInput {
	return service.CreateOrderInput{
		ProductID:       uuid.MustParse(r.ProductID), // binding validated the format
		Quantity:        r.Quantity,
		CustomerName:    r.CustomerName,
		CustomerEmail:   r.CustomerEmail,
		DeliveryAddress: r.DeliveryAddress,
	}
}

type productResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       int64     `json:"price"`
	Stock       int       `json:"stock"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toProductResponse(p *domain.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		Category:    p.Category,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toProductResponses(products []domain.Product) []productResponse {
	responses := make([]productResponse, 0, len(products))
	for i := range products {
		responses = append(responses, toProductResponse(&products[i]))
	}
	return responses
}

type orderResponse struct {
	ID              uuid.UUID          `json:"id"`
	OrderNumber     string             `json:"orderNumber"`
	ProductID       uuid.UUID          `json:"productId"`
	Quantity        int                `json:"quantity"`
	TotalAmount     int64              `json:"totalAmount"`
	Status          domain.OrderStatus `json:"status"`
	CustomerName    string             `json:"customerName"`
	CustomerEmail   string             `json:"customerEmail"`
	DeliveryAddress string             `json:"deliveryAddress"`
	CreatedAt       time.Time          `json:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt"`
}

func toOrderResponse(o *domain.Order) orderResponse {
	return orderResponse{
		ID:              o.ID,
		OrderNumber:     o.OrderNumber,
		ProductID:       o.ProductID,
		Quantity:        o.Quantity,
		TotalAmount:     o.TotalAmount,
		Status:          o.Status,
		CustomerName:    o.CustomerName,
		CustomerEmail:   o.CustomerEmail,
		DeliveryAddress: o.DeliveryAddress,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

func toOrderResponses(orders []domain.Order) []orderResponse {
	responses := make([]orderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, toOrderResponse(&orders[i]))
	}
	return responses
}
