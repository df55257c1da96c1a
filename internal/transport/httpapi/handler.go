package httpapi

import (
	"context"
	"net/http"
	"retail-orders/internal/domain"
	"retail-orders/internal/service"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type productHandler struct {
	products service.ProductService
}

func (h *productHandler) list(c *gin.Context) {
	products, err := h.products.FindAll(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponses(products))
}

func (h *productHandler) get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	product, err := h.products.FindByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponse(product))
}

func (h *productHandler) byCategory(c *gin.Context) {
	products, err := h.products.FindByCategory(c.Request.Context(), c.Param("category"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponses(products))
}

func (h *productHandler) search(c *gin.Context) {
	keyword := c.Query("keyword")
	products, err := h.products.SearchByName(c.Request.Context(), keyword)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponses(products))
}

func (h *productHandler) create(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeValidationError(c, err)
		return
	}
	product, err := h.products.Create(c.Request.Context(), req.toInput())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toProductResponse(product))
}

func (h *productHandler) update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req productUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeValidationError(c, err)
		return
	}
	product, err := h.products.Update(c.Request.Context(), id, req.toUpdate())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponse(product))
}

func (h *productHandler) delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.products.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type orderHandler struct {
	orders service.OrderService
}

func (h *orderHandler) list(c *gin.Context) {
	orders, err := h.orders.FindAll(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponses(orders))
}

func (h *orderHandler) get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	order, err := h.orders.FindByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order))
}

func (h *orderHandler) getByNumber(c *gin.Context) {
	order, err := h.orders.FindByNumber(c.Request.Context(), c.Param("orderNumber"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order))
}

func (h *orderHandler) byCustomer(c *gin.Context) {
	orders, err := h.orders.FindByCustomerEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponses(orders))
}

func (h *orderHandler) create(c *gin.Context) {
	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeValidationError(c, err)
		return
	}
	order, err := h.orders.CreateOrder(c.Request.Context(), req.toInput())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toOrderResponse(order))
}

func (h *orderHandler) confirm(c *gin.Context) { h.transition(c, h.orders.ConfirmOrder) }
func (h *orderHandler) ship(c *gin.Context)    { h.transition(c, h.orders.ShipOrder) }
func (h *orderHandler) deliver(c *gin.Context) { h.transition(c, h.orders.DeliverOrder) }
func (h *orderHandler) cancel(c *gin.Context)  { h.transition(c, h.orders.CancelOrder) }

func (h *orderHandler) transition(c *gin.Context, step func(ctx context.Context, id uuid.UUID) (*domain.Order, error)) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	order, err := step(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order))
}

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		writeValidationError(c, err)
		return uuid.Nil, false
	}
	return id, true
}

// healthHandler reports the payment API observation plus database pool
// statistics. External health tooling polls this endpoint.
type healthHandler struct {
	gatewayStatus func() (string, time.Time)
	dbStats       func() map[string]string
}

func (h *healthHandler) health(c *gin.Context) {
	status, observedAt := h.gatewayStatus()

	body := gin.H{
		"status": "up",
		"payment_api": gin.H{
			"status":      status,
			"observed_at": observedAt,
		},
	}
	code := http.StatusOK
	if status != "up" {
		body["status"] = "degraded"
	}

	if h.dbStats != nil {
		db := h.dbStats()
		body["database"] = db
		if db["status"] != "up" {
			body["status"] = "down"
			code = http.StatusServiceUnavailable
		}
	}

	c.JSON(code, body)
}
