package httpapi

import (
	"retail-orders/internal/service"
	"retail-orders/internal/telemetry"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Config wires the collaborators the HTTP surface exposes.
type Config struct {
	Products service.ProductService
	Orders   service.OrderService

	// GatewayStatus reports the health observer's last view of the
	// payment API; DBStats is nil when running without Postgres.
	GatewayStatus func() (string, time.Time)
	DBStats       func() map[string]string
}

// NewRouter builds the gin engine with CORS, the catalog and order routes,
// the health endpoint and the metrics scrape endpoint.
func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		MaxAge:       12 * time.Hour,
	}))

	products := &productHandler{products: cfg.Products}
	p := r.Group("/api/products")
	{
		p.GET("", products.list)
		p.POST("", products.create)
		p.GET("/search", products.search)
		p.GET("/category/:category", products.byCategory)
		p.GET("/:id", products.get)
		p.PUT("/:id", products.update)
		p.DELETE("/:id", products.delete)
	}

	orders := &orderHandler{orders: cfg.Orders}
	o := r.Group("/api/orders")
	{
		o.GET("", orders.list)
		o.POST("", orders.create)
		o.GET("/number/:orderNumber", orders.getByNumber)
		o.GET("/customer/:email", orders.byCustomer)
		o.GET("/:id", orders.get)
		o.POST("/:id/confirm", orders.confirm)
		o.POST("/:id/ship", orders.ship)
		o.POST("/:id/deliver", orders.deliver)
		o.POST("/:id/cancel", orders.cancel)
	}

	health := &healthHandler{gatewayStatus: cfg.GatewayStatus, dbStats: cfg.DBStats}
	r.GET("/health", health.health)
	r.GET("/metrics", gin.WrapH(telemetry.Handler()))

	return r
}
