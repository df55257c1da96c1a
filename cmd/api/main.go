package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"retail-orders/internal/database"
	"retail-orders/internal/infrastructure/payment"
	"retail-orders/internal/inventory"
	"retail-orders/internal/repo"
	"retail-orders/internal/service"
	"retail-orders/internal/telemetry"
	"retail-orders/internal/transport/httpapi"
	"retail-orders/internal/worker"

	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
)

const healthPollInterval = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		productRepo repo.ProductRepo
		orderRepo   repo.OrderRepo
		dbStats     func() map[string]string
	)

	if os.Getenv("ORDERS_DB_HOST") != "" {
		db, err := database.NewPostgres()
		if err != nil {
			log.Fatal(err)
		}
		defer db.Close()
		if err := database.Migrate(ctx, db); err != nil {
			log.Fatalf("migrate: %v", err)
		}
		productRepo = repo.NewProductRepo(db)
		orderRepo = repo.NewOrderRepo(db)
		dbStats = func() map[string]string { return database.Health(db) }
		log.Println("catalog store: postgres")
	} else {
		store := repo.NewMemoryStore()
		productRepo = store.Products()
		orderRepo = store.Orders()
		log.Println("catalog store: in-memory (ORDERS_DB_HOST unset)")
	}

	if err := repo.SeedProducts(ctx, productRepo); err != nil {
		log.Fatalf("seed: %v", err)
	}

	gateway := payment.NewGateway()
	ledger := inventory.NewLedger(productRepo)
	metrics := telemetry.NewPrometheus(prometheus.DefaultRegisterer)

	orderService := service.NewOrderService(productRepo, orderRepo, ledger, gateway, metrics)
	productService := service.NewProductService(productRepo)

	healthWorker := worker.NewHealthWorker(gateway, healthPollInterval)

	router := httpapi.NewRouter(httpapi.Config{
		Products: productService,
		Orders:   orderService,
		GatewayStatus: func() (string, time.Time) {
			status, observedAt := healthWorker.Status()
			return string(status), observedAt
		},
		DBStats: dbStats,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{Addr: ":" + port, Handler: router}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		healthWorker.Run(ctx)
		return nil
	})
	g.Go(func() error {
		log.Printf("listening on :%s", port)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}
}
