package worker

import (
	"context"
	"log"
	"retail-orders/internal/infrastructure/payment"
	"sync"
	"time"
)

// GatewayStatus is the health observer's last view of the payment API.
type GatewayStatus string

const (
	StatusUp       GatewayStatus = "up"
	StatusDegraded GatewayStatus = "degraded"
	StatusUnknown  GatewayStatus = "unknown"
)

// HealthWorker polls the payment gateway on its own schedule and keeps the
// last observed status for the health endpoint. Order operations never call
// it.
type HealthWorker struct {
	gateway  payment.Gateway
	interval time.Duration

	mu         sync.RWMutex
	status     GatewayStatus
	observedAt time.Time
}

func NewHealthWorker(gateway payment.Gateway, interval time.Duration) *HealthWorker {
	return &HealthWorker{
		gateway:  gateway,
		interval: interval,
		status:   StatusUnknown,
	}
}

// Run polls until the context is cancelled.
func (w *HealthWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.Println("[health] payment gateway observer started")
	w.poll()

	for {
		select {
		case <-ctx.Done():
			log.Println("[health] payment gateway observer stopped")
			return
		case <-ticker.C:
			w.poll()
		}
	}
}

func (w *HealthWorker) poll() {
	status := StatusDegraded
	if w.gateway.CheckHealth() {
		status = StatusUp
	}

	w.mu.Lock()
	if status != w.status {
		log.Printf("[health] payment gateway %s -> %s", w.status, status)
	}
	w.status = status
	w.observedAt = time.Now()
	w.mu.Unlock()
}

// Status returns the last observation and when it was made.
func (w *HealthWorker) Status() (GatewayStatus, time.Time) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.status, w.observedAt
}
