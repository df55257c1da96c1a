package payment

import (
	"context"
	"log"
	"math/rand/v2"
	"sync"
	"time"
)

// Gateway simulates the external payment API ("FastPay"). It processes
// payments and refunds against an order number and keeps a process-wide
// availability flag that can transiently flip to unavailable and self-heals
// after recoveryDelay.
type Gateway interface {
	Pay(ctx context.Context, orderNumber string, amount int64) bool
	Refund(ctx context.Context, orderNumber string, amount int64) bool
	CheckHealth() bool
	SetAvailability(available bool)
}

const (
	defaultLatency       = 100 * time.Millisecond
	defaultRecoveryDelay = 1 * time.Second
	outageProbability    = 0.05
)

type gateway struct {
	mu        sync.Mutex
	available bool
	recoverAt time.Time

	// shouldFail injects the transient outage; now is the gateway clock.
	// Both are swappable so tests run deterministically.
	shouldFail    func() bool
	now           func() time.Time
	latency       time.Duration
	recoveryDelay time.Duration
}

type Option func(*gateway)

// WithFailureSource replaces the random outage draw.
func WithFailureSource(f func() bool) Option {
	return func(g *gateway) { g.shouldFail = f }
}

// WithClock replaces the gateway clock.
func WithClock(now func() time.Time) Option {
	return func(g *gateway) { g.now = now }
}

// WithLatency replaces the simulated network delay.
func WithLatency(d time.Duration) Option {
	return func(g *gateway) { g.latency = d }
}

func NewGateway(opts ...Option) Gateway {
	g := &gateway{
		available:     true,
		shouldFail:    func() bool { return rand.Float64() < outageProbability },
		now:           time.Now,
		latency:       defaultLatency,
		recoveryDelay: defaultRecoveryDelay,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// checkAvailability runs the transient-failure simulation and returns the
// current availability. Recovery is lazy: instead of a spawned timer, the
// flag flips back once the clock passes recoverAt.
func (g *gateway) checkAvailability() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	// A zero recoverAt means the outage was forced via SetAvailability and
	// never heals on its own.
	if !g.available && !g.recoverAt.IsZero() && !g.recoverAt.After(g.now()) {
		g.available = true
		log.Println("[payment] gateway recovered")
	}

	if g.available && g.shouldFail() {
		g.available = false
		g.recoverAt = g.now().Add(g.recoveryDelay)
		log.Println("[payment] transient gateway outage, recovery scheduled")
	}

	return g.available
}

func (g *gateway) Pay(ctx context.Context, orderNumber string, amount int64) bool {
	log.Printf("[payment] pay order=%s amount=%d", orderNumber, amount)
	if !g.checkAvailability() {
		log.Printf("[payment] pay failed, gateway unavailable order=%s", orderNumber)
		return false
	}
	g.simulateLatency(ctx)
	log.Printf("[payment] pay done order=%s", orderNumber)
	return true
}

func (g *gateway) Refund(ctx context.Context, orderNumber string, amount int64) bool {
	log.Printf("[payment] refund order=%s amount=%d", orderNumber, amount)
	if !g.checkAvailability() {
		log.Printf("[payment] refund failed, gateway unavailable order=%s", orderNumber)
		return false
	}
	g.simulateLatency(ctx)
	log.Printf("[payment] refund done order=%s", orderNumber)
	return true
}

func (g *gateway) CheckHealth() bool {
	return g.checkAvailability()
}

// SetAvailability overrides the flag directly, bypassing the failure
// simulation. Test control only.
func (g *gateway) SetAvailability(available bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.available = available
	g.recoverAt = time.Time{}
	log.Printf("[payment] availability forced to %t", available)
}

func (g *gateway) simulateLatency(ctx context.Context) {
	select {
	case <-time.After(g.latency):
	case <-ctx.Done():
	}
}
