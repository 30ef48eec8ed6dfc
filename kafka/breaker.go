package kafka

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/tair/tiffin-pos/internal/pos/domain"
	"github.com/tair/tiffin-pos/pkg/logger"
)

// ErrCircuitOpen is returned while the broker is considered down
var ErrCircuitOpen = errors.New("event publishing circuit is open")

// CircuitState represents the state of a circuit breaker
type CircuitState string

const (
	StateClosed   CircuitState = "closed"
	StateOpen     CircuitState = "open"
	StateHalfOpen CircuitState = "half-open"
)

// halfOpenSuccesses closes a half-open circuit
const halfOpenSuccesses = 3

// CircuitBreaker stops calling a failing broker so checkouts do not wait on
// producer retries. After cooldown one trial call is let through at a time.
type CircuitBreaker struct {
	name        string
	maxFailures int
	cooldown    time.Duration
	now         func() time.Time

	mu              sync.Mutex
	state           CircuitState
	failures        int
	successCount    int
	trialInFlight   bool
	lastStateChange time.Time
}

// NewCircuitBreaker creates a closed breaker
func NewCircuitBreaker(name string, maxFailures int, cooldown time.Duration) *CircuitBreaker {
	if maxFailures <= 0 {
		maxFailures = 5
	}
	return &CircuitBreaker{
		name:            name,
		maxFailures:     maxFailures,
		cooldown:        cooldown,
		now:             time.Now,
		state:           StateClosed,
		lastStateChange: time.Now(),
	}
}

// Call runs fn unless the circuit is open
func (cb *CircuitBreaker) Call(fn func() error) error {
	if !cb.allow() {
		return ErrCircuitOpen
	}

	err := fn()

	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.trialInFlight = false
	if err != nil {
		cb.onFailure()
	} else {
		cb.onSuccess()
	}
	return err
}

func (cb *CircuitBreaker) allow() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == StateOpen && cb.now().Sub(cb.lastStateChange) >= cb.cooldown {
		cb.setState(StateHalfOpen)
		cb.successCount = 0
	}

	switch cb.state {
	case StateOpen:
		return false
	case StateHalfOpen:
		if cb.trialInFlight {
			return false
		}
		cb.trialInFlight = true
	}
	return true
}

func (cb *CircuitBreaker) onFailure() {
	cb.failures++

	if cb.state == StateHalfOpen {
		cb.setState(StateOpen)
		return
	}
	if cb.failures >= cb.maxFailures {
		cb.setState(StateOpen)
		logger.Logger.Error().
			Str("circuit", cb.name).
			Int("failures", cb.failures).
			Int("threshold", cb.maxFailures).
			Msg("Circuit breaker opened")
	}
}

func (cb *CircuitBreaker) onSuccess() {
	switch cb.state {
	case StateHalfOpen:
		cb.successCount++
		if cb.successCount >= halfOpenSuccesses {
			cb.failures = 0
			cb.successCount = 0
			cb.setState(StateClosed)
		}
	case StateClosed:
		cb.failures = 0
	}
}

func (cb *CircuitBreaker) setState(state CircuitState) {
	if cb.state == state {
		return
	}
	logger.Logger.Info().
		Str("circuit", cb.name).
		Str("from", string(cb.state)).
		Str("to", string(state)).
		Msg("Circuit breaker state change")
	cb.state = state
	cb.lastStateChange = cb.now()
}

// State returns the current state
func (cb *CircuitBreaker) State() CircuitState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// BreakerPublisher guards an EventPublisher with a CircuitBreaker
type BreakerPublisher struct {
	next    domain.EventPublisher
	breaker *CircuitBreaker
}

func NewBreakerPublisher(next domain.EventPublisher, breaker *CircuitBreaker) *BreakerPublisher {
	return &BreakerPublisher{next: next, breaker: breaker}
}

func (p *BreakerPublisher) PublishInvoiceCreated(ctx context.Context, inv domain.Invoice) error {
	return p.breaker.Call(func() error {
		return p.next.PublishInvoiceCreated(ctx, inv)
	})
}

func (p *BreakerPublisher) PublishStockChanged(ctx context.Context, tx domain.StockTransaction) error {
	return p.breaker.Call(func() error {
		return p.next.PublishStockChanged(ctx, tx)
	})
}

var _ domain.EventPublisher = (*BreakerPublisher)(nil)
