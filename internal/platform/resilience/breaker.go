package resilience

import (
	"errors"
	"sync"
	"time"

	"github.com/riskibarqy/gamewatchr/internal/platform/logging"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type CircuitState string

const (
	CircuitStateClosed   CircuitState = "closed"
	CircuitStateOpen     CircuitState = "open"
	CircuitStateHalfOpen CircuitState = "half_open"
)

const (
	defaultFailureThreshold = 5
	defaultOpenTimeout      = 15 * time.Second
	defaultHalfOpenProbes   = 2
)

// CircuitBreakerConfig mirrors the *_CIRCUIT_* environment settings.
type CircuitBreakerConfig struct {
	Enabled          bool
	Name             string
	FailureThreshold int
	OpenTimeout      time.Duration
	HalfOpenMaxReq   int

	// OnStateChange runs under the breaker lock and must not call back into it.
	OnStateChange func(name string, from, to CircuitState)
}

// WithTransitionLog fills Name and, unless one is set, an OnStateChange hook
// that logs each transition.
func (c CircuitBreakerConfig) WithTransitionLog(name string, logger *logging.Logger) CircuitBreakerConfig {
	if c.Name == "" {
		c.Name = name
	}
	if c.OnStateChange == nil && logger != nil {
		c.OnStateChange = func(name string, from, to CircuitState) {
			logger.Warn("circuit breaker state changed", "breaker", name, "from", from, "to", to)
		}
	}
	return c
}

// CircuitBreaker trips after FailureThreshold consecutive failures, rejects
// calls for OpenTimeout, then admits HalfOpenMaxReq probes. Outcomes are
// tagged with the generation they were admitted in; results that land after
// a transition are dropped. A nil breaker admits everything.
type CircuitBreaker struct {
	name      string
	threshold int
	cooldown  time.Duration
	probes    int
	onChange  func(name string, from, to CircuitState)
	now       func() time.Time

	mu         sync.Mutex
	state      CircuitState
	generation uint64
	failures   int
	inFlight   int
	passed     int
	reopenAt   time.Time
}

// NewCircuitBreakerFromConfig returns nil when the breaker is disabled.
func NewCircuitBreakerFromConfig(cfg CircuitBreakerConfig) *CircuitBreaker {
	if !cfg.Enabled {
		return nil
	}
	b := &CircuitBreaker{
		name:      cfg.Name,
		threshold: cfg.FailureThreshold,
		cooldown:  cfg.OpenTimeout,
		probes:    cfg.HalfOpenMaxReq,
		onChange:  cfg.OnStateChange,
		now:       time.Now,
		state:     CircuitStateClosed,
	}
	if b.threshold < 1 {
		b.threshold = defaultFailureThreshold
	}
	if b.cooldown <= 0 {
		b.cooldown = defaultOpenTimeout
	}
	if b.probes < 1 {
		b.probes = defaultHalfOpenProbes
	}
	return b
}

// Guard runs fn when the breaker admits the call and records the outcome.
// Only errors for which isFailure reports true count against the breaker.
func (b *CircuitBreaker) Guard(fn func() error, isFailure func(error) bool) error {
	if b == nil {
		return fn()
	}
	generation, err := b.admit()
	if err != nil {
		return err
	}

	completed := false
	defer func() {
		if !completed {
			b.settle(generation, true)
		}
	}()
	err = fn()
	completed = true
	b.settle(generation, err != nil && (isFailure == nil || isFailure(err)))
	return err
}

func (b *CircuitBreaker) State() CircuitState {
	if b == nil {
		return CircuitStateClosed
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.expire(b.now())
	return b.state
}

func (b *CircuitBreaker) admit() (uint64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.expire(b.now())
	switch b.state {
	case CircuitStateOpen:
		return b.generation, ErrCircuitOpen
	case CircuitStateHalfOpen:
		if b.inFlight >= b.probes {
			return b.generation, ErrCircuitOpen
		}
		b.inFlight++
	}
	return b.generation, nil
}

func (b *CircuitBreaker) settle(generation uint64, failed bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	b.expire(now)
	if generation != b.generation {
		return
	}

	switch b.state {
	case CircuitStateClosed:
		if !failed {
			b.failures = 0
			return
		}
		b.failures++
		if b.failures >= b.threshold {
			b.moveTo(CircuitStateOpen, now)
		}
	case CircuitStateHalfOpen:
		if failed {
			b.moveTo(CircuitStateOpen, now)
			return
		}
		b.passed++
		if b.passed >= b.probes {
			b.moveTo(CircuitStateClosed, now)
		}
	}
}

func (b *CircuitBreaker) expire(now time.Time) {
	if b.state == CircuitStateOpen && !now.Before(b.reopenAt) {
		b.moveTo(CircuitStateHalfOpen, now)
	}
}

func (b *CircuitBreaker) moveTo(to CircuitState, now time.Time) {
	from := b.state
	if from == to {
		return
	}
	b.state = to
	b.generation++
	b.failures, b.inFlight, b.passed = 0, 0, 0
	if to == CircuitStateOpen {
		b.reopenAt = now.Add(b.cooldown)
	}
	if b.onChange != nil {
		b.onChange(b.name, from, to)
	}
}
