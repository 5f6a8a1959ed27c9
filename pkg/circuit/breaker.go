// Package circuit wraps sony/gobreaker for calls to third-party HTTP APIs.
package circuit

import (
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

var (
	ErrCircuitOpen     = errors.New("circuit breaker is open")
	ErrTooManyRequests = errors.New("too many requests in half-open state")
)

// Config defines circuit breaker configuration
type Config struct {
	Threshold   uint32        // consecutive failures before opening
	Timeout     time.Duration // open period before half-open
	Interval    time.Duration // closed-state counter reset period, 0 never resets
	MaxHalfOpen uint32        // requests allowed through while half-open
}

func DefaultConfig() Config {
	return Config{
		Threshold:   5,
		Timeout:     30 * time.Second,
		Interval:    time.Minute,
		MaxHalfOpen: 3,
	}
}

type Breaker struct {
	name string
	cb   *gobreaker.CircuitBreaker
}

func NewBreaker(name string, config Config, logger *zap.Logger) *Breaker {
	if logger == nil {
		logger = zap.NewNop()
	}

	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: config.MaxHalfOpen,
		Interval:    config.Interval,
		Timeout:     config.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= config.Threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			fields := []zap.Field{
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			}
			if to == gobreaker.StateOpen {
				logger.Error("Circuit breaker opened", fields...)
				return
			}
			logger.Info("Circuit breaker state changed", fields...)
		},
	}

	return &Breaker{name: name, cb: gobreaker.NewCircuitBreaker(settings)}
}

// Execute runs fn unless the breaker is open. Rejections are reported as
// ErrCircuitOpen or ErrTooManyRequests.
func (b *Breaker) Execute(fn func() error) error {
	_, err := b.cb.Execute(func() (interface{}, error) {
		return nil, fn()
	})
	switch {
	case errors.Is(err, gobreaker.ErrOpenState):
		return fmt.Errorf("%s: %w", b.name, ErrCircuitOpen)
	case errors.Is(err, gobreaker.ErrTooManyRequests):
		return fmt.Errorf("%s: %w", b.name, ErrTooManyRequests)
	}
	return err
}

func (b *Breaker) State() gobreaker.State {
	return b.cb.State()
}

func (b *Breaker) IsOpen() bool {
	return b.cb.State() == gobreaker.StateOpen
}

func (b *Breaker) Stats() map[string]interface{} {
	counts := b.cb.Counts()
	return map[string]interface{}{
		"name":                  b.name,
		"state":                 b.cb.State().String(),
		"requests":              counts.Requests,
		"total_failures":        counts.TotalFailures,
		"consecutive_failures":  counts.ConsecutiveFailures,
		"consecutive_successes": counts.ConsecutiveSuccesses,
	}
}
