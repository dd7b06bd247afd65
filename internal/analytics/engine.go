// Package analytics derives behavioral and predictive insights from a
// user's transaction history. Every operation is a pure function of its
// inputs; an Engine carries no mutable state and is safe for concurrent use.
package analytics

import (
	"errors"
	"fmt"
	"time"
)

// Default horizons used when a caller does not supply one.
const (
	DefaultForecastDays     = 30
	DefaultProjectionMonths = 12
	DefaultPurchaseMonths   = 6
)

var (
	ErrNoTransactions    = errors.New("no transaction data")
	ErrNoIncome          = errors.New("no income transactions found")
	ErrNoRecurringIncome = errors.New("no recurring income pattern detected")
	ErrComputation       = errors.New("computation failed")
)

// Engine runs analytics over transaction collections
type Engine struct {
	nowFn func() time.Time
}

// Option configures an Engine
type Option func(*Engine)

// WithClock overrides the clock used for deadline and delay calculations
func WithClock(fn func() time.Time) Option {
	return func(e *Engine) {
		e.nowFn = fn
	}
}

// NewEngine initializes a new analytics engine
func NewEngine(opts ...Option) *Engine {
	e := &Engine{nowFn: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) now() time.Time {
	return e.nowFn().UTC()
}

// guard converts a panic inside a public operation into an error so that
// one failing analytic never aborts the caller.
func guard(op string, err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%s: %w: %v", op, ErrComputation, r)
	}
}
