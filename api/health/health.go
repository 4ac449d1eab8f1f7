// Copyright (C) 2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package health provides a registry of named component checks and an API
// service reporting their results.
package health

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/exp/maps"

	"github.com/ava-labs/tokengate/utils/logging"
)

var (
	errDuplicateCheck = errors.New("duplicate check")

	_ Health = (*health)(nil)
)

// Checker inspects one component.
type Checker interface {
	// HealthCheck returns optional detail about the component and an error
	// when the component is unhealthy.
	HealthCheck(context.Context) (interface{}, error)
}

// CheckerFunc adapts a plain function to the Checker interface.
type CheckerFunc func(context.Context) (interface{}, error)

func (f CheckerFunc) HealthCheck(ctx context.Context) (interface{}, error) {
	return f(ctx)
}

// Result is the outcome of a single check.
type Result struct {
	Details   interface{}   `json:"details,omitempty"`
	Error     string        `json:"error,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
	Duration  time.Duration `json:"duration"`
}

// Health runs the registered checks on demand.
type Health interface {
	// RegisterCheck adds [checker] under [name]. Names must be unique.
	RegisterCheck(name string, checker Checker) error

	// Results runs every registered check and reports whether all of them
	// passed.
	Results(ctx context.Context) (map[string]Result, bool)
}

type health struct {
	log logging.Logger

	lock   sync.RWMutex
	checks map[string]Checker
}

func New(log logging.Logger) Health {
	return &health{
		log:    log,
		checks: make(map[string]Checker),
	}
}

func (h *health) RegisterCheck(name string, checker Checker) error {
	h.lock.Lock()
	defer h.lock.Unlock()

	if _, ok := h.checks[name]; ok {
		return fmt.Errorf("%w: %s", errDuplicateCheck, name)
	}
	h.checks[name] = checker
	return nil
}

func (h *health) Results(ctx context.Context) (map[string]Result, bool) {
	h.lock.RLock()
	checks := maps.Clone(h.checks)
	h.lock.RUnlock()

	healthy := true
	results := make(map[string]Result, len(checks))
	for name, checker := range checks {
		start := time.Now()
		details, err := checker.HealthCheck(ctx)
		result := Result{
			Details:   details,
			Timestamp: start,
			Duration:  time.Since(start),
		}
		if err != nil {
			healthy = false
			result.Error = err.Error()
			h.log.Warn("failing health check",
				zap.String("name", name),
				zap.Error(err),
			)
		}
		results[name] = result
	}
	return results, healthy
}
