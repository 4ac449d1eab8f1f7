// Copyright (C) 2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package metrics exposes the process metrics registry over HTTP.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewService returns the registry components register their metrics on,
// along with the handler serving it in the prometheus exposition format.
func NewService() (*prometheus.Registry, http.Handler) {
	registry := prometheus.NewRegistry()
	handler := promhttp.InstrumentMetricHandler(
		registry,
		promhttp.HandlerFor(
			registry,
			promhttp.HandlerOpts{},
		),
	)
	return registry, handler
}
