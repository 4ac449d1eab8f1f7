// Copyright (C) 2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package gate

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ava-labs/tokengate/utils/metric"
	"github.com/ava-labs/tokengate/utils/wrappers"
)

type metrics struct {
	metric.APIInterceptor

	// numRoleChecks counts role evaluations started, batched or single.
	numRoleChecks prometheus.Counter

	// numRequirementChecks counts batched requirement checks issued
	// upstream.
	numRequirementChecks prometheus.Counter

	// numFailures counts role evaluations that returned an error.
	numFailures prometheus.Counter
}

func newMetrics(namespace string, registerer prometheus.Registerer) (*metrics, error) {
	m := &metrics{
		numRoleChecks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "role_checks",
			Help:      "Number of role evaluations started",
		}),
		numRequirementChecks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requirement_checks",
			Help:      "Number of batched requirement checks issued",
		}),
		numFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "check_failures",
			Help:      "Number of role evaluations that failed",
		}),
	}

	apiRequestMetrics, err := metric.NewAPIInterceptor(namespace, registerer)
	m.APIInterceptor = apiRequestMetrics

	errs := wrappers.Errs{Err: err}
	errs.Add(
		registerer.Register(m.numRoleChecks),
		registerer.Register(m.numRequirementChecks),
		registerer.Register(m.numFailures),
	)
	return m, errs.Err
}
