// Copyright (C) 2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package gate

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ava-labs/tokengate/evm/balance"
	"github.com/ava-labs/tokengate/identity"
	"github.com/ava-labs/tokengate/requirement"
	"github.com/ava-labs/tokengate/utils/logging"
)

const metricsNamespace = "gate"

// Engine evaluates roles against user batches. An engine holds no per-role
// state; one instance serves any number of concurrent evaluations.
type Engine struct {
	log     logging.Logger
	checker *requirement.Checker
	metrics *metrics
}

// NewEngine returns an engine that resolves balance requirements through
// [source] and remote requirements through [client]. A nil [client] falls
// back to http.DefaultClient and a nil [registerer] keeps the engine's
// metrics private.
func NewEngine(
	log logging.Logger,
	source balance.Source,
	client *http.Client,
	registerer prometheus.Registerer,
) (*Engine, error) {
	if registerer == nil {
		registerer = prometheus.NewRegistry()
	}
	metrics, err := newMetrics(metricsNamespace, registerer)
	if err != nil {
		return nil, fmt.Errorf("cannot register metrics: %w", err)
	}
	return &Engine{
		log:     log,
		checker: requirement.NewChecker(log, source, client),
		metrics: metrics,
	}, nil
}

// CheckUser reports whether [user] gets [role].
func (e *Engine) CheckUser(ctx context.Context, role *Role, user identity.User) (bool, error) {
	accesses, err := e.CheckRole(ctx, role, []identity.User{user})
	if err != nil {
		return false, err
	}
	return accesses[0], nil
}

// CheckRole evaluates [role] for every user in [users] and returns one
// boolean per user, in input order.
//
// Each requirement is checked with a single batched upstream call covering
// every matching identity in the batch, and the requirements run
// concurrently, so the number of round trips is bounded by the requirement
// count. A user's result for a requirement is the OR over the user's
// matching identities (false with none); the logic expression combines the
// per-requirement results and the role's filter, if any, has the final word.
func (e *Engine) CheckRole(ctx context.Context, role *Role, users []identity.User) ([]bool, error) {
	e.metrics.numRoleChecks.Inc()

	tree, err := role.compile()
	if err != nil {
		e.metrics.numFailures.Inc()
		return nil, err
	}

	e.log.Debug("checking role",
		logging.UserString("role", role.ID),
		zap.Int("numUsers", len(users)),
		zap.Int("numRequirements", len(role.Requirements)),
	)

	accessesPerReq := make([][]bool, len(role.Requirements))
	eg, egCtx := errgroup.WithContext(ctx)
	for i := range role.Requirements {
		i := i
		req := &role.Requirements[i]
		eg.Go(func() error {
			accesses, err := e.checkRequirement(egCtx, req, users)
			if err != nil {
				return fmt.Errorf("requirement %d: %w", i, err)
			}
			accessesPerReq[i] = accesses
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		e.metrics.numFailures.Inc()
		return nil, fmt.Errorf("role %s: %w", role.ID, err)
	}

	accesses := make([]bool, len(users))
	for u := range users {
		results := make([]bool, len(role.Requirements))
		for i := range accessesPerReq {
			results[i] = accessesPerReq[i][u]
		}
		accesses[u] = tree.Evaluate(results)
	}

	if role.Filter != nil {
		for u, ok := range role.Filter.Matches(users) {
			accesses[u] = accesses[u] && ok
		}
	}
	return accesses, nil
}

// checkRequirement runs one batched check of [req] over every matching
// identity in [users] and folds the per-identity results back into one
// boolean per user.
func (e *Engine) checkRequirement(
	ctx context.Context,
	req *requirement.Requirement,
	users []identity.User,
) ([]bool, error) {
	var (
		owners     []int
		identities []string
	)
	for u := range users {
		for _, value := range users[u].IdentitiesOf(req.IdentityKind) {
			owners = append(owners, u)
			identities = append(identities, value)
		}
	}

	e.metrics.numRequirementChecks.Inc()
	results, err := e.checker.CheckBatch(ctx, req, identities)
	if err != nil {
		return nil, err
	}

	accesses := make([]bool, len(users))
	for i, ok := range results {
		if ok {
			accesses[owners[i]] = true
		}
	}
	return accesses, nil
}
