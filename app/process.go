// Copyright (C) 2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package app

import (
	"errors"
	"fmt"
	"net/http"
	"sync"

	"go.uber.org/zap"

	"github.com/ava-labs/tokengate/api/health"
	"github.com/ava-labs/tokengate/api/metrics"
	"github.com/ava-labs/tokengate/api/server"
	"github.com/ava-labs/tokengate/balancy"
	"github.com/ava-labs/tokengate/config"
	"github.com/ava-labs/tokengate/evm"
	"github.com/ava-labs/tokengate/evm/balance"
	"github.com/ava-labs/tokengate/gate"
	"github.com/ava-labs/tokengate/utils/logging"
	"github.com/ava-labs/tokengate/utils/wrappers"
	"github.com/ava-labs/tokengate/version"
)

var _ App = (*process)(nil)

// process is a daemon running in this process.
type process struct {
	config config.Config

	logFactory logging.Factory
	log        logging.Logger
	server     *server.Server

	exitWG  sync.WaitGroup
	exitErr error
}

// New returns an App serving the gating API described by [config].
func New(config config.Config) App {
	return &process{
		config: config,
	}
}

// Start the business logic of the daemon (as opposed to config reading,
// etc). Does not block until the daemon is done.
func (p *process) Start() error {
	p.logFactory = logging.NewFactory(p.config.LoggingConfig)
	log, err := p.logFactory.Make("main")
	if err != nil {
		p.logFactory.Close()
		return err
	}
	p.log = log

	if err := p.startServer(); err != nil {
		log.Fatal("failed to start the daemon",
			zap.Error(err),
		)
		log.Stop()
		p.logFactory.Close()
		return err
	}
	return nil
}

// startServer wires the engine to its balance sources, hangs the API
// services off one HTTP server, and kicks off the listener.
func (p *process) startServer() error {
	log := p.log
	log.Info("starting",
		zap.Stringer("version", version.Current),
	)

	registry, metricsHandler := metrics.NewService()

	// One client bounds every upstream call: chain RPC, the indexer, and
	// remote requirement endpoints.
	httpClient := &http.Client{Timeout: p.config.RequestTimeout}

	resolver, err := balance.NewResolver(log, p.config.Providers, httpClient, registry)
	if err != nil {
		return fmt.Errorf("couldn't create the balance resolver: %w", err)
	}

	var source balance.Source = resolver
	if len(p.config.BalancyChains) > 0 {
		indexed := balancy.NewClient(log, p.config.BalancyURL, httpClient)
		byChain := make(map[evm.Chain]balance.Source, len(p.config.BalancyChains))
		for _, chain := range p.config.BalancyChains {
			byChain[chain] = indexed
		}
		source = balance.NewMux(resolver, byChain)
		log.Info("routing balance queries through the indexer",
			zap.Stringers("chains", p.config.BalancyChains),
			zap.String("url", p.config.BalancyURL),
		)
	}

	engine, err := gate.NewEngine(log, source, httpClient, registry)
	if err != nil {
		return fmt.Errorf("couldn't create the gating engine: %w", err)
	}
	gateHandler, err := gate.NewService(log, engine)
	if err != nil {
		return fmt.Errorf("couldn't create the gate API: %w", err)
	}

	checks := health.New(log)
	if err := checks.RegisterCheck("providers", resolver); err != nil {
		return fmt.Errorf("couldn't register the provider health check: %w", err)
	}
	healthHandler, err := health.NewService(log, checks)
	if err != nil {
		return fmt.Errorf("couldn't create the health API: %w", err)
	}

	httpLog, err := p.logFactory.Make("http")
	if err != nil {
		return fmt.Errorf("couldn't make http logger: %w", err)
	}
	p.server = server.New(httpLog, p.config.HTTPHost, p.config.HTTPPort, p.config.APIAllowedOrigins)

	errs := wrappers.Errs{}
	errs.Add(
		p.server.AddRoute(gateHandler, "gate", ""),
		p.server.AddRoute(healthHandler, "health", ""),
		p.server.AddRoute(metricsHandler, "metrics", ""),
	)
	if errs.Errored() {
		return errs.Err
	}

	// [p.ExitCode] will block until [p.exitWG.Done] is called
	p.exitWG.Add(1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				fmt.Println("caught panic", r)
			}
			log.Stop()
			p.logFactory.Close()
			p.exitWG.Done()
		}()
		defer log.StopOnPanic()

		err := p.server.Dispatch()
		if errors.Is(err, http.ErrServerClosed) {
			// Shutdown was requested, which is not a failure.
			err = nil
		}
		p.exitErr = err
		log.Debug("dispatch returned",
			zap.Error(err),
		)
	}()
	return nil
}

// Stop attempts to shut down the currently running daemon. This function
// returns once in-flight requests have drained.
func (p *process) Stop() error {
	return p.server.Shutdown()
}

// ExitCode returns the exit code the daemon is reporting. This function
// blocks until the daemon has been shut down.
func (p *process) ExitCode() (int, error) {
	p.exitWG.Wait()
	if p.exitErr != nil {
		return 1, p.exitErr
	}
	return 0, nil
}
