// Copyright (C) 2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package health

import (
	"net/http"

	"github.com/gorilla/rpc/v2"
	"go.uber.org/zap"

	"github.com/ava-labs/tokengate/utils/json"
	"github.com/ava-labs/tokengate/utils/logging"
)

// Service is the API service for health checks.
type Service struct {
	log    logging.Logger
	health Health
}

// NewService returns an HTTP handler exposing [health] over JSON-RPC 2.0
// under the "health" namespace.
func NewService(log logging.Logger, health Health) (http.Handler, error) {
	server := rpc.NewServer()
	codec := json.NewCodec()
	server.RegisterCodec(codec, "application/json")
	server.RegisterCodec(codec, "application/json;charset=UTF-8")
	return server, server.RegisterService(&Service{
		log:    log,
		health: health,
	}, "health")
}

type APIReply struct {
	Checks  map[string]Result `json:"checks"`
	Healthy bool              `json:"healthy"`
}

// Health runs every registered check and reports the aggregate.
func (s *Service) Health(r *http.Request, _ *struct{}, reply *APIReply) error {
	s.log.Debug("API called",
		zap.String("service", "health"),
		zap.String("method", "health"),
	)
	reply.Checks, reply.Healthy = s.health.Results(r.Context())
	return nil
}
