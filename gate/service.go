// Copyright (C) 2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package gate

import (
	"net/http"

	"github.com/gorilla/rpc/v2"
	"go.uber.org/zap"

	"github.com/ava-labs/tokengate/identity"
	"github.com/ava-labs/tokengate/utils/json"
	"github.com/ava-labs/tokengate/utils/logging"
)

// Service is the API service backed by an engine.
type Service struct {
	log    logging.Logger
	engine *Engine
}

// NewService returns an HTTP handler exposing [engine] over JSON-RPC 2.0
// under the "gate" namespace.
func NewService(log logging.Logger, engine *Engine) (http.Handler, error) {
	server := rpc.NewServer()
	codec := json.NewCodec()
	server.RegisterCodec(codec, "application/json")
	server.RegisterCodec(codec, "application/json;charset=UTF-8")
	server.RegisterInterceptFunc(engine.metrics.InterceptRequest)
	server.RegisterAfterFunc(engine.metrics.AfterRequest)
	return server, server.RegisterService(&Service{
		log:    log,
		engine: engine,
	}, "gate")
}

type CheckRoleArgs struct {
	Role  Role            `json:"role"`
	Users []identity.User `json:"users"`
}

type CheckRoleReply struct {
	Accesses []bool `json:"accesses"`
}

// CheckRole evaluates a role for a batch of users.
func (s *Service) CheckRole(r *http.Request, args *CheckRoleArgs, reply *CheckRoleReply) error {
	s.log.Debug("API called",
		zap.String("service", "gate"),
		zap.String("method", "checkRole"),
		logging.UserString("role", args.Role.ID),
		zap.Int("numUsers", len(args.Users)),
	)

	accesses, err := s.engine.CheckRole(r.Context(), &args.Role, args.Users)
	if err != nil {
		return err
	}
	reply.Accesses = accesses
	return nil
}

type CheckUserArgs struct {
	Role Role          `json:"role"`
	User identity.User `json:"user"`
}

type CheckUserReply struct {
	Access bool `json:"access"`
}

// CheckUser evaluates a role for a single user.
func (s *Service) CheckUser(r *http.Request, args *CheckUserArgs, reply *CheckUserReply) error {
	s.log.Debug("API called",
		zap.String("service", "gate"),
		zap.String("method", "checkUser"),
		logging.UserString("role", args.Role.ID),
		zap.Uint64("user", args.User.ID),
	)

	access, err := s.engine.CheckUser(r.Context(), &args.Role, args.User)
	if err != nil {
		return err
	}
	reply.Access = access
	return nil
}

type ValidateRoleArgs struct {
	Role Role `json:"role"`
}

type ValidateRoleReply struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

// ValidateRole reports whether a role is evaluable without issuing any
// upstream calls. Malformed roles land in Reason rather than an RPC error so
// that role authors can lint drafts.
func (s *Service) ValidateRole(_ *http.Request, args *ValidateRoleArgs, reply *ValidateRoleReply) error {
	s.log.Debug("API called",
		zap.String("service", "gate"),
		zap.String("method", "validateRole"),
		logging.UserString("role", args.Role.ID),
	)

	if err := args.Role.Validate(); err != nil {
		reply.Reason = err.Error()
		return nil
	}
	reply.Valid = true
	return nil
}
