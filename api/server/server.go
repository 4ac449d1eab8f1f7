// Copyright (C) 2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package server maintains the HTTP router the API services hang off of.
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/NYTimes/gziphandler"
	"github.com/gorilla/handlers"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/ava-labs/tokengate/utils/logging"
)

const (
	baseURL               = "/ext"
	serverShutdownTimeout = 10 * time.Second
)

// Server routes API calls to the registered service handlers.
type Server struct {
	log     logging.Logger
	router  *router
	handler http.Handler

	listenHost string
	listenPort uint16

	srv *http.Server
}

// New creates a server that will listen on [host]:[port] once dispatched.
// Responses are gzipped when the caller accepts it and CORS is enforced
// against [allowedOrigins].
func New(log logging.Logger, host string, port uint16, allowedOrigins []string) *Server {
	log.Info("API server created",
		zap.Strings("allowedOrigins", allowedOrigins),
	)

	router := newRouter()
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
	}).Handler(router)
	return &Server{
		log:        log,
		router:     router,
		handler:    gziphandler.GzipHandler(corsHandler),
		listenHost: host,
		listenPort: port,
	}
}

// AddRoute registers [handler] at [base][endpoint] under the API root. Every
// request through the route is access-logged to the server's logger.
func (s *Server) AddRoute(handler http.Handler, base, endpoint string) error {
	url := fmt.Sprintf("%s/%s", baseURL, base)
	s.log.Info("adding route",
		zap.String("url", url),
		zap.String("endpoint", endpoint),
	)
	h := handlers.CombinedLoggingHandler(s.log, handler)
	return s.router.AddRouter(url, endpoint, h)
}

// Dispatch starts the server and blocks until the listener fails or Shutdown
// is called.
func (s *Server) Dispatch() error {
	listenAddress := fmt.Sprintf("%s:%d", s.listenHost, s.listenPort)
	listener, err := net.Listen("tcp", listenAddress)
	if err != nil {
		return err
	}

	s.log.Info("HTTP API server listening",
		zap.String("address", listener.Addr().String()),
	)

	s.srv = &http.Server{Handler: s.handler}
	return s.srv.Serve(listener)
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown() error {
	if s.srv == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), serverShutdownTimeout)
	defer cancel()
	return s.srv.Shutdown(ctx)
}
