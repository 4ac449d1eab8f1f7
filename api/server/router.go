// Copyright (C) 2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package server

import (
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/mux"
)

var (
	errUnknownBaseURL  = errors.New("unknown base url")
	errUnknownEndpoint = errors.New("unknown endpoint")
	errAlreadyRouted   = errors.New("route already maps to a handler")
)

// router routes requests to the handler registered for each base URL and
// endpoint pair. Routes can be added while the server is running.
type router struct {
	lock   sync.RWMutex
	router *mux.Router

	routes map[string]map[string]http.Handler
}

func newRouter() *router {
	return &router{
		router: mux.NewRouter(),
		routes: make(map[string]map[string]http.Handler),
	}
}

func (r *router) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	r.router.ServeHTTP(writer, request)
}

func (r *router) GetHandler(base, endpoint string) (http.Handler, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	urlRoutes, exists := r.routes[base]
	if !exists {
		return nil, errUnknownBaseURL
	}
	handler, exists := urlRoutes[endpoint]
	if !exists {
		return nil, errUnknownEndpoint
	}
	return handler, nil
}

func (r *router) AddRouter(base, endpoint string, handler http.Handler) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	endpoints, exists := r.routes[base]
	if !exists {
		endpoints = make(map[string]http.Handler)
		r.routes[base] = endpoints
	}
	if _, exists := endpoints[endpoint]; exists {
		return fmt.Errorf("%w: %s%s", errAlreadyRouted, base, endpoint)
	}
	endpoints[endpoint] = handler

	r.router.Handle(base+endpoint, handler)
	return nil
}
