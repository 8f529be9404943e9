// Package httpapi exposes the engine over JSON HTTP. Every route
// decodes a request DTO, dispatches through the mediator and maps the
// resulting domain error to a status code; game rules live below.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/andrescamacho/farmchain-go/internal/application/logging"
	"github.com/andrescamacho/farmchain-go/internal/application/mediator"
)

const shutdownGrace = 10 * time.Second

// Server holds the route tree and the dispatcher behind it.
type Server struct {
	dispatcher mediator.Mediator
	router     *mux.Router
	logger     logging.Logger
}

// NewServer wires the routes around a mediator. A nil logger falls
// back to the process logger at INFO.
func NewServer(dispatcher mediator.Mediator, logger logging.Logger) *Server {
	if logger == nil {
		logger = logging.NewStdLogger("INFO")
	}
	s := &Server{
		dispatcher: dispatcher,
		router:     mux.NewRouter(),
		logger:     logger,
	}
	s.addRoutes()
	return s
}

// Handler exposes the route tree, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start begins serving on listenAddr and returns a function that
// drains in-flight requests and stops the listener.
func (s *Server) Start(listenAddr string) func() {
	httpServer := &http.Server{
		Addr:              listenAddr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Log("ERROR", "http server stopped", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			s.logger.Log("ERROR", "http server shutdown failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
}
