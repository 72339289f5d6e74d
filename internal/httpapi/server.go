package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// Server wraps the HTTP server and its router.
type Server struct {
	httpServer *http.Server
	router     *mux.Router
}

// NewServer creates a server listening on addr with the handler's routes mounted.
func NewServer(addr string, handler *Handler) *Server {
	router := mux.NewRouter()
	handler.RegisterRoutes(router)

	return &Server{
		router: router,
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  120 * time.Second,
		},
	}
}

// Start begins listening for HTTP connections. It blocks until the server stops.
func (s *Server) Start() error {
	fmt.Printf("Listening on %s\n", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
