package httpserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/angeloszaimis/host-health/config"
)

// Server wraps http.Server with address validation and graceful shutdown.
type Server struct {
	server *http.Server
}

// New creates a server for addr. The address is validated before the
// server is built.
func New(addr string, handler http.Handler) (*Server, error) {
	if err := config.ValidateHostPort(addr); err != nil {
		return nil, err
	}

	srv := &Server{
		server: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			// Long enough for a waited trigger to outlast the probe timeout.
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}

	return srv, nil
}

// Start listens on the configured address.
// Returns an error unless the server is shut down cleanly.
func (s *Server) Start() error {
	return closed(s.server.ListenAndServe())
}

// Serve accepts connections on ln instead of opening its own listener.
func (s *Server) Serve(ln net.Listener) error {
	return closed(s.server.Serve(ln))
}

// Shutdown gracefully shuts down the server with a 5-second timeout.
func (s *Server) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return s.server.Shutdown(shutdownCtx)
}

func closed(err error) error {
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
