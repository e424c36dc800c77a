// Package status provides the read-only HTTP and WebSocket status surface.
//
// It exposes liveness, the most recent cycle, Prometheus metrics and a live
// stream of cycle reports. Nothing here can steer the acquisition loop.
//
// The server follows the same lifecycle pattern as other infrastructure components:
//
//	srv, err := status.New(deps)
//	srv.Start(ctx)
//	defer srv.Close()
//
// Thread Safety: All methods are safe for concurrent use from multiple goroutines.
package status

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/Meapy011/Boimebubble/internal/acquisition"
	"github.com/Meapy011/Boimebubble/internal/infrastructure/config"
	"github.com/Meapy011/Boimebubble/internal/infrastructure/logging"
)

// gracefulShutdownTimeout is the maximum time to wait for in-flight requests
// to complete during shutdown.
const gracefulShutdownTimeout = 5 * time.Second

// Server timeouts. The surface is tiny, so these are not configurable.
const (
	readTimeout  = 5 * time.Second
	writeTimeout = 10 * time.Second
	idleTimeout  = 60 * time.Second
)

// HealthChecker is the part of an ingest transport the health endpoint probes.
type HealthChecker interface {
	Name() string
	HealthCheck(ctx context.Context) error
}

// Deps holds the dependencies required by the status server.
type Deps struct {
	Config  config.StatusConfig
	Logger  *logging.Logger
	Ingest  HealthChecker // optional
	Version string
}

// Server is the status HTTP server. It also implements acquisition.Observer
// so the loop can feed it state changes and cycle reports.
type Server struct {
	acquisition.NopObserver

	cfg     config.StatusConfig
	logger  *logging.Logger
	ingest  HealthChecker
	version string
	started time.Time

	hub    *Hub
	server *http.Server
	addr   string
	cancel context.CancelFunc

	mu     sync.RWMutex
	state  acquisition.State
	latest *CycleView
}

// New creates a status server. It is not listening until Start is called.
//
// Returns:
//   - *Server: Configured server ready to start
//   - error: If required dependencies are missing
func New(deps Deps) (*Server, error) {
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	return &Server{
		cfg:     deps.Config,
		logger:  deps.Logger,
		ingest:  deps.Ingest,
		version: deps.Version,
		started: time.Now(),
		hub:     NewHub(deps.Logger),
		state:   acquisition.StateInitializing,
	}, nil
}

// Start binds the listener and serves in a background goroutine.
//
// Parameters:
//   - ctx: Parent context for the WebSocket hub
//
// Returns:
//   - error: If the listener cannot be bound (port in use, etc.)
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port))
	if err != nil {
		return fmt.Errorf("binding status server: %w", err)
	}

	var srvCtx context.Context
	srvCtx, s.cancel = context.WithCancel(ctx)
	go s.hub.Run(srvCtx)

	s.server = &http.Server{
		Handler:           s.buildRouter(),
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}
	s.addr = ln.Addr().String()

	go func() {
		s.logger.Info("status server listening", "address", s.addr)
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("status server error", "error", err)
		}
	}()

	return nil
}

// Addr returns the bound address, or "" before Start.
func (s *Server) Addr() string {
	return s.addr
}

// Close gracefully shuts down the server and disconnects WebSocket clients.
//
// Returns:
//   - error: If shutdown encounters an error
func (s *Server) Close() error {
	if s.server == nil {
		return nil
	}

	if s.cancel != nil {
		s.cancel()
	}

	ctx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()

	s.logger.Info("status server shutting down")
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down status server: %w", err)
	}
	return nil
}

// StateChanged records the loop state and pushes it to WebSocket clients.
func (s *Server) StateChanged(st acquisition.State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()

	s.hub.Broadcast(ChannelState, map[string]string{"state": string(st)})
}

// CycleFinished keeps the report for /api/v1/latest and streams it.
func (s *Server) CycleFinished(report acquisition.CycleReport) {
	view := NewCycleView(report)

	s.mu.Lock()
	s.latest = &view
	s.mu.Unlock()

	s.hub.Broadcast(ChannelCycle, view)
}

// snapshot returns the current state and latest cycle under the read lock.
func (s *Server) snapshot() (acquisition.State, *CycleView) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state, s.latest
}
