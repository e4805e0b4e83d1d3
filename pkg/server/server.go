package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/coreos/go-systemd/v22/daemon"
	"golang.org/x/sync/errgroup"

	concherrors "github.com/NVIDIA/conch/pkg/errors"
)

// Server serves registered handlers next to the system endpoints.
type Server struct {
	name     string
	version  string
	config   *Config
	handlers map[string]http.Handler
	log      *slog.Logger
	onListen func(addr net.Addr)

	mu      sync.RWMutex
	ready   bool
	addr    net.Addr
	started time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithName sets the service name reported on the default route.
func WithName(name string) Option {
	return func(s *Server) {
		s.name = name
	}
}

// WithVersion sets the service version reported on the default route.
func WithVersion(version string) Option {
	return func(s *Server) {
		s.version = version
	}
}

// WithHandler registers handlers by route pattern. It may be given more than once.
func WithHandler(handlers map[string]http.Handler) Option {
	return func(s *Server) {
		for pattern, h := range handlers {
			s.handlers[pattern] = h
		}
	}
}

// WithConfig replaces the server configuration.
func WithConfig(cfg *Config) Option {
	return func(s *Server) {
		if cfg != nil {
			s.config = cfg
		}
	}
}

// WithAddress sets the host to listen on. Empty means all interfaces.
func WithAddress(host string) Option {
	return func(s *Server) {
		s.config.Address = host
	}
}

// WithPort sets the port to listen on. Zero picks a free port.
func WithPort(port int) Option {
	return func(s *Server) {
		s.config.Port = port
	}
}

// WithLogger sets the logger used by the server.
func WithLogger(log *slog.Logger) Option {
	return func(s *Server) {
		s.log = log
	}
}

// WithOnListen sets a callback invoked once with the bound address.
func WithOnListen(fn func(addr net.Addr)) Option {
	return func(s *Server) {
		s.onListen = fn
	}
}

// New creates a server with DefaultConfig, modified by opts.
func New(opts ...Option) *Server {
	s := &Server{
		name:     "conch",
		version:  "dev",
		config:   DefaultConfig(),
		handlers: map[string]http.Handler{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	return s
}

// Ready reports whether the server is bound and serving.
func (s *Server) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// Addr returns the bound address, or nil before Run binds.
func (s *Server) Addr() net.Addr {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.addr
}

// Run binds the listener and serves until ctx is cancelled. A bind failure
// is returned immediately with code UNAVAILABLE.
func (s *Server) Run(ctx context.Context) error {
	address := net.JoinHostPort(s.config.Address, strconv.Itoa(s.config.Port))

	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", address)
	if err != nil {
		return concherrors.Wrap(concherrors.ErrCodeUnavailable,
			fmt.Sprintf("failed to listen on %s", address), err)
	}

	srv := &http.Server{
		Handler:           s.setupRoutes(),
		ReadTimeout:       s.config.ReadTimeout,
		ReadHeaderTimeout: s.config.ReadHeaderTimeout,
		WriteTimeout:      s.config.WriteTimeout,
		IdleTimeout:       s.config.IdleTimeout,
		ErrorLog:          slog.NewLogLogger(s.log.Handler(), slog.LevelWarn),
	}

	s.setReady(true, ln.Addr())
	serverUp.WithLabelValues(s.name, s.version).Set(1)
	s.log.Debug("listener bound", "name", s.name, "address", ln.Addr().String())
	if s.onListen != nil {
		s.onListen(ln.Addr())
	}
	s.notify(daemon.SdNotifyReady)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		s.setReady(false, nil)
		serverUp.WithLabelValues(s.name, s.version).Set(0)
		s.notify(daemon.SdNotifyStopping)
		s.log.Info("shutting down", "name", s.name, "timeout", s.config.ShutdownTimeout.String())

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return concherrors.Wrap(concherrors.ErrCodeTimeout, "graceful shutdown failed", err)
		}
		return nil
	})

	return g.Wait()
}

func (s *Server) setReady(ready bool, addr net.Addr) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = ready
	if addr != nil {
		s.addr = addr
		s.started = time.Now()
	}
}

// notify sends state to systemd. It is a no-op outside a notify unit.
func (s *Server) notify(state string) {
	sent, err := daemon.SdNotify(false, state)
	if err != nil {
		s.log.Warn("systemd notification failed", "state", state, "error", err)
		return
	}
	if sent {
		s.log.Debug("systemd notified", "state", state)
	}
}
