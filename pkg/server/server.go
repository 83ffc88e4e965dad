package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"

	"daybook-hq/daybook/pkg/config"
	"daybook-hq/daybook/pkg/http1"
	"daybook-hq/daybook/pkg/telemetry/metrics"
)

// Server accepts TCP connections and serves one HTTP request per connection.
type Server struct {
	config    *config.ServerConfig
	router    *http1.Router
	limits    http1.Limits
	collector *metrics.Collector
	logger    *slog.Logger

	mu        sync.RWMutex
	listener  net.Listener
	isRunning bool

	shutdownOnce sync.Once
	shutdownChan chan struct{}
	connWG       sync.WaitGroup
}

// NewServer creates a server for the router. collector may be nil to disable
// metrics recording.
func NewServer(cfg *config.ServerConfig, router *http1.Router, collector *metrics.Collector) *Server {
	return &Server{
		config:       cfg,
		router:       router,
		limits:       http1.Limits{MaxHeaderBytes: cfg.MaxHeaderBytes, MaxBodyBytes: cfg.MaxBodyBytes},
		collector:    collector,
		logger:       slog.Default().With("component", "server"),
		shutdownChan: make(chan struct{}),
	}
}

// Start listens on the configured address and blocks serving connections
// until the context is cancelled or Shutdown is called.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return fmt.Errorf("server is already running")
	}

	listener, err := net.Listen("tcp", s.config.ListenAddress)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to listen on %q: %w", s.config.ListenAddress, err)
	}
	s.listener = listener
	s.isRunning = true
	s.mu.Unlock()

	s.logger.Info("server listening", "address", listener.Addr().String())

	errChan := make(chan error, 1)
	go func() {
		errChan <- s.acceptLoop(listener)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("context cancelled, initiating shutdown")
		return s.Shutdown(context.Background())
	case <-s.shutdownChan:
		return nil
	case err := <-errChan:
		return err
	}
}

// acceptLoop accepts connections until the listener is closed.
func (s *Server) acceptLoop(listener net.Listener) error {
	for {
		conn, err := listener.Accept()
		if err != nil {
			select {
			case <-s.shutdownChan:
				return nil
			default:
			}
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("accept failed: %w", err)
		}

		s.connWG.Add(1)
		go func() {
			defer s.connWG.Done()
			s.handleConn(conn)
		}()
	}
}

// handleConn serves exactly one request on the connection and closes it.
func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()

	if s.collector != nil {
		s.collector.ConnOpened()
		defer s.collector.ConnClosed()
	}

	requestID := uuid.NewString()
	logger := s.logger.With("request_id", requestID, "remote", conn.RemoteAddr().String())
	start := time.Now()

	if err := conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout)); err != nil {
		logger.Warn("failed to set read deadline", "error", err)
		return
	}

	req, err := http1.ReadRequest(conn, s.limits)
	if err != nil {
		s.writeEarlyError(conn, logger, err)
		return
	}

	ctx := context.Background()
	resp := s.router.Dispatch(ctx, req)

	if err := s.writeResponse(conn, resp); err != nil {
		logger.Warn("failed to write response", "error", err)
		return
	}

	duration := time.Since(start)
	if s.collector != nil {
		s.collector.RecordRequest(req.Method, pathLabel(req.Path, resp.Status), resp.Status, duration)
	}
	logger.Info("request served",
		"method", req.Method,
		"path", req.Path,
		"status", resp.Status,
		"duration_ms", duration.Milliseconds(),
	)
}

// writeEarlyError maps a framing or parse failure to a 400 or 413 response
// before any handler runs.
func (s *Server) writeEarlyError(conn net.Conn, logger *slog.Logger, err error) {
	var resp *http1.Response

	var sizeErr *http1.SizeLimitError
	var parseErr *http1.ParseError
	switch {
	case errors.As(err, &sizeErr):
		if s.collector != nil {
			s.collector.RecordSizeLimitRejection(sizeErr.What)
		}
		resp = http1.Text(413, "Payload Too Large")
	case errors.As(err, &parseErr):
		if s.collector != nil {
			s.collector.RecordParseError()
		}
		resp = http1.Text(400, "Bad Request")
	default:
		// Read error or deadline expiry with nothing to answer.
		logger.Debug("connection aborted before request completed", "error", err)
		return
	}

	logger.Warn("request rejected before dispatch", "error", err, "status", resp.Status)
	if werr := s.writeResponse(conn, resp); werr != nil {
		logger.Debug("failed to write error response", "error", werr)
	}
}

// writeResponse applies the write deadline and sends the framed response in a
// single write.
func (s *Server) writeResponse(conn net.Conn, resp *http1.Response) error {
	if err := conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout)); err != nil {
		return err
	}
	return resp.Write(conn)
}

// Shutdown stops accepting connections and waits for in-flight requests up to
// the configured shutdown timeout.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.mu.Lock()
		if !s.isRunning {
			s.mu.Unlock()
			return
		}
		s.isRunning = false
		listener := s.listener
		s.mu.Unlock()

		s.logger.Info("initiating graceful shutdown", "timeout", s.config.ShutdownTimeout.String())
		close(s.shutdownChan)

		if listener != nil {
			if err := listener.Close(); err != nil {
				shutdownErr = err
			}
		}

		done := make(chan struct{})
		go func() {
			s.connWG.Wait()
			close(done)
		}()

		timeout := s.config.ShutdownTimeout
		if deadline, ok := ctx.Deadline(); ok {
			if until := time.Until(deadline); until < timeout {
				timeout = until
			}
		}

		select {
		case <-done:
			s.logger.Info("all connections drained")
		case <-time.After(timeout):
			s.logger.Warn("shutdown timeout reached with connections still open")
			shutdownErr = fmt.Errorf("shutdown timed out after %s", timeout)
		}
	})

	return shutdownErr
}

// Addr returns the bound listener address, usable when the configured port
// was 0.
func (s *Server) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// IsRunning reports whether the server is accepting connections.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// pathLabel bounds metric label cardinality: unmatched paths collapse to one
// label value.
func pathLabel(path string, status int) string {
	if status == 404 {
		return "unmatched"
	}
	return path
}
