package livepreview

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vango-dev/mathlive/pkg/markup"
	"github.com/vango-dev/mathlive/pkg/middleware"
	"github.com/vango-dev/mathlive/pkg/pipeline"
)

// Server is the HTTP/WebSocket server of the live preview.
type Server struct {
	engine pipeline.Engine
	config *Config

	// mws wrap the engine of every pipeline the server builds.
	mws []pipeline.Middleware

	router   chi.Router
	upgrader websocket.Upgrader

	sessions   map[uint64]*session
	sessionsMu sync.Mutex
	nextID     atomic.Uint64

	httpServer *http.Server

	logger *slog.Logger
}

// New creates a new Server rendering with engine.
func New(engine pipeline.Engine, config *Config) *Server {
	if config == nil {
		config = DefaultConfig()
	} else {
		defaults := DefaultConfig()
		if config.Address == "" {
			config.Address = defaults.Address
		}
		if config.MaxMessageSize == 0 {
			config.MaxMessageSize = defaults.MaxMessageSize
		}
		if config.ShutdownTimeout == 0 {
			config.ShutdownTimeout = defaults.ShutdownTimeout
		}
		if config.Title == "" {
			config.Title = defaults.Title
		}
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "livepreview")

	s := &Server{
		engine: engine,
		config: config,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
		},
		sessions: make(map[uint64]*session),
		logger:   logger,
	}

	if config.Metrics {
		opts := []middleware.MetricsOption{}
		if config.MetricsNamespace != "" {
			opts = append(opts, middleware.WithNamespace(config.MetricsNamespace))
		}
		if config.Registry != nil {
			opts = append(opts, middleware.WithRegistry(config.Registry))
		}
		s.mws = append(s.mws, middleware.Prometheus(opts...))
	}

	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(s.logRequests)

	r.Get("/", s.handleIndex)
	r.Get("/render", s.handleRender)
	r.Post("/render", s.handleRender)
	r.Get("/ws", s.HandleWebSocket)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	if s.config.Metrics {
		if s.config.Registry != nil {
			r.Handle("/metrics", promhttp.HandlerFor(s.config.Registry, promhttp.HandlerOpts{}))
		} else {
			r.Handle("/metrics", promhttp.Handler())
		}
	}

	return r
}

// logRequests logs every request at debug level.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", chimw.GetReqID(r.Context()))
	})
}

// Use appends engine middlewares applied to every pipeline built after the
// call.
func (s *Server) Use(mws ...pipeline.Middleware) {
	s.mws = append(s.mws, mws...)
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// newPipeline builds a pipeline with the server's engine and middlewares.
func (s *Server) newPipeline(ctx context.Context, opts pipeline.RenderOptions, initial string, logger *slog.Logger) *pipeline.Pipeline {
	mws := append([]pipeline.Middleware{middleware.OpenTelemetry(middleware.WithBaseContext(ctx))}, s.mws...)
	return pipeline.New(s.engine, opts, initial,
		pipeline.WithLogger(logger),
		pipeline.WithPositionUnit(s.config.PositionUnit),
		pipeline.WithMiddleware(mws...),
	)
}

// handleRender renders one text outside any session. GET reads the text
// from the "text" query parameter, POST from a JSON RenderRequest.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req RenderRequest
	if r.Method == http.MethodPost {
		r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxMessageSize)
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid render request: "+err.Error(), http.StatusBadRequest)
			return
		}
	} else {
		req.Text = r.URL.Query().Get("text")
		req.Preset = r.URL.Query().Get("preset")
	}

	opts := s.config.Options
	if req.Preset != "" {
		preset, ok := pipeline.Preset(req.Preset)
		if !ok {
			http.Error(w, "unknown preset "+req.Preset, http.StatusBadRequest)
			return
		}
		opts = preset
	}

	p := s.newPipeline(r.Context(), opts, req.Text, s.logger)
	update := s.newUpdate(p.Result(), opts)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(update); err != nil {
		s.logger.Warn("render response write failed", "error", err)
	}
}

// handleIndex serves the editor page with the initial text rendered.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	p := s.newPipeline(r.Context(), s.config.Options, s.config.Initial, s.logger)
	page := indexPage(s.config.Title, s.config.Initial, s.newUpdate(p.Result(), s.config.Options))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := markup.NewRenderer(markup.RendererConfig{}).RenderPage(w, page); err != nil {
		s.logger.Warn("index write failed", "error", err)
	}
}

// HandleWebSocket upgrades the connection and runs a live session on it
// until the client goes away.
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		middleware.RecordWebSocketError("upgrade")
		return
	}
	conn.SetReadLimit(s.config.MaxMessageSize)

	id := s.nextID.Add(1)
	logger := s.logger.With("session_id", id)
	p := s.newPipeline(r.Context(), s.config.Options, s.config.Initial, logger)
	sess := newSession(id, conn, s, p, logger)

	s.sessionsMu.Lock()
	s.sessions[id] = sess
	s.sessionsMu.Unlock()
	middleware.RecordSessionOpen()

	defer func() {
		s.sessionsMu.Lock()
		delete(s.sessions, id)
		s.sessionsMu.Unlock()
		middleware.RecordSessionClose()
	}()

	sess.ReadLoop()
}

// SessionCount returns the number of open live sessions.
func (s *Server) SessionCount() int {
	s.sessionsMu.Lock()
	defer s.sessionsMu.Unlock()
	return len(s.sessions)
}

// Run starts the server and blocks until shutdown.
func (s *Server) Run() error {
	if err := s.config.Validate(); err != nil {
		return err
	}

	s.httpServer = &http.Server{
		Addr:              s.config.Address,
		Handler:           s,
		ReadHeaderTimeout: s.config.ReadHeaderTimeout,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("server starting", "address", s.config.Address, "options", s.config.Options.String())
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil

	case <-shutdown:
		s.logger.Info("shutting down...")
		return s.Shutdown(context.Background())
	}
}

// Shutdown closes all sessions and gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	s.sessionsMu.Lock()
	sessions := make([]*session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		sessions = append(sessions, sess)
	}
	s.sessionsMu.Unlock()

	for _, sess := range sessions {
		sess.Close()
	}

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
	}

	s.logger.Info("server shutdown complete")
	return nil
}

// Config returns the server configuration.
func (s *Server) Config() *Config {
	return s.config
}

// Logger returns the server logger.
func (s *Server) Logger() *slog.Logger {
	return s.logger
}
