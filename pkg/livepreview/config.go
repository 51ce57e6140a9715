package livepreview

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/vango-dev/mathlive/pkg/pipeline"
)

// Config holds configuration for the live preview server.
type Config struct {
	// Address is the address to listen on (e.g., ":5173", "localhost:5173").
	Address string

	// Options are the render options every session's pipeline is built with.
	Options pipeline.RenderOptions

	// Initial is the text shown when a page is first opened.
	Initial string

	// PositionUnit is the unit the engine reports failure positions in.
	PositionUnit pipeline.PositionUnit

	// Sanitize filters rendered markup through a MathML allow-list when the
	// options do not trust the input.
	Sanitize bool

	// Metrics enables the Prometheus middleware and the /metrics endpoint.
	Metrics bool

	// MetricsNamespace is the Prometheus namespace (default: "mathlive").
	MetricsNamespace string

	// Registry, when set, receives the render metrics and backs /metrics
	// instead of the default Prometheus registry.
	Registry *prometheus.Registry

	// ReadBufferSize is the WebSocket read buffer size.
	ReadBufferSize int

	// WriteBufferSize is the WebSocket write buffer size.
	WriteBufferSize int

	// MaxMessageSize is the largest client message accepted, in bytes.
	MaxMessageSize int64

	// IdleTimeout closes a session that sends nothing for this long.
	// Zero disables the timeout.
	IdleTimeout time.Duration

	// ReadHeaderTimeout bounds reading request headers.
	ReadHeaderTimeout time.Duration

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration

	// Title is the page title.
	Title string

	// Logger is the server logger. Defaults to slog.Default().
	Logger *slog.Logger
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Address:           "localhost:5173",
		Options:           pipeline.DisplayPreset(),
		Initial:           `\frac{1}{2}`,
		PositionUnit:      pipeline.UnitRune,
		Sanitize:          true,
		Metrics:           true,
		MetricsNamespace:  "mathlive",
		ReadBufferSize:    4096,
		WriteBufferSize:   4096,
		MaxMessageSize:    64 * 1024,
		IdleTimeout:       30 * time.Minute,
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   10 * time.Second,
		Title:             "mathlive",
	}
}

// Validate checks the configuration for values the server cannot run with.
func (c *Config) Validate() error {
	if c.Address == "" {
		return fmt.Errorf("livepreview: address is required")
	}
	if c.MaxMessageSize <= 0 {
		return fmt.Errorf("livepreview: max message size must be positive, got %d", c.MaxMessageSize)
	}
	if c.IdleTimeout < 0 {
		return fmt.Errorf("livepreview: idle timeout must not be negative")
	}
	return nil
}
