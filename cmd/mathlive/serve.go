package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/mathlive/internal/config"
	"github.com/vango-dev/mathlive/internal/errors"
	"github.com/vango-dev/mathlive/internal/logging"
	"github.com/vango-dev/mathlive/pkg/livepreview"
	"github.com/vango-dev/mathlive/pkg/texmath"
)

func serveCmd() *cobra.Command {
	var (
		port    int
		host    string
		preset  string
		initial string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the live preview server",
		Long: `Start the live preview server.

Open the printed URL and type into the editor: every change is
rendered on the server and pushed back over a WebSocket. Errors are
shown with a caret under the offending character.

Examples:
  mathlive serve
  mathlive serve --port=8080
  mathlive serve --preset=inline --initial='e^{i\pi}'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			if port > 0 {
				cfg.Server.Port = port
			}
			if host != "" {
				cfg.Server.Host = host
			}
			if preset != "" {
				cfg.Render.Preset = preset
			}
			if cmd.Flags().Changed("initial") {
				cfg.Server.Initial = initial
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			return runServe(cfg)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to run on (default from config)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from config)")
	cmd.Flags().StringVar(&preset, "preset", "", "Render preset: display or inline (default from config)")
	cmd.Flags().StringVar(&initial, "initial", "", "Text a new editor starts with (default from config)")

	return cmd
}

func runServe(cfg *config.Config) error {
	logger, err := logging.New(os.Stderr, cfg.Log)
	if err != nil {
		return err
	}
	defer logger.Close()
	slog.SetDefault(logger.Logger)

	lpc, err := previewConfig(cfg, logger.Logger)
	if err != nil {
		return err
	}

	printBanner()
	fmt.Println("  serve")
	fmt.Println()
	success("Live preview at %s", cfg.URL())
	info("Options:  %s", lpc.Options.String())
	if lpc.Metrics {
		info("Metrics:  %s/metrics", cfg.URL())
	}
	fmt.Println()

	server := livepreview.New(texmath.New(), lpc)
	if err := server.Run(); err != nil {
		return errors.New("M160").Wrap(err).WithDetail(err.Error())
	}
	return nil
}

// previewConfig builds the live preview configuration from cfg.
func previewConfig(cfg *config.Config, logger *slog.Logger) (*livepreview.Config, error) {
	opts, err := cfg.RenderOptions()
	if err != nil {
		return nil, err
	}
	unit, err := cfg.PositionUnit()
	if err != nil {
		return nil, err
	}

	lpc := livepreview.DefaultConfig()
	lpc.Address = cfg.Address()
	lpc.Options = opts
	lpc.Initial = cfg.Server.Initial
	lpc.PositionUnit = unit
	lpc.Sanitize = cfg.Server.Sanitize
	lpc.Metrics = cfg.Metrics.Enabled
	lpc.MetricsNamespace = cfg.Metrics.Namespace
	lpc.Logger = logger

	if err := lpc.Validate(); err != nil {
		return nil, errors.Newf(errors.CategoryServer, "%s", err.Error()).Wrap(err)
	}
	return lpc, nil
}
