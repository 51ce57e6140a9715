package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/mathlive/internal/config"
	"github.com/vango-dev/mathlive/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ┌┬┐┌─┐┌┬┐┬ ┬┬  ┬┬  ┬┌─┐
  │││├─┤ │ ├─┤│  │└┐┌┘├┤
  ┴ ┴┴ ┴ ┴ ┴ ┴┴─┘┴ └┘ └─┘
`

// Persistent flags shared by all commands.
var (
	configPath  string
	errorFormat string
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		style, _ := errors.ParseStyle(errorFormat)
		errors.FprintStyle(os.Stderr, err, style)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mathlive",
		Short: "Render math markup as you type",
		Long: `mathlive renders TeX math markup to MathML and pinpoints errors.

Every formula goes through a render pipeline that either produces
markup or a diagnostic with a caret under the offending character.
Features include:

  • Command-line rendering of arguments or stdin lines
  • Step-by-step simplification of symbolic expressions
  • Live preview server with WebSocket updates
  • Snapshot publishing to S3`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default mathlive.json, mathlive.yaml or mathlive.yml)")
	cmd.PersistentFlags().StringVar(&errorFormat, "error-format", "text", "Error output: text, compact or json")
	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		_, err := errors.ParseStyle(errorFormat)
		return err
	}

	cmd.AddCommand(
		renderCmd(),
		simplifyCmd(),
		serveCmd(),
		initCmd(),
		versionCmd(),
	)

	return cmd
}

// loadConfig loads the --config file, or the one in the working directory,
// and validates it.
func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.Load(".")
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// printBanner prints the mathlive ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}
