package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vango-dev/mathlive/internal/config"
	"github.com/vango-dev/mathlive/internal/errors"
)

func initCmd() *cobra.Command {
	var (
		asYAML bool
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Write a default configuration file",
		Long: `Write a configuration file with every default spelled out.

The file is mathlive.json, or mathlive.yaml with --yaml. An existing
file is only replaced with --force.

Examples:
  mathlive init
  mathlive init --yaml ./docs`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			return runInit(cmd.OutOrStdout(), dir, asYAML, force)
		},
	}

	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Write mathlive.yaml instead of mathlive.json")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Replace an existing config file")

	return cmd
}

func runInit(w io.Writer, dir string, asYAML, force bool) error {
	name := config.ConfigFileName
	if asYAML {
		name = "mathlive.yaml"
	}
	path := filepath.Join(dir, name)

	if !force {
		if existing := config.Find(dir); existing != "" {
			return errors.Newf(errors.CategoryCLI, "%s already exists", existing).
				WithSuggestion("Use --force to replace it")
		}
	}

	if err := config.New().SaveTo(path); err != nil {
		return err
	}

	fmt.Fprintf(w, "Wrote %s\n", path)
	return nil
}
