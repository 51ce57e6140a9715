package main

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"
)

type buildInfo struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	Go      string `json:"go"`
	OSArch  string `json:"osArch"`
}

func currentBuild() buildInfo {
	return buildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
		Go:      runtime.Version(),
		OSArch:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

func versionCmd() *cobra.Command {
	var short, asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print version, commit, and build information for the mathlive CLI.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeVersion(cmd.OutOrStdout(), currentBuild(), short, asJSON)
		},
	}

	cmd.Flags().BoolVarP(&short, "short", "s", false, "Print only version number")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print build information as JSON")

	return cmd
}

func writeVersion(w io.Writer, b buildInfo, short, asJSON bool) error {
	switch {
	case short:
		_, err := fmt.Fprintln(w, b.Version)
		return err
	case asJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(b)
	}

	fmt.Fprint(w, banner)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Version:    %s\n", b.Version)
	fmt.Fprintf(w, "  Commit:     %s\n", b.Commit)
	fmt.Fprintf(w, "  Built:      %s\n", b.Date)
	fmt.Fprintf(w, "  Go version: %s\n", b.Go)
	fmt.Fprintf(w, "  OS/Arch:    %s\n", b.OSArch)
	fmt.Fprintln(w, "  Engine:     texmath (MathML)")
	fmt.Fprintln(w)
	return nil
}
