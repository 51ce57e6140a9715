package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vango-dev/mathlive/internal/config"
	"github.com/vango-dev/mathlive/internal/errors"
	"github.com/vango-dev/mathlive/internal/logging"
	"github.com/vango-dev/mathlive/pkg/middleware"
	"github.com/vango-dev/mathlive/pkg/pipeline"
	"github.com/vango-dev/mathlive/pkg/publish"
	"github.com/vango-dev/mathlive/pkg/texmath"
)

type renderFlags struct {
	preset    string
	underline bool
	json      bool
	publish   bool
	bucket    string
	noColor   bool

	// style is how failures are written to stderr.
	style errors.Style
}

// input is one formula and where it came from.
type input struct {
	file string
	line int
	text string
}

// snapshotPublisher is the part of publish.Publisher the render command uses.
type snapshotPublisher interface {
	Publish(ctx context.Context, res pipeline.RenderResult, opts pipeline.RenderOptions) (*publish.Receipt, error)
}

func renderCmd() *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "render [formula...]",
		Short: "Render formulas to MathML",
		Long: `Render formulas given as arguments, or one per line on stdin.

All formulas go through one pipeline as successive edits, the way a
live editor feeds it. Rendered markup is printed to stdout; failures
are printed to stderr with a caret under the offending character.

Examples:
  mathlive render 'x^2 + y^2'
  echo '\frac{1}' | mathlive render
  mathlive render --json --preset=inline '\alpha' '\beta'
  mathlive render --publish --bucket=formulas '\sqrt{2}'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if flags.preset != "" {
				cfg.Render.Preset = flags.preset
			}
			if flags.bucket != "" {
				cfg.Publish.Bucket = flags.bucket
			}
			if flags.noColor || flags.json {
				errors.DisableColors()
			}
			if flags.style, err = errors.ParseStyle(errorFormat); err != nil {
				return err
			}

			if len(args) == 0 && cmd.InOrStdin() == os.Stdin && stdinIsTerminal() {
				return errors.Newf(errors.CategoryCLI, "no formulas given").
					WithSuggestion("Pass formulas as arguments or pipe them in, one per line")
			}

			inputs, err := collectInputs(args, cmd.InOrStdin())
			if err != nil {
				return err
			}

			var pub snapshotPublisher
			if flags.publish {
				if cfg.Publish.Bucket == "" {
					return errors.New("M141").WithSuggestion("Pass --bucket or set publish.bucket")
				}
				p, err := publish.NewFromConfig(cmd.Context(), cfg.Publish.Bucket, cfg.Publish.Prefix, cfg.Publish.Region)
				if err != nil {
					return errors.New("M140").Wrap(err)
				}
				pub = p
			}

			return runRender(cmd.Context(), cfg, flags, inputs, pub, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVarP(&flags.preset, "preset", "p", "", "Render preset: display or inline (default from config)")
	cmd.Flags().BoolVarP(&flags.underline, "underline", "u", false, "Underline the whole offending token instead of the error report")
	cmd.Flags().BoolVar(&flags.json, "json", false, "Print one JSON result per formula")
	cmd.Flags().BoolVar(&flags.publish, "publish", false, "Publish rendered formulas to S3")
	cmd.Flags().StringVar(&flags.bucket, "bucket", "", "S3 bucket for --publish (default from config)")
	cmd.Flags().BoolVar(&flags.noColor, "no-color", false, "Disable colored output")

	return cmd
}

// collectInputs returns the arguments, or the non-empty lines of stdin when
// there are none.
func collectInputs(args []string, stdin io.Reader) ([]input, error) {
	if len(args) > 0 {
		inputs := make([]input, len(args))
		for i, arg := range args {
			inputs[i] = input{file: "arg", line: i + 1, text: arg}
		}
		return inputs, nil
	}

	var inputs []input
	scanner := bufio.NewScanner(stdin)
	line := 0
	for scanner.Scan() {
		line++
		if scanner.Text() == "" {
			continue
		}
		inputs = append(inputs, input{file: "stdin", line: line, text: scanner.Text()})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Newf(errors.CategoryCLI, "read stdin").Wrap(err)
	}
	return inputs, nil
}

// jsonResult is the --json form of one result.
type jsonResult struct {
	Input string `json:"input"`
	pipeline.RenderResult
	Diagnostic string `json:"diagnostic,omitempty"`
	URI        string `json:"uri,omitempty"`
}

func runRender(ctx context.Context, cfg *config.Config, flags renderFlags, inputs []input, pub snapshotPublisher, stdout, stderr io.Writer) error {
	if len(inputs) == 0 {
		return nil
	}

	opts, err := cfg.RenderOptions()
	if err != nil {
		return err
	}
	unit, err := cfg.PositionUnit()
	if err != nil {
		return err
	}

	logger, err := logging.New(stderr, cfg.Log)
	if err != nil {
		return err
	}
	defer logger.Close()

	p := pipeline.New(texmath.New(), opts, inputs[0].text,
		pipeline.WithLogger(logger.Logger),
		pipeline.WithPositionUnit(unit),
		pipeline.WithMiddleware(middleware.OpenTelemetry(middleware.WithBaseContext(ctx))),
	)
	defer p.Close()

	enc := json.NewEncoder(stdout)
	failed := 0

	for i, in := range inputs {
		if i > 0 {
			p.Edit(in.text)
		}
		res := p.Result()

		var uri string
		if res.OK() && pub != nil {
			receipt, err := pub.Publish(ctx, res, opts)
			if err != nil {
				return errors.New("M140").Wrap(err)
			}
			uri = receipt.URI()
		}

		if !res.OK() {
			failed++
		}

		if flags.json {
			if err := enc.Encode(jsonResult{
				Input:        in.file + ":" + strconv.Itoa(in.line),
				RenderResult: res,
				Diagnostic:   res.Diagnostic(unit),
				URI:          uri,
			}); err != nil {
				return err
			}
			continue
		}

		switch {
		case res.OK():
			fmt.Fprintln(stdout, res.Markup)
			if uri != "" {
				fmt.Fprintf(stderr, "published %s\n", uri)
			}
		case flags.underline:
			fmt.Fprintf(stderr, "%s:%d: %s\n%s\n", in.file, in.line, res.Message, p.Underline())
		default:
			errors.FprintStyle(stderr, errors.FromFailure(res, unit).InFile(in.file, in.line), flags.style)
		}
	}

	if failed > 0 {
		return errors.New("M180").
			WithDetail(fmt.Sprintf("%d of %d formulas failed to render.", failed, len(inputs)))
	}
	return nil
}

var _ snapshotPublisher = (*publish.Publisher)(nil)

// stdinIsTerminal reports whether stdin is an interactive terminal.
func stdinIsTerminal() bool {
	fi, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
