package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vango-dev/mathlive/internal/config"
	"github.com/vango-dev/mathlive/internal/errors"
	"github.com/vango-dev/mathlive/internal/logging"
	"github.com/vango-dev/mathlive/pkg/expr"
	"github.com/vango-dev/mathlive/pkg/pipeline"
	"github.com/vango-dev/mathlive/pkg/texmath"
)

type simplifyFlags struct {
	latex  bool
	render bool

	style errors.Style
}

func simplifyCmd() *cobra.Command {
	var flags simplifyFlags

	cmd := &cobra.Command{
		Use:   "simplify <expression>",
		Short: "Remove excess parentheses from an expression, step by step",
		Long: `Parse an expression written with + - * and parentheses, remove the
parentheses that only group a product inside a product or a sum inside
a sum, and print every step with the rewritten part underlined.

With --latex only the LaTeX of the result is printed. With --render the
expression and its simplified form go through the render pipeline and
their MathML is printed.

Examples:
  mathlive simplify '(x * y) * z'
  mathlive simplify --latex '((x + y) + y) * (x * \pi)'
  mathlive simplify --render '(a + b) + c'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if flags.style, err = errors.ParseStyle(errorFormat); err != nil {
				return err
			}
			return runSimplify(cfg, flags, args[0], cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().BoolVar(&flags.latex, "latex", false, "Print only the LaTeX of the result")
	cmd.Flags().BoolVar(&flags.render, "render", false, "Render the expression and the result to MathML")

	return cmd
}

func runSimplify(cfg *config.Config, flags simplifyFlags, text string, stdout, stderr io.Writer) error {
	e, err := expr.Parse(text)
	if err != nil {
		se, ok := err.(*expr.SyntaxError)
		if !ok {
			return errors.New("M181").Wrap(err)
		}
		res := pipeline.Failure(text, se.Message, se.At)
		res.Class = pipeline.ClassSyntax
		// Parse offsets are runes whatever unit the config picks.
		errors.FprintStyle(stderr, errors.FromFailure(res, pipeline.UnitRune).InFile("arg", 1), flags.style)
		return errors.New("M181")
	}

	step := expr.FlattenSteps(e)

	switch {
	case flags.latex:
		fmt.Fprintln(stdout, expr.LaTeX(step.Result))
		return nil
	case flags.render:
		return renderSteps(cfg, flags, e, step.Result, stdout, stderr)
	default:
		fmt.Fprintln(stdout, step)
		return nil
	}
}

// renderSteps renders the LaTeX of before and after as two edits of one
// pipeline.
func renderSteps(cfg *config.Config, flags simplifyFlags, before, after expr.Expr, stdout, stderr io.Writer) error {
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

	p := pipeline.New(texmath.New(), opts, expr.LaTeX(before),
		pipeline.WithLogger(logger.Logger),
		pipeline.WithPositionUnit(unit),
	)
	defer p.Close()

	for i, e := range []expr.Expr{before, after} {
		if i > 0 {
			p.Edit(expr.LaTeX(e))
		}
		res := p.Result()
		if !res.OK() {
			errors.FprintStyle(stderr, errors.FromFailure(res, unit).InFile("latex", i+1), flags.style)
			return errors.New("M180").WithDetail(fmt.Sprintf("The LaTeX of %q did not render.", expr.Text(e)))
		}
		fmt.Fprintln(stdout, res.Markup)
	}
	return nil
}
