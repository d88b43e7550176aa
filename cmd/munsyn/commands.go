package main

import (
	"fmt"
	"io"
	"runtime"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/foeb/mun/internal/inspect"
	"github.com/foeb/mun/internal/syntax"
)

func newTokensCmd(a *app) *cobra.Command {
	var trivia bool
	cmd := &cobra.Command{
		Use:   "tokens <file>...",
		Short: "Print the tokens of each file with positions",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTokens(cmd.OutOrStdout(), cmd.ErrOrStderr(), args, trivia)
		},
	}
	cmd.Flags().BoolVar(&trivia, "trivia", false, "also print whitespace and comments")
	return cmd
}

func newTreeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tree <file>...",
		Short: "Dump the syntax tree of each file",
		Long: `Dump the lossless syntax tree of each file.

The text format prints one node or token per line with its byte range.
The json format prints one JSON document per file.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTree(cmd.OutOrStdout(), cmd.ErrOrStderr(), args)
		},
	}
}

func newInspectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file>...",
		Short: "Classify the expressions of each file",
		Long: `Classify every prefix, binary, field, literal and if expression.

Files are parsed in parallel. The report is printed as text with the
relevant part of the source underlined, or as a table, JSON or YAML.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInspect(cmd, args)
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "munsyn version %s\n", Version)
			_, _ = fmt.Fprintf(out, "go version %s\n", runtime.Version())
		},
	}
}

// parse reads and parses filename, prints its syntax errors to errw and
// logs a summary.
func (a *app) parse(errw io.Writer, filename string) (*syntax.Tree, error) {
	start := time.Now()
	tree, err := inspect.ParseFile(a.fs, filename)
	if err != nil {
		return nil, err
	}
	syntax.FprintErrors(errw, tree)
	a.logTree(tree, time.Since(start))
	return tree, nil
}

func (a *app) logTree(tree *syntax.Tree, d time.Duration) {
	a.log.WithFields(logrus.Fields{
		"file":     tree.Filename(),
		"tokens":   tree.TokenCount(),
		"nodes":    tree.NodeCount(),
		"errors":   len(tree.Errors()),
		"duration": d,
	}).Debug("Parsed file")
}

// runTokens prints the tokens of every file with their positions.
func (a *app) runTokens(w, errw io.Writer, filenames []string, trivia bool) error {
	failed := false
	for _, filename := range filenames {
		tree, err := a.parse(errw, filename)
		if err != nil {
			return err
		}
		failed = failed || len(tree.Errors()) > 0

		fmt.Fprintf(w, "%-20s %-12s %s\n", "POSITION", "KIND", "TEXT")
		fmt.Fprintf(w, "%-20s %-12s %s\n", strings.Repeat("-", 20), strings.Repeat("-", 12), strings.Repeat("-", 20))
		for tok := range tree.Root().Tokens() {
			if tok.Kind().IsTrivia() && !trivia {
				continue
			}
			pos := tree.Pos(tok.TextRange().Start())
			fmt.Fprintf(w, "%-20s %-12s %s\n", pos, tok.Kind(), formatText(tok.Text()))
		}
	}
	if failed {
		return errSyntax
	}
	return nil
}

// runTree dumps the tree of every file in the configured format.
func (a *app) runTree(w, errw io.Writer, filenames []string) error {
	failed := false
	for _, filename := range filenames {
		tree, err := a.parse(errw, filename)
		if err != nil {
			return err
		}
		failed = failed || len(tree.Errors()) > 0

		switch a.cfg.Format {
		case "json":
			if err := syntax.FprintJSON(w, tree.Root()); err != nil {
				return err
			}
		default:
			syntax.Fprint(w, tree.Root())
		}
	}
	if failed {
		return errSyntax
	}
	return nil
}

// runInspect classifies the expressions of all files and renders the
// reports. Syntax errors are part of the reports.
func (a *app) runInspect(cmd *cobra.Command, filenames []string) error {
	reports, err := inspect.Files(cmd.Context(), a.fs, filenames, inspect.Options{Workers: a.cfg.Workers})
	if err != nil {
		return err
	}

	failed := false
	for i := range reports {
		r := &reports[i]
		a.logTree(r.Tree(), r.Duration)
		failed = failed || len(r.Errors) > 0
	}

	out := cmd.OutOrStdout()
	opts := inspect.RenderOptions{Color: useColor(a.cfg.Color, out)}
	if err := inspect.Render(out, a.cfg.Output, reports, opts); err != nil {
		return err
	}
	if failed {
		return errSyntax
	}
	return nil
}

// formatText quotes token text for display, escaping special characters.
func formatText(text string) string {
	var b strings.Builder
	b.WriteRune('"')
	for _, r := range text {
		switch r {
		case '\n':
			b.WriteString("\\n")
		case '\t':
			b.WriteString("\\t")
		case '\r':
			b.WriteString("\\r")
		case '\\':
			b.WriteString("\\\\")
		case '"':
			b.WriteString("\\\"")
		default:
			b.WriteRune(r)
		}
	}
	b.WriteRune('"')
	return b.String()
}
