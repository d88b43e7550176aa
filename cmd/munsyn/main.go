// Package main implements munsyn, a command line tool that parses Mun
// source files and shows their tokens, syntax trees and the classification
// of their expressions.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/foeb/mun/internal/config"
	"github.com/foeb/mun/internal/logging"
)

// Version information
const Version = "0.1.0-dev"

// errSyntax is returned by commands when an input file has syntax errors.
// The errors themselves have already been printed.
var errSyntax = errors.New("syntax errors")

// app is the state shared by all commands.
type app struct {
	fs  afero.Fs
	cfg *config.Config
	log *logrus.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a := &app{fs: afero.NewOsFs()}
	err := newRootCmd(a).ExecuteContext(ctx)
	if err == nil {
		return
	}
	if !errors.Is(err, errSyntax) {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.New(color.FgRed, color.Bold).Sprint("error:"), err)
	}
	stop()
	os.Exit(1)
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "munsyn",
		Short: "Inspect the syntax of Mun source files",
		Long: `munsyn parses Mun source files into lossless syntax trees.

It prints the token stream, dumps the tree, or classifies every prefix,
binary, field, literal and if expression.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "version" {
				return nil
			}
			return a.setup(cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetVersionTemplate("{{.Name}} version {{.Version}}\n")

	config.RegisterFlags(root.PersistentFlags())
	_ = root.RegisterFlagCompletionFunc("output", fixedCompletion(config.Outputs))
	_ = root.RegisterFlagCompletionFunc("format", fixedCompletion(config.Formats))
	_ = root.RegisterFlagCompletionFunc("color", fixedCompletion(config.Colors))

	root.AddCommand(
		newTokensCmd(a),
		newTreeCmd(a),
		newInspectCmd(a),
		newVersionCmd(),
	)
	return root
}

// setup loads the configuration and builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	flags := cmd.Root().PersistentFlags()
	cfgFile, err := flags.GetString("config")
	if err != nil {
		return err
	}

	cfg, err := config.Load(cfgFile, flags)
	if err != nil {
		return err
	}
	a.cfg = cfg

	stderr := cmd.ErrOrStderr()
	log, err := logging.New(stderr, cfg.LogLevel, cfg.LogFormat, useColor(cfg.Color, stderr))
	if err != nil {
		return err
	}
	a.log = log

	if cfg.File != "" {
		a.log.WithField("file", cfg.File).Debug("Loaded config file")
	}
	return nil
}

// useColor resolves a color setting for output written to w.
func useColor(setting string, w io.Writer) bool {
	switch setting {
	case "always":
		return true
	case "never":
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func fixedCompletion(values []string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return values, cobra.ShellCompDirectiveNoFileComp
	}
}
