// Package cli implements the cpsort command line
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"bennypowers.dev/cpsort/internal/config"
	"bennypowers.dev/cpsort/internal/customprops"
	"bennypowers.dev/cpsort/internal/log"
	"github.com/spf13/cobra"
)

// ErrUnsorted is returned by --check when a file would change
var ErrUnsorted = errors.New("custom properties are not sorted")

type options struct {
	write      bool
	check      bool
	configPath string
	sortBy     string
	logLevel   string
}

// NewRootCommand builds the cpsort command tree
func NewRootCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "cpsort [paths...]",
		Short: "Sort CSS custom property declarations",
		Long: `cpsort sorts the custom property declarations of every CSS rule,
moves them to the top of the rule and keeps each dependent property after
the properties it references.

Paths may be files, directories or glob patterns. CSS files, <style>
elements in HTML and css tagged templates in JavaScript and TypeScript are
processed. Without paths, CSS is read from stdin and written to stdout.

Examples:
  cpsort styles.css
  cpsort --write src
  cpsort --check "src/**/*.ts"
  cat styles.css | cpsort --sort-by value`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args)
		},
	}

	flags := cmd.Flags()
	flags.BoolVarP(&opts.write, "write", "w", false, "rewrite files in place")
	flags.BoolVar(&opts.check, "check", false, "exit with an error when any file would change")
	flags.StringVarP(&opts.configPath, "config", "c", "", "configuration file (default: discovered from the working directory)")
	flags.StringVar(&opts.sortBy, "sort-by", "", `comparator to sort by: "alphanumeric" or "value"`)
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error")
	cmd.MarkFlagsMutuallyExclusive("write", "check")

	cmd.AddCommand(newLSPCommand(), newVersionCommand())
	return cmd
}

// Execute runs the root command with the process arguments
func Execute() int {
	if err := NewRootCommand().Execute(); err != nil {
		if !errors.Is(err, ErrUnsorted) {
			fmt.Fprintln(os.Stderr, err)
		}
		return 1
	}
	return 0
}

func run(cmd *cobra.Command, opts *options, args []string) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	sorter, warnings := cfg.Sorter()
	printWarnings(cmd.ErrOrStderr(), "", warnings)

	r := &runner{
		opts:   opts,
		cfg:    cfg,
		sorter: sorter,
		stdout: cmd.OutOrStdout(),
		stderr: cmd.ErrOrStderr(),
	}
	if len(args) == 0 {
		return r.stdin(cmd.InOrStdin())
	}
	return r.paths(args)
}

func loadConfig(opts *options) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if opts.configPath != "" {
		cfg, err = config.Load(opts.configPath)
	} else {
		var wd string
		if wd, err = os.Getwd(); err == nil {
			cfg, err = config.Discover(wd)
		}
	}
	if err != nil {
		return nil, err
	}

	if opts.sortBy != "" {
		cfg.SortBy = opts.sortBy
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
	if cfg.LogLevel != "" {
		level, err := log.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, err
		}
		log.SetLevel(level)
	}
	return cfg, nil
}

// printWarnings writes warnings as path:line:col: warning: message
func printWarnings(w io.Writer, path string, warnings []customprops.Warning) {
	if path == "" {
		path = "<stdin>"
	}
	for _, warning := range warnings {
		if warning.HasPosition {
			fmt.Fprintf(w, "%s:%d:%d: warning: %s\n", path, warning.Position.Line+1, warning.Position.Character+1, warning.Message)
		} else {
			fmt.Fprintf(w, "warning: %s\n", warning.Message)
		}
	}
}
