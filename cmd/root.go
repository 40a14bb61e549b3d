package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/evgfitil/cargo-query/internal/buildconfig"
	"github.com/evgfitil/cargo-query/internal/category"
	"github.com/evgfitil/cargo-query/internal/config"
	"github.com/evgfitil/cargo-query/internal/result"
	"github.com/evgfitil/cargo-query/internal/shell"
)

const ExitCodeCancelled = 130

// logEnv selects the diagnostic log level without --verbose.
const logEnv = "CARGO_QUERY_LOG"

var (
	Version          = "dev"
	shellIntegration string
	showConfig       bool
	verbose          bool

	buildFlag   bool
	copyFlag    bool
	backendFlag string
	heightFlag  string

	buildCfg buildconfig.Config
)

// ErrCancelled indicates the user cancelled the selection.
var ErrCancelled = result.ErrCancelled

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "cargo-query [query] <type>",
		Short: "Fuzzy-select cargo build targets and profiles",
		Long: `cargo-query lists the binaries, examples, tests, benches or profiles of the
current cargo workspace, lets you pick one in a fuzzy finder and prints it.

Run it as "cargo query <type>" where <type> is one of: ` + strings.Join(category.Names(), ", ") + ".",
		Version:       Version,
		Args:          cobra.MaximumNArgs(1),
		ValidArgs:     category.Names(),
		RunE:          runRoot,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	root.Flags().StringVar(&shellIntegration, "shell-integration", "", "output shell integration script (bash|zsh|fish)")
	root.Flags().BoolVar(&showConfig, "config", false, "show config file path")

	pf := root.PersistentFlags()
	pf.BoolVarP(&verbose, "verbose", "v", false, "log diagnostics to stderr")
	pf.BoolVar(&buildFlag, "build", false, "build the selection with cargo after printing it")
	pf.BoolVar(&copyFlag, "copy", false, "copy the selection to the clipboard")
	pf.StringVar(&backendFlag, "backend", "", "picker backend (fuzzyfinder|tui), overrides config")
	pf.StringVar(&heightFlag, "height", "", "picker height (N%, N lines or auto), overrides config")

	buildCfg = buildconfig.Config{}
	pf.StringSliceVarP(&buildCfg.Features, "features", "F", nil, "space or comma separated list of features to activate")
	pf.BoolVar(&buildCfg.AllFeatures, "all-features", false, "activate all available features")
	pf.BoolVar(&buildCfg.NoDefaultFeatures, "no-default-features", false, "do not activate the `default` feature")
	pf.IntVarP(&buildCfg.Jobs, "jobs", "j", 0, "number of parallel jobs")
	pf.StringArrayVar(&buildCfg.MessageFormat, "message-format", nil, "error format")
	pf.StringVar(&buildCfg.Profile, "profile", "", "build artifacts with the specified profile")
	pf.BoolVarP(&buildCfg.Release, "release", "r", false, "build artifacts in release mode")
	pf.StringArrayVar(&buildCfg.Targets, "target", nil, "build for the target triple")
	pf.StringArrayVarP(&buildCfg.Packages, "package", "p", nil, "package to query")
	pf.StringVar(&buildCfg.ManifestPath, "manifest-path", "", "path to Cargo.toml")

	root.AddCommand(&cobra.Command{
		Use:           "query <type>",
		Short:         "Select a target or profile of the given type",
		Args:          cobra.ExactArgs(1),
		ValidArgs:     category.Names(),
		RunE:          func(cmd *cobra.Command, args []string) error { return runQuery(cmd, args[0]) },
		SilenceErrors: true,
		SilenceUsage:  true,
	})

	return root
}

// Execute runs the root command
func Execute() error {
	return newRootCmd().Execute()
}

func runRoot(cmd *cobra.Command, args []string) error {
	if showConfig {
		fmt.Fprintln(cmd.OutOrStdout(), config.Path())
		return nil
	}

	if shellIntegration != "" {
		return handleShellIntegration(cmd.OutOrStdout(), shellIntegration)
	}

	if len(args) == 0 {
		return errors.New("missing query type (expected one of: " + strings.Join(category.Names(), ", ") + ")")
	}

	return runQuery(cmd, args[0])
}

func handleShellIntegration(w io.Writer, shellName string) error {
	script, err := shell.Script(shellName)
	if err != nil {
		return err
	}
	fmt.Fprint(w, script)
	return nil
}

// newLogger returns a text logger on w. Logging is off unless verbose is set
// or CARGO_QUERY_LOG names a level.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	var level slog.Level
	switch {
	case verbose:
		level = slog.LevelDebug
	case os.Getenv(logEnv) != "":
		if err := level.UnmarshalText([]byte(os.Getenv(logEnv))); err != nil {
			level = slog.LevelInfo
		}
	default:
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
