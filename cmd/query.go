package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/evgfitil/cargo-query/internal/action"
	"github.com/evgfitil/cargo-query/internal/catalog"
	"github.com/evgfitil/cargo-query/internal/category"
	"github.com/evgfitil/cargo-query/internal/config"
	"github.com/evgfitil/cargo-query/internal/picker"
	"github.com/evgfitil/cargo-query/internal/result"
	"github.com/evgfitil/cargo-query/internal/tui"
	"github.com/evgfitil/cargo-query/internal/workspace"
)

// Swapped in tests.
var (
	newBackend      = defaultBackend
	loadWorkspace   = workspace.Load
	runCargo        = action.Build
	copyToClipboard = action.CopyToClipboard
)

func defaultBackend(cfg *config.Config) picker.Backend {
	if cfg.Picker.Backend == config.BackendTUI {
		return tui.NewSelector(cfg.Theme)
	}
	return picker.NewFuzzyFinder()
}

// runQuery performs one enumerate, select and map cycle for the given type.
func runQuery(cmd *cobra.Command, token string) error {
	stdout := cmd.OutOrStdout()
	stderr := cmd.ErrOrStderr()
	logger := newLogger(stderr, verbose)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	c, err := category.Parse(token)
	if err != nil {
		return err
	}
	if _, err := c.Mode(); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger.Debug("config loaded", "path", config.Path(), "backend", cfg.Picker.Backend, "height", cfg.Picker.Height.String())

	ws, err := resolveWorkspace(ctx, cfg, logger)
	if err != nil {
		return err
	}

	candidates, err := catalog.Enumerate(c, ws, buildCfg)
	if err != nil {
		return err
	}
	logger.Debug("candidates enumerated", "category", c.String(), "count", len(candidates))

	session := picker.NewSession(newBackend(cfg))
	outcome, err := session.Run(candidates, picker.Options{
		Multi:     c.AllowsMulti(),
		Prompt:    cfg.Picker.Prompt,
		Height:    cfg.Picker.Height,
		SelectOne: cfg.Picker.SelectOne,
	})
	if err != nil {
		return err
	}

	selection, err := result.Format(outcome, c)
	if err != nil {
		return err
	}

	build := func() error {
		inv, err := result.Dispatch(outcome, c)
		if err != nil {
			return err
		}
		args, err := buildCfg.Args(inv)
		if err != nil {
			return err
		}
		checkRequiredFeatures(logger, ws, c, inv.Target)
		logger.Debug("dispatching", "cargo", cfg.Cargo, "args", args)
		return runCargo(ctx, cfg.Cargo, args, stderr)
	}

	return handleSelection(stdout, stderr, cfg, selection, build)
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if backendFlag != "" {
		switch backendFlag {
		case config.BackendFuzzyFinder, config.BackendTUI:
			cfg.Picker.Backend = backendFlag
		default:
			return nil, fmt.Errorf("--backend must be %q or %q, got %q", config.BackendFuzzyFinder, config.BackendTUI, backendFlag)
		}
	}
	if heightFlag != "" {
		h, err := picker.ParseHeight(heightFlag)
		if err != nil {
			return nil, err
		}
		cfg.Picker.Height = h
	}
	return cfg, nil
}

// resolveWorkspace parses cargo metadata piped on stdin, or runs cargo metadata.
func resolveWorkspace(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*workspace.Workspace, error) {
	piped, err := readStdin()
	if err != nil {
		return nil, err
	}

	var ws *workspace.Workspace
	if piped != "" {
		logger.Debug("reading cargo metadata from stdin", "bytes", len(piped))
		ws, err = workspace.Parse([]byte(piped))
	} else {
		ws, err = loadWorkspace(ctx, workspace.Options{
			Cargo:        cfg.Cargo,
			ManifestPath: buildCfg.ManifestPath,
		})
	}
	if err != nil {
		return nil, err
	}

	logger.Debug("workspace loaded", "root", ws.Root, "packages", len(ws.Packages))
	for _, pkg := range ws.Packages {
		logger.Debug("workspace member", "package", pkg.Name, "manifest", pkg.ManifestPath,
			"features", pkg.Features, "targets", len(pkg.Targets))
	}
	return ws, nil
}

// checkRequiredFeatures warns when the chosen target declares
// required-features the build flags leave off; cargo would skip it.
func checkRequiredFeatures(logger *slog.Logger, ws *workspace.Workspace, c category.Category, name string) {
	keep, err := c.Predicate()
	if err != nil {
		return
	}
	pkg, target, ok := ws.Find(name, keep, buildCfg.Packages...)
	if !ok {
		return
	}
	logger.Debug("selected target", "package", pkg.Name, "target", target.Name, "src", target.SrcPath)

	missing := pkg.MissingFeatures(target, buildCfg.FeatureList(), buildCfg.AllFeatures, buildCfg.NoDefaultFeatures)
	if len(missing) > 0 {
		logger.Warn("target requires features that are not enabled", "target", target.Name, "missing", missing)
	}
}

// handleSelection prints the selection and runs the requested follow-up.
func handleSelection(stdout, stderr io.Writer, cfg *config.Config, selection string, build func() error) error {
	if cfg.ActionMenu && !buildFlag && !copyFlag && action.ShouldPrompt() {
		m := action.Menu{Out: stdout, Prompt: stderr, Build: build}
		err := m.Run(selection)
		if errors.Is(err, action.ErrCancelled) {
			return fmt.Errorf("%w: %w", ErrCancelled, err)
		}
		return err
	}

	if copyFlag {
		if err := copyToClipboard(selection); err != nil {
			return err
		}
		fmt.Fprintln(stderr, "Copied to clipboard.")
	}

	fmt.Fprintln(stdout, selection)

	if buildFlag {
		return build()
	}
	return nil
}
