package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/rmalloy/gantry/internal/config"
	gantryerrors "github.com/rmalloy/gantry/internal/errors"
	"github.com/rmalloy/gantry/internal/lock"
	"github.com/rmalloy/gantry/internal/repo"
	"github.com/rmalloy/gantry/internal/store"
)

// openRepository builds the repository from configuration. The returned
// cleanup function closes the store.
func openRepository() (*repo.Repository, func() error, error) {
	if err := config.RequireInit("."); err != nil {
		return nil, nil, err
	}

	cfg, err := config.Load(".")
	if err != nil {
		return nil, nil, err
	}

	dataDir := filepath.Join(".", config.GantryDir)
	st, err := store.Open(&cfg.Storage, dataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}

	locker := lock.NewLocker(cfg.Coordination.Mode, dataDir, lock.DefaultOwner())
	r := repo.New(st, repo.WithLocker(locker))
	return r, st.Close, nil
}

// loadConfig loads configuration for commands that don't need the repository.
func loadConfig() (*config.Config, error) {
	if err := config.RequireInit("."); err != nil {
		return nil, err
	}
	return config.Load(".")
}

// printError renders an error for the terminal, using the structured form
// when available.
func printError(err error) {
	if ge := gantryerrors.AsGantryError(err); ge != nil {
		fmt.Fprintln(os.Stderr, ge.UserMessage())
		return
	}
	fmt.Fprintln(os.Stderr, "Error:", err)
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// isTTY reports whether stdout is a terminal. Decorations (unicode gate
// markers, headers) are suppressed when piping.
func isTTY() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// cmdContext returns the context for repository calls.
func cmdContext() context.Context {
	return context.Background()
}
