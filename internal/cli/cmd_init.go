package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rmalloy/gantry/internal/config"
	gantryerrors "github.com/rmalloy/gantry/internal/errors"
)

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize gantry in the current directory",
		Long: `Initialize gantry in the current directory.

Creates .gantry/ with a default config.yaml. The task collection itself is
created on first save.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := filepath.Join(".", config.GantryDir)
			if config.IsInitialized(".") && !force {
				abs, _ := filepath.Abs(dir)
				return gantryerrors.ErrAlreadyInitialized(abs)
			}

			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("create %s: %w", dir, err)
			}
			if err := config.Default().Save("."); err != nil {
				return fmt.Errorf("write config: %w", err)
			}

			fmt.Println("Initialized gantry in", dir)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "reinitialize even if .gantry/ exists")
	return cmd
}
