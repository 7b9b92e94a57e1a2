package cli

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	gantryerrors "github.com/rmalloy/gantry/internal/errors"
	"github.com/rmalloy/gantry/internal/git"
)

func newCommitsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "commits",
		Short: "Associate git commits with tasks",
	}
	cmd.AddCommand(newCommitsScanCmd())
	cmd.AddCommand(newCommitsAddCmd())
	return cmd
}

func newCommitsScanCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan git history for task references",
		Long: `Scan recent git history for commit subjects referencing tasks with the
#T123 notation and record each commit hash against the referenced task.

References to unknown task IDs are reported and skipped; already-recorded
hashes are ignored.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if limit <= 0 {
				limit = cfg.Git.ScanLimit
			}

			r, closeStore, err := openRepository()
			if err != nil {
				return err
			}
			defer func() { _ = closeStore() }()

			wd, err := os.Getwd()
			if err != nil {
				return err
			}
			byTask, err := git.NewScanner(wd).TaskCommits(limit)
			if err != nil {
				return err
			}

			ctx := cmdContext()
			ids := make([]string, 0, len(byTask))
			for id := range byTask {
				ids = append(ids, id)
			}
			sort.Strings(ids)

			var recorded, skipped int
			for _, id := range ids {
				for _, hash := range byTask[id] {
					_, err := r.AssociateCommit(ctx, id, hash)
					if err != nil {
						if gantryerrors.HasCode(err, gantryerrors.CodeTaskNotFound) {
							fmt.Printf("skipping %s: task %s not found\n", short(hash), id)
							skipped++
							continue
						}
						return err
					}
					recorded++
				}
			}
			fmt.Printf("Scanned %d commits: %d references recorded, %d skipped.\n", limit, recorded, skipped)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "number of commits to scan (default from config)")
	return cmd
}

func newCommitsAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add [task-id] [hash]",
		Short: "Record a commit hash against a task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, closeStore, err := openRepository()
			if err != nil {
				return err
			}
			defer func() { _ = closeStore() }()

			t, err := r.AssociateCommit(cmdContext(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Printf("%s has %d commits.\n", t.ID, len(t.GitCommits))
			return nil
		},
	}
}

func short(hash string) string {
	if len(hash) > 8 {
		return hash[:8]
	}
	return hash
}
