package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rmalloy/gantry/internal/task"
)

func newProgressCmd() *cobra.Command {
	var (
		percent    int
		listStates bool
	)

	cmd := &cobra.Command{
		Use:   "progress [task-id] [state]",
		Short: "Move a task through the progress pipeline",
		Long: `Move a task to a new progress state.

The pipeline:
  not_started → planning → in_development → implementation_complete
  → in_review → review_complete → in_testing → completed

Review and testing can send work back to in_development. There are no jump
transitions; a task reaches completed only through the pipeline. Status and
percentage are derived from the state; --percent overrides the default
percentage.

Examples:
  gantry progress T001 planning
  gantry progress T001 in_development --percent 45
  gantry progress --states`,
		Args: cobra.RangeArgs(0, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if listStates {
				for _, s := range task.ValidStates() {
					fmt.Printf("%-24s %3d%%\n", s, task.DefaultPercentage(s))
				}
				return nil
			}
			if len(args) != 2 {
				return fmt.Errorf("expected <task-id> <state> (or --states)")
			}

			r, closeStore, err := openRepository()
			if err != nil {
				return err
			}
			defer func() { _ = closeStore() }()

			var custom *int
			if cmd.Flags().Changed("percent") {
				custom = &percent
			}

			t, err := r.UpdateProgress(cmdContext(), args[0], task.ProgressState(args[1]), custom)
			if err != nil {
				return err
			}

			if jsonOut {
				return printJSON(t)
			}
			fmt.Printf("%s → %s (%d%%, status %s)\n",
				t.ID, t.ProgressState, t.ProgressPercentage, t.Status)
			return nil
		},
	}

	cmd.Flags().IntVar(&percent, "percent", 0, "override the state's default percentage")
	cmd.Flags().BoolVar(&listStates, "states", false, "list the progress states and default percentages")
	return cmd
}
