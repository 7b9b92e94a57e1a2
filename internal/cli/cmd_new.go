package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rmalloy/gantry/internal/task"
)

func newNewCmd() *cobra.Command {
	var (
		description string
		priority    int
		estimate    float64
		deps        []string
		weakDeps    []string
	)

	cmd := &cobra.Command{
		Use:   "new <title>",
		Short: "Create a new task",
		Long: `Create a new task with the next free ID.

Dependencies given with --depends-on gate the task (strong); --related
dependencies are informational only and never block.

Examples:
  gantry new "Fix login bug"
  gantry new "Ship dashboard" --priority 2 --depends-on T001 --depends-on T002
  gantry new "Polish styles" --related T003 --estimate 4`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, closeStore, err := openRepository()
			if err != nil {
				return err
			}
			defer func() { _ = closeStore() }()

			ctx := cmdContext()
			id, err := r.NextID(ctx)
			if err != nil {
				return err
			}

			t := task.New(id, args[0])
			t.Description = description
			t.Priority = priority
			t.EstimatedHours = estimate
			for _, dep := range deps {
				t.Dependencies = append(t.Dependencies, task.Dependency{TaskID: dep, Type: task.DepStrong})
			}
			for _, dep := range weakDeps {
				t.Dependencies = append(t.Dependencies, task.Dependency{TaskID: dep, Type: task.DepWeak})
			}
			if t.Description == "" {
				t.Description = args[0]
			}

			ok, errs, err := r.TrySave(ctx, t)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(os.Stderr, "Task not saved:")
				for _, msg := range errs.Strings() {
					fmt.Fprintln(os.Stderr, "  -", msg)
				}
				os.Exit(1)
			}

			if jsonOut {
				return printJSON(t)
			}
			fmt.Printf("Created %s: %s\n", t.ID, t.Title)
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "full task description")
	cmd.Flags().IntVarP(&priority, "priority", "p", 3, "priority 1 (highest) to 5 (lowest)")
	cmd.Flags().Float64VarP(&estimate, "estimate", "e", 0, "estimated hours")
	cmd.Flags().StringArrayVar(&deps, "depends-on", nil, "strong dependency task ID (repeatable)")
	cmd.Flags().StringArrayVar(&weakDeps, "related", nil, "weak dependency task ID (repeatable)")
	return cmd
}
