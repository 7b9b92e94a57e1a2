package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rmalloy/gantry/internal/task"
)

func newListCmd() *cobra.Command {
	var (
		status     string
		state      string
		priority   int
		dependency string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Long: `List tasks, optionally filtered.

Filters are exclusive; the first one given wins in the order
--status, --state, --priority, --dependency.

Examples:
  gantry list
  gantry list --status in_progress
  gantry list --state in_review
  gantry list --dependency T001     # tasks that depend on T001`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, closeStore, err := openRepository()
			if err != nil {
				return err
			}
			defer func() { _ = closeStore() }()

			ctx := cmdContext()
			var tasks []*task.Task
			switch {
			case status != "":
				tasks, err = r.GetByStatus(ctx, task.Status(status))
			case state != "":
				tasks, err = r.GetByProgressState(ctx, task.ProgressState(state))
			case priority != 0:
				tasks, err = r.GetByPriority(ctx, priority)
			case dependency != "":
				tasks, err = r.GetByDependency(ctx, dependency)
			default:
				tasks, err = r.List(ctx)
			}
			if err != nil {
				return err
			}

			if jsonOut {
				return printJSON(tasks)
			}
			if len(tasks) == 0 {
				fmt.Println("No tasks found.")
				return nil
			}

			focus, err := r.GetCurrentFocus(ctx)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			if isTTY() {
				fmt.Fprintln(w, "ID\tSTATUS\tSTATE\t%\tPRI\tTITLE")
			}
			for _, t := range tasks {
				marker := ""
				if t.ID == focus {
					marker = " *"
				}
				fmt.Fprintf(w, "%s%s\t%s\t%s\t%d\t%d\t%s\n",
					t.ID, marker, t.Status, t.ProgressState,
					t.ProgressPercentage, t.Priority, t.Title)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "filter by status")
	cmd.Flags().StringVar(&state, "state", "", "filter by progress state")
	cmd.Flags().IntVar(&priority, "priority", 0, "filter by priority")
	cmd.Flags().StringVar(&dependency, "dependency", "", "filter by dependency target")
	return cmd
}
