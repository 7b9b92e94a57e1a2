package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rmalloy/gantry/internal/graph"
	"github.com/rmalloy/gantry/internal/task"
)

// DepsOutput is the JSON output structure for dependencies.
type DepsOutput struct {
	TaskID       string         `json:"task_id"`
	Title        string         `json:"title"`
	Status       task.Status    `json:"status"`
	Dependencies []DepsTaskInfo `json:"dependencies,omitempty"`
	Check        graph.Result   `json:"check"`
}

// DepsTaskInfo describes one dependency edge.
type DepsTaskInfo struct {
	ID     string              `json:"id"`
	Type   task.DependencyType `json:"type"`
	Status task.Status         `json:"status,omitempty"`
	Found  bool                `json:"found"`
}

func newDepsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deps <task-id>",
		Short: "Show task dependencies and gating status",
		Long: `Show dependencies for a task and run the dependency checks.

Dependency types:
  strong   Gates progression: the target must be completed
  weak     Informational only, never blocks

Understanding the output:
  ● (filled)   Strong dependency completed (gate open)
  ○ (empty)    Strong dependency not yet completed (gate closed)
  ~            Weak dependency (never gates)
  BLOCKED      The checker found cycles, missing targets, or closed gates
  READY        No findings

Examples:
  gantry deps T002
  gantry deps T002 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, closeStore, err := openRepository()
			if err != nil {
				return err
			}
			defer func() { _ = closeStore() }()

			ctx := cmdContext()
			t, err := r.Get(ctx, args[0])
			if err != nil {
				return err
			}
			result, err := r.CheckDependencies(ctx, t.ID)
			if err != nil {
				return err
			}

			var infos []DepsTaskInfo
			for _, dep := range t.Dependencies {
				info := DepsTaskInfo{ID: dep.TaskID, Type: dep.Kind()}
				if target, err := r.Get(ctx, dep.TaskID); err == nil {
					info.Found = true
					info.Status = target.Status
				}
				infos = append(infos, info)
			}

			if jsonOut {
				return printJSON(DepsOutput{
					TaskID:       t.ID,
					Title:        t.Title,
					Status:       t.Status,
					Dependencies: infos,
					Check:        result,
				})
			}

			fmt.Printf("%s: %s [%s]\n\n", t.ID, t.Title, t.Status)
			if len(infos) == 0 {
				fmt.Println("No dependencies.")
			} else {
				w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
				for _, info := range infos {
					fmt.Fprintf(w, "  %s %s\t%s\t%s\n",
						depMarker(info), info.ID, info.Type, depStatus(info))
				}
				w.Flush()
			}

			fmt.Println()
			if result.Valid {
				fmt.Println("READY")
				return nil
			}
			fmt.Println("BLOCKED")
			for _, msg := range result.Errors {
				fmt.Println("  -", msg)
			}
			return nil
		},
	}
	return cmd
}

// depMarker picks the gate marker for a dependency. Unicode circles on a
// terminal, ASCII when piping.
func depMarker(info DepsTaskInfo) string {
	if info.Type == task.DepWeak {
		return "~"
	}
	open := info.Found && info.Status == task.StatusCompleted
	if isTTY() {
		if open {
			return "●"
		}
		return "○"
	}
	if open {
		return "[x]"
	}
	return "[ ]"
}

func depStatus(info DepsTaskInfo) string {
	if !info.Found {
		return "(not found)"
	}
	return string(info.Status)
}
