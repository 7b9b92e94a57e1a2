package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newFocusCmd() *cobra.Command {
	var clear bool

	cmd := &cobra.Command{
		Use:   "focus [task-id]",
		Short: "Show or set the current focus task",
		Long: `Show the current focus task, or set it to the given task ID.

The focus marks the task you are actively working on; "gantry list"
annotates it with an asterisk. Use --clear to unset.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, closeStore, err := openRepository()
			if err != nil {
				return err
			}
			defer func() { _ = closeStore() }()

			ctx := cmdContext()

			if clear {
				if len(args) > 0 {
					return fmt.Errorf("--clear takes no task ID")
				}
				if err := r.SetCurrentFocus(ctx, ""); err != nil {
					return err
				}
				fmt.Println("Focus cleared.")
				return nil
			}

			if len(args) == 0 {
				focus, err := r.GetCurrentFocus(ctx)
				if err != nil {
					return err
				}
				if jsonOut {
					return printJSON(map[string]string{"current_focus": focus})
				}
				if focus == "" {
					fmt.Println("No focus set.")
				} else {
					fmt.Println(focus)
				}
				return nil
			}

			if err := r.SetCurrentFocus(ctx, args[0]); err != nil {
				return err
			}
			fmt.Printf("Focus set to %s.\n", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVar(&clear, "clear", false, "clear the current focus")
	return cmd
}
