package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newDeleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete [task-id]",
		Short: "Delete a task",
		Long: `Delete a task from the collection. The task is also removed from any
story that lists it, and the focus is cleared if it pointed at the task.

Dependencies held by other tasks are left alone; a later "gantry check"
surfaces the dangling references.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			if !force && isTTY() {
				fmt.Printf("Delete %s? [y/N] ", id)
				reader := bufio.NewReader(os.Stdin)
				line, _ := reader.ReadString('\n')
				if answer := strings.ToLower(strings.TrimSpace(line)); answer != "y" && answer != "yes" {
					fmt.Println("Aborted.")
					return nil
				}
			}

			r, closeStore, err := openRepository()
			if err != nil {
				return err
			}
			defer func() { _ = closeStore() }()

			if err := r.Delete(cmdContext(), id); err != nil {
				return err
			}
			fmt.Printf("Deleted %s.\n", id)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip the confirmation prompt")
	return cmd
}
