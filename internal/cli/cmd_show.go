package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
)

func newShowCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "show <task-id>",
		Short: "Show a task as JSON",
		Long: `Show a single task as JSON.

--path extracts a value using gjson path syntax, which is handy for
scripting:

  gantry show T001 --path progress_state
  gantry show T001 --path dependencies.#
  gantry show T001 --path 'dependencies.#(type=="weak")#.task_id'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, closeStore, err := openRepository()
			if err != nil {
				return err
			}
			defer func() { _ = closeStore() }()

			t, err := r.Get(cmdContext(), args[0])
			if err != nil {
				return err
			}

			if path == "" {
				return printJSON(t)
			}

			data, err := json.Marshal(t)
			if err != nil {
				return fmt.Errorf("marshal task: %w", err)
			}
			result := gjson.GetBytes(data, path)
			if !result.Exists() {
				return fmt.Errorf("path %q not found in task %s", path, t.ID)
			}
			if result.IsArray() || result.IsObject() {
				fmt.Println(result.Raw)
			} else {
				fmt.Println(result.String())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "extract a value using gjson path syntax")
	return cmd
}
