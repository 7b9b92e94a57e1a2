package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rmalloy/gantry/internal/hierarchy"
)

func newHierarchyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hierarchy",
		Short: "Show or replace the epic/story hierarchy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, closeStore, err := openRepository()
			if err != nil {
				return err
			}
			defer func() { _ = closeStore() }()

			h, err := r.GetHierarchy(cmdContext())
			if err != nil {
				return err
			}

			if jsonOut {
				return printJSON(h)
			}

			if len(h.Epics) == 0 && len(h.Stories) == 0 {
				fmt.Println("No hierarchy defined.")
				return nil
			}
			stories := make(map[string]hierarchy.Story, len(h.Stories))
			for _, s := range h.Stories {
				stories[s.StoryID] = s
			}
			for _, e := range h.Epics {
				fmt.Printf("%s  %s\n", e.EpicID, e.Title)
				for _, sid := range e.Stories {
					s, ok := stories[sid]
					if !ok {
						continue
					}
					fmt.Printf("  %s  %s\n", s.StoryID, s.Title)
					for _, tid := range s.Tasks {
						fmt.Printf("    %s\n", tid)
					}
				}
			}
			return nil
		},
	}

	cmd.AddCommand(newHierarchySetCmd())
	return cmd
}

func newHierarchySetCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Replace the hierarchy from a JSON file",
		Long: `Replace the whole epic/story hierarchy with the contents of a JSON file.

Every story referenced by an epic and every task referenced by a story
must exist; a dangling reference rejects the whole update.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("read hierarchy file: %w", err)
			}
			var h hierarchy.Hierarchy
			if err := json.Unmarshal(data, &h); err != nil {
				return fmt.Errorf("parse hierarchy file: %w", err)
			}

			r, closeStore, err := openRepository()
			if err != nil {
				return err
			}
			defer func() { _ = closeStore() }()

			if err := r.UpdateHierarchy(cmdContext(), h); err != nil {
				return err
			}
			fmt.Printf("Hierarchy updated: %d epics, %d stories.\n", len(h.Epics), len(h.Stories))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON file with the new hierarchy")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
