package cli

import (
	"fmt"
	"sort"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/rmalloy/gantry/internal/graph"
)

// CheckOutput is the JSON output structure for a full-collection check.
type CheckOutput struct {
	Valid   bool                    `json:"valid"`
	Results map[string]graph.Result `json:"results"`
}

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run dependency checks for every task",
		Long: `Run cycle detection and strong-dependency gating for every task in the
collection and report the findings.

Exits non-zero when any task has findings, so this slots into CI.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, closeStore, err := openRepository()
			if err != nil {
				return err
			}
			defer func() { _ = closeStore() }()

			ctx := cmdContext()
			tasks, err := r.List(ctx)
			if err != nil {
				return err
			}

			// One snapshot, checks fan out per task.
			index := graph.Index(tasks)
			results := make(map[string]graph.Result, len(tasks))
			var mu sync.Mutex

			g, _ := errgroup.WithContext(ctx)
			g.SetLimit(8)
			for _, t := range tasks {
				g.Go(func() error {
					res := graph.Check(t.ID, index)
					mu.Lock()
					results[t.ID] = res
					mu.Unlock()
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			allValid := true
			for _, res := range results {
				if !res.Valid {
					allValid = false
					break
				}
			}

			if jsonOut {
				if err := printJSON(CheckOutput{Valid: allValid, Results: results}); err != nil {
					return err
				}
			} else {
				ids := make([]string, 0, len(results))
				for id := range results {
					ids = append(ids, id)
				}
				sort.Strings(ids)
				for _, id := range ids {
					res := results[id]
					if res.Valid {
						continue
					}
					fmt.Printf("%s:\n", id)
					for _, msg := range res.Errors {
						fmt.Println("  -", msg)
					}
				}
				if allValid {
					fmt.Printf("All %d tasks OK.\n", len(tasks))
				}
			}

			if !allValid {
				return fmt.Errorf("dependency check found problems")
			}
			return nil
		},
	}
	return cmd
}
