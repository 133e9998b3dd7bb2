package cli

import (
	"fmt"

	"github.com/existflow/taskdeck/internal/client"
	"github.com/existflow/taskdeck/internal/model"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Long: `List tasks, optionally filtered and grouped.

Without --search the server's active search term applies.

Examples:
  taskdeck list
  taskdeck list --search python
  taskdeck ls --group Tags`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var (
	listSearch string
	listGroup  string
	listID     string
)

func init() {
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "Only tasks whose title or description contains this")
	listCmd.Flags().StringVarP(&listGroup, "group", "g", "", "Group by None, Tags, Priority or Favorites")
	listCmd.Flags().StringVar(&listID, "id", "", "Show the details of one task")
}

func runList(cmd *cobra.Command, args []string) error {
	c := newClient()
	out := cmd.OutOrStdout()

	if listID != "" {
		task, err := resolveTask(cmd.Context(), c, listID)
		if err != nil {
			return err
		}
		printDetails(out, task)
		return nil
	}

	opts := client.ListOptions{}
	if cmd.Flags().Changed("search") {
		opts.Search = &listSearch
	}

	groupBy := model.GroupNone
	if listGroup != "" {
		g, ok := model.ParseGroupBy(listGroup)
		if !ok {
			return fmt.Errorf("unknown grouping %q (want None, Tags, Priority or Favorites)", listGroup)
		}
		groupBy = g
	}
	opts.GroupBy = groupBy

	resp, err := c.List(cmd.Context(), opts)
	if err != nil {
		return fmt.Errorf("failed to list tasks: %w", err)
	}

	if len(resp.Tasks) == 0 {
		if resp.Search != "" {
			fmt.Fprintf(out, "No tasks match %q.\n", resp.Search)
			return nil
		}
		fmt.Fprintln(out, "No tasks found. Add one with: taskdeck add \"Your task\"")
		return nil
	}

	for _, b := range resp.Buckets {
		if b.Empty() {
			continue
		}
		printBucket(out, b.Name, b.Tasks)
	}
	return nil
}
