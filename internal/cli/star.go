package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var starCmd = &cobra.Command{
	Use:   "star [task-id]",
	Short: "Star or unstar a task",
	Long: `Toggle the favorite flag of a task.

Examples:
  taskdeck star 1a2b3c4d
  taskdeck star 1a2b`,
	Args: cobra.ExactArgs(1),
	RunE: runStar,
}

func runStar(cmd *cobra.Command, args []string) error {
	c := newClient()
	task, err := resolveTask(cmd.Context(), c, args[0])
	if err != nil {
		return err
	}

	toggled, err := c.ToggleStar(cmd.Context(), task.ID)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	if toggled.Starred {
		fmt.Fprintf(cmd.OutOrStdout(), "★ Starred: %q\n", toggled.Title)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "☆ Unstarred: %q\n", toggled.Title)
	}
	return nil
}
