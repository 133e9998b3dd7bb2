package cli

import (
	"fmt"
	"strings"

	"github.com/existflow/taskdeck/internal/form"
	"github.com/existflow/taskdeck/server"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a new task",
	Long: `Add a new task on the running API server.

Examples:
  taskdeck add "Buy milk" -d "2% milk" -t grocery -p Low
  taskdeck add Deploy -d "ship v2" -t "ops, prod" -p High --due tomorrow`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

var (
	addDescription string
	addTags        string
	addPriority    string
	addDue         string
)

func init() {
	addCmd.Flags().StringVarP(&addDescription, "description", "d", "", "Task description")
	addCmd.Flags().StringVarP(&addTags, "tags", "t", "", "Comma-separated tags")
	addCmd.Flags().StringVarP(&addPriority, "priority", "p", "Medium", "Priority (Low, Medium, High)")
	addCmd.Flags().StringVar(&addDue, "due", "", "Due date (e.g., 'tomorrow', '+3d', '2025-01-15')")
}

func runAdd(cmd *cobra.Command, args []string) error {
	task, err := newClient().Add(cmd.Context(), server.TaskRequest{
		Title:       strings.Join(args, " "),
		Description: addDescription,
		Tags:        form.ParseTags(addTags),
		Priority:    addPriority,
		DueDate:     addDue,
	})
	if err != nil {
		return fmt.Errorf("failed to add task: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Added [%s]: %q (%s)\n", shortID(task.ID), task.Title, task.Priority)
	return nil
}
