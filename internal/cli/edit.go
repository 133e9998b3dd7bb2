package cli

import (
	"fmt"

	"github.com/existflow/taskdeck/internal/form"
	"github.com/existflow/taskdeck/server"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit [task-id]",
	Short: "Edit a task",
	Long: `Edit a task by its ID or ID prefix. Only the given fields change.

Examples:
  taskdeck edit 1a2b3c4d --priority High
  taskdeck edit 1a2b --tags "web, api" --due +7d
  taskdeck edit 1a2b --clear-due`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

var (
	editTitle       string
	editDescription string
	editTags        string
	editPriority    string
	editDue         string
	editClearDue    bool
)

func init() {
	editCmd.Flags().StringVar(&editTitle, "title", "", "New title")
	editCmd.Flags().StringVarP(&editDescription, "description", "d", "", "New description")
	editCmd.Flags().StringVarP(&editTags, "tags", "t", "", "New comma-separated tags (replaces all)")
	editCmd.Flags().StringVarP(&editPriority, "priority", "p", "", "New priority (Low, Medium, High)")
	editCmd.Flags().StringVar(&editDue, "due", "", "New due date")
	editCmd.Flags().BoolVar(&editClearDue, "clear-due", false, "Remove the due date")
	editCmd.MarkFlagsMutuallyExclusive("due", "clear-due")
}

func runEdit(cmd *cobra.Command, args []string) error {
	c := newClient()
	task, err := resolveTask(cmd.Context(), c, args[0])
	if err != nil {
		return err
	}

	edited, err := c.Edit(cmd.Context(), task.ID, server.TaskRequest{
		Title:       editTitle,
		Description: editDescription,
		Tags:        form.ParseTags(editTags),
		Priority:    editPriority,
		DueDate:     editDue,
		ClearDue:    editClearDue,
	})
	if err != nil {
		return fmt.Errorf("failed to edit task: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Updated [%s]: %q\n", shortID(edited.ID), edited.Title)
	return nil
}
