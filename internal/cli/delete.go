package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete [task-id]",
	Aliases: []string{"rm"},
	Short:   "Delete a task",
	Long: `Delete a task by its ID or ID prefix.

Examples:
  taskdeck delete 1a2b3c4d
  taskdeck rm 1a2b --force`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

var deleteForce bool

func init() {
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "Do not ask for confirmation")
}

func runDelete(cmd *cobra.Command, args []string) error {
	c := newClient()
	task, err := resolveTask(cmd.Context(), c, args[0])
	if err != nil {
		return err
	}

	if cfg.ConfirmDelete && !deleteForce {
		fmt.Fprintf(cmd.OutOrStdout(), "About to delete: %q (ID: %s)\n", task.Title, task.ID)
		ok, err := confirm(cmd, "Are you sure?")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
			return nil
		}
	}

	if err := c.Delete(cmd.Context(), task.ID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "🗑️  Deleted: %q\n", task.Title)
	return nil
}
