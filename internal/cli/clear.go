package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all tasks",
	Long: `Delete every task on the running API server.

Examples:
  taskdeck clear
  taskdeck clear --force`,
	Args: cobra.NoArgs,
	RunE: runClear,
}

var clearForce bool

func init() {
	clearCmd.Flags().BoolVarP(&clearForce, "force", "f", false, "Do not ask for confirmation")
}

func runClear(cmd *cobra.Command, args []string) error {
	c := newClient()
	out := cmd.OutOrStdout()

	if !clearForce {
		ok, err := confirm(cmd, "Are you sure you want to delete all tasks?")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out, "Aborted.")
			return nil
		}
	}

	if err := c.DeleteAll(cmd.Context()); err != nil {
		return fmt.Errorf("failed to clear tasks: %w", err)
	}

	fmt.Fprintln(out, "🧹 All tasks deleted.")
	return nil
}
