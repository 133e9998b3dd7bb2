package cli

import (
	"fmt"
	"strings"

	"github.com/existflow/taskdeck/internal/client"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search [term]",
	Short: "Show or set the active search term",
	Long: `Show the server's active search term, or replace it.

The term filters 'taskdeck list' and the TUI of a 'taskdeck --listen'
session sharing the same server.

Examples:
  taskdeck search
  taskdeck search python
  taskdeck search --clear`,
	RunE: runSearch,
}

var searchClear bool

func init() {
	searchCmd.Flags().BoolVar(&searchClear, "clear", false, "Clear the search term")
}

func runSearch(cmd *cobra.Command, args []string) error {
	c := newClient()
	out := cmd.OutOrStdout()

	if len(args) == 0 && !searchClear {
		term, err := c.Search(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to get search term: %w", err)
		}
		if term == "" {
			fmt.Fprintln(out, "No active search.")
			return nil
		}
		fmt.Fprintf(out, "🔍 %q\n", term)
		return nil
	}

	term := strings.Join(args, " ")
	if searchClear {
		term = ""
	}
	if err := c.SetSearch(cmd.Context(), term); err != nil {
		return fmt.Errorf("failed to set search term: %w", err)
	}

	resp, err := c.List(cmd.Context(), client.ListOptions{})
	if err != nil {
		return fmt.Errorf("failed to list tasks: %w", err)
	}
	if term == "" {
		fmt.Fprintf(out, "🔍 Search cleared (%d tasks)\n", len(resp.Tasks))
		return nil
	}
	fmt.Fprintf(out, "🔍 Search set to %q (%d matching)\n", term, len(resp.Tasks))
	return nil
}
