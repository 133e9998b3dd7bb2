package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/existflow/taskdeck/internal/client"
	"github.com/existflow/taskdeck/internal/model"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// MinIDPrefix is the shortest id prefix accepted on the command line
const MinIDPrefix = 4

// ErrNotInteractive is returned when a confirmation is needed but stdin isn't a terminal
var ErrNotInteractive = errors.New("confirmation required but stdin is not a terminal; pass --force")

// isInteractive reports whether prompts can be shown
var isInteractive = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func newClient() *client.Client {
	return client.New(cfg.ServerURL)
}

// resolveTask finds the task whose id equals or starts with idOrPrefix
func resolveTask(ctx context.Context, c *client.Client, idOrPrefix string) (model.Task, error) {
	if len(idOrPrefix) < MinIDPrefix {
		return model.Task{}, fmt.Errorf("task id %q is too short, use at least %d characters", idOrPrefix, MinIDPrefix)
	}

	all := ""
	resp, err := c.List(ctx, client.ListOptions{Search: &all})
	if err != nil {
		return model.Task{}, err
	}

	var matches []model.Task
	for _, t := range resp.Tasks {
		if t.ID == idOrPrefix {
			return t, nil
		}
		if strings.HasPrefix(t.ID, idOrPrefix) {
			matches = append(matches, t)
		}
	}

	switch len(matches) {
	case 0:
		return model.Task{}, fmt.Errorf("task not found: %s", idOrPrefix)
	case 1:
		return matches[0], nil
	}

	ids := make([]string, len(matches))
	for i, t := range matches {
		ids[i] = shortID(t.ID)
	}
	return model.Task{}, fmt.Errorf("task id %q is ambiguous: matches %s", idOrPrefix, strings.Join(ids, ", "))
}

// confirm asks a yes/no question on the command's input
func confirm(cmd *cobra.Command, prompt string) (bool, error) {
	if !isInteractive() {
		return false, ErrNotInteractive
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N]: ", prompt)
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func printBucket(w io.Writer, name string, tasks []model.Task) {
	fmt.Fprintf(w, "\n📁 %s (%d)\n", name, len(tasks))
	fmt.Fprintln(w, strings.Repeat("─", 72))

	for _, t := range tasks {
		printTask(w, t)
	}
	fmt.Fprintln(w)
}

func printTask(w io.Writer, t model.Task) {
	icon := "☆"
	if t.Starred {
		icon = "★"
	}

	// Priority indicator
	priority := "  " + string(t.Priority)
	if t.Priority == model.PriorityHigh {
		priority = "▲ " + string(t.Priority)
	}

	// Due date
	due := ""
	if t.DueDate != nil {
		due = t.DueDate.Format("Jan 2")
		if t.IsOverdue() {
			due = "!" + due
		}
	}

	// Truncate title if too long
	title := t.Title
	if len([]rune(title)) > 24 {
		title = string([]rune(title)[:21]) + "..."
	}

	fmt.Fprintf(w, "  %s  %-8s  %-24s  %-8s  %-7s  %s\n", icon, shortID(t.ID), title, priority, due, strings.Join(t.Tags, ","))
}

func printDetails(w io.Writer, t model.Task) {
	star := "no"
	if t.Starred {
		star = "yes"
	}
	due := "none"
	if t.DueDate != nil {
		due = t.DueDate.Format("2006-01-02")
	}

	fmt.Fprintf(w, "ID:          %s\n", t.ID)
	fmt.Fprintf(w, "Title:       %s\n", t.Title)
	fmt.Fprintf(w, "Description: %s\n", t.Description)
	fmt.Fprintf(w, "Tags:        %s\n", strings.Join(t.Tags, ", "))
	fmt.Fprintf(w, "Priority:    %s\n", t.Priority)
	fmt.Fprintf(w, "Starred:     %s\n", star)
	fmt.Fprintf(w, "Due:         %s\n", due)
	fmt.Fprintf(w, "Created:     %s\n", t.CreatedAt.Local().Format(time.DateTime))
}
