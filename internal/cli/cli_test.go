package cli

import (
	"bytes"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/existflow/taskdeck/internal/client"
	"github.com/existflow/taskdeck/internal/model"
	"github.com/existflow/taskdeck/internal/store"
	"github.com/existflow/taskdeck/server"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedIDs(ids ...string) func() string {
	i := 0
	return func() string {
		id := ids[i%len(ids)]
		i++
		return id
	}
}

func newTestAPI(t *testing.T, opts ...store.Option) (string, *store.Collection) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	tasks := store.New(opts...)
	ts := httptest.NewServer(server.New(tasks).Router())
	t.Cleanup(ts.Close)
	return ts.URL, tasks
}

// resetFlags restores every flag to its default so commands can run repeatedly
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, url, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{"--server", url}, args...))

	err := rootCmd.Execute()
	return out.String(), err
}

func interactive(t *testing.T, v bool) {
	t.Helper()
	prev := isInteractive
	isInteractive = func() bool { return v }
	t.Cleanup(func() { isInteractive = prev })
}

func TestAddAndList(t *testing.T) {
	url, tasks := newTestAPI(t)

	out, err := execute(t, url, "", "add", "Buy", "milk", "-d", "2% milk", "-t", "grocery, home", "-p", "low")
	require.NoError(t, err, out)
	assert.Contains(t, out, `"Buy milk" (Low)`)
	require.Equal(t, 1, tasks.Len())
	assert.Equal(t, []string{"grocery", "home"}, tasks.Tasks()[0].Tags)

	out, err = execute(t, url, "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "All Tasks (1)")
	assert.Contains(t, out, "Buy milk")

	out, err = execute(t, url, "", "ls", "--group", "tags")
	require.NoError(t, err)
	assert.Contains(t, out, "grocery (1)")
	assert.Contains(t, out, "home (1)")
}

func TestAdd_ValidationError(t *testing.T) {
	url, tasks := newTestAPI(t)

	_, err := execute(t, url, "", "add", "x")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "title")
	assert.Zero(t, tasks.Len())
}

func TestList_Empty(t *testing.T) {
	url, _ := newTestAPI(t)

	out, err := execute(t, url, "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No tasks found")

	out, err = execute(t, url, "", "list", "--search", "zzz")
	require.NoError(t, err)
	assert.Contains(t, out, `No tasks match "zzz"`)
}

func TestList_BadGroup(t *testing.T) {
	url, _ := newTestAPI(t)
	_, err := execute(t, url, "", "list", "--group", "color")
	assert.ErrorContains(t, err, "unknown grouping")
}

func TestExecute_ClosesLoggerOnError(t *testing.T) {
	url, _ := newTestAPI(t)
	resetFlags(rootCmd)

	closed := 0
	prev := closeLogger
	closeLogger = func() error {
		closed++
		return nil
	}
	t.Cleanup(func() { closeLogger = prev })

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"--server", url, "list", "--group", "Color"})

	err := Execute()
	require.Error(t, err)
	assert.Equal(t, 1, closed)
}

func TestResolveTask(t *testing.T) {
	url, tasks := newTestAPI(t, store.WithIDFunc(fixedIDs("abcd1111", "abcd2222", "ffff0000")))
	tasks.Add(store.AddInput{Title: "one"})
	tasks.Add(store.AddInput{Title: "two"})
	tasks.Add(store.AddInput{Title: "three"})
	tasks.SetSearchTerm("three")
	c := client.New(url)
	ctx := t.Context()

	task, err := resolveTask(ctx, c, "abcd2222")
	require.NoError(t, err)
	assert.Equal(t, "two", task.Title, "exact id resolves even when hidden by the search term")

	task, err = resolveTask(ctx, c, "abcd1")
	require.NoError(t, err)
	assert.Equal(t, "one", task.Title)

	_, err = resolveTask(ctx, c, "abcd")
	assert.ErrorContains(t, err, "ambiguous")

	_, err = resolveTask(ctx, c, "ab")
	assert.ErrorContains(t, err, "too short")

	_, err = resolveTask(ctx, c, "zzzz")
	assert.ErrorContains(t, err, "task not found")
}

func TestStar(t *testing.T) {
	url, tasks := newTestAPI(t, store.WithIDFunc(fixedIDs("abcd1111")))
	tasks.Add(store.AddInput{Title: "one"})

	out, err := execute(t, url, "", "star", "abcd")
	require.NoError(t, err)
	assert.Contains(t, out, "Starred")
	task, _ := tasks.Get("abcd1111")
	assert.True(t, task.Starred)

	out, err = execute(t, url, "", "star", "abcd")
	require.NoError(t, err)
	assert.Contains(t, out, "Unstarred")
}

func TestEdit(t *testing.T) {
	url, tasks := newTestAPI(t, store.WithIDFunc(fixedIDs("abcd1111")))
	tasks.Add(store.AddInput{Title: "one", Description: "first", Tags: []string{"x"}})

	_, err := execute(t, url, "", "edit", "abcd", "--priority", "High", "--tags", "a,b", "--due", "2030-01-02")
	require.NoError(t, err)

	task, _ := tasks.Get("abcd1111")
	assert.Equal(t, model.PriorityHigh, task.Priority)
	assert.Equal(t, "one", task.Title)
	assert.Equal(t, []string{"a", "b"}, task.Tags)
	require.NotNil(t, task.DueDate)

	_, err = execute(t, url, "", "edit", "abcd", "--clear-due")
	require.NoError(t, err)
	task, _ = tasks.Get("abcd1111")
	assert.Nil(t, task.DueDate)

	_, err = execute(t, url, "", "edit", "abcd", "--due", "today", "--clear-due")
	assert.Error(t, err)
}

func TestDelete(t *testing.T) {
	url, tasks := newTestAPI(t, store.WithIDFunc(fixedIDs("abcd1111", "ffff2222")))
	tasks.Add(store.AddInput{Title: "one"})
	tasks.Add(store.AddInput{Title: "two"})

	t.Run("refuses without a terminal", func(t *testing.T) {
		interactive(t, false)
		_, err := execute(t, url, "", "delete", "abcd")
		assert.ErrorIs(t, err, ErrNotInteractive)
		assert.Equal(t, 2, tasks.Len())
	})

	t.Run("declined", func(t *testing.T) {
		interactive(t, true)
		out, err := execute(t, url, "n\n", "rm", "abcd")
		require.NoError(t, err)
		assert.Contains(t, out, "Cancelled.")
		assert.Equal(t, 2, tasks.Len())
	})

	t.Run("confirmed", func(t *testing.T) {
		interactive(t, true)
		_, err := execute(t, url, "y\n", "rm", "abcd")
		require.NoError(t, err)
		_, ok := tasks.Get("abcd1111")
		assert.False(t, ok)
	})

	t.Run("forced", func(t *testing.T) {
		interactive(t, false)
		_, err := execute(t, url, "", "delete", "ffff", "--force")
		require.NoError(t, err)
		assert.Zero(t, tasks.Len())
	})
}

func TestClear(t *testing.T) {
	url, tasks := newTestAPI(t)
	tasks.Seed()

	interactive(t, false)
	_, err := execute(t, url, "", "clear")
	assert.ErrorIs(t, err, ErrNotInteractive)
	assert.NotZero(t, tasks.Len())

	out, err := execute(t, url, "", "clear", "--force")
	require.NoError(t, err)
	assert.Contains(t, out, "All tasks deleted")
	assert.Zero(t, tasks.Len())
}

func TestSearch(t *testing.T) {
	url, tasks := newTestAPI(t)
	tasks.Seed()

	out, err := execute(t, url, "", "search")
	require.NoError(t, err)
	assert.Contains(t, out, "No active search")

	out, err = execute(t, url, "", "search", "python")
	require.NoError(t, err)
	assert.Contains(t, out, `"python" (2 matching)`)
	assert.Equal(t, "python", tasks.SearchTerm())

	out, err = execute(t, url, "", "search", "--clear")
	require.NoError(t, err)
	assert.Contains(t, out, "Search cleared")
	assert.Empty(t, tasks.SearchTerm())
}

func TestPrintTask(t *testing.T) {
	var buf bytes.Buffer
	printTask(&buf, model.Task{ID: "0123456789", Title: "A very long task title that overflows", Priority: model.PriorityHigh, Starred: true, Tags: []string{"a", "b"}})

	line := buf.String()
	assert.Contains(t, line, "★")
	assert.Contains(t, line, "01234567 ")
	assert.Contains(t, line, "...")
	assert.Contains(t, line, "▲ High")
	assert.Contains(t, line, "a,b")
}
