package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BuzzLyutic/task-tracker/internal/model"
)

func runCmd(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestTasksCommands_SQLite(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", filepath.Join(t.TempDir(), "tasks.db"))
	t.Setenv("LOG_LEVEL", "error")

	out, err := runCmd(t, newTasksCmd(), "add", "Buy milk", "--priority", "high")
	require.NoError(t, err)
	assert.Contains(t, out, "Buy milk")

	_, err = runCmd(t, newTasksCmd(), "add", "Walk dog", "--priority", "low")
	require.NoError(t, err)

	out, err = runCmd(t, newTasksCmd(), "list", "--priority", "high")
	require.NoError(t, err)
	assert.Contains(t, out, "Buy milk")
	assert.NotContains(t, out, "Walk dog")

	out, err = runCmd(t, newTasksCmd(), "list", "-q", "DOG")
	require.NoError(t, err)
	assert.Contains(t, out, "Walk dog")

	_, err = runCmd(t, newTasksCmd(), "add", "Bad", "--priority", "urgent")
	assert.Error(t, err)

	_, err = runCmd(t, newTasksCmd(), "cycle", "not-a-number")
	assert.Error(t, err)
}

func TestTasksCommands_DefaultStorageKeepsTasks(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	// Empty values are ignored by the config loader, so defaults apply.
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("SQLITE_PATH", "")
	t.Setenv("LOG_LEVEL", "error")

	_, err = runCmd(t, newTasksCmd(), "add", "Write report")
	require.NoError(t, err)

	out, err := runCmd(t, newTasksCmd(), "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Write report")
	assert.FileExists(t, filepath.Join(dir, "tasktracker.db"))
}

func TestPrintTasks(t *testing.T) {
	due, err := model.ParseDueDate("2025-01-31T17:00")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, printTasks(&buf, []model.Task{
		{ID: 1, TaskName: "A", Priority: model.PriorityLow, Status: model.StatusStarted, DueDate: due},
	}))

	out := buf.String()
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "2025-01-31T17:00")
	assert.Contains(t, out, "started")
}

func TestNewLogger(t *testing.T) {
	_, err := newLogger("debug", true)
	assert.NoError(t, err)
	_, err = newLogger("chatty", false)
	assert.Error(t, err)
}
