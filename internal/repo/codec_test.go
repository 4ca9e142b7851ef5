package repo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BuzzLyutic/task-tracker/internal/model"
)

func TestDecodeTasks_NotSequence(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "single object", raw: `{"id":1,"taskName":"A","priority":"low","status":"started","dueDate":""}`},
		{name: "null", raw: `null`},
		{name: "number", raw: `42`},
		{name: "string", raw: `"tasks"`},
		{name: "boolean", raw: `true`},
		{name: "broken json", raw: `[{"id":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tasks, report, err := DecodeTasks([]byte(tt.raw))
			assert.ErrorIs(t, err, ErrNotSequence)
			assert.Empty(t, tasks)
			assert.Empty(t, report.Skipped)
		})
	}
}

func TestDecodeTasks_EmptyArray(t *testing.T) {
	tasks, report, err := DecodeTasks([]byte(`[]`))
	require.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)
	assert.NoError(t, report.Err())
}

func TestDecodeTasks_BrowserData(t *testing.T) {
	raw := `[
		{"id":1700000000000,"taskName":"Write report","priority":"high","status":"in-progress","dueDate":"2024-05-01T09:30"},
		{"id":1700000000001,"taskName":"Call Bob","priority":"low","status":"started","dueDate":""}
	]`

	tasks, report, err := DecodeTasks([]byte(raw))
	require.NoError(t, err)
	require.NoError(t, report.Err())
	require.Len(t, tasks, 2)

	assert.Equal(t, int64(1700000000000), tasks[0].ID)
	assert.Equal(t, "Write report", tasks[0].TaskName)
	assert.Equal(t, model.PriorityHigh, tasks[0].Priority)
	assert.Equal(t, model.StatusInProgress, tasks[0].Status)
	assert.Equal(t, time.Date(2024, 5, 1, 9, 30, 0, 0, time.Local), tasks[0].DueDate.Time)

	assert.Equal(t, int64(1700000000001), tasks[1].ID)
	assert.True(t, tasks[1].DueDate.IsZero())
}

func TestDecodeTasks_SkipsMalformedRecords(t *testing.T) {
	raw := `[
		{"id":1,"taskName":"ok"},
		"not a task",
		{"taskName":"no id"},
		{"id":3,"priority":"urgent"},
		{"id":4,"status":"done"},
		{"id":5,"dueDate":"tomorrow"},
		null,
		{"id":6,"taskName":"also ok","priority":"high"}
	]`

	tasks, report, err := DecodeTasks([]byte(raw))
	require.NoError(t, err)

	require.Len(t, tasks, 2)
	assert.Equal(t, int64(1), tasks[0].ID)
	assert.Equal(t, model.PriorityMedium, tasks[0].Priority, "missing priority takes the default")
	assert.Equal(t, model.StatusStarted, tasks[0].Status, "missing status takes the default")
	assert.Equal(t, int64(6), tasks[1].ID)

	var skipped []int
	for _, e := range report.Skipped {
		skipped = append(skipped, e.Index)
	}
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, skipped)
	assert.Error(t, report.Err())
}

func TestEncodeTasks(t *testing.T) {
	raw, err := EncodeTasks(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))

	raw, err = EncodeTasks([]model.Task{{ID: 7, TaskName: "A", Priority: model.PriorityLow, Status: model.StatusStarted}})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":7,"taskName":"A","priority":"low","status":"started","dueDate":""}]`, string(raw))
}

func TestEncodeDecode_PreservesOrder(t *testing.T) {
	in := []model.Task{
		{ID: 3, TaskName: "c", Priority: model.PriorityHigh, Status: model.StatusFinished},
		{ID: 1, TaskName: "a", Priority: model.PriorityLow, Status: model.StatusStarted},
		{ID: 2, TaskName: "b", Priority: model.PriorityMedium, Status: model.StatusInProgress,
			DueDate: model.NewDueDate(time.Date(2030, 1, 2, 3, 4, 0, 0, time.Local))},
	}

	raw, err := EncodeTasks(in)
	require.NoError(t, err)

	out, report, err := DecodeTasks(raw)
	require.NoError(t, err)
	require.NoError(t, report.Err())
	assert.Equal(t, in, out)
}
