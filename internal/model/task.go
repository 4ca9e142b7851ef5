package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type Status string

const (
	StatusStarted    Status = "started"
	StatusInProgress Status = "in-progress"
	StatusFinished   Status = "finished"
)

func (s Status) Valid() bool {
	switch s {
	case StatusStarted, StatusInProgress, StatusFinished:
		return true
	}
	return false
}

// Next returns the next status in the cycle started -> in-progress -> finished -> started.
// An unknown status restarts the cycle.
func (s Status) Next() Status {
	switch s {
	case StatusStarted:
		return StatusInProgress
	case StatusInProgress:
		return StatusFinished
	default:
		return StatusStarted
	}
}

type Task struct {
	ID       int64    `json:"id"`
	TaskName string   `json:"taskName"`
	Priority Priority `json:"priority"`
	Status   Status   `json:"status"`
	DueDate  DueDate  `json:"dueDate"`
}

// WithDefaults fills in the form defaults for empty fields.
func (t Task) WithDefaults() Task {
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	if t.Status == "" {
		t.Status = StatusStarted
	}
	return t
}

// Overdue reports whether the task has a due date before now and is not finished.
func (t Task) Overdue(now time.Time) bool {
	return !t.DueDate.IsZero() && t.DueDate.Before(now) && t.Status != StatusFinished
}

type TaskFilter struct {
	Search   string
	Status   Status
	Priority Priority
}

// Match applies the three filter predicates. The search text matches if it is
// a case-insensitive substring of the name, the priority or the status.
func (f TaskFilter) Match(t Task) bool {
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(t.TaskName), q) &&
			!strings.Contains(strings.ToLower(string(t.Priority)), q) &&
			!strings.Contains(strings.ToLower(string(t.Status)), q) {
			return false
		}
	}
	if f.Status != "" && t.Status != f.Status {
		return false
	}
	if f.Priority != "" && t.Priority != f.Priority {
		return false
	}
	return true
}

// Apply returns the matching tasks in their original order.
func (f TaskFilter) Apply(tasks []Task) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

// Layouts accepted when decoding a due date. The first one is what an HTML
// datetime-local input produces.
var dueDateLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02",
}

const dueDateLayout = "2006-01-02T15:04"

// DueDate is an optional date/time. The zero value means "no due date" and is
// encoded as an empty string. A parsed value keeps its source text and is
// written back unchanged, so offsets, seconds and date-only values survive a
// save and load.
type DueDate struct {
	time.Time
	raw string
}

// NewDueDate normalises t to local time, minute precision.
func NewDueDate(t time.Time) DueDate {
	t = t.In(time.Local).Truncate(time.Minute)
	return DueDate{Time: t, raw: t.Format(dueDateLayout)}
}

// ParseDueDate reads values without an offset as local time.
func ParseDueDate(s string) (DueDate, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DueDate{}, nil
	}
	for _, layout := range dueDateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return DueDate{Time: t, raw: s}, nil
		}
	}
	return DueDate{}, fmt.Errorf("invalid due date %q", s)
}

func (d DueDate) String() string {
	if d.IsZero() {
		return ""
	}
	if d.raw != "" {
		return d.raw
	}
	return d.Format(dueDateLayout)
}

func (d DueDate) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *DueDate) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*d = DueDate{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("due date must be a string: %w", err)
	}
	parsed, err := ParseDueDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
