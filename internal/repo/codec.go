package repo

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/BuzzLyutic/task-tracker/internal/model"
)

var ErrNotSequence = errors.New("stored tasks are not in array format")

// RecordError describes one stored task record that was dropped on load.
type RecordError struct {
	Index  int
	Reason string
}

func (e RecordError) Error() string {
	return fmt.Sprintf("task record %d: %s", e.Index, e.Reason)
}

type DecodeReport struct {
	Skipped []RecordError
}

func (r DecodeReport) Err() error {
	if len(r.Skipped) == 0 {
		return nil
	}
	errs := make([]error, len(r.Skipped))
	for i, e := range r.Skipped {
		errs[i] = e
	}
	return errors.Join(errs...)
}

// DecodeTasks decodes the value stored under the tasks key. A value that is
// not a JSON array yields ErrNotSequence. Invalid records are skipped and
// listed in the report, valid ones keep their order.
func DecodeTasks(raw []byte) ([]model.Task, DecodeReport, error) {
	var report DecodeReport

	var records []json.RawMessage
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, report, fmt.Errorf("%w: %v", ErrNotSequence, err)
	}
	// "null" decodes to nil without an error but is not an array.
	if records == nil {
		return nil, report, ErrNotSequence
	}

	tasks := make([]model.Task, 0, len(records))
	for i, rec := range records {
		t, err := decodeRecord(rec)
		if err != nil {
			report.Skipped = append(report.Skipped, RecordError{Index: i, Reason: err.Error()})
			continue
		}
		tasks = append(tasks, t)
	}
	return tasks, report, nil
}

func decodeRecord(rec json.RawMessage) (model.Task, error) {
	var t model.Task
	if !bytes.HasPrefix(bytes.TrimSpace(rec), []byte("{")) {
		return t, errors.New("not an object")
	}
	if err := json.Unmarshal(rec, &t); err != nil {
		return t, err
	}
	if t.ID == 0 {
		return t, errors.New("missing id")
	}
	t = t.WithDefaults()
	if !t.Priority.Valid() {
		return t, fmt.Errorf("unknown priority %q", t.Priority)
	}
	if !t.Status.Valid() {
		return t, fmt.Errorf("unknown status %q", t.Status)
	}
	return t, nil
}

// EncodeTasks always produces a JSON array, never null.
func EncodeTasks(tasks []model.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []model.Task{}
	}
	return json.Marshal(tasks)
}
