package service

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/BuzzLyutic/task-tracker/internal/model"
)

const DefaultHistoryLimit = 100

// History is a bounded in-memory log of user actions.
type History struct {
	mu      sync.Mutex
	limit   int
	entries []model.HistoryEntry
}

func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &History{limit: limit}
}

func (h *History) Record(action model.HistoryAction, taskID int64, at time.Time) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = append(h.entries, model.HistoryEntry{
		ID:     uuid.NewString(),
		Action: action,
		TaskID: taskID,
		At:     at,
	})
	if over := len(h.entries) - h.limit; over > 0 {
		h.entries = append(h.entries[:0:0], h.entries[over:]...)
	}
}

// Entries returns the log oldest first.
func (h *History) Entries() []model.HistoryEntry {
	h.mu.Lock()
	defer h.mu.Unlock()

	return append([]model.HistoryEntry{}, h.entries...)
}
