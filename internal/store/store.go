// Package store holds the authoritative in-memory state: the ordered task list
// and the session. Every applied mutation is written through to the repository
// from a single place, one write per operation.
package store

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/task-tracker/internal/model"
	"github.com/BuzzLyutic/task-tracker/internal/repo"
)

type Store struct {
	mu      sync.Mutex
	repo    repo.Repository
	logger  *zap.Logger
	tasks   []model.Task
	session model.Session
}

func New(r repo.Repository, logger *zap.Logger) *Store {
	return &Store{
		repo:   r,
		logger: logger,
		tasks:  []model.Task{},
	}
}

// Load reads persisted tasks and session into memory. Stored tasks that are
// not an array reset the list to empty and the empty list is written back;
// this is logged, not returned. A clean load writes nothing, and skipped
// records stay in storage until the next mutation.
func (s *Store) Load(ctx context.Context) error {
	tasks, report, err := s.repo.LoadTasks(ctx)
	reset := false
	switch {
	case errors.Is(err, repo.ErrNotSequence):
		s.logger.Warn("stored tasks are not in array format, starting with an empty list", zap.Error(err))
		tasks, reset = nil, true
	case err != nil:
		return err
	}
	if err := report.Err(); err != nil {
		s.logger.Warn("skipping malformed stored tasks",
			zap.Int("skipped", len(report.Skipped)),
			zap.Error(err),
		)
	}

	session, err := s.repo.LoadSession(ctx)
	if err != nil {
		s.logger.Warn("stored session is malformed, starting logged out", zap.Error(err))
		session = model.Session{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = session
	s.tasks = append(make([]model.Task, 0, len(tasks)), tasks...)
	if reset {
		return s.persist(ctx)
	}
	return nil
}

// ReplaceAll sets the whole list and persists it. nil becomes an empty list.
func (s *Store) ReplaceAll(ctx context.Context, tasks []model.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks = append(make([]model.Task, 0, len(tasks)), tasks...)
	return s.persist(ctx)
}

// Add appends the task. Ids are not deduplicated here.
func (s *Store) Add(ctx context.Context, t model.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks = append(s.tasks, t)
	return s.persist(ctx)
}

// Update replaces the first task with the same id in place. It reports false
// and writes nothing when no such task exists.
func (s *Store) Update(ctx context.Context, t model.Task) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tasks {
		if s.tasks[i].ID == t.ID {
			s.tasks[i] = t
			return true, s.persist(ctx)
		}
	}
	return false, nil
}

// Delete removes every task with the id and returns how many were removed.
func (s *Store) Delete(ctx context.Context, id int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	removed := len(s.tasks) - len(kept)
	s.tasks = kept
	return removed, s.persist(ctx)
}

func (s *Store) Login(ctx context.Context, u model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = model.Session{LoggedIn: true, User: &u}
	return s.persistSession(ctx)
}

// Logout clears the session. Tasks are kept.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = model.Session{}
	return s.persistSession(ctx)
}

// Tasks returns a copy of the list.
func (s *Store) Tasks() []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]model.Task(nil), s.tasks...)
}

func (s *Store) Get(id int64) (model.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return model.Task{}, false
}

func (s *Store) Session() model.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := s.session
	if out.User != nil {
		u := *out.User
		out.User = &u
	}
	return out
}

// persist must be called with mu held.
func (s *Store) persist(ctx context.Context) error {
	if err := s.repo.SaveTasks(ctx, s.tasks); err != nil {
		s.logger.Error("failed to persist tasks", zap.Int("count", len(s.tasks)), zap.Error(err))
		return err
	}
	return nil
}

func (s *Store) persistSession(ctx context.Context) error {
	if err := s.repo.SaveSession(ctx, s.session); err != nil {
		s.logger.Error("failed to persist session", zap.Error(err))
		return err
	}
	return nil
}
