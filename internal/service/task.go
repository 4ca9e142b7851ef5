package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/task-tracker/internal/model"
)

var (
	ErrValidation         = errors.New("validation error")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// The only accepted credential pair. No hashing, no lockout.
const (
	adminUsername = "admin"
	adminPassword = "password"
)

const DashboardPath = "/dashboard"

// TaskStore is the state container the service mutates.
type TaskStore interface {
	Load(ctx context.Context) error
	Add(ctx context.Context, t model.Task) error
	Update(ctx context.Context, t model.Task) (bool, error)
	Delete(ctx context.Context, id int64) (int, error)
	Login(ctx context.Context, u model.User) error
	Logout(ctx context.Context) error
	Tasks() []model.Task
	Get(id int64) (model.Task, bool)
	Session() model.Session
}

type LoginResult struct {
	Session  model.Session `json:"session"`
	Redirect string        `json:"redirect"`
}

type TaskService struct {
	store   TaskStore
	logger  *zap.Logger
	ids     *IDGenerator
	history *History
	now     func() time.Time
}

func NewTaskService(st TaskStore, logger *zap.Logger, historyLimit int) *TaskService {
	return &TaskService{
		store:   st,
		logger:  logger,
		ids:     NewIDGenerator(time.Now),
		history: NewHistory(historyLimit),
		now:     time.Now,
	}
}

// Reload reads persisted state into the store and moves the id floor past
// every loaded id.
func (s *TaskService) Reload(ctx context.Context) error {
	if err := s.store.Load(ctx); err != nil {
		return fmt.Errorf("load state: %w", err)
	}
	tasks := s.store.Tasks()
	for _, t := range tasks {
		s.ids.Observe(t.ID)
	}
	s.history.Record(model.ActionLoad, 0, s.now())
	s.logger.Info("state loaded", zap.Int("tasks", len(tasks)))
	return nil
}

func (s *TaskService) Login(ctx context.Context, username, password string) (LoginResult, error) {
	if username != adminUsername || password != adminPassword {
		s.logger.Info("login rejected", zap.String("username", username))
		return LoginResult{}, ErrInvalidCredentials
	}
	if err := s.store.Login(ctx, model.User{Username: username}); err != nil {
		return LoginResult{}, err
	}
	s.history.Record(model.ActionLogin, 0, s.now())
	return LoginResult{Session: s.store.Session(), Redirect: DashboardPath}, nil
}

func (s *TaskService) Logout(ctx context.Context) error {
	if err := s.store.Logout(ctx); err != nil {
		return err
	}
	s.history.Record(model.ActionLogout, 0, s.now())
	return nil
}

func (s *TaskService) Session() model.Session {
	return s.store.Session()
}

// Create applies defaults, assigns a fresh id and appends the task.
func (s *TaskService) Create(ctx context.Context, t model.Task) (model.Task, error) {
	t = t.WithDefaults()
	if err := s.validate(t); err != nil {
		return t, err
	}
	t.ID = s.ids.Next()

	if err := s.store.Add(ctx, t); err != nil {
		return t, err
	}
	s.history.Record(model.ActionAdd, t.ID, s.now())
	return t, nil
}

func (s *TaskService) Get(id int64) (model.Task, error) {
	t, ok := s.store.Get(id)
	if !ok {
		return t, ErrNotFound
	}
	return t, nil
}

func (s *TaskService) List(filter model.TaskFilter) ([]model.Task, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, filter.Status)
	}
	if filter.Priority != "" && !filter.Priority.Valid() {
		return nil, fmt.Errorf("%w: unknown priority %q", ErrValidation, filter.Priority)
	}
	return filter.Apply(s.store.Tasks()), nil
}

// Update replaces the stored task with the same id.
func (s *TaskService) Update(ctx context.Context, t model.Task) (model.Task, error) {
	t = t.WithDefaults()
	if err := s.validate(t); err != nil {
		return t, err
	}
	if err := s.update(ctx, t); err != nil {
		return t, err
	}
	s.history.Record(model.ActionUpdate, t.ID, s.now())
	return t, nil
}

// CycleStatus moves the task to the next status: started, in-progress,
// finished, then back to started.
func (s *TaskService) CycleStatus(ctx context.Context, id int64) (model.Task, error) {
	t, ok := s.store.Get(id)
	if !ok {
		return t, ErrNotFound
	}
	t.Status = t.Status.Next()
	if err := s.update(ctx, t); err != nil {
		return t, err
	}
	s.history.Record(model.ActionCycle, t.ID, s.now())
	return t, nil
}

func (s *TaskService) Delete(ctx context.Context, id int64) error {
	removed, err := s.store.Delete(ctx, id)
	if err != nil {
		return err
	}
	if removed == 0 {
		return ErrNotFound
	}
	s.history.Record(model.ActionDelete, id, s.now())
	return nil
}

// Overdue lists unfinished tasks whose due date is before now.
func (s *TaskService) Overdue(now time.Time) []model.Task {
	out := []model.Task{}
	for _, t := range s.store.Tasks() {
		if t.Overdue(now) {
			out = append(out, t)
		}
	}
	return out
}

func (s *TaskService) History() []model.HistoryEntry {
	return s.history.Entries()
}

func (s *TaskService) update(ctx context.Context, t model.Task) error {
	found, err := s.store.Update(ctx, t)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}
	return nil
}

func (s *TaskService) validate(t model.Task) error {
	if !t.Priority.Valid() {
		return fmt.Errorf("%w: unknown priority %q", ErrValidation, t.Priority)
	}
	if !t.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrValidation, t.Status)
	}
	return nil
}
