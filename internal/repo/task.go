package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/BuzzLyutic/task-tracker/internal/model"
	"github.com/BuzzLyutic/task-tracker/internal/storage"
)

// Storage keys, compatible with previously stored data.
const (
	KeyTasks    = "tasks"
	KeyLoggedIn = "loggedIn"
	KeyUser     = "user"
)

type TaskRepo struct {
	kv storage.KV
}

func NewTaskRepo(kv storage.KV) *TaskRepo {
	return &TaskRepo{kv: kv}
}

// LoadTasks returns an empty list when nothing was stored yet.
func (r *TaskRepo) LoadTasks(ctx context.Context) ([]model.Task, DecodeReport, error) {
	raw, err := r.kv.Get(ctx, KeyTasks)
	if errors.Is(err, storage.ErrNotFound) {
		return []model.Task{}, DecodeReport{}, nil
	}
	if err != nil {
		return nil, DecodeReport{}, fmt.Errorf("read %s: %w", KeyTasks, err)
	}
	return DecodeTasks(raw)
}

func (r *TaskRepo) SaveTasks(ctx context.Context, tasks []model.Task) error {
	raw, err := EncodeTasks(tasks)
	if err != nil {
		return err
	}
	if err := r.kv.Set(ctx, KeyTasks, raw); err != nil {
		return fmt.Errorf("write %s: %w", KeyTasks, err)
	}
	return nil
}

func (r *TaskRepo) LoadSession(ctx context.Context) (model.Session, error) {
	var s model.Session

	raw, err := r.kv.Get(ctx, KeyLoggedIn)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return s, nil
	case err != nil:
		return s, fmt.Errorf("read %s: %w", KeyLoggedIn, err)
	}
	if err := json.Unmarshal(raw, &s.LoggedIn); err != nil {
		return model.Session{}, fmt.Errorf("decode %s: %w", KeyLoggedIn, err)
	}
	if !s.LoggedIn {
		return s, nil
	}

	raw, err = r.kv.Get(ctx, KeyUser)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return s, nil
	case err != nil:
		return s, fmt.Errorf("read %s: %w", KeyUser, err)
	}
	var u model.User
	if err := json.Unmarshal(raw, &u); err != nil {
		return model.Session{}, fmt.Errorf("decode %s: %w", KeyUser, err)
	}
	s.User = &u
	return s, nil
}

// SaveSession writes both session keys. A logged out session removes the user.
func (r *TaskRepo) SaveSession(ctx context.Context, s model.Session) error {
	loggedIn, _ := json.Marshal(s.LoggedIn)
	if err := r.kv.Set(ctx, KeyLoggedIn, loggedIn); err != nil {
		return fmt.Errorf("write %s: %w", KeyLoggedIn, err)
	}

	if !s.LoggedIn || s.User == nil {
		if err := r.kv.Delete(ctx, KeyUser); err != nil {
			return fmt.Errorf("delete %s: %w", KeyUser, err)
		}
		return nil
	}

	user, err := json.Marshal(s.User)
	if err != nil {
		return err
	}
	if err := r.kv.Set(ctx, KeyUser, user); err != nil {
		return fmt.Errorf("write %s: %w", KeyUser, err)
	}
	return nil
}
