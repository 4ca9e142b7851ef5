package repo

import (
	"context"

	"github.com/BuzzLyutic/task-tracker/internal/model"
)

// Repository определяет интерфейс для работы с сохраненным состоянием
type Repository interface {
	LoadTasks(ctx context.Context) ([]model.Task, DecodeReport, error)
	SaveTasks(ctx context.Context, tasks []model.Task) error
	LoadSession(ctx context.Context) (model.Session, error)
	SaveSession(ctx context.Context, s model.Session) error
}
