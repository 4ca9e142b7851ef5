package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/BuzzLyutic/task-tracker/internal/config"
	"github.com/BuzzLyutic/task-tracker/internal/repo"
	"github.com/BuzzLyutic/task-tracker/internal/service"
	"github.com/BuzzLyutic/task-tracker/internal/storage"
	"github.com/BuzzLyutic/task-tracker/internal/store"
)

var configPath string

func main() {
	root := &cobra.Command{
		Use:           "tasktracker",
		Short:         "Task tracker with persistent key-value storage",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")

	root.AddCommand(newServeCmd(), newTasksCmd())

	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// app собирает зависимости, общие для всех команд
type app struct {
	cfg     config.Config
	logger  *zap.Logger
	kv      storage.KV
	service *service.TaskService
}

func newApp(ctx context.Context, production bool) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(cfg.LogLevel, production)
	if err != nil {
		return nil, err
	}

	kv, err := storage.Open(ctx, storage.Options{
		Driver:      cfg.StorageDriver,
		DatabaseURL: cfg.DatabaseURL,
		SQLitePath:  cfg.SQLitePath,
	})
	if err != nil {
		logger.Sync()
		return nil, fmt.Errorf("open storage: %w", err)
	}
	logger.Info("Storage opened", zap.String("driver", cfg.StorageDriver))

	st := store.New(repo.NewTaskRepo(kv), logger)
	srv := service.NewTaskService(st, logger, cfg.HistoryLimit)
	if err := srv.Reload(ctx); err != nil {
		kv.Close()
		logger.Sync()
		return nil, err
	}

	return &app{cfg: cfg, logger: logger, kv: kv, service: srv}, nil
}

func (a *app) Close() {
	if err := a.kv.Close(); err != nil {
		a.logger.Error("Failed to close storage", zap.Error(err))
	}
	a.logger.Sync()
}

func newLogger(level string, production bool) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	cfg := zap.NewProductionConfig()
	if !production {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}
