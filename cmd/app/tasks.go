package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/BuzzLyutic/task-tracker/internal/model"
)

func newTasksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Inspect and change stored tasks",
	}
	cmd.AddCommand(newTasksListCmd(), newTasksAddCmd(), newTasksCycleCmd(), newTasksDeleteCmd())
	return cmd
}

func newTasksListCmd() *cobra.Command {
	var filter struct{ q, status, priority string }

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks matching the filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(a *app) error {
				tasks, err := a.service.List(model.TaskFilter{
					Search:   filter.q,
					Status:   model.Status(filter.status),
					Priority: model.Priority(filter.priority),
				})
				if err != nil {
					return err
				}
				return printTasks(cmd.OutOrStdout(), tasks)
			})
		},
	}
	cmd.Flags().StringVarP(&filter.q, "query", "q", "", "case-insensitive text matched against name, priority and status")
	cmd.Flags().StringVar(&filter.status, "status", "", "started, in-progress or finished")
	cmd.Flags().StringVar(&filter.priority, "priority", "", "low, medium or high")
	return cmd
}

func newTasksAddCmd() *cobra.Command {
	var priority, status, due string

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Create a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dueDate, err := model.ParseDueDate(due)
			if err != nil {
				return err
			}
			return withApp(cmd.Context(), func(a *app) error {
				t, err := a.service.Create(cmd.Context(), model.Task{
					TaskName: args[0],
					Priority: model.Priority(priority),
					Status:   model.Status(status),
					DueDate:  dueDate,
				})
				if err != nil {
					return err
				}
				return printTasks(cmd.OutOrStdout(), []model.Task{t})
			})
		},
	}
	cmd.Flags().StringVar(&priority, "priority", string(model.PriorityMedium), "low, medium or high")
	cmd.Flags().StringVar(&status, "status", string(model.StatusStarted), "started, in-progress or finished")
	cmd.Flags().StringVar(&due, "due", "", "due date, e.g. 2025-01-31T17:00")
	return cmd
}

func newTasksCycleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cycle ID",
		Short: "Move a task to its next status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid task id %q", args[0])
			}
			return withApp(cmd.Context(), func(a *app) error {
				t, err := a.service.CycleStatus(cmd.Context(), id)
				if err != nil {
					return err
				}
				return printTasks(cmd.OutOrStdout(), []model.Task{t})
			})
		},
	}
}

func newTasksDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid task id %q", args[0])
			}
			return withApp(cmd.Context(), func(a *app) error {
				return a.service.Delete(cmd.Context(), id)
			})
		},
	}
}

func withApp(ctx context.Context, fn func(*app) error) error {
	a, err := newApp(ctx, false)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}

func printTasks(w io.Writer, tasks []model.Task) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPRIORITY\tSTATUS\tDUE")
	for _, t := range tasks {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", t.ID, t.TaskName, t.Priority, t.Status, t.DueDate)
	}
	return tw.Flush()
}
