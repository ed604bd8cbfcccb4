package main

import (
	"fmt"

	"github.com/dori/projecthub/internal/app"
	"github.com/dori/projecthub/internal/auth"
	"github.com/dori/projecthub/internal/db"
	"github.com/dori/projecthub/internal/model"
	"github.com/spf13/cobra"
)

var (
	taskProject   string
	taskPriority  string
	taskDue       string
	taskCompleted bool
	filterPending bool
)

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "Manage tasks",
}

var tasksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your tasks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		filter := db.TaskFilter{ProjectID: taskProject}
		if taskPriority != "" {
			p, err := model.ParsePriority(taskPriority)
			if err != nil {
				return err
			}
			filter.Priority = &p
		}
		if cmd.Flags().Changed("completed") {
			filter.Completed = &taskCompleted
		}
		if filterPending {
			pending := false
			filter.Completed = &pending
		}
		return withIdentity(func(a *app.App, ident *auth.Identity) error {
			tasks, err := a.DB.ListTasks(ident.UserID, filter)
			if err != nil {
				return err
			}
			if len(tasks) == 0 {
				fmt.Println("No tasks.")
				return nil
			}
			for _, t := range tasks {
				printTaskLine(t)
			}
			return nil
		})
	},
}

var tasksAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a task to a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		due, err := parseDueDate(taskDue)
		if err != nil {
			return err
		}
		var priority model.Priority
		if taskPriority != "" {
			priority, err = model.ParsePriority(taskPriority)
			if err != nil {
				return err
			}
		}
		return withIdentity(func(a *app.App, ident *auth.Identity) error {
			t, err := a.DB.CreateTask(ident.UserID, db.CreateTaskInput{
				ProjectID: taskProject,
				Name:      args[0],
				Priority:  priority,
				DueDate:   due,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Created task %s (%s)\n", t.Name, t.ID)
			return nil
		})
	},
}

var tasksToggleCmd = &cobra.Command{
	Use:   "toggle <id>",
	Short: "Toggle a task's completion",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withIdentity(func(a *app.App, ident *auth.Identity) error {
			t, err := a.DB.ToggleTaskCompletion(ident.UserID, args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s is now %s\n", t.Name, t.StatusLabel())
			return nil
		})
	},
}

var tasksDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a task and its notes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withIdentity(func(a *app.App, ident *auth.Identity) error {
			if err := a.DB.DeleteTask(ident.UserID, args[0]); err != nil {
				return err
			}
			fmt.Println("Deleted")
			return nil
		})
	},
}

func printTaskLine(t model.Task) {
	check := "[ ]"
	name := t.Name
	if t.Completed {
		check = "[x]"
		name = styleDone.Render(name)
	}
	line := fmt.Sprintf("%s %s %s  %s", check, priorityGlyph(t.Priority), name, styleSubtle.Render(t.ID))
	if t.DueDate != nil {
		line += "  " + dueLabel(t.DueBucket(), formatDueDate(*t.DueDate))
	}
	fmt.Println(line)
}

func init() {
	tasksListCmd.Flags().StringVar(&taskProject, "project", "", "Filter by project id")
	tasksListCmd.Flags().StringVar(&taskPriority, "priority", "", "Filter by priority (low, medium, high)")
	tasksListCmd.Flags().BoolVar(&taskCompleted, "completed", false, "Filter by completion state")
	tasksListCmd.Flags().BoolVar(&filterPending, "pending", false, "Only show unfinished tasks")

	tasksAddCmd.Flags().StringVar(&taskProject, "project", "", "Project id")
	tasksAddCmd.MarkFlagRequired("project")
	tasksAddCmd.Flags().StringVar(&taskPriority, "priority", "", "Priority (low, medium, high)")
	tasksAddCmd.Flags().StringVar(&taskDue, "due", "", "Due date (today, tomorrow, 2006-01-02)")

	tasksCmd.AddCommand(tasksListCmd, tasksAddCmd, tasksToggleCmd, tasksDeleteCmd)
	rootCmd.AddCommand(tasksCmd)
}
