package main

import (
	"fmt"

	"github.com/dori/projecthub/internal/app"
	"github.com/dori/projecthub/internal/auth"
	"github.com/dori/projecthub/internal/db"
	"github.com/spf13/cobra"
)

var (
	projectDesc string
	projectDue  string
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Manage projects",
}

var projectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your projects",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withIdentity(func(a *app.App, ident *auth.Identity) error {
			projects, err := a.DB.ListProjects(ident.UserID, db.ProjectFilter{})
			if err != nil {
				return err
			}
			if len(projects) == 0 {
				fmt.Println("No projects yet.")
				return nil
			}
			for _, p := range projects {
				line := fmt.Sprintf("%s  %s  %d/%d tasks",
					styleSubtle.Render(p.ID),
					styleTitle.Render(p.Name),
					p.CompletedCount, p.TaskCount)
				if p.DueDate != nil {
					line += "  " + dueLabel(p.DueBucket(), formatDueDate(*p.DueDate))
				}
				fmt.Println(line)
			}
			return nil
		})
	},
}

var projectsCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		due, err := parseDueDate(projectDue)
		if err != nil {
			return err
		}
		return withIdentity(func(a *app.App, ident *auth.Identity) error {
			p, err := a.DB.CreateProject(ident.UserID, db.CreateProjectInput{
				Name:        args[0],
				Description: projectDesc,
				DueDate:     due,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Created project %s (%s)\n", p.Name, p.ID)
			return nil
		})
	},
}

var projectsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a project and its tasks",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withIdentity(func(a *app.App, ident *auth.Identity) error {
			p, err := a.DB.GetProject(ident.UserID, args[0])
			if err != nil {
				return err
			}
			fmt.Println(styleTitle.Render(p.Name))
			if p.Description != "" {
				fmt.Println(p.Description)
			}
			fmt.Printf("%d/%d tasks done (%d%%)\n", p.CompletedCount, p.TaskCount, p.CompletionPercent())

			tasks, err := a.DB.ListTasks(ident.UserID, db.TaskFilter{ProjectID: p.ID})
			if err != nil {
				return err
			}
			for _, t := range tasks {
				printTaskLine(t)
			}
			return nil
		})
	},
}

var projectsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a project and everything under it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withIdentity(func(a *app.App, ident *auth.Identity) error {
			if err := a.DB.DeleteProject(ident.UserID, args[0]); err != nil {
				return err
			}
			fmt.Println("Deleted")
			return nil
		})
	},
}

func init() {
	projectsCreateCmd.Flags().StringVar(&projectDesc, "desc", "", "Project description")
	projectsCreateCmd.Flags().StringVar(&projectDue, "due", "", "Due date (today, tomorrow, 2006-01-02)")

	projectsCmd.AddCommand(projectsListCmd, projectsCreateCmd, projectsShowCmd, projectsDeleteCmd)
	rootCmd.AddCommand(projectsCmd)
}
