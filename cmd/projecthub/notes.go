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
	noteTask  string
	noteTitle string
)

var notesCmd = &cobra.Command{
	Use:   "notes",
	Short: "Manage task notes",
}

var notesAddCmd = &cobra.Command{
	Use:   "add <content>",
	Short: "Attach a note to a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withIdentity(func(a *app.App, ident *auth.Identity) error {
			n, err := a.DB.CreateNote(ident.UserID, db.CreateNoteInput{
				TaskID:  noteTask,
				Title:   noteTitle,
				Content: args[0],
			})
			if err != nil {
				return err
			}
			fmt.Printf("Created note %s\n", n.ID)
			return nil
		})
	},
}

var notesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your notes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withIdentity(func(a *app.App, ident *auth.Identity) error {
			notes, err := a.DB.ListNotes(ident.UserID, db.NoteFilter{TaskID: noteTask})
			if err != nil {
				return err
			}
			printNotes(notes)
			return nil
		})
	},
}

var notesSearchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Search note content",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withIdentity(func(a *app.App, ident *auth.Identity) error {
			notes, err := a.DB.SearchNotes(ident.UserID, args[0])
			if err != nil {
				return err
			}
			printNotes(notes)
			return nil
		})
	},
}

var notesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withIdentity(func(a *app.App, ident *auth.Identity) error {
			if err := a.DB.DeleteNote(ident.UserID, args[0]); err != nil {
				return err
			}
			fmt.Println("Deleted")
			return nil
		})
	},
}

func printNotes(notes []model.Note) {
	if len(notes) == 0 {
		fmt.Println("No notes.")
		return
	}
	for _, n := range notes {
		header := styleSubtle.Render(n.ID)
		if n.Title != "" {
			header += "  " + styleTitle.Render(n.Title)
		}
		fmt.Println(header)
		fmt.Println(n.Content)
	}
}

func init() {
	notesAddCmd.Flags().StringVar(&noteTask, "task", "", "Task id")
	notesAddCmd.MarkFlagRequired("task")
	notesAddCmd.Flags().StringVar(&noteTitle, "title", "", "Optional note title")

	notesListCmd.Flags().StringVar(&noteTask, "task", "", "Filter by task id")

	notesCmd.AddCommand(notesAddCmd, notesListCmd, notesSearchCmd, notesDeleteCmd)
	rootCmd.AddCommand(notesCmd)
}
