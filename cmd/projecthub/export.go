package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dori/projecthub/internal/app"
	"github.com/dori/projecthub/internal/auth"
	"github.com/dori/projecthub/internal/export"
	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export <project-id>",
	Short: "Export a project snapshot as JSON or PDF",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := export.ParseFormat(exportFormat)
		if err != nil {
			return err
		}
		return withIdentity(func(a *app.App, ident *auth.Identity) error {
			builder := &export.Builder{Store: a.DB}
			doc, err := builder.Build(ident.UserID, args[0])
			if err != nil {
				return err
			}

			var data []byte
			switch format {
			case export.FormatJSON:
				data, err = export.RenderJSON(doc)
			case export.FormatPDF:
				data, err = export.RenderPDF(doc)
			}
			if err != nil {
				return err
			}

			name := export.Filename(doc.Project.Name, format, time.Now())
			path := filepath.Join(exportOut, name)
			if err := os.WriteFile(path, data, 0644); err != nil {
				return fmt.Errorf("failed to write export: %w", err)
			}
			fmt.Printf("Wrote %s\n", path)
			return nil
		})
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "Export format (json, pdf)")
	exportCmd.Flags().StringVar(&exportOut, "out", ".", "Output directory")

	rootCmd.AddCommand(exportCmd)
}
