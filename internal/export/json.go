package export

import (
	"encoding/json"
	"time"
)

// Metadata describes the export artifact itself.
type Metadata struct {
	ExportDate      string `json:"export_date"`
	ExportTimestamp string `json:"export_timestamp"`
	Format          string `json:"format"`
	Version         string `json:"version"`
	ProjectCount    int    `json:"project_count"`
	TotalTasks      int    `json:"total_tasks"`
	TotalNotes      int    `json:"total_notes"`
	AppName         string `json:"app_name"`
}

type jsonEnvelope struct {
	Metadata Metadata    `json:"metadata"`
	Project  ProjectData `json:"project"`
}

// RenderJSON serializes the document as pretty-printed UTF-8 JSON.
func RenderJSON(doc *Document) ([]byte, error) {
	env := jsonEnvelope{
		Metadata: buildMetadata(doc, FormatJSON),
		Project:  doc.Project,
	}
	return json.MarshalIndent(env, "", "  ")
}

func buildMetadata(doc *Document, format Format) Metadata {
	return Metadata{
		ExportDate:      doc.GeneratedAt.Format("Monday, January 2, 2006"),
		ExportTimestamp: doc.GeneratedAt.Format(time.RFC3339),
		Format:          string(format),
		Version:         Version,
		ProjectCount:    1,
		TotalTasks:      doc.Project.TasksCount,
		TotalNotes:      doc.Project.TotalNotesCount,
		AppName:         AppName,
	}
}
