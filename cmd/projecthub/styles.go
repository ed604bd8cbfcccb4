package main

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/dori/projecthub/internal/model"
)

// Terminal styles for list output.
var (
	styleTitle   = lipgloss.NewStyle().Bold(true)
	styleSubtle  = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	styleDone    = lipgloss.NewStyle().Foreground(lipgloss.Color("242")).Strikethrough(true)
	styleOverdue = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	styleSoon    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))

	priorityStyles = map[model.Priority]lipgloss.Style{
		model.PriorityHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		model.PriorityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		model.PriorityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("40")),
	}
)

func priorityGlyph(p model.Priority) string {
	return priorityStyles[p].Render("●")
}

func dueLabel(bucket model.DueBucket, formatted string) string {
	switch bucket {
	case model.BucketOverdue:
		return styleOverdue.Render("overdue " + formatted)
	case model.BucketToday:
		return styleOverdue.Render("due today")
	case model.BucketSoon:
		return styleSoon.Render("due " + formatted)
	case model.BucketNormal:
		return styleSubtle.Render("due " + formatted)
	default:
		return ""
	}
}
