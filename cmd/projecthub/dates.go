package main

import (
	"fmt"
	"strings"
	"time"
)

// parseDueDate accepts a few natural keywords plus common date layouts.
func parseDueDate(s string) (*time.Time, error) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, now.Location())

	switch strings.ToLower(s) {
	case "":
		return nil, nil
	case "today":
		return &today, nil
	case "tomorrow", "tom":
		t := today.AddDate(0, 0, 1)
		return &t, nil
	case "nextweek":
		t := today.AddDate(0, 0, 7)
		return &t, nil
	}

	formats := []string{
		"2006-01-02",
		"01/02/2006",
		"Jan 2, 2006",
	}
	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			t = time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, now.Location())
			return &t, nil
		}
	}

	return nil, fmt.Errorf("cannot parse due date %q", s)
}

func formatDueDate(t time.Time) string {
	now := time.Now()

	if t.Year() == now.Year() && t.YearDay() == now.YearDay() {
		return "today"
	}

	tomorrow := now.AddDate(0, 0, 1)
	if t.Year() == tomorrow.Year() && t.YearDay() == tomorrow.YearDay() {
		return "tomorrow"
	}

	if t.Year() == now.Year() {
		return t.Format("Mon, Jan 2")
	}

	return t.Format("Jan 2, 2006")
}
