package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/rpggio/clipdeck/internal/display"
	"github.com/rpggio/clipdeck/internal/domain/dashboard"
	"github.com/rpggio/clipdeck/internal/domain/project"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTable() *table.Table {
	return table.New().Border(lipgloss.NormalBorder())
}

func printStats(w io.Writer, s *dashboard.Stats, now time.Time) {
	fmt.Fprintln(w, display.Heading.Render("Dashboard"))
	t := newTable().
		Row("Projects", display.FormatCount(s.TotalProjects)).
		Row("Clips", display.FormatCount(s.TotalClips)).
		Row("Ready", display.FormatCount(s.ReadyClips)).
		Row("In progress", display.FormatCount(s.ProcessingClips)).
		Row("Failed", display.FormatCount(s.FailedClips)).
		Row("Footage", display.FormatDuration(s.TotalDurationSeconds)).
		Row("Avg. viral score", display.FormatScore(s.AverageViralScore))
	fmt.Fprintln(w, t.Render())
	updated := display.UnknownDate
	if !s.GeneratedAt.IsZero() {
		updated = display.Relative(s.GeneratedAt.Format(time.RFC3339), now)
	}
	fmt.Fprintln(w, display.Muted.Render("updated "+updated))
}

func printProjects(w io.Writer, projects []project.Project) {
	if len(projects) == 0 {
		fmt.Fprintln(w, display.Muted.Render("No projects yet."))
		return
	}
	t := newTable().Headers("ID", "Name", "Clips", "Created")
	for _, p := range projects {
		t.Row(p.ID, p.Name, strconv.Itoa(p.ClipCount), display.FormatTime(p.CreatedAt))
	}
	fmt.Fprintln(w, t.Render())
}

func printProject(w io.Writer, p *project.Project) {
	fmt.Fprintln(w, display.Heading.Render(p.Name))
	fmt.Fprintf(w, "ID:       %s\n", p.ID)
	if p.Description != "" {
		fmt.Fprintf(w, "About:    %s\n", p.Description)
	}
	if p.SourceURL != "" {
		fmt.Fprintf(w, "Source:   %s\n", p.SourceURL)
	}
	fmt.Fprintf(w, "Created:  %s\n", display.FormatTime(p.CreatedAt))
	fmt.Fprintf(w, "Updated:  %s\n", display.FormatTime(p.UpdatedAt))
	if len(p.Clips) == 0 {
		fmt.Fprintln(w, display.Muted.Render("No clips."))
		return
	}
	printClips(w, p.Clips)
}

func printClips(w io.Writer, clips []project.Clip) {
	t := newTable().Headers("Clip", "Title", "Status", "Length", "Score", "Created")
	for _, c := range clips {
		t.Row(
			c.ID,
			c.Title,
			display.StatusBadge(c.Status),
			display.FormatDuration(c.DurationSeconds),
			display.FormatScore(c.ViralScore),
			display.FormatDate(c.CreatedAt),
		)
	}
	fmt.Fprintln(w, t.Render())
}
