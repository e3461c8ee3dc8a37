// Package summary renders tool results into a human-readable text block
// plus a structured payload. Output is deterministic: previews follow
// upstream order, truncation budgets are fixed, and event timestamps are
// already normalized to UTC by the mapper.
package summary

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/teemow/todoist-mcp/internal/todoist"
)

const (
	previewLimit   = 5
	contentBudget  = 47
	paginationHint = "More results are available. Pass nextCursor to fetch the next page."
)

// Payload is the structured half of a tool response.
type Payload struct {
	Results        any            `json:"results"`
	NextCursor     *string        `json:"nextCursor"`
	TotalCount     int            `json:"totalCount"`
	HasMore        bool           `json:"hasMore"`
	AppliedFilters map[string]any `json:"appliedFilters"`
}

// NewPayload builds the structured payload for one page of results.
func NewPayload(results any, totalCount int, nextCursor string, applied map[string]any) Payload {
	p := Payload{
		Results:        results,
		TotalCount:     totalCount,
		HasMore:        nextCursor != "",
		AppliedFilters: applied,
	}
	if nextCursor != "" {
		p.NextCursor = &nextCursor
	}
	return p
}

// TaskFilters echoes the filter arguments that produced a task listing,
// for the subject line and the zero-result hints.
type TaskFilters struct {
	SearchText      string
	ProjectID       string
	SectionID       string
	ParentID        string
	StartDate       string
	DaysCount       int
	OverdueOnly     bool
	Labels          []string
	ResponsibleUser string
	Completed       bool
}

func (f TaskFilters) descriptors() []string {
	var parts []string
	if f.SearchText != "" {
		parts = append(parts, fmt.Sprintf("matching %q", f.SearchText))
	}
	if f.ProjectID != "" {
		parts = append(parts, "in project "+f.ProjectID)
	}
	if f.SectionID != "" {
		parts = append(parts, "in section "+f.SectionID)
	}
	if f.ParentID != "" {
		parts = append(parts, "under task "+f.ParentID)
	}
	if f.OverdueOnly {
		parts = append(parts, "that are overdue")
	} else if f.StartDate != "" {
		window := "due " + f.StartDate
		if f.DaysCount > 1 {
			window = fmt.Sprintf("due within %d days of %s", f.DaysCount, f.StartDate)
		}
		parts = append(parts, window)
	}
	if len(f.Labels) > 0 {
		tagged := make([]string, 0, len(f.Labels))
		for _, label := range f.Labels {
			tagged = append(tagged, "@"+strings.TrimPrefix(label, "@"))
		}
		parts = append(parts, "with labels "+strings.Join(tagged, ", "))
	}
	if f.ResponsibleUser != "" {
		parts = append(parts, "assigned to "+f.ResponsibleUser)
	}
	return parts
}

// subject renders the first line of a task summary.
func (f TaskFilters) subject(count int) string {
	noun := "tasks"
	if count == 1 {
		noun = "task"
	}
	if f.Completed {
		noun = "completed " + noun
	}
	line := fmt.Sprintf("Found %d %s", count, noun)
	if parts := f.descriptors(); len(parts) > 0 {
		line += " " + strings.Join(parts, ", ")
	}
	return line + "."
}

func (f TaskFilters) zeroResultHints() []string {
	var hints []string
	if f.SearchText != "" {
		hints = append(hints, "Try broadening the search text or checking its spelling.")
	}
	if len(f.Labels) > 0 {
		hints = append(hints, "Check the label names; a task must carry the label exactly.")
	}
	if f.StartDate != "" || f.OverdueOnly {
		hints = append(hints, "Matching tasks may already be completed; try find-completed-tasks.")
	}
	if len(hints) == 0 {
		hints = append(hints, "Try a different filter, or check completed tasks with find-completed-tasks.")
	}
	return hints
}

// truncate caps a string at contentBudget characters, never splitting a
// multi-byte rune.
func truncate(s string) string {
	if utf8.RuneCountInString(s) <= contentBudget {
		return s
	}
	runes := []rune(s)
	return string(runes[:contentBudget]) + "..."
}

// TasksText builds the human-readable summary of a task listing.
func TasksText(tasks []todoist.MappedTask, filters TaskFilters, nextCursor string) string {
	var b strings.Builder
	b.WriteString(filters.subject(len(tasks)))

	if len(tasks) == 0 {
		for _, hint := range filters.zeroResultHints() {
			b.WriteString("\n" + hint)
		}
		return b.String()
	}

	b.WriteString("\n")
	for i, task := range tasks {
		if i == previewLimit {
			b.WriteString(fmt.Sprintf("\n...and %d more", len(tasks)-previewLimit))
			break
		}
		b.WriteString("\n- " + truncate(task.Content))
		if task.DueDate != nil {
			b.WriteString(" (due " + *task.DueDate + ")")
		}
	}

	if hint := nextStepHint(tasks, filters); hint != "" {
		b.WriteString("\n\n" + hint)
	}
	if nextCursor != "" {
		b.WriteString("\n\n" + paginationHint)
	}
	return b.String()
}

// nextStepHint suggests a follow-up when the listing surfaces overdue or
// due-today open tasks.
func nextStepHint(tasks []todoist.MappedTask, filters TaskFilters) string {
	if filters.Completed {
		return ""
	}
	today := time.Now().UTC().Format("2006-01-02")
	due := 0
	for _, task := range tasks {
		if task.DueDate != nil && *task.DueDate <= today {
			due++
		}
	}
	if due == 0 {
		return ""
	}
	return fmt.Sprintf("%d of these are due today or overdue. Use update-task to reschedule them, or complete-tasks to close them.", due)
}

// ProjectsText builds the human-readable summary of a project listing.
func ProjectsText(projects []todoist.MappedProject, nextCursor string) string {
	noun := "projects"
	if len(projects) == 1 {
		noun = "project"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Found %d %s.", len(projects), noun))
	if len(projects) == 0 {
		return b.String()
	}

	b.WriteString("\n")
	for i, project := range projects {
		if i == previewLimit {
			b.WriteString(fmt.Sprintf("\n...and %d more", len(projects)-previewLimit))
			break
		}
		line := "\n- " + truncate(project.Name)
		var marks []string
		if project.IsInbox {
			marks = append(marks, "inbox")
		}
		if project.IsShared {
			marks = append(marks, "shared")
		}
		if project.IsFavorite {
			marks = append(marks, "favorite")
		}
		if len(marks) > 0 {
			line += " (" + strings.Join(marks, ", ") + ")"
		}
		b.WriteString(line)
	}

	if nextCursor != "" {
		b.WriteString("\n\n" + paginationHint)
	}
	return b.String()
}

// EventsText builds the human-readable summary of an activity listing.
// Event content, when recoverable from the event's extra data, is shown
// alongside the event type.
func EventsText(events []todoist.MappedEvent, nextCursor string) string {
	noun := "activity events"
	if len(events) == 1 {
		noun = "activity event"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Found %d %s.", len(events), noun))
	if len(events) == 0 {
		b.WriteString("\nTry widening the object or event type filters.")
		return b.String()
	}

	b.WriteString("\n")
	for i, event := range events {
		if i == previewLimit {
			b.WriteString(fmt.Sprintf("\n...and %d more", len(events)-previewLimit))
			break
		}
		line := fmt.Sprintf("\n- [%s] %s %s", event.EventDate, event.ObjectType, event.EventType)
		if content, ok := event.ExtraData["content"].(string); ok && content != "" {
			line += ": " + truncate(content)
		}
		b.WriteString(line)
	}

	if nextCursor != "" {
		b.WriteString("\n\n" + paginationHint)
	}
	return b.String()
}
