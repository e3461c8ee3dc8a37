package todoist

import (
	"fmt"
	"strconv"
	"time"
)

const appBaseURL = "https://app.todoist.com/app"

// MappedTask is the task shape exposed to tool callers. Nullable fields
// use pointers so absent values serialize as explicit JSON nulls, and the
// priority is inverted to the user-facing scale where 1 is the highest.
type MappedTask struct {
	ID             string   `json:"id"`
	Content        string   `json:"content"`
	Description    string   `json:"description"`
	ProjectID      string   `json:"projectId"`
	SectionID      *string  `json:"sectionId"`
	ParentID       *string  `json:"parentId"`
	Labels         []string `json:"labels"`
	Priority       int      `json:"priority"`
	DueDate        *string  `json:"dueDate"`
	Recurring      any      `json:"recurring"`
	Duration       *string  `json:"duration"`
	Completed      bool     `json:"completed"`
	CompletedAt    *string  `json:"completedAt"`
	ResponsibleUID *string  `json:"responsibleUid"`
	AssignedByUID  *string  `json:"assignedByUid"`
	URL            string   `json:"url"`
}

// MappedProject is the project shape exposed to tool callers. Workspace
// projects report a nil parent and never claim to be the inbox.
type MappedProject struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Color       string  `json:"color"`
	ParentID    *string `json:"parentId"`
	WorkspaceID *string `json:"workspaceId"`
	IsFavorite  bool    `json:"isFavorite"`
	IsShared    bool    `json:"isShared"`
	IsInbox     bool    `json:"isInbox"`
	ViewStyle   string  `json:"viewStyle"`
	URL         string  `json:"url"`
}

// MappedEvent is the activity-log entry shape exposed to tool callers.
type MappedEvent struct {
	ID              string         `json:"id"`
	ObjectType      string         `json:"objectType"`
	ObjectID        string         `json:"objectId"`
	EventType       string         `json:"eventType"`
	EventDate       string         `json:"eventDate"`
	ParentProjectID *string        `json:"parentProjectId"`
	ParentItemID    *string        `json:"parentItemId"`
	InitiatorID     *string        `json:"initiatorId"`
	ExtraData       map[string]any `json:"extraData,omitempty"`
}

// TaskURL returns the canonical web app URL of a task.
func TaskURL(id string) string {
	return appBaseURL + "/task/" + id
}

// ProjectURL returns the canonical web app URL of a project.
func ProjectURL(id string) string {
	return appBaseURL + "/project/" + id
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// MapPriority inverts the API priority scale (4 = highest) to the
// user-facing scale (1 = highest). Out-of-range values are clamped.
func MapPriority(raw int) int {
	if raw < 1 {
		raw = 1
	}
	if raw > 4 {
		raw = 4
	}
	return 5 - raw
}

// FormatDuration renders a raw duration as a compact phrase: "45m",
// "1h30m", "2h", or "3d" for day-unit durations. Zero minutes is "0m".
func FormatDuration(d *Duration) *string {
	if d == nil {
		return nil
	}
	var out string
	switch {
	case d.Unit == "day":
		out = fmt.Sprintf("%dd", d.Amount)
	case d.Amount >= 60 && d.Amount%60 == 0:
		out = fmt.Sprintf("%dh", d.Amount/60)
	case d.Amount >= 60:
		out = fmt.Sprintf("%dh%dm", d.Amount/60, d.Amount%60)
	default:
		out = fmt.Sprintf("%dm", d.Amount)
	}
	return &out
}

// MapTask converts an API task to its tool-facing shape.
func MapTask(t Task) MappedTask {
	mapped := MappedTask{
		ID:             t.ID,
		Content:        t.Content,
		Description:    t.Description,
		ProjectID:      t.ProjectID,
		SectionID:      optional(t.SectionID),
		ParentID:       optional(t.ParentID),
		Labels:         t.Labels,
		Priority:       MapPriority(t.Priority),
		Recurring:      false,
		Duration:       FormatDuration(t.Duration),
		Completed:      t.Checked,
		CompletedAt:    optional(t.CompletedAt),
		ResponsibleUID: optional(t.ResponsibleUID),
		AssignedByUID:  optional(t.AssignedByUID),
		URL:            TaskURL(t.ID),
	}
	if mapped.Labels == nil {
		mapped.Labels = []string{}
	}
	if t.Due != nil {
		switch {
		case t.Due.Date != "":
			mapped.DueDate = optional(t.Due.Date)
		case len(t.Due.Datetime) >= 10:
			mapped.DueDate = optional(t.Due.Datetime[:10])
		}
		if t.Due.IsRecurring {
			mapped.Recurring = t.Due.String
		}
	}
	return mapped
}

// MapTasks converts a slice of API tasks, preserving order.
func MapTasks(tasks []Task) []MappedTask {
	mapped := make([]MappedTask, 0, len(tasks))
	for _, t := range tasks {
		mapped = append(mapped, MapTask(t))
	}
	return mapped
}

// MapProject converts an API project to its tool-facing shape.
func MapProject(p Project) MappedProject {
	mapped := MappedProject{
		ID:         p.ID,
		Name:       p.Name,
		Color:      p.Color,
		IsFavorite: p.IsFavorite,
		IsShared:   p.IsShared,
		ViewStyle:  p.ViewStyle,
		URL:        ProjectURL(p.ID),
	}
	if p.IsWorkspace() {
		mapped.WorkspaceID = optional(p.WorkspaceID)
	} else {
		mapped.ParentID = optional(p.ParentID)
		mapped.IsInbox = p.InboxProject
	}
	return mapped
}

// MapProjects converts a slice of API projects, preserving order.
func MapProjects(projects []Project) []MappedProject {
	mapped := make([]MappedProject, 0, len(projects))
	for _, p := range projects {
		mapped = append(mapped, MapProject(p))
	}
	return mapped
}

// MapEvent converts an activity-log entry to its tool-facing shape. The
// event date is normalized to UTC when it parses as RFC3339.
func MapEvent(e ActivityEvent) MappedEvent {
	mapped := MappedEvent{
		ID:              strconv.FormatInt(e.ID, 10),
		ObjectType:      e.ObjectType,
		ObjectID:        e.ObjectID,
		EventType:       e.EventType,
		EventDate:       e.EventDate,
		ParentProjectID: optional(e.ParentProjectID),
		ParentItemID:    optional(e.ParentItemID),
		ExtraData:       e.ExtraData,
	}
	if ts, err := time.Parse(time.RFC3339, e.EventDate); err == nil {
		mapped.EventDate = ts.UTC().Format(time.RFC3339)
	}
	if e.InitiatorID != nil && *e.InitiatorID != 0 {
		id := strconv.FormatInt(*e.InitiatorID, 10)
		mapped.InitiatorID = &id
	}
	return mapped
}

// MapEvents converts a slice of activity-log entries, preserving order.
func MapEvents(events []ActivityEvent) []MappedEvent {
	mapped := make([]MappedEvent, 0, len(events))
	for _, e := range events {
		mapped = append(mapped, MapEvent(e))
	}
	return mapped
}
