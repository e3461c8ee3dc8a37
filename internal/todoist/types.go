package todoist

// Due describes the scheduling metadata of a task as returned by the API.
type Due struct {
	Date        string `json:"date,omitempty"`
	Datetime    string `json:"datetime,omitempty"`
	String      string `json:"string,omitempty"`
	Lang        string `json:"lang,omitempty"`
	Timezone    string `json:"timezone,omitempty"`
	IsRecurring bool   `json:"is_recurring"`
}

// Duration is the raw amount+unit pair attached to a task.
// Unit is "minute" or "day".
type Duration struct {
	Amount int    `json:"amount"`
	Unit   string `json:"unit"`
}

// Task is a Todoist task as returned by the API v1.
// Priority follows the API convention: 4 is the highest.
type Task struct {
	ID             string    `json:"id"`
	Content        string    `json:"content"`
	Description    string    `json:"description,omitempty"`
	ProjectID      string    `json:"project_id"`
	SectionID      string    `json:"section_id,omitempty"`
	ParentID       string    `json:"parent_id,omitempty"`
	Labels         []string  `json:"labels,omitempty"`
	Priority       int       `json:"priority"`
	Due            *Due      `json:"due,omitempty"`
	Duration       *Duration `json:"duration,omitempty"`
	Checked        bool      `json:"checked"`
	AddedAt        string    `json:"added_at,omitempty"`
	CompletedAt    string    `json:"completed_at,omitempty"`
	ResponsibleUID string    `json:"responsible_uid,omitempty"`
	AssignedByUID  string    `json:"assigned_by_uid,omitempty"`
}

// Project is a Todoist project. Personal and workspace projects share one
// wire shape; WorkspaceID is only set on workspace projects, which do not
// carry parent/inbox semantics.
type Project struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Color        string `json:"color,omitempty"`
	ParentID     string `json:"parent_id,omitempty"`
	WorkspaceID  string `json:"workspace_id,omitempty"`
	IsFavorite   bool   `json:"is_favorite"`
	IsShared     bool   `json:"is_shared"`
	InboxProject bool   `json:"inbox_project"`
	ViewStyle    string `json:"view_style,omitempty"`
}

// IsWorkspace reports whether the project is the workspace variant.
func (p *Project) IsWorkspace() bool {
	return p.WorkspaceID != ""
}

// Collaborator is a user that shares at least one project with the caller.
type Collaborator struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// User is the authenticated Todoist user.
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

// ActivityEvent is an entry from the Todoist activity log.
// InitiatorID of zero means the event was system-generated.
type ActivityEvent struct {
	ID              int64          `json:"id"`
	ObjectType      string         `json:"object_type"`
	ObjectID        string         `json:"object_id"`
	EventType       string         `json:"event_type"`
	EventDate       string         `json:"event_date"`
	ParentProjectID string         `json:"parent_project_id,omitempty"`
	ParentItemID    string         `json:"parent_item_id,omitempty"`
	InitiatorID     *int64         `json:"initiator_id,omitempty"`
	ExtraData       map[string]any `json:"extra_data,omitempty"`
}

// Page is a cursor-paginated API response. NextCursor is opaque: it is
// threaded through unchanged between calls and never inspected.
type Page[T any] struct {
	Results    []T    `json:"results"`
	NextCursor string `json:"next_cursor,omitempty"`
}

// completedPage is the response shape of the completed-tasks endpoints,
// which use "items" instead of "results".
type completedPage struct {
	Items      []Task `json:"items"`
	NextCursor string `json:"next_cursor,omitempty"`
}

// TaskInput holds the mutable fields for task creation and updates.
// Priority follows the API convention (4 = highest); callers that accept
// the user-facing 1-is-highest scale must invert before building the input.
type TaskInput struct {
	Content      string   `json:"content,omitempty"`
	Description  string   `json:"description,omitempty"`
	ProjectID    string   `json:"project_id,omitempty"`
	SectionID    string   `json:"section_id,omitempty"`
	ParentID     string   `json:"parent_id,omitempty"`
	Labels       []string `json:"labels,omitempty"`
	Priority     int      `json:"priority,omitempty"`
	DueString    string   `json:"due_string,omitempty"`
	DueDate      string   `json:"due_date,omitempty"`
	DueDatetime  string   `json:"due_datetime,omitempty"`
	Duration     int      `json:"duration,omitempty"`
	DurationUnit string   `json:"duration_unit,omitempty"`
	AssigneeID   string   `json:"assignee_id,omitempty"`
}

// MoveInput names the destination of a task move. Exactly one field may
// be set; the API rejects combined destinations.
type MoveInput struct {
	ProjectID string `json:"project_id,omitempty"`
	SectionID string `json:"section_id,omitempty"`
	ParentID  string `json:"parent_id,omitempty"`
}

// ContainerRef scopes a task listing to a project, section or parent task.
type ContainerRef struct {
	ProjectID string
	SectionID string
	ParentID  string
}

// IsZero reports whether no container is referenced.
func (c ContainerRef) IsZero() bool {
	return c.ProjectID == "" && c.SectionID == "" && c.ParentID == ""
}

// ActivityQuery holds the optional filters of an activity-log request.
type ActivityQuery struct {
	ObjectType      string
	ObjectID        string
	EventType       string
	ParentProjectID string
	ParentItemID    string
	InitiatorID     string
	Cursor          string
	Limit           int
}

// CompletedBy selects which timestamp a completed-tasks window applies to.
type CompletedBy string

const (
	CompletedByCompletionDate CompletedBy = "completion"
	CompletedByDueDate        CompletedBy = "due"
)

// CompletedQuery holds the parameters of a completed-tasks request.
// Since and Until are RFC3339 timestamps.
type CompletedQuery struct {
	Since     string
	Until     string
	By        CompletedBy
	ProjectID string
	Cursor    string
	Limit     int
}
