package todoist

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

const (
	defaultBaseURL = "https://api.todoist.com/api/v1"

	// DefaultPageLimit is used when a caller does not specify a limit.
	DefaultPageLimit = 50

	// MaxPageLimit is the largest page size the API accepts.
	MaxPageLimit = 200
)

// Client wraps the Todoist REST API v1 for a single API token.
type Client struct {
	rc *resty.Client
}

// NewClient creates a client bound to the given API token.
func NewClient(token string) *Client {
	return NewClientWithBaseURL(token, defaultBaseURL)
}

// NewClientWithBaseURL creates a client against a custom base URL.
// Used by tests to point the client at a local stub server.
func NewClientWithBaseURL(token, baseURL string) *Client {
	return &Client{
		rc: resty.New().
			SetBaseURL(baseURL).
			SetAuthToken(token).
			SetHeader("Content-Type", "application/json"),
	}
}

// request returns a prepared request carrying the context and a request ID.
func (c *Client) request(ctx context.Context) *resty.Request {
	return c.rc.R().
		SetContext(ctx).
		SetHeader("X-Request-Id", uuid.NewString())
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultPageLimit
	}
	if limit > MaxPageLimit {
		return MaxPageLimit
	}
	return limit
}

// TasksByFilter runs a filter-language query against the generic filter
// endpoint. An upstream INVALID_QUERY rejection is rewritten to name the
// offending query; other errors propagate unchanged.
func (c *Client) TasksByFilter(ctx context.Context, query, cursor string, limit int) (*Page[Task], error) {
	req := c.request(ctx).
		SetQueryParam("query", query).
		SetQueryParam("limit", strconv.Itoa(clampLimit(limit)))
	if cursor != "" {
		req.SetQueryParam("cursor", cursor)
	}

	var page Page[Task]
	resp, err := req.SetResult(&page).Get("/tasks/filter")
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	if resp.IsError() {
		err := errorFromResponse(resp)
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.IsInvalidQuery() {
			return nil, fmt.Errorf("Invalid filter query: %s", query)
		}
		return nil, err
	}
	return &page, nil
}

// TasksByContainer lists the tasks of a project, section or parent task.
// The container endpoint cannot combine label/search/assignee filters
// server-side; callers apply those in memory on the returned page.
func (c *Client) TasksByContainer(ctx context.Context, ref ContainerRef, cursor string, limit int) (*Page[Task], error) {
	req := c.request(ctx).
		SetQueryParam("limit", strconv.Itoa(clampLimit(limit)))
	if ref.ProjectID != "" {
		req.SetQueryParam("project_id", ref.ProjectID)
	}
	if ref.SectionID != "" {
		req.SetQueryParam("section_id", ref.SectionID)
	}
	if ref.ParentID != "" {
		req.SetQueryParam("parent_id", ref.ParentID)
	}
	if cursor != "" {
		req.SetQueryParam("cursor", cursor)
	}

	var page Page[Task]
	resp, err := req.SetResult(&page).Get("/tasks")
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	if resp.IsError() {
		return nil, errorFromResponse(resp)
	}
	return &page, nil
}

// CompletedTasks lists completed tasks inside a time window, keyed by
// completion date or by due date.
func (c *Client) CompletedTasks(ctx context.Context, q CompletedQuery) (*Page[Task], error) {
	path := "/tasks/completed/by_completion_date"
	if q.By == CompletedByDueDate {
		path = "/tasks/completed/by_due_date"
	}

	req := c.request(ctx).
		SetQueryParam("since", q.Since).
		SetQueryParam("until", q.Until).
		SetQueryParam("limit", strconv.Itoa(clampLimit(q.Limit)))
	if q.ProjectID != "" {
		req.SetQueryParam("project_id", q.ProjectID)
	}
	if q.Cursor != "" {
		req.SetQueryParam("cursor", q.Cursor)
	}

	var page completedPage
	resp, err := req.SetResult(&page).Get(path)
	if err != nil {
		return nil, fmt.Errorf("failed to list completed tasks: %w", err)
	}
	if resp.IsError() {
		return nil, errorFromResponse(resp)
	}
	return &Page[Task]{Results: page.Items, NextCursor: page.NextCursor}, nil
}

// Task retrieves a single task by ID.
func (c *Client) Task(ctx context.Context, id string) (*Task, error) {
	var task Task
	resp, err := c.request(ctx).SetResult(&task).Get("/tasks/" + id)
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	if resp.IsError() {
		return nil, errorFromResponse(resp)
	}
	return &task, nil
}

// CreateTask creates a new task.
func (c *Client) CreateTask(ctx context.Context, input TaskInput) (*Task, error) {
	var task Task
	resp, err := c.request(ctx).SetBody(input).SetResult(&task).Post("/tasks")
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	if resp.IsError() {
		return nil, errorFromResponse(resp)
	}
	return &task, nil
}

// UpdateTask updates the fields set in input on an existing task.
func (c *Client) UpdateTask(ctx context.Context, id string, input TaskInput) (*Task, error) {
	var task Task
	resp, err := c.request(ctx).SetBody(input).SetResult(&task).Post("/tasks/" + id)
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	if resp.IsError() {
		return nil, errorFromResponse(resp)
	}
	return &task, nil
}

// CloseTask marks a task as completed.
func (c *Client) CloseTask(ctx context.Context, id string) error {
	resp, err := c.request(ctx).Post("/tasks/" + id + "/close")
	if err != nil {
		return fmt.Errorf("failed to complete task: %w", err)
	}
	if resp.IsError() {
		return errorFromResponse(resp)
	}
	return nil
}

// ReopenTask reopens a completed task.
func (c *Client) ReopenTask(ctx context.Context, id string) error {
	resp, err := c.request(ctx).Post("/tasks/" + id + "/reopen")
	if err != nil {
		return fmt.Errorf("failed to reopen task: %w", err)
	}
	if resp.IsError() {
		return errorFromResponse(resp)
	}
	return nil
}

// DeleteTask permanently deletes a task.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	resp, err := c.request(ctx).Delete("/tasks/" + id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if resp.IsError() {
		return errorFromResponse(resp)
	}
	return nil
}

// MoveTask moves a task to a new project, section or parent.
func (c *Client) MoveTask(ctx context.Context, id string, dest MoveInput) (*Task, error) {
	var task Task
	resp, err := c.request(ctx).SetBody(dest).SetResult(&task).Post("/tasks/" + id + "/move")
	if err != nil {
		return nil, fmt.Errorf("failed to move task: %w", err)
	}
	if resp.IsError() {
		return nil, errorFromResponse(resp)
	}
	return &task, nil
}

// Projects lists the caller's projects.
func (c *Client) Projects(ctx context.Context, cursor string, limit int) (*Page[Project], error) {
	req := c.request(ctx).
		SetQueryParam("limit", strconv.Itoa(clampLimit(limit)))
	if cursor != "" {
		req.SetQueryParam("cursor", cursor)
	}

	var page Page[Project]
	resp, err := req.SetResult(&page).Get("/projects")
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	if resp.IsError() {
		return nil, errorFromResponse(resp)
	}
	return &page, nil
}

// Project retrieves a single project by ID.
func (c *Client) Project(ctx context.Context, id string) (*Project, error) {
	var project Project
	resp, err := c.request(ctx).SetResult(&project).Get("/projects/" + id)
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	if resp.IsError() {
		return nil, errorFromResponse(resp)
	}
	return &project, nil
}

// ProjectCollaborators lists the collaborators of a single project,
// following pagination to the end.
func (c *Client) ProjectCollaborators(ctx context.Context, projectID string) ([]Collaborator, error) {
	var all []Collaborator
	cursor := ""
	for {
		req := c.request(ctx).
			SetQueryParam("limit", strconv.Itoa(MaxPageLimit))
		if cursor != "" {
			req.SetQueryParam("cursor", cursor)
		}

		var page Page[Collaborator]
		resp, err := req.SetResult(&page).Get("/projects/" + projectID + "/collaborators")
		if err != nil {
			return nil, fmt.Errorf("failed to list collaborators: %w", err)
		}
		if resp.IsError() {
			return nil, errorFromResponse(resp)
		}

		all = append(all, page.Results...)
		if page.NextCursor == "" {
			return all, nil
		}
		cursor = page.NextCursor
	}
}

// AllCollaborators returns the union of collaborators across the caller's
// shared projects, deduplicated by user ID. The API has no account-wide
// collaborator endpoint.
func (c *Client) AllCollaborators(ctx context.Context) ([]Collaborator, error) {
	projects, err := c.Projects(ctx, "", MaxPageLimit)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var all []Collaborator
	for _, p := range projects.Results {
		if !p.IsShared {
			continue
		}
		collaborators, err := c.ProjectCollaborators(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		for _, col := range collaborators {
			if seen[col.ID] {
				continue
			}
			seen[col.ID] = true
			all = append(all, col)
		}
	}
	return all, nil
}

// CurrentUser returns the authenticated user.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	var user User
	resp, err := c.request(ctx).SetResult(&user).Get("/user")
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if resp.IsError() {
		return nil, errorFromResponse(resp)
	}
	return &user, nil
}

// Activity queries the activity log.
func (c *Client) Activity(ctx context.Context, q ActivityQuery) (*Page[ActivityEvent], error) {
	req := c.request(ctx).
		SetQueryParam("limit", strconv.Itoa(clampLimit(q.Limit)))
	params := map[string]string{
		"object_type":       q.ObjectType,
		"object_id":         q.ObjectID,
		"event_type":        q.EventType,
		"parent_project_id": q.ParentProjectID,
		"parent_item_id":    q.ParentItemID,
		"initiator_id":      q.InitiatorID,
		"cursor":            q.Cursor,
	}
	for key, value := range params {
		if value != "" {
			req.SetQueryParam(key, value)
		}
	}

	var page Page[ActivityEvent]
	resp, err := req.SetResult(&page).Get("/activities")
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}
	if resp.IsError() {
		return nil, errorFromResponse(resp)
	}
	return &page, nil
}
