package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/teemow/todoist-mcp/internal/todoist"
)

// StartDateToday is the date anchor that selects the current day.
const StartDateToday = "today"

const dateLayout = "2006-01-02"

// Request is a partially-specified task query as collected from tool
// arguments. Assignee, when set, already went through the resolver and
// takes precedence over AssigneeMode.
type Request struct {
	SearchText string

	ProjectID string
	SectionID string
	ParentID  string

	StartDate      string
	DaysCount      int
	IncludeOverdue bool
	OverdueOnly    bool

	Labels        []string
	LabelOperator LabelOperator

	AssigneeMode AssigneeMode
	Assignee     *ResolvedAssignee
}

// ContainerQuery lists a container directly and filters the returned
// page in memory.
type ContainerQuery struct {
	Ref           todoist.ContainerRef
	SearchText    string
	Labels        []string
	LabelOperator LabelOperator
	AssigneeMode  AssigneeMode
	Assignee      *ResolvedAssignee
}

// NeedsCallerIdentity reports whether applying the post-fetch filters
// requires knowing the caller's own user ID.
func (q *ContainerQuery) NeedsCallerIdentity() bool {
	if q.Assignee != nil {
		return false
	}
	return q.AssigneeMode == AssigneeModeUnassignedOrMe || q.AssigneeMode == AssigneeModeAssigned
}

// Apply runs the in-memory filters over a fetched page.
func (q *ContainerQuery) Apply(tasks []todoist.Task, callerUID string) []todoist.Task {
	filtered := ApplyAssigneeFilter(tasks, q.AssigneeMode, callerUID, q.Assignee)

	if q.SearchText == "" && len(q.Labels) == 0 {
		return filtered
	}

	needle := strings.ToLower(q.SearchText)
	kept := make([]todoist.Task, 0, len(filtered))
	for _, t := range filtered {
		if needle != "" &&
			!strings.Contains(strings.ToLower(t.Content), needle) &&
			!strings.Contains(strings.ToLower(t.Description), needle) {
			continue
		}
		if !MatchLabels(t.Labels, q.Labels, q.LabelOperator) {
			continue
		}
		kept = append(kept, t)
	}
	return kept
}

// FilterQuery delegates all filtering to the remote filter language.
type FilterQuery struct {
	Query string
}

// Plan is the resolved fetch strategy for one request: exactly one of
// Container or Filter is set.
type Plan struct {
	Container *ContainerQuery
	Filter    *FilterQuery
}

// BuildPlan decides between container listing and filter querying, and in
// the latter case assembles the query string. Requests with no
// discriminating filter fail with a MissingFilterError before any
// network call.
func BuildPlan(req Request) (*Plan, error) {
	ref := todoist.ContainerRef{
		ProjectID: req.ProjectID,
		SectionID: req.SectionID,
		ParentID:  req.ParentID,
	}
	if !ref.IsZero() {
		return &Plan{Container: &ContainerQuery{
			Ref:           ref,
			SearchText:    req.SearchText,
			Labels:        req.Labels,
			LabelOperator: req.LabelOperator,
			AssigneeMode:  req.AssigneeMode,
			Assignee:      req.Assignee,
		}}, nil
	}

	discriminating := req.SearchText != "" ||
		req.StartDate != "" ||
		req.OverdueOnly ||
		len(req.Labels) > 0 ||
		req.Assignee != nil
	if !discriminating {
		return nil, &MissingFilterError{}
	}

	dateFragment, err := buildDateFragment(req)
	if err != nil {
		return nil, err
	}

	var b QueryBuilder
	b.Append(dateFragment)
	if req.SearchText != "" {
		b.Append("search: " + req.SearchText)
	}
	b.Append(BuildLabelExpression(req.Labels, req.LabelOperator))
	b.Append(AssigneeFragment(req.AssigneeMode, req.Assignee))

	return &Plan{Filter: &FilterQuery{Query: b.String()}}, nil
}

// buildDateFragment renders the date window of a request. An explicit
// start date opens a half-open window of DaysCount days, so a count of
// one matches only the start date itself and never includes overdue
// tasks.
func buildDateFragment(req Request) (string, error) {
	if req.OverdueOnly {
		return "overdue", nil
	}
	if req.StartDate == "" {
		return "", nil
	}
	if req.StartDate == StartDateToday {
		if req.IncludeOverdue {
			return "(today | overdue)", nil
		}
		return "today", nil
	}

	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return "", fmt.Errorf("invalid startDate %q: expected YYYY-MM-DD or %q", req.StartDate, StartDateToday)
	}
	days := req.DaysCount
	if days < 1 {
		days = 1
	}
	end := start.AddDate(0, 0, days)

	return fmt.Sprintf("(due after: %s | due: %s) & due before: %s",
		req.StartDate, req.StartDate, end.Format(dateLayout)), nil
}
