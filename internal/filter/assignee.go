package filter

import (
	"strings"

	"github.com/teemow/todoist-mcp/internal/todoist"
)

// AssigneeMode selects how tasks are filtered by responsible user when no
// specific person is named.
type AssigneeMode string

const (
	// AssigneeModeAssigned keeps only tasks assigned to someone other
	// than the caller.
	AssigneeModeAssigned AssigneeMode = "assigned"

	// AssigneeModeUnassignedOrMe keeps tasks that are unassigned or
	// assigned to the caller. This is the default.
	AssigneeModeUnassignedOrMe AssigneeMode = "unassignedOrMe"

	// AssigneeModeAll disables responsible-user filtering.
	AssigneeModeAll AssigneeMode = "all"
)

// ResolvedAssignee is a collaborator identity picked by the resolver.
type ResolvedAssignee struct {
	UserID string
	Email  string
}

// AssigneeFragment returns the filter-language fragment for an assignee
// constraint. A resolved identity takes precedence over the mode.
func AssigneeFragment(mode AssigneeMode, assignee *ResolvedAssignee) string {
	if assignee != nil {
		return "assigned to: " + assignee.Email
	}
	switch mode {
	case AssigneeModeAssigned:
		return "assigned to: others"
	case AssigneeModeUnassignedOrMe:
		return "!assigned to: others"
	default:
		return ""
	}
}

// ApplyAssigneeFilter filters a fetched task page in memory, mirroring
// the semantics of AssigneeFragment for container-scoped listings. When
// an assignee identity is given it wins over the mode. Mode "assigned"
// without a known caller UID passes everything through.
func ApplyAssigneeFilter(tasks []todoist.Task, mode AssigneeMode, callerUID string, assignee *ResolvedAssignee) []todoist.Task {
	keep := func(t todoist.Task) bool { return true }

	switch {
	case assignee != nil:
		keep = func(t todoist.Task) bool { return t.ResponsibleUID == assignee.UserID }
	case mode == AssigneeModeUnassignedOrMe:
		keep = func(t todoist.Task) bool {
			return t.ResponsibleUID == "" || t.ResponsibleUID == callerUID
		}
	case mode == AssigneeModeAssigned && callerUID != "":
		keep = func(t todoist.Task) bool {
			return t.ResponsibleUID != "" && t.ResponsibleUID != callerUID
		}
	}

	filtered := make([]todoist.Task, 0, len(tasks))
	for _, t := range tasks {
		if keep(t) {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

// MatchLabels reports whether a task's labels satisfy the wanted set
// under the given operator. Matching is order-independent; an empty
// wanted set always matches.
func MatchLabels(taskLabels, wanted []string, operator LabelOperator) bool {
	if len(wanted) == 0 {
		return true
	}

	have := make(map[string]bool, len(taskLabels))
	for _, label := range taskLabels {
		have[label] = true
	}

	if operator == LabelOperatorAnd {
		for _, label := range wanted {
			if !have[strings.TrimPrefix(label, "@")] {
				return false
			}
		}
		return true
	}
	for _, label := range wanted {
		if have[strings.TrimPrefix(label, "@")] {
			return true
		}
	}
	return false
}
