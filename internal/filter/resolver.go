package filter

import (
	"context"
	"strings"

	"github.com/teemow/todoist-mcp/internal/todoist"
)

// Directory lists the collaborators visible to the caller.
type Directory interface {
	AllCollaborators(ctx context.Context) ([]todoist.Collaborator, error)
}

// ResolveAssignee maps a free-form identifier (user ID, email, or display
// name) to a collaborator. An empty input resolves to nil without a
// directory call. ID matches are checked first, then email, then a
// case-insensitive name match. No match yields a UserNotFoundError.
func ResolveAssignee(ctx context.Context, dir Directory, input string) (*ResolvedAssignee, error) {
	if input == "" {
		return nil, nil
	}

	collaborators, err := dir.AllCollaborators(ctx)
	if err != nil {
		return nil, err
	}

	for _, c := range collaborators {
		if c.ID == input {
			return &ResolvedAssignee{UserID: c.ID, Email: c.Email}, nil
		}
	}
	for _, c := range collaborators {
		if strings.EqualFold(c.Email, input) {
			return &ResolvedAssignee{UserID: c.ID, Email: c.Email}, nil
		}
	}
	for _, c := range collaborators {
		if strings.EqualFold(c.Name, input) {
			return &ResolvedAssignee{UserID: c.ID, Email: c.Email}, nil
		}
	}

	return nil, &UserNotFoundError{Input: input}
}
