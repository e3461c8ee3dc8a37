package filter

import "fmt"

// MissingFilterError rejects a task query that names no discriminating
// filter at all; it is raised before any network call.
type MissingFilterError struct{}

func (e *MissingFilterError) Error() string {
	return "at least one filter is required: searchText, projectId, sectionId, parentId, labels, or responsibleUser"
}

// UserNotFoundError reports a responsible-user identifier that matched
// none of the caller's collaborators.
type UserNotFoundError struct {
	Input string
}

func (e *UserNotFoundError) Error() string {
	return fmt.Sprintf("user %q not found among your collaborators; confirm the person shares a project with you", e.Input)
}
