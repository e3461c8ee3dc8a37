package todoist

import (
	"encoding/json"
	"fmt"

	"github.com/go-resty/resty/v2"
)

// Error tags returned by the API that this client treats specially.
const tagInvalidQuery = "INVALID_QUERY"

// APIError is the structured error shape the Todoist API returns for
// non-2xx responses.
type APIError struct {
	StatusCode int
	Message    string
	Tag        string
	Code       int
}

func (e *APIError) Error() string {
	if e.Tag != "" {
		return fmt.Sprintf("%s (tag: %s, code: %d)", e.Message, e.Tag, e.Code)
	}
	return e.Message
}

// IsInvalidQuery reports whether the upstream rejected a filter query.
func (e *APIError) IsInvalidQuery() bool {
	return e.Tag == tagInvalidQuery
}

// apiErrorBody mirrors the JSON error document of the API.
type apiErrorBody struct {
	Error     string `json:"error"`
	ErrorTag  string `json:"error_tag"`
	ErrorCode int    `json:"error_code"`
	HTTPCode  int    `json:"http_code"`
}

// errorFromResponse turns a non-2xx response into an error. Structured
// error bodies become an *APIError; anything else passes through as a
// plain status error so unrecognized shapes are not reinterpreted.
func errorFromResponse(resp *resty.Response) error {
	var body apiErrorBody
	if err := json.Unmarshal(resp.Body(), &body); err == nil && body.Error != "" {
		return &APIError{
			StatusCode: resp.StatusCode(),
			Message:    body.Error,
			Tag:        body.ErrorTag,
			Code:       body.ErrorCode,
		}
	}
	return fmt.Errorf("todoist API request failed: %s", resp.Status())
}
