package filter

import "strings"

// LabelOperator joins multiple labels inside one expression.
type LabelOperator string

const (
	LabelOperatorAnd LabelOperator = "and"
	LabelOperatorOr  LabelOperator = "or"
)

// Todoist's filter parser expects two spaces around label joiners.
const (
	labelJoinerAnd = "  &  "
	labelJoinerOr  = "  |  "
)

// BuildLabelExpression turns a list of label names into a parenthesized
// filter fragment, e.g. ["work", "urgent"] with "and" becomes
// "(@work  &  @urgent)". A leading @ on an input label is tolerated.
// An empty list yields an empty string so the caller can skip it.
func BuildLabelExpression(labels []string, operator LabelOperator) string {
	if len(labels) == 0 {
		return ""
	}

	joiner := labelJoinerOr
	if operator == LabelOperatorAnd {
		joiner = labelJoinerAnd
	}

	parts := make([]string, 0, len(labels))
	for _, label := range labels {
		parts = append(parts, "@"+strings.TrimPrefix(label, "@"))
	}
	return "(" + strings.Join(parts, joiner) + ")"
}
