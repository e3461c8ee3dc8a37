package filter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildLabelExpression(t *testing.T) {
	tests := []struct {
		name     string
		labels   []string
		operator LabelOperator
		expected string
	}{
		{name: "empty list", labels: nil, operator: LabelOperatorOr, expected: ""},
		{name: "single label", labels: []string{"work"}, operator: LabelOperatorOr, expected: "(@work)"},
		{name: "two labels or", labels: []string{"work", "urgent"}, operator: LabelOperatorOr, expected: "(@work  |  @urgent)"},
		{name: "two labels and", labels: []string{"work", "urgent"}, operator: LabelOperatorAnd, expected: "(@work  &  @urgent)"},
		{name: "leading at is stripped before re-adding", labels: []string{"@work", "urgent"}, operator: LabelOperatorAnd, expected: "(@work  &  @urgent)"},
		{name: "unknown operator defaults to or", labels: []string{"a", "b"}, operator: "", expected: "(@a  |  @b)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, BuildLabelExpression(tt.labels, tt.operator))
		})
	}
}

func TestBuildLabelExpressionShape(t *testing.T) {
	for _, operator := range []LabelOperator{LabelOperatorAnd, LabelOperatorOr} {
		got := BuildLabelExpression([]string{"a", "b", "c"}, operator)

		assert.Equal(t, 1, strings.Count(got, "("))
		assert.Equal(t, 1, strings.Count(got, ")"))
		if operator == LabelOperatorAnd {
			assert.Equal(t, 2, strings.Count(got, "&"))
			assert.NotContains(t, got, "|")
		} else {
			assert.Equal(t, 2, strings.Count(got, "|"))
			assert.NotContains(t, got, "&")
		}
	}

	single := BuildLabelExpression([]string{"solo"}, LabelOperatorAnd)
	assert.NotContains(t, single, "&")
	assert.NotContains(t, single, "|")
}

func TestQueryBuilder(t *testing.T) {
	t.Run("skips empty fragments", func(t *testing.T) {
		var b QueryBuilder
		b.Append("today").Append("").Append("(@work)")

		assert.Equal(t, "today & (@work)", b.String())
	})

	t.Run("empty builder renders empty", func(t *testing.T) {
		var b QueryBuilder
		b.Append("").Append("")

		assert.True(t, b.Empty())
		assert.Equal(t, "", b.String())
	})
}
