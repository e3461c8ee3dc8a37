package filter

import "strings"

// QueryBuilder accumulates filter-language fragments joined with " & ".
// Empty fragments are skipped so the result never carries a dangling
// operator. Fragments appear in append order.
type QueryBuilder struct {
	parts []string
}

// Append adds a fragment unless it is empty.
func (b *QueryBuilder) Append(fragment string) *QueryBuilder {
	if fragment != "" {
		b.parts = append(b.parts, fragment)
	}
	return b
}

// Empty reports whether nothing has been appended.
func (b *QueryBuilder) Empty() bool {
	return len(b.parts) == 0
}

// String renders the assembled query.
func (b *QueryBuilder) String() string {
	return strings.Join(b.parts, " & ")
}
