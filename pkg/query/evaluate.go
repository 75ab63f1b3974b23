package query

import (
	"strings"

	"github.com/kerbaras/anisearch/pkg/data"
)

// Field selects which entry attribute a Group tests.
type Field int

const (
	FieldTag Field = iota
	FieldCategory
	FieldStatus
)

func (f Field) String() string {
	switch f {
	case FieldTag:
		return "tag"
	case FieldCategory:
		return "category"
	case FieldStatus:
		return "status"
	}
	return "unknown"
}

// holds is the per-field predicate: tag membership, category or status equality.
func (f Field) holds(value string, e *data.Entry) bool {
	switch f {
	case FieldTag:
		return e.HasTag(value)
	case FieldCategory:
		return e.Category == value
	case FieldStatus:
		return e.Status == value
	}
	return false
}

// Evaluate applies the group to e for the given field.
func (g Group) Evaluate(f Field, e *data.Entry) bool {
	if len(g.Items) == 0 {
		return true
	}
	for _, c := range g.Items {
		ok := f.holds(c.Value, e) != c.Not
		if g.Or && ok {
			return true
		}
		if !g.Or && !ok {
			return false
		}
	}
	return !g.Or
}

// Matcher is a Query prepared for repeated evaluation. It is immutable and
// safe for concurrent use.
type Matcher struct {
	q     Query
	title string
}

// Compile folds the title once so matching many entries does not repeat it.
func (q Query) Compile() Matcher {
	return Matcher{q: q, title: data.Fold(q.Title)}
}

// Query returns the query the matcher was compiled from.
func (m Matcher) Query() Query {
	return m.q
}

// Match reports whether e satisfies every constraint of the query.
func (m Matcher) Match(e *data.Entry) bool {
	if !m.q.Tag.Evaluate(FieldTag, e) ||
		!m.q.Category.Evaluate(FieldCategory, e) ||
		!m.q.Status.Evaluate(FieldStatus, e) {
		return false
	}
	if !m.q.Episodes.Operation.Compare(e.Episodes, m.q.Episodes.Number) {
		return false
	}
	return m.matchTitle(e)
}

func (m Matcher) matchTitle(e *data.Entry) bool {
	if m.q.Title == "" {
		return true
	}
	for _, syn := range e.Synonyms {
		if strings.Contains(syn, m.title) {
			return true
		}
	}
	return strings.Contains(data.Fold(e.Title), m.title)
}

// Matches reports whether e satisfies q.
func Matches(q Query, e *data.Entry) bool {
	return q.Compile().Match(e)
}
