package query

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/goccy/go-json"

	"github.com/kerbaras/anisearch/pkg/validation"
)

// document is the wire form of a Query. Groups and title may be omitted;
// episodes is required because the filter has no "unset" value. Pointers
// tell a missing field apart from its zero value.
type document struct {
	Tag      *groupDoc    `json:"tag"`
	Category *groupDoc    `json:"category"`
	Typ      *groupDoc    `json:"typ"`
	Status   *groupDoc    `json:"status"`
	Title    *string      `json:"title"`
	Episodes *episodesDoc `json:"episodes" validate:"required"`
}

type groupDoc struct {
	Items []criterionDoc `json:"items" validate:"dive"`
	Or    bool           `json:"or"`
}

type criterionDoc struct {
	Value *string `json:"value" validate:"required"`
	Not   bool    `json:"not"`
}

type episodesDoc struct {
	Number    *int      `json:"number" validate:"required"`
	Operation *Operator `json:"operation" validate:"required"`
}

func (g *groupDoc) group() Group {
	if g == nil {
		return Group{}
	}
	var items []Criterion
	if g.Items != nil {
		items = make([]Criterion, len(g.Items))
	}
	for i, c := range g.Items {
		items[i] = Criterion{Value: *c.Value, Not: c.Not}
	}
	return Group{Items: items, Or: g.Or}
}

// Parse decodes a query document:
//
//	{"tag": {"items": [{"value": "action", "not": false}], "or": false},
//	 "category": {...}, "status": {...}, "title": "",
//	 "episodes": {"number": 0, "operation": ">="}}
//
// "typ" is accepted in place of "category". Unknown keys, wrong types,
// unknown operators and a missing episode number, operation or criterion
// value are rejected with ErrInvalidQuery.
func Parse(doc []byte) (Query, error) {
	var d document
	dec := json.NewDecoder(bytes.NewReader(doc))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&d); err != nil {
		return Query{}, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
	}
	if dec.More() {
		return Query{}, fmt.Errorf("%w: trailing data after query document", ErrInvalidQuery)
	}
	if err := validation.Struct(d); err != nil {
		return Query{}, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
	}
	if d.Category != nil && d.Typ != nil {
		return Query{}, fmt.Errorf("%w: both category and typ given", ErrInvalidQuery)
	}

	q := Query{
		Tag:      d.Tag.group(),
		Category: d.Category.group(),
		Status:   d.Status.group(),
		Episodes: EpisodeFilter{Number: *d.Episodes.Number, Operation: *d.Episodes.Operation},
	}
	if d.Typ != nil {
		q.Category = d.Typ.group()
	}
	if d.Title != nil {
		q.Title = *d.Title
	}
	return q, nil
}

// ParseCriteria parses a comma separated criterion list such as
// "action, !comedy". A leading "!" negates a value; blank items are skipped.
func ParseCriteria(expr string) []Criterion {
	var items []Criterion
	for _, part := range strings.Split(expr, ",") {
		part = strings.TrimSpace(part)
		c := Criterion{Value: part}
		if strings.HasPrefix(part, "!") {
			c = Criterion{Value: strings.TrimSpace(part[1:]), Not: true}
		}
		if c.Value == "" {
			continue
		}
		items = append(items, c)
	}
	return items
}

// FormatCriteria is the inverse of ParseCriteria.
func FormatCriteria(items []Criterion) string {
	parts := make([]string, len(items))
	for i, c := range items {
		parts[i] = c.Value
		if c.Not {
			parts[i] = "!" + c.Value
		}
	}
	return strings.Join(parts, ", ")
}
