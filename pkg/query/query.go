// Package query evaluates structured catalog queries against entries.
//
// A Query combines three criterion groups (tag, category, status), an episode
// count comparison and an optional title substring. An entry matches when all
// five constraints hold.
package query

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// ErrInvalidQuery is returned when a query document or expression cannot be parsed.
var ErrInvalidQuery = errors.New("invalid query")

// Criterion is a single value test inside a Group. Not inverts its result.
type Criterion struct {
	Value string `json:"value"`
	Not   bool   `json:"not"`
}

// Group is a list of criteria for one field. With Or set the group passes when
// any criterion holds, otherwise every criterion must hold. An empty group
// always passes.
type Group struct {
	Items []Criterion `json:"items"`
	Or    bool        `json:"or"`
}

// All returns an ALL group over items.
func All(items ...Criterion) Group {
	return Group{Items: items}
}

// Any returns an ANY group over items.
func Any(items ...Criterion) Group {
	return Group{Items: items, Or: true}
}

// Is and IsNot build criteria.
func Is(value string) Criterion    { return Criterion{Value: value} }
func IsNot(value string) Criterion { return Criterion{Value: value, Not: true} }

// Operator is a numeric comparison used by EpisodeFilter.
type Operator string

const (
	Greater        Operator = ">"
	Less           Operator = "<"
	GreaterOrEqual Operator = ">="
	LessOrEqual    Operator = "<="
	Equal          Operator = "="
)

// operatorNames also accepts the spelled-out names used by older front-ends.
var operatorNames = map[string]Operator{
	">":         Greater,
	"<":         Less,
	">=":        GreaterOrEqual,
	"<=":        LessOrEqual,
	"=":         Equal,
	"Bigger":    Greater,
	"Smaller":   Less,
	"BiggerEq":  GreaterOrEqual,
	"SmallerEq": LessOrEqual,
	"Eq":        Equal,
}

// ParseOperator resolves a symbol or a legacy operator name.
func ParseOperator(s string) (Operator, error) {
	op, ok := operatorNames[s]
	if !ok {
		return "", fmt.Errorf("%w: unknown operator %q", ErrInvalidQuery, s)
	}
	return op, nil
}

func (o *Operator) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("%w: operation must be a string", ErrInvalidQuery)
	}
	op, err := ParseOperator(s)
	if err != nil {
		return err
	}
	*o = op
	return nil
}

// Compare reports whether "a op b" holds. Unknown operators never hold.
func (o Operator) Compare(a, b int) bool {
	switch o {
	case Greater:
		return a > b
	case Less:
		return a < b
	case GreaterOrEqual:
		return a >= b
	case LessOrEqual:
		return a <= b
	case Equal:
		return a == b
	}
	return false
}

// EpisodeFilter compares an entry's episode count with Number. There is no
// "unset" value: AnyEpisodes is the filter that every entry passes.
type EpisodeFilter struct {
	Number    int      `json:"number"`
	Operation Operator `json:"operation" validate:"required"`
}

// AnyEpisodes matches every entry, since episode counts are never negative.
var AnyEpisodes = EpisodeFilter{Number: 0, Operation: GreaterOrEqual}

func (f EpisodeFilter) String() string {
	return string(f.Operation) + strconv.Itoa(f.Number)
}

// ParseEpisodeFilter parses compact expressions such as ">=12", "<20" or "=1".
// A bare number means equality.
func ParseEpisodeFilter(expr string) (EpisodeFilter, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return AnyEpisodes, nil
	}

	end := 0
	for end < len(expr) && strings.ContainsRune("<>=", rune(expr[end])) {
		end++
	}
	op := Equal
	if end > 0 {
		var err error
		if op, err = ParseOperator(expr[:end]); err != nil {
			return EpisodeFilter{}, err
		}
	}

	n, err := strconv.Atoi(strings.TrimSpace(expr[end:]))
	if err != nil {
		return EpisodeFilter{}, fmt.Errorf("%w: episode count %q is not a number", ErrInvalidQuery, expr[end:])
	}
	return EpisodeFilter{Number: n, Operation: op}, nil
}

// Query is one search request.
type Query struct {
	Tag      Group         `json:"tag"`
	Category Group         `json:"category"`
	Status   Group         `json:"status"`
	Title    string        `json:"title"`
	Episodes EpisodeFilter `json:"episodes"`
}

// New returns a query without constraints.
func New() Query {
	return Query{Episodes: AnyEpisodes}
}
