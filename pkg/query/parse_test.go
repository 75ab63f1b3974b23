package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	doc := `{
		"tag": {"items": [{"value": "action", "not": false}, {"value": "comedy", "not": true}], "or": false},
		"category": {"items": [{"value": "TV", "not": false}], "or": true},
		"status": {"items": [], "or": false},
		"title": "Foo",
		"episodes": {"number": 20, "operation": "<"}
	}`

	q, err := Parse([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, All(Is("action"), IsNot("comedy")), q.Tag)
	assert.Equal(t, Any(Is("TV")), q.Category)
	assert.Empty(t, q.Status.Items)
	assert.Equal(t, "Foo", q.Title)
	assert.Equal(t, EpisodeFilter{Number: 20, Operation: Less}, q.Episodes)
}

func TestParseLegacyForms(t *testing.T) {
	doc := `{
		"typ": {"items": [{"value": "MOVIE", "not": false}], "or": false},
		"tag": {"items": [], "or": false},
		"status": {"items": [], "or": false},
		"title": "",
		"episodes": {"number": 0, "operation": "BiggerEq"}
	}`

	q, err := Parse([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, All(Is("MOVIE")), q.Category)
	assert.Equal(t, AnyEpisodes, q.Episodes)
}

func TestParseZeroNumber(t *testing.T) {
	q, err := Parse([]byte(`{"episodes": {"number": 0, "operation": ">"}, "tag": {"items": [{"value": ""}]}}`))
	require.NoError(t, err)
	assert.Equal(t, EpisodeFilter{Number: 0, Operation: Greater}, q.Episodes)
	assert.Equal(t, All(Is("")), q.Tag)
}

func TestParseOmittedGroups(t *testing.T) {
	q, err := Parse([]byte(`{"episodes": {"number": 3, "operation": "="}}`))
	require.NoError(t, err)

	assert.Empty(t, q.Tag.Items)
	assert.Empty(t, q.Category.Items)
	assert.Empty(t, q.Status.Items)
	assert.Equal(t, "", q.Title)
	assert.Equal(t, EpisodeFilter{Number: 3, Operation: Equal}, q.Episodes)
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not json", `{"episodes":`},
		{"missing episodes", `{"title": "x"}`},
		{"missing operation", `{"episodes": {"number": 1}}`},
		{"missing number", `{"episodes": {"operation": ">="}}`},
		{"null number", `{"episodes": {"number": null, "operation": "<"}}`},
		{"empty episodes", `{"episodes": {}}`},
		{"criterion without value", `{"tag": {"items": [{"not": true}]}, "episodes": {"number": 1, "operation": "="}}`},
		{"unknown operator", `{"episodes": {"number": 1, "operation": "!="}}`},
		{"operator wrong type", `{"episodes": {"number": 1, "operation": 3}}`},
		{"number wrong type", `{"episodes": {"number": "1", "operation": "="}}`},
		{"or wrong type", `{"tag": {"items": [], "or": "yes"}, "episodes": {"number": 1, "operation": "="}}`},
		{"items wrong type", `{"tag": {"items": "action"}, "episodes": {"number": 1, "operation": "="}}`},
		{"unknown key", `{"genre": {}, "episodes": {"number": 1, "operation": "="}}`},
		{"unknown criterion key", `{"tag": {"items": [{"value": "a", "neg": true}]}, "episodes": {"number": 1, "operation": "="}}`},
		{"category and typ", `{"category": {"items": []}, "typ": {"items": []}, "episodes": {"number": 1, "operation": "="}}`},
		{"trailing document", `{"episodes": {"number": 1, "operation": "="}} {}`},
		{"array", `[]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			assert.ErrorIs(t, err, ErrInvalidQuery)
		})
	}
}

func TestParseOperator(t *testing.T) {
	for name, want := range map[string]Operator{
		">": Greater, "Bigger": Greater,
		"<": Less, "Smaller": Less,
		">=": GreaterOrEqual, "BiggerEq": GreaterOrEqual,
		"<=": LessOrEqual, "SmallerEq": LessOrEqual,
		"=": Equal, "Eq": Equal,
	} {
		got, err := ParseOperator(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseOperator("==")
	assert.ErrorIs(t, err, ErrInvalidQuery)
}

func TestParseEpisodeFilter(t *testing.T) {
	tests := []struct {
		expr string
		want EpisodeFilter
	}{
		{"", AnyEpisodes},
		{">=12", EpisodeFilter{Number: 12, Operation: GreaterOrEqual}},
		{"<20", EpisodeFilter{Number: 20, Operation: Less}},
		{"> 3", EpisodeFilter{Number: 3, Operation: Greater}},
		{"=1", EpisodeFilter{Number: 1, Operation: Equal}},
		{"24", EpisodeFilter{Number: 24, Operation: Equal}},
		{" <= 6 ", EpisodeFilter{Number: 6, Operation: LessOrEqual}},
	}
	for _, tt := range tests {
		got, err := ParseEpisodeFilter(tt.expr)
		require.NoError(t, err, tt.expr)
		assert.Equal(t, tt.want, got, tt.expr)
	}

	for _, expr := range []string{"=>3", "<<1", ">=", "abc", ">=1.5"} {
		_, err := ParseEpisodeFilter(expr)
		assert.ErrorIs(t, err, ErrInvalidQuery, expr)
	}
}

func TestEpisodeFilterString(t *testing.T) {
	assert.Equal(t, ">=0", AnyEpisodes.String())
	assert.Equal(t, "<20", EpisodeFilter{Number: 20, Operation: Less}.String())
}

func TestParseCriteria(t *testing.T) {
	assert.Equal(t, []Criterion{Is("action"), IsNot("comedy")}, ParseCriteria("action, !comedy,"))
	assert.Equal(t, []Criterion{IsNot("slice of life")}, ParseCriteria("! slice of life"))
	assert.Nil(t, ParseCriteria(""))
	assert.Nil(t, ParseCriteria(" , !,"))
}

func TestFormatCriteria(t *testing.T) {
	items := []Criterion{Is("action"), IsNot("comedy")}
	assert.Equal(t, "action, !comedy", FormatCriteria(items))
	assert.Equal(t, items, ParseCriteria(FormatCriteria(items)))
	assert.Equal(t, "", FormatCriteria(nil))
}
