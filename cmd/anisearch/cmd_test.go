package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kerbaras/anisearch/pkg/query"
)

const testDataset = `{"data":[
	{"sources":["https://example.org/1"],"title":"Foo","type":"TV","episodes":12,"status":"FINISHED",
	 "animeSeason":{"season":"SPRING","year":2020},"picture":"","thumbnail":"",
	 "synonyms":["Bar"],"relations":[],"tags":["action"]},
	{"sources":["https://example.org/2"],"title":"Baz","type":"MOVIE","episodes":24,"status":"ONGOING",
	 "animeSeason":{"season":"SUMMER","year":2021},"picture":"","thumbnail":"",
	 "synonyms":[],"relations":[],"tags":["comedy","shonen"]},
	{"sources":["https://example.org/3"],"title":"Qux","type":"TV","episodes":1,"status":"FINISHED",
	 "animeSeason":{"season":"UNDEFINED"},"picture":"","thumbnail":"",
	 "synonyms":[],"relations":[],"tags":["action","comedy"]}
]}`

func writeDataset(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "anime.json")
	require.NoError(t, os.WriteFile(path, []byte(testDataset), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("ANISEARCH_CONFIG", "")

	var out bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(append([]string{"--dataset", writeDataset(t), "--log-level", "disabled"}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestCount(t *testing.T) {
	out, err := execute(t, "count")
	require.NoError(t, err)
	assert.Equal(t, "3\n", out)

	out, err = execute(t, "count", "--json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"count":3}`, out)
}

func TestMissingDataset(t *testing.T) {
	t.Setenv("ANISEARCH_CONFIG", "")
	t.Setenv("ANISEARCH_DATASET__PATH", "")

	var stderr bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&stderr)
	root.SetArgs([]string{"count", "--log-level", "disabled"})
	assert.Error(t, root.Execute())
	assert.Empty(t, stderr.String(), "the error is printed by Execute")
}

func decodePage(t *testing.T, out string) searchPage {
	t.Helper()
	var page searchPage
	require.NoError(t, json.Unmarshal([]byte(out), &page))
	return page
}

func resultTitles(page searchPage) []string {
	titles := make([]string, len(page.Results))
	for i, e := range page.Results {
		titles[i] = e.Title
	}
	return titles
}

func TestSearchFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"everything, newest first", nil, []string{"Baz", "Foo", "Qux"}},
		{"tag", []string{"--tag", "action"}, []string{"Foo", "Qux"}},
		{"tag alias", []string{"--tag", "shounen"}, []string{"Baz"}},
		{"negated tag", []string{"--tag", "action", "--tag", "!comedy"}, []string{"Foo"}},
		{"tag expression", []string{"--tags", "action, comedy"}, []string{"Qux"}},
		{"any tag", []string{"--tags", "shounen,action", "--any-tag"}, []string{"Baz", "Foo", "Qux"}},
		{"category", []string{"--category", "MOVIE"}, []string{"Baz"}},
		{"any status", []string{"--status", "ONGOING", "--status", "UPCOMING", "--any-status"}, []string{"Baz"}},
		{"episodes", []string{"--episodes", "<20"}, []string{"Foo", "Qux"}},
		{"episodes exact", []string{"--episodes", "24"}, []string{"Baz"}},
		{"title synonym", []string{"--title", "BAR"}, []string{"Foo"}},
		{"no match", []string{"--title", "zzz"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, append([]string{"search", "--json"}, tt.args...)...)
			require.NoError(t, err)
			page := decodePage(t, out)
			assert.Equal(t, tt.want, resultTitles(page))
			assert.Equal(t, len(tt.want), page.Total)
		})
	}
}

func TestSearchPaging(t *testing.T) {
	out, err := execute(t, "search", "--json", "--page", "2", "--page-size", "2")
	require.NoError(t, err)
	page := decodePage(t, out)
	assert.Equal(t, []string{"Qux"}, resultTitles(page))
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 2, page.Pages)
	assert.Equal(t, 3, page.Total)

	_, err = execute(t, "search", "--page", "0")
	assert.Error(t, err)
}

func TestSearchDocument(t *testing.T) {
	out, err := execute(t, "search", "--json", "--query",
		`{"tag":{"items":[{"value":"action","not":false}],"or":false},"episodes":{"number":0,"operation":">="}}`)
	require.NoError(t, err)
	assert.Equal(t, []string{"Foo", "Qux"}, resultTitles(decodePage(t, out)))

	out, err = execute(t, "search", "--count", "--query", `{"episodes":{"number":20,"operation":"<"}}`)
	require.NoError(t, err)
	assert.Equal(t, "2\n", out)

	_, err = execute(t, "search", "--query", `{"episodes":{"number":1,"operation":"~"}}`)
	assert.ErrorIs(t, err, query.ErrInvalidQuery)

	_, err = execute(t, "search", "--query", `{}`, "--title", "foo")
	assert.Error(t, err, "query document excludes criterion flags")
}

func TestSearchDocumentFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "q.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"title":"baz","episodes":{"number":0,"operation":"BiggerEq"}}`), 0o644))

	out, err := execute(t, "search", "--json", "--query", "@"+path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Baz"}, resultTitles(decodePage(t, out)))
}

func TestSearchTable(t *testing.T) {
	out, err := execute(t, "search", "--tag", "action")
	require.NoError(t, err)
	assert.Contains(t, out, "Page 1/1 (2 matches)")
	assert.Contains(t, out, "Foo")
	assert.Contains(t, out, "Qux")
	assert.NotContains(t, out, "Baz")

	out, err = execute(t, "search", "--title", "nothing here")
	require.NoError(t, err)
	assert.Equal(t, "No results found.\n", out)
}

func TestSearchBadEpisodes(t *testing.T) {
	_, err := execute(t, "search", "--episodes", ">=many")
	assert.ErrorIs(t, err, query.ErrInvalidQuery)
}

func TestTags(t *testing.T) {
	out, err := execute(t, "tags", "--json")
	require.NoError(t, err)

	var page tagsPage
	require.NoError(t, json.Unmarshal([]byte(out), &page))
	assert.Equal(t, []string{"action", "comedy", "shounen"}, page.Tags)
	assert.Equal(t, 3, page.Total)

	out, err = execute(t, "tags", "ACT", "--json")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &page))
	assert.Empty(t, page.Tags)

	out, err = execute(t, "tags", "act")
	require.NoError(t, err)
	assert.Contains(t, out, "action")
	assert.NotContains(t, out, "comedy")
	assert.Contains(t, out, "1 total")

	out, err = execute(t, "tags", "zzz")
	require.NoError(t, err)
	assert.Equal(t, "No tags found.\n", out)
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", truncateString("short", 10))
	assert.Equal(t, "a long...", truncateString("a long title", 9))
	assert.True(t, strings.HasSuffix(truncateString(strings.Repeat("x", 100), 48), "..."))
}
