package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kerbaras/anisearch/pkg/config"
	"github.com/kerbaras/anisearch/pkg/data"
	"github.com/kerbaras/anisearch/pkg/query"
)

const sampleDocument = `{"data":[
	{"sources":["https://example.org/anime/1"],"title":"Cowboy Bebop","type":"TV","episodes":26,"status":"FINISHED",
	 "animeSeason":{"season":"SPRING","year":1998},"picture":"","thumbnail":"",
	 "synonyms":["Kaubōi Bibappu"],"relations":[],"tags":["space","sci fi"]},
	{"sources":["https://example.org/anime/2"],"title":"Dropped","type":"TV","episodes":1,"status":"FINISHED",
	 "animeSeason":{"season":"SPRING","year":2001},"picture":"","thumbnail":"",
	 "synonyms":[],"relations":[],"tags":["drama"]}
]}`

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func testConfig(t *testing.T, dataset string) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Dataset.Path = dataset
	cfg.Log.Level = "disabled"
	require.NoError(t, cfg.Validate())
	return cfg
}

func TestOptionsFromConfigDefaults(t *testing.T) {
	cfg := testConfig(t, "unused.json")
	cfg.Search.Workers = 3
	cfg.Search.ParallelThreshold = 10

	opts, err := OptionsFromConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, 3, opts.Workers)
	assert.Equal(t, 10, opts.ParallelThreshold)
	assert.Equal(t, "science fiction", opts.Aliases.Canonical("sci fi"))
	assert.NotEmpty(t, opts.Exclusions)
}

func TestOptionsFromConfigOverrides(t *testing.T) {
	cfg := testConfig(t, "unused.json")
	cfg.Catalog.Aliases = writeFile(t, "aliases.json", `{"outer space":["space"]}`)
	cfg.Catalog.Exclusions = writeFile(t, "exclude.json", `["https://example.org/anime/2"]`)

	opts, err := OptionsFromConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, "outer space", opts.Aliases.Canonical("space"))
	assert.Equal(t, "sci fi", opts.Aliases.Canonical("sci fi"), "bundled table is replaced, not merged")
	assert.True(t, opts.Exclusions.Contains("https://example.org/anime/2"))
}

func TestOptionsFromConfigBadFiles(t *testing.T) {
	cfg := testConfig(t, "unused.json")
	cfg.Catalog.Aliases = writeFile(t, "aliases.json", `["not","a","map"]`)
	_, err := OptionsFromConfig(cfg)
	assert.ErrorIs(t, err, data.ErrInvalidDataset)

	cfg = testConfig(t, "unused.json")
	cfg.Catalog.Exclusions = filepath.Join(t.TempDir(), "missing.json")
	_, err = OptionsFromConfig(cfg)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestOpen(t *testing.T) {
	cfg := testConfig(t, writeFile(t, "anime.json", sampleDocument))
	cfg.Catalog.Exclusions = writeFile(t, "exclude.json", `["https://example.org/anime/2"]`)

	e, err := Open(context.Background(), cfg)
	require.NoError(t, err)

	n, err := e.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := e.Search(query.Query{Title: "kaubōi", Episodes: query.AnyEpisodes}, 1, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Cowboy Bebop", got[0].Title)
	assert.Equal(t, []string{"kaubōi bibappu"}, got[0].Synonyms)
	assert.Equal(t, []string{"space", "science fiction"}, got[0].Tags)
}

func TestOpenErrors(t *testing.T) {
	cfg := testConfig(t, filepath.Join(t.TempDir(), "missing.json"))
	_, err := Open(context.Background(), cfg)
	assert.ErrorIs(t, err, os.ErrNotExist)

	cfg = testConfig(t, writeFile(t, "anime.json", `{"data":`))
	_, err = Open(context.Background(), cfg)
	assert.ErrorIs(t, err, data.ErrInvalidDataset)

	cfg = testConfig(t, "anime.json")
	cfg.Dataset.Format = "csv"
	_, err = Open(context.Background(), cfg)
	assert.Error(t, err)
}
