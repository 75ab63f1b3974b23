// Package sources loads the raw catalog document from where it is stored.
package sources

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/kerbaras/anisearch/pkg/data"
)

// Source yields the raw, not yet normalized catalog entries.
type Source interface {
	Name() string
	Load(ctx context.Context) ([]data.Entry, error)
}

// Formats understood by New.
const (
	FormatAuto   = "auto"
	FormatJSON   = "json"
	FormatZip    = "zip"
	FormatDuckDB = "duckdb"
)

// New returns the source for path. With FormatAuto (or "") the format is
// taken from the file extension: .zip, .duckdb/.db, anything else is JSON.
func New(format, path, table string) (Source, error) {
	if path == "" {
		return nil, fmt.Errorf("dataset path is empty")
	}
	if format == "" || format == FormatAuto {
		format = detectFormat(path)
	}

	switch format {
	case FormatJSON:
		return NewJSONFile(path), nil
	case FormatZip:
		return NewZipArchive(path), nil
	case FormatDuckDB:
		return NewDuckDB(path, table), nil
	}
	return nil, fmt.Errorf("unknown dataset format %q", format)
}

func detectFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zip":
		return FormatZip
	case ".duckdb", ".db":
		return FormatDuckDB
	}
	return FormatJSON
}
