package sources

import (
	"context"

	"github.com/kerbaras/anisearch/pkg/data"
)

// DuckDB reads entries from a table of a DuckDB database opened read-only.
type DuckDB struct {
	path  string
	table string
}

func NewDuckDB(path, table string) *DuckDB {
	if table == "" {
		table = data.DefaultTable
	}
	return &DuckDB{path: path, table: table}
}

func (s *DuckDB) Name() string {
	return "duckdb:" + s.path + "#" + s.table
}

func (s *DuckDB) Load(ctx context.Context) ([]data.Entry, error) {
	db, err := data.OpenDuckDB(s.path, true)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	return data.NewRepository(db).Entries(ctx, s.table)
}
