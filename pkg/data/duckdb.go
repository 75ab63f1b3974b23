package data

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	_ "github.com/marcboeker/go-duckdb/v2"
)

// DefaultTable is the table read by Repository.Entries when none is given.
const DefaultTable = "entries"

// OpenDuckDB opens the DuckDB database at path. The catalog is only ever read,
// so callers outside fixtures pass readOnly=true.
func OpenDuckDB(path string, readOnly bool) (*sql.DB, error) {
	dsn := path
	if readOnly {
		dsn += "?access_mode=read_only"
	}

	db, err := sql.Open("duckdb", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("open duckdb %s: %w", path, err)
	}
	return db, nil
}

// Repository reads raw catalog entries from a DuckDB table with the columns
// sources, title, type, episodes, status, season, year, picture, thumbnail,
// synonyms, relations and tags. List columns are VARCHAR[].
type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Entries returns every row of table in storage order.
func (r *Repository) Entries(ctx context.Context, table string) ([]Entry, error) {
	if table == "" {
		table = DefaultTable
	}

	query := fmt.Sprintf(`
		SELECT
			CAST(to_json(sources) AS VARCHAR),
			title, "type", episodes, status, season, "year", picture, thumbnail,
			CAST(to_json(synonyms) AS VARCHAR),
			CAST(to_json(relations) AS VARCHAR),
			CAST(to_json(tags) AS VARCHAR)
		FROM %s`, quoteIdent(table))

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: query %s: %v", ErrInvalidDataset, table, err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			sources, synonyms, relations, tags sql.NullString
			title, category, status, season    sql.NullString
			picture, thumbnail                 sql.NullString
			episodes, year                     sql.NullInt64
		)
		if err := rows.Scan(
			&sources, &title, &category, &episodes, &status, &season, &year,
			&picture, &thumbnail, &synonyms, &relations, &tags,
		); err != nil {
			return nil, fmt.Errorf("%w: scan %s: %v", ErrInvalidDataset, table, err)
		}

		e := Entry{
			Title:     title.String,
			Category:  category.String,
			Episodes:  int(episodes.Int64),
			Status:    status.String,
			Season:    Season{Season: season.String},
			Picture:   picture.String,
			Thumbnail: thumbnail.String,
		}
		if year.Valid {
			y := int(year.Int64)
			e.Season.Year = &y
		}
		if e.Episodes < 0 {
			return nil, fmt.Errorf("%w: %q has negative episode count %d", ErrInvalidDataset, e.Title, e.Episodes)
		}

		for _, col := range []struct {
			name string
			raw  sql.NullString
			dst  *[]string
		}{
			{"sources", sources, &e.Sources},
			{"synonyms", synonyms, &e.Synonyms},
			{"relations", relations, &e.Relations},
			{"tags", tags, &e.Tags},
		} {
			list, err := decodeList(col.raw)
			if err != nil {
				return nil, fmt.Errorf("%w: column %s of %q: %v", ErrInvalidDataset, col.name, e.Title, err)
			}
			*col.dst = list
		}

		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows %s: %v", ErrInvalidDataset, table, err)
	}
	return entries, nil
}

// decodeList turns a to_json list rendering into a slice. NULL becomes an
// empty list.
func decodeList(raw sql.NullString) ([]string, error) {
	out := []string{}
	if !raw.Valid {
		return out, nil
	}
	if err := json.Unmarshal([]byte(raw.String), &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
