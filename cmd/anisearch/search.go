package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/kerbaras/anisearch/pkg/data"
	"github.com/kerbaras/anisearch/pkg/paging"
	"github.com/kerbaras/anisearch/pkg/query"
	"github.com/kerbaras/anisearch/pkg/services"
)

type searchFlags struct {
	title       string
	tags        []string
	tagExpr     string
	anyTag      bool
	categories  []string
	anyCategory bool
	statuses    []string
	anyStatus   bool
	episodes    string
	document    string
	page        int
	pageSize    int
	countOnly   bool
	asJSON      bool
}

// build turns the flags into a query. Values prefixed with ! are negated.
func (f *searchFlags) build() (query.Query, error) {
	episodes, err := query.ParseEpisodeFilter(f.episodes)
	if err != nil {
		return query.Query{}, err
	}

	tags := query.ParseCriteria(strings.Join(f.tags, ","))
	tags = append(tags, query.ParseCriteria(f.tagExpr)...)

	return query.Query{
		Tag:      query.Group{Items: tags, Or: f.anyTag},
		Category: query.Group{Items: query.ParseCriteria(strings.Join(f.categories, ",")), Or: f.anyCategory},
		Status:   query.Group{Items: query.ParseCriteria(strings.Join(f.statuses, ",")), Or: f.anyStatus},
		Title:    f.title,
		Episodes: episodes,
	}, nil
}

// readDocument returns the --query value, reading a file for @path and
// standard input for "-".
func (f *searchFlags) readDocument(cmd *cobra.Command) ([]byte, error) {
	switch {
	case f.document == "-":
		return io.ReadAll(cmd.InOrStdin())
	case strings.HasPrefix(f.document, "@"):
		return os.ReadFile(f.document[1:])
	}
	return []byte(f.document), nil
}

// run returns the number of matches and, unless only the count is wanted,
// the requested page.
func (f *searchFlags) run(cmd *cobra.Command, engine *services.Engine) (int, []data.Entry, error) {
	if f.document != "" {
		doc, err := f.readDocument(cmd)
		if err != nil {
			return 0, nil, err
		}
		total, err := engine.SearchCountDocument(doc)
		if err != nil || f.countOnly {
			return total, nil, err
		}
		results, err := engine.SearchDocument(doc, f.page, f.pageSize)
		return total, results, err
	}

	q, err := f.build()
	if err != nil {
		return 0, nil, err
	}
	total, err := engine.SearchCount(q)
	if err != nil || f.countOnly {
		return total, nil, err
	}
	results, err := engine.Search(q, f.page, f.pageSize)
	return total, results, err
}

type searchPage struct {
	Page     int          `json:"page"`
	PageSize int          `json:"page_size"`
	Pages    int          `json:"pages"`
	Total    int          `json:"total"`
	Results  []data.Entry `json:"results"`
}

func newSearchCmd(opts *options) *cobra.Command {
	f := &searchFlags{}

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search the catalog",
		Long: `Search the catalog and print one page of matches, newest first.

Criteria of the same kind must all hold unless --any-<kind> is given.
Prefix a value with ! to exclude it:

  anisearch search --tag action --tag '!mecha' --episodes '<=13'
  anisearch search --tags 'comedy, slice of life' --any-tag --status ONGOING
  anisearch search --query '{"title":"bebop","episodes":{"number":0,"operation":">="}}'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("page-size") {
				f.pageSize = opts.cfg.Search.PageSize
			}
			if err := paging.Validate(f.page, f.pageSize); err != nil {
				return err
			}

			engine, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}

			total, results, err := f.run(cmd, engine)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if f.countOnly {
				if f.asJSON {
					return writeJSON(out, map[string]int{"count": total})
				}
				fmt.Fprintln(out, total)
				return nil
			}

			pages := paging.PageCount(total, f.pageSize)
			if f.asJSON {
				return writeJSON(out, searchPage{
					Page:     f.page,
					PageSize: f.pageSize,
					Pages:    pages,
					Total:    total,
					Results:  results,
				})
			}

			if len(results) == 0 {
				fmt.Fprintln(out, "No results found.")
				return nil
			}

			fmt.Fprintf(out, "\nPage %d/%d (%d matches)\n\n", f.page, pages, total)
			fmt.Fprintln(out, resultsTable(results, (f.page-1)*f.pageSize))
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&f.title, "title", "t", "", "Case-insensitive substring of the title or a synonym")
	flags.StringArrayVar(&f.tags, "tag", nil, "Tag to require, or exclude with a ! prefix (repeatable)")
	flags.StringVar(&f.tagExpr, "tags", "", `Comma separated tags, e.g. "action, !horror"`)
	flags.BoolVar(&f.anyTag, "any-tag", false, "Match when any tag criterion holds")
	flags.StringArrayVar(&f.categories, "category", nil, "Type such as TV, MOVIE or OVA, ! to exclude (repeatable)")
	flags.BoolVar(&f.anyCategory, "any-category", false, "Match when any category criterion holds")
	flags.StringArrayVar(&f.statuses, "status", nil, "Status such as FINISHED or ONGOING, ! to exclude (repeatable)")
	flags.BoolVar(&f.anyStatus, "any-status", false, "Match when any status criterion holds")
	flags.StringVarP(&f.episodes, "episodes", "e", "", `Episode count filter, e.g. ">=12", "<20" or "26"`)
	flags.StringVarP(&f.document, "query", "q", "", "JSON query document, @file to read a file or - for stdin")
	flags.IntVarP(&f.page, "page", "p", 1, "Page number, starting at 1")
	flags.IntVarP(&f.pageSize, "page-size", "n", 20, "Results per page")
	flags.BoolVar(&f.countOnly, "count", false, "Print only the number of matches")
	flags.BoolVar(&f.asJSON, "json", false, "Print JSON")

	for _, name := range []string{"title", "tag", "tags", "any-tag", "category", "any-category", "status", "any-status", "episodes"} {
		cmd.MarkFlagsMutuallyExclusive("query", name)
	}
	return cmd
}

func resultsTable(results []data.Entry, offset int) *table.Table {
	var (
		purple = lipgloss.Color("99")

		headerStyle = lipgloss.NewStyle().Foreground(purple).Bold(true).Align(lipgloss.Center)
		cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	)

	t := table.New().
		Border(lipgloss.HiddenBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(purple)).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			default:
				return cellStyle
			}
		}).
		Headers("#", "Title", "Type", "Eps", "Status", "Year", "Tags")

	for i, e := range results {
		year := "-"
		if e.Season.Year != nil {
			year = fmt.Sprint(*e.Season.Year)
		}
		t.Row(
			fmt.Sprintf("%d", offset+i+1),
			truncateString(e.Title, 48),
			e.Category,
			fmt.Sprintf("%d", e.Episodes),
			e.Status,
			year,
			truncateString(strings.Join(e.Tags, ", "), 40),
		)
	}
	return t
}
