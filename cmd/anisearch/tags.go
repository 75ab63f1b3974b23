package cmd

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/kerbaras/anisearch/pkg/paging"
)

type tagsPage struct {
	Page     int      `json:"page"`
	PageSize int      `json:"page_size"`
	Pages    int      `json:"pages"`
	Total    int      `json:"total"`
	Tags     []string `json:"tags"`
}

func newTagsCmd(opts *options) *cobra.Command {
	var (
		page     int
		pageSize int
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "tags [substring]",
		Short: "List catalog tags",
		Long:  "List the tag catalog in alphabetical order. With an argument, only tags containing it (case-sensitive) are listed.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("page-size") {
				pageSize = opts.cfg.Search.PageSize
			}
			if err := paging.Validate(page, pageSize); err != nil {
				return err
			}

			engine, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}

			substr := ""
			if len(args) == 1 {
				substr = args[0]
			}
			total, err := engine.TagSearchCount(substr)
			if err != nil {
				return err
			}
			tags, err := engine.TagSearch(substr, page, pageSize)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			pages := paging.PageCount(total, pageSize)
			if asJSON {
				return writeJSON(out, tagsPage{Page: page, PageSize: pageSize, Pages: pages, Total: total, Tags: tags})
			}

			if len(tags) == 0 {
				fmt.Fprintln(out, "No tags found.")
				return nil
			}

			columns := []table.Column{
				{Title: "#", Width: 6},
				{Title: "Tag", Width: 40},
			}
			rows := make([]table.Row, 0, len(tags))
			for i, tag := range tags {
				rows = append(rows, table.Row{
					fmt.Sprintf("%d", (page-1)*pageSize+i+1),
					truncateString(tag, 38),
				})
			}

			t := table.New(
				table.WithColumns(columns),
				table.WithRows(rows),
				table.WithFocused(false),
				table.WithHeight(len(rows)+2),
			)

			s := table.DefaultStyles()
			s.Header = s.Header.
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("240")).
				BorderBottom(true).
				Bold(true)
			s.Selected = s.Cell
			t.SetStyles(s)

			fmt.Fprintf(out, "\nTags (page %d/%d, %d total)\n\n", page, pages, total)
			fmt.Fprintln(out, t.View())
			return nil
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&page, "page", "p", 1, "Page number, starting at 1")
	flags.IntVarP(&pageSize, "page-size", "n", 20, "Tags per page")
	flags.BoolVar(&asJSON, "json", false, "Print JSON")
	return cmd
}
