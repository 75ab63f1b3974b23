package screens

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kerbaras/anisearch/pkg/app/components"
	"github.com/kerbaras/anisearch/pkg/app/styles"
	"github.com/kerbaras/anisearch/pkg/data"
)

// DetailsScreen shows every field of one entry.
type DetailsScreen struct {
	entry  data.Entry
	offset int
	width  int
	height int
}

func NewDetailsScreen(entry data.Entry) *DetailsScreen {
	return &DetailsScreen{entry: entry}
}

func (s *DetailsScreen) Init() tea.Cmd {
	return nil
}

func (s *DetailsScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.offset > 0 {
				s.offset--
			}
		case "down", "j":
			s.offset++
		case "esc", "backspace":
			return s, func() tea.Msg {
				return SwitchScreenMsg{Screen: "search"}
			}
		}
	}

	return s, nil
}

func (s *DetailsScreen) View() string {
	e := &s.entry
	header := styles.HeaderStyle.Render(e.Title)

	rows := []string{
		s.row("Type", e.Category),
		s.row("Episodes", fmt.Sprint(e.Episodes)),
		s.row("Status", styles.StatusStyle(e.Status).Render(components.StatusLabel(e.Status))),
		s.row("Season", components.SeasonLabel(e.Season)),
		"",
		s.list("Tags", e.Tags, styles.TagStyle),
		s.list("Synonyms", e.Synonyms, styles.SubtitleStyle),
		s.list("Sources", e.Sources, styles.MutedStyle),
		s.list("Relations", e.Relations, styles.MutedStyle),
	}
	if e.Picture != "" {
		rows = append(rows, s.row("Picture", styles.MutedStyle.Render(e.Picture)))
	}

	body := strings.Split(lipgloss.JoinVertical(lipgloss.Left, rows...), "\n")
	if s.height > 8 && len(body) > s.height-8 {
		s.offset = min(s.offset, len(body)-(s.height-8))
		body = body[s.offset : s.offset+s.height-8]
	}

	width := 80
	if s.width > 4 {
		width = s.width - 4
	}
	card := styles.CardStyle.Width(width).Render(strings.Join(body, "\n"))

	help := styles.HelpStyle.Render("↑/k ↓/j: scroll • esc: back • q: quit")
	return fmt.Sprintf("%s\n%s\n%s", header, card, help)
}

func (s *DetailsScreen) row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, styles.LabelStyle.Render(label), value)
}

func (s *DetailsScreen) list(label string, items []string, style lipgloss.Style) string {
	if len(items) == 0 {
		return s.row(label, styles.MutedStyle.Render("none"))
	}
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = style.Render(item)
	}
	return s.row(label, strings.Join(lines, "\n"))
}
