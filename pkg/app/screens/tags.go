package screens

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kerbaras/anisearch/pkg/app/components"
	"github.com/kerbaras/anisearch/pkg/app/styles"
	"github.com/kerbaras/anisearch/pkg/services"
)

// TagsScreen browses the tag catalog. The filter is a case-sensitive
// substring, the same as the tags command.
type TagsScreen struct {
	engine   *services.Engine
	filter   textinput.Model
	tags     []string
	selected int
	pager    *components.Pager
	width    int
	height   int
	err      error
}

func NewTagsScreen(engine *services.Engine, pageSize int) *TagsScreen {
	filter := textinput.New()
	filter.Placeholder = "Filter tags..."
	filter.CharLimit = 60
	filter.Width = 40

	return &TagsScreen{
		engine: engine,
		filter: filter,
		tags:   []string{},
		pager:  components.NewPager(pageSize, "tags"),
	}
}

func (s *TagsScreen) Init() tea.Cmd {
	return s.loadTags()
}

func (s *TagsScreen) Typing() bool {
	return s.filter.Focused()
}

func (s *TagsScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		s.pager.Width = min(40, max(msg.Width-4, 10))

	case tea.KeyMsg:
		if s.filter.Focused() {
			switch msg.String() {
			case "esc", "enter":
				s.filter.Blur()
				s.pager.First()
				return s, s.loadTags()
			}
			var cmd tea.Cmd
			s.filter, cmd = s.filter.Update(msg)
			return s, cmd
		}

		switch msg.String() {
		case "/":
			return s, s.filter.Focus()
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.tags)-1 {
				s.selected++
			}
		case "right", "n", "pgdown":
			if s.pager.Next() {
				return s, s.loadTags()
			}
		case "left", "p", "pgup":
			if s.pager.Prev() {
				return s, s.loadTags()
			}
		case "r":
			return s, s.loadTags()
		case "enter":
			if s.selected < len(s.tags) {
				tag := s.tags[s.selected]
				return s, func() tea.Msg {
					return SwitchScreenMsg{Screen: "search", Data: tag}
				}
			}
		}

	case tagsLoadedMsg:
		s.err = msg.err
		if msg.err == nil {
			s.tags = msg.tags
			s.pager.SetTotal(msg.total)
			s.selected = 0
		}
	}

	return s, nil
}

func (s *TagsScreen) View() string {
	if s.width == 0 {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(styles.HeaderStyle.Render("Tags"))
	b.WriteString("\n")

	inputStyle := styles.InputStyle
	if s.filter.Focused() {
		inputStyle = styles.FocusedInputStyle
	}
	b.WriteString(inputStyle.Render(s.filter.View()))
	b.WriteString("\n\n")

	if s.err != nil {
		b.WriteString(styles.ErrorStyle.Render(fmt.Sprintf("Error: %s", s.err)))
		b.WriteString("\n\n")
	}

	b.WriteString(s.pager.View())
	b.WriteString("\n\n")

	if len(s.tags) == 0 {
		b.WriteString(styles.MutedStyle.Render("No tags found"))
		b.WriteString("\n")
	}
	for i, tag := range s.tags {
		if i == s.selected {
			b.WriteString(styles.SelectedStyle.Render("> " + tag))
		} else {
			b.WriteString(styles.TagStyle.Render("  " + tag))
		}
		b.WriteString("\n")
	}

	b.WriteString(styles.HelpStyle.Render(
		"/: filter • enter: search tag • ↑/k ↓/j: select • ←/p →/n: page • r: refresh • tab: search • q: quit",
	))
	return b.String()
}

// Messages
type tagsLoadedMsg struct {
	tags  []string
	total int
	err   error
}

// Commands
func (s *TagsScreen) loadTags() tea.Cmd {
	substr := s.filter.Value()
	page, size := s.pager.Page(), s.pager.Size()

	return func() tea.Msg {
		total, err := s.engine.TagSearchCount(substr)
		if err != nil {
			return tagsLoadedMsg{err: err}
		}
		tags, err := s.engine.TagSearch(substr, page, size)
		return tagsLoadedMsg{tags: tags, total: total, err: err}
	}
}
