package screens

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kerbaras/anisearch/pkg/app/components"
	"github.com/kerbaras/anisearch/pkg/app/styles"
	"github.com/kerbaras/anisearch/pkg/data"
	"github.com/kerbaras/anisearch/pkg/query"
	"github.com/kerbaras/anisearch/pkg/services"
)

type searchFocus int

const (
	focusTitle searchFocus = iota
	focusTags
	focusResults
)

type SearchScreen struct {
	engine  *services.Engine
	title   textinput.Model
	tags    textinput.Model
	focus   searchFocus
	results *components.EntryList
	pager   *components.Pager
	width   int
	height  int
	err     error
}

func NewSearchScreen(engine *services.Engine, pageSize int) *SearchScreen {
	title := textinput.New()
	title.Placeholder = "Title or synonym..."
	title.Prompt = "title: "
	title.CharLimit = 100
	title.Width = 50
	title.Focus()

	tags := textinput.New()
	tags.Placeholder = "action, !horror"
	tags.Prompt = "tags:  "
	tags.CharLimit = 200
	tags.Width = 50

	return &SearchScreen{
		engine:  engine,
		title:   title,
		tags:    tags,
		results: components.NewEntryList(),
		pager:   components.NewPager(pageSize, "matches"),
	}
}

func (s *SearchScreen) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, s.runSearch())
}

// Typing reports whether key presses go to a text input.
func (s *SearchScreen) Typing() bool {
	return s.focus != focusResults
}

// AddTag appends tag to the tag expression and searches again from page one.
func (s *SearchScreen) AddTag(tag string) tea.Cmd {
	items := query.ParseCriteria(s.tags.Value())
	for _, c := range items {
		if c.Value == tag && !c.Not {
			return nil
		}
	}
	items = append(items, query.Is(tag))
	s.tags.SetValue(query.FormatCriteria(items))
	s.pager.First()
	return s.runSearch()
}

func (s *SearchScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		s.results.Width = msg.Width - 2
		s.results.Height = msg.Height - 14
		s.pager.Width = min(40, max(msg.Width-4, 10))

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, s.cycleFocus()

		case "enter":
			if s.focus != focusResults {
				s.pager.First()
				return s, s.runSearch()
			}
			if e := s.results.Selected(); e != nil {
				entry := e.Clone()
				return s, func() tea.Msg {
					return SwitchScreenMsg{Screen: "details", Data: entry}
				}
			}
			return s, nil
		}

		if s.focus == focusResults {
			switch msg.String() {
			case "up", "k":
				s.results.Prev()
			case "down", "j":
				s.results.Next()
			case "right", "n", "pgdown":
				if s.pager.Next() {
					return s, s.runSearch()
				}
			case "left", "p", "pgup":
				if s.pager.Prev() {
					return s, s.runSearch()
				}
			}
			return s, nil
		}

	case searchResultMsg:
		s.err = msg.err
		if msg.err == nil {
			s.pager.SetTotal(msg.total)
			s.results.SetItems(msg.results)
			s.results.SelectedIndex = 0
		}
		return s, nil
	}

	switch s.focus {
	case focusTitle:
		s.title, cmd = s.title.Update(msg)
	case focusTags:
		s.tags, cmd = s.tags.Update(msg)
	}
	return s, cmd
}

func (s *SearchScreen) cycleFocus() tea.Cmd {
	s.focus = (s.focus + 1) % 3
	s.title.Blur()
	s.tags.Blur()
	s.results.Focused = s.focus == focusResults

	switch s.focus {
	case focusTitle:
		return s.title.Focus()
	case focusTags:
		return s.tags.Focus()
	}
	return nil
}

func (s *SearchScreen) View() string {
	if s.width == 0 {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(styles.HeaderStyle.Render("Search"))
	b.WriteString("\n")
	b.WriteString(s.renderInput(s.title, s.focus == focusTitle))
	b.WriteString("\n")
	b.WriteString(s.renderInput(s.tags, s.focus == focusTags))
	b.WriteString("\n\n")

	if s.err != nil {
		b.WriteString(styles.ErrorStyle.Render(fmt.Sprintf("Error: %s", s.err)))
		b.WriteString("\n\n")
	}

	b.WriteString(s.pager.View())
	b.WriteString("\n\n")
	b.WriteString(s.results.View())

	b.WriteString(styles.HelpStyle.Render(
		"enter: search/open • esc: switch focus • ↑/k ↓/j: select • ←/p →/n: page • tab: tags • ctrl+c: quit",
	))
	return b.String()
}

func (s *SearchScreen) renderInput(in textinput.Model, focused bool) string {
	style := styles.InputStyle
	if focused {
		style = styles.FocusedInputStyle
	}
	return style.Render(in.View())
}

// Messages
type searchResultMsg struct {
	results []data.Entry
	total   int
	err     error
}

// SwitchScreenMsg asks the root screen to change view. Data carries the tag
// to add when switching to search and the entry when opening details.
type SwitchScreenMsg struct {
	Screen string
	Data   any
}

// Commands
func (s *SearchScreen) runSearch() tea.Cmd {
	q := query.New()
	q.Title = strings.TrimSpace(s.title.Value())
	q.Tag = query.All(query.ParseCriteria(s.tags.Value())...)
	page, size := s.pager.Page(), s.pager.Size()

	return func() tea.Msg {
		total, err := s.engine.SearchCount(q)
		if err != nil {
			return searchResultMsg{err: err}
		}
		results, err := s.engine.Search(q, page, size)
		return searchResultMsg{results: results, total: total, err: err}
	}
}
