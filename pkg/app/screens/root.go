package screens

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kerbaras/anisearch/pkg/app/styles"
	"github.com/kerbaras/anisearch/pkg/data"
	"github.com/kerbaras/anisearch/pkg/services"
)

type screenType int

const (
	searchView screenType = iota
	tagsView
	detailsView
)

type RootScreen struct {
	engine *services.Engine

	currentView screenType
	search      *SearchScreen
	tags        *TagsScreen
	details     *DetailsScreen

	width  int
	height int
}

func NewRootScreen(engine *services.Engine, pageSize int) *RootScreen {
	return &RootScreen{
		engine:      engine,
		currentView: searchView,
		search:      NewSearchScreen(engine, pageSize),
		tags:        NewTagsScreen(engine, pageSize),
	}
}

func (r *RootScreen) Init() tea.Cmd {
	return tea.Batch(r.search.Init(), r.tags.Init())
}

func (r *RootScreen) typing() bool {
	switch r.currentView {
	case searchView:
		return r.search.Typing()
	case tagsView:
		return r.tags.Typing()
	}
	return false
}

func (r *RootScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.width = msg.Width
		r.height = msg.Height
		// Every screen keeps its size, including the ones not shown.
		r.search.Update(msg)
		r.tags.Update(msg)
		if r.details != nil {
			r.details.Update(msg)
		}
		return r, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return r, tea.Quit
		case "q":
			if !r.typing() {
				return r, tea.Quit
			}
		case "tab":
			// details is left with esc
			if r.currentView == detailsView {
				break
			}
			if r.currentView == searchView {
				r.currentView = tagsView
			} else {
				r.currentView = searchView
			}
			return r, nil
		}

	case SwitchScreenMsg:
		switch msg.Screen {
		case "search":
			r.currentView = searchView
			if tag, ok := msg.Data.(string); ok {
				cmd = r.search.AddTag(tag)
			}
		case "tags":
			r.currentView = tagsView
		case "details":
			if entry, ok := msg.Data.(data.Entry); ok {
				r.details = NewDetailsScreen(entry)
				r.details.Update(tea.WindowSizeMsg{Width: r.width, Height: r.height})
				r.currentView = detailsView
				cmd = r.details.Init()
			}
		}
		return r, cmd

	case searchResultMsg:
		_, cmd = r.search.Update(msg)
		return r, cmd

	case tagsLoadedMsg:
		_, cmd = r.tags.Update(msg)
		return r, cmd
	}

	// Forward message to active screen
	switch r.currentView {
	case searchView:
		_, cmd = r.search.Update(msg)
	case tagsView:
		_, cmd = r.tags.Update(msg)
	case detailsView:
		if r.details != nil {
			_, cmd = r.details.Update(msg)
		}
	}
	return r, cmd
}

func (r *RootScreen) View() string {
	var content string
	switch r.currentView {
	case searchView:
		content = r.search.View()
	case tagsView:
		content = r.tags.View()
	case detailsView:
		if r.details != nil {
			content = r.details.View()
		}
	}

	if r.currentView == detailsView {
		return content
	}
	return fmt.Sprintf("%s\n\n%s", r.renderTabs(), content)
}

func (r *RootScreen) renderTabs() string {
	searchTab := styles.InactiveTabStyle.Render("Search")
	tagsTab := styles.InactiveTabStyle.Render("Tags")
	if r.currentView == searchView {
		searchTab = styles.ActiveTabStyle.Render("Search")
	} else {
		tagsTab = styles.ActiveTabStyle.Render("Tags")
	}

	count := ""
	if n, err := r.engine.Count(); err == nil {
		count = styles.MutedStyle.Render(fmt.Sprintf("  %d entries", n))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, searchTab, tagsTab, count)
}
