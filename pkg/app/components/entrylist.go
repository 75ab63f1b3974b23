package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kerbaras/anisearch/pkg/app/styles"
	"github.com/kerbaras/anisearch/pkg/data"
)

// EntryList renders one page of search results as cards.
type EntryList struct {
	Items         []data.Entry
	SelectedIndex int
	Focused       bool
	Width         int
	Height        int
}

func NewEntryList() *EntryList {
	return &EntryList{
		Items:         []data.Entry{},
		SelectedIndex: 0,
		Width:         80,
		Height:        20,
	}
}

func (l *EntryList) SetItems(items []data.Entry) {
	l.Items = items
	if l.SelectedIndex >= len(items) && len(items) > 0 {
		l.SelectedIndex = len(items) - 1
	}
	if len(items) == 0 {
		l.SelectedIndex = 0
	}
}

func (l *EntryList) Next() {
	if len(l.Items) == 0 {
		return
	}
	l.SelectedIndex++
	if l.SelectedIndex >= len(l.Items) {
		l.SelectedIndex = 0
	}
}

func (l *EntryList) Prev() {
	if len(l.Items) == 0 {
		return
	}
	l.SelectedIndex--
	if l.SelectedIndex < 0 {
		l.SelectedIndex = len(l.Items) - 1
	}
}

func (l *EntryList) Selected() *data.Entry {
	if len(l.Items) == 0 || l.SelectedIndex >= len(l.Items) {
		return nil
	}
	return &l.Items[l.SelectedIndex]
}

func (l *EntryList) View() string {
	if len(l.Items) == 0 {
		msg := styles.MutedStyle.Render("No matching entries")
		return lipgloss.Place(l.Width, l.Height, lipgloss.Center, lipgloss.Center, msg)
	}

	var b strings.Builder
	for i := range l.Items {
		e := &l.Items[i]

		cardStyle := styles.CardStyle
		if l.Focused && i == l.SelectedIndex {
			cardStyle = styles.ActiveCardStyle
		}

		cardContent := lipgloss.JoinVertical(
			lipgloss.Left,
			styles.TitleStyle.Render(e.Title),
			styles.MutedStyle.Render(Summary(e)),
			styles.StatusStyle(e.Status).Render(StatusLabel(e.Status)),
			styles.TagStyle.Render(Truncate(strings.Join(e.Tags, ", "), max(l.Width-10, 20))),
		)

		b.WriteString(cardStyle.Width(l.Width - 4).Render(cardContent))
		b.WriteString("\n")
	}
	return b.String()
}

// Summary is the one-line description shown under an entry title, such as
// "TV • 26 episodes • SPRING 1998".
func Summary(e *data.Entry) string {
	parts := make([]string, 0, 3)
	if e.Category != "" {
		parts = append(parts, e.Category)
	}
	if e.Episodes == 1 {
		parts = append(parts, "1 episode")
	} else {
		parts = append(parts, fmt.Sprintf("%d episodes", e.Episodes))
	}
	parts = append(parts, SeasonLabel(e.Season))
	return strings.Join(parts, " • ")
}

func SeasonLabel(s data.Season) string {
	season := s.Season
	if season == "UNDEFINED" {
		season = ""
	}
	switch {
	case s.Year == nil && season == "":
		return "unknown season"
	case s.Year == nil:
		return season
	case season == "":
		return fmt.Sprint(*s.Year)
	}
	return fmt.Sprintf("%s %d", season, *s.Year)
}

func StatusLabel(status string) string {
	if status == "" {
		return "UNKNOWN"
	}
	return status
}

// Truncate shortens s to at most n runes, marking the cut with "...".
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}
