package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/paginator"

	"github.com/kerbaras/anisearch/pkg/app/styles"
	"github.com/kerbaras/anisearch/pkg/paging"
)

// Pager tracks the current page of a result set and renders a position bar.
// Pages are 1-based; the embedded paginator counts from 0.
type Pager struct {
	model paginator.Model
	Total int
	Width int
	// Noun names what is counted, e.g. "matches" or "tags".
	Noun string
}

func NewPager(size int, noun string) *Pager {
	m := paginator.New()
	m.Type = paginator.Arabic
	m.ArabicFormat = "Page %d/%d"
	m.PerPage = max(size, 1)
	m.TotalPages = 1
	return &Pager{model: m, Width: 40, Noun: noun}
}

func (p *Pager) Page() int {
	return p.model.Page + 1
}

func (p *Pager) Size() int {
	return p.model.PerPage
}

func (p *Pager) Pages() int {
	return p.model.TotalPages
}

// SetPage moves to page, clamped to the known pages.
func (p *Pager) SetPage(page int) {
	p.model.Page = min(max(page, 1), p.Pages()) - 1
}

// First moves back to page 1 and keeps the total.
func (p *Pager) First() {
	p.model.Page = 0
}

func (p *Pager) HasNext() bool {
	return !p.model.OnLastPage()
}

func (p *Pager) HasPrev() bool {
	return !p.model.OnFirstPage()
}

// Next advances one page and reports whether the page changed.
func (p *Pager) Next() bool {
	if !p.HasNext() {
		return false
	}
	p.model.NextPage()
	return true
}

// Prev goes back one page and reports whether the page changed.
func (p *Pager) Prev() bool {
	if !p.HasPrev() {
		return false
	}
	p.model.PrevPage()
	return true
}

func (p *Pager) Reset() {
	p.First()
	p.SetTotal(0)
}

// SetTotal updates the total and pulls the current page back in range.
// An empty set still has one page.
func (p *Pager) SetTotal(total int) {
	p.Total = total
	p.model.TotalPages = paging.PageCount(total, p.model.PerPage)
	p.SetPage(p.Page())
}

func (p *Pager) View() string {
	var b strings.Builder
	b.WriteString(styles.PagerStyle.Render(p.model.View()))
	b.WriteString(" ")
	b.WriteString(styles.MutedStyle.Render(fmt.Sprintf("• %d %s", p.Total, p.Noun)))
	if p.Pages() > 1 {
		b.WriteString("\n")
		b.WriteString(renderBar(p.Page(), p.Pages(), p.Width))
	}
	return b.String()
}

// renderBar draws the position of current within total as a filled bar.
func renderBar(current, total, width int) string {
	if total == 0 || width <= 0 {
		return ""
	}

	filled := int(float64(current) / float64(total) * float64(width))
	filled = min(max(filled, 1), width)

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return styles.PagerBarStyle.Render(bar)
}
