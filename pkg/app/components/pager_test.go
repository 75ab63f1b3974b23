package components

import (
	"strings"
	"testing"
)

func TestNewPager(t *testing.T) {
	p := NewPager(20, "matches")

	if p.Page() != 1 {
		t.Errorf("Expected page 1, got %d", p.Page())
	}
	if p.Pages() != 1 {
		t.Errorf("Expected 1 page for an empty set, got %d", p.Pages())
	}
	if p.HasNext() || p.HasPrev() {
		t.Error("Expected no navigation on an empty set")
	}
}

func TestPagerNavigation(t *testing.T) {
	p := NewPager(20, "matches")
	p.SetTotal(45)

	if p.Pages() != 3 {
		t.Fatalf("Expected 3 pages, got %d", p.Pages())
	}
	if p.Prev() {
		t.Error("Prev on first page should not move")
	}
	if !p.Next() || !p.Next() {
		t.Fatal("Expected to reach page 3")
	}
	if p.Page() != 3 {
		t.Errorf("Expected page 3, got %d", p.Page())
	}
	if p.Next() {
		t.Error("Next on last page should not move")
	}
	if !p.Prev() || p.Page() != 2 {
		t.Errorf("Expected page 2 after Prev, got %d", p.Page())
	}
}

func TestPagerSetTotalClamps(t *testing.T) {
	p := NewPager(10, "tags")
	p.SetTotal(100)
	p.SetPage(10)

	p.SetTotal(25)
	if p.Page() != 3 {
		t.Errorf("Expected page clamped to 3, got %d", p.Page())
	}

	p.SetTotal(0)
	if p.Page() != 1 {
		t.Errorf("Expected page clamped to 1, got %d", p.Page())
	}
}

func TestPagerSetPage(t *testing.T) {
	p := NewPager(10, "matches")
	p.SetTotal(35)

	p.SetPage(3)
	if p.Page() != 3 || !p.HasNext() || !p.HasPrev() {
		t.Errorf("Expected page 3 of 4 with both directions, got %d", p.Page())
	}
	p.SetPage(0)
	if p.Page() != 1 {
		t.Errorf("Expected page clamped to 1, got %d", p.Page())
	}

	p.SetPage(4)
	p.First()
	if p.Page() != 1 || p.Total != 35 {
		t.Errorf("Expected first page with total kept, got page %d total %d", p.Page(), p.Total)
	}
}

func TestPagerSize(t *testing.T) {
	if got := NewPager(0, "tags").Size(); got != 1 {
		t.Errorf("Expected size raised to 1, got %d", got)
	}
	if got := NewPager(25, "tags").Size(); got != 25 {
		t.Errorf("Expected size 25, got %d", got)
	}
}

func TestPagerReset(t *testing.T) {
	p := NewPager(10, "tags")
	p.SetTotal(100)
	p.Next()

	p.Reset()
	if p.Page() != 1 || p.Total != 0 {
		t.Errorf("Expected reset pager, got page %d total %d", p.Page(), p.Total)
	}
}

func TestPagerView(t *testing.T) {
	p := NewPager(20, "matches")
	p.SetTotal(45)
	p.Next()

	view := p.View()
	if !strings.Contains(view, "Page 2/3") {
		t.Errorf("Expected page indicator in view, got %q", view)
	}
	if !strings.Contains(view, "45 matches") {
		t.Errorf("Expected total in view, got %q", view)
	}
	if !strings.Contains(view, "█") {
		t.Error("Expected position bar for multiple pages")
	}

	p.SetTotal(5)
	if strings.Contains(p.View(), "█") {
		t.Error("Expected no bar for a single page")
	}
}

func TestRenderBar(t *testing.T) {
	tests := []struct {
		name    string
		current int
		total   int
		width   int
		filled  int
	}{
		{"first of four", 1, 4, 20, 5},
		{"half", 2, 4, 20, 10},
		{"last", 4, 4, 20, 20},
		{"tiny share still shows", 1, 100, 10, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := renderBar(tt.current, tt.total, tt.width)
			if got := strings.Count(bar, "█"); got != tt.filled {
				t.Errorf("Expected %d filled cells, got %d", tt.filled, got)
			}
			if got := strings.Count(bar, "░"); got != tt.width-tt.filled {
				t.Errorf("Expected %d empty cells, got %d", tt.width-tt.filled, got)
			}
		})
	}

	if renderBar(1, 0, 10) != "" {
		t.Error("Expected empty bar for zero total")
	}
}
