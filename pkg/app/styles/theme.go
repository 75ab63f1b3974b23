package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Color palette
	Primary    = lipgloss.Color("#FF6B9D")
	Secondary  = lipgloss.Color("#C792EA")
	Success    = lipgloss.Color("#C3E88D")
	Warning    = lipgloss.Color("#FFCB6B")
	Error      = lipgloss.Color("#F07178")
	Info       = lipgloss.Color("#82AAFF")
	Muted      = lipgloss.Color("#546E7A")
	Background = lipgloss.Color("#263238")
	Foreground = lipgloss.Color("#EEFFFF")
	Accent     = lipgloss.Color("#89DDFF")

	RoundedBorder = lipgloss.RoundedBorder()
	ThickBorder   = lipgloss.ThickBorder()
)

// Base styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	HeaderStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true).
			MarginBottom(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(Secondary).
			Italic(true)

	TextStyle = lipgloss.NewStyle().
			Foreground(Foreground)

	MutedStyle = lipgloss.NewStyle().
			Foreground(Muted)

	LabelStyle = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true).
			Width(12)

	TagStyle = lipgloss.NewStyle().
			Foreground(Accent)

	// Selected line in plain lists (tags tab)
	SelectedStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	CardStyle = lipgloss.NewStyle().
			Border(RoundedBorder).
			BorderForeground(Secondary).
			Padding(0, 2)

	ActiveCardStyle = lipgloss.NewStyle().
			Border(ThickBorder).
			BorderForeground(Primary).
			Padding(0, 2)

	// Entry status styles
	StatusFinished = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	StatusOngoing = lipgloss.NewStyle().
			Foreground(Info).
			Bold(true)

	StatusUpcoming = lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	PagerStyle = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	PagerBarStyle = lipgloss.NewStyle().
			Foreground(Primary)

	ActiveTabStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Background(lipgloss.Color("#37474F")).
			Padding(0, 2).
			Bold(true)

	InactiveTabStyle = lipgloss.NewStyle().
				Foreground(Muted).
				Padding(0, 2)

	HelpStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true).
			MarginTop(1)

	InputStyle = lipgloss.NewStyle().
			Border(RoundedBorder).
			BorderForeground(Secondary).
			Padding(0, 1)

	FocusedInputStyle = lipgloss.NewStyle().
				Border(RoundedBorder).
				BorderForeground(Primary).
				Padding(0, 1)
)

// StatusStyle picks the style for an entry status as found in the dataset.
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case "FINISHED", "finished":
		return StatusFinished
	case "ONGOING", "ongoing":
		return StatusOngoing
	case "UPCOMING", "upcoming":
		return StatusUpcoming
	default:
		return MutedStyle
	}
}
