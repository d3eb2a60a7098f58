package styles

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	Marquee    = lipgloss.Color("#01B4E4")
	SlateDark  = lipgloss.Color("#1F2937")
	SlateLight = lipgloss.Color("#374151")
	DimGray    = lipgloss.Color("#6B7280")
	LightGray  = lipgloss.Color("#9CA3AF")
	White      = lipgloss.Color("#F9FAFB")
	Green      = lipgloss.Color("#10B981")
	Red        = lipgloss.Color("#EF4444")
	Gold       = lipgloss.Color("#F5C518")
)

// Borders
var (
	ActiveBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Marquee).
			Padding(0, 1)

	InactiveBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DimGray).
			Padding(0, 1)
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	AccentStyle = lipgloss.NewStyle().
			Foreground(Marquee)

	RatingStyle = lipgloss.NewStyle().
			Foreground(Gold)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Green)

	HighlightStyle = lipgloss.NewStyle().
			Foreground(White).
			Background(Marquee).
			Padding(0, 1)

	MatchStyle = lipgloss.NewStyle().
			Foreground(Marquee).
			Underline(true)
)

// Tab styles
var (
	ActiveTab = lipgloss.NewStyle().
			Foreground(SlateDark).
			Background(Marquee).
			Bold(true).
			Padding(0, 2)

	InactiveTab = lipgloss.NewStyle().
			Foreground(LightGray).
			Background(SlateLight).
			Padding(0, 2)
)

// Layout
var (
	HeaderStyle = lipgloss.NewStyle().
			MarginBottom(1)

	FooterStyle = lipgloss.NewStyle().
			Foreground(DimGray).
			MarginTop(1)

	SelectedRow = lipgloss.NewStyle().
			Foreground(White).
			Background(SlateLight).
			Bold(true)
)

// Spinner frames (dots pattern)
var SpinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
