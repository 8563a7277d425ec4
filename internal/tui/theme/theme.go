package theme

import "github.com/charmbracelet/lipgloss"

// Colors are kept as hex strings because the surface compositor blends them;
// lipgloss styles below wrap the same values for chrome drawn outside the
// canvas (dialogs, toasts).
const (
	BaseBg    = "#11111b"
	PanelBg   = "#1e1e2e"
	SurfaceBg = "#313244"
	Accent    = "#cba6f7"
	Accent2   = "#89b4fa"
	Teal      = "#94e2d5"
	Peach     = "#fab387"
	Success   = "#a6e3a1"
	Warn      = "#f9e2af"
	Error     = "#f38ba8"
	Text      = "#cdd6f4"
	SubText   = "#a6adc8"
	Dim       = "#6c7086"
	Overlay   = "#45475a"
	Lavender  = "#b4befe"
)

var (
	TextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(Text))
	SubTextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(SubText))
	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(Dim))
	KeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(Teal)).
			Bold(true)
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(Error)).
			Bold(true)
	ModalStyle = lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color(Accent))
	ToastSuccessStyle = lipgloss.NewStyle().
				Background(lipgloss.Color(Success)).
				Foreground(lipgloss.Color(BaseBg)).
				Padding(0, 1)
	ToastErrorStyle = lipgloss.NewStyle().
			Background(lipgloss.Color(Error)).
			Foreground(lipgloss.Color(BaseBg)).
			Padding(0, 1)
	ToastWarningStyle = lipgloss.NewStyle().
				Background(lipgloss.Color(Warn)).
				Foreground(lipgloss.Color(BaseBg)).
				Padding(0, 1)
	ToastInfoStyle = lipgloss.NewStyle().
			Background(lipgloss.Color(Accent2)).
			Foreground(lipgloss.Color(BaseBg)).
			Padding(0, 1)
)

var Logo = lipgloss.NewStyle().Foreground(lipgloss.Color(Success)).Bold(true).Render("▦ ") +
	lipgloss.NewStyle().Foreground(lipgloss.Color(Accent)).Bold(true).Render("grid") +
	lipgloss.NewStyle().Foreground(lipgloss.Color(Accent2)).Bold(true).Render("mux")
