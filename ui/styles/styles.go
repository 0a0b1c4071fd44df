package styles

import "github.com/charmbracelet/lipgloss"

var (
	commandColor = lipgloss.Color("39")  // blue
	outputColor  = lipgloss.Color("42")  // green
	loadingColor = lipgloss.Color("220") // yellow
)

func HeaderStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("250")).
		Background(lipgloss.Color("237")).
		Padding(0, 1).
		Width(width)
}

// HeaderDot renders one of the window-control dots in the header bar.
func HeaderDot(color string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(color)).
		Background(lipgloss.Color("237")).
		Render("●")
}

func PromptStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(commandColor)
}

func InputTextStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(outputColor)
}

func InputStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Padding(0, 1).
		Width(width)
}

func StatusStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Background(lipgloss.Color("235")).
		Padding(0, 1).
		Width(width)
}

func CommandStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(commandColor).
		Padding(0, 1)
}

func OutputStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(outputColor).
		Padding(0, 1)
}

func LoadingStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(loadingColor).
		MarginLeft(1)
}
