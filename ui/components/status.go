package components

import (
	"github.com/nile-cgpa/terminal/ui/styles"
)

const headerTitle = "NILE CGPA Terminal"

func RenderHeader(width int) string {
	dots := styles.HeaderDot("196") + " " + styles.HeaderDot("220") + " " + styles.HeaderDot("42")
	return styles.HeaderStyle(width).Render(dots + "  " + headerTitle)
}

func RenderStatus(status string, serverURL string, width int) string {
	statusStyle := styles.StatusStyle(width)

	statusContent := status
	if serverURL != "" {
		statusContent += " | " + serverURL
	}

	return statusStyle.Render(statusContent)
}
