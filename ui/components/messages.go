package components

import (
	"strings"

	"github.com/nile-cgpa/terminal/internal/models"
	"github.com/nile-cgpa/terminal/ui/styles"
)

// RenderLines renders transcript lines; command echoes and output use
// different colors.
func RenderLines(lines []models.Line, width int) string {
	var b strings.Builder

	commandStyle := styles.CommandStyle()
	outputStyle := styles.OutputStyle()
	if width > 0 {
		commandStyle = commandStyle.Width(width)
		outputStyle = outputStyle.Width(width)
	}

	for i, line := range lines {
		if i > 0 {
			b.WriteString("\n")
		}
		switch line.Kind {
		case models.Command:
			b.WriteString(commandStyle.Render(line.Text))
		default:
			b.WriteString(outputStyle.Render(line.Text))
		}
	}

	return b.String()
}
