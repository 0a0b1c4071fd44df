package components

import (
	"github.com/nile-cgpa/terminal/internal/models"
	"github.com/nile-cgpa/terminal/ui/styles"
)

const (
	// ChromeHeight is the number of rows taken by header, input and status.
	ChromeHeight = 3
	InputPadding = 2
)

// PromptLabel is the label shown in front of the input line.
func PromptLabel(mode models.WizardMode) string {
	switch mode {
	case models.AwaitingStudentID:
		return "Student ID:"
	case models.AwaitingPassword:
		return "Password:"
	default:
		return "$"
	}
}

// RenderInput renders the prompt line, or the loading indicator while a
// request is in flight.
func RenderInput(inputView string, loading bool, spinnerView string, width int) string {
	inputStyle := styles.InputStyle(width)
	if loading {
		return inputStyle.Render(styles.LoadingStyle().Render(spinnerView + " Loading..."))
	}
	return inputStyle.Render(inputView)
}
