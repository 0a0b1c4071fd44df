package models

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
)

// WizardMode is the state of the credential entry sub-mode
type WizardMode int

const (
	Idle WizardMode = iota
	AwaitingStudentID
	AwaitingPassword
)

func (w WizardMode) String() string {
	switch w {
	case AwaitingStudentID:
		return "student_id"
	case AwaitingPassword:
		return "password"
	default:
		return "idle"
	}
}

// AppModel represents the UI state - only local UI concerns
type AppModel struct {
	Lines        []Line          // Transcript snapshot from core
	Input        textinput.Model // Prompt line
	Transcript   viewport.Model  // Scrollback pane
	Spinner      spinner.Model   // Shown while a request is in flight
	Status       string          // Status bar text
	Loading      bool            // Loading state from core
	Wizard       WizardMode      // Credential wizard state from core
	Navigating   bool            // Whether history navigation is active
	Width        int             // Terminal width
	Height       int             // Terminal height
	ServiceReady bool            // Whether the CGPA service has a server configured
	ServerURL    string
}
