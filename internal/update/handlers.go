package update

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nile-cgpa/terminal/internal/eventbus"
	"github.com/nile-cgpa/terminal/internal/models"
	"github.com/nile-cgpa/terminal/ui/components"
)

// HandleKeyMsgWithEventBus handles keyboard input using event bus
func HandleKeyMsgWithEventBus(appModel *models.AppModel, keyMsg tea.KeyMsg, eb *eventbus.EventBus) tea.Cmd {
	switch keyMsg.Type {
	case tea.KeyCtrlC:
		if appModel.Wizard != models.Idle || appModel.Loading {
			send(appModel, eb, eventbus.InterruptEvent{})
			appModel.Input.SetValue("")
			return nil
		}
		return tea.Quit
	case tea.KeyEsc:
		if appModel.Wizard == models.Idle && !appModel.Loading {
			return tea.Quit
		}
		return nil
	case tea.KeyPgUp, tea.KeyPgDown:
		var cmd tea.Cmd
		appModel.Transcript, cmd = appModel.Transcript.Update(keyMsg)
		return cmd
	}

	// Input is disabled until the request settles
	if appModel.Loading {
		return nil
	}

	switch keyMsg.Type {
	case tea.KeyEnter:
		input := appModel.Input.Value()
		if send(appModel, eb, eventbus.SubmitEvent{Input: input}) {
			appModel.Input.SetValue("")
			appModel.Navigating = false
		}
		return nil
	case tea.KeyUp:
		send(appModel, eb, eventbus.HistoryEvent{Direction: eventbus.HistoryUp})
		return nil
	case tea.KeyDown:
		send(appModel, eb, eventbus.HistoryEvent{Direction: eventbus.HistoryDown})
		return nil
	}

	before := appModel.Input.Value()
	var cmd tea.Cmd
	appModel.Input, cmd = appModel.Input.Update(keyMsg)
	if appModel.Navigating && appModel.Input.Value() != before {
		if send(appModel, eb, eventbus.InputEditedEvent{}) {
			appModel.Navigating = false
		}
	}
	return cmd
}

func send(appModel *models.AppModel, eb *eventbus.EventBus, event eventbus.UIEvent) bool {
	if err := eb.SendToCore(event); err != nil {
		appModel.Status = "Error sending event: " + err.Error()
		return false
	}
	return true
}

// CoreEventMsg wraps core events for Bubble Tea
type CoreEventMsg struct {
	Event eventbus.CoreEvent
}

// HandleCoreEvent processes events from the core
func HandleCoreEvent(appModel *models.AppModel, coreEventMsg CoreEventMsg) tea.Cmd {
	event, ok := coreEventMsg.Event.(eventbus.StateUpdateEvent)
	if !ok {
		return nil
	}

	wasLoading := appModel.Loading
	appModel.Lines = event.Lines
	appModel.Loading = event.Loading
	appModel.Navigating = event.Navigating
	SetWizardMode(appModel, event.Wizard)

	if event.SetInput {
		appModel.Input.SetValue(event.Input)
		appModel.Input.CursorEnd()
	}

	appModel.Status = statusText(appModel)
	RefreshTranscript(appModel)

	if appModel.Loading {
		appModel.Input.Blur()
		if !wasLoading {
			return appModel.Spinner.Tick
		}
		return nil
	}
	return appModel.Input.Focus()
}

// SetWizardMode switches the prompt label and masks the password step.
func SetWizardMode(appModel *models.AppModel, mode models.WizardMode) {
	appModel.Wizard = mode
	appModel.Input.Prompt = components.PromptLabel(mode) + " "
	if mode == models.AwaitingPassword {
		appModel.Input.EchoMode = textinput.EchoPassword
		appModel.Input.EchoCharacter = '*'
	} else {
		appModel.Input.EchoMode = textinput.EchoNormal
	}
}

func statusText(appModel *models.AppModel) string {
	switch {
	case appModel.Loading:
		return "Fetching CGPA"
	case appModel.Wizard != models.Idle:
		return "Entering credentials (Ctrl+C to cancel)"
	case !appModel.ServiceReady:
		return "Ready (no server configured)"
	default:
		return "Ready"
	}
}

// RefreshTranscript re-renders the transcript into the viewport and keeps it
// pinned to the newest line.
func RefreshTranscript(appModel *models.AppModel) {
	appModel.Transcript.SetContent(components.RenderLines(appModel.Lines, appModel.Width))
	appModel.Transcript.GotoBottom()
}

func HandleWindowSizeMsg(appModel *models.AppModel, sizeMsg tea.WindowSizeMsg) {
	appModel.Width = sizeMsg.Width
	appModel.Height = sizeMsg.Height
	appModel.Input.Width = max(1, sizeMsg.Width-len(appModel.Input.Prompt)-components.InputPadding)
	appModel.Transcript.Width = sizeMsg.Width
	appModel.Transcript.Height = max(1, sizeMsg.Height-components.ChromeHeight)
	RefreshTranscript(appModel)
}

func HandleTickMsg(appModel *models.AppModel, msg spinner.TickMsg) tea.Cmd {
	// Only animate while a request is in flight
	if !appModel.Loading {
		return nil
	}
	var cmd tea.Cmd
	appModel.Spinner, cmd = appModel.Spinner.Update(msg)
	return cmd
}
