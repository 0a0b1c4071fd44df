package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nile-cgpa/terminal/internal/update"
	"github.com/nile-cgpa/terminal/ui/components"
)

func (m *AppModel) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.dispatcher.ListenForUIEvents(),
	)
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle core events and continue listening
	if coreEvent, ok := msg.(update.CoreEventMsg); ok {
		cmd := update.HandleCoreEvent(&m.appModel, coreEvent)
		return m, tea.Batch(cmd, m.dispatcher.ListenForUIEvents())
	}

	// Handle other events through the event bus
	eventBus := m.dispatcher.GetEventBus()
	cmd := update.HandleUpdateWithEventBus(&m.appModel, msg, eventBus)

	return m, cmd
}

func (m *AppModel) View() string {
	var b strings.Builder

	b.WriteString(components.RenderHeader(m.appModel.Width))
	b.WriteString("\n")
	b.WriteString(m.appModel.Transcript.View())
	b.WriteString("\n")
	b.WriteString(components.RenderInput(m.appModel.Input.View(), m.appModel.Loading, m.appModel.Spinner.View(), m.appModel.Width))
	b.WriteString("\n")
	b.WriteString(components.RenderStatus(m.appModel.Status, m.appModel.ServerURL, m.appModel.Width))

	return b.String()
}
