package update

import (
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nile-cgpa/terminal/internal/eventbus"
	"github.com/nile-cgpa/terminal/internal/models"
)

func newTestModel() *models.AppModel {
	m := &models.AppModel{
		Input:        textinput.New(),
		Transcript:   viewport.New(80, 20),
		Spinner:      spinner.New(),
		ServiceReady: true,
	}
	m.Input.Focus()
	SetWizardMode(m, models.Idle)
	return m
}

func typeText(m *models.AppModel, eb *eventbus.EventBus, text string) {
	for _, r := range text {
		HandleKeyMsgWithEventBus(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}, eb)
	}
}

func nextUIEvent(t *testing.T, eb *eventbus.EventBus) eventbus.UIEvent {
	t.Helper()
	select {
	case ev := <-eb.UIToCore():
		return ev
	default:
		t.Fatal("expected a UI event")
		return nil
	}
}

func TestCtrlCQuitsWhenIdle(t *testing.T) {
	eb := eventbus.NewEventBus()
	defer eb.Close()
	m := newTestModel()

	cmd := HandleKeyMsgWithEventBus(m, tea.KeyMsg{Type: tea.KeyCtrlC}, eb)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, eb.UIToCore())
}

func TestEscQuitsOnlyWhenIdle(t *testing.T) {
	eb := eventbus.NewEventBus()
	defer eb.Close()
	m := newTestModel()

	cmd := HandleKeyMsgWithEventBus(m, tea.KeyMsg{Type: tea.KeyEsc}, eb)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	SetWizardMode(m, models.AwaitingStudentID)
	assert.Nil(t, HandleKeyMsgWithEventBus(m, tea.KeyMsg{Type: tea.KeyEsc}, eb))
}

func TestCtrlCInterruptsWizard(t *testing.T) {
	eb := eventbus.NewEventBus()
	defer eb.Close()
	m := newTestModel()
	SetWizardMode(m, models.AwaitingPassword)
	typeText(m, eb, "half")

	cmd := HandleKeyMsgWithEventBus(m, tea.KeyMsg{Type: tea.KeyCtrlC}, eb)
	assert.Nil(t, cmd)
	assert.Equal(t, eventbus.InterruptEvent{}, nextUIEvent(t, eb))
	assert.Empty(t, m.Input.Value())
}

func TestCtrlCInterruptsLoading(t *testing.T) {
	eb := eventbus.NewEventBus()
	defer eb.Close()
	m := newTestModel()
	m.Loading = true

	assert.Nil(t, HandleKeyMsgWithEventBus(m, tea.KeyMsg{Type: tea.KeyCtrlC}, eb))
	assert.Equal(t, eventbus.InterruptEvent{}, nextUIEvent(t, eb))
}

func TestEnterSubmitsInput(t *testing.T) {
	eb := eventbus.NewEventBus()
	defer eb.Close()
	m := newTestModel()
	typeText(m, eb, "echo $USER")

	HandleKeyMsgWithEventBus(m, tea.KeyMsg{Type: tea.KeyEnter}, eb)
	assert.Equal(t, eventbus.SubmitEvent{Input: "echo $USER"}, nextUIEvent(t, eb))
	assert.Empty(t, m.Input.Value())
}

func TestKeysIgnoredWhileLoading(t *testing.T) {
	eb := eventbus.NewEventBus()
	defer eb.Close()
	m := newTestModel()
	m.Loading = true

	typeText(m, eb, "help")
	HandleKeyMsgWithEventBus(m, tea.KeyMsg{Type: tea.KeyEnter}, eb)
	HandleKeyMsgWithEventBus(m, tea.KeyMsg{Type: tea.KeyUp}, eb)

	assert.Empty(t, m.Input.Value())
	assert.Empty(t, eb.UIToCore())
}

func TestHistoryKeys(t *testing.T) {
	eb := eventbus.NewEventBus()
	defer eb.Close()
	m := newTestModel()

	HandleKeyMsgWithEventBus(m, tea.KeyMsg{Type: tea.KeyUp}, eb)
	HandleKeyMsgWithEventBus(m, tea.KeyMsg{Type: tea.KeyDown}, eb)

	assert.Equal(t, eventbus.HistoryEvent{Direction: eventbus.HistoryUp}, nextUIEvent(t, eb))
	assert.Equal(t, eventbus.HistoryEvent{Direction: eventbus.HistoryDown}, nextUIEvent(t, eb))
}

func TestEditingWhileNavigatingReportsEdit(t *testing.T) {
	eb := eventbus.NewEventBus()
	defer eb.Close()
	m := newTestModel()
	m.Navigating = true

	typeText(m, eb, "x")
	assert.Equal(t, eventbus.InputEditedEvent{}, nextUIEvent(t, eb))
	assert.False(t, m.Navigating)

	typeText(m, eb, "y")
	assert.Empty(t, eb.UIToCore())
}

func TestHandleCoreEventAppliesState(t *testing.T) {
	m := newTestModel()
	lines := []models.Line{{ID: 1, Text: "$ cgpa", Kind: models.Command}, {ID: 2, Text: "Student ID: 1"}}

	HandleCoreEvent(m, CoreEventMsg{Event: eventbus.StateUpdateEvent{
		Lines:    lines,
		Wizard:   models.AwaitingPassword,
		SetInput: true,
		Input:    "",
	}})

	assert.Equal(t, lines, m.Lines)
	assert.Equal(t, models.AwaitingPassword, m.Wizard)
	assert.Equal(t, "Password: ", m.Input.Prompt)
	assert.Equal(t, textinput.EchoPassword, m.Input.EchoMode)
	assert.Equal(t, '*', m.Input.EchoCharacter)
	assert.Equal(t, "Entering credentials (Ctrl+C to cancel)", m.Status)
	assert.True(t, m.Input.Focused())
}

func TestHandleCoreEventReplacesInput(t *testing.T) {
	m := newTestModel()
	m.Input.SetValue("draft")

	HandleCoreEvent(m, CoreEventMsg{Event: eventbus.StateUpdateEvent{Navigating: true}})
	assert.Equal(t, "draft", m.Input.Value())

	HandleCoreEvent(m, CoreEventMsg{Event: eventbus.StateUpdateEvent{Navigating: true, SetInput: true, Input: "help"}})
	assert.Equal(t, "help", m.Input.Value())
	assert.True(t, m.Navigating)
	assert.Equal(t, "$ ", m.Input.Prompt)
	assert.Equal(t, textinput.EchoNormal, m.Input.EchoMode)
}

func TestHandleCoreEventLoading(t *testing.T) {
	m := newTestModel()

	cmd := HandleCoreEvent(m, CoreEventMsg{Event: eventbus.StateUpdateEvent{Loading: true}})
	assert.NotNil(t, cmd, "spinner starts when loading begins")
	assert.False(t, m.Input.Focused())
	assert.Equal(t, "Fetching CGPA", m.Status)

	assert.Nil(t, HandleCoreEvent(m, CoreEventMsg{Event: eventbus.StateUpdateEvent{Loading: true}}))

	HandleCoreEvent(m, CoreEventMsg{Event: eventbus.StateUpdateEvent{}})
	assert.False(t, m.Loading)
	assert.True(t, m.Input.Focused())
	assert.Equal(t, "Ready", m.Status)
}

func TestHandleTickMsgStopsWhenIdle(t *testing.T) {
	m := newTestModel()
	assert.Nil(t, HandleTickMsg(m, spinner.TickMsg{}))
}

func TestHandleWindowSizeMsg(t *testing.T) {
	m := newTestModel()
	HandleWindowSizeMsg(m, tea.WindowSizeMsg{Width: 100, Height: 30})

	assert.Equal(t, 100, m.Width)
	assert.Equal(t, 100, m.Transcript.Width)
	assert.Equal(t, 27, m.Transcript.Height)
}
