package app

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/nile-cgpa/terminal/internal/client"
	"github.com/nile-cgpa/terminal/internal/config"
	"github.com/nile-cgpa/terminal/internal/core"
	"github.com/nile-cgpa/terminal/internal/dispatcher"
	"github.com/nile-cgpa/terminal/internal/eventbus"
	"github.com/nile-cgpa/terminal/internal/models"
	"github.com/nile-cgpa/terminal/internal/update"
	"github.com/nile-cgpa/terminal/ui/styles"
)

// Application manages the complete application lifecycle
type Application struct {
	config     *config.Config
	logger     *zap.Logger
	eventBus   *eventbus.EventBus
	dispatcher *dispatcher.EventDispatcher
	service    *core.Service
	model      *AppModel
}

type AppModel struct {
	appModel   models.AppModel
	dispatcher *dispatcher.EventDispatcher
}

// NewApplication wires the terminal core to the UI. serverURL is the backend
// the CGPA client talks to; it may be empty.
func NewApplication(cfg *config.Config, serverURL string, logger *zap.Logger) (*Application, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	// Create event bus
	eb := eventbus.NewEventBus()

	// Create dispatcher
	disp := dispatcher.NewEventDispatcher(eb)

	cgpaClient := client.New(serverURL, client.WithLogger(logger.Named("client")))
	service := core.NewService(core.NewTerminal(), cgpaClient, eb, logger.Named("core"))

	model := &AppModel{
		appModel:   createInitialAppModel(serverURL),
		dispatcher: disp,
	}

	logger.Info("application created",
		zap.String("profile", cfg.ActiveProfile),
		zap.String("server_url", serverURL))

	return &Application{
		config:     cfg,
		logger:     logger,
		eventBus:   eb,
		dispatcher: disp,
		service:    service,
		model:      model,
	}, nil
}

func (app *Application) Start() error {
	// Start background services
	app.service.Start()

	// Run UI
	p := tea.NewProgram(app.model, tea.WithAltScreen())
	_, err := p.Run()

	return err
}

func (app *Application) Stop() {
	app.service.Stop()
	app.dispatcher.Stop()
	app.eventBus.Close()
	_ = app.logger.Sync()
}

func createInitialAppModel(serverURL string) models.AppModel {
	input := textinput.New()
	input.PromptStyle = styles.PromptStyle()
	input.TextStyle = styles.InputTextStyle()
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = styles.LoadingStyle()

	// No initial lines in UI - they come from core as single source of truth
	appModel := models.AppModel{
		Lines:        make([]models.Line, 0),
		Input:        input,
		Transcript:   viewport.New(80, 20),
		Spinner:      spin,
		Status:       "Ready",
		ServiceReady: serverURL != "",
		ServerURL:    serverURL,
	}
	update.SetWizardMode(&appModel, models.Idle)
	return appModel
}
