package eventbus

import (
	"errors"
	"sync"
	"time"

	"github.com/nile-cgpa/terminal/internal/models"
)

// UIEvent represents events sent from UI to Core
type UIEvent interface {
	UIEvent()
}

// CoreEvent represents events sent from Core to UI
type CoreEvent interface {
	CoreEvent()
}

// SubmitEvent - UI submits the input line (Enter)
type SubmitEvent struct {
	Input string
}

func (e SubmitEvent) UIEvent() {}

// InterruptEvent - UI received Ctrl+C while the wizard or a request was active
type InterruptEvent struct{}

func (e InterruptEvent) UIEvent() {}

type HistoryDirection int

const (
	HistoryUp HistoryDirection = iota
	HistoryDown
)

// HistoryEvent - UI asks to move through command history
type HistoryEvent struct {
	Direction HistoryDirection
}

func (e HistoryEvent) UIEvent() {}

// InputEditedEvent - user typed into the input line while navigating history
type InputEditedEvent struct{}

func (e InputEditedEvent) UIEvent() {}

// StateUpdateEvent - Core pushes state changes to UI
type StateUpdateEvent struct {
	Lines      []models.Line
	Loading    bool
	Wizard     models.WizardMode
	Navigating bool
	// SetInput asks the UI to replace its input line with Input.
	SetInput bool
	Input    string
}

func (e StateUpdateEvent) CoreEvent() {}

// EventBusError represents errors in event processing
type EventBusError struct {
	Operation string
	Err       error
	Timestamp time.Time
}

func (e EventBusError) Error() string {
	return e.Operation + ": " + e.Err.Error()
}

var (
	ErrCircuitOpen  = errors.New("circuit breaker is open")
	ErrUIToCoreFull = errors.New("UI to Core channel is full")
	ErrCoreToUIFull = errors.New("Core to UI channel is full")
	ErrClosed       = errors.New("event bus is closed")
)

const (
	bufferSize          = 100
	breakerMaxFailures  = 5
	breakerResetTimeout = 30 * time.Second
)

// EventBus carries events between the UI and the core over two buffered
// channels. Repeated send failures open a circuit breaker.
type EventBus struct {
	mu             sync.RWMutex
	closed         bool
	uiToCore       chan UIEvent
	coreToUI       chan CoreEvent
	errorCallback  func(EventBusError)
	circuitBreaker *CircuitBreaker
}

func NewEventBus() *EventBus {
	return &EventBus{
		uiToCore:       make(chan UIEvent, bufferSize),
		coreToUI:       make(chan CoreEvent, bufferSize),
		circuitBreaker: NewCircuitBreaker(breakerMaxFailures, breakerResetTimeout),
	}
}

func (eb *EventBus) SetErrorCallback(callback func(EventBusError)) {
	eb.errorCallback = callback
}

func (eb *EventBus) reportError(operation string, err error) {
	busError := EventBusError{
		Operation: operation,
		Err:       err,
		Timestamp: time.Now(),
	}

	eb.circuitBreaker.RecordFailure()

	if eb.errorCallback != nil {
		eb.errorCallback(busError)
	}
}

// SendToCore queues a UI event for the core. It never blocks.
func (eb *EventBus) SendToCore(event UIEvent) error {
	return send(eb, eb.uiToCore, event, "SendToCore", ErrUIToCoreFull)
}

// SendToUI queues a core event for the UI. It never blocks.
func (eb *EventBus) SendToUI(event CoreEvent) error {
	return send(eb, eb.coreToUI, event, "SendToUI", ErrCoreToUIFull)
}

func send[E any](eb *EventBus, ch chan E, event E, operation string, errFull error) error {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	if eb.closed {
		return ErrClosed
	}

	if eb.circuitBreaker.IsOpen() {
		eb.reportError(operation, ErrCircuitOpen)
		return ErrCircuitOpen
	}

	select {
	case ch <- event:
		eb.circuitBreaker.RecordSuccess()
		return nil
	default:
		eb.reportError(operation, errFull)
		return errFull
	}
}

func (eb *EventBus) UIToCore() <-chan UIEvent {
	return eb.uiToCore
}

func (eb *EventBus) CoreToUI() <-chan CoreEvent {
	return eb.coreToUI
}

func (eb *EventBus) GetCircuitBreakerState() CircuitBreakerState {
	return eb.circuitBreaker.State()
}

// Close closes both channels. Sends after Close return ErrClosed.
func (eb *EventBus) Close() {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	if eb.closed {
		return
	}
	eb.closed = true
	close(eb.uiToCore)
	close(eb.coreToUI)
}
