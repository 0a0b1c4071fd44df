package core

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/nile-cgpa/terminal/internal/client"
	"github.com/nile-cgpa/terminal/internal/eventbus"
	"github.com/nile-cgpa/terminal/internal/models"
)

// Fetcher performs the CGPA request. *client.Client implements it.
type Fetcher interface {
	Submit(ctx context.Context, requestID string, creds client.Credentials) ([]client.Record, error)
}

// settlement carries a finished request back to the event loop.
type settlement struct {
	req     *Request
	records []client.Record
	err     error
	elapsed time.Duration
}

// Service runs the terminal on a single goroutine. UI events arrive over the
// event bus; state snapshots are pushed back after every change.
type Service struct {
	terminal *Terminal
	fetcher  Fetcher
	eventBus *eventbus.EventBus
	logger   *zap.Logger

	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	settled chan settlement

	// owned by the event loop
	inFlightCancel context.CancelFunc
}

func NewService(terminal *Terminal, fetcher Fetcher, eb *eventbus.EventBus, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())

	eb.SetErrorCallback(func(err eventbus.EventBusError) {
		logger.Warn("event bus error",
			zap.String("operation", err.Operation),
			zap.Stringer("breaker", eb.GetCircuitBreakerState()),
			zap.Error(err.Err))
	})

	return &Service{
		terminal: terminal,
		fetcher:  fetcher,
		eventBus: eb,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
		settled:  make(chan settlement, 1),
	}
}

// Start runs the core logic in a goroutine
func (s *Service) Start() {
	// Send initial state to UI immediately
	s.pushState(nil)
	s.wg.Add(1)
	go s.eventLoop()
	s.logger.Info("terminal service started")
}

// Stop cancels any in-flight request and waits for every goroutine to exit.
func (s *Service) Stop() {
	s.cancel()
	s.wg.Wait()
	s.logger.Info("terminal service stopped")
}

func (s *Service) Terminal() *Terminal {
	return s.terminal
}

func (s *Service) eventLoop() {
	defer s.wg.Done()
	for {
		select {
		case <-s.ctx.Done():
			return
		case event, ok := <-s.eventBus.UIToCore():
			if !ok {
				return
			}
			s.handleUIEvent(event)
		case result := <-s.settled:
			s.handleSettlement(result)
		}
	}
}

func (s *Service) handleUIEvent(event eventbus.UIEvent) {
	switch e := event.(type) {
	case eventbus.SubmitEvent:
		s.submit(e.Input)
	case eventbus.InterruptEvent:
		s.interrupt()
	case eventbus.HistoryEvent:
		s.navigate(e.Direction)
	case eventbus.InputEditedEvent:
		s.terminal.InputEdited()
		s.pushState(nil)
	}
}

func (s *Service) submit(input string) {
	if s.terminal.IsLoading() {
		s.logger.Debug("submission rejected while loading")
		return
	}

	wizard := s.terminal.Wizard()
	req := s.terminal.Submit(input)
	if wizard == models.Idle {
		s.logger.Debug("command dispatched", zap.String("command", commandWord(input)))
	} else {
		s.logger.Debug("wizard input accepted", zap.Stringer("step", wizard))
	}

	empty := ""
	s.pushState(&empty)

	if req != nil {
		s.startFetch(req)
	}
}

func (s *Service) interrupt() {
	if !s.terminal.Interrupt() {
		return
	}
	if s.inFlightCancel != nil {
		s.inFlightCancel()
		s.inFlightCancel = nil
	}
	s.logger.Info("session interrupted")

	empty := ""
	s.pushState(&empty)
}

func (s *Service) navigate(direction eventbus.HistoryDirection) {
	var (
		text string
		ok   bool
	)
	switch direction {
	case eventbus.HistoryUp:
		text, ok = s.terminal.HistoryUp()
	case eventbus.HistoryDown:
		text, ok = s.terminal.HistoryDown()
	}
	if !ok {
		return
	}
	s.pushState(&text)
}

// startFetch runs the request on its own goroutine and reports back through
// s.settled, so that all state changes stay on the event loop.
func (s *Service) startFetch(req *Request) {
	ctx, cancel := context.WithCancel(s.ctx)
	s.inFlightCancel = cancel

	s.logger.Info("fetching cgpa",
		zap.String("request_id", req.ID),
		zap.Bool("from_env", req.FromEnv))

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer cancel()

		start := time.Now()
		records, err := s.fetcher.Submit(ctx, req.ID, req.Credentials)
		result := settlement{req: req, records: records, err: err, elapsed: time.Since(start)}

		select {
		case s.settled <- result:
		case <-s.ctx.Done():
		}
	}()
}

func (s *Service) handleSettlement(result settlement) {
	fields := []zap.Field{
		zap.String("request_id", result.req.ID),
		zap.Duration("elapsed", result.elapsed),
		zap.Int("records", len(result.records)),
	}
	if result.err != nil {
		fields = append(fields, zap.Error(result.err))
	}

	if !s.terminal.Settle(result.req, result.records, result.err) {
		s.logger.Info("dropped result of interrupted request", fields...)
		return
	}
	s.inFlightCancel = nil
	s.logger.Info("cgpa request settled", fields...)
	s.pushState(nil)
}

// pushState sends a full snapshot to the UI. A non-nil input replaces the
// UI's input line.
func (s *Service) pushState(input *string) {
	snap := s.terminal.Snapshot()
	event := eventbus.StateUpdateEvent{
		Lines:      snap.Lines,
		Loading:    snap.Loading,
		Wizard:     snap.Wizard,
		Navigating: snap.Navigating,
	}
	if input != nil {
		event.SetInput = true
		event.Input = *input
	}

	if err := s.eventBus.SendToUI(event); err != nil {
		s.logger.Warn("failed to send state to UI", zap.Error(err))
	}
}

// commandWord returns the first word of a command line. Arguments are left
// out of logs since they may carry credentials.
func commandWord(input string) string {
	input = strings.TrimSpace(input)
	for i, r := range input {
		if r == ' ' || r == '\t' || r == '=' {
			return input[:i]
		}
	}
	return input
}
