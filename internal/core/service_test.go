package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"github.com/nile-cgpa/terminal/internal/client"
	"github.com/nile-cgpa/terminal/internal/eventbus"
)

type fetchFunc func(ctx context.Context, requestID string, creds client.Credentials) ([]client.Record, error)

func (f fetchFunc) Submit(ctx context.Context, requestID string, creds client.Credentials) ([]client.Record, error) {
	return f(ctx, requestID, creds)
}

func startService(t *testing.T, fetcher Fetcher) (*Service, *eventbus.EventBus) {
	t.Helper()
	eb := eventbus.NewEventBus()
	svc := NewService(newTestTerminal(), fetcher, eb, zaptest.NewLogger(t))
	svc.Start()

	// Cleanups run last-in first-out: stop first, then check for leaks.
	t.Cleanup(func() { goleak.VerifyNone(t) })
	t.Cleanup(func() {
		svc.Stop()
		eb.Close()
	})

	// initial snapshot
	waitForState(t, eb, func(eventbus.StateUpdateEvent) bool { return true })
	return svc, eb
}

func waitForState(t *testing.T, eb *eventbus.EventBus, match func(eventbus.StateUpdateEvent) bool) eventbus.StateUpdateEvent {
	t.Helper()
	timeout := time.After(2 * time.Second)
	for {
		select {
		case ev := <-eb.CoreToUI():
			state, ok := ev.(eventbus.StateUpdateEvent)
			if ok && match(state) {
				return state
			}
		case <-timeout:
			t.Fatal("timed out waiting for state update")
			return eventbus.StateUpdateEvent{}
		}
	}
}

func lastLine(state eventbus.StateUpdateEvent) string {
	if len(state.Lines) == 0 {
		return ""
	}
	return state.Lines[len(state.Lines)-1].Text
}

func submit(t *testing.T, eb *eventbus.EventBus, input string) {
	t.Helper()
	require.NoError(t, eb.SendToCore(eventbus.SubmitEvent{Input: input}))
}

func TestServiceRendersFetchedRecords(t *testing.T) {
	var got client.Credentials
	fetcher := fetchFunc(func(ctx context.Context, requestID string, creds client.Credentials) ([]client.Record, error) {
		got = creds
		return []client.Record{{{Name: "cgpa", Value: "4.50"}}}, nil
	})
	_, eb := startService(t, fetcher)

	submit(t, eb, "export STUDENT_ID=7")
	submit(t, eb, "export PASSWORD=pw")
	submit(t, eb, "cgpa -e")

	state := waitForState(t, eb, func(s eventbus.StateUpdateEvent) bool {
		return !s.Loading && lastLine(s) == "   "
	})
	n := len(state.Lines)
	assert.Equal(t, "Fetching CGPA using environment credentials...", state.Lines[n-3].Text)
	assert.Equal(t, "cgpa: 4.50", state.Lines[n-2].Text)
	assert.Equal(t, client.Credentials{StudentID: "7", Password: "pw"}, got)
}

func TestServiceSubmitClearsInput(t *testing.T) {
	_, eb := startService(t, fetchFunc(func(context.Context, string, client.Credentials) ([]client.Record, error) {
		return nil, nil
	}))

	submit(t, eb, "help")
	state := waitForState(t, eb, func(s eventbus.StateUpdateEvent) bool { return lastLine(s) == HelpText })
	assert.True(t, state.SetInput)
	assert.Empty(t, state.Input)
}

func TestServiceReportsFetchError(t *testing.T) {
	_, eb := startService(t, fetchFunc(func(context.Context, string, client.Credentials) ([]client.Record, error) {
		return nil, &client.StatusError{StatusCode: 401}
	}))

	submit(t, eb, "cgpa")
	submit(t, eb, "12345")
	submit(t, eb, "secret")

	state := waitForState(t, eb, func(s eventbus.StateUpdateEvent) bool {
		return !s.Loading && lastLine(s) == "Error: HTTP error! status: 401"
	})
	assert.Equal(t, "Password: ******", state.Lines[len(state.Lines)-3].Text)
}

func TestServiceInterruptCancelsInFlightRequest(t *testing.T) {
	started := make(chan struct{})
	cancelled := make(chan error, 1)
	fetcher := fetchFunc(func(ctx context.Context, _ string, _ client.Credentials) ([]client.Record, error) {
		close(started)
		<-ctx.Done()
		cancelled <- ctx.Err()
		return nil, ctx.Err()
	})
	svc, eb := startService(t, fetcher)

	submit(t, eb, "cgpa")
	submit(t, eb, "id")
	submit(t, eb, "pw")
	waitForState(t, eb, func(s eventbus.StateUpdateEvent) bool { return s.Loading })
	<-started

	require.NoError(t, eb.SendToCore(eventbus.InterruptEvent{}))
	state := waitForState(t, eb, func(s eventbus.StateUpdateEvent) bool { return lastLine(s) == "^C" })
	assert.False(t, state.Loading)

	select {
	case err := <-cancelled:
		assert.True(t, errors.Is(err, context.Canceled))
	case <-time.After(2 * time.Second):
		t.Fatal("request context was not cancelled")
	}

	// The cancelled request's error must never reach the transcript
	submit(t, eb, "whoami")
	state = waitForState(t, eb, func(s eventbus.StateUpdateEvent) bool { return lastLine(s) == DefaultUser })
	for _, line := range state.Lines {
		assert.NotContains(t, line.Text, "context canceled")
	}
	assert.False(t, svc.Terminal().IsLoading())
}

func TestServiceHistoryNavigation(t *testing.T) {
	_, eb := startService(t, fetchFunc(func(context.Context, string, client.Credentials) ([]client.Record, error) {
		return nil, nil
	}))

	submit(t, eb, "help")
	submit(t, eb, "date")
	waitForState(t, eb, func(s eventbus.StateUpdateEvent) bool { return len(s.Lines) == 4 })

	require.NoError(t, eb.SendToCore(eventbus.HistoryEvent{Direction: eventbus.HistoryUp}))
	require.NoError(t, eb.SendToCore(eventbus.HistoryEvent{Direction: eventbus.HistoryUp}))
	state := waitForState(t, eb, func(s eventbus.StateUpdateEvent) bool { return s.SetInput && s.Input == "help" })
	assert.True(t, state.Navigating)

	require.NoError(t, eb.SendToCore(eventbus.InputEditedEvent{}))
	state = waitForState(t, eb, func(s eventbus.StateUpdateEvent) bool { return !s.Navigating })
	assert.False(t, state.SetInput)
}

func TestServiceStopAbandonsPendingRequest(t *testing.T) {
	defer goleak.VerifyNone(t)

	eb := eventbus.NewEventBus()
	defer eb.Close()

	svc := NewService(newTestTerminal(), fetchFunc(func(ctx context.Context, _ string, _ client.Credentials) ([]client.Record, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}), eb, zaptest.NewLogger(t))
	svc.Start()

	submit(t, eb, "cgpa")
	submit(t, eb, "id")
	submit(t, eb, "pw")
	waitForState(t, eb, func(s eventbus.StateUpdateEvent) bool { return s.Loading })

	svc.Stop()
	assert.True(t, svc.Terminal().IsLoading())
}

func TestCommandWord(t *testing.T) {
	tests := map[string]string{
		"help":              "help",
		"  export A=secret": "export",
		"PASSWORD=hunter2":  "PASSWORD",
		"cgpa\t-e":          "cgpa",
		"":                  "",
	}
	for input, expected := range tests {
		assert.Equal(t, expected, commandWord(input), input)
	}
}
