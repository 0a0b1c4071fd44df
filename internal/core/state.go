package core

import (
	"regexp"
	"slices"
	"strings"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/nile-cgpa/terminal/internal/client"
	"github.com/nile-cgpa/terminal/internal/models"
)

const (
	msgUsageExport      = "Usage: export VARIABLE=value"
	msgCredentialPrompt = "Enter your credentials to fetch CGPA:"
	msgMissingEnvCreds  = "Error: STUDENT_ID and PASSWORD environment variables must be set when using -e flag"
	msgSetEnvCreds      = "Set them with: export STUDENT_ID=your_student_id && export PASSWORD=yourpassword"
	msgFetchingEnv      = "Fetching CGPA using environment credentials..."
	msgFetching         = "Fetching CGPA..."
	msgEmptyPassword    = "Error: Password cannot be empty. Please try again."
	msgInterrupt        = "^C"
	envFlag             = "-e"
)

// MissingEnvCredentialLines is printed when -e is used without STUDENT_ID
// and PASSWORD both set.
var MissingEnvCredentialLines = []string{msgMissingEnvCreds, msgSetEnvCreds}

var WelcomeLines = []string{
	"Welcome to NILE CGPA Terminal v1.0",
	"Type 'help' for available commands",
	"Type 'cgpa' to check your cgpa",
}

var assignmentPattern = regexp.MustCompile(`^([A-Z_][A-Z0-9_]*)=(.*)$`)

// Request is a CGPA fetch the terminal wants performed. Epoch ties the result
// back to the session that asked for it.
type Request struct {
	ID          string
	Epoch       uint64
	Credentials client.Credentials
	FromEnv     bool
}

// Snapshot is a copy of the terminal state for rendering.
type Snapshot struct {
	Lines      []models.Line
	Loading    bool
	Wizard     models.WizardMode
	Navigating bool
}

// Terminal owns all emulated shell state: environment, history, transcript,
// the credential wizard and the loading flag.
type Terminal struct {
	mu         sync.RWMutex
	env        *Environment
	history    *History
	transcript *Transcript
	wizard     models.WizardMode
	staging    client.Credentials
	loading    bool
	epoch      uint64
	date       string
}

type Option func(*Terminal)

// WithClock sets the clock used to stamp the date builtin.
func WithClock(now func() time.Time) Option {
	return func(t *Terminal) {
		t.date = now().Format(DateLayout)
	}
}

func WithEnvironment(env *Environment) Option {
	return func(t *Terminal) {
		t.env = env
	}
}

// WithoutWelcome starts with an empty transcript.
func WithoutWelcome() Option {
	return func(t *Terminal) {
		t.transcript.Clear()
	}
}

func NewTerminal(opts ...Option) *Terminal {
	t := &Terminal{
		env:        NewEnvironment(DefaultEnv...),
		history:    NewHistory(),
		transcript: NewTranscript(),
		wizard:     models.Idle,
		date:       time.Now().Format(DateLayout),
	}
	for _, line := range WelcomeLines {
		t.transcript.Output(line)
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Submit consumes one line of input. It returns a non-nil Request when a CGPA
// fetch must be started. Input is ignored while a request is loading.
func (t *Terminal) Submit(input string) *Request {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.loading {
		return nil
	}
	defer t.history.ResetCursor()

	if t.wizard != models.Idle {
		return t.handleWizardInput(input)
	}
	return t.dispatch(input)
}

func (t *Terminal) dispatch(input string) *Request {
	trimmed := strings.TrimSpace(input)

	t.transcript.Command("$ " + input)
	t.history.Record(trimmed)
	t.history.ResetCursor()

	switch {
	case trimmed == "clear":
		t.transcript.Clear()
		return nil
	case strings.HasPrefix(trimmed, "export "):
		t.export(trimmed[len("export "):])
		return nil
	case strings.HasPrefix(trimmed, "echo "):
		t.transcript.Output(Expand(trimmed[len("echo "):], t.env))
		return nil
	}

	if m := assignmentPattern.FindStringSubmatch(trimmed); m != nil {
		t.env.Set(m[1], stripQuotes(m[2]))
		return nil
	}

	if isCGPACommand(trimmed) {
		return t.cgpa(strings.Fields(trimmed)[1:])
	}

	if b, ok := LookupBuiltin(trimmed); ok {
		if out := b.render(t); out != "" {
			t.transcript.Output(out)
		}
		return nil
	}

	if trimmed != "" {
		t.transcript.Output("Command not found: " + trimmed + ". Type 'help' for available commands.")
	}
	return nil
}

// export handles "export NAME=VALUE". The echoed value is the quote-stripped
// one, not the expanded one.
func (t *Terminal) export(args string) {
	args = strings.TrimSpace(args)
	eq := strings.Index(args, "=")
	if eq <= 0 {
		t.transcript.Output(msgUsageExport)
		return
	}

	name := strings.TrimSpace(args[:eq])
	value := stripQuotes(strings.TrimSpace(args[eq+1:]))
	t.env.Set(name, value)
	t.transcript.Output(name + "=" + value)
}

func (t *Terminal) cgpa(args []string) *Request {
	if !slices.Contains(args, envFlag) {
		t.transcript.Output(msgCredentialPrompt)
		t.wizard = models.AwaitingStudentID
		t.staging = client.Credentials{}
		return nil
	}

	studentID, _ := t.env.Get("STUDENT_ID")
	password, _ := t.env.Get("PASSWORD")
	if studentID == "" || password == "" {
		for _, line := range MissingEnvCredentialLines {
			t.transcript.Output(line)
		}
		return nil
	}

	t.loading = true
	t.transcript.Output(msgFetchingEnv)
	req := t.newRequest(client.Credentials{StudentID: studentID, Password: password})
	req.FromEnv = true
	return req
}

func (t *Terminal) handleWizardInput(input string) *Request {
	switch t.wizard {
	case models.AwaitingStudentID:
		t.staging.StudentID = input
		t.transcript.Output("Student ID: " + input)
		t.wizard = models.AwaitingPassword
		return nil

	case models.AwaitingPassword:
		if strings.TrimSpace(input) == "" {
			t.transcript.Output("Password: ")
			t.transcript.Output(msgEmptyPassword)
			return nil
		}

		t.staging.Password = input
		t.transcript.Output("Password: " + strings.Repeat("*", utf8.RuneCountInString(input)))
		t.transcript.Output(msgFetching)

		creds := t.staging
		t.wizard = models.Idle
		t.staging = client.Credentials{}
		t.loading = true
		return t.newRequest(creds)
	}
	return nil
}

func (t *Terminal) newRequest(creds client.Credentials) *Request {
	return &Request{
		ID:          uuid.NewString(),
		Epoch:       t.epoch,
		Credentials: creds,
	}
}

// Interrupt cancels the wizard, or abandons a loading request. It reports
// whether there was anything to interrupt.
func (t *Terminal) Interrupt() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.wizard == models.Idle && !t.loading {
		return false
	}

	t.transcript.Output(msgInterrupt)
	t.wizard = models.Idle
	t.staging = client.Credentials{}
	t.loading = false
	t.epoch++
	return true
}

// Settle appends the outcome of req and clears the loading flag. A request
// from an interrupted session is dropped and Settle returns false.
func (t *Terminal) Settle(req *Request, records []client.Record, err error) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if req == nil || req.Epoch != t.epoch {
		return false
	}
	for _, line := range ResultLines(records, err) {
		t.transcript.Output(line)
	}
	t.loading = false
	return true
}

// HistoryUp returns the text the input line should show.
func (t *Terminal) HistoryUp() (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.history.Up()
}

func (t *Terminal) HistoryDown() (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.history.Down()
}

// InputEdited records that the user changed the input line by hand.
func (t *Terminal) InputEdited() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.history.ResetCursor()
}

func (t *Terminal) Snapshot() Snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return Snapshot{
		Lines:      t.transcript.Lines(),
		Loading:    t.loading,
		Wizard:     t.wizard,
		Navigating: t.history.Navigating(),
	}
}

func (t *Terminal) IsLoading() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.loading
}

func (t *Terminal) Wizard() models.WizardMode {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.wizard
}

func (t *Terminal) Env(name string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.env.Get(name)
}

func (t *Terminal) History() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.history.Entries()
}

func isCGPACommand(trimmed string) bool {
	const name = "cgpa"
	if !strings.HasPrefix(trimmed, name) {
		return false
	}
	if len(trimmed) == len(name) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(trimmed[len(name):])
	return unicode.IsSpace(r)
}

// stripQuotes removes one layer of matching surrounding quotes.
func stripQuotes(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}
