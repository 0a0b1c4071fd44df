package core

import "strings"

// Builtin is one of the fixed, argument-less terminal commands.
type Builtin int

const (
	BuiltinHelp Builtin = iota
	BuiltinAbout
	BuiltinASCII
	BuiltinDate
	BuiltinWhoami
	BuiltinEnv
	BuiltinHistory
)

const (
	HelpText    = "Available commands: help, clear, about, ascii, date, whoami, env, export, echo, history, cgpa"
	AboutText   = "NILE CGPA - A modern terminal interface to check your CGPA"
	DefaultUser = "user@nile-cgpa"

	DateLayout = "1/2/2006, 3:04:05 PM"
)

const Banner = `
███    ██ ██ ██      ███████       ██████  ██████    ██████   █████ 
████   ██ ██ ██      ██           ██      ██       ██   ██ ██   ██
██ ██  ██ ██ ██      █████   █████ ██      ██   ███  ██████  ███████
██  ██ ██ ██ ██      ██           ██      ██    ██  ██     ██   ██
██   ████ ██ ███████  ███████       ██████  ██████    ██     ██   ██
`

var builtinNames = map[string]Builtin{
	"help":    BuiltinHelp,
	"about":   BuiltinAbout,
	"ascii":   BuiltinASCII,
	"date":    BuiltinDate,
	"whoami":  BuiltinWhoami,
	"env":     BuiltinEnv,
	"history": BuiltinHistory,
}

// LookupBuiltin matches name case-insensitively.
func LookupBuiltin(name string) (Builtin, bool) {
	b, ok := builtinNames[strings.ToLower(name)]
	return b, ok
}

func (b Builtin) String() string {
	for name, candidate := range builtinNames {
		if candidate == b {
			return name
		}
	}
	return "unknown"
}

// render produces the builtin's output against the terminal's current state.
// Callers hold t.mu.
func (b Builtin) render(t *Terminal) string {
	switch b {
	case BuiltinHelp:
		return HelpText
	case BuiltinAbout:
		return AboutText
	case BuiltinASCII:
		return Banner
	case BuiltinDate:
		return t.date
	case BuiltinWhoami:
		if user, _ := t.env.Get("USER"); user != "" {
			return user
		}
		return DefaultUser
	case BuiltinEnv:
		return t.env.String()
	case BuiltinHistory:
		return t.history.String()
	}
	return ""
}
