package core

import (
	"fmt"
	"strings"
)

const notNavigating = -1

// History holds submitted commands with cursor-based navigation.
type History struct {
	entries []string
	cursor  int // notNavigating, or 0..len-1
}

func NewHistory() *History {
	return &History{cursor: notNavigating}
}

// Record appends command unless it is blank or repeats the last entry.
func (h *History) Record(command string) {
	command = strings.TrimSpace(command)
	if command == "" {
		return
	}
	if n := len(h.entries); n > 0 && h.entries[n-1] == command {
		return
	}
	h.entries = append(h.entries, command)
}

// Up moves to the previous (older) entry. Returns false if history is empty.
func (h *History) Up() (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	if h.cursor == notNavigating {
		h.cursor = len(h.entries) - 1
	} else if h.cursor > 0 {
		h.cursor--
	}
	return h.entries[h.cursor], true
}

// Down moves to the next (newer) entry. Moving past the newest entry stops
// navigation and yields an empty input. Returns false when not navigating.
func (h *History) Down() (string, bool) {
	if h.cursor == notNavigating {
		return "", false
	}
	h.cursor++
	if h.cursor >= len(h.entries) {
		h.cursor = notNavigating
		return "", true
	}
	return h.entries[h.cursor], true
}

func (h *History) ResetCursor() {
	h.cursor = notNavigating
}

func (h *History) Navigating() bool {
	return h.cursor != notNavigating
}

func (h *History) Cursor() int {
	return h.cursor
}

func (h *History) Entries() []string {
	result := make([]string, len(h.entries))
	copy(result, h.entries)
	return result
}

func (h *History) Len() int {
	return len(h.entries)
}

// String renders the history the way the history builtin prints it.
func (h *History) String() string {
	lines := make([]string, len(h.entries))
	for i, cmd := range h.entries {
		lines[i] = fmt.Sprintf("%d  %s", i+1, cmd)
	}
	return strings.Join(lines, "\n")
}
