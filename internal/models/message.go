package models

type LineKind int

const (
	Output LineKind = iota
	Command
)

// Line is one entry of the terminal transcript. Lines are never modified
// after they are appended.
type Line struct {
	ID   uint64
	Text string // may span several lines
	Kind LineKind
}
