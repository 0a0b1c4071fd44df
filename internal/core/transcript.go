package core

import "github.com/nile-cgpa/terminal/internal/models"

// Transcript is the append-only list of rendered lines. IDs keep increasing
// across Clear.
type Transcript struct {
	lines  []models.Line
	nextID uint64
}

func NewTranscript() *Transcript {
	return &Transcript{nextID: 1}
}

func (t *Transcript) Append(kind models.LineKind, text string) models.Line {
	line := models.Line{ID: t.nextID, Text: text, Kind: kind}
	t.nextID++
	t.lines = append(t.lines, line)
	return line
}

func (t *Transcript) Command(text string) models.Line {
	return t.Append(models.Command, text)
}

func (t *Transcript) Output(text string) models.Line {
	return t.Append(models.Output, text)
}

func (t *Transcript) Clear() {
	t.lines = nil
}

func (t *Transcript) Lines() []models.Line {
	result := make([]models.Line, len(t.lines))
	copy(result, t.lines)
	return result
}

func (t *Transcript) Len() int {
	return len(t.lines)
}
