package core

import "github.com/nile-cgpa/terminal/internal/client"

const (
	recordSeparator = "   "
	unknownError    = "Unknown error"
)

// ResultLines renders the outcome of a CGPA request as transcript lines.
func ResultLines(records []client.Record, err error) []string {
	if err != nil {
		message := err.Error()
		if message == "" {
			message = unknownError
		}
		return []string{"Error: " + message}
	}

	var lines []string
	for _, rec := range records {
		for _, field := range rec {
			lines = append(lines, field.Name+": "+field.Value)
		}
		lines = append(lines, recordSeparator)
	}
	return lines
}
