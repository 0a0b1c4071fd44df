package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

var ErrNotRecordList = errors.New("unexpected response: expected a list of records")

// Field is one key/value pair of a record, with the value already rendered
// as display text.
type Field struct {
	Name  string
	Value string
}

// Record keeps its fields in the order the backend sent them.
type Record []Field

// DecodeRecords reads a JSON array of objects, preserving key order within
// each object.
func DecodeRecords(r io.Reader) ([]Record, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	if err := expectDelim(dec, '['); err != nil {
		return nil, err
	}

	records := make([]Record, 0)
	for dec.More() {
		if err := expectDelim(dec, '{'); err != nil {
			return nil, err
		}
		var rec Record
		for dec.More() {
			tok, err := dec.Token()
			if err != nil {
				return nil, fmt.Errorf("failed to decode record: %w", err)
			}
			key, ok := tok.(string)
			if !ok {
				return nil, fmt.Errorf("failed to decode record: unexpected key %v", tok)
			}
			var raw json.RawMessage
			if err := dec.Decode(&raw); err != nil {
				return nil, fmt.Errorf("failed to decode field %q: %w", key, err)
			}
			rec = append(rec, Field{Name: key, Value: FormatValue(raw)})
		}
		if _, err := dec.Token(); err != nil {
			return nil, fmt.Errorf("failed to decode record: %w", err)
		}
		records = append(records, rec)
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("failed to decode records: %w", err)
	}
	return records, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return ErrNotRecordList
		}
		return fmt.Errorf("failed to decode records: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return ErrNotRecordList
	}
	return nil
}

// FormatValue renders a raw JSON value for display: strings verbatim,
// scalars as their literal, objects and arrays as compact JSON.
func FormatValue(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	case '{', '[':
		var buf bytes.Buffer
		if err := json.Compact(&buf, raw); err == nil {
			return buf.String()
		}
	}
	return string(raw)
}
