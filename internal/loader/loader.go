// Package loader reads question files into weighted items.
//
// A question file is a JSON (or YAML) sequence of records:
//
//	[{"question": "2+2?", "answer": "4", "weight": 3}, ...]
//
// question and answer are required, weight defaults to 1.
package loader

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/petuhovskiy/qsampler/internal/models"
	"github.com/petuhovskiy/qsampler/internal/wpool"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"

	fieldQuestion = "question"
	fieldAnswer   = "answer"
	fieldWeight   = "weight"

	defaultWeight = 1.0
)

// FormatError is returned when the file can't be parsed or doesn't have the
// expected structure.
type FormatError struct {
	// Record is the index of the bad record, or -1 for the whole document.
	Record int
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	msg := e.Reason
	if e.Record >= 0 {
		msg = fmt.Sprintf("record %d: %s", e.Record, e.Reason)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return "invalid question file: " + msg
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// MissingFieldError is returned when a record has no question or answer.
type MissingFieldError struct {
	Record int
	Field  string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("record %d: field %q is missing", e.Record, e.Field)
}

// FormatFromPath picks the format by file extension, JSON being the default.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Load opens the file and decodes the questions from it.
func Load(path string) ([]wpool.Item[models.Question], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open question file: %w", err)
	}
	defer f.Close()

	return Decode(f, FormatFromPath(path))
}

func Decode(r io.Reader, format Format) ([]wpool.Item[models.Question], error) {
	var dec interface{ Decode(v any) error }
	switch format {
	case FormatYAML:
		dec = yaml.NewDecoder(r)
	default:
		dec = json.NewDecoder(r)
	}

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, &FormatError{Record: -1, Reason: fmt.Sprintf("malformed %s", format), Err: err}
	}
	// the list must be the only value in the file
	var extra any
	if err := dec.Decode(&extra); err != io.EOF {
		return nil, &FormatError{Record: -1, Reason: fmt.Sprintf("malformed %s: unexpected data after the list", format), Err: err}
	}

	records, ok := doc.([]any)
	if !ok {
		return nil, &FormatError{Record: -1, Reason: fmt.Sprintf("expected a list of questions, got %T", doc)}
	}

	res := make([]wpool.Item[models.Question], 0, len(records))
	for i, rec := range records {
		item, err := parseRecord(i, rec)
		if err != nil {
			return nil, err
		}
		res = append(res, item)
	}
	return res, nil
}

func parseRecord(idx int, rec any) (wpool.Item[models.Question], error) {
	var item wpool.Item[models.Question]

	fields, ok := rec.(map[string]any)
	if !ok {
		return item, &FormatError{Record: idx, Reason: fmt.Sprintf("expected an object, got %T", rec)}
	}

	question, err := stringField(idx, fields, fieldQuestion)
	if err != nil {
		return item, err
	}
	answer, err := stringField(idx, fields, fieldAnswer)
	if err != nil {
		return item, err
	}

	weight := defaultWeight
	if raw, ok := fields[fieldWeight]; ok {
		weight, ok = number(raw)
		if !ok {
			return item, &FormatError{Record: idx, Reason: fmt.Sprintf("weight must be a number, got %T", raw)}
		}
	}

	item.Weight = weight
	item.Item = models.Question{
		Question: question,
		Answer:   answer,
	}
	return item, nil
}

func stringField(idx int, fields map[string]any, key string) (string, error) {
	raw, ok := fields[key]
	if !ok {
		return "", &MissingFieldError{Record: idx, Field: key}
	}
	switch v := raw.(type) {
	case string:
		return v, nil
	case float64, int, int64, uint64, bool:
		// numbers and booleans are shown as written
		return fmt.Sprint(v), nil
	default:
		return "", &FormatError{Record: idx, Reason: fmt.Sprintf("%s must be a string, got %T", key, raw)}
	}
}

// number converts numbers produced by the JSON and YAML decoders.
func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}
