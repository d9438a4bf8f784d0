// Package materialize renders a decoded JSON response body to the console or
// to a file, with the destination extension selecting the encoding.
package materialize

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dhyeyp/restcli/internal/apperror"
	"github.com/dhyeyp/restcli/internal/logging"
)

// Format is the output encoding, derived once from the destination path.
type Format int

const (
	FormatStdout Format = iota
	FormatJSON
	FormatCSV
)

func (f Format) String() string {
	switch f {
	case FormatStdout:
		return "stdout"
	case FormatJSON:
		return "json"
	case FormatCSV:
		return "csv"
	}
	return "unknown"
}

// DetectFormat maps a destination path to its Format. An empty path means
// print to stdout. Unknown extensions are rejected before anything is written.
func DetectFormat(path string) (Format, error) {
	if path == "" {
		return FormatStdout, nil
	}
	ext := filepath.Ext(path)
	switch ext {
	case ".json":
		return FormatJSON, nil
	case ".csv":
		return FormatCSV, nil
	}
	return 0, &apperror.FormatError{Ext: ext}
}

const indent = "    "

// Materializer renders response bodies. Out receives the human-facing lines
// (pretty JSON or save confirmations) and defaults to stdout.
type Materializer struct {
	logger logging.Logger
	out    io.Writer
}

func New(logger logging.Logger, out io.Writer) *Materializer {
	if out == nil {
		out = os.Stdout
	}
	return &Materializer{
		logger: logger.With(logging.Field{Key: "component", Value: "materialize"}),
		out:    out,
	}
}

// Materialize renders the raw JSON body according to the destination path.
// The body must already be known-valid JSON.
func (m *Materializer) Materialize(raw []byte, dest string) error {
	format, err := DetectFormat(dest)
	if err != nil {
		return err
	}

	m.logger.Debug("materializing response",
		logging.Field{Key: "format", Value: format.String()},
		logging.Field{Key: "dest", Value: dest})

	switch format {
	case FormatStdout:
		return m.printJSON(raw)
	case FormatJSON:
		return m.saveJSON(raw, dest)
	case FormatCSV:
		return m.saveCSV(raw, dest)
	}
	return &apperror.FormatError{Ext: filepath.Ext(dest)}
}

func (m *Materializer) printJSON(raw []byte) error {
	pretty, err := indentJSON(raw)
	if err != nil {
		return &apperror.InputError{Err: err}
	}
	fmt.Fprintln(m.out, string(pretty))
	return nil
}

func (m *Materializer) saveJSON(raw []byte, dest string) error {
	pretty, err := indentJSON(raw)
	if err != nil {
		return &apperror.InputError{Err: err}
	}
	if err := os.WriteFile(dest, pretty, 0644); err != nil {
		return &apperror.WriteError{Path: dest, Err: err}
	}
	fmt.Fprintf(m.out, "Response successfully saved to %s\n", dest)
	return nil
}

func (m *Materializer) saveCSV(raw []byte, dest string) error {
	records, err := parseRecords(raw)
	if err != nil {
		return &apperror.WriteError{Path: dest, Err: err}
	}
	if len(records) == 0 {
		return &apperror.WriteError{Path: dest, Err: apperror.ErrEmptyRecordList}
	}

	f, err := os.Create(dest)
	if err != nil {
		return &apperror.WriteError{Path: dest, Err: err}
	}
	defer f.Close()

	// Field set comes from the first record's keys, in their original order.
	// Later records fill missing keys with empty cells; extra keys are dropped.
	fields := records[0].keys

	w := csv.NewWriter(f)
	if err := w.Write(fields); err != nil {
		return &apperror.WriteError{Path: dest, Err: err}
	}
	for _, rec := range records {
		row := make([]string, len(fields))
		for i, field := range fields {
			row[i] = renderCell(rec.values[field])
		}
		if err := w.Write(row); err != nil {
			return &apperror.WriteError{Path: dest, Err: err}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return &apperror.WriteError{Path: dest, Err: err}
	}
	if err := f.Close(); err != nil {
		return &apperror.WriteError{Path: dest, Err: err}
	}

	fmt.Fprintf(m.out, "Response successfully saved to %s\n", dest)
	return nil
}

// indentJSON reindents raw with 4-space indentation, preserving key order.
func indentJSON(raw []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, bytes.TrimSpace(raw), "", indent); err != nil {
		return nil, fmt.Errorf("response body is not valid JSON: %w", err)
	}
	return buf.Bytes(), nil
}

// renderCell turns a decoded JSON value into its CSV cell text.
func renderCell(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		// Nested objects/arrays keep their compact JSON form.
		enc, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprintf("%v", t)
		}
		return string(enc)
	}
}
