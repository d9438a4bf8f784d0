package materialize_test

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/dhyeyp/restcli/internal/apperror"
	"github.com/dhyeyp/restcli/internal/materialize"
	"github.com/dhyeyp/restcli/internal/testutil"
)

func newMaterializer(out *bytes.Buffer) *materialize.Materializer {
	return materialize.New(&testutil.DummyLogger{}, out)
}

// ─── format detection ───────────────────────────────────────────────────

func TestDetectFormat(t *testing.T) {
	t.Parallel()
	cases := []struct {
		path    string
		want    materialize.Format
		wantErr bool
	}{
		{"", materialize.FormatStdout, false},
		{"out.json", materialize.FormatJSON, false},
		{"dir/out.csv", materialize.FormatCSV, false},
		{"report.txt", 0, true},
		{"noext", 0, true},
	}

	for _, tc := range cases {
		got, err := materialize.DetectFormat(tc.path)
		if tc.wantErr {
			var formatErr *apperror.FormatError
			if !errors.As(err, &formatErr) {
				t.Errorf("DetectFormat(%q): expected FormatError, got %v", tc.path, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("DetectFormat(%q): %v", tc.path, err)
			continue
		}
		if got != tc.want {
			t.Errorf("DetectFormat(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}

// ─── stdout ─────────────────────────────────────────────────────────────

func TestMaterialize_Stdout_FourSpaceIndent(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	m := newMaterializer(&out)

	raw := []byte(`{"userId":1,"id":1,"title":"x"}`)
	if err := m.Materialize(raw, ""); err != nil {
		t.Fatalf("Materialize: %v", err)
	}

	want := "{\n    \"userId\": 1,\n    \"id\": 1,\n    \"title\": \"x\"\n}\n"
	if out.String() != want {
		t.Errorf("unexpected output:\n%q\nwant:\n%q", out.String(), want)
	}
}

// ─── .json ──────────────────────────────────────────────────────────────

func TestMaterialize_JSONRoundTrip(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	m := newMaterializer(&out)

	raw := []byte(`{"userId":1,"id":1,"title":"sunt","body":"quia","tags":["a","b"],"score":4.5}`)
	dest := filepath.Join(t.TempDir(), "resp.json")
	if err := m.Materialize(raw, dest); err != nil {
		t.Fatalf("Materialize: %v", err)
	}

	if !strings.Contains(out.String(), "Response successfully saved to "+dest) {
		t.Errorf("missing confirmation line, got %q", out.String())
	}

	saved, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	var original, reloaded any
	if err := json.Unmarshal(raw, &original); err != nil {
		t.Fatalf("unmarshal original: %v", err)
	}
	if err := json.Unmarshal(saved, &reloaded); err != nil {
		t.Fatalf("unmarshal saved: %v", err)
	}
	if !reflect.DeepEqual(original, reloaded) {
		t.Errorf("round-trip mismatch:\noriginal: %v\nreloaded: %v", original, reloaded)
	}
}

func TestMaterialize_JSONOverwritesExisting(t *testing.T) {
	t.Parallel()
	dest := filepath.Join(t.TempDir(), "resp.json")
	if err := os.WriteFile(dest, []byte("old"), 0644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	var out bytes.Buffer
	if err := newMaterializer(&out).Materialize([]byte(`{"a":1}`), dest); err != nil {
		t.Fatalf("Materialize: %v", err)
	}

	saved, _ := os.ReadFile(dest)
	if strings.Contains(string(saved), "old") {
		t.Error("expected existing file overwritten")
	}
}

// ─── .csv ───────────────────────────────────────────────────────────────

func TestMaterialize_CSVRoundTrip(t *testing.T) {
	t.Parallel()
	raw := []byte(`[
		{"userId":1,"id":1,"title":"first"},
		{"userId":2,"id":2,"title":"second"}
	]`)

	dest := filepath.Join(t.TempDir(), "resp.csv")
	var out bytes.Buffer
	if err := newMaterializer(&out).Materialize(raw, dest); err != nil {
		t.Fatalf("Materialize: %v", err)
	}

	f, err := os.Open(dest)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}

	want := [][]string{
		{"userId", "id", "title"},
		{"1", "1", "first"},
		{"2", "2", "second"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("unexpected CSV:\ngot  %v\nwant %v", rows, want)
	}
}

func TestMaterialize_CSVHeaderKeepsJSONKeyOrder(t *testing.T) {
	t.Parallel()
	// Alphabetical order would be b,a,z; JSON text order must win.
	raw := []byte(`[{"z":1,"a":2,"b":3}]`)

	dest := filepath.Join(t.TempDir(), "resp.csv")
	var out bytes.Buffer
	if err := newMaterializer(&out).Materialize(raw, dest); err != nil {
		t.Fatalf("Materialize: %v", err)
	}

	f, _ := os.Open(dest)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if !reflect.DeepEqual(rows[0], []string{"z", "a", "b"}) {
		t.Errorf("expected header in JSON order, got %v", rows[0])
	}
}

func TestMaterialize_CSVCoercesSingleObject(t *testing.T) {
	t.Parallel()
	dest := filepath.Join(t.TempDir(), "resp.csv")
	var out bytes.Buffer
	if err := newMaterializer(&out).Materialize([]byte(`{"id":1,"title":"only"}`), dest); err != nil {
		t.Fatalf("Materialize: %v", err)
	}

	f, _ := os.Open(dest)
	defer f.Close()
	rows, _ := csv.NewReader(f).ReadAll()
	if len(rows) != 2 {
		t.Fatalf("expected header plus one row, got %d rows", len(rows))
	}
}

func TestMaterialize_CSVFieldSetFromFirstRecord(t *testing.T) {
	t.Parallel()
	// Second record misses "title" and adds "extra": missing becomes an
	// empty cell, extra is dropped.
	raw := []byte(`[
		{"id":1,"title":"a"},
		{"id":2,"extra":true}
	]`)

	dest := filepath.Join(t.TempDir(), "resp.csv")
	var out bytes.Buffer
	if err := newMaterializer(&out).Materialize(raw, dest); err != nil {
		t.Fatalf("Materialize: %v", err)
	}

	f, _ := os.Open(dest)
	defer f.Close()
	rows, _ := csv.NewReader(f).ReadAll()
	want := [][]string{{"id", "title"}, {"1", "a"}, {"2", ""}}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("unexpected CSV:\ngot  %v\nwant %v", rows, want)
	}
}

func TestMaterialize_CSVNestedValuesStayCompactJSON(t *testing.T) {
	t.Parallel()
	raw := []byte(`[{"id":1,"meta":{"k":"v"},"tags":["x","y"],"gone":null}]`)

	dest := filepath.Join(t.TempDir(), "resp.csv")
	var out bytes.Buffer
	if err := newMaterializer(&out).Materialize(raw, dest); err != nil {
		t.Fatalf("Materialize: %v", err)
	}

	f, _ := os.Open(dest)
	defer f.Close()
	rows, _ := csv.NewReader(f).ReadAll()
	want := []string{"1", `{"k":"v"}`, `["x","y"]`, ""}
	if !reflect.DeepEqual(rows[1], want) {
		t.Errorf("unexpected row %v, want %v", rows[1], want)
	}
}

func TestMaterialize_CSVEmptyListFails(t *testing.T) {
	t.Parallel()
	dest := filepath.Join(t.TempDir(), "resp.csv")
	var out bytes.Buffer
	err := newMaterializer(&out).Materialize([]byte(`[]`), dest)
	if !errors.Is(err, apperror.ErrEmptyRecordList) {
		t.Fatalf("expected ErrEmptyRecordList, got %v", err)
	}
	if _, statErr := os.Stat(dest); !os.IsNotExist(statErr) {
		t.Error("expected no file to be created")
	}
}

func TestMaterialize_CSVScalarBodyFails(t *testing.T) {
	t.Parallel()
	dest := filepath.Join(t.TempDir(), "resp.csv")
	var out bytes.Buffer
	err := newMaterializer(&out).Materialize([]byte(`42`), dest)
	var writeErr *apperror.WriteError
	if !errors.As(err, &writeErr) {
		t.Fatalf("expected WriteError, got %T: %v", err, err)
	}
}

// ─── unsupported / filesystem failures ──────────────────────────────────

func TestMaterialize_UnsupportedExtensionWritesNothing(t *testing.T) {
	t.Parallel()
	dest := filepath.Join(t.TempDir(), "report.txt")
	var out bytes.Buffer
	err := newMaterializer(&out).Materialize([]byte(`{"a":1}`), dest)

	var formatErr *apperror.FormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("expected FormatError, got %T: %v", err, err)
	}
	if formatErr.Ext != ".txt" {
		t.Errorf("expected ext .txt, got %q", formatErr.Ext)
	}
	if _, statErr := os.Stat(dest); !os.IsNotExist(statErr) {
		t.Error("expected no file to be created")
	}
}

func TestMaterialize_MissingDirectoryIsWriteError(t *testing.T) {
	t.Parallel()
	dest := filepath.Join(t.TempDir(), "no", "such", "dir", "resp.json")
	var out bytes.Buffer
	err := newMaterializer(&out).Materialize([]byte(`{"a":1}`), dest)

	var writeErr *apperror.WriteError
	if !errors.As(err, &writeErr) {
		t.Fatalf("expected WriteError, got %T: %v", err, err)
	}
}
