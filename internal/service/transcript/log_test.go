package transcript

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestLog(t *testing.T) *Log {
	t.Helper()
	dir := t.TempDir()
	return NewLog(filepath.Join(dir, "chat_history.json"), filepath.Join(dir, "reports"))
}

func TestScanMissingFileReturnsErrNoLog(t *testing.T) {
	l := newTestLog(t)

	_, _, err := l.Scan("abc12345")
	if !errors.Is(err, ErrNoLog) {
		t.Fatalf("expected ErrNoLog, got %v", err)
	}
}

func TestAppendAndScanPreservesOrder(t *testing.T) {
	l := newTestLog(t)

	inputs := []string{"I have a headache", "It started yesterday", "No other symptoms"}
	for i, input := range inputs {
		if err := l.Append("abc12345", input, "response "+input); err != nil {
			t.Fatalf("append %d failed: %v", i, err)
		}
	}

	entries, skipped, err := l.Scan("abc12345")
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if skipped != 0 {
		t.Fatalf("expected 0 skipped lines, got %d", skipped)
	}
	if len(entries) != len(inputs) {
		t.Fatalf("expected %d entries, got %d", len(inputs), len(entries))
	}
	for i, entry := range entries {
		if entry.PatientInput != inputs[i] {
			t.Fatalf("entry %d out of order: got %q", i, entry.PatientInput)
		}
		if entry.CaseID != "abc12345" {
			t.Fatalf("entry %d has wrong case id %q", i, entry.CaseID)
		}
		if entry.Timestamp == "" {
			t.Fatalf("entry %d is missing a timestamp", i)
		}
	}
}

func TestScanFiltersOtherCases(t *testing.T) {
	l := newTestLog(t)

	if err := l.Append("case-one", "hello", "hi"); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if err := l.Append("case-two", "other", "reply"); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	entries, _, err := l.Scan("case-one")
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry for case-one, got %d", len(entries))
	}
	if entries[0].PatientInput != "hello" {
		t.Fatalf("unexpected entry: %+v", entries[0])
	}
}

func TestScanSkipsMalformedLines(t *testing.T) {
	l := newTestLog(t)

	if err := l.Append("abc12345", "first", "reply one"); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	f, err := os.OpenFile(l.Path(), os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		t.Fatalf("open log failed: %v", err)
	}
	if _, err := f.WriteString("this is not json\n"); err != nil {
		t.Fatalf("write corrupt line failed: %v", err)
	}
	f.Close()

	if err := l.Append("abc12345", "second", "reply two"); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	entries, skipped, err := l.Scan("abc12345")
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if skipped != 1 {
		t.Fatalf("expected 1 skipped line, got %d", skipped)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].PatientInput != "first" || entries[1].PatientInput != "second" {
		t.Fatalf("entries out of order: %+v", entries)
	}
}

func TestAppendWritesOneLinePerEntry(t *testing.T) {
	l := newTestLog(t)

	if err := l.Append("abc12345", "line check", "ok"); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	data, err := os.ReadFile(l.Path())
	if err != nil {
		t.Fatalf("read log failed: %v", err)
	}
	content := string(data)
	if !strings.HasSuffix(content, "\n") {
		t.Fatalf("log entry is not newline terminated")
	}
	if strings.Count(content, "\n") != 1 {
		t.Fatalf("expected exactly one line, got %q", content)
	}
	if !strings.Contains(content, `"case_id":"abc12345"`) {
		t.Fatalf("missing case_id field in %q", content)
	}
}
