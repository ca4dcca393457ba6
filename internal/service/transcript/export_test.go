package transcript

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/agenticdoctor/backend/internal/model/triage"
)

func TestExportWithoutLogCreatesNoFile(t *testing.T) {
	l := newTestLog(t)

	message, err := l.ExportToText("abc12345", nil)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if message != "No chat history found to export." {
		t.Fatalf("unexpected message: %q", message)
	}

	if _, err := os.Stat(l.reportsDir); !os.IsNotExist(err) {
		t.Fatalf("reports directory should not exist, stat err: %v", err)
	}
}

func TestExportWritesTranscriptFile(t *testing.T) {
	l := newTestLog(t)

	if err := l.Append("abc12345", "I feel dizzy", "Please sit down and rest."); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if err := l.Append("abc12345", "Still dizzy", "Let us check your blood pressure."); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	info := &triage.Case{
		ID:        "abc12345",
		Name:      "Asha",
		Age:       34,
		StartedAt: time.Now().UTC(),
	}

	message, err := l.ExportToText("abc12345", info)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if !strings.HasPrefix(message, "Chat transcript exported successfully to: ") {
		t.Fatalf("unexpected message: %q", message)
	}

	files, err := filepath.Glob(filepath.Join(l.reportsDir, "chat_export_abc12345_*.txt"))
	if err != nil || len(files) != 1 {
		t.Fatalf("expected one export file, got %v (err %v)", files, err)
	}

	data, err := os.ReadFile(files[0])
	if err != nil {
		t.Fatalf("read export failed: %v", err)
	}
	content := string(data)

	for _, want := range []string{
		"AI MEDICAL ASSISTANT - CHAT TRANSCRIPT",
		"Case ID: abc12345",
		"Patient Name: Asha",
		"Age: 34",
		"PATIENT: I feel dizzy",
		"DR. CHEN: Please sit down and rest.",
		"PATIENT: Still dizzy",
		"END OF TRANSCRIPT",
		"informational",
	} {
		if !strings.Contains(content, want) {
			t.Fatalf("export missing %q:\n%s", want, content)
		}
	}
}

func TestExportWithoutIdentityOmitsPatientBlock(t *testing.T) {
	l := newTestLog(t)

	if err := l.Append("abc12345", "hello", "hi"); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	if _, err := l.ExportToText("abc12345", nil); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	files, _ := filepath.Glob(filepath.Join(l.reportsDir, "chat_export_abc12345_*.txt"))
	if len(files) != 1 {
		t.Fatalf("expected one export file, got %d", len(files))
	}
	data, _ := os.ReadFile(files[0])
	if strings.Contains(string(data), "Patient Name:") {
		t.Fatalf("export should omit identity without a case record")
	}
}
