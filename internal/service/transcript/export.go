package transcript

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/agenticdoctor/backend/internal/model/triage"
)

const banner = "================================================================================"
const divider = "--------------------------------------------------------------------------------"

// ExportToText writes a human-readable transcript of one case to a
// timestamped file under the reports directory and returns a user-facing
// status message. When the durable log does not exist yet no file is
// created and an absence message is returned instead.
func (l *Log) ExportToText(caseID string, info *triage.Case) (string, error) {
	entries, _, err := l.Scan(caseID)
	if err != nil {
		if errors.Is(err, ErrNoLog) {
			return "No chat history found to export.", nil
		}
		return "", err
	}

	if err := os.MkdirAll(l.reportsDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create reports directory: %w", err)
	}

	now := time.Now()
	exportPath := filepath.Join(l.reportsDir, fmt.Sprintf("chat_export_%s_%s.txt", caseID, now.Format("20060102_150405")))

	var b strings.Builder
	b.WriteString(banner + "\n")
	b.WriteString("AI MEDICAL ASSISTANT - CHAT TRANSCRIPT\n")
	b.WriteString(banner + "\n\n")

	b.WriteString(fmt.Sprintf("Case ID: %s\n", caseID))
	if info != nil {
		b.WriteString(fmt.Sprintf("Patient Name: %s\n", info.Name))
		b.WriteString(fmt.Sprintf("Age: %d\n", info.Age))
		b.WriteString(fmt.Sprintf("Session Started: %s\n", info.StartedAt.Format(time.RFC3339)))
	}
	b.WriteString(fmt.Sprintf("Export Date: %s\n", now.Format("2006-01-02 15:04:05")))
	b.WriteString("\n" + banner + "\n\n")

	for _, entry := range entries {
		ts := entry.Timestamp
		if ts == "" {
			ts = "Unknown time"
		}
		b.WriteString(fmt.Sprintf("[%s]\n", ts))
		b.WriteString(fmt.Sprintf("PATIENT: %s\n\n", entry.PatientInput))
		b.WriteString(fmt.Sprintf("DR. CHEN: %s\n", entry.AgentResponse))
		b.WriteString("\n" + divider + "\n\n")
	}

	b.WriteString("\n" + banner + "\n")
	b.WriteString("END OF TRANSCRIPT\n")
	b.WriteString(banner + "\n")
	b.WriteString("\nDISCLAIMER: This transcript is for informational purposes only.\n")
	b.WriteString("It does not replace professional medical advice, diagnosis, or treatment.\n")
	b.WriteString("Always consult with a qualified healthcare provider for medical concerns.\n")

	if err := os.WriteFile(exportPath, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("failed to write transcript export: %w", err)
	}

	return fmt.Sprintf("Chat transcript exported successfully to: %s", exportPath), nil
}
