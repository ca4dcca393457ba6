package transcript

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// DiagnosticLog records full pipeline runs, one JSON object per line, in a
// file separate from the chat transcript.
type DiagnosticLog struct {
	mu   sync.Mutex
	path string
}

// NewDiagnosticLog returns a DiagnosticLog writing to path.
func NewDiagnosticLog(path string) *DiagnosticLog {
	return &DiagnosticLog{path: path}
}

// Append logs the inputs and result of one diagnostic pipeline run.
func (l *DiagnosticLog) Append(inputs map[string]string, result any) error {
	record := map[string]any{
		"timestamp": time.Now().Format(time.RFC3339),
		"inputs":    inputs,
		"result":    result,
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal diagnostic record: %w", err)
	}
	data = append(data, '\n')

	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open diagnostic log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("failed to append diagnostic record: %w", err)
	}
	return nil
}
