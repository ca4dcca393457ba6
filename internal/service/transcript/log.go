package transcript

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"
)

// ErrNoLog is returned by readers when the durable log file does not exist yet.
var ErrNoLog = errors.New("no chat history log")

// Entry is one durable record of a patient/assistant exchange. The field
// names are the wire contract of the line-delimited log file.
type Entry struct {
	CaseID        string `json:"case_id"`
	Timestamp     string `json:"timestamp"`
	PatientInput  string `json:"patient_input"`
	AgentResponse string `json:"agent_response"`
}

// Log is the append-only JSONL transcript shared by all cases. Appends are
// serialized in-process and issued as a single O_APPEND write per entry so
// concurrent writers never interleave partial lines.
type Log struct {
	mu         sync.Mutex
	path       string
	reportsDir string
}

// NewLog returns a Log writing to path and exporting under reportsDir.
// Neither location is created until first use.
func NewLog(path, reportsDir string) *Log {
	return &Log{path: path, reportsDir: reportsDir}
}

// Path returns the durable log location.
func (l *Log) Path() string {
	return l.path
}

// Append records one exchange with the current timestamp.
func (l *Log) Append(caseID, patientInput, agentResponse string) error {
	entry := Entry{
		CaseID:        caseID,
		Timestamp:     time.Now().Format(time.RFC3339),
		PatientInput:  patientInput,
		AgentResponse: agentResponse,
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal transcript entry: %w", err)
	}
	data = append(data, '\n')

	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open transcript log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("failed to append transcript entry: %w", err)
	}
	return nil
}

// Scan returns every entry for caseID in file order plus the count of lines
// that failed to parse. Malformed lines are skipped, never fatal; a missing
// log file yields ErrNoLog.
func (l *Log) Scan(caseID string) ([]Entry, int, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, 0, ErrNoLog
		}
		return nil, 0, fmt.Errorf("failed to open transcript log: %w", err)
	}
	defer f.Close()

	var (
		entries []Entry
		skipped int
	)

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var entry Entry
		if err := json.Unmarshal(line, &entry); err != nil {
			skipped++
			continue
		}
		if entry.CaseID != caseID {
			continue
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return entries, skipped, fmt.Errorf("failed to read transcript log: %w", err)
	}

	return entries, skipped, nil
}
