package transcript

import (
	"errors"
	"fmt"
	"time"
)

// Summary aggregates per-case statistics from the durable log.
type Summary struct {
	TotalMessages   int    `json:"total_messages"`
	UserMessages    int    `json:"user_messages"`
	AgentMessages   int    `json:"agent_messages"`
	SessionDuration string `json:"session_duration"`
	FirstMessage    string `json:"first_message,omitempty"`
	LastMessage     string `json:"last_message,omitempty"`
	SkippedLines    int    `json:"skipped_lines,omitempty"`
	Error           string `json:"error,omitempty"`
}

// Summarize scans the log once and returns entry counts plus the elapsed
// time between the first and last timestamp. It never fails: internal
// errors degrade to a zero-valued summary with an error note, unparseable
// timestamps degrade the duration to "Unknown".
func (l *Log) Summarize(caseID string) Summary {
	summary := Summary{SessionDuration: "Unknown"}

	entries, skipped, err := l.Scan(caseID)
	if err != nil {
		if !errors.Is(err, ErrNoLog) {
			summary.Error = err.Error()
		}
		return summary
	}
	summary.SkippedLines = skipped

	for _, entry := range entries {
		summary.TotalMessages++
		if entry.PatientInput != "" {
			summary.UserMessages++
		}
		if entry.AgentResponse != "" {
			summary.AgentMessages++
		}

		if entry.Timestamp != "" {
			if summary.FirstMessage == "" {
				summary.FirstMessage = entry.Timestamp
			}
			summary.LastMessage = entry.Timestamp
		}
	}

	if summary.FirstMessage != "" && summary.LastMessage != "" {
		start, errStart := parseTimestamp(summary.FirstMessage)
		end, errEnd := parseTimestamp(summary.LastMessage)
		if errStart == nil && errEnd == nil {
			summary.SessionDuration = fmt.Sprintf("%d minutes", int(end.Sub(start).Minutes()))
		}
	}

	return summary
}

// parseTimestamp accepts RFC3339 and zone-less ISO-8601, the two shapes the
// log has historically contained.
func parseTimestamp(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02T15:04:05", value)
}
