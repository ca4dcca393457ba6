package ai

import (
	"fmt"
	"strings"

	"github.com/agenticdoctor/backend/internal/model/triage"
)

// AssembleContext renders patient identity, the complete prior transcript,
// and the new message into the single prompt the stateless chat agent
// receives every turn. The downstream task template depends on this exact
// layout; rendering is deterministic for a given input.
//
// The full history is always replayed. Prompt size therefore grows linearly
// with conversation length; that is the contract, not an oversight.
func AssembleContext(record *triage.Case, history []triage.Exchange, userMessage string) string {
	var parts []string

	if record != nil {
		parts = append(parts, fmt.Sprintf("Patient: %s, Age: %d", record.Name, record.Age))
	}

	if len(history) > 0 {
		parts = append(parts, "\n=== CONVERSATION HISTORY ===")
		for idx, exchange := range history {
			parts = append(parts, fmt.Sprintf("Exchange %d:", idx+1))
			parts = append(parts, "Patient said: "+exchange.User)
			parts = append(parts, "You (Dr. Chen) responded: "+exchange.Assistant)
			parts = append(parts, "---")
		}
		parts = append(parts, "=== END CONVERSATION HISTORY ===\n")
	}

	if len(parts) == 0 {
		return userMessage
	}

	return strings.Join(parts, "\n") + "\n\nCURRENT MESSAGE FROM PATIENT: " + userMessage
}
