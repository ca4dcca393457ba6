package ai

import (
	"strings"
	"testing"

	"github.com/agenticdoctor/backend/internal/model/triage"
)

func TestAssembleContextBareMessage(t *testing.T) {
	got := AssembleContext(nil, nil, "I have a headache")
	if got != "I have a headache" {
		t.Fatalf("expected bare message, got %q", got)
	}
}

func TestAssembleContextIdentityOnly(t *testing.T) {
	record := &triage.Case{ID: "abc12345", Name: "Asha", Age: 34}

	got := AssembleContext(record, nil, "I have a headache")

	if !strings.HasPrefix(got, "Patient: Asha, Age: 34") {
		t.Fatalf("missing identity line:\n%s", got)
	}
	if !strings.HasSuffix(got, "CURRENT MESSAGE FROM PATIENT: I have a headache") {
		t.Fatalf("missing current message suffix:\n%s", got)
	}
	if strings.Contains(got, "CONVERSATION HISTORY") {
		t.Fatalf("history banner should be absent:\n%s", got)
	}
}

func TestAssembleContextFullHistory(t *testing.T) {
	record := &triage.Case{ID: "abc12345", Name: "Asha", Age: 34}
	history := []triage.Exchange{
		{User: "I feel dizzy", Assistant: "Sit down and rest."},
		{User: "Still dizzy", Assistant: "Check your blood pressure."},
	}

	got := AssembleContext(record, history, "Now my head hurts too")

	for _, want := range []string{
		"Patient: Asha, Age: 34",
		"=== CONVERSATION HISTORY ===",
		"Exchange 1:",
		"Patient said: I feel dizzy",
		"You (Dr. Chen) responded: Sit down and rest.",
		"Exchange 2:",
		"Patient said: Still dizzy",
		"---",
		"=== END CONVERSATION HISTORY ===",
		"CURRENT MESSAGE FROM PATIENT: Now my head hurts too",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("assembled context missing %q:\n%s", want, got)
		}
	}

	if idx1, idx2 := strings.Index(got, "Exchange 1:"), strings.Index(got, "Exchange 2:"); idx1 > idx2 {
		t.Fatalf("exchanges out of order:\n%s", got)
	}
}

func TestAssembleContextDeterministic(t *testing.T) {
	record := &triage.Case{ID: "abc12345", Name: "Asha", Age: 34}
	history := []triage.Exchange{{User: "hello", Assistant: "hi"}}

	first := AssembleContext(record, history, "again")
	second := AssembleContext(record, history, "again")
	if first != second {
		t.Fatalf("rendering should be deterministic")
	}
}
