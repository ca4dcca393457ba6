package triage

import "testing"

func TestMessagesFromHistory(t *testing.T) {
	history := []Exchange{
		{User: "I feel dizzy", Assistant: "Sit down and rest.", Timestamp: "2026-08-27T10:00:00Z"},
		{User: "Still dizzy", Assistant: "Check your blood pressure.", Timestamp: "2026-08-27T10:05:00Z"},
	}

	messages := MessagesFromHistory(history)
	if len(messages) != 4 {
		t.Fatalf("expected 4 messages, got %d", len(messages))
	}

	if messages[0].Role != "user" || messages[0].Content != "I feel dizzy" {
		t.Fatalf("unexpected first message: %+v", messages[0])
	}
	if messages[1].Role != "assistant" || messages[1].Content != "Sit down and rest." {
		t.Fatalf("unexpected second message: %+v", messages[1])
	}
	if messages[3].Timestamp != "2026-08-27T10:05:00Z" {
		t.Fatalf("timestamp not carried over: %+v", messages[3])
	}
}

func TestMessagesFromHistoryEmpty(t *testing.T) {
	if got := MessagesFromHistory(nil); len(got) != 0 {
		t.Fatalf("expected empty slice, got %d", len(got))
	}
}
