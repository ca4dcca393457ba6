package session

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/agenticdoctor/backend/internal/service/transcript"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	return NewStore(transcript.NewLog(filepath.Join(dir, "chat_history.json"), filepath.Join(dir, "reports")))
}

func TestNewCaseIDShape(t *testing.T) {
	id := NewCaseID()
	if len(id) != 8 {
		t.Fatalf("expected 8-char case id, got %q", id)
	}
	if id == NewCaseID() {
		t.Fatalf("case ids should not repeat")
	}
}

func TestInitializeCaseRequiresID(t *testing.T) {
	store := newTestStore(t)

	_, _, err := store.InitializeCase("", "Asha", 34)
	if !errors.Is(err, ErrCaseIDRequired) {
		t.Fatalf("expected ErrCaseIDRequired, got %v", err)
	}
}

func TestAppendExchangeUnknownCaseIsNoOp(t *testing.T) {
	store := newTestStore(t)

	store.AppendExchange("ghost", "hello", "hi")

	if _, _, ok := store.GetContext("ghost"); ok {
		t.Fatalf("unknown case should stay unknown")
	}
}

func TestAppendExchangePreservesOrder(t *testing.T) {
	store := newTestStore(t)

	if _, _, err := store.InitializeCase("abc12345", "Asha", 34); err != nil {
		t.Fatalf("initialize failed: %v", err)
	}

	inputs := []string{"one", "two", "three"}
	for _, input := range inputs {
		store.AppendExchange("abc12345", input, "reply "+input)
	}

	record, history, ok := store.GetContext("abc12345")
	if !ok {
		t.Fatalf("case should exist")
	}
	if record.Name != "Asha" || record.Age != 34 {
		t.Fatalf("unexpected record: %+v", record)
	}
	if len(history) != len(inputs) {
		t.Fatalf("expected %d exchanges, got %d", len(inputs), len(history))
	}
	for i, exchange := range history {
		if exchange.User != inputs[i] {
			t.Fatalf("exchange %d out of order: %q", i, exchange.User)
		}
		if exchange.Timestamp == "" {
			t.Fatalf("exchange %d missing timestamp", i)
		}
	}
}

func TestGetContextReturnsCopy(t *testing.T) {
	store := newTestStore(t)

	if _, _, err := store.InitializeCase("abc12345", "Asha", 34); err != nil {
		t.Fatalf("initialize failed: %v", err)
	}
	store.AppendExchange("abc12345", "hello", "hi")

	_, history, _ := store.GetContext("abc12345")
	history[0].User = "mutated"

	_, fresh, _ := store.GetContext("abc12345")
	if fresh[0].User != "hello" {
		t.Fatalf("stored history was mutated through the returned slice")
	}
}

func TestRecordExchangeIsDurable(t *testing.T) {
	store := newTestStore(t)

	if _, _, err := store.InitializeCase("abc12345", "Asha", 34); err != nil {
		t.Fatalf("initialize failed: %v", err)
	}

	if err := store.RecordExchange("abc12345", "I have a fever", "How high is it?"); err != nil {
		t.Fatalf("record failed: %v", err)
	}
	if err := store.RecordExchange("abc12345", "39 degrees", "Please see a doctor today."); err != nil {
		t.Fatalf("record failed: %v", err)
	}

	// A fresh initialize must replay the durable log.
	record, skipped, err := store.InitializeCase("abc12345", "Asha", 34)
	if err != nil {
		t.Fatalf("reinitialize failed: %v", err)
	}
	if skipped != 0 {
		t.Fatalf("expected 0 skipped lines, got %d", skipped)
	}
	if record.ID != "abc12345" {
		t.Fatalf("unexpected record: %+v", record)
	}

	_, history, _ := store.GetContext("abc12345")
	if len(history) != 2 {
		t.Fatalf("expected 2 rehydrated exchanges, got %d", len(history))
	}
	if history[0].User != "I have a fever" || history[1].User != "39 degrees" {
		t.Fatalf("rehydrated history out of order: %+v", history)
	}
}

func TestClearKeepsDurableLog(t *testing.T) {
	store := newTestStore(t)

	if _, _, err := store.InitializeCase("abc12345", "Asha", 34); err != nil {
		t.Fatalf("initialize failed: %v", err)
	}
	if err := store.RecordExchange("abc12345", "hello", "hi"); err != nil {
		t.Fatalf("record failed: %v", err)
	}

	store.Clear("abc12345")
	if _, _, ok := store.GetContext("abc12345"); ok {
		t.Fatalf("cleared case should be unknown")
	}

	if _, _, err := store.InitializeCase("abc12345", "Asha", 34); err != nil {
		t.Fatalf("reinitialize failed: %v", err)
	}
	_, history, _ := store.GetContext("abc12345")
	if len(history) != 1 {
		t.Fatalf("expected rehydrated exchange after clear, got %d", len(history))
	}
}
