package session

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/agenticdoctor/backend/internal/model/triage"
	"github.com/agenticdoctor/backend/internal/service/transcript"
)

var ErrCaseIDRequired = errors.New("case id is required")

// Store maps case identifiers to patient identity and ordered conversation
// history. It is constructed once at startup and injected into every
// handler; there is no package-level state.
type Store struct {
	mu      sync.RWMutex
	cases   map[string]triage.Case
	history map[string][]triage.Exchange
	flight  map[string]*sync.Mutex
	log     *transcript.Log
}

// NewStore bootstraps the in-memory session store backed by the durable
// transcript log.
func NewStore(transcriptLog *transcript.Log) *Store {
	return &Store{
		cases:   make(map[string]triage.Case),
		history: make(map[string][]triage.Exchange),
		flight:  make(map[string]*sync.Mutex),
		log:     transcriptLog,
	}
}

// NewCaseID mints a short opaque case token.
func NewCaseID() string {
	return uuid.NewString()[:8]
}

// InitializeCase creates or overwrites the record for caseID with a fresh
// start time and empty history, then rehydrates the history from every
// durable log entry matching the case. Malformed log lines are skipped;
// the skipped count is returned for observability.
func (s *Store) InitializeCase(caseID, name string, age int) (triage.Case, int, error) {
	if caseID == "" {
		return triage.Case{}, 0, ErrCaseIDRequired
	}

	record := triage.Case{
		ID:        caseID,
		Name:      name,
		Age:       age,
		StartedAt: time.Now().UTC(),
	}

	history := make([]triage.Exchange, 0, 16)
	entries, skipped, err := s.log.Scan(caseID)
	if err != nil && !errors.Is(err, transcript.ErrNoLog) {
		// Rehydration is best-effort: an unreadable log must not block a
		// new session.
		log.Printf("[session] could not load previous conversation history for case=%s: %v", caseID, err)
	}
	for _, entry := range entries {
		history = append(history, triage.Exchange{
			User:      entry.PatientInput,
			Assistant: entry.AgentResponse,
			Timestamp: entry.Timestamp,
		})
	}

	s.mu.Lock()
	s.cases[caseID] = record
	s.history[caseID] = history
	s.mu.Unlock()

	return record, skipped, nil
}

// AppendExchange appends one exchange to the in-memory history with the
// current timestamp. Unknown case ids are a deliberate no-op, not an error.
func (s *Store) AppendExchange(caseID, userText, assistantText string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.cases[caseID]; !ok {
		return
	}

	s.history[caseID] = append(s.history[caseID], triage.Exchange{
		User:      userText,
		Assistant: assistantText,
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

// GetContext returns the identity record and a copy of the full ordered
// history, or ok=false when the case is unknown.
func (s *Store) GetContext(caseID string) (triage.Case, []triage.Exchange, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.cases[caseID]
	if !ok {
		return triage.Case{}, nil, false
	}

	history := make([]triage.Exchange, len(s.history[caseID]))
	copy(history, s.history[caseID])
	return record, history, true
}

// RecordExchange appends one exchange to memory and the durable log as one
// logical unit, serialized per case so that at most one turn is in flight
// for a given case id.
func (s *Store) RecordExchange(caseID, userText, assistantText string) error {
	lock := s.caseLock(caseID)
	lock.Lock()
	defer lock.Unlock()

	s.AppendExchange(caseID, userText, assistantText)
	return s.log.Append(caseID, userText, assistantText)
}

// Clear drops the in-memory record for caseID. The durable log keeps its
// entries; a later InitializeCase with the same id rehydrates them.
func (s *Store) Clear(caseID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.cases, caseID)
	delete(s.history, caseID)
}

func (s *Store) caseLock(caseID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.flight[caseID]
	if !ok {
		lock = &sync.Mutex{}
		s.flight[caseID] = lock
	}
	return lock
}
