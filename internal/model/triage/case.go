package triage

import "time"

// Case identifies one patient session. The identifier is a short opaque
// token; everything else is entered by the patient at session start.
type Case struct {
	ID        string    `json:"caseId"`
	Name      string    `json:"name"`
	Age       int       `json:"age"`
	StartedAt time.Time `json:"startedAt"`
}

// Exchange is one completed patient/assistant turn kept in memory for
// prompt assembly. Timestamp carries the log timestamp verbatim so that
// rehydrated history stays byte-comparable with freshly appended history.
type Exchange struct {
	User      string `json:"user"`
	Assistant string `json:"assistant"`
	Timestamp string `json:"timestamp"`
}
