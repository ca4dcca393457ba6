package triage

// ChatMessage is the UI-facing message shape. Unlike Exchange it is
// role-tagged and transient: clients rebuild it from the API, it is never
// persisted directly.
type ChatMessage struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// MessagesFromHistory flattens ordered exchanges into role-tagged messages,
// two per exchange, preserving order.
func MessagesFromHistory(history []Exchange) []ChatMessage {
	out := make([]ChatMessage, 0, len(history)*2)
	for _, exchange := range history {
		out = append(out,
			ChatMessage{Role: "user", Content: exchange.User, Timestamp: exchange.Timestamp},
			ChatMessage{Role: "assistant", Content: exchange.Assistant, Timestamp: exchange.Timestamp},
		)
	}
	return out
}
