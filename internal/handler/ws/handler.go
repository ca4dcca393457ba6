package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/cloudwego/eino/schema"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/agenticdoctor/backend/internal/service/ai"
	"github.com/agenticdoctor/backend/internal/service/session"
)

// Handler serves interactive chat turns over a WebSocket connection.
type Handler struct {
	aiSvc    *ai.Service
	sessions *session.Store
	upgrader websocket.Upgrader
}

// New creates the WebSocket chat handler.
func New(aiSvc *ai.Service, sessions *session.Store) *Handler {
	return &Handler{
		aiSvc:    aiSvc,
		sessions: sessions,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes registers WebSocket routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/ws/chat/{caseID}", h.handleChat)
}

type inboundMessage struct {
	Type      string          `json:"type"`
	CaseID    string          `json:"caseId"`
	Data      json.RawMessage `json:"data"`
	Timestamp int64           `json:"timestamp"`
}

// TextMessage is the payload of a "text" frame from the patient UI.
type TextMessage struct {
	Text string `json:"text"`
}

type outgoingMessage struct {
	Type      string      `json:"type"`
	CaseID    string      `json:"caseId,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

// chatConn serializes writes to one connection. The ping loop and the read
// loop both produce outbound frames; the underlying conn allows at most one
// concurrent writer.
type chatConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func newChatConn(conn *websocket.Conn) *chatConn {
	return &chatConn{conn: conn}
}

func (c *chatConn) writeJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

func (c *chatConn) ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(websocket.PingMessage, nil)
}

func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	caseID := chi.URLParam(r, "caseID")
	if caseID == "" {
		http.Error(w, "caseID is required", http.StatusBadRequest)
		return
	}

	if h.aiSvc == nil {
		http.Error(w, "ai service unavailable", http.StatusServiceUnavailable)
		return
	}

	rawConn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[websocket] upgrade failed: %v", err)
		return
	}
	defer rawConn.Close()

	log.Printf("[websocket] new connection for case: %s", caseID)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	_ = rawConn.SetReadDeadline(time.Now().Add(60 * time.Second))
	rawConn.SetPongHandler(func(string) error {
		return rawConn.SetReadDeadline(time.Now().Add(60 * time.Second))
	})

	conn := newChatConn(rawConn)
	go h.pingLoop(ctx, conn)

	_, _, known := h.sessions.GetContext(caseID)
	h.sendInfo(conn, caseID, map[string]any{
		"type":      "connected",
		"caseKnown": known,
	})

	for {
		select {
		case <-ctx.Done():
			return
		default:
			var msg inboundMessage
			if err := rawConn.ReadJSON(&msg); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					log.Printf("[websocket] read error: %v", err)
				}
				return
			}

			_ = rawConn.SetReadDeadline(time.Now().Add(60 * time.Second))

			if msg.CaseID != "" && msg.CaseID != caseID {
				h.sendError(conn, "case mismatch")
				continue
			}

			h.handleMessage(ctx, conn, caseID, &msg)
		}
	}
}

func (h *Handler) handleMessage(ctx context.Context, conn *chatConn, caseID string, msg *inboundMessage) {
	switch msg.Type {
	case "text":
		h.handleTextMessage(ctx, conn, caseID, msg.Data)
	default:
		h.sendError(conn, "unsupported message type: "+msg.Type)
	}
}

func (h *Handler) handleTextMessage(ctx context.Context, conn *chatConn, caseID string, raw json.RawMessage) {
	var text TextMessage
	if err := json.Unmarshal(raw, &text); err != nil {
		h.sendError(conn, "invalid text payload")
		return
	}
	if text.Text == "" {
		return
	}

	h.processUserText(ctx, conn, caseID, text.Text)
}

func (h *Handler) processUserText(ctx context.Context, conn *chatConn, caseID, userText string) {
	prompt := userText
	if record, history, ok := h.sessions.GetContext(caseID); ok {
		prompt = ai.AssembleContext(&record, history, userText)
	}

	h.sendInfo(conn, caseID, map[string]any{
		"type": "user",
		"text": userText,
	})

	responseText, err := h.generateResponse(ctx, conn, caseID, prompt)
	if err != nil {
		responseText = ai.FailureAdvice(err)
		h.sendInfo(conn, caseID, map[string]any{
			"type":    "ai",
			"text":    responseText,
			"isFinal": true,
		})
	}

	if err := h.sessions.RecordExchange(caseID, userText, responseText); err != nil {
		log.Printf("[websocket] failed to record exchange for case=%s: %v", caseID, err)
	}
}

func (h *Handler) generateResponse(ctx context.Context, conn *chatConn, caseID, prompt string) (string, error) {
	if !h.aiSvc.StreamingEnabled() {
		text := h.aiSvc.RunChatTurn(ctx, prompt)
		h.sendInfo(conn, caseID, map[string]any{
			"type":    "ai",
			"text":    text,
			"isFinal": true,
		})
		return text, nil
	}

	stream, err := h.aiSvc.StreamChatTurn(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("ai streaming failed: %w", err)
	}
	defer stream.Close()

	var chunks []*schema.Message
	for {
		chunk, recvErr := stream.Recv()
		if errors.Is(recvErr, io.EOF) {
			break
		}
		if recvErr != nil {
			return "", fmt.Errorf("ai stream recv failed: %w", recvErr)
		}
		if chunk == nil {
			continue
		}
		chunks = append(chunks, chunk)
		if chunk.Content != "" {
			h.sendInfo(conn, caseID, map[string]any{
				"type": "ai_delta",
				"text": chunk.Content,
			})
		}
	}

	merged, err := schema.ConcatMessages(chunks)
	if err != nil {
		return "", fmt.Errorf("concat ai chunks failed: %w", err)
	}

	text := ai.SanitizeResponse(merged.Content)
	h.sendInfo(conn, caseID, map[string]any{
		"type":    "ai",
		"text":    text,
		"isFinal": true,
	})

	return text, nil
}

func (h *Handler) sendInfo(conn *chatConn, caseID string, data map[string]any) {
	msg := outgoingMessage{
		Type:      "result",
		CaseID:    caseID,
		Data:      data,
		Timestamp: time.Now().Unix(),
	}
	if err := conn.writeJSON(msg); err != nil {
		log.Printf("[websocket] write info failed: %v", err)
	}
}

func (h *Handler) sendError(conn *chatConn, message string) {
	msg := outgoingMessage{
		Type:      "error",
		Data:      map[string]string{"message": message},
		Timestamp: time.Now().Unix(),
	}
	if err := conn.writeJSON(msg); err != nil {
		log.Printf("[websocket] write error failed: %v", err)
	}
}

func (h *Handler) pingLoop(ctx context.Context, conn *chatConn) {
	ticker := time.NewTicker(54 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := conn.ping(); err != nil {
				return
			}
		}
	}
}
