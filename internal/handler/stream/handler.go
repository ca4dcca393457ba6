package stream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/cloudwego/eino/schema"

	"github.com/agenticdoctor/backend/internal/service/ai"
	"github.com/agenticdoctor/backend/internal/service/session"
	"github.com/agenticdoctor/backend/pkg/utils"
)

// Handler manages streaming chat turns via Server-Sent Events.
type Handler struct {
	aiSvc    *ai.Service
	sessions *session.Store
}

// New creates a new stream handler.
func New(aiSvc *ai.Service, sessions *session.Store) *Handler {
	return &Handler{
		aiSvc:    aiSvc,
		sessions: sessions,
	}
}

// StreamResponse represents a streaming response chunk.
type StreamResponse struct {
	Event    string `json:"event"`
	CaseID   string `json:"caseId,omitempty"`
	Content  string `json:"content,omitempty"`
	Finished bool   `json:"finished,omitempty"`
	Error    string `json:"error,omitempty"`
}

// HandleStreamRequest runs one chat turn for caseID and streams the reply.
// The exchange is recorded once the full reply is known, so history and the
// durable log only ever contain completed turns.
func (h *Handler) HandleStreamRequest(ctx context.Context, w http.ResponseWriter, caseID, userMessage string) error {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return fmt.Errorf("streaming unsupported")
	}

	utils.SetupSSEHeaders(w)

	prompt := h.assemblePrompt(caseID, userMessage)

	utils.SendSSEChunk(w, flusher, StreamResponse{
		Event:  "start",
		CaseID: caseID,
	})

	var responseText string
	if h.aiSvc.StreamingEnabled() {
		text, err := h.streamReply(ctx, w, flusher, caseID, prompt)
		if err != nil {
			log.Printf("[stream] streaming turn failed for case=%s: %v", caseID, err)
			utils.SendSSEChunk(w, flusher, StreamResponse{
				Event:  "error",
				CaseID: caseID,
				Error:  err.Error(),
			})
			text = ai.FailureAdvice(err)
		}
		responseText = text
	} else {
		responseText = h.aiSvc.RunChatTurn(ctx, prompt)
	}

	utils.SendSSEChunk(w, flusher, StreamResponse{
		Event:   "message",
		CaseID:  caseID,
		Content: responseText,
	})

	if err := h.sessions.RecordExchange(caseID, userMessage, responseText); err != nil {
		log.Printf("[stream] failed to record exchange for case=%s: %v", caseID, err)
	}

	utils.SendSSEChunk(w, flusher, StreamResponse{
		Event:    "end",
		CaseID:   caseID,
		Finished: true,
	})

	log.Printf("[stream] completed response for case=%s", caseID)
	return nil
}

func (h *Handler) assemblePrompt(caseID, userMessage string) string {
	record, history, ok := h.sessions.GetContext(caseID)
	if !ok {
		return userMessage
	}
	return ai.AssembleContext(&record, history, userMessage)
}

func (h *Handler) streamReply(ctx context.Context, w http.ResponseWriter, flusher http.Flusher, caseID, prompt string) (string, error) {
	stream, err := h.aiSvc.StreamChatTurn(ctx, prompt)
	if err != nil {
		return "", err
	}
	defer stream.Close()

	chunks := make([]*schema.Message, 0, 8)
	for {
		chunk, recvErr := stream.Recv()
		if errors.Is(recvErr, io.EOF) {
			break
		}
		if recvErr != nil {
			return "", recvErr
		}
		if chunk == nil {
			continue
		}

		chunks = append(chunks, chunk)
		if chunk.Content != "" {
			utils.SendSSEChunk(w, flusher, StreamResponse{
				Event:   "delta",
				CaseID:  caseID,
				Content: chunk.Content,
			})
		}
	}

	response, err := schema.ConcatMessages(chunks)
	if err != nil {
		return "", err
	}
	return ai.SanitizeResponse(response.Content), nil
}
