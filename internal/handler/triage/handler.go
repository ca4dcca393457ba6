package triage

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	triagemodel "github.com/agenticdoctor/backend/internal/model/triage"
	"github.com/agenticdoctor/backend/internal/service/ai"
	"github.com/agenticdoctor/backend/internal/service/session"
	"github.com/agenticdoctor/backend/internal/service/transcript"
	"github.com/agenticdoctor/backend/pkg/utils"
)

// Handler owns the case lifecycle and the synchronous chat turn.
type Handler struct {
	sessions    *session.Store
	transcripts *transcript.Log
	aiSvc       *ai.Service
}

// New creates the triage handler. aiSvc may be nil when no model is
// configured; chat turns then respond 503 while the rest keeps working.
func New(sessions *session.Store, transcripts *transcript.Log, aiSvc *ai.Service) *Handler {
	return &Handler{
		sessions:    sessions,
		transcripts: transcripts,
		aiSvc:       aiSvc,
	}
}

// RegisterRoutes registers case routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/case", h.handleStartCase)
	r.Get("/case/{caseID}", h.handleGetCase)
	r.Delete("/case/{caseID}", h.handleEndCase)
	r.Post("/case/{caseID}/messages", h.handleSendMessage)
	r.Post("/case/{caseID}/export", h.handleExport)
	r.Get("/case/{caseID}/summary", h.handleSummary)
}

func (h *Handler) handleStartCase(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		CaseID string `json:"caseId"`
		Name   string `json:"name"`
		Age    int    `json:"age"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if payload.Name == "" {
		utils.RespondError(w, http.StatusBadRequest, "name is required")
		return
	}
	if payload.Age <= 0 || payload.Age > 120 {
		utils.RespondError(w, http.StatusBadRequest, "age must be between 1 and 120")
		return
	}

	caseID := payload.CaseID
	if caseID == "" {
		caseID = session.NewCaseID()
	}

	record, skipped, err := h.sessions.InitializeCase(caseID, payload.Name, payload.Age)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	_, history, _ := h.sessions.GetContext(caseID)
	utils.RespondJSON(w, http.StatusCreated, map[string]any{
		"case":            record,
		"rehydratedTurns": len(history),
		"skippedLogLines": skipped,
	})
}

func (h *Handler) handleGetCase(w http.ResponseWriter, r *http.Request) {
	caseID := chi.URLParam(r, "caseID")

	record, history, ok := h.sessions.GetContext(caseID)
	if !ok {
		utils.RespondError(w, http.StatusNotFound, "case not found")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"case":     record,
		"history":  history,
		"messages": triagemodel.MessagesFromHistory(history),
	})
}

func (h *Handler) handleEndCase(w http.ResponseWriter, r *http.Request) {
	h.sessions.Clear(chi.URLParam(r, "caseID"))
	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

func (h *Handler) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	caseID := chi.URLParam(r, "caseID")

	var payload struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Message == "" {
		utils.RespondError(w, http.StatusBadRequest, "message is required")
		return
	}

	if h.aiSvc == nil {
		utils.RespondError(w, http.StatusServiceUnavailable, "ai service unavailable")
		return
	}

	prompt := payload.Message
	if record, history, ok := h.sessions.GetContext(caseID); ok {
		prompt = ai.AssembleContext(&record, history, payload.Message)
	}

	response := h.aiSvc.RunChatTurn(r.Context(), prompt)

	if err := h.sessions.RecordExchange(caseID, payload.Message, response); err != nil {
		// The reply is still shown; durability is reported, not fatal.
		log.Printf("[triage] failed to record exchange for case=%s: %v", caseID, err)
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"caseId":   caseID,
		"response": response,
	})
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	caseID := chi.URLParam(r, "caseID")

	var info *triagemodel.Case
	if record, _, ok := h.sessions.GetContext(caseID); ok {
		info = &record
	}

	message, err := h.transcripts.ExportToText(caseID, info)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"message": message})
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	caseID := chi.URLParam(r, "caseID")
	utils.RespondJSON(w, http.StatusOK, h.transcripts.Summarize(caseID))
}
