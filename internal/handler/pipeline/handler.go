package pipeline

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/agenticdoctor/backend/internal/service/ai"
	"github.com/agenticdoctor/backend/pkg/utils"
)

// Handler exposes the full diagnostic pipeline and single-task dispatch.
type Handler struct {
	aiSvc *ai.Service
}

// New creates the pipeline handler.
func New(aiSvc *ai.Service) *Handler {
	return &Handler{aiSvc: aiSvc}
}

// RegisterRoutes registers dispatch routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/diagnostic", h.handleDiagnostic)
	r.Post("/tasks/{taskType}", h.handleSingleTask)
}

func (h *Handler) handleDiagnostic(w http.ResponseWriter, r *http.Request) {
	if h.aiSvc == nil {
		utils.RespondError(w, http.StatusServiceUnavailable, "ai service unavailable")
		return
	}

	var payload struct {
		PatientInput  string `json:"patientInput"`
		ImagePath     string `json:"imagePath"`
		LabReportPath string `json:"labReportPath"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil && !errors.Is(err, io.EOF) {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result := h.aiSvc.RunDiagnosticPipeline(r.Context(), ai.PipelineInput{
		PatientInput:  payload.PatientInput,
		ImagePath:     payload.ImagePath,
		LabReportPath: payload.LabReportPath,
	})

	utils.RespondJSON(w, http.StatusOK, result)
}

// handleSingleTask forwards arbitrary keyword payload verbatim to one named
// agent/task pair. An unknown task type is a reported error string in a 200
// response, matching the dispatcher contract.
func (h *Handler) handleSingleTask(w http.ResponseWriter, r *http.Request) {
	if h.aiSvc == nil {
		utils.RespondError(w, http.StatusServiceUnavailable, "ai service unavailable")
		return
	}

	taskType := chi.URLParam(r, "taskType")

	var raw map[string]any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	kwargs := make(map[string]string, len(raw))
	for key, value := range raw {
		switch v := value.(type) {
		case string:
			kwargs[key] = v
		default:
			kwargs[key] = fmt.Sprint(v)
		}
	}

	result := h.aiSvc.RunSingleTask(r.Context(), taskType, kwargs)

	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"task":   taskType,
		"result": result,
	})
}
