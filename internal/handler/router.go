package handler

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/agenticdoctor/backend/internal/handler/pipeline"
	rosterHandler "github.com/agenticdoctor/backend/internal/handler/roster"
	"github.com/agenticdoctor/backend/internal/handler/stream"
	triageHandler "github.com/agenticdoctor/backend/internal/handler/triage"
	"github.com/agenticdoctor/backend/internal/handler/ws"
	middlewarePkg "github.com/agenticdoctor/backend/internal/middleware"
	rosterModel "github.com/agenticdoctor/backend/internal/model/roster"
	aiService "github.com/agenticdoctor/backend/internal/service/ai"
	sessionService "github.com/agenticdoctor/backend/internal/service/session"
	transcriptService "github.com/agenticdoctor/backend/internal/service/transcript"
	"github.com/agenticdoctor/backend/pkg/utils"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(profiles rosterModel.Store, sessions *sessionService.Store, transcripts *transcriptService.Log, aiSvc *aiService.Service) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	agentsHandler := rosterHandler.New(profiles)
	caseHandler := triageHandler.New(sessions, transcripts, aiSvc)

	// Streaming and dispatch endpoints only exist with a configured model.
	var streamHandler *stream.Handler
	if aiSvc != nil {
		streamHandler = stream.New(aiSvc, sessions)
	}

	r.Route("/api", func(api chi.Router) {
		agentsHandler.RegisterRoutes(api)
		caseHandler.RegisterRoutes(api)

		pipelineHandler := pipeline.New(aiSvc)
		pipelineHandler.RegisterRoutes(api)

		api.Get("/stream/{caseID}", func(w http.ResponseWriter, r *http.Request) {
			caseID := chi.URLParam(r, "caseID")
			userMessage := r.URL.Query().Get("message")

			if streamHandler == nil {
				utils.RespondError(w, http.StatusServiceUnavailable, "ai streaming unavailable")
				return
			}
			if userMessage == "" {
				utils.RespondError(w, http.StatusBadRequest, "message query parameter is required")
				return
			}

			if err := streamHandler.HandleStreamRequest(r.Context(), w, caseID, userMessage); err != nil {
				log.Printf("[stream] error handling request: %v", err)
				utils.RespondError(w, http.StatusInternalServerError, "streaming failed")
			}
		})

		if aiSvc != nil {
			wsHandler := ws.New(aiSvc, sessions)
			wsHandler.RegisterRoutes(api)
		}
	})

	return r
}
