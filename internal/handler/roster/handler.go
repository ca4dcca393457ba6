package roster

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	rostermodel "github.com/agenticdoctor/backend/internal/model/roster"
	"github.com/agenticdoctor/backend/pkg/utils"
)

// Handler serves the agent roster.
type Handler struct {
	profiles rostermodel.Store
}

// New creates the roster handler.
func New(profiles rostermodel.Store) *Handler {
	return &Handler{profiles: profiles}
}

// RegisterRoutes registers roster routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/agents", h.handleListAgents)
}

func (h *Handler) handleListAgents(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.profiles.List())
}
