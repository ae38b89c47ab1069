package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rxradar/backend/internal/application/services"
)

// InteractionHandler handles single-pair interaction checks
type InteractionHandler struct {
	analysisService *services.AnalysisService
}

// NewInteractionHandler creates a new interaction handler
func NewInteractionHandler(analysisService *services.AnalysisService) *InteractionHandler {
	return &InteractionHandler{analysisService: analysisService}
}

type checkRequest struct {
	Drug1 string `json:"drug1"`
	Drug2 string `json:"drug2"`
}

// Check handles POST /api/interactions/check
func (h *InteractionHandler) Check(w http.ResponseWriter, r *http.Request) {
	var req checkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	explanation, err := h.analysisService.CheckInteraction(r.Context(), req.Drug1, req.Drug2)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"explanation": explanation,
	})
}
