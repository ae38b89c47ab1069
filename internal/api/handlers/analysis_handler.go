package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rxradar/backend/internal/application/services"
	"github.com/rxradar/backend/internal/domain/entities"
)

// AnalysisHandler handles medication batch analysis requests
type AnalysisHandler struct {
	analysisService *services.AnalysisService
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(analysisService *services.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{analysisService: analysisService}
}

type medicationPayload struct {
	Name              string   `json:"name"`
	Dosage            string   `json:"dosage"`
	Frequency         string   `json:"frequency"`
	ActiveIngredients []string `json:"active_ingredients"`
}

type analyzeRequest struct {
	Medications []medicationPayload `json:"medications"`
}

type analyzeResponse struct {
	Alerts []entities.Alert `json:"alerts"`
}

// Analyze handles POST /api/analyze. Active ingredients on the input are
// assumed already resolved by the caller.
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entries := make([]*entities.MedicationEntry, 0, len(req.Medications))
	for _, med := range req.Medications {
		entries = append(entries, &entities.MedicationEntry{
			Name:              med.Name,
			Dosage:            med.Dosage,
			Frequency:         med.Frequency,
			ActiveIngredients: med.ActiveIngredients,
			Status:            entities.StatusResolved,
		})
	}

	alerts, err := h.analysisService.Analyze(r.Context(), entries)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, analyzeResponse{Alerts: alerts})
}
