package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rxradar/backend/internal/application/services"
	"github.com/rxradar/backend/internal/domain/entities"
)

// ResolutionHandler runs one stateless resolution pass over a medication
// batch. The client keeps the entries, applies disambiguation and correction
// choices, and resubmits until the batch is ready.
type ResolutionHandler struct {
	resolver *services.NameResolver
}

// NewResolutionHandler creates a new resolution handler
func NewResolutionHandler(resolver *services.NameResolver) *ResolutionHandler {
	return &ResolutionHandler{resolver: resolver}
}

type resolveRequest struct {
	Medications []medicationPayload `json:"medications"`
}

type resolveResponse struct {
	Phase           services.SessionPhase               `json:"phase"`
	Medications     []*entities.MedicationEntry         `json:"medications"`
	Disambiguations []*entities.DisambiguationCandidate `json:"disambiguations"`
	Corrections     []*entities.CorrectionCandidate     `json:"corrections"`
}

// Resolve handles POST /api/resolve
func (h *ResolutionHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	var req resolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Medications) == 0 {
		respondWithError(w, http.StatusBadRequest, "at least one medication is required")
		return
	}

	entries := make([]*entities.MedicationEntry, 0, len(req.Medications))
	for _, med := range req.Medications {
		entry := &entities.MedicationEntry{
			Name:              med.Name,
			Dosage:            med.Dosage,
			Frequency:         med.Frequency,
			ActiveIngredients: med.ActiveIngredients,
			Status:            entities.StatusPending,
		}
		// Entries arriving with settled ingredients stay settled.
		if len(med.ActiveIngredients) > 0 {
			entry.Status = entities.StatusResolved
		}
		entries = append(entries, entry)
	}

	session := services.NewAnalysisSession(h.resolver, entries)
	phase := session.RunPass()

	disambiguations := session.Disambiguations()
	if disambiguations == nil {
		disambiguations = []*entities.DisambiguationCandidate{}
	}
	corrections := session.Corrections()
	if corrections == nil {
		corrections = []*entities.CorrectionCandidate{}
	}

	respondWithJSON(w, http.StatusOK, resolveResponse{
		Phase:           phase,
		Medications:     session.Entries(),
		Disambiguations: disambiguations,
		Corrections:     corrections,
	})
}
