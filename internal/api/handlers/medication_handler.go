package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rxradar/backend/internal/application/services"
	"github.com/rxradar/backend/internal/domain/entities"
)

// MedicationHandler handles saved medication lists
type MedicationHandler struct {
	medicationService *services.MedicationService
}

// NewMedicationHandler creates a new medication handler
func NewMedicationHandler(medicationService *services.MedicationService) *MedicationHandler {
	return &MedicationHandler{medicationService: medicationService}
}

type saveMedicationsRequest struct {
	Medications []medicationPayload `json:"medications"`
}

// Save handles POST /api/users/{username}/medications
func (h *MedicationHandler) Save(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	if username == "" {
		respondWithError(w, http.StatusBadRequest, "username is required")
		return
	}

	var req saveMedicationsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	medications := make([]*entities.MedicationEntry, 0, len(req.Medications))
	for _, med := range req.Medications {
		medications = append(medications, &entities.MedicationEntry{
			Name:              med.Name,
			Dosage:            med.Dosage,
			Frequency:         med.Frequency,
			ActiveIngredients: med.ActiveIngredients,
		})
	}

	if err := h.medicationService.Save(r.Context(), username, medications); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"message": "Medications saved successfully.",
	})
}

// Load handles GET /api/users/{username}/medications
func (h *MedicationHandler) Load(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	if username == "" {
		respondWithError(w, http.StatusBadRequest, "username is required")
		return
	}

	medications, err := h.medicationService.Load(r.Context(), username)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	if medications == nil {
		medications = []*entities.MedicationEntry{}
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"medications": medications,
	})
}
