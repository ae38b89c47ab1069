package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rxradar/backend/internal/application/services"
	"github.com/rxradar/backend/internal/domain/entities"
)

// AuthHandler handles registration and login
type AuthHandler struct {
	authService       *services.AuthService
	medicationService *services.MedicationService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, medicationService *services.MedicationService) *AuthHandler {
	return &AuthHandler{
		authService:       authService,
		medicationService: medicationService,
	}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.authService.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]string{
		"message":  "User registered successfully.",
		"user_id":  user.ID,
		"username": user.Username,
	})
}

// Login handles POST /api/auth/login. A successful login also returns the
// user's stored medication list so the client can restore it in one call.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	medications, err := h.medicationService.Load(r.Context(), user.Username)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	if medications == nil {
		medications = []*entities.MedicationEntry{}
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"username":    user.Username,
		"user_id":     user.ID,
		"medications": medications,
	})
}
