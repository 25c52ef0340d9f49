package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"github.com/termgate/termgate/internal/crypto"
	"github.com/termgate/termgate/internal/database"
)

type targetRequest struct {
	ClientID string `json:"client_id"`
	Name     string `json:"name"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// ListTargets returns all registered targets. Credentials are never
// included in responses.
func ListTargets(w http.ResponseWriter, r *http.Request) {
	targets, err := database.ListTargets()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list targets")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"targets": targets})
}

// CreateTarget registers a new target host. The password is encrypted
// before it is stored.
func CreateTarget(w http.ResponseWriter, r *http.Request) {
	var req targetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.ClientID == "" || req.Host == "" || req.Username == "" {
		writeError(w, http.StatusBadRequest, "client_id, host and username are required")
		return
	}
	if req.Port == 0 {
		req.Port = 22
	}
	if req.Port < 1 || req.Port > 65535 {
		writeError(w, http.StatusBadRequest, "Invalid port")
		return
	}

	encrypted, err := crypto.Encrypt(req.Password)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to encrypt credential")
		return
	}

	t := &database.Target{
		ClientID: req.ClientID,
		Name:     req.Name,
		Host:     req.Host,
		Port:     req.Port,
		Username: req.Username,
		Password: encrypted,
	}
	if err := database.CreateTarget(t); err != nil {
		writeError(w, http.StatusConflict, "Target already exists or could not be saved")
		return
	}

	writeJSON(w, http.StatusCreated, t)
}

// DeleteTarget removes a target by client id.
func DeleteTarget(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "clientId")
	if clientID == "" {
		writeError(w, http.StatusBadRequest, "Client ID required")
		return
	}

	if err := database.DeleteTargetByClientID(clientID); err != nil {
		if err == gorm.ErrRecordNotFound {
			writeError(w, http.StatusNotFound, "Target not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete target")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
