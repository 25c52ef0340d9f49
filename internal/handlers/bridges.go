package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// ListBridges returns the live bridges.
func ListBridges(w http.ResponseWriter, r *http.Request) {
	type bridgeResponse struct {
		SessionID string `json:"session_id"`
		ClientID  string `json:"client_id"`
		Host      string `json:"host"`
		State     string `json:"state"`
		CreatedAt string `json:"created_at"`
	}

	bridges := Registry.List()
	resp := make([]bridgeResponse, len(bridges))
	for i, b := range bridges {
		resp[i] = bridgeResponse{
			SessionID: b.SessionID,
			ClientID:  b.ClientID,
			Host:      b.Host,
			State:     string(b.State()),
			CreatedAt: b.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"bridges": resp})
}

// CloseBridge force-closes a live bridge by session id.
func CloseBridge(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionId")
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, "Session ID required")
		return
	}

	b, ok := Registry.Lookup(sessionID)
	if !ok {
		writeError(w, http.StatusNotFound, "Bridge not found")
		return
	}

	b.Close()
	writeJSON(w, http.StatusOK, map[string]string{"status": "closed"})
}
