package handlers

import "net/http"

// HealthCheck reports liveness and the number of active bridges.
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":         "ok",
		"active_bridges": Registry.Len(),
	})
}
