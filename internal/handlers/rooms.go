// internal/handlers/rooms.go
package handlers

import (
	"encoding/json"
	"net/http"
)

// ListRoomsHandler returns the public snapshot of every room. Debug/lobby
// browser endpoint; no private data crosses here by construction, since it
// serializes public views only.
func ListRoomsHandler(srv *Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(srv.Registry.Views())
	}
}

// HealthHandler is a liveness probe.
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "healthy", "service": "uno-service"})
}
