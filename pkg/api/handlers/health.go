package handlers

import (
	"net/http"

	"github.com/marmos91/sessiongate/pkg/connection"
)

// HealthHandler handles health check endpoints.
//
// Health endpoints are unauthenticated and provide:
//   - Liveness probe: Is the server process running?
//   - Readiness probe: Is the enforcement layer wired up?
type HealthHandler struct {
	tracker *connection.Tracker
}

// NewHealthHandler creates a new health handler.
//
// The tracker parameter may be nil, in which case the readiness check
// returns unhealthy status.
func NewHealthHandler(tracker *connection.Tracker) *HealthHandler {
	return &HealthHandler{tracker: tracker}
}

// Liveness handles GET /health - simple liveness probe.
//
// Returns 200 OK if the server process is running. This endpoint is designed
// for Kubernetes liveness probes and should always succeed as long as the
// HTTP server is responsive.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthyResponse(map[string]string{
		"service": "sessiongate",
	}))
}

// Readiness handles GET /health/ready - readiness probe.
//
// Returns 200 OK if the connection tracker is wired up, along with the
// number of resources currently in use. Returns 503 Service Unavailable
// otherwise.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	if h.tracker == nil {
		writeJSON(w, http.StatusServiceUnavailable, unhealthyResponse("connection tracker not initialized"))
		return
	}

	writeJSON(w, http.StatusOK, healthyResponse(map[string]interface{}{
		"active_resources": len(h.tracker.Active()),
	}))
}
