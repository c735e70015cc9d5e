package api

import (
	"net/http"
	"time"

	"github.com/inkwellapp/inkwell-server/internal/http/response"
)

// HealthResponse contains health check data.
type HealthResponse struct {
	Status string `json:"status"`
	Books  int    `json:"books"`
	Uptime string `json:"uptime"`
}

// handleHealthCheck reports server liveness and a database round trip.
// GET /health
func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	count, err := s.store.CountBooks(r.Context())
	if err != nil {
		s.logger.Error("Health check database probe failed", "error", err)
		response.JSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status: "unhealthy",
			Uptime: time.Since(s.startedAt).Round(time.Second).String(),
		}, s.logger.Logger)
		return
	}

	response.Success(w, HealthResponse{
		Status: "healthy",
		Books:  count,
		Uptime: time.Since(s.startedAt).Round(time.Second).String(),
	}, s.logger.Logger)
}
