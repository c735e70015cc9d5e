package api

import (
	"net/http"

	"github.com/inkwellapp/inkwell-server/internal/http/response"
)

// handleGetCurrentUser returns the authenticated user's own record.
// GET /api/v1/users/me
func (s *Server) handleGetCurrentUser(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r.Context())
	if user == nil {
		response.Unauthorized(w, s.logger.Logger)
		return
	}

	response.Success(w, user, s.logger.Logger)
}
