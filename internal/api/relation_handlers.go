package api

import (
	"encoding/json/v2"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/inkwellapp/inkwell-server/internal/http/response"
	"github.com/inkwellapp/inkwell-server/internal/service"
)

// handleGetRelation returns the caller's relation to a book, creating a
// default one on first access.
// GET /api/v1/relations/{book_id}/
func (s *Server) handleGetRelation(w http.ResponseWriter, r *http.Request) {
	relation, err := s.relationService.Get(r.Context(), currentUser(r.Context()), chi.URLParam(r, "book_id"))
	if err != nil {
		response.HandleError(w, err, s.logger.Logger)
		return
	}

	response.Success(w, relation, s.logger.Logger)
}

// handlePatchRelation upserts and partially updates the caller's relation
// to a book. The book is addressed by the URL, never by the body.
// PATCH /api/v1/relations/{book_id}/
func (s *Server) handlePatchRelation(w http.ResponseWriter, r *http.Request) {
	var patch service.RelationPatch
	if err := json.UnmarshalRead(r.Body, &patch); err != nil {
		response.BadRequest(w, response.MsgInvalidJSON, s.logger.Logger)
		return
	}

	relation, err := s.relationService.Patch(r.Context(), currentUser(r.Context()), chi.URLParam(r, "book_id"), patch)
	if err != nil {
		response.HandleError(w, err, s.logger.Logger)
		return
	}

	response.Success(w, relation, s.logger.Logger)
}
