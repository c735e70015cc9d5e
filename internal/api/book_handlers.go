package api

import (
	"encoding/json/v2"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/inkwellapp/inkwell-server/internal/domain"
	"github.com/inkwellapp/inkwell-server/internal/http/response"
	"github.com/inkwellapp/inkwell-server/internal/service"
	"github.com/inkwellapp/inkwell-server/internal/validation"
)

// handleListBooks lists the catalog with optional filtering, search, and
// ordering.
// GET /api/v1/books/?price=&author_name=&search=&ordering=
func (s *Server) handleListBooks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	books, err := s.bookService.List(r.Context(), service.ListParams{
		Price:      q.Get("price"),
		AuthorName: q.Get("author_name"),
		Search:     q.Get("search"),
		Ordering:   q.Get("ordering"),
	})
	if err != nil {
		response.HandleError(w, err, s.logger.Logger)
		return
	}

	response.Success(w, books, s.logger.Logger)
}

// handleGetBook returns a single book.
// GET /api/v1/books/{id}/
func (s *Server) handleGetBook(w http.ResponseWriter, r *http.Request) {
	book, err := s.bookService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger.Logger)
		return
	}

	response.Success(w, book, s.logger.Logger)
}

// handleCreateBook adds a book; the authenticated user becomes its owner.
// POST /api/v1/books/
func (s *Server) handleCreateBook(w http.ResponseWriter, r *http.Request) {
	var req service.BookRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		s.bookDecodeError(w, err)
		return
	}

	book, err := s.bookService.Create(r.Context(), currentUser(r.Context()), req)
	if err != nil {
		response.HandleError(w, err, s.logger.Logger)
		return
	}

	response.Created(w, book, s.logger.Logger)
}

// handleUpdateBook replaces all client-settable fields of a book.
// PUT /api/v1/books/{id}/
func (s *Server) handleUpdateBook(w http.ResponseWriter, r *http.Request) {
	var req service.BookRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		s.bookDecodeError(w, err)
		return
	}

	book, err := s.bookService.Update(r.Context(), currentUser(r.Context()), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err, s.logger.Logger)
		return
	}

	response.Success(w, book, s.logger.Logger)
}

// handlePatchBook applies a partial update to a book.
// PATCH /api/v1/books/{id}/
func (s *Server) handlePatchBook(w http.ResponseWriter, r *http.Request) {
	var patch service.BookPatch
	if err := json.UnmarshalRead(r.Body, &patch); err != nil {
		s.bookDecodeError(w, err)
		return
	}

	book, err := s.bookService.Patch(r.Context(), currentUser(r.Context()), chi.URLParam(r, "id"), patch)
	if err != nil {
		response.HandleError(w, err, s.logger.Logger)
		return
	}

	response.Success(w, book, s.logger.Logger)
}

// handleDeleteBook removes a book.
// DELETE /api/v1/books/{id}/
func (s *Server) handleDeleteBook(w http.ResponseWriter, r *http.Request) {
	err := s.bookService.Delete(r.Context(), currentUser(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger.Logger)
		return
	}

	response.NoContent(w)
}

// bookDecodeError answers a failed book payload decode. Price parse
// failures surface as field errors keyed to "price"; anything else is a
// generic parse error.
func (s *Server) bookDecodeError(w http.ResponseWriter, err error) {
	var fieldErr error
	switch {
	case errors.Is(err, domain.ErrPriceNegative):
		fieldErr = validation.FieldError("price", "Ensure this value is greater than or equal to 0.")
	case errors.Is(err, domain.ErrPriceTooLarge):
		fieldErr = validation.FieldError("price", "Ensure that there are no more than 5 digits before the decimal point.")
	case errors.Is(err, domain.ErrPriceFormat):
		fieldErr = validation.FieldError("price", "A valid number is required.")
	default:
		response.BadRequest(w, response.MsgInvalidJSON, s.logger.Logger)
		return
	}
	response.HandleError(w, fieldErr, s.logger.Logger)
}
