package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/inkwellapp/inkwell-server/internal/domain"
	apperrors "github.com/inkwellapp/inkwell-server/internal/errors"
	"github.com/inkwellapp/inkwell-server/internal/id"
	"github.com/inkwellapp/inkwell-server/internal/normalize"
	"github.com/inkwellapp/inkwell-server/internal/store"
	"github.com/inkwellapp/inkwell-server/internal/validation"
)

// BookService implements the catalog operations: CRUD over books with
// filtering, search, ordering, and ownership-based write permissions.
type BookService struct {
	store     store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewBookService creates a new catalog service.
func NewBookService(store store.Store, validator *validation.Validator, logger *slog.Logger) *BookService {
	return &BookService{
		store:     store,
		validator: validator,
		logger:    logger,
	}
}

// BookRequest contains the client-settable fields of a book. Owner is
// never accepted from the client; it is assigned server-side on create.
// Price decodes from either a JSON number or a decimal string.
type BookRequest struct {
	Title      string        `json:"title" validate:"required,max=255"`
	Price      *domain.Price `json:"price" validate:"required"`
	AuthorName string        `json:"author_name" validate:"required,max=255"`
}

// BookPatch contains optional fields for partial updates. Absent fields
// leave the current value untouched.
type BookPatch struct {
	Title      *string       `json:"title" validate:"omitempty,max=255"`
	Price      *domain.Price `json:"price"`
	AuthorName *string       `json:"author_name" validate:"omitempty,max=255"`
}

// ListParams are the raw query parameters of a listing request.
type ListParams struct {
	Price      string
	AuthorName string
	Search     string
	Ordering   string
}

// List returns books matching the given filters, search, and ordering.
func (s *BookService) List(ctx context.Context, params ListParams) ([]*domain.Book, error) {
	query := store.BookListQuery{}

	if params.Price != "" {
		price, err := domain.ParsePrice(params.Price)
		if err != nil {
			return nil, validation.FieldError("price", "Enter a number.")
		}
		query.Price = &price
	}
	if params.AuthorName != "" {
		author := params.AuthorName
		query.AuthorName = &author
	}
	if params.Search != "" {
		query.Search = normalize.SearchTerm(params.Search)
	}

	// Unrecognized ordering fields are ignored; the listing falls back
	// to its default order.
	if field, descending, ok := store.ParseOrdering(params.Ordering); ok {
		query.OrderBy = field
		query.Descending = descending
	}

	return s.store.ListBooks(ctx, query)
}

// Get fetches a single book by ID.
func (s *BookService) Get(ctx context.Context, bookID string) (*domain.Book, error) {
	return s.store.GetBook(ctx, bookID)
}

// Create adds a book to the catalog. The actor becomes its owner.
// Requires an authenticated actor.
func (s *BookService) Create(ctx context.Context, actor *domain.User, req BookRequest) (*domain.Book, error) {
	if !domain.CanPerform(actor, nil, domain.ActionCreate) {
		return nil, apperrors.Unauthorized("authentication required")
	}

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	bookID, err := id.Generate("book")
	if err != nil {
		return nil, fmt.Errorf("generate book ID: %w", err)
	}

	book := &domain.Book{
		ID:         bookID,
		Title:      req.Title,
		Price:      *req.Price,
		AuthorName: req.AuthorName,
		OwnerID:    &actor.ID,
	}
	book.InitTimestamps()

	if err := s.store.CreateBook(ctx, book); err != nil {
		return nil, fmt.Errorf("create book: %w", err)
	}

	s.logger.Info("Book created", "book_id", bookID, "owner_id", actor.ID)
	return book, nil
}

// Update replaces all client-settable fields of a book.
// Only the owner or staff may update.
func (s *BookService) Update(ctx context.Context, actor *domain.User, bookID string, req BookRequest) (*domain.Book, error) {
	book, err := s.store.GetBook(ctx, bookID)
	if err != nil {
		return nil, err
	}

	if !domain.CanPerform(actor, book, domain.ActionUpdate) {
		return nil, permissionError(actor)
	}

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	book.Title = req.Title
	book.Price = *req.Price
	book.AuthorName = req.AuthorName
	book.Touch()

	if err := s.store.UpdateBook(ctx, book); err != nil {
		return nil, fmt.Errorf("update book: %w", err)
	}

	return book, nil
}

// Patch applies a partial update to a book.
// Only the owner or staff may update.
func (s *BookService) Patch(ctx context.Context, actor *domain.User, bookID string, patch BookPatch) (*domain.Book, error) {
	book, err := s.store.GetBook(ctx, bookID)
	if err != nil {
		return nil, err
	}

	if !domain.CanPerform(actor, book, domain.ActionUpdate) {
		return nil, permissionError(actor)
	}

	if err := s.validator.Validate(patch); err != nil {
		return nil, err
	}

	if patch.Title != nil {
		if *patch.Title == "" {
			return nil, validation.FieldError("title", "This field may not be blank.")
		}
		book.Title = *patch.Title
	}
	if patch.Price != nil {
		book.Price = *patch.Price
	}
	if patch.AuthorName != nil {
		if *patch.AuthorName == "" {
			return nil, validation.FieldError("author_name", "This field may not be blank.")
		}
		book.AuthorName = *patch.AuthorName
	}
	book.Touch()

	if err := s.store.UpdateBook(ctx, book); err != nil {
		return nil, fmt.Errorf("update book: %w", err)
	}

	return book, nil
}

// Delete removes a book from the catalog.
// Only the owner or staff may delete.
func (s *BookService) Delete(ctx context.Context, actor *domain.User, bookID string) error {
	book, err := s.store.GetBook(ctx, bookID)
	if err != nil {
		return err
	}

	if !domain.CanPerform(actor, book, domain.ActionDelete) {
		return permissionError(actor)
	}

	if err := s.store.DeleteBook(ctx, bookID); err != nil {
		return fmt.Errorf("delete book: %w", err)
	}

	s.logger.Info("Book deleted", "book_id", bookID)
	return nil
}

// permissionError distinguishes missing credentials from insufficient ones.
func permissionError(actor *domain.User) error {
	if actor == nil {
		return apperrors.Unauthorized("authentication required")
	}
	return apperrors.Forbidden("you do not have permission to modify this book")
}
