package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/inkwellapp/inkwell-server/internal/domain"
	"github.com/inkwellapp/inkwell-server/internal/store"
)

// bookColumns is the ordered list of columns selected in book queries.
// Must match the scan order in scanBook.
const bookColumns = `id, title, price_cents, author_name, owner_id, created_at, updated_at`

// scanBook scans a sql.Row (or sql.Rows via its Scan method) into a domain.Book.
func scanBook(scanner interface{ Scan(dest ...any) error }) (*domain.Book, error) {
	var b domain.Book

	var (
		priceCents int64
		ownerID    sql.NullString
		createdAt  string
		updatedAt  string
	)

	err := scanner.Scan(
		&b.ID,
		&b.Title,
		&priceCents,
		&b.AuthorName,
		&ownerID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.Price = domain.Price(priceCents)
	if ownerID.Valid {
		b.OwnerID = &ownerID.String
	}

	b.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	b.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &b, nil
}

// CreateBook inserts a new book.
func (s *Store) CreateBook(ctx context.Context, book *domain.Book) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO books (id, title, price_cents, author_name, owner_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		book.ID,
		book.Title,
		book.Price.Cents(),
		book.AuthorName,
		nullableString(book.OwnerID),
		formatTime(book.CreatedAt),
		formatTime(book.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert book: %w", err)
	}
	return nil
}

// GetBook fetches a book by ID.
// Returns store.ErrBookNotFound if the book does not exist.
func (s *Store) GetBook(ctx context.Context, id string) (*domain.Book, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+bookColumns+` FROM books WHERE id = ?`, id)

	book, err := scanBook(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrBookNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get book: %w", err)
	}
	return book, nil
}

// UpdateBook persists all mutable fields of a book.
// Returns store.ErrBookNotFound if the book does not exist.
func (s *Store) UpdateBook(ctx context.Context, book *domain.Book) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE books
		SET title = ?, price_cents = ?, author_name = ?, owner_id = ?, updated_at = ?
		WHERE id = ?`,
		book.Title,
		book.Price.Cents(),
		book.AuthorName,
		nullableString(book.OwnerID),
		formatTime(book.UpdatedAt),
		book.ID,
	)
	if err != nil {
		return fmt.Errorf("update book: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update book rows affected: %w", err)
	}
	if rows == 0 {
		return store.ErrBookNotFound
	}
	return nil
}

// DeleteBook removes a book. Relations referencing it cascade.
// Returns store.ErrBookNotFound if the book does not exist.
func (s *Store) DeleteBook(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM books WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete book rows affected: %w", err)
	}
	if rows == 0 {
		return store.ErrBookNotFound
	}
	return nil
}

// ListBooks returns books matching the query's filters, search term, and
// ordering. With no ordering requested the result is sorted by id so
// listings stay stable across calls.
func (s *Store) ListBooks(ctx context.Context, query store.BookListQuery) ([]*domain.Book, error) {
	var (
		conditions []string
		args       []any
	)

	if query.Price != nil {
		conditions = append(conditions, "price_cents = ?")
		args = append(args, query.Price.Cents())
	}
	if query.AuthorName != nil {
		conditions = append(conditions, "author_name = ?")
		args = append(args, *query.AuthorName)
	}
	if query.Search != "" {
		pattern := "%" + escapeLike(query.Search) + "%"
		conditions = append(conditions, `(LOWER(title) LIKE ? ESCAPE '\' OR LOWER(author_name) LIKE ? ESCAPE '\')`)
		args = append(args, pattern, pattern)
	}

	sqlQuery := `SELECT ` + bookColumns + ` FROM books`
	if len(conditions) > 0 {
		sqlQuery += " WHERE " + strings.Join(conditions, " AND ")
	}
	sqlQuery += orderClause(query)

	rows, err := s.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	books := []*domain.Book{}
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, book)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate books: %w", err)
	}

	return books, nil
}

// CountBooks returns the total number of books in the catalog.
func (s *Store) CountBooks(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM books`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count books: %w", err)
	}
	return count, nil
}

// orderClause builds the ORDER BY clause from a whitelisted field. The
// field names come from store.OrderField constants, never user input, so
// string concatenation is safe here.
func orderClause(query store.BookListQuery) string {
	direction := "ASC"
	if query.Descending {
		direction = "DESC"
	}

	switch query.OrderBy {
	case store.OrderPrice:
		return " ORDER BY price_cents " + direction + ", id ASC"
	case store.OrderAuthorName:
		return " ORDER BY author_name " + direction + ", id ASC"
	case store.OrderTitle:
		return " ORDER BY title " + direction + ", id ASC"
	default:
		return " ORDER BY id ASC"
	}
}

// escapeLike escapes LIKE wildcards in a search term.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}
