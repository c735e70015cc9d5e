package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/inkwellapp/inkwell-server/internal/domain"
	"github.com/inkwellapp/inkwell-server/internal/store"
)

// relationColumns is the ordered list of columns selected in relation
// queries. Must match the scan order in scanRelation.
const relationColumns = `user_id, book_id, "like", in_bookmarks, rate, created_at, updated_at`

// scanRelation scans a sql.Row (or sql.Rows via its Scan method) into a
// domain.UserBookRelation.
func scanRelation(scanner interface{ Scan(dest ...any) error }) (*domain.UserBookRelation, error) {
	var r domain.UserBookRelation

	var (
		like        int
		inBookmarks int
		rate        sql.NullInt64
		createdAt   string
		updatedAt   string
	)

	err := scanner.Scan(
		&r.UserID,
		&r.BookID,
		&like,
		&inBookmarks,
		&rate,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	r.Like = like != 0
	r.InBookmarks = inBookmarks != 0
	if rate.Valid {
		v := int(rate.Int64)
		r.Rate = &v
	}

	r.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	r.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &r, nil
}

// GetOrCreateRelation returns the relation for (userID, bookID), creating
// a default one if none exists yet. The insert relies on the primary key
// so concurrent first writes converge on a single row.
func (s *Store) GetOrCreateRelation(ctx context.Context, userID, bookID string) (*domain.UserBookRelation, error) {
	relation := domain.NewUserBookRelation(userID, bookID)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO user_book_relations (user_id, book_id, "like", in_bookmarks, rate, created_at, updated_at)
		VALUES (?, ?, 0, 0, NULL, ?, ?)
		ON CONFLICT(user_id, book_id) DO NOTHING`,
		userID,
		bookID,
		formatTime(relation.CreatedAt),
		formatTime(relation.UpdatedAt),
	)
	if err != nil {
		return nil, fmt.Errorf("insert relation: %w", err)
	}

	return s.GetRelation(ctx, userID, bookID)
}

// GetRelation fetches the relation for (userID, bookID).
// Returns store.ErrRelationNotFound if none exists.
func (s *Store) GetRelation(ctx context.Context, userID, bookID string) (*domain.UserBookRelation, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+relationColumns+` FROM user_book_relations WHERE user_id = ? AND book_id = ?`,
		userID, bookID)

	relation, err := scanRelation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrRelationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get relation: %w", err)
	}
	return relation, nil
}

// UpdateRelation persists the mutable fields of a relation.
// Returns store.ErrRelationNotFound if the relation does not exist.
func (s *Store) UpdateRelation(ctx context.Context, relation *domain.UserBookRelation) error {
	var rate sql.NullInt64
	if relation.Rate != nil {
		rate = sql.NullInt64{Int64: int64(*relation.Rate), Valid: true}
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE user_book_relations
		SET "like" = ?, in_bookmarks = ?, rate = ?, updated_at = ?
		WHERE user_id = ? AND book_id = ?`,
		boolToInt(relation.Like),
		boolToInt(relation.InBookmarks),
		rate,
		formatTime(relation.UpdatedAt),
		relation.UserID,
		relation.BookID,
	)
	if err != nil {
		return fmt.Errorf("update relation: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update relation rows affected: %w", err)
	}
	if rows == 0 {
		return store.ErrRelationNotFound
	}
	return nil
}
