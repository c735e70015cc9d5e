// Package domain contains the core business entities and domain logic for the Inkwell catalog.
package domain

import "time"

// Book represents a book in the store catalog.
//
// Owner is the identity that created the book. It may be nil for books
// created before ownership tracking existed; the permission predicate treats
// ownerless books as mutable only by staff.
type Book struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Price      Price   `json:"price"`
	AuthorName string  `json:"author_name"`
	OwnerID    *string `json:"owner"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// Touch updates the UpdatedAt timestamp to the current time.
// Call this whenever the book changes.
func (b *Book) Touch() {
	b.UpdatedAt = time.Now()
}

// InitTimestamps sets both CreatedAt and UpdatedAt to now.
// Call this when creating a new book.
func (b *Book) InitTimestamps() {
	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now
}

// IsOwnedBy reports whether the book is owned by the given user ID.
func (b *Book) IsOwnedBy(userID string) bool {
	return b.OwnerID != nil && *b.OwnerID == userID
}
