package domain

import "time"

// UserBookRelation tracks one user's state for one book: like, bookmark,
// and an optional 1-5 rating. Exactly one relation exists per (user, book)
// pair; it is created lazily on the first partial update and mutated in
// place afterwards.
type UserBookRelation struct {
	UserID      string `json:"-"`
	BookID      string `json:"book"`
	Like        bool   `json:"like"`
	InBookmarks bool   `json:"in_bookmarks"`
	Rate        *int   `json:"rate"` // nil until the user rates the book

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// Rating bounds for UserBookRelation.Rate.
const (
	MinRate = 1
	MaxRate = 5
)

// NewUserBookRelation creates an untouched relation with default state.
func NewUserBookRelation(userID, bookID string) *UserBookRelation {
	now := time.Now()
	return &UserBookRelation{
		UserID:    userID,
		BookID:    bookID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ValidRate reports whether r is within the allowed rating range.
func ValidRate(r int) bool {
	return r >= MinRate && r <= MaxRate
}

// Touch updates the UpdatedAt timestamp to the current time.
func (r *UserBookRelation) Touch() {
	r.UpdatedAt = time.Now()
}
