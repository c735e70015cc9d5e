package store

import (
	"strings"

	"github.com/inkwellapp/inkwell-server/internal/domain"
)

// BookListQuery describes the filtering, search, and ordering applied to a
// catalog listing. Zero-value fields are inactive.
type BookListQuery struct {
	// Price filters to books whose price equals this exact amount.
	Price *domain.Price
	// AuthorName filters to books whose author_name equals this exactly.
	AuthorName *string
	// Search matches books containing the term in title or author_name,
	// case-insensitively. The term should already be normalized.
	Search string
	// OrderBy names the sort column; empty leaves the order unspecified.
	OrderBy OrderField
	// Descending reverses the sort direction.
	Descending bool
}

// OrderField is a whitelisted sortable column.
type OrderField string

// Sortable fields for book listings.
const (
	OrderNone       OrderField = ""
	OrderPrice      OrderField = "price"
	OrderAuthorName OrderField = "author_name"
	OrderTitle      OrderField = "title"
)

// ParseOrdering interprets an ordering parameter such as "price" or
// "-author_name". A leading '-' reverses direction. Unknown fields report
// ok=false and leave ordering unset.
func ParseOrdering(raw string) (field OrderField, descending, ok bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return OrderNone, false, true
	}

	if strings.HasPrefix(raw, "-") {
		descending = true
		raw = raw[1:]
	}

	switch OrderField(raw) {
	case OrderPrice, OrderAuthorName, OrderTitle:
		return OrderField(raw), descending, true
	default:
		return OrderNone, false, false
	}
}
