package service

import (
	"context"
	"encoding/json/jsontext"
	"encoding/json/v2"
	"fmt"
	"log/slog"

	"github.com/inkwellapp/inkwell-server/internal/domain"
	apperrors "github.com/inkwellapp/inkwell-server/internal/errors"
	"github.com/inkwellapp/inkwell-server/internal/store"
	"github.com/inkwellapp/inkwell-server/internal/validation"
)

// RelationService manages per-user book state: likes, bookmarks, ratings.
// The relation row is created lazily on the first update.
type RelationService struct {
	store     store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewRelationService creates a new relation service.
func NewRelationService(store store.Store, validator *validation.Validator, logger *slog.Logger) *RelationService {
	return &RelationService{
		store:     store,
		validator: validator,
		logger:    logger,
	}
}

// RelationPatch contains the optional fields of a relation update. Absent
// fields leave the current value untouched; a present null rate clears
// the rating.
type RelationPatch struct {
	Like        *bool `json:"like"`
	InBookmarks *bool `json:"in_bookmarks"`
	Rate        *int  `json:"rate" validate:"omitempty,oneof=1 2 3 4 5"`
	// RateSet distinguishes {"rate": null} from an absent rate field.
	RateSet bool `json:"-"`
}

// UnmarshalJSON records whether the rate key was present at all, so a
// null rate clears the rating while an absent one leaves it alone.
func (p *RelationPatch) UnmarshalJSON(data []byte) error {
	var wire struct {
		Like        *bool          `json:"like"`
		InBookmarks *bool          `json:"in_bookmarks"`
		Rate        jsontext.Value `json:"rate"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	p.Like = wire.Like
	p.InBookmarks = wire.InBookmarks
	p.Rate = nil
	p.RateSet = len(wire.Rate) > 0
	if p.RateSet && string(wire.Rate) != "null" {
		var rate int
		if err := json.Unmarshal(wire.Rate, &rate); err != nil {
			return err
		}
		p.Rate = &rate
	}
	return nil
}

// Get returns the actor's relation to a book, creating a default one if
// none exists.
func (s *RelationService) Get(ctx context.Context, actor *domain.User, bookID string) (*domain.UserBookRelation, error) {
	if actor == nil {
		return nil, apperrors.Unauthorized("authentication required")
	}

	if _, err := s.store.GetBook(ctx, bookID); err != nil {
		return nil, err
	}

	return s.store.GetOrCreateRelation(ctx, actor.ID, bookID)
}

// Patch upserts the actor's relation to a book and applies the given
// partial update. The book is identified by the URL, so any authenticated
// user may write their own relation to any book.
func (s *RelationService) Patch(ctx context.Context, actor *domain.User, bookID string, patch RelationPatch) (*domain.UserBookRelation, error) {
	if actor == nil {
		return nil, apperrors.Unauthorized("authentication required")
	}

	if _, err := s.store.GetBook(ctx, bookID); err != nil {
		return nil, err
	}

	if err := s.validator.Validate(patch); err != nil {
		return nil, err
	}
	if patch.RateSet && patch.Rate != nil && !domain.ValidRate(*patch.Rate) {
		return nil, validation.FieldError("rate", fmt.Sprintf("%q is not a valid choice.", fmt.Sprint(*patch.Rate)))
	}

	relation, err := s.store.GetOrCreateRelation(ctx, actor.ID, bookID)
	if err != nil {
		return nil, err
	}

	if patch.Like != nil {
		relation.Like = *patch.Like
	}
	if patch.InBookmarks != nil {
		relation.InBookmarks = *patch.InBookmarks
	}
	if patch.RateSet {
		relation.Rate = patch.Rate
	}
	relation.Touch()

	if err := s.store.UpdateRelation(ctx, relation); err != nil {
		return nil, fmt.Errorf("update relation: %w", err)
	}

	return relation, nil
}
