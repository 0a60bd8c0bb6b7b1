package repository

import (
	"context"
	"errors"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ToggleOutcome describes what a toggle did to the user's reaction.
type ToggleOutcome string

const (
	ToggleCreated ToggleOutcome = "created"
	ToggleUpdated ToggleOutcome = "updated"
	ToggleRemoved ToggleOutcome = "removed"
)

// ReactionRepository defines the interface for reaction data operations
type ReactionRepository interface {
	GetByPostAndUser(ctx context.Context, postID, userID uint) (*models.Reaction, error)
	ListByPost(ctx context.Context, postID uint) ([]*models.Reaction, error)
	// Toggle applies the reaction state machine for one user on one
	// post: no reaction creates one, the same type removes it, a
	// different type switches it in place.
	Toggle(ctx context.Context, postID, userID uint, reactionType string) (*models.Reaction, ToggleOutcome, error)
}

type reactionRepository struct {
	db *gorm.DB
}

// NewReactionRepository creates a new reaction repository
func NewReactionRepository(db *gorm.DB) ReactionRepository {
	return &reactionRepository{db: db}
}

func (r *reactionRepository) GetByPostAndUser(ctx context.Context, postID, userID uint) (*models.Reaction, error) {
	var reaction models.Reaction
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("post_id = ? AND user_id = ?", postID, userID).
		First(&reaction).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &reaction, nil
}

func (r *reactionRepository) ListByPost(ctx context.Context, postID uint) ([]*models.Reaction, error) {
	var reactions []*models.Reaction
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("post_id = ?", postID).
		Order("created_at DESC").
		Find(&reactions).Error
	return reactions, err
}

func (r *reactionRepository) Toggle(ctx context.Context, postID, userID uint, reactionType string) (*models.Reaction, ToggleOutcome, error) {
	defer func(start time.Time) { observability.ObserveQuery("toggle", "reactions", start) }(time.Now())

	var result *models.Reaction
	var outcome ToggleOutcome

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Reaction
		err := tx.Where("post_id = ? AND user_id = ?", postID, userID).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			reaction := models.Reaction{
				PostID:       postID,
				UserID:       userID,
				ReactionType: reactionType,
			}
			// ON CONFLICT DO NOTHING so a lost race against a concurrent
			// create surfaces as zero rows instead of a unique violation,
			// which would abort the whole transaction on postgres.
			res := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "post_id"}, {Name: "user_id"}},
				DoNothing: true,
			}).Create(&reaction)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				// The concurrent winner's row is settled as an update.
				if err := tx.Where("post_id = ? AND user_id = ?", postID, userID).First(&existing).Error; err != nil {
					return err
				}
				return r.settle(tx, &existing, reactionType, &result, &outcome)
			}
			result = &reaction
			outcome = ToggleCreated
			return nil
		case err != nil:
			return err
		default:
			return r.settle(tx, &existing, reactionType, &result, &outcome)
		}
	})
	if err != nil {
		return nil, "", err
	}

	observability.ReactionsTotal.WithLabelValues(string(outcome)).Inc()
	return result, outcome, nil
}

// settle resolves a toggle against an existing reaction row: delete on
// a repeat of the same type, switch the type otherwise.
func (r *reactionRepository) settle(tx *gorm.DB, existing *models.Reaction, reactionType string, result **models.Reaction, outcome *ToggleOutcome) error {
	if existing.ReactionType == reactionType {
		if err := tx.Delete(existing).Error; err != nil {
			return err
		}
		*result = nil
		*outcome = ToggleRemoved
		return nil
	}

	existing.ReactionType = reactionType
	if err := tx.Model(existing).Update("reaction_type", reactionType).Error; err != nil {
		return err
	}
	*result = existing
	*outcome = ToggleUpdated
	return nil
}
