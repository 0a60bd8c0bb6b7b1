package service

import (
	"context"
	"fmt"

	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/repository"
)

// ReactionService handles reaction business logic
type ReactionService struct {
	postRepo     repository.PostRepository
	reactionRepo repository.ReactionRepository
}

// NewReactionService creates a new reaction service
func NewReactionService(postRepo repository.PostRepository, reactionRepo repository.ReactionRepository) *ReactionService {
	return &ReactionService{postRepo: postRepo, reactionRepo: reactionRepo}
}

// React toggles the caller's reaction on a post. Reacting with the
// type already present removes it; a different type switches it. The
// returned reaction is nil when the toggle removed one.
func (s *ReactionService) React(ctx context.Context, postSlug string, userID uint, reactionType string, includeUnpublished bool) (*models.Reaction, repository.ToggleOutcome, *models.AppError) {
	if !models.ValidReactionType(reactionType) {
		return nil, "", models.NewValidationError(fmt.Sprintf("Invalid reaction type '%s': must be 'like' or 'dislike'", reactionType))
	}

	post, err := s.postRepo.GetBySlug(ctx, postSlug, !includeUnpublished)
	if err != nil {
		middleware.Logger.Error("failed to get post for reaction", "slug", postSlug, "error", err)
		return nil, "", models.NewInternalError(err)
	}
	if post == nil {
		return nil, "", models.NewNotFoundError("Post", postSlug)
	}

	reaction, outcome, err := s.reactionRepo.Toggle(ctx, post.ID, userID, reactionType)
	if err != nil {
		middleware.Logger.Error("failed to toggle reaction", "slug", postSlug, "user_id", userID, "error", err)
		return nil, "", models.NewInternalError(err)
	}

	if reaction != nil && reaction.User.ID == 0 {
		// Hydrate the user for the response payload.
		if full, err := s.reactionRepo.GetByPostAndUser(ctx, post.ID, userID); err == nil && full != nil {
			reaction = full
		}
	}

	return reaction, outcome, nil
}
