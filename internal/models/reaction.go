package models

import "time"

// Reaction types a user can place on a post.
const (
	ReactionLike    = "like"
	ReactionDislike = "dislike"
)

// Reaction is a single user's vote on a post. The composite unique
// index on (post_id, user_id) guarantees at most one reaction per pair
// and is the correctness backstop for concurrent toggle requests.
type Reaction struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	PostID       uint      `gorm:"not null;uniqueIndex:idx_reactions_post_user" json:"post_id"`
	UserID       uint      `gorm:"not null;uniqueIndex:idx_reactions_post_user" json:"user_id"`
	User         User      `gorm:"foreignKey:UserID" json:"user"`
	ReactionType string    `gorm:"size:10;not null" json:"reaction_type"`
	CreatedAt    time.Time `json:"created_at"`
}

// ValidReactionType reports whether t is one of the accepted reaction types.
func ValidReactionType(t string) bool {
	return t == ReactionLike || t == ReactionDislike
}
