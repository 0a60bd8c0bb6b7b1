// Package models contains data structures for the application's domain models.
package models

import "time"

// Post is a blog article written in markdown. Slug and excerpt are
// derived once at creation when the caller does not supply them, and
// the slug is never regenerated on later title edits.
type Post struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	Title         string      `gorm:"size:200;not null" json:"title"`
	Slug          string      `gorm:"size:250;uniqueIndex;not null" json:"slug"`
	Content       string      `gorm:"type:text;not null" json:"content"`
	Excerpt       string      `gorm:"type:text" json:"excerpt"`
	AuthorID      uint        `gorm:"not null;index" json:"author_id"`
	Author        User        `gorm:"foreignKey:AuthorID" json:"author"`
	FeaturedImage string      `json:"featured_image"`
	Categories    []Category  `gorm:"many2many:post_categories" json:"categories"`
	Tags          []Tag       `gorm:"many2many:post_tags" json:"tags"`
	Images        []PostImage `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"images,omitempty"`
	Reactions     []Reaction  `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"reactions,omitempty"`
	Published     bool        `gorm:"not null;default:false" json:"published"`
	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->" json:"likes_count"`
	// DislikesCount is not persisted; computed at query time
	DislikesCount int       `gorm:"->" json:"dislikes_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// PostImage is an attachment belonging to exactly one post. Order is
// assigned on upload as the pre-upload image count of the post, so
// later uploads append after existing images.
type PostImage struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	PostID  uint   `gorm:"not null;index" json:"post_id"`
	Image   string `gorm:"not null" json:"image"`
	Caption string `gorm:"size:200" json:"caption"`
	Order   int    `gorm:"not null;default:0" json:"order"`
}
