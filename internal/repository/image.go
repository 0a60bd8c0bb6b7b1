package repository

import (
	"context"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/observability"

	"gorm.io/gorm"
)

// PostImageRepository defines the interface for post image data operations
type PostImageRepository interface {
	Create(ctx context.Context, image *models.PostImage) error
	CountByPost(ctx context.Context, postID uint) (int64, error)
	ListByPost(ctx context.Context, postID uint) ([]*models.PostImage, error)
}

type postImageRepository struct {
	db *gorm.DB
}

// NewPostImageRepository creates a new post image repository
func NewPostImageRepository(db *gorm.DB) PostImageRepository {
	return &postImageRepository{db: db}
}

func (r *postImageRepository) Create(ctx context.Context, image *models.PostImage) error {
	defer func(start time.Time) { observability.ObserveQuery("create", "post_images", start) }(time.Now())
	return r.db.WithContext(ctx).Create(image).Error
}

func (r *postImageRepository) CountByPost(ctx context.Context, postID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.PostImage{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, err
}

func (r *postImageRepository) ListByPost(ctx context.Context, postID uint) ([]*models.PostImage, error) {
	var images []*models.PostImage
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order(`"order" ASC`).
		Find(&images).Error
	return images, err
}
