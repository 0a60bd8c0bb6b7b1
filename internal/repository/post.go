package repository

import (
	"context"
	"errors"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/observability"

	"gorm.io/gorm"
)

// PostFilter narrows a post listing. PublishedOnly carries the access
// policy visibility rule and is applied in addition to the caller's
// explicit Published filter.
type PostFilter struct {
	PublishedOnly bool
	CategorySlug  string
	TagSlug       string
	Published     *bool
	Search        string
	Ordering      string
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetBySlug(ctx context.Context, slug string, publishedOnly bool) (*models.Post, error)
	List(ctx context.Context, filter PostFilter, limit, offset int) ([]*models.Post, int64, error)
	Update(ctx context.Context, post *models.Post) error
	ReplaceCategories(ctx context.Context, post *models.Post, categories []models.Category) error
	ReplaceTags(ctx context.Context, post *models.Post, tags []models.Tag) error
	Delete(ctx context.Context, id uint) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	defer func(start time.Time) { observability.ObserveQuery("create", "posts", start) }(time.Now())
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) GetBySlug(ctx context.Context, slug string, publishedOnly bool) (*models.Post, error) {
	defer func(start time.Time) { observability.ObserveQuery("get", "posts", start) }(time.Now())

	var post models.Post
	q := r.applyReactionCounts(r.db.WithContext(ctx)).
		Preload("Author").
		Preload("Categories").
		Preload("Tags").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order(`post_images."order" ASC`)
		}).
		Preload("Reactions", func(db *gorm.DB) *gorm.DB {
			return db.Order("reactions.created_at DESC")
		}).
		Preload("Reactions.User").
		Where("posts.slug = ?", slug)
	if publishedOnly {
		q = q.Where("posts.published = ?", true)
	}

	if err := q.First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, filter PostFilter, limit, offset int) ([]*models.Post, int64, error) {
	defer func(start time.Time) { observability.ObserveQuery("list", "posts", start) }(time.Now())

	base := r.applyFilter(r.db.WithContext(ctx).Model(&models.Post{}), filter)

	var total int64
	if err := base.Session(&gorm.Session{}).Distinct("posts.id").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []*models.Post
	err := r.applyReactionCounts(base).
		Preload("Author").
		Preload("Categories").
		Preload("Tags").
		Order(orderingClause(filter.Ordering)).
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// applyFilter adds the visibility rule, explicit filters, and search
// to a posts query.
func (r *postRepository) applyFilter(db *gorm.DB, filter PostFilter) *gorm.DB {
	if filter.PublishedOnly {
		db = db.Where("posts.published = ?", true)
	}
	if filter.Published != nil {
		db = db.Where("posts.published = ?", *filter.Published)
	}
	if filter.CategorySlug != "" {
		db = db.
			Joins("JOIN post_categories pc ON pc.post_id = posts.id").
			Joins("JOIN categories fc ON fc.id = pc.category_id").
			Where("fc.slug = ?", filter.CategorySlug)
	}
	if filter.TagSlug != "" {
		db = db.
			Joins("JOIN post_tags pt ON pt.post_id = posts.id").
			Joins("JOIN tags ft ON ft.id = pt.tag_id").
			Where("ft.slug = ?", filter.TagSlug)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		db = db.Where(
			"LOWER(posts.title) LIKE LOWER(?) OR LOWER(posts.content) LIKE LOWER(?) OR LOWER(posts.excerpt) LIKE LOWER(?)",
			like, like, like,
		)
	}
	return db
}

// applyReactionCounts adds subqueries to fetch like/dislike counts in a single query.
func (r *postRepository) applyReactionCounts(db *gorm.DB) *gorm.DB {
	return db.Select("posts.*, " +
		"(SELECT COUNT(*) FROM reactions WHERE reactions.post_id = posts.id AND reactions.reaction_type = 'like') AS likes_count, " +
		"(SELECT COUNT(*) FROM reactions WHERE reactions.post_id = posts.id AND reactions.reaction_type = 'dislike') AS dislikes_count")
}

// orderingClause translates the API ordering parameter into an ORDER BY
// clause. Only whitelisted columns are honored; anything else falls
// back to the default newest-first ordering.
func orderingClause(ordering string) string {
	desc := false
	if len(ordering) > 0 && ordering[0] == '-' {
		desc = true
		ordering = ordering[1:]
	}

	switch ordering {
	case "created_at", "updated_at", "title":
	default:
		return "posts.created_at DESC"
	}

	clause := "posts." + ordering
	if desc {
		clause += " DESC"
	}
	return clause
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	defer func(start time.Time) { observability.ObserveQuery("update", "posts", start) }(time.Now())
	// Save without touching associations; category/tag membership is
	// replaced explicitly via ReplaceCategories/ReplaceTags.
	return r.db.WithContext(ctx).Omit("Categories", "Tags", "Images", "Reactions", "Author").Save(post).Error
}

func (r *postRepository) ReplaceCategories(ctx context.Context, post *models.Post, categories []models.Category) error {
	return r.db.WithContext(ctx).Model(post).Association("Categories").Replace(categories)
}

func (r *postRepository) ReplaceTags(ctx context.Context, post *models.Post, tags []models.Tag) error {
	return r.db.WithContext(ctx).Model(post).Association("Tags").Replace(tags)
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	defer func(start time.Time) { observability.ObserveQuery("delete", "posts", start) }(time.Now())
	return r.db.WithContext(ctx).Select("Images", "Reactions").Delete(&models.Post{ID: id}).Error
}
