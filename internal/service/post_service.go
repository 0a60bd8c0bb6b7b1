// Package service contains the application's business logic layer.
package service

import (
	"context"
	"fmt"
	"strings"

	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/validation"

	"github.com/gosimple/slug"
)

// excerptLength is the character budget for a derived excerpt.
const excerptLength = 150

// PostService handles post business logic
type PostService struct {
	postRepo     repository.PostRepository
	categoryRepo repository.CategoryRepository
	tagRepo      repository.TagRepository
}

// NewPostService creates a new post service
func NewPostService(postRepo repository.PostRepository, categoryRepo repository.CategoryRepository, tagRepo repository.TagRepository) *PostService {
	return &PostService{
		postRepo:     postRepo,
		categoryRepo: categoryRepo,
		tagRepo:      tagRepo,
	}
}

// CreatePostInput contains the data needed to create a post
type CreatePostInput struct {
	Title         string `json:"title"`
	Slug          string `json:"slug"`
	Content       string `json:"content"`
	Excerpt       string `json:"excerpt"`
	FeaturedImage string `json:"featured_image"`
	CategoryIDs   []uint `json:"category_ids"`
	TagIDs        []uint `json:"tag_ids"`
	Published     bool   `json:"published"`
	AuthorID      uint   `json:"-"`
}

// UpdatePostInput contains the data for a post update. Nil pointers
// mean "leave unchanged", which is what makes PATCH partial; PUT
// handlers populate every field. The slug is deliberately absent: it
// is fixed at creation.
type UpdatePostInput struct {
	Title         *string `json:"title"`
	Content       *string `json:"content"`
	Excerpt       *string `json:"excerpt"`
	FeaturedImage *string `json:"featured_image"`
	CategoryIDs   []uint  `json:"category_ids"`
	TagIDs        []uint  `json:"tag_ids"`
	Published     *bool   `json:"published"`
}

// ListPostsInput captures the query surface of the post collection.
type ListPostsInput struct {
	PublishedOnly bool
	CategorySlug  string
	TagSlug       string
	Published     *bool
	Search        string
	Ordering      string
	Limit         int
	Offset        int
}

// CreatePost creates a post, deriving slug and excerpt when the caller
// leaves them empty. The slug is set exactly once here and survives
// later title edits.
func (s *PostService) CreatePost(ctx context.Context, input CreatePostInput) (*models.Post, *models.AppError) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if strings.TrimSpace(input.Content) == "" {
		return nil, models.NewValidationError("Content is required")
	}

	postSlug := input.Slug
	if postSlug == "" {
		postSlug = slug.Make(input.Title)
	}
	if err := validation.ValidateSlug(postSlug); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	excerpt := input.Excerpt
	if excerpt == "" {
		excerpt = deriveExcerpt(input.Content)
	}

	categories, appErr := s.resolveCategories(ctx, input.CategoryIDs)
	if appErr != nil {
		return nil, appErr
	}
	tags, appErr := s.resolveTags(ctx, input.TagIDs)
	if appErr != nil {
		return nil, appErr
	}

	post := &models.Post{
		Title:         input.Title,
		Slug:          postSlug,
		Content:       input.Content,
		Excerpt:       excerpt,
		FeaturedImage: input.FeaturedImage,
		AuthorID:      input.AuthorID,
		Categories:    categories,
		Tags:          tags,
		Published:     input.Published,
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, models.NewConflictError(fmt.Sprintf("A post with slug '%s' already exists", postSlug))
		}
		middleware.Logger.Error("failed to create post", "slug", postSlug, "error", err)
		return nil, models.NewInternalError(err)
	}

	return s.reload(ctx, post.Slug)
}

// GetPost fetches a single post by slug. Unpublished posts are only
// visible when includeUnpublished is set (staff callers).
func (s *PostService) GetPost(ctx context.Context, postSlug string, includeUnpublished bool) (*models.Post, *models.AppError) {
	post, err := s.postRepo.GetBySlug(ctx, postSlug, !includeUnpublished)
	if err != nil {
		middleware.Logger.Error("failed to get post", "slug", postSlug, "error", err)
		return nil, models.NewInternalError(err)
	}
	if post == nil {
		return nil, models.NewNotFoundError("Post", postSlug)
	}
	return post, nil
}

// ListPosts returns a page of posts plus the total matching count.
func (s *PostService) ListPosts(ctx context.Context, input ListPostsInput) ([]*models.Post, int64, *models.AppError) {
	filter := repository.PostFilter{
		PublishedOnly: input.PublishedOnly,
		CategorySlug:  input.CategorySlug,
		TagSlug:       input.TagSlug,
		Published:     input.Published,
		Search:        input.Search,
		Ordering:      input.Ordering,
	}

	posts, total, err := s.postRepo.List(ctx, filter, input.Limit, input.Offset)
	if err != nil {
		middleware.Logger.Error("failed to list posts", "error", err)
		return nil, 0, models.NewInternalError(err)
	}
	return posts, total, nil
}

// UpdatePost applies an update to the post identified by slug. The
// slug itself never changes, even when the title does.
func (s *PostService) UpdatePost(ctx context.Context, postSlug string, input UpdatePostInput) (*models.Post, *models.AppError) {
	post, err := s.postRepo.GetBySlug(ctx, postSlug, false)
	if err != nil {
		middleware.Logger.Error("failed to get post for update", "slug", postSlug, "error", err)
		return nil, models.NewInternalError(err)
	}
	if post == nil {
		return nil, models.NewNotFoundError("Post", postSlug)
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, models.NewValidationError("Title cannot be empty")
		}
		post.Title = *input.Title
	}
	if input.Content != nil {
		if strings.TrimSpace(*input.Content) == "" {
			return nil, models.NewValidationError("Content cannot be empty")
		}
		post.Content = *input.Content
	}
	if input.Excerpt != nil {
		post.Excerpt = *input.Excerpt
	}
	if input.FeaturedImage != nil {
		post.FeaturedImage = *input.FeaturedImage
	}
	if input.Published != nil {
		post.Published = *input.Published
	}

	// A save with a blank excerpt derives it again, same as creation.
	if post.Excerpt == "" && post.Content != "" {
		post.Excerpt = deriveExcerpt(post.Content)
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		middleware.Logger.Error("failed to update post", "slug", postSlug, "error", err)
		return nil, models.NewInternalError(err)
	}

	if input.CategoryIDs != nil {
		categories, appErr := s.resolveCategories(ctx, input.CategoryIDs)
		if appErr != nil {
			return nil, appErr
		}
		if err := s.postRepo.ReplaceCategories(ctx, post, categories); err != nil {
			middleware.Logger.Error("failed to replace categories", "slug", postSlug, "error", err)
			return nil, models.NewInternalError(err)
		}
	}
	if input.TagIDs != nil {
		tags, appErr := s.resolveTags(ctx, input.TagIDs)
		if appErr != nil {
			return nil, appErr
		}
		if err := s.postRepo.ReplaceTags(ctx, post, tags); err != nil {
			middleware.Logger.Error("failed to replace tags", "slug", postSlug, "error", err)
			return nil, models.NewInternalError(err)
		}
	}

	return s.reload(ctx, post.Slug)
}

// DeletePost removes a post and its attachments.
func (s *PostService) DeletePost(ctx context.Context, postSlug string) *models.AppError {
	post, err := s.postRepo.GetBySlug(ctx, postSlug, false)
	if err != nil {
		middleware.Logger.Error("failed to get post for delete", "slug", postSlug, "error", err)
		return models.NewInternalError(err)
	}
	if post == nil {
		return models.NewNotFoundError("Post", postSlug)
	}

	if err := s.postRepo.Delete(ctx, post.ID); err != nil {
		middleware.Logger.Error("failed to delete post", "slug", postSlug, "error", err)
		return models.NewInternalError(err)
	}
	return nil
}

func (s *PostService) reload(ctx context.Context, postSlug string) (*models.Post, *models.AppError) {
	post, err := s.postRepo.GetBySlug(ctx, postSlug, false)
	if err != nil || post == nil {
		middleware.Logger.Error("failed to reload post", "slug", postSlug, "error", err)
		return nil, models.NewInternalError(err)
	}
	return post, nil
}

func (s *PostService) resolveCategories(ctx context.Context, ids []uint) ([]models.Category, *models.AppError) {
	if len(ids) == 0 {
		return []models.Category{}, nil
	}
	categories, err := s.categoryRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if len(categories) != len(uniqueIDs(ids)) {
		return nil, models.NewValidationError("One or more category IDs do not exist")
	}
	return categories, nil
}

func (s *PostService) resolveTags(ctx context.Context, ids []uint) ([]models.Tag, *models.AppError) {
	if len(ids) == 0 {
		return []models.Tag{}, nil
	}
	tags, err := s.tagRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if len(tags) != len(uniqueIDs(ids)) {
		return nil, models.NewValidationError("One or more tag IDs do not exist")
	}
	return tags, nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// deriveExcerpt builds a preview from markdown content: heading and
// emphasis markers are dropped, and anything beyond 150 characters is
// cut with a trailing ellipsis.
func deriveExcerpt(content string) string {
	plain := strings.NewReplacer("#", "", "*", "").Replace(content)
	runes := []rune(plain)
	if len(runes) > excerptLength {
		return string(runes[:excerptLength]) + "..."
	}
	return plain
}
