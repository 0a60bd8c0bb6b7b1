package service

import (
	"context"
	"fmt"
	"strings"

	"inkwell/internal/cache"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/validation"

	"github.com/gosimple/slug"
)

// TaxonomyService handles category and tag business logic. Both share
// the same shape (name plus derived slug) so they live together.
type TaxonomyService struct {
	categoryRepo repository.CategoryRepository
	tagRepo      repository.TagRepository
}

// NewTaxonomyService creates a new taxonomy service
func NewTaxonomyService(categoryRepo repository.CategoryRepository, tagRepo repository.TagRepository) *TaxonomyService {
	return &TaxonomyService{categoryRepo: categoryRepo, tagRepo: tagRepo}
}

// TaxonomyInput carries the writable fields of a category or tag.
type TaxonomyInput struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func (in *TaxonomyInput) normalize() (string, string, *models.AppError) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return "", "", models.NewValidationError("Name is required")
	}
	s := in.Slug
	if s == "" {
		s = slug.Make(name)
	}
	if err := validation.ValidateSlug(s); err != nil {
		return "", "", models.NewValidationError(err.Error())
	}
	return name, s, nil
}

// CreateCategory creates a category, deriving the slug from the name
// when none is given.
func (s *TaxonomyService) CreateCategory(ctx context.Context, input TaxonomyInput) (*models.Category, *models.AppError) {
	name, catSlug, appErr := input.normalize()
	if appErr != nil {
		return nil, appErr
	}

	category := &models.Category{Name: name, Slug: catSlug}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, models.NewConflictError(fmt.Sprintf("A category with slug '%s' already exists", catSlug))
		}
		middleware.Logger.Error("failed to create category", "slug", catSlug, "error", err)
		return nil, models.NewInternalError(err)
	}

	cache.InvalidateTaxonomies(ctx)
	return category, nil
}

// GetCategory fetches a category by slug.
func (s *TaxonomyService) GetCategory(ctx context.Context, catSlug string) (*models.Category, *models.AppError) {
	category, err := s.categoryRepo.GetBySlug(ctx, catSlug)
	if err != nil {
		middleware.Logger.Error("failed to get category", "slug", catSlug, "error", err)
		return nil, models.NewInternalError(err)
	}
	if category == nil {
		return nil, models.NewNotFoundError("Category", catSlug)
	}
	return category, nil
}

// ListCategories returns all categories ordered by name, served from
// the cache when warm.
func (s *TaxonomyService) ListCategories(ctx context.Context) ([]models.Category, *models.AppError) {
	var categories []models.Category
	err := cache.Aside(ctx, cache.CategoryListKey, &categories, cache.TaxonomyTTL, func() error {
		var err error
		categories, err = s.categoryRepo.List(ctx)
		return err
	})
	if err != nil {
		middleware.Logger.Error("failed to list categories", "error", err)
		return nil, models.NewInternalError(err)
	}
	if categories == nil {
		categories = []models.Category{}
	}
	return categories, nil
}

// UpdateCategory renames a category. The slug stays fixed unless the
// caller supplies a new one explicitly.
func (s *TaxonomyService) UpdateCategory(ctx context.Context, catSlug string, input TaxonomyInput) (*models.Category, *models.AppError) {
	category, appErr := s.GetCategory(ctx, catSlug)
	if appErr != nil {
		return nil, appErr
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		category.Name = name
	}
	if input.Slug != "" {
		if err := validation.ValidateSlug(input.Slug); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		category.Slug = input.Slug
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, models.NewConflictError(fmt.Sprintf("A category with slug '%s' already exists", category.Slug))
		}
		middleware.Logger.Error("failed to update category", "slug", catSlug, "error", err)
		return nil, models.NewInternalError(err)
	}

	cache.InvalidateTaxonomies(ctx)
	return category, nil
}

// DeleteCategory removes a category. Posts keep existing; only the
// membership rows go away.
func (s *TaxonomyService) DeleteCategory(ctx context.Context, catSlug string) *models.AppError {
	category, appErr := s.GetCategory(ctx, catSlug)
	if appErr != nil {
		return appErr
	}

	if err := s.categoryRepo.Delete(ctx, category.ID); err != nil {
		middleware.Logger.Error("failed to delete category", "slug", catSlug, "error", err)
		return models.NewInternalError(err)
	}

	cache.InvalidateTaxonomies(ctx)
	return nil
}

// CreateTag creates a tag, deriving the slug from the name when none
// is given.
func (s *TaxonomyService) CreateTag(ctx context.Context, input TaxonomyInput) (*models.Tag, *models.AppError) {
	name, tagSlug, appErr := input.normalize()
	if appErr != nil {
		return nil, appErr
	}

	tag := &models.Tag{Name: name, Slug: tagSlug}
	if err := s.tagRepo.Create(ctx, tag); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, models.NewConflictError(fmt.Sprintf("A tag with slug '%s' already exists", tagSlug))
		}
		middleware.Logger.Error("failed to create tag", "slug", tagSlug, "error", err)
		return nil, models.NewInternalError(err)
	}

	cache.InvalidateTaxonomies(ctx)
	return tag, nil
}

// GetTag fetches a tag by slug.
func (s *TaxonomyService) GetTag(ctx context.Context, tagSlug string) (*models.Tag, *models.AppError) {
	tag, err := s.tagRepo.GetBySlug(ctx, tagSlug)
	if err != nil {
		middleware.Logger.Error("failed to get tag", "slug", tagSlug, "error", err)
		return nil, models.NewInternalError(err)
	}
	if tag == nil {
		return nil, models.NewNotFoundError("Tag", tagSlug)
	}
	return tag, nil
}

// ListTags returns all tags ordered by name, served from the cache
// when warm.
func (s *TaxonomyService) ListTags(ctx context.Context) ([]models.Tag, *models.AppError) {
	var tags []models.Tag
	err := cache.Aside(ctx, cache.TagListKey, &tags, cache.TaxonomyTTL, func() error {
		var err error
		tags, err = s.tagRepo.List(ctx)
		return err
	})
	if err != nil {
		middleware.Logger.Error("failed to list tags", "error", err)
		return nil, models.NewInternalError(err)
	}
	if tags == nil {
		tags = []models.Tag{}
	}
	return tags, nil
}

// UpdateTag renames a tag.
func (s *TaxonomyService) UpdateTag(ctx context.Context, tagSlug string, input TaxonomyInput) (*models.Tag, *models.AppError) {
	tag, appErr := s.GetTag(ctx, tagSlug)
	if appErr != nil {
		return nil, appErr
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		tag.Name = name
	}
	if input.Slug != "" {
		if err := validation.ValidateSlug(input.Slug); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		tag.Slug = input.Slug
	}

	if err := s.tagRepo.Update(ctx, tag); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, models.NewConflictError(fmt.Sprintf("A tag with slug '%s' already exists", tag.Slug))
		}
		middleware.Logger.Error("failed to update tag", "slug", tagSlug, "error", err)
		return nil, models.NewInternalError(err)
	}

	cache.InvalidateTaxonomies(ctx)
	return tag, nil
}

// DeleteTag removes a tag and its post memberships.
func (s *TaxonomyService) DeleteTag(ctx context.Context, tagSlug string) *models.AppError {
	tag, appErr := s.GetTag(ctx, tagSlug)
	if appErr != nil {
		return appErr
	}

	if err := s.tagRepo.Delete(ctx, tag.ID); err != nil {
		middleware.Logger.Error("failed to delete tag", "slug", tagSlug, "error", err)
		return models.NewInternalError(err)
	}

	cache.InvalidateTaxonomies(ctx)
	return nil
}
