package service

import (
	"context"

	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/repository"
	"inkwell/internal/storage"
)

// ImageService handles post image uploads
type ImageService struct {
	postRepo  repository.PostRepository
	imageRepo repository.PostImageRepository
	media     *storage.MediaStore
}

// NewImageService creates a new image service
func NewImageService(postRepo repository.PostRepository, imageRepo repository.PostImageRepository, media *storage.MediaStore) *ImageService {
	return &ImageService{postRepo: postRepo, imageRepo: imageRepo, media: media}
}

// UploadFile is one file of a multi-file upload request.
type UploadFile struct {
	Filename string
	Content  []byte
	Caption  string
}

// Upload attaches files to the post identified by postSlug. Order
// continues from the post's current image count, so a second batch
// appends after the first. Files are stored before rows are written;
// a row failure aborts the batch.
func (s *ImageService) Upload(ctx context.Context, postSlug string, files []UploadFile) ([]*models.PostImage, *models.AppError) {
	if len(files) == 0 {
		return nil, models.NewValidationError("No images provided")
	}

	post, err := s.postRepo.GetBySlug(ctx, postSlug, false)
	if err != nil {
		middleware.Logger.Error("failed to get post for upload", "slug", postSlug, "error", err)
		return nil, models.NewInternalError(err)
	}
	if post == nil {
		return nil, models.NewNotFoundError("Post", postSlug)
	}

	existing, err := s.imageRepo.CountByPost(ctx, post.ID)
	if err != nil {
		middleware.Logger.Error("failed to count post images", "slug", postSlug, "error", err)
		return nil, models.NewInternalError(err)
	}

	images := make([]*models.PostImage, 0, len(files))
	for i, file := range files {
		rel, err := s.media.SavePostFile(post.Slug, file.Filename, file.Content)
		if err != nil {
			middleware.Logger.Error("failed to store image", "slug", postSlug, "filename", file.Filename, "error", err)
			return nil, models.NewValidationError("Could not store file " + file.Filename)
		}

		image := &models.PostImage{
			PostID:  post.ID,
			Image:   rel,
			Caption: file.Caption,
			Order:   int(existing) + i,
		}
		if err := s.imageRepo.Create(ctx, image); err != nil {
			middleware.Logger.Error("failed to save image record", "slug", postSlug, "error", err)
			return nil, models.NewInternalError(err)
		}

		observability.ImagesUploaded.Inc()
		images = append(images, image)
	}

	return images, nil
}
