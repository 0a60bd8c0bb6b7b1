package server

import (
	"io"

	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// UploadPostImages handles POST /api/posts/:slug/upload_images. The
// request is multipart form data with one or more files under the
// "images" field; a single "caption" field applies to the whole batch.
func (s *Server) UploadPostImages(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Expected multipart form data"))
	}

	caption := c.FormValue("caption")

	var files []service.UploadFile
	for _, header := range form.File["images"] {
		f, err := header.Open()
		if err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Could not read file "+header.Filename))
		}
		content, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Could not read file "+header.Filename))
		}
		files = append(files, service.UploadFile{
			Filename: header.Filename,
			Content:  content,
			Caption:  caption,
		})
	}

	images, appErr := s.imageService.Upload(c.Context(), c.Params("slug"), files)
	if appErr != nil {
		return mapServiceError(c, appErr)
	}

	results := make([]PostImageResponse, 0, len(images))
	for _, img := range images {
		results = append(results, s.toPostImageResponse(img))
	}
	return c.Status(fiber.StatusCreated).JSON(results)
}
