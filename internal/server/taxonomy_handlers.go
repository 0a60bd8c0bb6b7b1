package server

import (
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListCategories handles GET /api/categories/
func (s *Server) ListCategories(c *fiber.Ctx) error {
	categories, appErr := s.taxonomyService.ListCategories(c.Context())
	if appErr != nil {
		return mapServiceError(c, appErr)
	}

	results := make([]CategoryResponse, 0, len(categories))
	for _, category := range categories {
		results = append(results, toCategoryResponse(category))
	}
	return c.JSON(results)
}

// GetCategory handles GET /api/categories/:slug
func (s *Server) GetCategory(c *fiber.Ctx) error {
	category, appErr := s.taxonomyService.GetCategory(c.Context(), c.Params("slug"))
	if appErr != nil {
		return mapServiceError(c, appErr)
	}
	return c.JSON(toCategoryResponse(*category))
}

// CreateCategory handles POST /api/categories/
func (s *Server) CreateCategory(c *fiber.Ctx) error {
	var input service.TaxonomyInput
	if err := c.BodyParser(&input); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	category, appErr := s.taxonomyService.CreateCategory(c.Context(), input)
	if appErr != nil {
		return mapServiceError(c, appErr)
	}
	return c.Status(fiber.StatusCreated).JSON(toCategoryResponse(*category))
}

// UpdateCategory handles PUT and PATCH /api/categories/:slug
func (s *Server) UpdateCategory(c *fiber.Ctx) error {
	var input service.TaxonomyInput
	if err := c.BodyParser(&input); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	category, appErr := s.taxonomyService.UpdateCategory(c.Context(), c.Params("slug"), input)
	if appErr != nil {
		return mapServiceError(c, appErr)
	}
	return c.JSON(toCategoryResponse(*category))
}

// DeleteCategory handles DELETE /api/categories/:slug
func (s *Server) DeleteCategory(c *fiber.Ctx) error {
	if appErr := s.taxonomyService.DeleteCategory(c.Context(), c.Params("slug")); appErr != nil {
		return mapServiceError(c, appErr)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListTags handles GET /api/tags/
func (s *Server) ListTags(c *fiber.Ctx) error {
	tags, appErr := s.taxonomyService.ListTags(c.Context())
	if appErr != nil {
		return mapServiceError(c, appErr)
	}

	results := make([]TagResponse, 0, len(tags))
	for _, tag := range tags {
		results = append(results, toTagResponse(tag))
	}
	return c.JSON(results)
}

// GetTag handles GET /api/tags/:slug
func (s *Server) GetTag(c *fiber.Ctx) error {
	tag, appErr := s.taxonomyService.GetTag(c.Context(), c.Params("slug"))
	if appErr != nil {
		return mapServiceError(c, appErr)
	}
	return c.JSON(toTagResponse(*tag))
}

// CreateTag handles POST /api/tags/
func (s *Server) CreateTag(c *fiber.Ctx) error {
	var input service.TaxonomyInput
	if err := c.BodyParser(&input); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	tag, appErr := s.taxonomyService.CreateTag(c.Context(), input)
	if appErr != nil {
		return mapServiceError(c, appErr)
	}
	return c.Status(fiber.StatusCreated).JSON(toTagResponse(*tag))
}

// UpdateTag handles PUT and PATCH /api/tags/:slug
func (s *Server) UpdateTag(c *fiber.Ctx) error {
	var input service.TaxonomyInput
	if err := c.BodyParser(&input); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	tag, appErr := s.taxonomyService.UpdateTag(c.Context(), c.Params("slug"), input)
	if appErr != nil {
		return mapServiceError(c, appErr)
	}
	return c.JSON(toTagResponse(*tag))
}

// DeleteTag handles DELETE /api/tags/:slug
func (s *Server) DeleteTag(c *fiber.Ctx) error {
	if appErr := s.taxonomyService.DeleteTag(c.Context(), c.Params("slug")); appErr != nil {
		return mapServiceError(c, appErr)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
