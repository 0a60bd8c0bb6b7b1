package server

import (
	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListPosts handles GET /api/posts/. Anonymous and non-staff callers
// only ever see published posts; staff see everything and may filter
// on published explicitly.
func (s *Server) ListPosts(c *fiber.Ctx) error {
	_, staff := s.viewerIsStaff(c)

	published, err := parseBool(c, "published")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	page := parsePage(c, s.config.PageSize)
	input := service.ListPostsInput{
		PublishedOnly: !staff,
		CategorySlug:  c.Query("category"),
		TagSlug:       c.Query("tag"),
		Published:     published,
		Search:        c.Query("search"),
		Ordering:      c.Query("ordering"),
		Limit:         page.Limit(),
		Offset:        page.Offset(),
	}

	posts, total, appErr := s.postService.ListPosts(c.Context(), input)
	if appErr != nil {
		return mapServiceError(c, appErr)
	}

	results := make([]PostListResponse, 0, len(posts))
	for _, post := range posts {
		results = append(results, s.toPostListResponse(post))
	}
	return c.JSON(paged(c, page, total, results))
}

// GetPost handles GET /api/posts/:slug
func (s *Server) GetPost(c *fiber.Ctx) error {
	viewerID, staff := s.viewerIsStaff(c)

	post, appErr := s.postService.GetPost(c.Context(), c.Params("slug"), staff)
	if appErr != nil {
		return mapServiceError(c, appErr)
	}
	return c.JSON(s.toPostDetailResponse(post, viewerID))
}

// CreatePost handles POST /api/posts/
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var input service.CreatePostInput
	if err := c.BodyParser(&input); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	input.AuthorID = c.Locals("userID").(uint)

	post, appErr := s.postService.CreatePost(c.Context(), input)
	if appErr != nil {
		return mapServiceError(c, appErr)
	}
	return c.Status(fiber.StatusCreated).JSON(s.toPostDetailResponse(post, input.AuthorID))
}

// UpdatePost handles PUT /api/posts/:slug. A full update requires the
// replaceable fields to be present.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	var input service.UpdatePostInput
	if err := c.BodyParser(&input); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if input.Title == nil || input.Content == nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Title and content are required"))
	}
	return s.applyPostUpdate(c, input)
}

// PatchPost handles PATCH /api/posts/:slug. Absent fields keep their
// current values.
func (s *Server) PatchPost(c *fiber.Ctx) error {
	var input service.UpdatePostInput
	if err := c.BodyParser(&input); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	return s.applyPostUpdate(c, input)
}

func (s *Server) applyPostUpdate(c *fiber.Ctx, input service.UpdatePostInput) error {
	viewerID := c.Locals("userID").(uint)

	post, appErr := s.postService.UpdatePost(c.Context(), c.Params("slug"), input)
	if appErr != nil {
		return mapServiceError(c, appErr)
	}
	return c.JSON(s.toPostDetailResponse(post, viewerID))
}

// DeletePost handles DELETE /api/posts/:slug
func (s *Server) DeletePost(c *fiber.Ctx) error {
	if appErr := s.postService.DeletePost(c.Context(), c.Params("slug")); appErr != nil {
		return mapServiceError(c, appErr)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ReactToPost handles POST /api/posts/:slug/react. Repeating the
// current reaction removes it; a different type switches it.
func (s *Server) ReactToPost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		ReactionType string `json:"reaction_type"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	staff, err := s.userRepo.IsStaff(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	reaction, outcome, appErr := s.reactionService.React(
		c.Context(), c.Params("slug"), userID, req.ReactionType, staff)
	if appErr != nil {
		return mapServiceError(c, appErr)
	}

	if outcome == repository.ToggleRemoved {
		return c.JSON(fiber.Map{"status": "reaction removed"})
	}
	return c.JSON(toReactionResponse(reaction))
}
