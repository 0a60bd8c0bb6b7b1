// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"fmt"
	"strconv"
	"strings"

	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

const maxPageSize = 100

// Page holds parsed page-number pagination parameters.
type Page struct {
	Number int
	Size   int
}

// Limit and Offset translate the page into query bounds.
func (p Page) Limit() int  { return p.Size }
func (p Page) Offset() int { return (p.Number - 1) * p.Size }

// parsePage extracts page and page_size query parameters. Page numbers
// start at 1; page_size is capped.
func parsePage(c *fiber.Ctx, defaultSize int) Page {
	number := c.QueryInt("page", 1)
	if number < 1 {
		number = 1
	}

	size := c.QueryInt("page_size", defaultSize)
	if size <= 0 {
		size = defaultSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	return Page{Number: number, Size: size}
}

// PagedResponse is the envelope wrapping every collection response.
type PagedResponse struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  any     `json:"results"`
}

// paged builds the pagination envelope for the current request. Next
// and previous are absolute paths carrying the page number, null at
// either end of the collection.
func paged(c *fiber.Ctx, page Page, count int64, results any) PagedResponse {
	resp := PagedResponse{Count: count, Results: results}

	lastPage := int((count + int64(page.Size) - 1) / int64(page.Size))
	if page.Number < lastPage {
		next := pageURL(c, page.Number+1)
		resp.Next = &next
	}
	if page.Number > 1 {
		prev := pageURL(c, page.Number-1)
		resp.Previous = &prev
	}
	return resp
}

// pageURL rebuilds the request path with the page parameter replaced.
func pageURL(c *fiber.Ctx, number int) string {
	args := []string{}
	c.Context().QueryArgs().VisitAll(func(key, value []byte) {
		if string(key) == "page" {
			return
		}
		args = append(args, string(key)+"="+string(value))
	})
	if number > 1 {
		args = append(args, "page="+strconv.Itoa(number))
	}
	if len(args) == 0 {
		return c.Path()
	}
	return c.Path() + "?" + strings.Join(args, "&")
}

// mapServiceError translates an application error into the matching
// HTTP status and writes the standard error body.
func mapServiceError(c *fiber.Ctx, appErr *models.AppError) error {
	status := fiber.StatusInternalServerError
	switch appErr.Code {
	case "NOT_FOUND":
		status = fiber.StatusNotFound
	case "VALIDATION_ERROR":
		status = fiber.StatusBadRequest
	case "UNAUTHORIZED":
		status = fiber.StatusUnauthorized
	case "FORBIDDEN":
		status = fiber.StatusForbidden
	case "CONFLICT":
		status = fiber.StatusConflict
	}
	return models.RespondWithError(c, status, appErr)
}

// parseBool reads an optional boolean query parameter, returning nil
// when absent and an error on junk values.
func parseBool(c *fiber.Ctx, name string) (*bool, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(strings.ToLower(raw))
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q", name, raw)
	}
	return &v, nil
}
