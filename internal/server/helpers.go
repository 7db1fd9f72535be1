// Package server contains the HTTP handlers for the application's routes.
package server

import (
	"context"
	"errors"
	"fmt"

	"inkstream/internal/models"
	"inkstream/internal/pagination"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper.  Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid ID"))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// currentUserID returns the authenticated user ID. Only call it behind
// AuthRequired.
func currentUserID(c *fiber.Ctx) uint {
	return c.Locals("userID").(uint)
}

// optionalUserID returns the viewer's user ID when a session was
// resolved by OptionalAuth, and zero otherwise.
func optionalUserID(c *fiber.Ctx) uint {
	if uid, ok := c.Locals("userID").(uint); ok {
		return uid
	}
	return 0
}

// postDetailPath builds the redirect target for a post's detail view.
func postDetailPath(postID uint) string {
	return fmt.Sprintf("/posts/%d", postID)
}

// profilePath builds the redirect target for an author's profile.
func profilePath(username string) string {
	return "/profile/" + username
}

// postFeed assembles one page of posts using the configured page size.
// The requested page number comes from the page query parameter;
// out-of-range requests clamp to the nearest valid page.
func (s *Server) postFeed(
	c *fiber.Ctx,
	count func(ctx context.Context) (int64, error),
	list func(ctx context.Context, limit, offset int) ([]*models.Post, error),
) ([]*models.Post, pagination.Paginator, error) {
	ctx := c.Context()

	total, err := count(ctx)
	if err != nil {
		return nil, pagination.Paginator{}, err
	}

	page := pagination.New(pagination.ParsePage(c.Query("page")), s.config.PageSize, total)

	posts, err := list(ctx, page.Size, page.Offset())
	if err != nil {
		return nil, pagination.Paginator{}, err
	}
	if posts == nil {
		posts = []*models.Post{}
	}
	return posts, page, nil
}
