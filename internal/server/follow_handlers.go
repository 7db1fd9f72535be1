// Package server contains the HTTP handlers for the application's routes.
package server

import (
	"inkstream/internal/models"
	"inkstream/internal/observability"

	"github.com/gofiber/fiber/v2"
)

// FollowAuthor handles GET /profile/:username/follow. Following is
// idempotent and following yourself is a silent no-op; either way the
// user lands back on the author's profile.
func (s *Server) FollowAuthor(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)

	author, err := s.userRepo.GetByUsername(ctx, c.Params("username"))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound, err)
	}

	if author.ID != userID {
		if err := s.followRepo.Follow(ctx, userID, author.ID); err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError, err)
		}
		observability.FollowEdgesChanged.WithLabelValues("follow").Inc()
	}

	return c.Redirect(profilePath(author.Username), fiber.StatusFound)
}

// UnfollowAuthor handles GET /profile/:username/unfollow. Removing an
// absent edge is a no-op, and the user is redirected back to the
// profile regardless of outcome.
func (s *Server) UnfollowAuthor(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)

	author, err := s.userRepo.GetByUsername(ctx, c.Params("username"))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound, err)
	}

	if err := s.followRepo.Unfollow(ctx, userID, author.ID); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	observability.FollowEdgesChanged.WithLabelValues("unfollow").Inc()

	return c.Redirect(profilePath(author.Username), fiber.StatusFound)
}
