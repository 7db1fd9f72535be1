// Package server contains the HTTP handlers for the application's routes.
package server

import (
	"strings"

	"inkstream/internal/models"
	"inkstream/internal/observability"
	"inkstream/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// NewPostForm handles GET /create. It returns the data a client needs
// to render the post form (the selectable groups).
func (s *Server) NewPostForm(c *fiber.Ctx) error {
	groups, err := s.groupRepo.List(c.Context())
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(fiber.Map{"groups": groups})
}

// CreatePost handles POST /create. The post's author is always the
// acting user; any identity field in the submission is ignored. Success
// redirects to the author's profile.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)

	var in validation.CreatePostInput
	// An empty or malformed body falls through to validation.
	_ = c.BodyParser(&in)

	if errs := in.Validate(); !errs.Empty() {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewFieldValidationError(errs))
	}

	if in.GroupID != nil {
		if _, err := s.groupRepo.GetByID(ctx, *in.GroupID); err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewFieldValidationError(validation.FieldErrors{"group_id": "Unknown group"}))
		}
	}

	post := &models.Post{
		Text:     strings.TrimSpace(in.Text),
		AuthorID: userID,
		GroupID:  in.GroupID,
	}

	if file, err := c.FormFile("image"); err == nil && file != nil {
		rel, saveErr := s.media.SavePostImage(file)
		if saveErr != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewFieldValidationError(validation.FieldErrors{"image": saveErr.Error()}))
		}
		post.Image = rel
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	observability.PostsPublished.Inc()

	author, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.Redirect(profilePath(author.Username), fiber.StatusFound)
}

// EditPostForm handles GET /posts/:id/edit. A non-author is redirected
// to the post detail view instead of seeing the form.
func (s *Server) EditPostForm(c *fiber.Ctx) error {
	ctx := c.Context()
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound, err)
	}

	if post.AuthorID != currentUserID(c) {
		return c.Redirect(postDetailPath(post.ID), fiber.StatusFound)
	}

	groups, err := s.groupRepo.List(ctx)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{"post": post, "groups": groups})
}

// EditPost handles POST /posts/:id/edit. Only the author may edit;
// anyone else is redirected to the unmodified post with no error and no
// mutation. The ownership check runs before any write.
func (s *Server) EditPost(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound, err)
	}

	if post.AuthorID != userID {
		return c.Redirect(postDetailPath(post.ID), fiber.StatusFound)
	}

	var in validation.EditPostInput
	_ = c.BodyParser(&in)

	if errs := in.Validate(); !errs.Empty() {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewFieldValidationError(errs))
	}

	if in.GroupID != nil {
		if _, err := s.groupRepo.GetByID(ctx, *in.GroupID); err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewFieldValidationError(validation.FieldErrors{"group_id": "Unknown group"}))
		}
	}

	post.Text = strings.TrimSpace(in.Text)
	post.GroupID = in.GroupID

	if file, fileErr := c.FormFile("image"); fileErr == nil && file != nil {
		rel, saveErr := s.media.SavePostImage(file)
		if saveErr != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewFieldValidationError(validation.FieldErrors{"image": saveErr.Error()}))
		}
		_ = s.media.Remove(post.Image)
		post.Image = rel
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.Redirect(postDetailPath(post.ID), fiber.StatusFound)
}

// AddComment handles POST /posts/:id/comment. The comment's author and
// parent post come from the session and the URL path, never from the
// body.
func (s *Server) AddComment(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound, err)
	}

	var in validation.AddCommentInput
	_ = c.BodyParser(&in)

	if errs := in.Validate(); !errs.Empty() {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewFieldValidationError(errs))
	}

	comment := &models.Comment{
		Text:     strings.TrimSpace(in.Text),
		AuthorID: userID,
		PostID:   post.ID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.Redirect(postDetailPath(post.ID), fiber.StatusFound)
}
