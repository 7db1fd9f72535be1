// Package server contains the HTTP handlers for the application's routes.
package server

import (
	"context"
	"time"

	"inkstream/internal/cache"
	"inkstream/internal/models"
	"inkstream/internal/observability"
	"inkstream/internal/pagination"

	"github.com/gofiber/fiber/v2"
)

// FeedPage is the JSON payload for a paginated post listing.
type FeedPage struct {
	Posts []*models.Post       `json:"posts"`
	Page  pagination.Paginator `json:"page"`
}

// GroupPage is the payload for a group's post listing.
type GroupPage struct {
	Group *models.Group        `json:"group"`
	Posts []*models.Post       `json:"posts"`
	Page  pagination.Paginator `json:"page"`
}

// ProfilePage is the payload for an author's profile.
type ProfilePage struct {
	Author     *models.User         `json:"author"`
	Posts      []*models.Post       `json:"posts"`
	Page       pagination.Paginator `json:"page"`
	PostsCount int64                `json:"posts_count"`
	Followers  int64                `json:"followers_count"`
	Following  bool                 `json:"following"`
}

// PostPage is the payload for a single post with its comments.
type PostPage struct {
	Post             *models.Post      `json:"post"`
	Comments         []*models.Comment `json:"comments"`
	AuthorPostsCount int64             `json:"author_posts_count"`
	Following        bool              `json:"following"`
}

// Home handles GET /. The page is served through the feed cache; the
// post repository invalidates it after every post mutation, so a fresh
// page appears immediately after publishing.
func (s *Server) Home(c *fiber.Ctx) error {
	ctx := c.Context()
	requested := pagination.ParsePage(c.Query("page"))
	key := cache.FeedKey(c.Path(), requested)

	var view FeedPage
	computed := false
	err := cache.Aside(ctx, key, &view, time.Duration(s.config.FeedCacheTTL)*time.Second, func() error {
		computed = true
		posts, page, err := s.postFeed(c, s.postRepo.Count, s.postRepo.List)
		if err != nil {
			return err
		}
		view = FeedPage{Posts: posts, Page: page}
		return nil
	})
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	if computed {
		observability.FeedCacheMisses.Inc()
	} else {
		observability.FeedCacheHits.Inc()
	}

	return c.JSON(view)
}

// GroupPosts handles GET /group/:slug
func (s *Server) GroupPosts(c *fiber.Ctx) error {
	ctx := c.Context()

	group, err := s.groupRepo.GetBySlug(ctx, c.Params("slug"))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound, err)
	}

	posts, page, err := s.postFeed(c,
		func(ctx context.Context) (int64, error) { return s.postRepo.CountByGroup(ctx, group.ID) },
		func(ctx context.Context, limit, offset int) ([]*models.Post, error) {
			return s.postRepo.ListByGroup(ctx, group.ID, limit, offset)
		},
	)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(GroupPage{Group: group, Posts: posts, Page: page})
}

// Profile handles GET /profile/:username
func (s *Server) Profile(c *fiber.Ctx) error {
	ctx := c.Context()

	author, err := s.userRepo.GetByUsername(ctx, c.Params("username"))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound, err)
	}

	posts, page, err := s.postFeed(c,
		func(ctx context.Context) (int64, error) { return s.postRepo.CountByAuthor(ctx, author.ID) },
		func(ctx context.Context, limit, offset int) ([]*models.Post, error) {
			return s.postRepo.ListByAuthor(ctx, author.ID, limit, offset)
		},
	)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	followers, err := s.followRepo.CountFollowers(ctx, author.ID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	// Follow state is shown only to authenticated viewers other than the
	// author themselves.
	following := false
	if viewerID := optionalUserID(c); viewerID != 0 && viewerID != author.ID {
		following, err = s.followRepo.IsFollowing(ctx, viewerID, author.ID)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError, err)
		}
	}

	return c.JSON(ProfilePage{
		Author:     author,
		Posts:      posts,
		Page:       page,
		PostsCount: page.TotalItems,
		Followers:  followers,
		Following:  following,
	})
}

// PostDetail handles GET /posts/:id
func (s *Server) PostDetail(c *fiber.Ctx) error {
	ctx := c.Context()
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound, err)
	}

	comments, err := s.commentRepo.ListByPost(ctx, post.ID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if comments == nil {
		comments = []*models.Comment{}
	}

	authorPosts, err := s.postRepo.CountByAuthor(ctx, post.AuthorID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	following := false
	if viewerID := optionalUserID(c); viewerID != 0 && viewerID != post.AuthorID {
		following, err = s.followRepo.IsFollowing(ctx, viewerID, post.AuthorID)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError, err)
		}
	}

	return c.JSON(PostPage{
		Post:             post,
		Comments:         comments,
		AuthorPostsCount: authorPosts,
		Following:        following,
	})
}

// FollowFeed handles GET /follow: posts from authors the user follows.
func (s *Server) FollowFeed(c *fiber.Ctx) error {
	userID := currentUserID(c)

	posts, page, err := s.postFeed(c,
		func(ctx context.Context) (int64, error) { return s.postRepo.CountFollowed(ctx, userID) },
		func(ctx context.Context, limit, offset int) ([]*models.Post, error) {
			return s.postRepo.ListFollowed(ctx, userID, limit, offset)
		},
	)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(FeedPage{Posts: posts, Page: page})
}
