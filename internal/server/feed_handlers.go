package server

import (
	"loomline/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetFeed handles GET /api/feed
func (s *Server) GetFeed(c *fiber.Ctx) error {
	page := parsePagination(c, 20)

	posts, err := s.feedService.GetFeed(c.UserContext(), actorID(c), page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(posts)
}

// GetProfilePosts handles GET /api/profiles/:id/posts
func (s *Server) GetProfilePosts(c *fiber.Ctx) error {
	profileID, err := s.parseUUID(c, "id")
	if err != nil {
		return nil
	}
	page := parsePagination(c, 20)

	posts, err := s.feedService.GetProfilePosts(c.UserContext(), actorID(c), profileID, page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(posts)
}

// GetFollowers handles GET /api/profiles/:id/followers
func (s *Server) GetFollowers(c *fiber.Ctx) error {
	profileID, err := s.parseUUID(c, "id")
	if err != nil {
		return nil
	}
	page := parsePagination(c, 20)

	followers, err := s.feedService.GetFollowers(c.UserContext(), actorID(c), profileID, page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(followers)
}

// GetFollowing handles GET /api/profiles/:id/following
func (s *Server) GetFollowing(c *fiber.Ctx) error {
	profileID, err := s.parseUUID(c, "id")
	if err != nil {
		return nil
	}
	page := parsePagination(c, 20)

	following, err := s.feedService.GetFollowing(c.UserContext(), actorID(c), profileID, page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(following)
}

// GetPostReplies handles GET /api/posts/:id/replies
func (s *Server) GetPostReplies(c *fiber.Ctx) error {
	postID, err := s.parseUUID(c, "id")
	if err != nil {
		return nil
	}
	page := parsePagination(c, 20)

	replies, err := s.feedService.GetReplies(c.UserContext(), actorID(c), postID, page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(replies)
}

// GetPostLikers handles GET /api/posts/:id/likes
func (s *Server) GetPostLikers(c *fiber.Ctx) error {
	postID, err := s.parseUUID(c, "id")
	if err != nil {
		return nil
	}
	page := parsePagination(c, 20)

	likers, err := s.feedService.GetPostLikers(c.UserContext(), actorID(c), postID, page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(likers)
}

// GetComments handles GET /api/posts/:id/comments
func (s *Server) GetComments(c *fiber.Ctx) error {
	postID, err := s.parseUUID(c, "id")
	if err != nil {
		return nil
	}
	page := parsePagination(c, 20)

	comments, err := s.feedService.ListComments(c.UserContext(), postID, page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(comments)
}

// GetCommentReplies handles GET /api/comments/:id/replies
func (s *Server) GetCommentReplies(c *fiber.Ctx) error {
	commentID, err := s.parseUUID(c, "id")
	if err != nil {
		return nil
	}
	page := parsePagination(c, 20)

	replies, err := s.feedService.ListCommentReplies(c.UserContext(), commentID, page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(replies)
}

// GetTrendingHashtags handles GET /api/hashtags/trending
func (s *Server) GetTrendingHashtags(c *fiber.Ctx) error {
	page := parsePagination(c, 10)

	tags, err := s.feedService.GetTrendingHashtags(c.UserContext(), page.Limit)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(tags)
}
