package server

import (
	"loomline/internal/models"

	"github.com/gofiber/fiber/v2"
)

// FollowProfile handles POST /api/profiles/:id/follow
func (s *Server) FollowProfile(c *fiber.Ctx) error {
	targetID, err := s.parseUUID(c, "id")
	if err != nil {
		return nil
	}

	follow, err := s.graphService.Follow(c.UserContext(), actorID(c), targetID)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(follow)
}

// UnfollowProfile handles DELETE /api/profiles/:id/follow
func (s *Server) UnfollowProfile(c *fiber.Ctx) error {
	targetID, err := s.parseUUID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.graphService.Unfollow(c.UserContext(), actorID(c), targetID); err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(fiber.Map{"message": "Unfollowed"})
}

// LikePost handles POST /api/posts/:id/like
func (s *Server) LikePost(c *fiber.Ctx) error {
	postID, err := s.parseUUID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.graphService.Like(c.UserContext(), actorID(c), models.LikeTargetPost, postID); err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Post liked"})
}

// UnlikePost handles DELETE /api/posts/:id/like
func (s *Server) UnlikePost(c *fiber.Ctx) error {
	postID, err := s.parseUUID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.graphService.Unlike(c.UserContext(), actorID(c), models.LikeTargetPost, postID); err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(fiber.Map{"message": "Post unliked"})
}

// LikeComment handles POST /api/comments/:id/like
func (s *Server) LikeComment(c *fiber.Ctx) error {
	commentID, err := s.parseUUID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.graphService.Like(c.UserContext(), actorID(c), models.LikeTargetComment, commentID); err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Comment liked"})
}

// UnlikeComment handles DELETE /api/comments/:id/like
func (s *Server) UnlikeComment(c *fiber.Ctx) error {
	commentID, err := s.parseUUID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.graphService.Unlike(c.UserContext(), actorID(c), models.LikeTargetComment, commentID); err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(fiber.Map{"message": "Comment unliked"})
}
