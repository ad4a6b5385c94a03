package server

import (
	"loomline/internal/models"
	"loomline/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req struct {
		Content    string   `json:"content"`
		MediaRefs  []string `json:"media_refs"`
		ParentID   *string  `json:"parent_id"`
		RepostOfID *string  `json:"repost_of_id"`
		IsPublic   *bool    `json:"is_public"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	in := service.CreatePostInput{
		AuthorID:  actorID(c),
		Content:   req.Content,
		MediaRefs: req.MediaRefs,
		IsPublic:  req.IsPublic,
	}
	if req.ParentID != nil {
		id, err := uuid.Parse(*req.ParentID)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid parent_id"))
		}
		in.ParentID = &id
	}
	if req.RepostOfID != nil {
		id, err := uuid.Parse(*req.RepostOfID)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid repost_of_id"))
		}
		in.RepostOfID = &id
	}

	post, err := s.contentService.CreatePost(c.UserContext(), in)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	postID, err := s.parseUUID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.contentService.DeletePost(c.UserContext(), actorID(c), postID); err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(fiber.Map{"message": "Post deleted"})
}

// CreateComment handles POST /api/posts/:id/comments
func (s *Server) CreateComment(c *fiber.Ctx) error {
	postID, err := s.parseUUID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content  string  `json:"content"`
		ParentID *string `json:"parent_id"`
		MediaURL string  `json:"media_url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	in := service.CreateCommentInput{
		PostID:   postID,
		AuthorID: actorID(c),
		Content:  req.Content,
		MediaURL: req.MediaURL,
	}
	if req.ParentID != nil {
		id, err := uuid.Parse(*req.ParentID)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid parent_id"))
		}
		in.ParentID = &id
	}

	comment, err := s.contentService.CreateComment(c.UserContext(), in)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}

// UpdateComment handles PUT /api/comments/:id
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	commentID, err := s.parseUUID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.contentService.UpdateComment(c.UserContext(), service.UpdateCommentInput{
		CommentID: commentID,
		AuthorID:  actorID(c),
		Content:   req.Content,
	})
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(comment)
}

// DeleteComment handles DELETE /api/comments/:id
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	commentID, err := s.parseUUID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.contentService.DeleteComment(c.UserContext(), actorID(c), commentID); err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(fiber.Map{"message": "Comment deleted"})
}
