package server

import (
	"devlink/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/posts.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.posts.Create(c.Context(), currentUserID(c), req.Text)
	if err != nil {
		return respondServiceError(c, err, fiber.StatusNotFound)
	}
	return c.JSON(post)
}

// GetPosts handles GET /api/posts, newest first.
func (s *Server) GetPosts(c *fiber.Ctx) error {
	posts, err := s.posts.List(c.Context())
	if err != nil {
		return respondServiceError(c, err, fiber.StatusNotFound)
	}
	return c.JSON(posts)
}

// GetPost handles GET /api/posts/:id.
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondServiceError(c, err, fiber.StatusBadRequest)
	}

	post, err := s.posts.GetByID(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err, fiber.StatusNotFound)
	}
	return c.JSON(post)
}

// GetUserPosts handles GET /api/posts/user/:user_id.
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	userID, err := parseIDParam(c, "user_id")
	if err != nil {
		return respondServiceError(c, err, fiber.StatusBadRequest)
	}

	posts, err := s.posts.ListByUser(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err, fiber.StatusNotFound)
	}
	return c.JSON(posts)
}

// DeletePost handles DELETE /api/posts/:id. Only the author may delete.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondServiceError(c, err, fiber.StatusBadRequest)
	}

	if err := s.posts.Delete(c.Context(), id, currentUserID(c)); err != nil {
		return respondServiceError(c, err, fiber.StatusNotFound)
	}
	return c.JSON(fiber.Map{"message": "Post deleted"})
}

// ToggleLike handles PUT /api/posts/like/:id. Liking an already-liked post
// removes the like; the updated post is returned either way.
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondServiceError(c, err, fiber.StatusBadRequest)
	}

	post, err := s.posts.ToggleLike(c.Context(), id, currentUserID(c))
	if err != nil {
		return respondServiceError(c, err, fiber.StatusNotFound)
	}
	return c.JSON(post)
}

// CreateComment handles POST /api/posts/comment/:id.
func (s *Server) CreateComment(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondServiceError(c, err, fiber.StatusBadRequest)
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.posts.AddComment(c.Context(), id, currentUserID(c), req.Text)
	if err != nil {
		return respondServiceError(c, err, fiber.StatusNotFound)
	}
	return c.JSON(post)
}

// DeleteComment handles DELETE /api/posts/comment/:pid/:cid. The comment
// author and the post author may both delete.
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	postID, err := parseIDParam(c, "pid")
	if err != nil {
		return respondServiceError(c, err, fiber.StatusBadRequest)
	}
	commentID, err := parseIDParam(c, "cid")
	if err != nil {
		return respondServiceError(c, err, fiber.StatusBadRequest)
	}

	post, err := s.posts.DeleteComment(c.Context(), postID, commentID, currentUserID(c))
	if err != nil {
		return respondServiceError(c, err, fiber.StatusNotFound)
	}
	return c.JSON(post)
}
