package server

import (
	"devconnect/internal/models"
	"devconnect/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// postRequest is the body for post and comment creation. Name and avatar are
// denormalized copies supplied by the client, not looked up from the account.
type postRequest struct {
	Text   string `json:"text"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// CreatePost stores a new post authored by the caller.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req postRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	if errs, ok := validation.ValidatePostInput(req.Text); !ok {
		return models.RespondWithFieldErrors(c, errs)
	}

	post, err := s.posts.Create(c.UserContext(), currentUserID(c), req.Text, req.Name, req.Avatar)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(post)
}

// ListPosts returns the feed, newest first.
func (s *Server) ListPosts(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)
	posts, err := s.posts.List(c.UserContext(), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(posts)
}

// GetPost returns one post with its likes and comments.
func (s *Server) GetPost(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	post, err := s.posts.Get(c.UserContext(), postID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(post)
}

// DeletePost removes a post. Only the author may delete it.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := s.posts.Delete(c.UserContext(), postID, currentUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// LikePost adds the caller's like and returns the updated post.
func (s *Server) LikePost(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	post, err := s.posts.Like(c.UserContext(), postID, currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(post)
}

// UnlikePost removes the caller's like and returns the updated post.
func (s *Server) UnlikePost(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	post, err := s.posts.Unlike(c.UserContext(), postID, currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(post)
}

// AddComment appends the caller's comment and returns the updated post.
func (s *Server) AddComment(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req postRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}
	if errs, ok := validation.ValidatePostInput(req.Text); !ok {
		return models.RespondWithFieldErrors(c, errs)
	}

	post, err := s.posts.AddComment(c.UserContext(), postID, currentUserID(c), req.Text, req.Name, req.Avatar)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(post)
}

// DeleteComment removes one comment by id and returns the updated post.
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	commentID, err := parseID(c, "comment_id")
	if err != nil {
		return respondError(c, err)
	}

	post, err := s.posts.RemoveComment(c.UserContext(), postID, commentID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(post)
}
