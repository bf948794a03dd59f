package service

import (
	"context"

	"devconnect/internal/models"
	"devconnect/internal/repository"
)

// PostService implements the post feed with its like and comment operations.
type PostService struct {
	posts repository.PostRepository
}

func NewPostService(posts repository.PostRepository) *PostService {
	return &PostService{posts: posts}
}

// Create stores a new post. Author name and avatar are denormalized copies of
// whatever the client sent, frozen at creation time.
func (s *PostService) Create(ctx context.Context, userID uint, text, name, avatar string) (*models.Post, error) {
	post := &models.Post{
		UserID: userID,
		Text:   text,
		Name:   name,
		Avatar: avatar,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, models.NewInternalError(err)
	}
	return post, nil
}

// Get returns one post with its likes and comments.
func (s *PostService) Get(ctx context.Context, postID uint) (*models.Post, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if post == nil {
		return nil, models.NewNotFoundError("Post not found")
	}
	return post, nil
}

// List returns the feed, newest first.
func (s *PostService) List(ctx context.Context, limit, offset int) ([]models.Post, error) {
	posts, err := s.posts.List(ctx, limit, offset)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// Delete removes a post. Only the author may delete it.
func (s *PostService) Delete(ctx context.Context, postID, userID uint) error {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return models.NewInternalError(err)
	}
	if post == nil {
		return models.NewNotFoundError("Post not found")
	}
	if post.UserID != userID {
		return models.NewUnauthorizedError("User not authorized")
	}

	if err := s.posts.Delete(ctx, postID); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Like adds the caller's like to a post. Liking twice is rejected.
func (s *PostService) Like(ctx context.Context, postID, userID uint) (*models.Post, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if post == nil {
		return nil, models.NewNotFoundError("Post not found")
	}

	if err := s.posts.AddLike(ctx, postID, userID); err != nil {
		if appErr, ok := err.(*models.AppError); ok {
			return nil, appErr
		}
		return nil, models.NewInternalError(err)
	}
	return s.Get(ctx, postID)
}

// Unlike removes exactly the caller's like from a post.
func (s *PostService) Unlike(ctx context.Context, postID, userID uint) (*models.Post, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if post == nil {
		return nil, models.NewNotFoundError("Post not found")
	}

	rows, err := s.posts.RemoveLike(ctx, postID, userID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if rows == 0 {
		return nil, models.NewValidationError("User has not liked this post")
	}
	return s.Get(ctx, postID)
}

// AddComment appends the caller's comment to a post. Like posts, comment
// name and avatar are denormalized from the request.
func (s *PostService) AddComment(ctx context.Context, postID, userID uint, text, name, avatar string) (*models.Post, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if post == nil {
		return nil, models.NewNotFoundError("Post not found")
	}

	comment := &models.Comment{
		PostID: postID,
		UserID: userID,
		Text:   text,
		Name:   name,
		Avatar: avatar,
	}
	if err := s.posts.AddComment(ctx, comment); err != nil {
		return nil, models.NewInternalError(err)
	}
	return s.Get(ctx, postID)
}

// RemoveComment deletes one comment by id from a post.
func (s *PostService) RemoveComment(ctx context.Context, postID, commentID uint) (*models.Post, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if post == nil {
		return nil, models.NewNotFoundError("Post not found")
	}

	rows, err := s.posts.DeleteComment(ctx, postID, commentID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if rows == 0 {
		return nil, models.NewNotFoundError("Comment does not exist")
	}
	return s.Get(ctx, postID)
}
