package repository

import (
	"context"
	"errors"

	"devconnect/internal/cache"
	"devconnect/internal/middleware"
	"devconnect/internal/models"

	"gorm.io/gorm"
)

// PostRepository handles persistence for posts, likes, and comments.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	List(ctx context.Context, limit, offset int) ([]models.Post, error)
	Delete(ctx context.Context, id uint) error
	AddLike(ctx context.Context, postID, userID uint) error
	RemoveLike(ctx context.Context, postID, userID uint) (int64, error)
	AddComment(ctx context.Context, comment *models.Comment) error
	DeleteComment(ctx context.Context, postID, commentID uint) (int64, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	defer middleware.TrackQuery("insert", "posts")()

	return r.db.WithContext(ctx).Create(post).Error
}

func withPostAssociations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Likes", func(db *gorm.DB) *gorm.DB {
			return db.Order("id DESC")
		}).
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("id DESC")
		})
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := cache.Aside(ctx, cache.PostKey(id), &post, cache.PostTTL, func() error {
		defer middleware.TrackQuery("select", "posts")()
		return withPostAssociations(r.db.WithContext(ctx)).First(&post, id).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, limit, offset int) ([]models.Post, error) {
	defer middleware.TrackQuery("select", "posts")()

	var posts []models.Post
	err := withPostAssociations(r.db.WithContext(ctx)).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// Delete removes the post with its likes and comments in one transaction.
func (r *postRepository) Delete(ctx context.Context, id uint) error {
	defer middleware.TrackQuery("delete", "posts")()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
	if err != nil {
		return err
	}
	cache.InvalidatePost(ctx, id)
	return nil
}

// AddLike inserts the (post, user) pair. The composite unique index makes a
// repeated like from the same user a conflict, not a second row.
func (r *postRepository) AddLike(ctx context.Context, postID, userID uint) error {
	defer middleware.TrackQuery("insert", "likes")()

	like := models.Like{PostID: postID, UserID: userID}
	if err := r.db.WithContext(ctx).Create(&like).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewValidationError("User already liked this post")
		}
		return err
	}
	cache.InvalidatePost(ctx, postID)
	return nil
}

// RemoveLike deletes exactly this user's like and reports how many rows
// matched.
func (r *postRepository) RemoveLike(ctx context.Context, postID, userID uint) (int64, error) {
	defer middleware.TrackQuery("delete", "likes")()

	res := r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&models.Like{})
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected > 0 {
		cache.InvalidatePost(ctx, postID)
	}
	return res.RowsAffected, nil
}

func (r *postRepository) AddComment(ctx context.Context, comment *models.Comment) error {
	defer middleware.TrackQuery("insert", "comments")()

	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return err
	}
	cache.InvalidatePost(ctx, comment.PostID)
	return nil
}

// DeleteComment removes one comment scoped to the post and reports how many
// rows matched.
func (r *postRepository) DeleteComment(ctx context.Context, postID, commentID uint) (int64, error) {
	defer middleware.TrackQuery("delete", "comments")()

	res := r.db.WithContext(ctx).
		Where("id = ? AND post_id = ?", commentID, postID).
		Delete(&models.Comment{})
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected > 0 {
		cache.InvalidatePost(ctx, postID)
	}
	return res.RowsAffected, nil
}
