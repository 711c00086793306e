package service

import (
	"context"

	"devlink/internal/models"
	"devlink/internal/repository"
)

// PostService manages the post feed and its nested likes and comments.
type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
}

// NewPostService creates a PostService.
func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository) *PostService {
	return &PostService{postRepo: postRepo, userRepo: userRepo}
}

// Create adds a post authored by userID, snapshotting the author's name and
// avatar at creation time.
func (s *PostService) Create(ctx context.Context, userID uint, text string) (*models.Post, error) {
	if text == "" {
		return nil, models.NewValidationError("Post text is required")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		UserID: userID,
		Text:   text,
		Name:   user.Name,
		Avatar: user.Avatar,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID)
}

// List returns all posts newest-first.
func (s *PostService) List(ctx context.Context) ([]*models.Post, error) {
	return s.postRepo.List(ctx)
}

// GetByID returns a single post with its likes and comments.
func (s *PostService) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// ListByUser returns the posts authored by the given user.
func (s *PostService) ListByUser(ctx context.Context, userID uint) ([]*models.Post, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.postRepo.GetByUserID(ctx, userID)
}

// Delete removes a post. Only the post's author may delete it.
func (s *PostService) Delete(ctx context.Context, postID, requesterID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != requesterID {
		return models.NewUnauthorizedError("Unauthorized access")
	}
	return s.postRepo.Delete(ctx, postID)
}

// ToggleLike adds the user's like if absent or removes it if present, then
// returns the updated post. Applying the toggle twice restores the original
// state. Concurrent self-toggles are last-write-wins at the row level, but
// the unique (user, post) index keeps at most one like representable.
func (s *PostService) ToggleLike(ctx context.Context, postID, userID uint) (*models.Post, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	liked, err := s.postRepo.IsLiked(ctx, userID, postID)
	if err != nil {
		return nil, err
	}

	if liked {
		err = s.postRepo.Unlike(ctx, userID, postID)
	} else {
		err = s.postRepo.Like(ctx, userID, postID)
	}
	if err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, postID)
}

// AddComment inserts a comment at the front of the post's comment list,
// snapshotting the author's name and avatar.
func (s *PostService) AddComment(ctx context.Context, postID, authorID uint, text string) (*models.Post, error) {
	if text == "" {
		return nil, models.NewValidationError("Post text is required")
	}

	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	author, err := s.userRepo.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID: postID,
		UserID: authorID,
		Text:   text,
		Name:   author.Name,
		Avatar: author.Avatar,
	}
	if err := s.postRepo.AddComment(ctx, comment); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, postID)
}

// DeleteComment removes a comment. The requester must be either the post's
// author or the comment's author; anyone else is rejected and the comment
// list is left unchanged.
func (s *PostService) DeleteComment(ctx context.Context, postID, commentID, requesterID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	var comment *models.Comment
	for i := range post.Comments {
		if post.Comments[i].ID == commentID {
			comment = &post.Comments[i]
			break
		}
	}
	if comment == nil {
		return nil, models.NewNotFoundError("Comment")
	}

	if requesterID != post.UserID && requesterID != comment.UserID {
		return nil, models.NewUnauthorizedError("Unauthorized access")
	}

	if err := s.postRepo.DeleteComment(ctx, postID, commentID); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, postID)
}
