package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/devillage/teamproject/backend/internal/models"
	"github.com/devillage/teamproject/backend/internal/repositories"
	"github.com/sirupsen/logrus"
)

// CommentService handles comments and their re-comments.
type CommentService struct {
	store repositories.Store
	log   *logrus.Logger
}

func NewCommentService(store repositories.Store, log *logrus.Logger) *CommentService {
	return &CommentService{store: store, log: log}
}

// CreateComment adds a comment by userID to postID.
func (s *CommentService) CreateComment(ctx context.Context, userID, postID uint, content string) (*models.Comment, error) {
	if _, err := verifyUser(ctx, s.store, userID); err != nil {
		return nil, err
	}
	if _, err := verifyPost(ctx, s.store, postID); err != nil {
		return nil, err
	}
	comment := &models.Comment{PostID: postID, UserID: userID, Content: content}
	if err := s.store.Comments().CreateComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return comment, nil
}

// ListComments returns the comments of a post with their re-comments, oldest first.
func (s *CommentService) ListComments(ctx context.Context, postID uint) ([]models.Comment, error) {
	if _, err := verifyPost(ctx, s.store, postID); err != nil {
		return nil, err
	}
	comments, err := s.store.Comments().GetCommentsByPostID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}

// EditComment replaces the content of a comment. Only its author may edit it.
func (s *CommentService) EditComment(ctx context.Context, userID, postID, commentID uint, content string) (*models.Comment, error) {
	comment, err := s.ownedComment(ctx, userID, postID, commentID)
	if err != nil {
		return nil, err
	}
	comment.Content = content
	if err := s.store.Comments().UpdateComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}
	return comment, nil
}

// DeleteComment removes a comment and its re-comments. Only its author may delete it.
func (s *CommentService) DeleteComment(ctx context.Context, userID, postID, commentID uint) error {
	if _, err := s.ownedComment(ctx, userID, postID, commentID); err != nil {
		return err
	}
	if err := s.store.Comments().DeleteComment(ctx, commentID); err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	s.log.WithFields(logrus.Fields{"user_id": userID, "comment_id": commentID}).Info("comment deleted")
	return nil
}

// CreateReComment replies to a comment.
func (s *CommentService) CreateReComment(ctx context.Context, userID, postID, commentID uint, content string) (*models.ReComment, error) {
	if _, err := verifyUser(ctx, s.store, userID); err != nil {
		return nil, err
	}
	if _, err := s.commentOnPost(ctx, postID, commentID); err != nil {
		return nil, err
	}
	reComment := &models.ReComment{CommentID: commentID, UserID: userID, Content: content}
	if err := s.store.Comments().CreateReComment(ctx, reComment); err != nil {
		return nil, fmt.Errorf("create re-comment: %w", err)
	}
	return reComment, nil
}

// EditReComment replaces the content of a re-comment. Only its author may edit it.
func (s *CommentService) EditReComment(ctx context.Context, userID, postID, commentID, reCommentID uint, content string) (*models.ReComment, error) {
	reComment, err := s.ownedReComment(ctx, userID, postID, commentID, reCommentID)
	if err != nil {
		return nil, err
	}
	reComment.Content = content
	if err := s.store.Comments().UpdateReComment(ctx, reComment); err != nil {
		return nil, fmt.Errorf("update re-comment: %w", err)
	}
	return reComment, nil
}

// DeleteReComment removes a re-comment. Only its author may delete it.
func (s *CommentService) DeleteReComment(ctx context.Context, userID, postID, commentID, reCommentID uint) error {
	if _, err := s.ownedReComment(ctx, userID, postID, commentID, reCommentID); err != nil {
		return err
	}
	if err := s.store.Comments().DeleteReComment(ctx, reCommentID); err != nil {
		return fmt.Errorf("delete re-comment: %w", err)
	}
	return nil
}

// commentOnPost loads a comment and checks it belongs to postID.
func (s *CommentService) commentOnPost(ctx context.Context, postID, commentID uint) (*models.Comment, error) {
	if _, err := verifyPost(ctx, s.store, postID); err != nil {
		return nil, err
	}
	comment, err := s.store.Comments().GetCommentByID(ctx, commentID)
	if errors.Is(err, repositories.ErrNotFound) || (err == nil && comment.PostID != postID) {
		return nil, &NotFoundError{Kind: KindComment, ID: commentID}
	}
	if err != nil {
		return nil, fmt.Errorf("load comment %d: %w", commentID, err)
	}
	return comment, nil
}

func (s *CommentService) ownedComment(ctx context.Context, userID, postID, commentID uint) (*models.Comment, error) {
	comment, err := s.commentOnPost(ctx, postID, commentID)
	if err != nil {
		return nil, err
	}
	if comment.UserID != userID {
		return nil, ErrForbidden
	}
	return comment, nil
}

func (s *CommentService) ownedReComment(ctx context.Context, userID, postID, commentID, reCommentID uint) (*models.ReComment, error) {
	if _, err := s.commentOnPost(ctx, postID, commentID); err != nil {
		return nil, err
	}
	reComment, err := s.store.Comments().GetReCommentByID(ctx, reCommentID)
	if errors.Is(err, repositories.ErrNotFound) || (err == nil && reComment.CommentID != commentID) {
		return nil, &NotFoundError{Kind: KindReComment, ID: reCommentID}
	}
	if err != nil {
		return nil, fmt.Errorf("load re-comment %d: %w", reCommentID, err)
	}
	if reComment.UserID != userID {
		return nil, ErrForbidden
	}
	return reComment, nil
}
