package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"

	"admin-service/internal/models"
)

// PostRepository covers posts and their comment subcollections.
type PostRepository interface {
	ListPostIDsByAuthor(ctx context.Context, authorID string) ([]string, error)
	DeletePostWithComments(ctx context.Context, postID string) error
	ListCommentsByAuthor(ctx context.Context, authorID string) ([]models.Comment, error)
	DeleteCommentAndDecrementCount(ctx context.Context, commentID, postID string) error
	CountPosts(ctx context.Context) (int, error)
}

// PostRepo is a sqlx implementation of PostRepository.
type PostRepo struct {
	db *sqlx.DB
}

// NewPostRepo constructs a PostRepo.
func NewPostRepo(db *sqlx.DB) *PostRepo {
	return &PostRepo{db: db}
}

// ListPostIDsByAuthor returns ids of every post the author owns.
func (r *PostRepo) ListPostIDsByAuthor(ctx context.Context, authorID string) ([]string, error) {
	var ids []string
	err := r.db.SelectContext(ctx, &ids, `SELECT id FROM posts WHERE author_id=$1`, authorID)
	return ids, err
}

// DeletePostWithComments removes a post and all comments under it in one
// transaction.
func (r *PostRepo) DeletePostWithComments(ctx context.Context, postID string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM comments WHERE post_id=$1`, postID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM posts WHERE id=$1`, postID); err != nil {
		return err
	}
	return tx.Commit()
}

// ListCommentsByAuthor returns every comment the author left, across all
// posts.
func (r *PostRepo) ListCommentsByAuthor(ctx context.Context, authorID string) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.SelectContext(ctx, &comments, `SELECT id, post_id, author_id, created_at FROM comments WHERE author_id=$1`, authorID)
	return comments, err
}

// DeleteCommentAndDecrementCount removes one comment and decrements the
// parent post's cached comment_count, floored at zero, in one transaction.
func (r *PostRepo) DeleteCommentAndDecrementCount(ctx context.Context, commentID, postID string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM comments WHERE id=$1`, commentID)
	if err != nil {
		return err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if count > 0 {
		if _, err := tx.ExecContext(ctx, `UPDATE posts SET comment_count = GREATEST(comment_count - 1, 0) WHERE id=$1`, postID); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// CountPosts returns the total number of posts.
func (r *PostRepo) CountPosts(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM posts`)
	return count, err
}

var _ PostRepository = (*PostRepo)(nil)
