package models

import "time"

// Post is user-generated content owned by a single author. CommentCount
// caches the size of the comment set and never goes negative.
type Post struct {
	ID           string    `db:"id" json:"id"`
	AuthorID     string    `db:"author_id" json:"author_id"`
	CommentCount int       `db:"comment_count" json:"comment_count"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Comment belongs to exactly one post and one author.
type Comment struct {
	ID        string    `db:"id" json:"id"`
	PostID    string    `db:"post_id" json:"post_id"`
	AuthorID  string    `db:"author_id" json:"author_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
