// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"serenamente/internal/models"
)

const commentColumns = `id, post_id, author_name, author_email, body, approved, created_at`

// CommentStore handles all comment-related database operations.
// Creating and deleting a comment also adjusts the parent post's
// comment_count in the same transaction, so the counter and the comment
// rows can never drift apart.
type CommentStore struct {
	db *sql.DB
}

// NewCommentStore creates a new CommentStore with the given database connection.
func NewCommentStore(db *sql.DB) *CommentStore {
	return &CommentStore{db: db}
}

// ListByPost returns comments for a post, oldest first. When onlyApproved
// is true, pending comments are excluded (the public view).
func (s *CommentStore) ListByPost(postID uuid.UUID, onlyApproved bool) ([]models.Comment, error) {
	query := `
		SELECT ` + commentColumns + `
		FROM comments
		WHERE post_id = $1`
	if onlyApproved {
		query += ` AND approved = TRUE`
	}
	query += ` ORDER BY created_at ASC`

	rows, err := s.db.Query(query, postID)
	if err != nil {
		return nil, fmt.Errorf("list comments by post: %w", err)
	}
	defer rows.Close()

	return collectComments(rows)
}

// ListAll returns every comment, newest first. Used by the moderation
// queue, which also surfaces comments orphaned by post deletion.
func (s *CommentStore) ListAll() ([]models.Comment, error) {
	rows, err := s.db.Query(`
		SELECT ` + commentColumns + `
		FROM comments
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list all comments: %w", err)
	}
	defer rows.Close()

	return collectComments(rows)
}

func collectComments(rows *sql.Rows) ([]models.Comment, error) {
	var comments []models.Comment
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(
			&c.ID, &c.PostID, &c.AuthorName, &c.AuthorEmail,
			&c.Body, &c.Approved, &c.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

// FindByID retrieves a comment by its UUID. Returns nil if not found.
func (s *CommentStore) FindByID(id uuid.UUID) (*models.Comment, error) {
	c := &models.Comment{}
	err := s.db.QueryRow(`
		SELECT `+commentColumns+`
		FROM comments WHERE id = $1
	`, id).Scan(
		&c.ID, &c.PostID, &c.AuthorName, &c.AuthorEmail,
		&c.Body, &c.Approved, &c.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find comment by id: %w", err)
	}
	return c, nil
}

// Create inserts a new comment and increments the parent post's
// comment_count atomically. New comments start unapproved.
func (s *CommentStore) Create(c *models.Comment) (*models.Comment, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("create comment: begin tx: %w", err)
	}
	defer tx.Rollback()

	result := &models.Comment{}
	err = tx.QueryRow(`
		INSERT INTO comments (post_id, author_name, author_email, body, approved)
		VALUES ($1, $2, $3, $4, FALSE)
		RETURNING `+commentColumns+`
	`, c.PostID, c.AuthorName, c.AuthorEmail, c.Body).Scan(
		&result.ID, &result.PostID, &result.AuthorName, &result.AuthorEmail,
		&result.Body, &result.Approved, &result.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	if _, err := tx.Exec(`
		UPDATE posts SET comment_count = comment_count + 1 WHERE id = $1
	`, c.PostID); err != nil {
		return nil, fmt.Errorf("create comment: bump count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("create comment: commit: %w", err)
	}
	return result, nil
}

// Delete removes a comment and decrements the parent post's comment_count
// atomically. When the parent post no longer exists (orphaned comment),
// the counter update matches zero rows and the delete still succeeds.
func (s *CommentStore) Delete(id uuid.UUID) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("delete comment: begin tx: %w", err)
	}
	defer tx.Rollback()

	var postID uuid.UUID
	err = tx.QueryRow(`
		DELETE FROM comments WHERE id = $1 RETURNING post_id
	`, id).Scan(&postID)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}

	// GREATEST guards the check constraint against a counter that was
	// already zero (comments created before counting existed).
	if _, err := tx.Exec(`
		UPDATE posts SET comment_count = GREATEST(comment_count - 1, 0) WHERE id = $1
	`, postID); err != nil {
		return fmt.Errorf("delete comment: drop count: %w", err)
	}

	return tx.Commit()
}

// SetApproved updates a comment's moderation state.
func (s *CommentStore) SetApproved(id uuid.UUID, approved bool) error {
	_, err := s.db.Exec(`UPDATE comments SET approved = $1 WHERE id = $2`, approved, id)
	if err != nil {
		return fmt.Errorf("set comment approved: %w", err)
	}
	return nil
}

// CountPending returns the number of comments awaiting moderation.
func (s *CommentStore) CountPending() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM comments WHERE approved = FALSE`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count pending comments: %w", err)
	}
	return n, nil
}
