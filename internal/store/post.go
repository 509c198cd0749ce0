// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"serenamente/internal/models"
)

const postColumns = `id, title, slug, excerpt, body, cover_image_url, video_url,
	       type, status, tags, featured, pinned,
	       view_count, like_count, comment_count,
	       published_at, created_at, updated_at`

// PostStore handles all post-related database operations.
type PostStore struct {
	db *sql.DB
}

// NewPostStore creates a new PostStore with the given database connection.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

// scanPost scans a single row into a Post, decoding the tag list.
func scanPost(row interface{ Scan(...any) error }) (*models.Post, error) {
	p := &models.Post{}
	var tags string
	err := row.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.Body, &p.CoverImageURL, &p.VideoURL,
		&p.Type, &p.Status, &tags, &p.Featured, &p.Pinned,
		&p.ViewCount, &p.LikeCount, &p.CommentCount,
		&p.PublishedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Tags = tagsFromDB(tags)
	return p, nil
}

// tagsToDB joins a tag slice into the comma-delimited column format.
func tagsToDB(tags []string) string {
	return strings.Join(tags, ",")
}

// tagsFromDB splits the comma-delimited column value, dropping empties.
func tagsFromDB(col string) []string {
	if col == "" {
		return nil
	}
	parts := strings.Split(col, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}

// List returns all posts ordered by creation date descending.
func (s *PostStore) List() ([]models.Post, error) {
	rows, err := s.db.Query(`
		SELECT ` + postColumns + `
		FROM posts
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	return collectPosts(rows)
}

// ListPublished returns all published posts ordered by publication date
// descending. Used for the public blog index and feed.
func (s *PostStore) ListPublished() ([]models.Post, error) {
	rows, err := s.db.Query(`
		SELECT ` + postColumns + `
		FROM posts
		WHERE status = 'published'
		ORDER BY published_at DESC NULLS LAST
	`)
	if err != nil {
		return nil, fmt.Errorf("list published posts: %w", err)
	}
	defer rows.Close()

	return collectPosts(rows)
}

// ListFeatured returns up to limit featured published posts, newest first.
// Used for the home page highlight section.
func (s *PostStore) ListFeatured(limit int) ([]models.Post, error) {
	rows, err := s.db.Query(`
		SELECT `+postColumns+`
		FROM posts
		WHERE status = 'published' AND featured = TRUE
		ORDER BY published_at DESC NULLS LAST
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list featured posts: %w", err)
	}
	defer rows.Close()

	return collectPosts(rows)
}

func collectPosts(rows *sql.Rows) ([]models.Post, error) {
	var posts []models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, *p)
	}
	return posts, rows.Err()
}

// FindByID retrieves a post by its UUID. Returns nil if not found.
func (s *PostStore) FindByID(id uuid.UUID) (*models.Post, error) {
	p, err := scanPost(s.db.QueryRow(`
		SELECT `+postColumns+`
		FROM posts WHERE id = $1
	`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by id: %w", err)
	}
	return p, nil
}

// FindBySlug retrieves a published post by its slug. Slugs are not
// unique; when several posts share one, the newest wins.
func (s *PostStore) FindBySlug(slug string) (*models.Post, error) {
	p, err := scanPost(s.db.QueryRow(`
		SELECT `+postColumns+`
		FROM posts
		WHERE slug = $1 AND status = 'published'
		ORDER BY created_at DESC
		LIMIT 1
	`, slug))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by slug: %w", err)
	}
	return p, nil
}

// Create inserts a new post and returns it with the generated ID.
// Counters always start at zero regardless of what the caller set.
func (s *PostStore) Create(p *models.Post) (*models.Post, error) {
	// If publishing directly, stamp published_at now.
	if p.Status == models.PostStatusPublished && p.PublishedAt == nil {
		now := time.Now()
		p.PublishedAt = &now
	}

	result, err := scanPost(s.db.QueryRow(`
		INSERT INTO posts (title, slug, excerpt, body, cover_image_url, video_url,
		                   type, status, tags, featured, pinned, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING `+postColumns+`
	`, p.Title, p.Slug, p.Excerpt, p.Body, p.CoverImageURL, p.VideoURL,
		p.Type, p.Status, tagsToDB(p.Tags), p.Featured, p.Pinned, p.PublishedAt,
	))
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return result, nil
}

// Update modifies an existing post. The published_at timestamp is set
// exactly once, on the first transition to published; later edits and
// unpublish/republish cycles leave it untouched.
func (s *PostStore) Update(p *models.Post) error {
	if p.Status == models.PostStatusPublished && p.PublishedAt == nil {
		now := time.Now()
		p.PublishedAt = &now
	}

	_, err := s.db.Exec(`
		UPDATE posts SET
			title = $1, slug = $2, excerpt = $3, body = $4,
			cover_image_url = $5, video_url = $6, type = $7, status = $8,
			tags = $9, featured = $10, pinned = $11, published_at = $12,
			updated_at = NOW()
		WHERE id = $13
	`, p.Title, p.Slug, p.Excerpt, p.Body,
		p.CoverImageURL, p.VideoURL, p.Type, p.Status,
		tagsToDB(p.Tags), p.Featured, p.Pinned, p.PublishedAt, p.ID,
	)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	return nil
}

// Delete removes a post by ID. Its comments are left in place and become
// orphaned; the moderation queue still lists them.
func (s *PostStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

// IncrementViewCount bumps the view counter by one. Called on every
// public detail-page render; losing a race here is acceptable, the
// counter is advisory.
func (s *PostStore) IncrementViewCount(id uuid.UUID) error {
	_, err := s.db.Exec(`UPDATE posts SET view_count = view_count + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("increment view count: %w", err)
	}
	return nil
}

// IncrementLikeCount bumps the like counter by one.
func (s *PostStore) IncrementLikeCount(id uuid.UUID) error {
	_, err := s.db.Exec(`UPDATE posts SET like_count = like_count + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("increment like count: %w", err)
	}
	return nil
}
