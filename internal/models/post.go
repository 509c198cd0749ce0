// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// PostType distinguishes written articles from embedded video posts.
type PostType string

const (
	PostTypeArticle PostType = "article"
	PostTypeVideo   PostType = "video"
)

// PostStatus represents the publishing state of a post.
type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
)

// Post is a blog entry on the practice website. Video posts embed an
// external clip and must carry a non-empty VideoURL; article posts
// leave it nil. The three counters are adjusted only by store
// operations, never written directly from form input.
type Post struct {
	ID            uuid.UUID  `json:"id"`
	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	Excerpt       string     `json:"excerpt"`
	Body          string     `json:"body"`
	CoverImageURL *string    `json:"cover_image_url,omitempty"`
	VideoURL      *string    `json:"video_url,omitempty"`
	Type          PostType   `json:"type"`
	Status        PostStatus `json:"status"`
	Tags          []string   `json:"tags"`
	Featured      bool       `json:"featured"`
	Pinned        bool       `json:"pinned"`
	ViewCount     int        `json:"view_count"`
	LikeCount     int        `json:"like_count"`
	CommentCount  int        `json:"comment_count"`
	PublishedAt   *time.Time `json:"published_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// IsPublished returns true if the post is in published status.
func (p *Post) IsPublished() bool {
	return p.Status == PostStatusPublished
}

// IsVideo returns true for video-type posts.
func (p *Post) IsVideo() bool {
	return p.Type == PostTypeVideo
}

// EngagementRatio is (likes + comments) / views. A post that has never
// been viewed has a ratio of zero rather than a division fault.
func (p *Post) EngagementRatio() float64 {
	if p.ViewCount <= 0 {
		return 0
	}
	return float64(p.LikeCount+p.CommentCount) / float64(p.ViewCount)
}
