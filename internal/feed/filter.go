// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package feed contains the pure list operations shared by the admin
// dashboard, the stats page, and the public feed: filtering, sorting,
// and aggregation over post and comment slices. Every function is
// total and leaves its input untouched.
package feed

import (
	"strings"
	"time"

	"serenamente/internal/models"
)

// StatusFilter selects posts by publishing state, or comments by
// moderation state.
type StatusFilter string

const (
	StatusAll       StatusFilter = "all"
	StatusPublished StatusFilter = "published"
	StatusDraft     StatusFilter = "draft"
	StatusApproved  StatusFilter = "approved"
	StatusPending   StatusFilter = "pending"
)

// TypeFilter selects posts by content type.
type TypeFilter string

const (
	TypeAll     TypeFilter = "all"
	TypeArticle TypeFilter = "article"
	TypeVideo   TypeFilter = "video"
)

// TimeRange selects posts by how recently they were created.
type TimeRange string

const (
	RangeAll   TimeRange = "all"
	RangeWeek  TimeRange = "week"
	RangeMonth TimeRange = "month"
)

// PostFilter describes which posts to keep. Zero-valued or "all"
// criteria are inactive; active criteria combine with AND.
type PostFilter struct {
	Status StatusFilter
	Type   TypeFilter
	Query  string // case-insensitive substring match on the title
}

// FilterPosts returns the subset of posts matching every active
// criterion. The result is a fresh slice; an empty match yields an
// empty (non-nil) slice.
func FilterPosts(posts []models.Post, f PostFilter) []models.Post {
	out := make([]models.Post, 0, len(posts))
	q := strings.ToLower(strings.TrimSpace(f.Query))

	for _, p := range posts {
		if f.Status == StatusPublished && p.Status != models.PostStatusPublished {
			continue
		}
		if f.Status == StatusDraft && p.Status != models.PostStatusDraft {
			continue
		}
		if f.Type == TypeArticle && p.Type != models.PostTypeArticle {
			continue
		}
		if f.Type == TypeVideo && p.Type != models.PostTypeVideo {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(p.Title), q) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// CommentFilter describes which comments to keep.
type CommentFilter struct {
	Status StatusFilter // all, approved, or pending
	Query  string       // matches comment body or author name
}

// FilterComments returns the subset of comments matching every active
// criterion. The free-text query matches the body and the author name.
func FilterComments(comments []models.Comment, f CommentFilter) []models.Comment {
	out := make([]models.Comment, 0, len(comments))
	q := strings.ToLower(strings.TrimSpace(f.Query))

	for _, c := range comments {
		if f.Status == StatusApproved && !c.Approved {
			continue
		}
		if f.Status == StatusPending && c.Approved {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(c.Body), q) &&
			!strings.Contains(strings.ToLower(c.AuthorName), q) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// FilterByTimeRange keeps posts created within the range, evaluated
// against now. "week" is 7 days inclusive; "month" subtracts one
// calendar month rather than a fixed 30 days. Posts with a zero
// creation timestamp are excluded from any range other than RangeAll.
func FilterByTimeRange(posts []models.Post, r TimeRange, now time.Time) []models.Post {
	if r == RangeAll || r == "" {
		out := make([]models.Post, len(posts))
		copy(out, posts)
		return out
	}

	var cutoff time.Time
	switch r {
	case RangeWeek:
		cutoff = now.AddDate(0, 0, -7)
	case RangeMonth:
		cutoff = now.AddDate(0, -1, 0)
	default:
		out := make([]models.Post, len(posts))
		copy(out, posts)
		return out
	}

	out := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if p.CreatedAt.IsZero() {
			continue
		}
		if !p.CreatedAt.Before(cutoff) {
			out = append(out, p)
		}
	}
	return out
}
