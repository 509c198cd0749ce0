// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package feed

import (
	"sort"

	"serenamente/internal/models"
)

// SortOrder names the available post orderings for the public feed.
type SortOrder string

const (
	SortRecent     SortOrder = "recent"
	SortPopular    SortOrder = "popular"
	SortFeatured   SortOrder = "featured"
	SortEngagement SortOrder = "engagement"
)

// SortPosts returns a copy of posts ordered by the given ordering.
// Unknown orderings fall back to recency.
func SortPosts(posts []models.Post, order SortOrder) []models.Post {
	switch order {
	case SortPopular:
		return SortByPopularity(posts)
	case SortFeatured:
		return SortByPriority(posts)
	case SortEngagement:
		return SortByEngagement(posts)
	default:
		return SortByRecency(posts)
	}
}

// SortByRecency orders posts by creation time, newest first. Posts
// without a creation timestamp sort as epoch zero, so they land last.
func SortByRecency(posts []models.Post) []models.Post {
	out := make([]models.Post, len(posts))
	copy(out, posts)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// SortByPopularity orders posts by view count, descending.
func SortByPopularity(posts []models.Post) []models.Post {
	out := make([]models.Post, len(posts))
	copy(out, posts)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ViewCount > out[j].ViewCount
	})
	return out
}

// SortByPriority orders posts for the "featured" feed view: pinned
// posts first, then featured posts, then everything else, each tier
// internally newest-first. Earlier tiers win regardless of later ones.
func SortByPriority(posts []models.Post) []models.Post {
	out := make([]models.Post, len(posts))
	copy(out, posts)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Pinned != b.Pinned {
			return a.Pinned
		}
		if a.Featured != b.Featured {
			return a.Featured
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
	return out
}

// SortByEngagement orders posts by engagement ratio, descending. Posts
// with zero views have a ratio of zero and sort after every post with
// positive engagement, but are not dropped.
func SortByEngagement(posts []models.Post) []models.Post {
	out := make([]models.Post, len(posts))
	copy(out, posts)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].EngagementRatio() > out[j].EngagementRatio()
	})
	return out
}
