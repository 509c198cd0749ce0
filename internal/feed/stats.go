// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package feed

import (
	"fmt"
	"sort"

	"serenamente/internal/models"
)

// topTagCount caps the tag histogram at the ten most used tags.
const topTagCount = 10

// TagCount is one entry of the tag frequency histogram.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// Stats summarises a slice of posts for the dashboard and stats pages.
type Stats struct {
	Total         int        `json:"total"`
	Articles      int        `json:"articles"`
	Videos        int        `json:"videos"`
	Published     int        `json:"published"`
	Drafts        int        `json:"drafts"`
	TotalViews    int        `json:"total_views"`
	TotalLikes    int        `json:"total_likes"`
	TotalComments int        `json:"total_comments"`
	// EngagementRate is (likes + comments) / views as a percentage,
	// formatted with two decimals. Exactly "0.00" when there are no views.
	EngagementRate string     `json:"engagement_rate"`
	TopTags        []TagCount `json:"top_tags"`
}

// Aggregate computes summary statistics over posts.
func Aggregate(posts []models.Post) Stats {
	s := Stats{}
	tagCounts := make(map[string]int)
	var tagOrder []string

	for _, p := range posts {
		s.Total++
		switch p.Type {
		case models.PostTypeVideo:
			s.Videos++
		default:
			s.Articles++
		}
		if p.Status == models.PostStatusPublished {
			s.Published++
		} else {
			s.Drafts++
		}
		s.TotalViews += p.ViewCount
		s.TotalLikes += p.LikeCount
		s.TotalComments += p.CommentCount

		for _, tag := range p.Tags {
			if _, seen := tagCounts[tag]; !seen {
				tagOrder = append(tagOrder, tag)
			}
			tagCounts[tag]++
		}
	}

	s.EngagementRate = EngagementRate(s.TotalLikes, s.TotalComments, s.TotalViews)
	s.TopTags = topTags(tagCounts, tagOrder)
	return s
}

// EngagementRate formats (likes + comments) / views as a percentage
// with two decimal places. Zero views yields "0.00".
func EngagementRate(likes, comments, views int) string {
	if views <= 0 {
		return "0.00"
	}
	return fmt.Sprintf("%.2f", float64(likes+comments)/float64(views)*100)
}

// topTags builds the histogram sorted by count descending, ties broken
// by first-encountered order, truncated to topTagCount entries.
func topTags(counts map[string]int, order []string) []TagCount {
	out := make([]TagCount, 0, len(order))
	for _, tag := range order {
		out = append(out, TagCount{Tag: tag, Count: counts[tag]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	if len(out) > topTagCount {
		out = out[:topTagCount]
	}
	return out
}

// TopByViews returns the n most viewed posts.
func TopByViews(posts []models.Post, n int) []models.Post {
	return truncate(SortByPopularity(posts), n)
}

// TopByEngagement returns the n posts with the highest engagement ratio.
func TopByEngagement(posts []models.Post, n int) []models.Post {
	return truncate(SortByEngagement(posts), n)
}

func truncate(posts []models.Post, n int) []models.Post {
	if n < 0 {
		n = 0
	}
	if len(posts) > n {
		posts = posts[:n]
	}
	return posts
}
