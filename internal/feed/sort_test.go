package feed

import (
	"testing"
	"time"

	"serenamente/internal/models"
)

func ts(day int) time.Time {
	return time.Date(2026, 2, day, 0, 0, 0, 0, time.UTC)
}

func TestSortByRecency(t *testing.T) {
	posts := []models.Post{
		{Title: "old", CreatedAt: ts(1)},
		{Title: "new", CreatedAt: ts(20)},
		{Title: "untimestamped"},
		{Title: "mid", CreatedAt: ts(10)},
	}

	got := SortByRecency(posts)
	want := []string{"new", "mid", "old", "untimestamped"}
	for i, w := range want {
		if got[i].Title != w {
			t.Errorf("position %d: got %q, want %q", i, got[i].Title, w)
		}
	}

	// Input order must be untouched.
	if posts[0].Title != "old" {
		t.Error("SortByRecency mutated its input")
	}
}

func TestSortByPopularity(t *testing.T) {
	posts := []models.Post{
		{Title: "a", ViewCount: 5},
		{Title: "b", ViewCount: 50},
		{Title: "c", ViewCount: 0},
	}
	got := SortByPopularity(posts)
	if got[0].Title != "b" || got[2].Title != "c" {
		t.Errorf("popularity order wrong: %v", got)
	}
}

func TestSortByPriorityPinnedDominates(t *testing.T) {
	posts := []models.Post{
		{Title: "featured-new", Featured: true, CreatedAt: ts(28)},
		{Title: "pinned-old", Pinned: true, CreatedAt: ts(1)},
		{Title: "plain-new", CreatedAt: ts(27)},
		{Title: "pinned-new", Pinned: true, CreatedAt: ts(26)},
		{Title: "featured-old", Featured: true, CreatedAt: ts(2)},
	}

	got := SortByPriority(posts)
	want := []string{"pinned-new", "pinned-old", "featured-new", "featured-old", "plain-new"}
	for i, w := range want {
		if got[i].Title != w {
			t.Errorf("position %d: got %q, want %q", i, got[i].Title, w)
		}
	}
}

func TestSortByEngagement(t *testing.T) {
	posts := []models.Post{
		{Title: "zero-views", LikeCount: 100}, // ratio 0, not a division fault
		{Title: "high", ViewCount: 10, LikeCount: 5, CommentCount: 5},  // 1.0
		{Title: "low", ViewCount: 100, LikeCount: 5, CommentCount: 5},  // 0.1
	}

	got := SortByEngagement(posts)
	if got[0].Title != "high" || got[1].Title != "low" {
		t.Errorf("engagement order wrong: %v", got)
	}
	if got[2].Title != "zero-views" {
		t.Error("zero-view post must sort last, not be excluded")
	}
	if len(got) != 3 {
		t.Errorf("no post may be dropped: got %d", len(got))
	}
}

func TestSortPostsFallsBackToRecency(t *testing.T) {
	posts := []models.Post{
		{Title: "old", CreatedAt: ts(1)},
		{Title: "new", CreatedAt: ts(2)},
	}
	got := SortPosts(posts, SortOrder("bogus"))
	if got[0].Title != "new" {
		t.Errorf("unknown order should sort by recency, got %q first", got[0].Title)
	}
}
