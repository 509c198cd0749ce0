// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"testing"
	"time"

	"serenamente/internal/models"
)

func TestPostLifecycle(t *testing.T) {
	db := testDB(t)
	s := NewPostStore(db)
	cleanPosts(t, db, "test-post-lifecycle")
	t.Cleanup(func() { cleanPosts(t, db, "test-post-lifecycle") })

	created, err := s.Create(&models.Post{
		Title:   "Test Post Lifecycle",
		Slug:    "test-post-lifecycle",
		Excerpt: "excerpt",
		Body:    "body text",
		Type:    models.PostTypeArticle,
		Status:  models.PostStatusDraft,
		Tags:    []string{"ansiedad", "duelo"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID.String() == "" {
		t.Fatal("Create did not assign an ID")
	}
	if created.PublishedAt != nil {
		t.Error("draft should not have published_at set")
	}
	if created.ViewCount != 0 || created.LikeCount != 0 || created.CommentCount != 0 {
		t.Error("counters should start at zero")
	}
	if len(created.Tags) != 2 {
		t.Errorf("tags: got %v, want 2 entries", created.Tags)
	}

	// Publish: published_at stamped exactly once.
	created.Status = models.PostStatusPublished
	if err := s.Update(created); err != nil {
		t.Fatalf("Update (publish): %v", err)
	}
	published, err := s.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if published.PublishedAt == nil {
		t.Fatal("published post should have published_at set")
	}
	firstStamp := *published.PublishedAt

	// Unpublish and republish: stamp must not change.
	published.Status = models.PostStatusDraft
	if err := s.Update(published); err != nil {
		t.Fatalf("Update (unpublish): %v", err)
	}
	published.Status = models.PostStatusPublished
	if err := s.Update(published); err != nil {
		t.Fatalf("Update (republish): %v", err)
	}
	again, err := s.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if again.PublishedAt == nil || !again.PublishedAt.Equal(firstStamp) {
		t.Errorf("published_at changed on republish: got %v, want %v", again.PublishedAt, firstStamp)
	}

	// Counters.
	if err := s.IncrementViewCount(created.ID); err != nil {
		t.Fatalf("IncrementViewCount: %v", err)
	}
	if err := s.IncrementLikeCount(created.ID); err != nil {
		t.Fatalf("IncrementLikeCount: %v", err)
	}
	bumped, _ := s.FindByID(created.ID)
	if bumped.ViewCount != 1 || bumped.LikeCount != 1 {
		t.Errorf("counters: got views=%d likes=%d, want 1/1", bumped.ViewCount, bumped.LikeCount)
	}

	// Delete.
	if err := s.Delete(created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	gone, err := s.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID after delete: %v", err)
	}
	if gone != nil {
		t.Error("post should be gone after delete")
	}
}

func TestPostFindBySlugNewestWins(t *testing.T) {
	db := testDB(t)
	s := NewPostStore(db)
	cleanPosts(t, db, "test-shared-slug")
	t.Cleanup(func() { cleanPosts(t, db, "test-shared-slug") })

	older, err := s.Create(&models.Post{
		Title:  "Older",
		Slug:   "test-shared-slug",
		Type:   models.PostTypeArticle,
		Status: models.PostStatusPublished,
	})
	if err != nil {
		t.Fatalf("Create older: %v", err)
	}

	// Ensure distinct created_at values.
	time.Sleep(10 * time.Millisecond)

	newer, err := s.Create(&models.Post{
		Title:  "Newer",
		Slug:   "test-shared-slug",
		Type:   models.PostTypeArticle,
		Status: models.PostStatusPublished,
	})
	if err != nil {
		t.Fatalf("Create newer: %v", err)
	}

	found, err := s.FindBySlug("test-shared-slug")
	if err != nil {
		t.Fatalf("FindBySlug: %v", err)
	}
	if found == nil {
		t.Fatal("expected a post, got nil")
	}
	if found.ID != newer.ID {
		t.Errorf("FindBySlug returned %q, want the newer post", found.Title)
	}
	_ = older
}

func TestPostFindBySlugExcludesDrafts(t *testing.T) {
	db := testDB(t)
	s := NewPostStore(db)
	cleanPosts(t, db, "test-draft-slug")
	t.Cleanup(func() { cleanPosts(t, db, "test-draft-slug") })

	if _, err := s.Create(&models.Post{
		Title:  "Draft Only",
		Slug:   "test-draft-slug",
		Type:   models.PostTypeArticle,
		Status: models.PostStatusDraft,
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	found, err := s.FindBySlug("test-draft-slug")
	if err != nil {
		t.Fatalf("FindBySlug: %v", err)
	}
	if found != nil {
		t.Error("drafts must not be reachable by slug")
	}
}

func TestPostListFeatured(t *testing.T) {
	db := testDB(t)
	s := NewPostStore(db)
	slugs := []string{"test-feat-1", "test-feat-2", "test-feat-draft"}
	cleanPosts(t, db, slugs...)
	t.Cleanup(func() { cleanPosts(t, db, slugs...) })

	for _, tc := range []struct {
		slug   string
		status models.PostStatus
	}{
		{"test-feat-1", models.PostStatusPublished},
		{"test-feat-2", models.PostStatusPublished},
		{"test-feat-draft", models.PostStatusDraft},
	} {
		if _, err := s.Create(&models.Post{
			Title:    tc.slug,
			Slug:     tc.slug,
			Type:     models.PostTypeArticle,
			Status:   tc.status,
			Featured: true,
		}); err != nil {
			t.Fatalf("Create %s: %v", tc.slug, err)
		}
	}

	featured, err := s.ListFeatured(10)
	if err != nil {
		t.Fatalf("ListFeatured: %v", err)
	}
	for _, p := range featured {
		if p.Slug == "test-feat-draft" {
			t.Error("draft posts must not appear in the featured list")
		}
	}
}
