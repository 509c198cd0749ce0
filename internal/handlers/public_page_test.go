// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// public_page_test.go contains handler integration tests for the public
// site: static pages, the blog, comments, likes, the contact form and the
// JSON API. Tests are skipped when PostgreSQL or Valkey are unavailable.
package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"serenamente/internal/models"
)

func TestHome_ReturnsHTML(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	env.Public.Home(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "text/html") {
		t.Errorf("Content-Type: got %q, want text/html", ct)
	}
}

func TestBlogPost_UnknownSlugReturns404(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/blog/no-such-post", nil)
	req = withChiURLParam(req, "slug", "no-such-post")
	rec := httptest.NewRecorder()

	env.Public.BlogPost(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestBlogPost_IncrementsViewCount(t *testing.T) {
	env := newTestEnv(t)
	cleanPosts(t, env.DB, "vistas-handler-test")

	created, err := env.PostStore.Create(&models.Post{
		Title:  "Vistas handler test",
		Slug:   "vistas-handler-test",
		Body:   "Contenido de prueba.",
		Type:   models.PostTypeArticle,
		Status: models.PostStatusPublished,
	})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	t.Cleanup(func() { cleanPosts(t, env.DB, "vistas-handler-test") })

	req := httptest.NewRequest(http.MethodGet, "/blog/vistas-handler-test", nil)
	req = withChiURLParam(req, "slug", "vistas-handler-test")
	rec := httptest.NewRecorder()

	env.Public.BlogPost(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}

	fresh, err := env.PostStore.FindByID(created.ID)
	if err != nil || fresh == nil {
		t.Fatalf("reload post: %v", err)
	}
	if fresh.ViewCount != 1 {
		t.Errorf("view count: got %d, want 1", fresh.ViewCount)
	}
}

func TestCommentSubmit_HeldForModeration(t *testing.T) {
	env := newTestEnv(t)
	cleanPosts(t, env.DB, "comentarios-handler-test")

	created, err := env.PostStore.Create(&models.Post{
		Title:  "Comentarios handler test",
		Slug:   "comentarios-handler-test",
		Body:   "Contenido.",
		Type:   models.PostTypeArticle,
		Status: models.PostStatusPublished,
	})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	t.Cleanup(func() { cleanPosts(t, env.DB, "comentarios-handler-test") })

	form := url.Values{
		"author_name":  {"Ana"},
		"author_email": {"ana@example.com"},
		"body":         {"Muy buen artículo."},
	}
	req := httptest.NewRequest(http.MethodPost, "/blog/comentarios-handler-test/comentarios", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req = withChiURLParam(req, "slug", "comentarios-handler-test")
	rec := httptest.NewRecorder()

	env.Public.CommentSubmit(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}

	// The comment exists, counts, and is invisible until approved.
	approved, err := env.CommentStore.ListByPost(created.ID, true)
	if err != nil {
		t.Fatalf("list approved: %v", err)
	}
	if len(approved) != 0 {
		t.Errorf("approved comments: got %d, want 0 (moderation pending)", len(approved))
	}
	all, err := env.CommentStore.ListByPost(created.ID, false)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("comments: got %d, want 1", len(all))
	}
	fresh, _ := env.PostStore.FindByID(created.ID)
	if fresh.CommentCount != 1 {
		t.Errorf("comment count: got %d, want 1", fresh.CommentCount)
	}
}

func TestCommentSubmit_InvalidEmailRejected(t *testing.T) {
	env := newTestEnv(t)
	cleanPosts(t, env.DB, "comentarios-invalidos-test")

	created, err := env.PostStore.Create(&models.Post{
		Title:  "Comentarios inválidos test",
		Slug:   "comentarios-invalidos-test",
		Body:   "Contenido.",
		Type:   models.PostTypeArticle,
		Status: models.PostStatusPublished,
	})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	t.Cleanup(func() { cleanPosts(t, env.DB, "comentarios-invalidos-test") })

	form := url.Values{
		"author_name":  {"Ana"},
		"author_email": {"not-an-email"},
		"body":         {"Hola"},
	}
	req := httptest.NewRequest(http.MethodPost, "/blog/comentarios-invalidos-test/comentarios", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req = withChiURLParam(req, "slug", "comentarios-invalidos-test")
	rec := httptest.NewRecorder()

	env.Public.CommentSubmit(rec, req)

	all, err := env.CommentStore.ListByPost(created.ID, false)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("comments: got %d, want 0 (invalid submission)", len(all))
	}
}

func TestLikeSubmit_RedirectsBackToPost(t *testing.T) {
	env := newTestEnv(t)
	cleanPosts(t, env.DB, "me-gusta-handler-test")

	created, err := env.PostStore.Create(&models.Post{
		Title:  "Me gusta handler test",
		Slug:   "me-gusta-handler-test",
		Body:   "Contenido.",
		Type:   models.PostTypeArticle,
		Status: models.PostStatusPublished,
	})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	t.Cleanup(func() { cleanPosts(t, env.DB, "me-gusta-handler-test") })

	req := httptest.NewRequest(http.MethodPost, "/blog/me-gusta-handler-test/me-gusta", nil)
	req = withChiURLParam(req, "slug", "me-gusta-handler-test")
	rec := httptest.NewRecorder()

	env.Public.LikeSubmit(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/blog/me-gusta-handler-test" {
		t.Errorf("Location: got %q, want /blog/me-gusta-handler-test", loc)
	}

	fresh, _ := env.PostStore.FindByID(created.ID)
	if fresh.LikeCount != 1 {
		t.Errorf("like count: got %d, want 1", fresh.LikeCount)
	}
}

func TestContactSubmit_StoresMessage(t *testing.T) {
	env := newTestEnv(t)
	cleanMessages(t, env.DB, "cita@example.com")
	t.Cleanup(func() { cleanMessages(t, env.DB, "cita@example.com") })

	form := url.Values{
		"name":         {"Carlos"},
		"email":        {"cita@example.com"},
		"phone":        {"+57 301 555 0101"},
		"therapy_type": {"individual"},
		"body":         {"Quisiera agendar una primera cita."},
	}
	req := httptest.NewRequest(http.MethodPost, "/contacto", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()

	env.Public.ContactSubmit(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}

	messages, err := env.ContactStore.List()
	if err != nil {
		t.Fatalf("list messages: %v", err)
	}
	found := false
	for _, m := range messages {
		if m.Email == "cita@example.com" {
			found = true
			if m.Status != models.MessageStatusNew {
				t.Errorf("status: got %q, want %q", m.Status, models.MessageStatusNew)
			}
		}
	}
	if !found {
		t.Error("submitted message not found in store")
	}
}

func TestContactSubmit_InvalidKeepsFormValues(t *testing.T) {
	env := newTestEnv(t)

	form := url.Values{
		"name":  {"Carlos"},
		"email": {"broken"},
		"body":  {"Hola"},
	}
	req := httptest.NewRequest(http.MethodPost, "/contacto", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()

	env.Public.ContactSubmit(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "Carlos") {
		t.Error("expected the form to retain the submitted name")
	}
}

func TestAPIFeed_ReturnsPublishedJSON(t *testing.T) {
	env := newTestEnv(t)
	cleanPosts(t, env.DB, "api-feed-test", "api-feed-draft")

	if _, err := env.PostStore.Create(&models.Post{
		Title:  "API feed test",
		Slug:   "api-feed-test",
		Body:   "Contenido.",
		Type:   models.PostTypeArticle,
		Status: models.PostStatusPublished,
	}); err != nil {
		t.Fatalf("create post: %v", err)
	}
	if _, err := env.PostStore.Create(&models.Post{
		Title:  "API feed draft",
		Slug:   "api-feed-draft",
		Body:   "Borrador.",
		Type:   models.PostTypeArticle,
		Status: models.PostStatusDraft,
	}); err != nil {
		t.Fatalf("create draft: %v", err)
	}
	t.Cleanup(func() { cleanPosts(t, env.DB, "api-feed-test", "api-feed-draft") })

	req := httptest.NewRequest(http.MethodGet, "/api/feed", nil)
	rec := httptest.NewRecorder()

	env.API.Feed(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "application/json") {
		t.Errorf("Content-Type: got %q, want application/json", ct)
	}

	var payload struct {
		Posts []models.Post `json:"posts"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, p := range payload.Posts {
		if p.Status != models.PostStatusPublished {
			t.Errorf("post %q: status %q leaked into the public feed", p.Slug, p.Status)
		}
	}
}
