// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"serenamente/internal/feed"
	"serenamente/internal/store"
)

// API serves the read-only JSON feed consumed by external embeds.
type API struct {
	postStore *store.PostStore
}

func NewAPI(postStore *store.PostStore) *API {
	return &API{postStore: postStore}
}

// Feed returns published posts as JSON, honoring the same type, sort
// and search parameters as the HTML blog.
func (a *API) Feed(w http.ResponseWriter, r *http.Request) {
	posts, err := a.postStore.ListPublished()
	if err != nil {
		slog.Error("published post list failed", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "internal error")
		return
	}

	q := r.URL.Query()
	typeFilter := feed.TypeFilter(q.Get("type"))
	if typeFilter == "" {
		typeFilter = feed.TypeAll
	}
	sortOrder := feed.SortOrder(q.Get("sort"))
	if sortOrder == "" {
		sortOrder = feed.SortFeatured
	}

	posts = feed.FilterPosts(posts, feed.PostFilter{
		Status: feed.StatusPublished,
		Type:   typeFilter,
		Query:  q.Get("q"),
	})
	posts = feed.SortPosts(posts, sortOrder)

	writeJSON(w, http.StatusOK, map[string]any{
		"posts": posts,
		"count": len(posts),
	})
}

// Post returns a single published post by slug.
func (a *API) Post(w http.ResponseWriter, r *http.Request) {
	post, err := a.postStore.FindBySlug(chi.URLParam(r, "slug"))
	if err != nil {
		slog.Error("post lookup failed", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if post == nil {
		writeJSONError(w, http.StatusNotFound, "post not found")
		return
	}

	writeJSON(w, http.StatusOK, post)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode failed", "error", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
