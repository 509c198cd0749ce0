// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"serenamente/internal/feed"
	"serenamente/internal/render"
)

// CommentsList renders the moderation queue across all posts, including
// comments whose parent post has been deleted.
func (a *Admin) CommentsList(w http.ResponseWriter, r *http.Request) {
	comments, err := a.commentStore.ListAll()
	if err != nil {
		slog.Error("comment list failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	q := r.URL.Query()
	filter := feed.CommentFilter{
		Status: feed.StatusFilter(q.Get("status")),
		Query:  q.Get("q"),
	}
	if filter.Status == "" {
		filter.Status = feed.StatusAll
	}

	a.renderer.Page(w, r, "comments_list", &render.PageData{
		Title:   "Comments",
		Section: "comments",
		Data: map[string]any{
			"Comments": feed.FilterComments(comments, filter),
			"Status":   string(filter.Status),
			"Query":    filter.Query,
		},
	})
}

// CommentSetApproved flips a comment's moderation state. Approval only
// changes visibility; the post's comment counter tracks existence, not
// approval.
func (a *Admin) CommentSetApproved(approved bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := commentIDFromRoute(w, r)
		if !ok {
			return
		}

		if err := a.commentStore.SetApproved(id, approved); err != nil {
			slog.Error("comment moderation failed", "error", err, "id", id)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		if comment, err := a.commentStore.FindByID(id); err == nil && comment != nil {
			a.invalidateCommentPages(r, comment.PostID)
		}
		a.CommentsList(w, r)
	}
}

// CommentDelete removes a comment; the store keeps the parent post's
// counter in sync in the same transaction.
func (a *Admin) CommentDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := commentIDFromRoute(w, r)
	if !ok {
		return
	}

	comment, err := a.commentStore.FindByID(id)
	if err != nil {
		slog.Error("comment lookup failed", "error", err, "id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if err := a.commentStore.Delete(id); err != nil {
		slog.Error("comment delete failed", "error", err, "id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if comment != nil {
		a.invalidateCommentPages(r, comment.PostID)
	}
	a.CommentsList(w, r)
}

func commentIDFromRoute(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}

// invalidateCommentPages drops the cached detail page of the comment's
// parent post, where the approved comment list and counter render.
func (a *Admin) invalidateCommentPages(r *http.Request, postID uuid.UUID) {
	if a.pageCache == nil {
		return
	}
	post, err := a.postStore.FindByID(postID)
	if err != nil || post == nil {
		return
	}
	a.invalidatePostPages(r, post.Slug)
}
