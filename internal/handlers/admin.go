// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for the Serenamente site.
// Handlers are grouped by concern (admin, public, auth, api) and receive
// their dependencies through the handler struct.
package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"serenamente/internal/cache"
	"serenamente/internal/feed"
	"serenamente/internal/models"
	"serenamente/internal/render"
	"serenamente/internal/session"
	"serenamente/internal/storage"
	"serenamente/internal/store"
)

// Admin groups all admin panel HTTP handlers and their dependencies.
type Admin struct {
	renderer      *render.Renderer
	sessions      *session.Store
	postStore     *store.PostStore
	commentStore  *store.CommentStore
	contactStore  *store.ContactStore
	settingStore  *store.SettingStore
	storageClient *storage.Client
	pageCache     *cache.PageCache
}

// NewAdmin creates a new Admin handler group with the given dependencies.
// storageClient may be nil if S3 is not configured; cover uploads are
// then rejected with a form error.
func NewAdmin(renderer *render.Renderer, sessions *session.Store, postStore *store.PostStore, commentStore *store.CommentStore, contactStore *store.ContactStore, settingStore *store.SettingStore, storageClient *storage.Client, pageCache *cache.PageCache) *Admin {
	return &Admin{
		renderer:      renderer,
		sessions:      sessions,
		postStore:     postStore,
		commentStore:  commentStore,
		contactStore:  contactStore,
		settingStore:  settingStore,
		storageClient: storageClient,
		pageCache:     pageCache,
	}
}

// Dashboard shows aggregate stats, recent posts, and pending work.
func (a *Admin) Dashboard(w http.ResponseWriter, r *http.Request) {
	posts, err := a.postStore.List()
	if err != nil {
		slog.Error("dashboard post list failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	pending, err := a.commentStore.CountPending()
	if err != nil {
		slog.Error("dashboard pending count failed", "error", err)
		pending = 0
	}

	recent := posts
	if len(recent) > 5 {
		recent = recent[:5]
	}

	a.renderer.Page(w, r, "dashboard", &render.PageData{
		Title:   "Dashboard",
		Section: "dashboard",
		Data: map[string]any{
			"Stats":           feed.Aggregate(posts),
			"RecentPosts":     recent,
			"PendingComments": pending,
		},
	})
}

// Stats renders engagement analytics over an optional time range.
func (a *Admin) Stats(w http.ResponseWriter, r *http.Request) {
	posts, err := a.postStore.List()
	if err != nil {
		slog.Error("stats post list failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	rng := feed.TimeRange(r.URL.Query().Get("range"))
	switch rng {
	case feed.RangeWeek, feed.RangeMonth:
		posts = feed.FilterByTimeRange(posts, rng, time.Now())
	default:
		rng = feed.RangeAll
	}

	a.renderer.Page(w, r, "stats", &render.PageData{
		Title:   "Stats",
		Section: "stats",
		Data: map[string]any{
			"Range":         string(rng),
			"Stats":         feed.Aggregate(posts),
			"TopViewed":     feed.TopByViews(posts, 5),
			"TopEngagement": feed.TopByEngagement(posts, 5),
		},
	})
}

// Messages renders the contact message inbox.
func (a *Admin) Messages(w http.ResponseWriter, r *http.Request) {
	messages, err := a.contactStore.List()
	if err != nil {
		slog.Error("message list failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	a.renderer.Page(w, r, "messages_list", &render.PageData{
		Title:   "Contact messages",
		Section: "messages",
		Data:    map[string]any{"Messages": messages},
	})
}

// MessageSetStatus advances a contact message through its lifecycle.
// The target status comes from the route (read or answered).
func (a *Admin) MessageSetStatus(status models.MessageStatus) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}

		if err := a.contactStore.SetStatus(id, status); err != nil {
			slog.Error("message status update failed", "error", err, "id", id)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		a.Messages(w, r)
	}
}

// SettingsPage renders the site settings form. Admin-only.
func (a *Admin) SettingsPage(w http.ResponseWriter, r *http.Request) {
	settings, err := a.settingStore.Load()
	if err != nil {
		slog.Error("settings load failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	a.renderer.Page(w, r, "settings", &render.PageData{
		Title:   "Site settings",
		Section: "settings",
		Data:    map[string]any{"Settings": settings},
	})
}

// SettingsSubmit saves the site settings form and purges cached public
// pages so the footer reflects the new values immediately.
func (a *Admin) SettingsSubmit(w http.ResponseWriter, r *http.Request) {
	settings := &models.SiteSettings{
		WhatsAppNumber: r.FormValue("whatsapp"),
		ContactEmail:   r.FormValue("contact_email"),
		Instagram:      r.FormValue("instagram"),
		Facebook:       r.FormValue("facebook"),
		LinkedIn:       r.FormValue("linkedin"),
		HoursWeekdays:  r.FormValue("hours_weekdays"),
		HoursSaturday:  r.FormValue("hours_saturday"),
		HoursSunday:    r.FormValue("hours_sunday"),
		City:           r.FormValue("city"),
		State:          r.FormValue("state"),
		Country:        r.FormValue("country"),
		Address:        r.FormValue("address"),
	}

	if err := a.settingStore.Save(settings); err != nil {
		slog.Error("settings save failed", "error", err)
		a.renderer.Page(w, r, "settings", &render.PageData{
			Title:   "Site settings",
			Section: "settings",
			Data: map[string]any{
				"Settings": settings,
				"Error":    "Could not save settings. Please try again.",
			},
		})
		return
	}

	a.invalidatePublicPages(r)

	a.renderer.Page(w, r, "settings", &render.PageData{
		Title:   "Site settings",
		Section: "settings",
		Data:    map[string]any{"Settings": settings},
		Flashes: []render.Flash{{Type: "success", Message: "Settings saved."}},
	})
}

// invalidatePublicPages drops every cached public page after a mutation.
// Settings touch the shared layout, so everything goes.
func (a *Admin) invalidatePublicPages(r *http.Request) {
	if a.pageCache == nil {
		return
	}
	a.pageCache.InvalidateAll(r.Context())
}
