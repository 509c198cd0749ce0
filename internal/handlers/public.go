// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"serenamente/internal/cache"
	"serenamente/internal/feed"
	"serenamente/internal/markdown"
	"serenamente/internal/models"
	"serenamente/internal/render"
	"serenamente/internal/store"
)

// Public groups the visitor-facing HTTP handlers.
type Public struct {
	renderer         *render.Renderer
	postStore        *store.PostStore
	commentStore     *store.CommentStore
	testimonialStore *store.TestimonialStore
	contactStore     *store.ContactStore
	settingStore     *store.SettingStore
	pageCache        *cache.PageCache
}

// NewPublic creates a new Public handler group. pageCache may be nil,
// in which case every request renders fresh.
func NewPublic(renderer *render.Renderer, postStore *store.PostStore, commentStore *store.CommentStore, testimonialStore *store.TestimonialStore, contactStore *store.ContactStore, settingStore *store.SettingStore, pageCache *cache.PageCache) *Public {
	return &Public{
		renderer:         renderer,
		postStore:        postStore,
		commentStore:     commentStore,
		testimonialStore: testimonialStore,
		contactStore:     contactStore,
		settingStore:     settingStore,
		pageCache:        pageCache,
	}
}

// settings loads site settings, falling back to defaults on error so a
// database hiccup never blanks the footer.
func (p *Public) settings() *models.SiteSettings {
	s, err := p.settingStore.Load()
	if err != nil {
		slog.Warn("settings load failed, using defaults", "error", err)
		defaults := models.DefaultSettings()
		return &defaults
	}
	return s
}

// servePage renders a public page, serving and populating the Valkey
// page cache when the page is cacheable (GET with no query string).
func (p *Public) servePage(w http.ResponseWriter, r *http.Request, cacheKey, tmpl string, data *render.PageData) {
	cacheable := p.pageCache != nil && r.Method == http.MethodGet && r.URL.RawQuery == ""

	if cacheable {
		if html, ok := p.pageCache.Get(r.Context(), cacheKey); ok {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.Write(html)
			return
		}
	}

	if !cacheable {
		p.renderer.Public(w, r, tmpl, data)
		return
	}

	var buf bytes.Buffer
	if err := p.renderer.PublicHTML(&buf, tmpl, data); err != nil {
		slog.Error("public render failed", "template", tmpl, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	p.pageCache.Set(r.Context(), cacheKey, buf.Bytes())
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

// Home renders the landing page with featured posts and testimonials.
func (p *Public) Home(w http.ResponseWriter, r *http.Request) {
	featured, err := p.postStore.ListFeatured(3)
	if err != nil {
		slog.Error("featured posts failed", "error", err)
	}
	testimonials, err := p.testimonialStore.ListFeatured(4)
	if err != nil {
		slog.Error("featured testimonials failed", "error", err)
	}

	p.servePage(w, r, cache.HomeKey(), "home", &render.PageData{
		Title:   "Psicoterapia en Medellín",
		Section: "home",
		Data: map[string]any{
			"FeaturedPosts": featured,
			"Testimonials":  testimonials,
			"Settings":      p.settings(),
		},
	})
}

// Services renders the static services page.
func (p *Public) Services(w http.ResponseWriter, r *http.Request) {
	p.servePage(w, r, cache.StaticKey("services"), "services", &render.PageData{
		Title:   "Servicios",
		Section: "services",
		Data:    map[string]any{"Settings": p.settings()},
	})
}

// About renders the static about page.
func (p *Public) About(w http.ResponseWriter, r *http.Request) {
	p.servePage(w, r, cache.StaticKey("about"), "about", &render.PageData{
		Title:   "Sobre mí",
		Section: "about",
		Data:    map[string]any{"Settings": p.settings()},
	})
}

// Privacy renders the privacy policy.
func (p *Public) Privacy(w http.ResponseWriter, r *http.Request) {
	p.servePage(w, r, cache.StaticKey("privacy"), "privacy", &render.PageData{
		Title:   "Política de privacidad",
		Section: "privacy",
		Data:    map[string]any{"Settings": p.settings()},
	})
}

// Testimonials renders all testimonials.
func (p *Public) Testimonials(w http.ResponseWriter, r *http.Request) {
	testimonials, err := p.testimonialStore.List()
	if err != nil {
		slog.Error("testimonial list failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	p.servePage(w, r, cache.StaticKey("testimonials"), "testimonials", &render.PageData{
		Title:   "Testimonios",
		Section: "testimonials",
		Data: map[string]any{
			"Testimonials": testimonials,
			"Settings":     p.settings(),
		},
	})
}

// BlogIndex renders the public blog with filter and sort controls. With
// no query parameters the priority order (pinned, then featured, then
// newest) applies and the page is cacheable.
func (p *Public) BlogIndex(w http.ResponseWriter, r *http.Request) {
	posts, err := p.postStore.ListPublished()
	if err != nil {
		slog.Error("published post list failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	q := r.URL.Query()
	typeFilter := feed.TypeFilter(q.Get("tipo"))
	if typeFilter == "" {
		typeFilter = feed.TypeAll
	}
	sortOrder := feed.SortOrder(q.Get("orden"))
	if sortOrder == "" {
		sortOrder = feed.SortFeatured
	}
	query := q.Get("q")

	posts = feed.FilterPosts(posts, feed.PostFilter{
		Status: feed.StatusPublished,
		Type:   typeFilter,
		Query:  query,
	})
	posts = feed.SortPosts(posts, sortOrder)

	p.servePage(w, r, cache.BlogIndexKey(), "blog_list", &render.PageData{
		Title:   "Blog",
		Section: "blog",
		Data: map[string]any{
			"Posts":    posts,
			"Type":     string(typeFilter),
			"Sort":     string(sortOrder),
			"Query":    query,
			"Settings": p.settings(),
		},
	})
}

// Feed renders the priority-ordered news feed of published posts.
func (p *Public) Feed(w http.ResponseWriter, r *http.Request) {
	posts, err := p.postStore.ListPublished()
	if err != nil {
		slog.Error("published post list failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	p.servePage(w, r, cache.FeedKey(), "feed", &render.PageData{
		Title:   "Novedades",
		Section: "blog",
		Data: map[string]any{
			"Posts":    feed.SortByPriority(posts),
			"Settings": p.settings(),
		},
	})
}

// BlogPost renders a single post by slug with its approved comments,
// bumping the view counter on the way.
func (p *Public) BlogPost(w http.ResponseWriter, r *http.Request) {
	post, ok := p.postFromSlug(w, r)
	if !ok {
		return
	}

	if err := p.postStore.IncrementViewCount(post.ID); err != nil {
		slog.Warn("view count increment failed", "error", err, "id", post.ID)
	}

	p.renderPost(w, r, post, nil)
}

// renderPost renders the post detail page; extra merges additional
// page data (comment form feedback) into the payload.
func (p *Public) renderPost(w http.ResponseWriter, r *http.Request, post *models.Post, extra map[string]any) {
	comments, err := p.commentStore.ListByPost(post.ID, true)
	if err != nil {
		slog.Error("comment list failed", "error", err, "post", post.ID)
	}

	bodyHTML, err := markdown.ToHTML(post.Body)
	if err != nil {
		slog.Error("markdown render failed", "error", err, "post", post.ID)
		bodyHTML = ""
	}

	data := map[string]any{
		"Post":     post,
		"Comments": comments,
		"BodyHTML": bodyHTML,
		"Settings": p.settings(),
	}
	for k, v := range extra {
		data[k] = v
	}

	// View counters make the detail page a poor cache candidate, so it
	// always renders fresh.
	p.renderer.Public(w, r, "blog_post", &render.PageData{
		Title:   post.Title,
		Section: "blog",
		Data:    data,
	})
}

// CommentSubmit accepts a public comment. New comments are held for
// moderation and the visitor is told so.
func (p *Public) CommentSubmit(w http.ResponseWriter, r *http.Request) {
	post, ok := p.postFromSlug(w, r)
	if !ok {
		return
	}

	name := strings.TrimSpace(r.FormValue("author_name"))
	email := strings.TrimSpace(r.FormValue("author_email"))
	body := strings.TrimSpace(r.FormValue("body"))

	if msg := validateComment(name, email, body); msg != "" {
		p.renderPost(w, r, post, map[string]any{"CommentError": msg})
		return
	}

	if _, err := p.commentStore.Create(&models.Comment{
		PostID:      post.ID,
		AuthorName:  name,
		AuthorEmail: email,
		Body:        body,
	}); err != nil {
		slog.Error("comment create failed", "error", err, "post", post.ID)
		p.renderPost(w, r, post, map[string]any{"CommentError": "No se pudo guardar el comentario. Inténtalo de nuevo."})
		return
	}

	// The counter on cached listings just changed.
	if p.pageCache != nil {
		p.pageCache.InvalidateBlog(r.Context())
	}

	// Re-read so the bumped counter shows immediately.
	if fresh, err := p.postStore.FindByID(post.ID); err == nil && fresh != nil {
		post = fresh
	}
	p.renderPost(w, r, post, map[string]any{"CommentSent": true})
}

// LikeSubmit bumps the like counter and returns to the post.
func (p *Public) LikeSubmit(w http.ResponseWriter, r *http.Request) {
	post, ok := p.postFromSlug(w, r)
	if !ok {
		return
	}

	if err := p.postStore.IncrementLikeCount(post.ID); err != nil {
		slog.Warn("like count increment failed", "error", err, "id", post.ID)
	}

	http.Redirect(w, r, "/blog/"+post.Slug, http.StatusSeeOther)
}

// ContactPage renders the contact form.
func (p *Public) ContactPage(w http.ResponseWriter, r *http.Request) {
	p.renderer.Public(w, r, "contact", &render.PageData{
		Title:   "Contacto",
		Section: "contact",
		Data:    map[string]any{"Settings": p.settings()},
	})
}

// ContactSubmit validates and stores a contact form submission.
func (p *Public) ContactSubmit(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.FormValue("name"))
	email := strings.TrimSpace(r.FormValue("email"))
	phone := strings.TrimSpace(r.FormValue("phone"))
	therapyType := r.FormValue("therapy_type")
	body := strings.TrimSpace(r.FormValue("body"))

	formData := map[string]any{
		"Name": name, "Email": email, "Phone": phone,
		"TherapyType": therapyType, "Body": body,
		"Settings": p.settings(),
	}

	if msg := validateContact(name, email, phone, body); msg != "" {
		formData["Error"] = msg
		p.renderer.Public(w, r, "contact", &render.PageData{
			Title:   "Contacto",
			Section: "contact",
			Data:    formData,
		})
		return
	}

	if _, err := p.contactStore.Create(&models.ContactMessage{
		Name:        name,
		Email:       email,
		Phone:       phone,
		TherapyType: therapyType,
		Body:        body,
	}); err != nil {
		slog.Error("contact message create failed", "error", err)
		formData["Error"] = "No se pudo enviar el mensaje. Inténtalo de nuevo."
		p.renderer.Public(w, r, "contact", &render.PageData{
			Title:   "Contacto",
			Section: "contact",
			Data:    formData,
		})
		return
	}

	p.renderer.Public(w, r, "contact", &render.PageData{
		Title:   "Contacto",
		Section: "contact",
		Data: map[string]any{
			"Sent":     true,
			"Settings": p.settings(),
		},
	})
}

// postFromSlug resolves the {slug} route parameter to a published post.
func (p *Public) postFromSlug(w http.ResponseWriter, r *http.Request) (*models.Post, bool) {
	post, err := p.postStore.FindBySlug(chi.URLParam(r, "slug"))
	if err != nil {
		slog.Error("post lookup failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return nil, false
	}
	if post == nil {
		http.Error(w, "Not Found", http.StatusNotFound)
		return nil, false
	}
	return post, true
}
