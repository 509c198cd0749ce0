// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"serenamente/internal/cache"
	"serenamente/internal/feed"
	"serenamente/internal/models"
	"serenamente/internal/render"
	"serenamente/internal/slug"
	"serenamente/internal/storage"
)

// maxCoverUploadSize caps cover image uploads at 10 MiB.
const maxCoverUploadSize = 10 << 20

// PostsList renders the admin post table with filter controls.
func (a *Admin) PostsList(w http.ResponseWriter, r *http.Request) {
	posts, err := a.postStore.List()
	if err != nil {
		slog.Error("post list failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	q := r.URL.Query()
	filter := feed.PostFilter{
		Status: feed.StatusFilter(q.Get("status")),
		Type:   feed.TypeFilter(q.Get("type")),
		Query:  q.Get("q"),
	}
	if filter.Status == "" {
		filter.Status = feed.StatusAll
	}
	if filter.Type == "" {
		filter.Type = feed.TypeAll
	}

	a.renderer.Page(w, r, "posts_list", &render.PageData{
		Title:   "Posts",
		Section: "posts",
		Data: map[string]any{
			"Posts":  feed.FilterPosts(posts, filter),
			"Status": string(filter.Status),
			"Type":   string(filter.Type),
			"Query":  filter.Query,
		},
	})
}

// PostNew renders an empty post form.
func (a *Admin) PostNew(w http.ResponseWriter, r *http.Request) {
	a.renderer.Page(w, r, "post_form", &render.PageData{
		Title:   "New post",
		Section: "posts",
		Data: map[string]any{
			"Post":   &models.Post{Type: models.PostTypeArticle, Status: models.PostStatusDraft},
			"Action": "/admin/posts",
		},
	})
}

// PostEdit renders the form pre-filled with an existing post.
func (a *Admin) PostEdit(w http.ResponseWriter, r *http.Request) {
	post, ok := a.postFromRoute(w, r)
	if !ok {
		return
	}

	a.renderer.Page(w, r, "post_form", &render.PageData{
		Title:   "Edit post",
		Section: "posts",
		Data: map[string]any{
			"Post":   post,
			"Action": "/admin/posts/" + post.ID.String(),
		},
	})
}

// PostCreate validates the form and inserts a new post. Validation runs
// before any write: an invalid video URL leaves no partial row behind.
func (a *Admin) PostCreate(w http.ResponseWriter, r *http.Request) {
	post, formErr := a.postFromForm(r, &models.Post{})
	if formErr != "" {
		a.renderer.Page(w, r, "post_form", &render.PageData{
			Title:   "New post",
			Section: "posts",
			Data:    map[string]any{"Post": post, "Action": "/admin/posts", "Error": formErr},
		})
		return
	}

	created, err := a.postStore.Create(post)
	if err != nil {
		slog.Error("post create failed", "error", err)
		a.renderer.Page(w, r, "post_form", &render.PageData{
			Title:   "New post",
			Section: "posts",
			Data:    map[string]any{"Post": post, "Action": "/admin/posts", "Error": "Could not save the post."},
		})
		return
	}

	slog.Info("post created", "id", created.ID, "slug", created.Slug)
	a.invalidatePostPages(r, created.Slug)
	http.Redirect(w, r, "/admin/posts", http.StatusSeeOther)
}

// PostUpdate validates the form and saves changes to an existing post.
func (a *Admin) PostUpdate(w http.ResponseWriter, r *http.Request) {
	existing, ok := a.postFromRoute(w, r)
	if !ok {
		return
	}
	oldSlug := existing.Slug

	post, formErr := a.postFromForm(r, existing)
	if formErr != "" {
		a.renderer.Page(w, r, "post_form", &render.PageData{
			Title:   "Edit post",
			Section: "posts",
			Data:    map[string]any{"Post": post, "Action": "/admin/posts/" + post.ID.String(), "Error": formErr},
		})
		return
	}

	if err := a.postStore.Update(post); err != nil {
		slog.Error("post update failed", "error", err, "id", post.ID)
		a.renderer.Page(w, r, "post_form", &render.PageData{
			Title:   "Edit post",
			Section: "posts",
			Data:    map[string]any{"Post": post, "Action": "/admin/posts/" + post.ID.String(), "Error": "Could not save the post."},
		})
		return
	}

	slog.Info("post updated", "id", post.ID, "slug", post.Slug)
	a.invalidatePostPages(r, oldSlug, post.Slug)
	http.Redirect(w, r, "/admin/posts", http.StatusSeeOther)
}

// PostDelete removes a post and its stored cover image. Comments are
// left in place for the moderation queue.
func (a *Admin) PostDelete(w http.ResponseWriter, r *http.Request) {
	post, ok := a.postFromRoute(w, r)
	if !ok {
		return
	}

	if err := a.postStore.Delete(post.ID); err != nil {
		slog.Error("post delete failed", "error", err, "id", post.ID)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	// Cover cleanup is best effort; an orphaned object is preferable to
	// a failed delete.
	if a.storageClient != nil && post.CoverImageURL != nil {
		if key, ok := a.storageClient.ExtractS3Key(*post.CoverImageURL); ok {
			if err := a.storageClient.Delete(r.Context(), key); err != nil {
				slog.Warn("cover delete failed", "error", err, "key", key)
			}
		}
	}

	slog.Info("post deleted", "id", post.ID, "slug", post.Slug)
	a.invalidatePostPages(r, post.Slug)
	a.PostsList(w, r)
}

// postFromRoute resolves the {id} route parameter to a post, writing the
// error response itself when that fails.
func (a *Admin) postFromRoute(w http.ResponseWriter, r *http.Request) (*models.Post, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return nil, false
	}

	post, err := a.postStore.FindByID(id)
	if err != nil {
		slog.Error("post lookup failed", "error", err, "id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return nil, false
	}
	if post == nil {
		http.Error(w, "Not Found", http.StatusNotFound)
		return nil, false
	}
	return post, true
}

// postFromForm populates a post from the submitted form, regenerating
// the slug from the title and uploading a new cover when present.
// Returns a non-empty error message when validation fails; in that case
// nothing has been written anywhere.
func (a *Admin) postFromForm(r *http.Request, post *models.Post) (*models.Post, string) {
	if err := r.ParseMultipartForm(maxCoverUploadSize); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return post, "The submitted form could not be read."
	}

	post.Title = strings.TrimSpace(r.FormValue("title"))
	post.Excerpt = strings.TrimSpace(r.FormValue("excerpt"))
	post.Body = r.FormValue("body")
	post.Type = models.PostType(r.FormValue("type"))
	post.Status = models.PostStatus(r.FormValue("status"))
	post.Featured = r.FormValue("featured") == "1"
	post.Pinned = r.FormValue("pinned") == "1"
	post.Tags = parseTags(r.FormValue("tags"))

	videoURL := strings.TrimSpace(r.FormValue("video_url"))
	if videoURL != "" {
		post.VideoURL = &videoURL
	} else {
		post.VideoURL = nil
	}

	if post.Status != models.PostStatusDraft && post.Status != models.PostStatusPublished {
		return post, "Unknown post status."
	}
	if msg := validatePost(post.Title, post.Body, post.Type, videoURL); msg != "" {
		return post, msg
	}

	post.Slug = slug.Generate(post.Title)

	// Cover upload happens after validation so a bad form never leaves
	// an orphaned object behind.
	file, header, err := r.FormFile("cover")
	if err == nil {
		defer file.Close()
		url, msg := a.uploadCover(r, file, header)
		if msg != "" {
			return post, msg
		}
		post.CoverImageURL = &url
	}

	return post, ""
}

// uploadCover stores a new cover image and returns its public URL.
func (a *Admin) uploadCover(r *http.Request, file multipart.File, header *multipart.FileHeader) (string, string) {
	if a.storageClient == nil {
		return "", "Image storage is not configured."
	}

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return "", "Cover must be an image file."
	}

	key := storage.CoverKey(header.Filename)
	if err := a.storageClient.Upload(r.Context(), key, contentType, file, header.Size); err != nil {
		slog.Error("cover upload failed", "error", err)
		return "", "Could not upload the cover image."
	}

	return a.storageClient.FileURL(key), ""
}

// parseTags splits the comma-separated tags input, trimming whitespace
// and dropping empties.
func parseTags(input string) []string {
	parts := strings.Split(input, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	if len(tags) == 0 {
		return nil
	}
	return tags
}

// invalidatePostPages drops the cached listings plus the given post
// detail pages after any post mutation.
func (a *Admin) invalidatePostPages(r *http.Request, slugs ...string) {
	if a.pageCache == nil {
		return
	}
	a.pageCache.InvalidateBlog(r.Context())
	for _, s := range slugs {
		if s != "" {
			a.pageCache.Invalidate(r.Context(), cache.PostKey(s))
		}
	}
}
