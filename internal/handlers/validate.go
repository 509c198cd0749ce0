package handlers

import (
	"net/mail"
	"net/url"
	"strings"
	"unicode/utf8"

	"serenamente/internal/models"
)

// Validation limits for post, comment, and contact form fields.
const (
	maxTitleLen   = 300
	maxExcerptLen = 1_000
	maxBodyLen    = 100_000
	maxNameLen    = 120
	maxCommentLen = 5_000
	maxMessageLen = 10_000
	maxPhoneLen   = 30
)

// validatePost checks post form inputs and returns the first error found.
// Video posts must carry a playable URL before anything is written.
func validatePost(title, body string, postType models.PostType, videoURL string) string {
	if strings.TrimSpace(title) == "" {
		return "Title is required."
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "Title is too long (max 300 characters)."
	}
	if utf8.RuneCountInString(body) > maxBodyLen {
		return "Body is too long (max 100,000 characters)."
	}
	if postType != models.PostTypeArticle && postType != models.PostTypeVideo {
		return "Unknown post type."
	}
	if postType == models.PostTypeVideo {
		if strings.TrimSpace(videoURL) == "" {
			return "Video posts require a video URL."
		}
		u, err := url.Parse(videoURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return "The video URL is not a valid link."
		}
	}
	return ""
}

// validateComment checks public comment submissions.
func validateComment(name, email, body string) string {
	if strings.TrimSpace(name) == "" {
		return "El nombre es obligatorio."
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return "El nombre es demasiado largo."
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "El email no es válido."
	}
	if strings.TrimSpace(body) == "" {
		return "El comentario no puede estar vacío."
	}
	if utf8.RuneCountInString(body) > maxCommentLen {
		return "El comentario es demasiado largo."
	}
	return ""
}

// validateContact checks contact form submissions.
func validateContact(name, email, phone, body string) string {
	if strings.TrimSpace(name) == "" {
		return "El nombre es obligatorio."
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return "El nombre es demasiado largo."
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "El email no es válido."
	}
	if utf8.RuneCountInString(phone) > maxPhoneLen {
		return "El teléfono no es válido."
	}
	if strings.TrimSpace(body) == "" {
		return "El mensaje no puede estar vacío."
	}
	if utf8.RuneCountInString(body) > maxMessageLen {
		return "El mensaje es demasiado largo."
	}
	return ""
}
