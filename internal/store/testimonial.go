// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"serenamente/internal/models"
)

const testimonialColumns = `id, body, author_initials, author_age, service_type, featured, published_at`

// TestimonialStore handles testimonial database operations. Testimonials
// are curated content seeded and managed directly by the practice; there
// is no public submission path.
type TestimonialStore struct {
	db *sql.DB
}

// NewTestimonialStore creates a new TestimonialStore.
func NewTestimonialStore(db *sql.DB) *TestimonialStore {
	return &TestimonialStore{db: db}
}

// List returns all testimonials, newest first.
func (s *TestimonialStore) List() ([]models.Testimonial, error) {
	rows, err := s.db.Query(`
		SELECT ` + testimonialColumns + `
		FROM testimonials
		ORDER BY published_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list testimonials: %w", err)
	}
	defer rows.Close()

	return collectTestimonials(rows)
}

// ListFeatured returns up to limit featured testimonials, newest first.
// Used for the home page.
func (s *TestimonialStore) ListFeatured(limit int) ([]models.Testimonial, error) {
	rows, err := s.db.Query(`
		SELECT `+testimonialColumns+`
		FROM testimonials
		WHERE featured = TRUE
		ORDER BY published_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list featured testimonials: %w", err)
	}
	defer rows.Close()

	return collectTestimonials(rows)
}

func collectTestimonials(rows *sql.Rows) ([]models.Testimonial, error) {
	var items []models.Testimonial
	for rows.Next() {
		var t models.Testimonial
		if err := rows.Scan(
			&t.ID, &t.Body, &t.AuthorInitials, &t.AuthorAge,
			&t.ServiceType, &t.Featured, &t.PublishedAt,
		); err != nil {
			return nil, fmt.Errorf("scan testimonial: %w", err)
		}
		items = append(items, t)
	}
	return items, rows.Err()
}
