// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// ServiceType classifies which therapy service a testimonial refers to.
type ServiceType string

const (
	ServiceIndividual ServiceType = "individual"
	ServiceCouple     ServiceType = "couple"
	ServiceFamily     ServiceType = "family"
)

// Testimonial is an anonymised client testimonial shown on the public
// site. Testimonials are seeded or managed out of band; there is no
// admin mutation path for them.
type Testimonial struct {
	ID             uuid.UUID   `json:"id"`
	Body           string      `json:"body"`
	AuthorInitials string      `json:"author_initials"`
	AuthorAge      *int        `json:"author_age,omitempty"`
	ServiceType    ServiceType `json:"service_type"`
	Featured       bool        `json:"featured"`
	PublishedAt    time.Time   `json:"published_at"`
}
