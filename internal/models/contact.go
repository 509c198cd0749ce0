// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// MessageStatus tracks how far along a contact inquiry is.
type MessageStatus string

const (
	MessageStatusNew      MessageStatus = "new"
	MessageStatusRead     MessageStatus = "read"
	MessageStatusAnswered MessageStatus = "answered"
)

// ContactMessage is an inquiry submitted through the public contact form.
type ContactMessage struct {
	ID          uuid.UUID     `json:"id"`
	Name        string        `json:"name"`
	Email       string        `json:"email"`
	Phone       string        `json:"phone"`
	TherapyType string        `json:"therapy_type"`
	Body        string        `json:"body"`
	Status      MessageStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
}
