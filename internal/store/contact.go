// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"serenamente/internal/models"
)

const contactColumns = `id, name, email, phone, therapy_type, body, status, created_at`

// ContactStore handles contact message database operations.
type ContactStore struct {
	db *sql.DB
}

// NewContactStore creates a new ContactStore.
func NewContactStore(db *sql.DB) *ContactStore {
	return &ContactStore{db: db}
}

// Create inserts a new contact message. Messages always start in the
// "new" status.
func (s *ContactStore) Create(m *models.ContactMessage) (*models.ContactMessage, error) {
	result := &models.ContactMessage{}
	err := s.db.QueryRow(`
		INSERT INTO contact_messages (name, email, phone, therapy_type, body, status)
		VALUES ($1, $2, $3, $4, $5, 'new')
		RETURNING `+contactColumns+`
	`, m.Name, m.Email, m.Phone, m.TherapyType, m.Body).Scan(
		&result.ID, &result.Name, &result.Email, &result.Phone,
		&result.TherapyType, &result.Body, &result.Status, &result.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create contact message: %w", err)
	}
	return result, nil
}

// List returns all contact messages, newest first.
func (s *ContactStore) List() ([]models.ContactMessage, error) {
	rows, err := s.db.Query(`
		SELECT ` + contactColumns + `
		FROM contact_messages
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list contact messages: %w", err)
	}
	defer rows.Close()

	var items []models.ContactMessage
	for rows.Next() {
		var m models.ContactMessage
		if err := rows.Scan(
			&m.ID, &m.Name, &m.Email, &m.Phone,
			&m.TherapyType, &m.Body, &m.Status, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan contact message: %w", err)
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

// SetStatus moves a message through its lifecycle (new → read → answered).
func (s *ContactStore) SetStatus(id uuid.UUID, status models.MessageStatus) error {
	_, err := s.db.Exec(`UPDATE contact_messages SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("set contact message status: %w", err)
	}
	return nil
}

// CountNew returns the number of unread messages, shown on the dashboard.
func (s *ContactStore) CountNew() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM contact_messages WHERE status = 'new'`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count new contact messages: %w", err)
	}
	return n, nil
}
