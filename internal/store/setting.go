// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"time"

	"serenamente/internal/models"
)

// SettingStore manages site configuration stored as key/value rows.
// Callers work with the typed models.SiteSettings struct; the mapping to
// row keys lives here and nowhere else.
type SettingStore struct {
	db *sql.DB
}

// NewSettingStore returns a new SettingStore backed by the given database.
func NewSettingStore(db *sql.DB) *SettingStore {
	return &SettingStore{db: db}
}

// settingKeys maps row keys to accessor functions over the typed struct.
// Load and Save both iterate this table so the two can't diverge.
var settingKeys = map[string]func(*models.SiteSettings) *string{
	"whatsapp_number": func(s *models.SiteSettings) *string { return &s.WhatsAppNumber },
	"contact_email":   func(s *models.SiteSettings) *string { return &s.ContactEmail },
	"instagram":       func(s *models.SiteSettings) *string { return &s.Instagram },
	"facebook":        func(s *models.SiteSettings) *string { return &s.Facebook },
	"linkedin":        func(s *models.SiteSettings) *string { return &s.LinkedIn },
	"hours_weekdays":  func(s *models.SiteSettings) *string { return &s.HoursWeekdays },
	"hours_saturday":  func(s *models.SiteSettings) *string { return &s.HoursSaturday },
	"hours_sunday":    func(s *models.SiteSettings) *string { return &s.HoursSunday },
	"city":            func(s *models.SiteSettings) *string { return &s.City },
	"state":           func(s *models.SiteSettings) *string { return &s.State },
	"country":         func(s *models.SiteSettings) *string { return &s.Country },
	"address":         func(s *models.SiteSettings) *string { return &s.Address },
}

// Load reads all settings rows into a typed struct. Keys missing from
// the table keep their default values.
func (s *SettingStore) Load() (*models.SiteSettings, error) {
	defaults := models.DefaultSettings()
	settings := &defaults

	rows, err := s.db.Query(`SELECT key, value FROM site_settings`)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("scan setting: %w", err)
		}
		if field, ok := settingKeys[k]; ok && v != "" {
			*field(settings) = v
		}
	}
	return settings, rows.Err()
}

// Save upserts every setting in a single transaction.
func (s *SettingStore) Save(settings *models.SiteSettings) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("save settings: begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO site_settings (key, value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`)
	if err != nil {
		return fmt.Errorf("save settings: prepare: %w", err)
	}
	defer stmt.Close()

	now := time.Now()
	for k, field := range settingKeys {
		if _, err := stmt.Exec(k, *field(settings), now); err != nil {
			return fmt.Errorf("save setting %q: %w", k, err)
		}
	}

	return tx.Commit()
}
