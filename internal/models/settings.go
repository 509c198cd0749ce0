// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// SiteSettings is the typed view of the site configuration. Each field
// maps to one key in the site_settings table; there is no generic
// path-based mutation, only explicit fields.
type SiteSettings struct {
	WhatsAppNumber string
	ContactEmail   string
	Instagram      string
	Facebook       string
	LinkedIn       string
	HoursWeekdays  string
	HoursSaturday  string
	HoursSunday    string
	City           string
	State          string
	Country        string
	Address        string
}

// DefaultSettings returns the configuration used before the admin has
// saved anything.
func DefaultSettings() SiteSettings {
	return SiteSettings{
		WhatsAppNumber: "573216404797",
		HoursWeekdays:  "8:00 AM - 6:00 PM",
		HoursSaturday:  "9:00 AM - 1:00 PM",
		HoursSunday:    "Cerrado",
		City:           "Medellín",
		State:          "Antioquia",
		Country:        "Colombia",
	}
}
