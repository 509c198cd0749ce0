package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// Seed populates the database with initial development data: a default
// admin user and a handful of testimonials for the public site. The
// admin will be prompted to set up 2FA on first login.
func Seed(db *sql.DB) error {
	if err := seedAdmin(db); err != nil {
		return err
	}
	return seedTestimonials(db)
}

func seedAdmin(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("users already seeded, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO users (email, password_hash, display_name, role, totp_enabled)
		VALUES ($1, $2, $3, $4, $5)
	`, "admin@serenamente.local", string(hash), "Admin", "admin", false)
	if err != nil {
		return fmt.Errorf("seed insert admin: %w", err)
	}

	slog.Info("database seeded with default admin user",
		"email", "admin@serenamente.local",
		"password", "admin",
	)
	return nil
}

func seedTestimonials(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM testimonials").Scan(&count); err != nil {
		return fmt.Errorf("seed check testimonials: %w", err)
	}

	if count > 0 {
		return nil
	}

	type seedRow struct {
		body        string
		initials    string
		age         int
		serviceType string
		featured    bool
	}

	rows := []seedRow{
		{"El proceso me ayudó a entender de dónde venía mi ansiedad y a manejarla en el día a día.", "M.R.", 34, "individual", true},
		{"Llegamos al borde de la separación y hoy tenemos una relación más honesta que nunca.", "J.C. y L.P.", 0, "couple", true},
		{"Aprendimos a escucharnos como familia. Las sesiones cambiaron la forma en que discutimos.", "Familia G.", 0, "family", false},
		{"Después del duelo no encontraba sentido a nada. La terapia me devolvió el piso.", "A.T.", 41, "individual", false},
	}

	for _, r := range rows {
		var age sql.NullInt64
		if r.age > 0 {
			age = sql.NullInt64{Int64: int64(r.age), Valid: true}
		}
		if _, err := db.Exec(`
			INSERT INTO testimonials (body, author_initials, author_age, service_type, featured)
			VALUES ($1, $2, $3, $4, $5)
		`, r.body, r.initials, age, r.serviceType, r.featured); err != nil {
			return fmt.Errorf("seed insert testimonial: %w", err)
		}
	}

	slog.Info("database seeded with testimonials", "count", len(rows))
	return nil
}
