package store

import (
	"testing"

	"serenamente/internal/models"
)

func TestSettingsRoundTrip(t *testing.T) {
	db := testDB(t)
	s := NewSettingStore(db)

	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded == nil {
		t.Fatal("Load returned nil settings")
	}

	// Save a modified copy and read it back.
	loaded.WhatsAppNumber = "573001112233"
	loaded.ContactEmail = "hola@serenamente.test"
	if err := s.Save(loaded); err != nil {
		t.Fatalf("Save: %v", err)
	}

	again, err := s.Load()
	if err != nil {
		t.Fatalf("Load after save: %v", err)
	}
	if again.WhatsAppNumber != "573001112233" {
		t.Errorf("WhatsAppNumber: got %q", again.WhatsAppNumber)
	}
	if again.ContactEmail != "hola@serenamente.test" {
		t.Errorf("ContactEmail: got %q", again.ContactEmail)
	}

	// Restore defaults so repeated runs stay deterministic.
	defaults := models.DefaultSettings()
	if err := s.Save(&defaults); err != nil {
		t.Fatalf("Save defaults: %v", err)
	}
}

func TestContactMessageLifecycle(t *testing.T) {
	db := testDB(t)
	s := NewContactStore(db)
	cleanMessages(t, db, "paciente@serenamente.test")
	t.Cleanup(func() { cleanMessages(t, db, "paciente@serenamente.test") })

	m, err := s.Create(&models.ContactMessage{
		Name:        "Paciente",
		Email:       "paciente@serenamente.test",
		Phone:       "3001112233",
		TherapyType: "couple",
		Body:        "Quisiera agendar una cita.",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if m.Status != models.MessageStatusNew {
		t.Errorf("new message status: got %q, want new", m.Status)
	}

	if err := s.SetStatus(m.ID, models.MessageStatusRead); err != nil {
		t.Fatalf("SetStatus read: %v", err)
	}
	if err := s.SetStatus(m.ID, models.MessageStatusAnswered); err != nil {
		t.Fatalf("SetStatus answered: %v", err)
	}

	list, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	var found bool
	for _, item := range list {
		if item.ID == m.ID {
			found = true
			if item.Status != models.MessageStatusAnswered {
				t.Errorf("status: got %q, want answered", item.Status)
			}
		}
	}
	if !found {
		t.Error("created message not in list")
	}
}
