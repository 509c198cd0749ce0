package store

import (
	"testing"

	"serenamente/internal/models"
)

const userTestEmail = "storetest@serenamente.test"

func TestUserCreateAndAuthenticate(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)
	cleanUsers(t, db, userTestEmail)
	t.Cleanup(func() { cleanUsers(t, db, userTestEmail) })

	u, err := s.Create(userTestEmail, "s3cret-pass", "Store Test", models.RoleAdmin)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if u.PasswordHash == "s3cret-pass" {
		t.Error("password must be stored hashed")
	}
	if u.TOTPEnabled {
		t.Error("new users must start without 2FA enabled")
	}
	if !u.Needs2FASetup() {
		t.Error("new user should need 2FA setup")
	}

	if !s.CheckPassword(u, "s3cret-pass") {
		t.Error("correct password rejected")
	}
	if s.CheckPassword(u, "wrong-pass") {
		t.Error("wrong password accepted")
	}

	found, err := s.FindByEmail(userTestEmail)
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if found == nil || found.ID != u.ID {
		t.Error("FindByEmail did not return the created user")
	}

	missing, err := s.FindByEmail("nobody@serenamente.test")
	if err != nil {
		t.Fatalf("FindByEmail missing: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for unknown email")
	}
}

func TestUserTOTPEnrollment(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)
	cleanUsers(t, db, userTestEmail)
	t.Cleanup(func() { cleanUsers(t, db, userTestEmail) })

	u, err := s.Create(userTestEmail, "s3cret-pass", "Store Test", models.RoleAdmin)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := s.SetTOTPSecret(u.ID, "JBSWY3DPEHPK3PXP"); err != nil {
		t.Fatalf("SetTOTPSecret: %v", err)
	}
	if err := s.EnableTOTP(u.ID); err != nil {
		t.Fatalf("EnableTOTP: %v", err)
	}

	enrolled, err := s.FindByID(u.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if !enrolled.TOTPEnabled {
		t.Error("TOTP should be enabled")
	}
	if enrolled.TOTPSecret == nil || *enrolled.TOTPSecret != "JBSWY3DPEHPK3PXP" {
		t.Error("TOTP secret not persisted")
	}
	if enrolled.Needs2FASetup() {
		t.Error("enrolled user should not need 2FA setup")
	}
}
