// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"testing"

	"github.com/google/uuid"

	"landingpress/internal/models"
)

func TestUserStoreCreate(t *testing.T) {
	db := testDB(t)
	tenant := testTenant(t, db)
	s := NewUserStore(db)

	email := "test-create@store-test.local"
	t.Cleanup(func() { cleanUsers(t, db, email) })

	user, err := s.Create(tenant.ID, email, "testpass123", "Test User", models.RoleEditor)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if user.ID == uuid.Nil {
		t.Error("expected non-nil UUID")
	}
	if user.TenantID != tenant.ID {
		t.Errorf("tenant: got %s, want %s", user.TenantID, tenant.ID)
	}
	if user.Email != email {
		t.Errorf("email: got %q, want %q", user.Email, email)
	}
	if user.DisplayName != "Test User" {
		t.Errorf("display name: got %q, want %q", user.DisplayName, "Test User")
	}
	if user.Role != models.RoleEditor {
		t.Errorf("role: got %q, want %q", user.Role, models.RoleEditor)
	}
	if user.PasswordHash == "" {
		t.Error("expected non-empty password hash")
	}
	if user.PasswordHash == "testpass123" {
		t.Error("password hash must not be plaintext")
	}
}

func TestUserStoreFindByEmail(t *testing.T) {
	db := testDB(t)
	tenant := testTenant(t, db)
	s := NewUserStore(db)

	email := "test-findbyemail@store-test.local"
	t.Cleanup(func() { cleanUsers(t, db, email) })

	// Not found case.
	user, err := s.FindByEmail(email)
	if err != nil {
		t.Fatalf("FindByEmail (not found): %v", err)
	}
	if user != nil {
		t.Error("expected nil for non-existent user")
	}

	// Create and find.
	created, err := s.Create(tenant.ID, email, "pass", "Find Me", models.RoleEditor)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	user, err = s.FindByEmail(email)
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if user == nil {
		t.Fatal("expected user, got nil")
	}
	if user.ID != created.ID {
		t.Errorf("ID mismatch: got %s, want %s", user.ID, created.ID)
	}
}

func TestUserStoreFindByID(t *testing.T) {
	db := testDB(t)
	tenant := testTenant(t, db)
	s := NewUserStore(db)

	email := "test-findbyid@store-test.local"
	t.Cleanup(func() { cleanUsers(t, db, email) })

	// Not found.
	user, err := s.FindByID(uuid.New())
	if err != nil {
		t.Fatalf("FindByID (not found): %v", err)
	}
	if user != nil {
		t.Error("expected nil for random UUID")
	}

	// Create and find.
	created, _ := s.Create(tenant.ID, email, "pass", "By ID", models.RoleAdmin)
	user, err = s.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if user == nil {
		t.Fatal("expected user, got nil")
	}
	if user.Email != email {
		t.Errorf("email: got %q, want %q", user.Email, email)
	}
}

func TestUserStoreListByTenant(t *testing.T) {
	db := testDB(t)
	tenant := testTenant(t, db)
	other := testTenant(t, db)
	s := NewUserStore(db)

	email1 := "test-list-a@store-test.local"
	email2 := "test-list-b@store-test.local"
	email3 := "test-list-c@store-test.local"
	t.Cleanup(func() { cleanUsers(t, db, email1, email2, email3) })

	s.Create(tenant.ID, email1, "pass", "A", models.RoleEditor)
	s.Create(tenant.ID, email2, "pass", "B", models.RoleAdmin)
	s.Create(other.ID, email3, "pass", "C", models.RoleEditor)

	users, err := s.ListByTenant(tenant.ID)
	if err != nil {
		t.Fatalf("ListByTenant: %v", err)
	}
	if len(users) != 2 {
		t.Errorf("expected 2 users for tenant, got %d", len(users))
	}
	for _, u := range users {
		if u.TenantID != tenant.ID {
			t.Errorf("user %s belongs to %s, want %s", u.Email, u.TenantID, tenant.ID)
		}
	}
}

func TestUserStoreCheckPassword(t *testing.T) {
	db := testDB(t)
	tenant := testTenant(t, db)
	s := NewUserStore(db)

	email := "test-checkpass@store-test.local"
	t.Cleanup(func() { cleanUsers(t, db, email) })

	user, _ := s.Create(tenant.ID, email, "correct-password", "PW Check", models.RoleEditor)

	if !s.CheckPassword(user, "correct-password") {
		t.Error("expected CheckPassword to return true for correct password")
	}
	if s.CheckPassword(user, "wrong-password") {
		t.Error("expected CheckPassword to return false for wrong password")
	}
	if s.CheckPassword(user, "") {
		t.Error("expected CheckPassword to return false for empty password")
	}
}

func TestUserStoreDelete(t *testing.T) {
	db := testDB(t)
	tenant := testTenant(t, db)
	s := NewUserStore(db)

	email := "test-delete@store-test.local"
	// No cleanup needed since we're deleting.

	user, _ := s.Create(tenant.ID, email, "pass", "Delete Me", models.RoleEditor)

	if err := s.Delete(user.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	found, _ := s.FindByID(user.ID)
	if found != nil {
		t.Error("expected nil after delete")
	}
}

func TestUserStoreDuplicateEmail(t *testing.T) {
	db := testDB(t)
	tenant := testTenant(t, db)
	s := NewUserStore(db)

	email := "test-dupe@store-test.local"
	t.Cleanup(func() { cleanUsers(t, db, email) })

	_, err := s.Create(tenant.ID, email, "pass", "First", models.RoleEditor)
	if err != nil {
		t.Fatalf("first Create: %v", err)
	}

	_, err = s.Create(tenant.ID, email, "pass", "Second", models.RoleEditor)
	if err == nil {
		t.Error("expected error for duplicate email, got nil")
	}
}
