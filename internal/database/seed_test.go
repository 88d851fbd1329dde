package database

import (
	"testing"
)

func TestSeedIdempotent(t *testing.T) {
	db, err := Connect(testDSN())
	if err != nil {
		t.Skipf("skipping: DB not available: %v", err)
	}
	defer db.Close()

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	// Seed creates data only when the tenants table is empty. Calling it
	// twice verifies idempotency without clearing the database, since other
	// test packages may run concurrently against the same instance.
	if err := Seed(db); err != nil {
		t.Fatalf("first Seed: %v", err)
	}
	if err := Seed(db); err != nil {
		t.Fatalf("second Seed: %v", err)
	}

	var tenantCount int
	if err := db.QueryRow("SELECT COUNT(*) FROM tenants WHERE slug = 'default'").Scan(&tenantCount); err != nil {
		t.Fatalf("count default tenants: %v", err)
	}
	if tenantCount < 1 {
		t.Errorf("expected at least 1 default tenant, got %d", tenantCount)
	}

	var userCount int
	if err := db.QueryRow("SELECT COUNT(*) FROM users WHERE email = 'admin@landingpress.local'").Scan(&userCount); err != nil {
		t.Fatalf("count admin users: %v", err)
	}
	if userCount < 1 {
		t.Errorf("expected at least 1 admin user, got %d", userCount)
	}
}
