package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// Seed populates the database with initial development data: a default
// tenant and an admin operator for it. Safe to call repeatedly.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM tenants").Scan(&count); err != nil {
		return fmt.Errorf("seed check tenants: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed begin: %w", err)
	}
	defer tx.Rollback()

	var tenantID string
	err = tx.QueryRow(`
		INSERT INTO tenants (slug, name)
		VALUES ($1, $2)
		RETURNING id
	`, "default", "Default Store").Scan(&tenantID)
	if err != nil {
		return fmt.Errorf("seed insert tenant: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO users (tenant_id, email, password_hash, display_name, role)
		VALUES ($1, $2, $3, $4, $5)
	`, tenantID, "admin@landingpress.local", string(hash), "Admin", "admin")
	if err != nil {
		return fmt.Errorf("seed insert admin: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed commit: %w", err)
	}

	slog.Info("database seeded with default tenant and admin user",
		"tenant", "default",
		"email", "admin@landingpress.local",
		"password", "admin",
	)

	return nil
}
