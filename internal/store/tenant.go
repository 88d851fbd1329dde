// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"landingpress/internal/models"
)

// TenantStore handles tenant lookups and management.
type TenantStore struct {
	db *sql.DB
}

// NewTenantStore creates a new TenantStore with the given database connection.
func NewTenantStore(db *sql.DB) *TenantStore {
	return &TenantStore{db: db}
}

// FindBySlug retrieves an active tenant by its URL slug. Returns nil if
// not found. Public routes resolve tenants through this.
func (s *TenantStore) FindBySlug(slug string) (*models.Tenant, error) {
	t := &models.Tenant{}
	err := s.db.QueryRow(`
		SELECT id, slug, name, is_active, created_at, updated_at
		FROM tenants WHERE slug = $1 AND is_active = TRUE
	`, slug).Scan(&t.ID, &t.Slug, &t.Name, &t.IsActive, &t.CreatedAt, &t.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find tenant by slug: %w", err)
	}
	return t, nil
}

// FindByID retrieves a tenant by its UUID. Returns nil if not found.
func (s *TenantStore) FindByID(id uuid.UUID) (*models.Tenant, error) {
	t := &models.Tenant{}
	err := s.db.QueryRow(`
		SELECT id, slug, name, is_active, created_at, updated_at
		FROM tenants WHERE id = $1
	`, id).Scan(&t.ID, &t.Slug, &t.Name, &t.IsActive, &t.CreatedAt, &t.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find tenant by id: %w", err)
	}
	return t, nil
}

// List returns all tenants ordered by creation date.
func (s *TenantStore) List() ([]models.Tenant, error) {
	rows, err := s.db.Query(`
		SELECT id, slug, name, is_active, created_at, updated_at
		FROM tenants ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list tenants: %w", err)
	}
	defer rows.Close()

	var tenants []models.Tenant
	for rows.Next() {
		var t models.Tenant
		if err := rows.Scan(&t.ID, &t.Slug, &t.Name, &t.IsActive, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan tenant: %w", err)
		}
		tenants = append(tenants, t)
	}
	return tenants, rows.Err()
}

// Create inserts a new tenant and returns it with the generated ID.
func (s *TenantStore) Create(slug, name string) (*models.Tenant, error) {
	t := &models.Tenant{}
	err := s.db.QueryRow(`
		INSERT INTO tenants (slug, name)
		VALUES ($1, $2)
		RETURNING id, slug, name, is_active, created_at, updated_at
	`, slug, name).Scan(&t.ID, &t.Slug, &t.Name, &t.IsActive, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create tenant: %w", err)
	}
	return t, nil
}

// SetActive toggles a tenant's active flag. Inactive tenants disappear
// from public routing but keep their data.
func (s *TenantStore) SetActive(id uuid.UUID, active bool) error {
	_, err := s.db.Exec(`
		UPDATE tenants SET is_active = $1, updated_at = NOW() WHERE id = $2
	`, active, id)
	if err != nil {
		return fmt.Errorf("set tenant active: %w", err)
	}
	return nil
}
