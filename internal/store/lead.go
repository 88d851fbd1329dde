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

// LeadStore handles captured lead persistence.
type LeadStore struct {
	db *sql.DB
}

// NewLeadStore creates a new LeadStore with the given database connection.
func NewLeadStore(db *sql.DB) *LeadStore {
	return &LeadStore{db: db}
}

// Create inserts a lead captured from the public storefront.
func (s *LeadStore) Create(l *models.Lead) (*models.Lead, error) {
	stored := &models.Lead{}
	err := s.db.QueryRow(`
		INSERT INTO leads (tenant_id, name, email, phone, message, source, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, tenant_id, name, email, phone, message, source, status, created_at, updated_at
	`, l.TenantID, l.Name, l.Email, l.Phone, l.Message, l.Source, models.LeadNew).Scan(
		&stored.ID, &stored.TenantID, &stored.Name, &stored.Email, &stored.Phone,
		&stored.Message, &stored.Source, &stored.Status, &stored.CreatedAt, &stored.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create lead: %w", err)
	}
	return stored, nil
}

// ListByTenant returns a tenant's leads, newest first. An empty status
// filters nothing.
func (s *LeadStore) ListByTenant(tenantID uuid.UUID, status models.LeadStatus) ([]models.Lead, error) {
	query := `
		SELECT id, tenant_id, name, email, phone, message, source, status, created_at, updated_at
		FROM leads WHERE tenant_id = $1`
	args := []any{tenantID}
	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	var leads []models.Lead
	for rows.Next() {
		var l models.Lead
		if err := rows.Scan(
			&l.ID, &l.TenantID, &l.Name, &l.Email, &l.Phone,
			&l.Message, &l.Source, &l.Status, &l.CreatedAt, &l.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		leads = append(leads, l)
	}
	return leads, rows.Err()
}

// FindByID retrieves a lead by UUID. Returns nil if not found.
func (s *LeadStore) FindByID(id uuid.UUID) (*models.Lead, error) {
	l := &models.Lead{}
	err := s.db.QueryRow(`
		SELECT id, tenant_id, name, email, phone, message, source, status, created_at, updated_at
		FROM leads WHERE id = $1
	`, id).Scan(
		&l.ID, &l.TenantID, &l.Name, &l.Email, &l.Phone,
		&l.Message, &l.Source, &l.Status, &l.CreatedAt, &l.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find lead by id: %w", err)
	}
	return l, nil
}

// UpdateStatus moves a lead through the pipeline.
func (s *LeadStore) UpdateStatus(id uuid.UUID, status models.LeadStatus) error {
	res, err := s.db.Exec(`
		UPDATE leads SET status = $1, updated_at = NOW() WHERE id = $2
	`, status, id)
	if err != nil {
		return fmt.Errorf("update lead status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("update lead status: lead %s not found", id)
	}
	return nil
}

// Delete removes a lead by ID.
func (s *LeadStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete lead: %w", err)
	}
	return nil
}
