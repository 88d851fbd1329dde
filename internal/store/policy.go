// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"landingpress/internal/models"
)

// PolicyStore handles policy document persistence. Each tenant has at
// most one policy per type.
type PolicyStore struct {
	db *sql.DB
}

// NewPolicyStore creates a new PolicyStore with the given database connection.
func NewPolicyStore(db *sql.DB) *PolicyStore {
	return &PolicyStore{db: db}
}

func scanPolicy(row interface {
	Scan(dest ...any) error
}) (*models.Policy, error) {
	p := &models.Policy{}
	var fields []byte
	err := row.Scan(
		&p.ID, &p.TenantID, &p.Type, &p.Title, &p.Content, &fields,
		&p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		if err := json.Unmarshal(fields, &p.FieldsData); err != nil {
			return nil, fmt.Errorf("unmarshal policy fields: %w", err)
		}
	}
	return p, nil
}

// FindByType retrieves a tenant's policy of the given type. Returns nil
// if not found.
func (s *PolicyStore) FindByType(tenantID uuid.UUID, typ models.PolicyType) (*models.Policy, error) {
	p, err := scanPolicy(s.db.QueryRow(`
		SELECT id, tenant_id, type, title, content, fields_data, is_active, created_at, updated_at
		FROM policies WHERE tenant_id = $1 AND type = $2
	`, tenantID, typ))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find policy by type: %w", err)
	}
	return p, nil
}

// ListByTenant returns all of a tenant's policies ordered by type.
func (s *PolicyStore) ListByTenant(tenantID uuid.UUID) ([]models.Policy, error) {
	rows, err := s.db.Query(`
		SELECT id, tenant_id, type, title, content, fields_data, is_active, created_at, updated_at
		FROM policies WHERE tenant_id = $1 ORDER BY type ASC
	`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list policies: %w", err)
	}
	defer rows.Close()

	var policies []models.Policy
	for rows.Next() {
		p, err := scanPolicy(rows)
		if err != nil {
			return nil, fmt.Errorf("scan policy: %w", err)
		}
		policies = append(policies, *p)
	}
	return policies, rows.Err()
}

// Upsert creates or replaces a tenant's policy of the given type and
// returns the stored row.
func (s *PolicyStore) Upsert(p *models.Policy) (*models.Policy, error) {
	fields, err := json.Marshal(p.FieldsData)
	if err != nil {
		return nil, fmt.Errorf("marshal policy fields: %w", err)
	}

	stored, err := scanPolicy(s.db.QueryRow(`
		INSERT INTO policies (tenant_id, type, title, content, fields_data, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (tenant_id, type)
		DO UPDATE SET title = EXCLUDED.title, content = EXCLUDED.content,
		              fields_data = EXCLUDED.fields_data, is_active = EXCLUDED.is_active,
		              updated_at = NOW()
		RETURNING id, tenant_id, type, title, content, fields_data, is_active, created_at, updated_at
	`, p.TenantID, p.Type, p.Title, p.Content, fields, p.IsActive))
	if err != nil {
		return nil, fmt.Errorf("upsert policy: %w", err)
	}
	return stored, nil
}

// Delete removes a tenant's policy of the given type.
func (s *PolicyStore) Delete(tenantID uuid.UUID, typ models.PolicyType) error {
	_, err := s.db.Exec(`DELETE FROM policies WHERE tenant_id = $1 AND type = $2`, tenantID, typ)
	if err != nil {
		return fmt.Errorf("delete policy: %w", err)
	}
	return nil
}
