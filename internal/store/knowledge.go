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

// KnowledgeStore handles knowledge base entry persistence.
type KnowledgeStore struct {
	db *sql.DB
}

// NewKnowledgeStore creates a new KnowledgeStore with the given database connection.
func NewKnowledgeStore(db *sql.DB) *KnowledgeStore {
	return &KnowledgeStore{db: db}
}

// BulkInsert stores a batch of extracted entries in a single
// transaction. All entries share the tenant and source.
func (s *KnowledgeStore) BulkInsert(tenantID uuid.UUID, source string, entries []models.KnowledgeEntry) ([]models.KnowledgeEntry, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin knowledge insert: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO knowledge_entries (tenant_id, kind, name, description, price, source)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, tenant_id, kind, name, description, price, source, created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("prepare knowledge insert: %w", err)
	}
	defer stmt.Close()

	stored := make([]models.KnowledgeEntry, 0, len(entries))
	for _, e := range entries {
		var out models.KnowledgeEntry
		err := stmt.QueryRow(tenantID, e.Kind, e.Name, e.Description, e.Price, source).Scan(
			&out.ID, &out.TenantID, &out.Kind, &out.Name, &out.Description,
			&out.Price, &out.Source, &out.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("insert knowledge entry: %w", err)
		}
		stored = append(stored, out)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit knowledge insert: %w", err)
	}
	return stored, nil
}

// ListByTenant returns a tenant's knowledge entries, newest first. An
// empty kind filters nothing.
func (s *KnowledgeStore) ListByTenant(tenantID uuid.UUID, kind models.KnowledgeKind) ([]models.KnowledgeEntry, error) {
	query := `
		SELECT id, tenant_id, kind, name, description, price, source, created_at
		FROM knowledge_entries WHERE tenant_id = $1`
	args := []any{tenantID}
	if kind != "" {
		query += ` AND kind = $2`
		args = append(args, kind)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list knowledge entries: %w", err)
	}
	defer rows.Close()

	var entries []models.KnowledgeEntry
	for rows.Next() {
		var e models.KnowledgeEntry
		if err := rows.Scan(
			&e.ID, &e.TenantID, &e.Kind, &e.Name, &e.Description,
			&e.Price, &e.Source, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan knowledge entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// FindByID retrieves an entry by UUID. Returns nil if not found.
func (s *KnowledgeStore) FindByID(id uuid.UUID) (*models.KnowledgeEntry, error) {
	e := &models.KnowledgeEntry{}
	err := s.db.QueryRow(`
		SELECT id, tenant_id, kind, name, description, price, source, created_at
		FROM knowledge_entries WHERE id = $1
	`, id).Scan(
		&e.ID, &e.TenantID, &e.Kind, &e.Name, &e.Description,
		&e.Price, &e.Source, &e.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find knowledge entry by id: %w", err)
	}
	return e, nil
}

// Delete removes an entry by ID.
func (s *KnowledgeStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM knowledge_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete knowledge entry: %w", err)
	}
	return nil
}
