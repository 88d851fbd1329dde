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

// SequenceStore handles email sequence persistence. Steps are stored
// as a JSONB column.
type SequenceStore struct {
	db *sql.DB
}

// NewSequenceStore creates a new SequenceStore with the given database connection.
func NewSequenceStore(db *sql.DB) *SequenceStore {
	return &SequenceStore{db: db}
}

func scanSequence(row interface{ Scan(dest ...any) error }) (*models.EmailSequence, error) {
	seq := &models.EmailSequence{}
	var steps []byte
	err := row.Scan(
		&seq.ID, &seq.TenantID, &seq.Name, &seq.Trigger, &seq.Status,
		&steps, &seq.CreatedAt, &seq.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(steps) > 0 {
		if err := json.Unmarshal(steps, &seq.Steps); err != nil {
			return nil, fmt.Errorf("unmarshal sequence steps: %w", err)
		}
	}
	return seq, nil
}

// Create inserts a new sequence in draft state.
func (s *SequenceStore) Create(seq *models.EmailSequence) (*models.EmailSequence, error) {
	steps, err := json.Marshal(seq.Steps)
	if err != nil {
		return nil, fmt.Errorf("marshal sequence steps: %w", err)
	}
	row := s.db.QueryRow(`
		INSERT INTO email_sequences (tenant_id, name, trigger_event, status, steps)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, tenant_id, name, trigger_event, status, steps, created_at, updated_at
	`, seq.TenantID, seq.Name, seq.Trigger, models.SequenceDraft, steps)
	stored, err := scanSequence(row)
	if err != nil {
		return nil, fmt.Errorf("create sequence: %w", err)
	}
	return stored, nil
}

// ListByTenant returns a tenant's sequences, newest first.
func (s *SequenceStore) ListByTenant(tenantID uuid.UUID) ([]models.EmailSequence, error) {
	rows, err := s.db.Query(`
		SELECT id, tenant_id, name, trigger_event, status, steps, created_at, updated_at
		FROM email_sequences WHERE tenant_id = $1
		ORDER BY created_at DESC
	`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list sequences: %w", err)
	}
	defer rows.Close()

	var sequences []models.EmailSequence
	for rows.Next() {
		seq, err := scanSequence(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sequence: %w", err)
		}
		sequences = append(sequences, *seq)
	}
	return sequences, rows.Err()
}

// FindByID retrieves a sequence by UUID. Returns nil if not found.
func (s *SequenceStore) FindByID(id uuid.UUID) (*models.EmailSequence, error) {
	row := s.db.QueryRow(`
		SELECT id, tenant_id, name, trigger_event, status, steps, created_at, updated_at
		FROM email_sequences WHERE id = $1
	`, id)
	seq, err := scanSequence(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find sequence by id: %w", err)
	}
	return seq, nil
}

// Update replaces a sequence's name, trigger and steps. Status is
// managed separately through SetStatus.
func (s *SequenceStore) Update(seq *models.EmailSequence) (*models.EmailSequence, error) {
	steps, err := json.Marshal(seq.Steps)
	if err != nil {
		return nil, fmt.Errorf("marshal sequence steps: %w", err)
	}
	row := s.db.QueryRow(`
		UPDATE email_sequences
		SET name = $1, trigger_event = $2, steps = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING id, tenant_id, name, trigger_event, status, steps, created_at, updated_at
	`, seq.Name, seq.Trigger, steps, seq.ID)
	stored, err := scanSequence(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("update sequence: sequence %s not found", seq.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("update sequence: %w", err)
	}
	return stored, nil
}

// SetStatus activates, pauses or re-drafts a sequence.
func (s *SequenceStore) SetStatus(id uuid.UUID, status models.SequenceStatus) error {
	res, err := s.db.Exec(`
		UPDATE email_sequences SET status = $1, updated_at = NOW() WHERE id = $2
	`, status, id)
	if err != nil {
		return fmt.Errorf("set sequence status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("set sequence status: sequence %s not found", id)
	}
	return nil
}

// Delete removes a sequence by ID.
func (s *SequenceStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM email_sequences WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete sequence: %w", err)
	}
	return nil
}
