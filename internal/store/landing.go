// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"landingpress/internal/editor"
	"landingpress/internal/models"
)

// LandingStore persists landing page documents. The document body lives in
// a JSONB column; identity and publish state live in regular columns that
// always win over whatever the payload claims.
type LandingStore struct {
	db *sql.DB
}

// NewLandingStore creates a new LandingStore with the given database connection.
func NewLandingStore(db *sql.DB) *LandingStore {
	return &LandingStore{db: db}
}

// scanPage builds a LandingPage from a doc payload plus the server-owned
// columns.
func scanPage(doc []byte, id, tenantID uuid.UUID, country, lang string, active, published bool, createdAt, updatedAt sql.NullTime) (*models.LandingPage, error) {
	p := &models.LandingPage{}
	if len(doc) > 0 {
		if err := json.Unmarshal(doc, p); err != nil {
			return nil, fmt.Errorf("unmarshal landing doc: %w", err)
		}
	}
	p.ID = id
	p.TenantID = tenantID
	p.Country = country
	p.LanguageCode = lang
	p.IsActive = active
	p.IsPublished = published
	if createdAt.Valid {
		p.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		p.UpdatedAt = updatedAt.Time
	}
	return p, nil
}

// Load returns the document for a tenant locale together with the full
// list of locales the tenant has documents for. The document is nil when
// the locale has none.
func (s *LandingStore) Load(ctx context.Context, tenantID uuid.UUID, country, languageCode string) (*models.LandingPage, []models.Locale, error) {
	var (
		doc                  []byte
		id                   uuid.UUID
		active, published    bool
		createdAt, updatedAt sql.NullTime
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, doc, is_active, is_published, created_at, updated_at
		FROM landing_pages
		WHERE tenant_id = $1 AND country = $2 AND language_code = $3
	`, tenantID, country, languageCode).Scan(&id, &doc, &active, &published, &createdAt, &updatedAt)

	var page *models.LandingPage
	switch {
	case err == sql.ErrNoRows:
		page = nil
	case err != nil:
		return nil, nil, fmt.Errorf("load landing page: %w", err)
	default:
		page, err = scanPage(doc, id, tenantID, country, languageCode, active, published, createdAt, updatedAt)
		if err != nil {
			return nil, nil, err
		}
	}

	locales, err := s.ListLocales(ctx, tenantID)
	if err != nil {
		return nil, nil, err
	}
	return page, locales, nil
}

// Save upserts the document payload for a tenant locale and returns the
// stored document with server-assigned identity fields. When Postgres
// rejects the write (constraint or encoding violation) the error is an
// *editor.RemoteError so callers can tell a rejection from a transport
// failure.
func (s *LandingStore) Save(ctx context.Context, tenantID uuid.UUID, country, languageCode string, payload []byte) (*models.LandingPage, error) {
	var (
		doc                  []byte
		id                   uuid.UUID
		active, published    bool
		createdAt, updatedAt sql.NullTime
	)
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO landing_pages (tenant_id, country, language_code, doc)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (tenant_id, country, language_code)
		DO UPDATE SET doc = EXCLUDED.doc, updated_at = NOW()
		RETURNING id, doc, is_active, is_published, created_at, updated_at
	`, tenantID, country, languageCode, payload).Scan(&id, &doc, &active, &published, &createdAt, &updatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			return nil, &editor.RemoteError{Message: pgErr.Message}
		}
		return nil, fmt.Errorf("save landing page: %w", err)
	}
	return scanPage(doc, id, tenantID, country, languageCode, active, published, createdAt, updatedAt)
}

// SetPublished toggles the publish flag for a tenant locale.
func (s *LandingStore) SetPublished(ctx context.Context, tenantID uuid.UUID, country, languageCode string, published bool) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE landing_pages SET is_published = $1, updated_at = NOW()
		WHERE tenant_id = $2 AND country = $3 AND language_code = $4
	`, published, tenantID, country, languageCode)
	if err != nil {
		return fmt.Errorf("set published: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("set published: no document for %s/%s", country, languageCode)
	}
	return nil
}

// DeleteLocale removes a tenant locale's document.
func (s *LandingStore) DeleteLocale(ctx context.Context, tenantID uuid.UUID, country, languageCode string) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM landing_pages
		WHERE tenant_id = $1 AND country = $2 AND language_code = $3
	`, tenantID, country, languageCode)
	if err != nil {
		return fmt.Errorf("delete locale: %w", err)
	}
	return nil
}

// ListLocales returns the locales a tenant has documents for, ordered for
// stable display.
func (s *LandingStore) ListLocales(ctx context.Context, tenantID uuid.UUID) ([]models.Locale, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT country, language_code FROM landing_pages
		WHERE tenant_id = $1
		ORDER BY country, language_code
	`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list locales: %w", err)
	}
	defer rows.Close()

	var locales []models.Locale
	for rows.Next() {
		var l models.Locale
		if err := rows.Scan(&l.Country, &l.LanguageCode); err != nil {
			return nil, fmt.Errorf("scan locale: %w", err)
		}
		locales = append(locales, l)
	}
	return locales, rows.Err()
}

// FindPublished returns the published document for a tenant locale, used
// by the public renderer. Returns nil when the locale has no published
// document.
func (s *LandingStore) FindPublished(ctx context.Context, tenantID uuid.UUID, country, languageCode string) (*models.LandingPage, error) {
	var (
		doc                  []byte
		id                   uuid.UUID
		active, published    bool
		createdAt, updatedAt sql.NullTime
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, doc, is_active, is_published, created_at, updated_at
		FROM landing_pages
		WHERE tenant_id = $1 AND country = $2 AND language_code = $3
		  AND is_published = TRUE AND is_active = TRUE
	`, tenantID, country, languageCode).Scan(&id, &doc, &active, &published, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find published landing page: %w", err)
	}
	return scanPage(doc, id, tenantID, country, languageCode, active, published, createdAt, updatedAt)
}
