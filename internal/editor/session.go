// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package editor

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"landingpress/internal/landing"
	"landingpress/internal/models"
)

// Backend is the persistence collaborator the session talks to. It is
// satisfied by store.LandingStore; tests substitute fakes.
type Backend interface {
	// Load returns the persisted document for a locale (nil when none
	// exists) together with the tenant's available locales.
	Load(ctx context.Context, tenantID uuid.UUID, country, languageCode string) (*models.LandingPage, []models.Locale, error)

	// Save upserts the stripped document payload for a locale and returns
	// the server-normalized document with assigned identity fields.
	Save(ctx context.Context, tenantID uuid.UUID, country, languageCode string, payload []byte) (*models.LandingPage, error)

	// SetPublished toggles the publish flag for a locale.
	SetPublished(ctx context.Context, tenantID uuid.UUID, country, languageCode string, published bool) error
}

// RemoteError is a structured error payload returned by the backend, as
// opposed to a transport failure. Callers surface the two differently.
type RemoteError struct {
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("backend rejected request: %s", e.Message)
}

var (
	// ErrStale marks a load result that arrived after a newer request was
	// issued. Discarded silently — never user-visible.
	ErrStale = errors.New("stale load result discarded")

	// ErrLocaleMismatch marks a response whose document belongs to a
	// different locale than requested. Discarded like a stale result.
	ErrLocaleMismatch = errors.New("response locale does not match request")

	// ErrNotLoaded is returned by operations that need a current document.
	ErrNotLoaded = errors.New("no document loaded")

	// ErrNeverSaved rejects publishing a document that has never been
	// persisted.
	ErrNeverSaved = errors.New("document must be saved before publishing")

	// ErrTargetExists is the advisory rejection when copying onto a locale
	// that already has a document and force was not set.
	ErrTargetExists = errors.New("target locale already has a document")

	// ErrNoSource is returned by SyncFrom when the source locale has no
	// persisted document.
	ErrNoSource = errors.New("source locale has no document")
)

// Session is one operator's editing state for one tenant. All exported
// methods are safe for concurrent use; backend calls happen outside the
// lock so a slow load never blocks a newer one.
type Session struct {
	tenantID uuid.UUID
	backend  Backend
	guard    Guard

	mu      sync.Mutex
	country string
	lang    string
	doc     *models.LandingPage
	locales []models.Locale
}

// NewSession creates an editing session for a tenant.
func NewSession(tenantID uuid.UUID, backend Backend) *Session {
	return &Session{tenantID: tenantID, backend: backend}
}

// Document returns the currently loaded document, or nil before the first
// load. The returned pointer is the live document: edits through it are
// what Save persists.
func (s *Session) Document() *models.LandingPage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc
}

// Locales returns the tenant's known available locales.
func (s *Session) Locales() []models.Locale {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Locale, len(s.locales))
	copy(out, s.locales)
	return out
}

// Replace swaps in an edited document for the current locale. The admin
// API binds incoming form state through this before Save.
func (s *Session) Replace(doc *models.LandingPage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return ErrNotLoaded
	}
	if !doc.LocaleMatches(s.country, s.lang) {
		return ErrLocaleMismatch
	}
	// Server-owned fields always come from the last load, never the client.
	doc.ID = s.doc.ID
	doc.TenantID = s.doc.TenantID
	doc.CreatedAt = s.doc.CreatedAt
	doc.UpdatedAt = s.doc.UpdatedAt
	landing.Normalize(doc)
	s.doc = doc
	return nil
}

// Load fetches and applies the document for a locale.
//
// Only the most recently requested locale's result is ever applied: if a
// newer Load was issued while this one was in flight, the result is
// discarded and ErrStale returned. A response carrying the wrong locale is
// likewise discarded. Not-found and transport failures both resolve to the
// default document — the editor must always have something to bind to.
func (s *Session) Load(ctx context.Context, country, languageCode string) (*models.LandingPage, error) {
	token := s.guard.BeginLoad()

	doc, locales, err := s.backend.Load(ctx, s.tenantID, country, languageCode)

	s.mu.Lock()
	defer s.mu.Unlock()

	// The staleness check applies to every branch, including errors: a
	// stale failure must not clobber newer state with a default document.
	if s.guard.IsStale(token) {
		return nil, ErrStale
	}

	if err != nil {
		// Fail open: editing never blocks on a read failure.
		doc = landing.Default(s.tenantID, country, languageCode)
	} else if doc == nil {
		doc = landing.Default(s.tenantID, country, languageCode)
	} else if !doc.LocaleMatches(country, languageCode) {
		return nil, ErrLocaleMismatch
	} else {
		landing.Normalize(doc)
	}

	if locales != nil {
		s.locales = locales
	}
	s.country = country
	s.lang = languageCode
	s.doc = doc
	return doc, nil
}

// Save persists the current document and reloads the same locale so that
// server-assigned fields (ids, timestamps) are reconciled back in. The
// document is read at call time, not captured earlier, so edits made
// during a slow previous save are never lost.
//
// On failure the in-memory document is left untouched; the returned error
// is a *RemoteError for structured backend rejections and a plain error
// for transport failures.
func (s *Session) Save(ctx context.Context) (*models.LandingPage, error) {
	s.mu.Lock()
	doc := s.doc
	country, lang := s.country, s.lang
	s.mu.Unlock()

	if doc == nil {
		return nil, ErrNotLoaded
	}

	payload, err := landing.SavePayload(doc)
	if err != nil {
		return nil, err
	}

	if _, err := s.backend.Save(ctx, s.tenantID, country, lang, payload); err != nil {
		return nil, err
	}

	// Reload to reconcile server-assigned fields. Errors here fall back to
	// the default document per the load contract.
	reloaded, err := s.Load(ctx, country, lang)
	if err == ErrStale || err == ErrLocaleMismatch {
		return nil, err
	}
	return reloaded, err
}

// Publish toggles the publish flag for the current locale. Publishing is
// a distinct action from saving and is rejected until the document has
// been saved at least once.
func (s *Session) Publish(ctx context.Context, published bool) error {
	s.mu.Lock()
	doc := s.doc
	country, lang := s.country, s.lang
	s.mu.Unlock()

	if doc == nil {
		return ErrNotLoaded
	}
	if !doc.Saved() {
		return ErrNeverSaved
	}

	if err := s.backend.SetPublished(ctx, s.tenantID, country, lang, published); err != nil {
		return err
	}

	s.mu.Lock()
	if s.doc == doc {
		s.doc.IsPublished = published
	}
	s.mu.Unlock()
	return nil
}

// CopyToLocale duplicates the current document into a target country,
// recomputing currency for the target. The existence check against the
// known locale list is advisory: it lets the operator confirm an
// overwrite, but the backend remains the final arbiter.
func (s *Session) CopyToLocale(ctx context.Context, targetCountry string, force bool) error {
	s.mu.Lock()
	doc := s.doc
	lang := s.lang
	exists := false
	for _, l := range s.locales {
		if l.Country == targetCountry && l.LanguageCode == lang {
			exists = true
			break
		}
	}
	s.mu.Unlock()

	if doc == nil {
		return ErrNotLoaded
	}
	if exists && !force {
		return ErrTargetExists
	}

	dup, err := landing.CopyToCountry(doc, targetCountry)
	if err != nil {
		return err
	}
	payload, err := landing.SavePayload(dup)
	if err != nil {
		return err
	}

	saved, err := s.backend.Save(ctx, s.tenantID, targetCountry, lang, payload)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.rememberLocale(saved.Country, saved.LanguageCode)
	s.mu.Unlock()
	return nil
}

// SyncFrom copies Blocks and HeroSlides from a source locale into the
// current document, preserving every other field. The merged document is
// not persisted until the operator saves.
func (s *Session) SyncFrom(ctx context.Context, srcCountry, srcLanguageCode string) error {
	s.mu.Lock()
	doc := s.doc
	s.mu.Unlock()

	if doc == nil {
		return ErrNotLoaded
	}

	src, _, err := s.backend.Load(ctx, s.tenantID, srcCountry, srcLanguageCode)
	if err != nil {
		return err
	}
	if src == nil {
		return ErrNoSource
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc != doc {
		// The operator switched locale while the source loaded; applying
		// the merge now would target the wrong document.
		return ErrStale
	}
	return landing.SyncStructure(s.doc, src)
}

// rememberLocale adds a locale to the known list if absent. Callers hold
// the session lock.
func (s *Session) rememberLocale(country, languageCode string) {
	for _, l := range s.locales {
		if l.Country == country && l.LanguageCode == languageCode {
			return
		}
	}
	s.locales = append(s.locales, models.Locale{Country: country, LanguageCode: languageCode})
}
