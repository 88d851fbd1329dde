// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/google/uuid"

	"landingpress/internal/cache"
	"landingpress/internal/editor"
	"landingpress/internal/middleware"
	"landingpress/internal/models"
	"landingpress/internal/session"
	"landingpress/internal/store"
)

// Landing groups the admin JSON API endpoints for the landing-page
// editor. Each operator session owns one editor.Session carrying the
// staleness guard and the current document; the registry maps session
// cookie IDs to editor state.
type Landing struct {
	landingStore *store.LandingStore
	tenantStore  *store.TenantStore
	pageCache    *cache.PageCache

	mu      sync.Mutex
	editors map[string]*editor.Session
}

// NewLanding creates a new Landing handler group. pageCache may be nil
// when Valkey is not configured.
func NewLanding(landingStore *store.LandingStore, tenantStore *store.TenantStore, pageCache *cache.PageCache) *Landing {
	return &Landing{
		landingStore: landingStore,
		tenantStore:  tenantStore,
		pageCache:    pageCache,
		editors:      make(map[string]*editor.Session),
	}
}

// editorFor returns the editor session bound to the request's cookie,
// creating one on first use.
func (h *Landing) editorFor(r *http.Request, sess *session.Data) *editor.Session {
	sid := session.ID(r)

	h.mu.Lock()
	defer h.mu.Unlock()
	es, ok := h.editors[sid]
	if !ok {
		es = editor.NewSession(sess.TenantID, h.landingStore)
		h.editors[sid] = es
	}
	return es
}

// ensureLocale loads the requested locale into the editor session unless
// it is already the current document.
func ensureLocale(ctx context.Context, es *editor.Session, country, lang string) error {
	if doc := es.Document(); doc != nil && doc.LocaleMatches(country, lang) {
		return nil
	}
	_, err := es.Load(ctx, country, lang)
	return err
}

// invalidate drops the cached public pages for one locale.
func (h *Landing) invalidate(ctx context.Context, tenantID uuid.UUID, country, lang string) {
	if h.pageCache == nil {
		return
	}
	tenant, err := h.tenantStore.FindByID(tenantID)
	if err != nil || tenant == nil {
		return
	}
	h.pageCache.InvalidateLocale(ctx, tenant.Slug, country, lang)
}

// Get returns the requested locale's document and the tenant's available
// locales. A locale with no stored document resolves to the default
// document, never an error.
func (h *Landing) Get(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	country, lang := r.URL.Query().Get("country"), r.URL.Query().Get("lang")
	if country == "" || lang == "" {
		writeError(w, http.StatusBadRequest, "country and lang are required")
		return
	}

	es := h.editorFor(r, sess)
	doc, err := es.Load(r.Context(), country, lang)
	if err != nil {
		if errors.Is(err, editor.ErrStale) || errors.Is(err, editor.ErrLocaleMismatch) {
			writeError(w, http.StatusConflict, "load superseded by a newer request")
			return
		}
		slog.Error("landing load failed", "error", err, "country", country, "lang", lang)
		writeError(w, http.StatusInternalServerError, "load failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"document":          doc,
		"available_locales": es.Locales(),
	})
}

// Put replaces the current document with the request body and persists
// it. The body carries a stripped document; server-owned fields in the
// payload are ignored.
func (h *Landing) Put(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	country, lang := r.URL.Query().Get("country"), r.URL.Query().Get("lang")
	if country == "" || lang == "" {
		writeError(w, http.StatusBadRequest, "country and lang are required")
		return
	}

	var doc models.LandingPage
	r.Body = http.MaxBytesReader(w, r.Body, maxDocumentBytes)
	if !decodeJSON(w, r, &doc) {
		return
	}
	if doc.Country == "" {
		doc.Country = country
	}
	if doc.LanguageCode == "" {
		doc.LanguageCode = lang
	}
	if !doc.LocaleMatches(country, lang) {
		writeError(w, http.StatusBadRequest, "document locale does not match query")
		return
	}

	es := h.editorFor(r, sess)
	if err := ensureLocale(r.Context(), es, country, lang); err != nil && !errors.Is(err, editor.ErrStale) {
		slog.Error("landing load before save failed", "error", err)
		writeError(w, http.StatusInternalServerError, "load failed")
		return
	}
	if err := es.Replace(&doc); err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}

	saved, err := es.Save(r.Context())
	if err != nil {
		var remote *editor.RemoteError
		if errors.As(err, &remote) {
			writeError(w, http.StatusBadGateway, remote.Error())
			return
		}
		slog.Error("landing save failed", "error", err, "country", country, "lang", lang)
		writeError(w, http.StatusInternalServerError, "save failed")
		return
	}

	h.invalidate(r.Context(), sess.TenantID, country, lang)
	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"document": saved,
	})
}

// Publish flips the published flag for a locale. Rejected with 409 until
// the document has been saved at least once.
func (h *Landing) Publish(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	var req struct {
		Country   string `json:"country"`
		Lang      string `json:"lang"`
		Published bool   `json:"published"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Country == "" || req.Lang == "" {
		writeError(w, http.StatusBadRequest, "country and lang are required")
		return
	}

	es := h.editorFor(r, sess)
	if err := ensureLocale(r.Context(), es, req.Country, req.Lang); err != nil && !errors.Is(err, editor.ErrStale) {
		slog.Error("landing load before publish failed", "error", err)
		writeError(w, http.StatusInternalServerError, "load failed")
		return
	}

	if err := es.Publish(r.Context(), req.Published); err != nil {
		if errors.Is(err, editor.ErrNeverSaved) {
			writeError(w, http.StatusConflict, "document must be saved before publishing")
			return
		}
		slog.Error("publish failed", "error", err, "country", req.Country, "lang", req.Lang)
		writeError(w, http.StatusInternalServerError, "publish failed")
		return
	}

	h.invalidate(r.Context(), sess.TenantID, req.Country, req.Lang)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Delete removes a locale's document.
func (h *Landing) Delete(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	country, lang := r.URL.Query().Get("country"), r.URL.Query().Get("lang")
	if country == "" || lang == "" {
		writeError(w, http.StatusBadRequest, "country and lang are required")
		return
	}

	if err := h.landingStore.DeleteLocale(r.Context(), sess.TenantID, country, lang); err != nil {
		slog.Error("delete locale failed", "error", err, "country", country, "lang", lang)
		writeError(w, http.StatusInternalServerError, "delete failed")
		return
	}

	h.invalidate(r.Context(), sess.TenantID, country, lang)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Locales lists the tenant's stored locales.
func (h *Landing) Locales(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	locales, err := h.landingStore.ListLocales(r.Context(), sess.TenantID)
	if err != nil {
		slog.Error("list locales failed", "error", err)
		writeError(w, http.StatusInternalServerError, "list failed")
		return
	}
	if locales == nil {
		locales = []models.Locale{}
	}
	writeJSON(w, http.StatusOK, locales)
}

// Copy duplicates the source locale's document to a target country.
// Returns 409 when the target already has a document, unless forced.
func (h *Landing) Copy(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	var req struct {
		SourceCountry string `json:"source_country"`
		SourceLang    string `json:"source_lang"`
		TargetCountry string `json:"target_country"`
		Force         bool   `json:"force"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.SourceCountry == "" || req.SourceLang == "" || req.TargetCountry == "" {
		writeError(w, http.StatusBadRequest, "source_country, source_lang and target_country are required")
		return
	}

	es := h.editorFor(r, sess)
	if err := ensureLocale(r.Context(), es, req.SourceCountry, req.SourceLang); err != nil && !errors.Is(err, editor.ErrStale) {
		slog.Error("landing load before copy failed", "error", err)
		writeError(w, http.StatusInternalServerError, "load failed")
		return
	}

	if err := es.CopyToLocale(r.Context(), req.TargetCountry, req.Force); err != nil {
		if errors.Is(err, editor.ErrTargetExists) {
			writeError(w, http.StatusConflict, "target locale already has a document")
			return
		}
		slog.Error("copy locale failed", "error", err, "target", req.TargetCountry)
		writeError(w, http.StatusInternalServerError, "copy failed")
		return
	}

	h.invalidate(r.Context(), sess.TenantID, req.TargetCountry, req.SourceLang)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Sync copies the source locale's structure (blocks and hero slides)
// into the current document without saving it.
func (h *Landing) Sync(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	var req struct {
		SourceCountry string `json:"source_country"`
		SourceLang    string `json:"source_lang"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.SourceCountry == "" || req.SourceLang == "" {
		writeError(w, http.StatusBadRequest, "source_country and source_lang are required")
		return
	}

	es := h.editorFor(r, sess)
	if err := es.SyncFrom(r.Context(), req.SourceCountry, req.SourceLang); err != nil {
		switch {
		case errors.Is(err, editor.ErrNotLoaded):
			writeError(w, http.StatusConflict, "load a document before syncing")
		case errors.Is(err, editor.ErrNoSource):
			writeError(w, http.StatusNotFound, "source locale has no document")
		case errors.Is(err, editor.ErrStale):
			writeError(w, http.StatusConflict, "document changed during sync")
		default:
			slog.Error("sync failed", "error", err, "source", req.SourceCountry)
			writeError(w, http.StatusInternalServerError, "sync failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"document": es.Document(),
	})
}
