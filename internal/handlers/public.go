// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"landingpress/internal/cache"
	"landingpress/internal/landing"
	"landingpress/internal/models"
	"landingpress/internal/policy"
	"landingpress/internal/render"
	"landingpress/internal/store"
)

// Public groups the storefront handlers: the rendered landing page per
// locale, the policy pages, and lead capture. Rendered HTML is cached in
// Valkey and invalidated by the admin API on save/publish/delete.
type Public struct {
	tenantStore  *store.TenantStore
	landingStore *store.LandingStore
	policyStore  *store.PolicyStore
	leadStore    *store.LeadStore
	renderer     *render.Renderer
	pageCache    *cache.PageCache
}

// NewPublic creates a new Public handler group. pageCache may be nil
// when Valkey is not configured.
func NewPublic(tenantStore *store.TenantStore, landingStore *store.LandingStore, policyStore *store.PolicyStore, leadStore *store.LeadStore, renderer *render.Renderer, pageCache *cache.PageCache) *Public {
	return &Public{
		tenantStore:  tenantStore,
		landingStore: landingStore,
		policyStore:  policyStore,
		leadStore:    leadStore,
		renderer:     renderer,
		pageCache:    pageCache,
	}
}

// Page renders the published landing page for a tenant locale. Unknown
// tenants and unpublished locales are plain 404s.
func (p *Public) Page(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := chi.URLParam(r, "tenant")
	country := chi.URLParam(r, "country")
	lang := chi.URLParam(r, "lang")

	key := cache.PageKey(slug, country, lang)
	if p.pageCache != nil {
		if cached, ok := p.pageCache.Get(ctx, key); ok {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.Write(cached)
			return
		}
	}

	tenant, err := p.tenantStore.FindBySlug(slug)
	if err != nil {
		slog.Error("tenant lookup failed", "error", err, "slug", slug)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if tenant == nil {
		http.NotFound(w, r)
		return
	}

	doc, err := p.landingStore.FindPublished(ctx, tenant.ID, country, lang)
	if err != nil {
		slog.Error("find published page failed", "error", err, "slug", slug, "country", country, "lang", lang)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if doc == nil {
		http.NotFound(w, r)
		return
	}
	landing.Normalize(doc)

	var buf bytes.Buffer
	if err := p.renderer.Page(&buf, tenant, doc); err != nil {
		slog.Error("render landing page failed", "error", err, "slug", slug)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if p.pageCache != nil {
		p.pageCache.Set(ctx, key, buf.Bytes())
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

// Policy renders one policy page for a tenant locale. The slug is the
// policy type; only active policies render, falling back to the type's
// default template when fields exist but no explicit content.
func (p *Public) Policy(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := chi.URLParam(r, "tenant")
	country := chi.URLParam(r, "country")
	lang := chi.URLParam(r, "lang")
	typ := models.PolicyType(chi.URLParam(r, "slug"))

	key := cache.PolicyKey(slug, country, lang, string(typ))
	if p.pageCache != nil {
		if cached, ok := p.pageCache.Get(ctx, key); ok {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.Write(cached)
			return
		}
	}

	tenant, err := p.tenantStore.FindBySlug(slug)
	if err != nil {
		slog.Error("tenant lookup failed", "error", err, "slug", slug)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if tenant == nil {
		http.NotFound(w, r)
		return
	}

	pol, err := p.policyStore.FindByType(tenant.ID, typ)
	if err != nil {
		slog.Error("find policy failed", "error", err, "slug", slug, "type", typ)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if pol == nil || !pol.IsActive {
		http.NotFound(w, r)
		return
	}

	// The landing document supplies the page chrome; fall back to the
	// default document when the locale has none.
	doc, err := p.landingStore.FindPublished(ctx, tenant.ID, country, lang)
	if err != nil || doc == nil {
		doc = landing.Default(tenant.ID, country, lang)
	}
	landing.Normalize(doc)

	html, err := policy.ContentHTML(pol)
	if err != nil {
		slog.Error("render policy content failed", "error", err, "type", typ)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	title := pol.Title
	if title == "" {
		title = string(typ)
	}

	var buf bytes.Buffer
	if err := p.renderer.Policy(&buf, tenant, doc, title, html); err != nil {
		slog.Error("render policy page failed", "error", err, "type", typ)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if p.pageCache != nil {
		p.pageCache.Set(ctx, key, buf.Bytes())
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

// CaptureLead records a contact from the public storefront. Accepts both
// JSON and form submissions.
func (p *Public) CaptureLead(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "tenant")

	tenant, err := p.tenantStore.FindBySlug(slug)
	if err != nil {
		slog.Error("tenant lookup failed", "error", err, "slug", slug)
		writeError(w, http.StatusInternalServerError, "an unexpected error occurred")
		return
	}
	if tenant == nil {
		writeError(w, http.StatusNotFound, "unknown store")
		return
	}

	var req struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Phone   string `json:"phone"`
		Message string `json:"message"`
		Source  string `json:"source"`
	}
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if !decodeJSON(w, r, &req) {
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			writeError(w, http.StatusBadRequest, "invalid form body")
			return
		}
		req.Name = r.FormValue("name")
		req.Email = r.FormValue("email")
		req.Phone = r.FormValue("phone")
		req.Message = r.FormValue("message")
		req.Source = r.FormValue("source")
	}

	if msg := validateLead(req.Name, req.Email, req.Phone, req.Message); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if req.Source == "" || len(req.Source) > maxSourceLen {
		req.Source = "contact_form"
	}

	lead := &models.Lead{
		TenantID: tenant.ID,
		Name:     req.Name,
		Email:    req.Email,
		Source:   req.Source,
	}
	if req.Phone != "" {
		lead.Phone = &req.Phone
	}
	if req.Message != "" {
		lead.Message = &req.Message
	}

	created, err := p.leadStore.Create(lead)
	if err != nil {
		slog.Error("create lead failed", "error", err, "slug", slug)
		writeError(w, http.StatusInternalServerError, "an unexpected error occurred")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"id":      created.ID,
	})
}

// Health is the liveness endpoint.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
