// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"landingpress/internal/cache"
	"landingpress/internal/middleware"
	"landingpress/internal/models"
	"landingpress/internal/policy"
	"landingpress/internal/store"
)

// Policies groups the admin JSON API endpoints for policy documents.
// Policies are keyed by type per tenant (one returns policy, one privacy
// policy, and so on), so the type is the natural resource identifier.
type Policies struct {
	policyStore *store.PolicyStore
	tenantStore *store.TenantStore
	pageCache   *cache.PageCache
}

// NewPolicies creates a new Policies handler group.
func NewPolicies(policyStore *store.PolicyStore, tenantStore *store.TenantStore, pageCache *cache.PageCache) *Policies {
	return &Policies{
		policyStore: policyStore,
		tenantStore: tenantStore,
		pageCache:   pageCache,
	}
}

// List returns the tenant's policies.
func (h *Policies) List(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	policies, err := h.policyStore.ListByTenant(sess.TenantID)
	if err != nil {
		slog.Error("list policies failed", "error", err)
		writeError(w, http.StatusInternalServerError, "list failed")
		return
	}
	if policies == nil {
		policies = []models.Policy{}
	}
	writeJSON(w, http.StatusOK, policies)
}

// Get returns one policy by type, or the type's default template when
// none is stored yet.
func (h *Policies) Get(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	typ := models.PolicyType(chi.URLParam(r, "type"))

	p, err := h.policyStore.FindByType(sess.TenantID, typ)
	if err != nil {
		slog.Error("find policy failed", "error", err, "type", typ)
		writeError(w, http.StatusInternalServerError, "lookup failed")
		return
	}
	if p == nil {
		tmpl := policy.DefaultTemplate(typ)
		if tmpl == "" {
			writeError(w, http.StatusNotFound, "unknown policy type")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"type":             typ,
			"default_template": tmpl,
		})
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// Put creates or replaces a policy of the given type.
func (h *Policies) Put(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	typ := chi.URLParam(r, "type")

	var req struct {
		Title      string            `json:"title"`
		Content    string            `json:"content"`
		FieldsData map[string]string `json:"fields_data"`
		IsActive   *bool             `json:"is_active"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if msg := validatePolicy(typ, req.Title, req.Content); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		writeError(w, http.StatusBadRequest, "Title is required.")
		return
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	stored, err := h.policyStore.Upsert(&models.Policy{
		TenantID:   sess.TenantID,
		Type:       models.PolicyType(typ),
		Title:      req.Title,
		Content:    req.Content,
		FieldsData: req.FieldsData,
		IsActive:   active,
	})
	if err != nil {
		slog.Error("upsert policy failed", "error", err, "type", typ)
		writeError(w, http.StatusInternalServerError, "save failed")
		return
	}

	h.invalidate(r, typ)
	writeJSON(w, http.StatusOK, stored)
}

// Delete removes a policy of the given type.
func (h *Policies) Delete(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	typ := chi.URLParam(r, "type")

	if err := h.policyStore.Delete(sess.TenantID, models.PolicyType(typ)); err != nil {
		slog.Error("delete policy failed", "error", err, "type", typ)
		writeError(w, http.StatusInternalServerError, "delete failed")
		return
	}

	h.invalidate(r, typ)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Preview renders a policy to HTML without saving: the submitted fields
// are substituted into the submitted content (or the type's default
// template) and the result run through markdown.
func (h *Policies) Preview(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	typ := chi.URLParam(r, "type")

	var req struct {
		Content    string            `json:"content"`
		FieldsData map[string]string `json:"fields_data"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if msg := validatePolicy(typ, "", req.Content); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	html, err := policy.ContentHTML(&models.Policy{
		TenantID:   sess.TenantID,
		Type:       models.PolicyType(typ),
		Content:    req.Content,
		FieldsData: req.FieldsData,
	})
	if err != nil {
		slog.Error("policy preview failed", "error", err, "type", typ)
		writeError(w, http.StatusInternalServerError, "preview failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"html": html})
}

// invalidate drops the cached public policy page for this tenant/type.
func (h *Policies) invalidate(r *http.Request, typ string) {
	if h.pageCache == nil {
		return
	}
	sess := middleware.SessionFromCtx(r.Context())
	tenant, err := h.tenantStore.FindByID(sess.TenantID)
	if err != nil || tenant == nil {
		return
	}
	h.pageCache.InvalidateTenant(r.Context(), tenant.Slug)
}
