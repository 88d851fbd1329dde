// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"landingpress/internal/middleware"
	"landingpress/internal/models"
	"landingpress/internal/store"
)

// CRM groups the admin JSON API endpoints for leads and email sequences.
type CRM struct {
	leadStore     *store.LeadStore
	sequenceStore *store.SequenceStore
}

// NewCRM creates a new CRM handler group.
func NewCRM(leadStore *store.LeadStore, sequenceStore *store.SequenceStore) *CRM {
	return &CRM{
		leadStore:     leadStore,
		sequenceStore: sequenceStore,
	}
}

// leadStatuses is the set of valid pipeline states.
var leadStatuses = map[models.LeadStatus]bool{
	models.LeadNew:       true,
	models.LeadContacted: true,
	models.LeadQualified: true,
	models.LeadConverted: true,
	models.LeadLost:      true,
}

// sequenceStatuses is the set of valid sequence lifecycle states.
var sequenceStatuses = map[models.SequenceStatus]bool{
	models.SequenceDraft:  true,
	models.SequenceActive: true,
	models.SequencePaused: true,
}

// ListLeads returns the tenant's leads, optionally filtered by status.
func (h *CRM) ListLeads(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	status := models.LeadStatus(r.URL.Query().Get("status"))
	if status != "" && !leadStatuses[status] {
		writeError(w, http.StatusBadRequest, "unknown lead status")
		return
	}

	leads, err := h.leadStore.ListByTenant(sess.TenantID, status)
	if err != nil {
		slog.Error("list leads failed", "error", err)
		writeError(w, http.StatusInternalServerError, "list failed")
		return
	}
	if leads == nil {
		leads = []models.Lead{}
	}
	writeJSON(w, http.StatusOK, leads)
}

// UpdateLeadStatus moves a lead through the pipeline.
func (h *CRM) UpdateLeadStatus(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid lead id")
		return
	}

	var req struct {
		Status models.LeadStatus `json:"status"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if !leadStatuses[req.Status] {
		writeError(w, http.StatusBadRequest, "unknown lead status")
		return
	}

	lead, err := h.leadStore.FindByID(id)
	if err != nil {
		slog.Error("lead lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "update failed")
		return
	}
	if lead == nil || lead.TenantID != sess.TenantID {
		writeError(w, http.StatusNotFound, "lead not found")
		return
	}

	if err := h.leadStore.UpdateStatus(id, req.Status); err != nil {
		slog.Error("update lead status failed", "error", err)
		writeError(w, http.StatusInternalServerError, "update failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// DeleteLead removes a lead.
func (h *CRM) DeleteLead(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid lead id")
		return
	}

	lead, err := h.leadStore.FindByID(id)
	if err != nil {
		slog.Error("lead lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "delete failed")
		return
	}
	if lead == nil || lead.TenantID != sess.TenantID {
		writeError(w, http.StatusNotFound, "lead not found")
		return
	}

	if err := h.leadStore.Delete(id); err != nil {
		slog.Error("delete lead failed", "error", err)
		writeError(w, http.StatusInternalServerError, "delete failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// ListSequences returns the tenant's email sequences.
func (h *CRM) ListSequences(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	sequences, err := h.sequenceStore.ListByTenant(sess.TenantID)
	if err != nil {
		slog.Error("list sequences failed", "error", err)
		writeError(w, http.StatusInternalServerError, "list failed")
		return
	}
	if sequences == nil {
		sequences = []models.EmailSequence{}
	}
	writeJSON(w, http.StatusOK, sequences)
}

type sequenceRequest struct {
	Name    string                `json:"name"`
	Trigger string                `json:"trigger"`
	Steps   []models.SequenceStep `json:"steps"`
}

func (r *sequenceRequest) validate() string {
	if r.Name == "" {
		return "Name is required."
	}
	for _, s := range r.Steps {
		if s.Subject == "" {
			return "Each step needs a subject."
		}
		if s.DelayDays < 0 {
			return "Step delays cannot be negative."
		}
	}
	return ""
}

// CreateSequence creates a new sequence in draft state.
func (h *CRM) CreateSequence(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	var req sequenceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	created, err := h.sequenceStore.Create(&models.EmailSequence{
		TenantID: sess.TenantID,
		Name:     req.Name,
		Trigger:  req.Trigger,
		Steps:    req.Steps,
	})
	if err != nil {
		slog.Error("create sequence failed", "error", err)
		writeError(w, http.StatusInternalServerError, "create failed")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// UpdateSequence replaces a sequence's name, trigger and steps.
func (h *CRM) UpdateSequence(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid sequence id")
		return
	}

	var req sequenceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	existing, err := h.sequenceStore.FindByID(id)
	if err != nil {
		slog.Error("sequence lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "update failed")
		return
	}
	if existing == nil || existing.TenantID != sess.TenantID {
		writeError(w, http.StatusNotFound, "sequence not found")
		return
	}

	existing.Name = req.Name
	existing.Trigger = req.Trigger
	existing.Steps = req.Steps
	updated, err := h.sequenceStore.Update(existing)
	if err != nil {
		slog.Error("update sequence failed", "error", err)
		writeError(w, http.StatusInternalServerError, "update failed")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// SetSequenceStatus activates, pauses or re-drafts a sequence.
func (h *CRM) SetSequenceStatus(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid sequence id")
		return
	}

	var req struct {
		Status models.SequenceStatus `json:"status"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if !sequenceStatuses[req.Status] {
		writeError(w, http.StatusBadRequest, "unknown sequence status")
		return
	}

	existing, err := h.sequenceStore.FindByID(id)
	if err != nil {
		slog.Error("sequence lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "update failed")
		return
	}
	if existing == nil || existing.TenantID != sess.TenantID {
		writeError(w, http.StatusNotFound, "sequence not found")
		return
	}

	if err := h.sequenceStore.SetStatus(id, req.Status); err != nil {
		slog.Error("set sequence status failed", "error", err)
		writeError(w, http.StatusInternalServerError, "update failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// DeleteSequence removes a sequence.
func (h *CRM) DeleteSequence(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid sequence id")
		return
	}

	existing, err := h.sequenceStore.FindByID(id)
	if err != nil {
		slog.Error("sequence lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "delete failed")
		return
	}
	if existing == nil || existing.TenantID != sess.TenantID {
		writeError(w, http.StatusNotFound, "sequence not found")
		return
	}

	if err := h.sequenceStore.Delete(id); err != nil {
		slog.Error("delete sequence failed", "error", err)
		writeError(w, http.StatusInternalServerError, "delete failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
