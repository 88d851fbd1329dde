// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"landingpress/internal/extract"
	"landingpress/internal/middleware"
	"landingpress/internal/models"
	"landingpress/internal/store"
)

// maxExtractUpload caps knowledge document uploads (20 MB).
const maxExtractUpload = 20 << 20

// Knowledge groups the admin JSON API endpoints for the knowledge base:
// ingestion through the extraction collaborator, listing, and deletion.
type Knowledge struct {
	knowledgeStore *store.KnowledgeStore
	extractor      extract.Extractor
}

// NewKnowledge creates a new Knowledge handler group. extractor may be
// nil when no extraction service is configured; ingestion then returns 503.
func NewKnowledge(knowledgeStore *store.KnowledgeStore, extractor extract.Extractor) *Knowledge {
	return &Knowledge{
		knowledgeStore: knowledgeStore,
		extractor:      extractor,
	}
}

// Ingest accepts either a multipart document upload (field "file") or a
// JSON body `{"url": ...}`, runs it through the extraction service, and
// stores the returned entries.
func (h *Knowledge) Ingest(w http.ResponseWriter, r *http.Request) {
	if h.extractor == nil {
		writeError(w, http.StatusServiceUnavailable, "extraction service is not configured")
		return
	}

	sess := middleware.SessionFromCtx(r.Context())

	var (
		entries []extract.Entry
		source  string
		err     error
	)

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		r.Body = http.MaxBytesReader(w, r.Body, maxExtractUpload+1024)
		if err := r.ParseMultipartForm(maxExtractUpload); err != nil {
			writeError(w, http.StatusRequestEntityTooLarge, "file too large: maximum size is 20 MB")
			return
		}
		file, header, ferr := r.FormFile("file")
		if ferr != nil {
			writeError(w, http.StatusBadRequest, "no file provided")
			return
		}
		defer file.Close()

		source = header.Filename
		entries, err = h.extractor.ExtractFile(r.Context(), header.Filename, file)
	} else {
		var req struct {
			URL string `json:"url"`
		}
		if !decodeJSON(w, r, &req) {
			return
		}
		if req.URL == "" {
			writeError(w, http.StatusBadRequest, "url is required")
			return
		}
		if !strings.HasPrefix(req.URL, "http://") && !strings.HasPrefix(req.URL, "https://") {
			writeError(w, http.StatusBadRequest, "url must be http or https")
			return
		}
		source = req.URL
		entries, err = h.extractor.ExtractURL(r.Context(), req.URL)
	}

	if err != nil {
		slog.Error("extraction failed", "error", err, "source", source)
		writeError(w, http.StatusBadGateway, "extraction failed")
		return
	}
	if len(entries) == 0 {
		writeJSON(w, http.StatusOK, []models.KnowledgeEntry{})
		return
	}

	toStore := make([]models.KnowledgeEntry, 0, len(entries))
	for _, e := range entries {
		toStore = append(toStore, models.KnowledgeEntry{
			Kind:        e.Kind,
			Name:        e.Name,
			Description: e.Description,
			Price:       e.Price,
		})
	}

	stored, err := h.knowledgeStore.BulkInsert(sess.TenantID, source, toStore)
	if err != nil {
		slog.Error("store knowledge entries failed", "error", err, "source", source)
		writeError(w, http.StatusInternalServerError, "failed to store entries")
		return
	}
	writeJSON(w, http.StatusCreated, stored)
}

// List returns the tenant's knowledge entries, optionally filtered by kind.
func (h *Knowledge) List(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	kind := models.KnowledgeKind(r.URL.Query().Get("kind"))
	switch kind {
	case "", models.KnowledgeIndustryDocument, models.KnowledgeProduct, models.KnowledgeService:
	default:
		writeError(w, http.StatusBadRequest, "unknown knowledge kind")
		return
	}

	entries, err := h.knowledgeStore.ListByTenant(sess.TenantID, kind)
	if err != nil {
		slog.Error("list knowledge entries failed", "error", err)
		writeError(w, http.StatusInternalServerError, "list failed")
		return
	}
	if entries == nil {
		entries = []models.KnowledgeEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

// Delete removes one knowledge entry.
func (h *Knowledge) Delete(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid entry id")
		return
	}

	entry, err := h.knowledgeStore.FindByID(id)
	if err != nil {
		slog.Error("knowledge lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "delete failed")
		return
	}
	if entry == nil || entry.TenantID != sess.TenantID {
		writeError(w, http.StatusNotFound, "entry not found")
		return
	}

	if err := h.knowledgeStore.Delete(id); err != nil {
		slog.Error("delete knowledge entry failed", "error", err)
		writeError(w, http.StatusInternalServerError, "delete failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
