// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"testing"

	"github.com/google/uuid"

	"landingpress/internal/models"
)

func strPtr(s string) *string { return &s }

func TestLeadStoreLifecycle(t *testing.T) {
	db := testDB(t)
	tenant := testTenant(t, db)
	s := NewLeadStore(db)

	lead, err := s.Create(&models.Lead{
		TenantID: tenant.ID,
		Name:     "Jane Buyer",
		Email:    "jane@example.com",
		Phone:    strPtr("+40700000000"),
		Message:  strPtr("Interested in bulk pricing."),
		Source:   "contact_form",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if lead.ID == uuid.Nil {
		t.Error("expected server-assigned ID")
	}
	if lead.Status != models.LeadNew {
		t.Errorf("status: got %q, want %q", lead.Status, models.LeadNew)
	}
	if lead.Phone == nil || *lead.Phone != "+40700000000" {
		t.Errorf("phone: got %v", lead.Phone)
	}

	if err := s.UpdateStatus(lead.ID, models.LeadContacted); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	found, err := s.FindByID(lead.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found.Status != models.LeadContacted {
		t.Errorf("status after update: got %q", found.Status)
	}

	if err := s.Delete(lead.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	found, _ = s.FindByID(lead.ID)
	if found != nil {
		t.Error("expected nil after delete")
	}
}

func TestLeadStoreListByTenantStatusFilter(t *testing.T) {
	db := testDB(t)
	tenant := testTenant(t, db)
	s := NewLeadStore(db)

	a, _ := s.Create(&models.Lead{TenantID: tenant.ID, Name: "A", Email: "a@example.com", Source: "chat"})
	s.Create(&models.Lead{TenantID: tenant.ID, Name: "B", Email: "b@example.com", Source: "cart"})
	s.UpdateStatus(a.ID, models.LeadQualified)

	all, err := s.ListByTenant(tenant.ID, "")
	if err != nil {
		t.Fatalf("ListByTenant: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 leads, got %d", len(all))
	}

	qualified, err := s.ListByTenant(tenant.ID, models.LeadQualified)
	if err != nil {
		t.Fatalf("ListByTenant (filtered): %v", err)
	}
	if len(qualified) != 1 || qualified[0].Name != "A" {
		t.Errorf("filtered leads: got %+v", qualified)
	}
}

func TestLeadStoreUpdateStatusMissing(t *testing.T) {
	db := testDB(t)
	s := NewLeadStore(db)

	if err := s.UpdateStatus(uuid.New(), models.LeadLost); err == nil {
		t.Error("expected error for unknown lead")
	}
}

func TestSequenceStoreLifecycle(t *testing.T) {
	db := testDB(t)
	tenant := testTenant(t, db)
	s := NewSequenceStore(db)

	seq, err := s.Create(&models.EmailSequence{
		TenantID: tenant.ID,
		Name:     "Welcome",
		Trigger:  "lead_created",
		Steps: []models.SequenceStep{
			{Subject: "Hello", Body: "Thanks for reaching out.", DelayDays: 0},
			{Subject: "Still interested?", Body: "Checking in.", DelayDays: 3},
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if seq.Status != models.SequenceDraft {
		t.Errorf("status: got %q, want %q", seq.Status, models.SequenceDraft)
	}
	if len(seq.Steps) != 2 || seq.Steps[1].DelayDays != 3 {
		t.Errorf("steps round-trip: got %+v", seq.Steps)
	}

	seq.Name = "Welcome v2"
	seq.Steps = seq.Steps[:1]
	updated, err := s.Update(seq)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Name != "Welcome v2" || len(updated.Steps) != 1 {
		t.Errorf("after update: name=%q steps=%d", updated.Name, len(updated.Steps))
	}

	if err := s.SetStatus(seq.ID, models.SequenceActive); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	found, _ := s.FindByID(seq.ID)
	if found == nil || found.Status != models.SequenceActive {
		t.Errorf("status after activation: got %+v", found)
	}

	list, err := s.ListByTenant(tenant.ID)
	if err != nil {
		t.Fatalf("ListByTenant: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("expected 1 sequence, got %d", len(list))
	}

	if err := s.Delete(seq.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	found, _ = s.FindByID(seq.ID)
	if found != nil {
		t.Error("expected nil after delete")
	}
}

func TestKnowledgeStoreBulkInsertAndList(t *testing.T) {
	db := testDB(t)
	tenant := testTenant(t, db)
	s := NewKnowledgeStore(db)

	entries := []models.KnowledgeEntry{
		{Kind: models.KnowledgeProduct, Name: "Oak Table", Description: "Solid oak, 4 seats", Price: strPtr("499 EUR")},
		{Kind: models.KnowledgeProduct, Name: "Oak Chair", Description: "Matching chair", Price: strPtr("99 EUR")},
		{Kind: models.KnowledgeService, Name: "Assembly", Description: "In-home assembly"},
	}
	stored, err := s.BulkInsert(tenant.ID, "catalog.pdf", entries)
	if err != nil {
		t.Fatalf("BulkInsert: %v", err)
	}
	if len(stored) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(stored))
	}
	for _, e := range stored {
		if e.TenantID != tenant.ID {
			t.Errorf("entry %q tenant: got %s", e.Name, e.TenantID)
		}
		if e.Source != "catalog.pdf" {
			t.Errorf("entry %q source: got %q", e.Name, e.Source)
		}
	}

	products, err := s.ListByTenant(tenant.ID, models.KnowledgeProduct)
	if err != nil {
		t.Fatalf("ListByTenant (products): %v", err)
	}
	if len(products) != 2 {
		t.Errorf("expected 2 products, got %d", len(products))
	}

	all, err := s.ListByTenant(tenant.ID, "")
	if err != nil {
		t.Fatalf("ListByTenant (all): %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 entries, got %d", len(all))
	}

	if err := s.Delete(stored[0].ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	found, _ := s.FindByID(stored[0].ID)
	if found != nil {
		t.Error("expected nil after delete")
	}
}

func TestTenantStoreFindBySlug(t *testing.T) {
	db := testDB(t)
	tenant := testTenant(t, db)
	s := NewTenantStore(db)

	found, err := s.FindBySlug(tenant.Slug)
	if err != nil {
		t.Fatalf("FindBySlug: %v", err)
	}
	if found == nil || found.ID != tenant.ID {
		t.Fatalf("expected tenant %s, got %+v", tenant.ID, found)
	}

	// Deactivated tenants are invisible to the public resolver.
	if err := s.SetActive(tenant.ID, false); err != nil {
		t.Fatalf("SetActive: %v", err)
	}
	found, err = s.FindBySlug(tenant.Slug)
	if err != nil {
		t.Fatalf("FindBySlug (inactive): %v", err)
	}
	if found != nil {
		t.Error("expected nil for deactivated tenant")
	}

	missing, err := s.FindBySlug("no-such-tenant")
	if err != nil {
		t.Fatalf("FindBySlug (missing): %v", err)
	}
	if missing != nil {
		t.Error("expected nil for unknown slug")
	}
}
