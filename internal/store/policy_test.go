// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"testing"

	"github.com/google/uuid"

	"landingpress/internal/models"
)

func TestPolicyStoreUpsert(t *testing.T) {
	db := testDB(t)
	tenant := testTenant(t, db)
	s := NewPolicyStore(db)

	created, err := s.Upsert(&models.Policy{
		TenantID: tenant.ID,
		Type:     models.PolicyReturns,
		Title:    "Returns",
		FieldsData: map[string]string{
			"return_days": "30",
		},
		IsActive: true,
	})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Error("expected server-assigned ID")
	}
	if created.FieldsData["return_days"] != "30" {
		t.Errorf("fields: got %+v", created.FieldsData)
	}

	// Same type again replaces instead of duplicating.
	updated, err := s.Upsert(&models.Policy{
		TenantID: tenant.ID,
		Type:     models.PolicyReturns,
		Title:    "Returns & Refunds",
		FieldsData: map[string]string{
			"return_days": "14",
			"refund_days": "5",
		},
		IsActive: true,
	})
	if err != nil {
		t.Fatalf("second Upsert: %v", err)
	}
	if updated.ID != created.ID {
		t.Errorf("upsert must keep the row: got %s then %s", created.ID, updated.ID)
	}
	if updated.Title != "Returns & Refunds" {
		t.Errorf("title: got %q", updated.Title)
	}
	if updated.FieldsData["return_days"] != "14" {
		t.Errorf("fields after upsert: got %+v", updated.FieldsData)
	}
}

func TestPolicyStoreFindByType(t *testing.T) {
	db := testDB(t)
	tenant := testTenant(t, db)
	s := NewPolicyStore(db)

	// Not found.
	p, err := s.FindByType(tenant.ID, models.PolicyPrivacy)
	if err != nil {
		t.Fatalf("FindByType (not found): %v", err)
	}
	if p != nil {
		t.Error("expected nil for absent policy")
	}

	if _, err := s.Upsert(&models.Policy{
		TenantID:   tenant.ID,
		Type:       models.PolicyPrivacy,
		Title:      "Privacy",
		FieldsData: map[string]string{"company_name": "Acme"},
		IsActive:   true,
	}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	p, err = s.FindByType(tenant.ID, models.PolicyPrivacy)
	if err != nil {
		t.Fatalf("FindByType: %v", err)
	}
	if p == nil {
		t.Fatal("expected policy")
	}
	if p.FieldsData["company_name"] != "Acme" {
		t.Errorf("fields: got %+v", p.FieldsData)
	}
}

func TestPolicyStoreListAndDelete(t *testing.T) {
	db := testDB(t)
	tenant := testTenant(t, db)
	s := NewPolicyStore(db)

	for _, typ := range []models.PolicyType{models.PolicyReturns, models.PolicyShipping} {
		if _, err := s.Upsert(&models.Policy{
			TenantID: tenant.ID,
			Type:     typ,
			Title:    string(typ),
			IsActive: true,
		}); err != nil {
			t.Fatalf("Upsert %s: %v", typ, err)
		}
	}

	policies, err := s.ListByTenant(tenant.ID)
	if err != nil {
		t.Fatalf("ListByTenant: %v", err)
	}
	if len(policies) != 2 {
		t.Errorf("expected 2 policies, got %d", len(policies))
	}

	if err := s.Delete(tenant.ID, models.PolicyShipping); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	policies, _ = s.ListByTenant(tenant.ID)
	if len(policies) != 1 || policies[0].Type != models.PolicyReturns {
		t.Errorf("policies after delete: got %+v", policies)
	}
}
