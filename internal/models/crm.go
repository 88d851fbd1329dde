// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// LeadStatus represents the pipeline state of a captured lead.
type LeadStatus string

const (
	LeadNew       LeadStatus = "new"
	LeadContacted LeadStatus = "contacted"
	LeadQualified LeadStatus = "qualified"
	LeadConverted LeadStatus = "converted"
	LeadLost      LeadStatus = "lost"
)

// Lead is a contact captured from the public storefront (contact form,
// cart checkout, chat widget).
type Lead struct {
	ID        uuid.UUID  `json:"id"`
	TenantID  uuid.UUID  `json:"tenant_id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     *string    `json:"phone,omitempty"`
	Message   *string    `json:"message,omitempty"`
	Source    string     `json:"source"`
	Status    LeadStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// SequenceStatus represents the lifecycle state of an email sequence.
type SequenceStatus string

const (
	SequenceDraft  SequenceStatus = "draft"
	SequenceActive SequenceStatus = "active"
	SequencePaused SequenceStatus = "paused"
)

// SequenceStep is one email in a sequence, sent DelayDays after the
// previous step (or the trigger, for the first step).
type SequenceStep struct {
	Subject   string `json:"subject"`
	Body      string `json:"body"`
	DelayDays int    `json:"delay_days"`
}

// EmailSequence is a tenant's automated follow-up campaign for leads.
// Steps are stored as a JSONB column.
type EmailSequence struct {
	ID        uuid.UUID      `json:"id"`
	TenantID  uuid.UUID      `json:"tenant_id"`
	Name      string         `json:"name"`
	Trigger   string         `json:"trigger"`
	Status    SequenceStatus `json:"status"`
	Steps     []SequenceStep `json:"steps"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}
