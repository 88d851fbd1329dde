// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// PolicyType identifies a policy kind with a default template.
type PolicyType string

const (
	PolicyReturns  PolicyType = "returns"
	PolicyShipping PolicyType = "shipping"
	PolicyPrivacy  PolicyType = "privacy"
	PolicyTerms    PolicyType = "terms"
)

// Policy is an admin-managed policy document. Content is produced by
// substituting FieldsData values into the per-type template; the raw
// template is kept so edits to fields re-render cleanly.
type Policy struct {
	ID         uuid.UUID         `json:"id"`
	TenantID   uuid.UUID         `json:"tenant_id"`
	Type       PolicyType        `json:"type"`
	Title      string            `json:"title"`
	Content    string            `json:"content"`
	FieldsData map[string]string `json:"fields_data"`
	IsActive   bool              `json:"is_active"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}
