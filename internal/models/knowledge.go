// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// KnowledgeKind classifies entries in a tenant's knowledge base.
type KnowledgeKind string

const (
	KnowledgeIndustryDocument KnowledgeKind = "industry_document"
	KnowledgeProduct          KnowledgeKind = "product"
	KnowledgeService          KnowledgeKind = "service"
)

// KnowledgeEntry is one structured record extracted from an uploaded
// document or scraped URL by the external extraction collaborator.
type KnowledgeEntry struct {
	ID          uuid.UUID     `json:"id"`
	TenantID    uuid.UUID     `json:"tenant_id"`
	Kind        KnowledgeKind `json:"kind"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Price       *string       `json:"price,omitempty"`
	Source      string        `json:"source"` // original filename or URL
	CreatedAt   time.Time     `json:"created_at"`
}
