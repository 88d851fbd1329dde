// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package landing

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"landingpress/internal/models"
)

// serverOwnedFields are stripped from save payloads. The backend is the
// sole authority for identity and timestamps.
var serverOwnedFields = []string{"id", "tenant_id", "created_at", "updated_at"}

// Default constructs the document skeleton used when a locale has no
// persisted document yet: one placeholder slide, a default menu, and the
// currency derived from the country.
func Default(tenantID uuid.UUID, country, languageCode string) *models.LandingPage {
	c := CurrencyFor(country)
	p := &models.LandingPage{
		TenantID:     tenantID,
		Country:      country,
		LanguageCode: languageCode,
		LogoText:     "Your Brand",
		LogoPosition: models.LogoLeft,
		MenuItems: []models.MenuItem{
			{Label: "Home", URL: "#", Enabled: true},
			{Label: "Pricing", URL: "#pricing", Enabled: true},
			{Label: "Contact", URL: "#contact", Enabled: true},
		},
		PrimaryColor:   "#111827",
		SecondaryColor: "#6b7280",
		Currency:       c.Code,
		CurrencySymbol: c.Symbol,
		HeroSlides: []models.HeroSlide{{
			Headline:    "Welcome",
			Subheadline: "Start building your page",
			IsCarousel:  true,
		}},
		ShowCart: true,
		IsActive: true,
	}
	Normalize(p)
	return p
}

// SavePayload serializes a document for persistence with the server-owned
// fields removed. Repeated saves of the same content therefore produce
// identical payloads regardless of what the server assigned in between.
func SavePayload(p *models.LandingPage) ([]byte, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("reshape document: %w", err)
	}
	for _, field := range serverOwnedFields {
		delete(doc, field)
	}

	out, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	return out, nil
}

// CopyToCountry returns a deep copy of the document re-targeted at another
// country: server-owned fields cleared, country substituted, and currency
// recomputed from the target country.
func CopyToCountry(p *models.LandingPage, targetCountry string) (*models.LandingPage, error) {
	dup, err := clone(p)
	if err != nil {
		return nil, err
	}

	c := CurrencyFor(targetCountry)
	dup.ID = uuid.Nil
	dup.Country = targetCountry
	dup.Currency = c.Code
	dup.CurrencySymbol = c.Symbol
	dup.IsPublished = false
	return dup, nil
}

// SyncStructure copies Blocks and HeroSlides from src into dst, leaving
// every other field of dst untouched. This propagates structural and media
// changes across locales; text embedded in the copied structures comes
// along with it (a wholesale copy, not a text-preserving merge).
func SyncStructure(dst, src *models.LandingPage) error {
	srcCopy, err := clone(src)
	if err != nil {
		return err
	}
	dst.Blocks = srcCopy.Blocks
	dst.HeroSlides = srcCopy.HeroSlides
	return nil
}

// clone deep-copies a document through its JSON form. Documents are pure
// data, so the round-trip is lossless.
func clone(p *models.LandingPage) (*models.LandingPage, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("clone document: %w", err)
	}
	var dup models.LandingPage
	if err := json.Unmarshal(raw, &dup); err != nil {
		return nil, fmt.Errorf("clone document: %w", err)
	}
	return &dup, nil
}
