// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the persisted entities of the landing-page
// product: per-locale landing-page documents, policies, leads, email
// sequences, knowledge entries, media, tenants, and operators.
package models

import (
	"time"

	"github.com/google/uuid"

	"landingpress/internal/blocks"
)

// LogoPosition controls where the logo renders in the page header.
type LogoPosition string

const (
	LogoLeft   LogoPosition = "left"
	LogoCenter LogoPosition = "center"
)

// BackgroundType distinguishes image and video hero backgrounds.
type BackgroundType string

const (
	BackgroundImage BackgroundType = "image"
	BackgroundVideo BackgroundType = "video"
)

// Locale identifies one variant of a tenant's landing page.
type Locale struct {
	Country      string `json:"country"`
	LanguageCode string `json:"language_code"`
}

// MenuItem is one entry in the header navigation.
type MenuItem struct {
	Label   string `json:"label"`
	URL     string `json:"url"`
	Enabled bool   `json:"enabled"`
}

// TextStyle carries the typography attributes paired with each editable
// text field. The normalization pass guarantees every field is non-empty
// before a document reaches the renderer.
type TextStyle struct {
	FontFamily string `json:"font_family"`
	FontSize   string `json:"font_size"`
	Color      string `json:"color"`
	Bold       bool   `json:"bold"`
	Italic     bool   `json:"italic"`
	Alignment  string `json:"alignment"`
}

// HeroSlide is one full-width banner frame. IsCarousel slides rotate with
// their siblings; non-carousel slides render as fixed static banners.
type HeroSlide struct {
	Headline         string         `json:"headline"`
	HeadlineStyle    TextStyle      `json:"headline_style"`
	Subheadline      string         `json:"subheadline"`
	SubheadlineStyle TextStyle      `json:"subheadline_style"`
	Content          string         `json:"content"`
	ContentStyle     TextStyle      `json:"content_style"`
	BackgroundURL    string         `json:"background_url"`
	BackgroundType   BackgroundType `json:"background_type"`
	BackgroundColor  string         `json:"background_color"`
	CTAText          string         `json:"cta_text"`
	CTAURL           string         `json:"cta_url"`
	IsCarousel       bool           `json:"is_carousel"`
}

// FooterLink is one entry in the footer link list.
type FooterLink struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// PolicyToggle gates whether a policy link renders in the footer.
type PolicyToggle struct {
	Enabled bool `json:"enabled"`
}

// FooterConfig holds the footer content, styling, and policy link gating.
// PolicyContent maps policy slugs to rendered HTML.
type FooterConfig struct {
	Links           []FooterLink            `json:"links"`
	BrandName       string                  `json:"brand_name"`
	CompanyName     string                  `json:"company_name"`
	ContactEmail    string                  `json:"contact_email"`
	Style           TextStyle               `json:"style"`
	BackgroundColor string                  `json:"background_color"`
	PolicyContent   map[string]string       `json:"policy_content,omitempty"`
	Policies        map[string]PolicyToggle `json:"policies,omitempty"`
}

// LandingPage is a tenant's page configuration for one locale. Exactly one
// active document exists per (tenant, country, language) triple.
//
// ID, TenantID, CreatedAt, and UpdatedAt are server-owned: the save path
// strips them before persistence and the backend reassigns them.
type LandingPage struct {
	ID           uuid.UUID `json:"id,omitempty"`
	TenantID     uuid.UUID `json:"tenant_id,omitempty"`
	Country      string    `json:"country"`
	LanguageCode string    `json:"language_code"`

	LogoURL      string       `json:"logo_url"`
	LogoText     string       `json:"logo_text"`
	LogoPosition LogoPosition `json:"logo_position"`
	MenuItems    []MenuItem   `json:"menu_items"`

	ShowSearch  bool   `json:"show_search"`
	SearchURL   string `json:"search_url"`
	ShowAccount bool   `json:"show_account"`
	AccountURL  string `json:"account_url"`
	ShowCart    bool   `json:"show_cart"`
	CartURL     string `json:"cart_url"`

	PrimaryColor   string `json:"primary_color"`
	SecondaryColor string `json:"secondary_color"`
	Currency       string `json:"currency"`
	CurrencySymbol string `json:"currency_symbol"`

	Announcements []string       `json:"announcements"`
	HeroSlides    []HeroSlide    `json:"hero_slides"`
	Blocks        []blocks.Block `json:"blocks"`
	Footer        FooterConfig   `json:"footer"`

	// Legacy scalar hero fields. Documents written before the carousel
	// existed carry these instead of hero_slides; the load path migrates
	// them into a single synthetic slide.
	HeroHeadline    string `json:"hero_headline,omitempty"`
	HeroSubheadline string `json:"hero_subheadline,omitempty"`
	HeroCTAText     string `json:"hero_cta_text,omitempty"`

	IsActive    bool `json:"is_active"`
	IsPublished bool `json:"is_published"`

	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// Saved reports whether the document has ever been persisted. Publish is
// rejected for unsaved documents.
func (p *LandingPage) Saved() bool {
	return p.ID != uuid.Nil
}

// LocaleMatches reports whether the document belongs to the given locale.
// Used to reject responses from a misbehaving backend returning the wrong
// locale's document.
func (p *LandingPage) LocaleMatches(country, languageCode string) bool {
	return p.Country == country && p.LanguageCode == languageCode
}
