// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package landing

import (
	"landingpress/internal/blocks"
	"landingpress/internal/models"
)

// Typography defaults back-filled by the normalization pass. Persisted
// documents may omit any style attribute; the renderer never checks for
// missing values because Normalize guarantees them.
const (
	DefaultHeadingFont = "Josefin Sans"
	DefaultBodyFont    = "Cormorant Garamond"
	DefaultAlignment   = "center"

	defaultHeadlineSize    = "3rem"
	defaultSubheadlineSize = "1.5rem"
	defaultContentSize     = "1.125rem"
	defaultTextColor       = "#1f2937"
	defaultHeroTextColor   = "#ffffff"
)

// Normalize applies the full defaulting pass to a loaded document, in
// order: legacy hero migration, per-slide typography defaults, and
// per-block nested-collection defaults. It mutates the document in place
// and is idempotent: normalizing an already-normalized document changes
// nothing.
func Normalize(p *models.LandingPage) {
	migrateLegacyHero(p)

	for i := range p.HeroSlides {
		normalizeSlide(&p.HeroSlides[i])
	}

	for i := range p.Blocks {
		normalizeBlock(&p.Blocks[i])
	}

	if p.LogoPosition == "" {
		p.LogoPosition = models.LogoLeft
	}
	if p.Currency == "" || p.CurrencySymbol == "" {
		c := CurrencyFor(p.Country)
		p.Currency = c.Code
		p.CurrencySymbol = c.Symbol
	}
	normalizeFooter(&p.Footer)
}

// migrateLegacyHero synthesizes a single carousel slide from the legacy
// scalar hero fields when the document has no slides. Documents written
// before the carousel existed carry only the scalars.
func migrateLegacyHero(p *models.LandingPage) {
	if len(p.HeroSlides) > 0 || p.HeroHeadline == "" {
		return
	}
	p.HeroSlides = []models.HeroSlide{{
		Headline:    p.HeroHeadline,
		Subheadline: p.HeroSubheadline,
		CTAText:     p.HeroCTAText,
		IsCarousel:  true,
	}}
}

func normalizeSlide(s *models.HeroSlide) {
	defaultStyle(&s.HeadlineStyle, DefaultHeadingFont, defaultHeadlineSize, defaultHeroTextColor)
	defaultStyle(&s.SubheadlineStyle, DefaultBodyFont, defaultSubheadlineSize, defaultHeroTextColor)
	defaultStyle(&s.ContentStyle, DefaultBodyFont, defaultContentSize, defaultHeroTextColor)
	if s.BackgroundType == "" {
		s.BackgroundType = models.BackgroundImage
	}
}

// defaultStyle back-fills the empty attributes of a text style.
// Bold/italic are plain booleans and need no defaulting.
func defaultStyle(st *models.TextStyle, font, size, color string) {
	if st.FontFamily == "" {
		st.FontFamily = font
	}
	if st.FontSize == "" {
		st.FontSize = size
	}
	if st.Color == "" {
		st.Color = color
	}
	if st.Alignment == "" {
		st.Alignment = DefaultAlignment
	}
}

// normalizeBlock defaults the nested collections of block payloads that
// carry per-item presentation fields.
func normalizeBlock(b *blocks.Block) {
	switch data := b.Data.(type) {
	case *blocks.StepsData:
		for i := range data.Steps {
			if data.Steps[i].TextPosition == "" {
				data.Steps[i].TextPosition = blocks.TextRight
			}
			if data.Steps[i].MediaType == "" {
				data.Steps[i].MediaType = "image"
			}
		}
	case *blocks.AccordionData:
		// Items need no style defaults today; the case stays so new item
		// fields get a single place to default.
	}
}

func normalizeFooter(f *models.FooterConfig) {
	defaultStyle(&f.Style, DefaultBodyFont, defaultContentSize, defaultTextColor)
	if f.BackgroundColor == "" {
		f.BackgroundColor = "#111827"
	}
}
