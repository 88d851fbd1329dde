// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package blocks defines the typed content blocks a landing page is
// assembled from, and renders an ordered block list to HTML. The block set
// is a closed union: decoding dispatches on the "type" discriminator, and
// unknown types are carried through undecoded so the renderer can skip
// them without failing the whole document.
package blocks

import (
	"encoding/json"
	"fmt"
)

// Kind discriminates the block payload types.
type Kind string

const (
	KindSplit        Kind = "split"
	KindCard         Kind = "card"
	KindAccordion    Kind = "accordion"
	KindPricing      Kind = "pricing"
	KindTestimonials Kind = "testimonials"
	KindSteps        Kind = "steps"
	KindStaticBanner Kind = "static_banner"
	KindTable        Kind = "table"
)

// TextPosition places step text relative to its media.
type TextPosition string

const (
	TextLeft  TextPosition = "left"
	TextRight TextPosition = "right"
	TextAbove TextPosition = "above"
	TextBelow TextPosition = "below"
)

// Payload is implemented by every block data type. The unexported method
// keeps the union closed to this package.
type Payload interface {
	kind() Kind
}

// SplitData is a two-column section with media on one side and text on
// the other.
type SplitData struct {
	Title         string `json:"title"`
	Content       string `json:"content"`
	MediaURL      string `json:"media_url"`
	MediaPosition string `json:"media_position"` // "left" or "right"
	CTAText       string `json:"cta_text"`
	CTAURL        string `json:"cta_url"`
}

// CardData is a grid of cards, each with media, title, and text.
type CardData struct {
	Title string `json:"title"`
	Cards []Card `json:"cards"`
}

// Card is one entry in a card grid.
type Card struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	MediaURL string `json:"media_url"`
	LinkURL  string `json:"link_url"`
}

// AccordionData is a list of expandable question/answer items.
type AccordionData struct {
	Title string          `json:"title"`
	Items []AccordionItem `json:"items"`
}

// AccordionItem is one expandable entry.
type AccordionItem struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// PricingData is a set of purchasable plans.
type PricingData struct {
	Title string        `json:"title"`
	Plans []PricingPlan `json:"plans"`
}

// PricingPlan is one plan in a pricing block. Popular plans render with a
// highlight badge.
type PricingPlan struct {
	Title           string   `json:"title"`
	OriginalPrice   string   `json:"original_price"`
	DiscountedPrice string   `json:"discounted_price"`
	Popular         bool     `json:"popular"`
	Content         []string `json:"content"`
}

// TestimonialsData is a rotating set of customer quotes.
type TestimonialsData struct {
	Title        string        `json:"title"`
	Testimonials []Testimonial `json:"testimonials"`
}

// Testimonial is one customer quote.
type Testimonial struct {
	Quote    string `json:"quote"`
	Author   string `json:"author"`
	Role     string `json:"role"`
	PhotoURL string `json:"photo_url"`
}

// StepsData is a numbered how-it-works sequence.
type StepsData struct {
	Title string `json:"title"`
	Steps []Step `json:"steps"`
}

// Step is one entry in a steps block. TextPosition defaults to "right"
// during normalization.
type Step struct {
	Title        string       `json:"title"`
	Content      string       `json:"content"`
	MediaURL     string       `json:"media_url"`
	MediaType    string       `json:"media_type"` // "image" or "video"
	TextPosition TextPosition `json:"text_position"`
}

// StaticBannerData is a fixed full-width banner placed between sections.
type StaticBannerData struct {
	Headline        string `json:"headline"`
	Subheadline     string `json:"subheadline"`
	BackgroundURL   string `json:"background_url"`
	BackgroundColor string `json:"background_color"`
	CTAText         string `json:"cta_text"`
	CTAURL          string `json:"cta_url"`
}

// TableData is a comparison or spec table.
type TableData struct {
	Title   string     `json:"title"`
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

func (*SplitData) kind() Kind        { return KindSplit }
func (*CardData) kind() Kind         { return KindCard }
func (*AccordionData) kind() Kind    { return KindAccordion }
func (*PricingData) kind() Kind      { return KindPricing }
func (*TestimonialsData) kind() Kind { return KindTestimonials }
func (*StepsData) kind() Kind        { return KindSteps }
func (*StaticBannerData) kind() Kind { return KindStaticBanner }
func (*TableData) kind() Kind        { return KindTable }

// Block is one typed content section on a landing page. Order in the
// document's block list is rendering order.
//
// Data is nil when Kind is not a recognized type; such blocks are skipped
// by the renderer and preserved verbatim on re-save via rawData.
type Block struct {
	Kind     Kind    `json:"-"`
	Name     string  `json:"-"`
	AnchorID string  `json:"-"`
	Data     Payload `json:"-"`

	// rawData preserves the payload of unrecognized kinds so a save
	// round-trip doesn't destroy data written by a newer version.
	rawData json.RawMessage
}

// Known reports whether the block's kind decoded to a typed payload.
func (b *Block) Known() bool {
	return b.Data != nil
}

// blockJSON is the wire shape of a block.
type blockJSON struct {
	Type     Kind            `json:"type"`
	Name     string          `json:"name,omitempty"`
	AnchorID string          `json:"anchor_id,omitempty"`
	Data     json.RawMessage `json:"data"`
}

// UnmarshalJSON decodes a block, dispatching on the type discriminator.
// Unknown types are not an error: the block is kept with a nil payload.
func (b *Block) UnmarshalJSON(raw []byte) error {
	var w blockJSON
	if err := json.Unmarshal(raw, &w); err != nil {
		return fmt.Errorf("decode block: %w", err)
	}

	b.Kind = w.Type
	b.Name = w.Name
	b.AnchorID = w.AnchorID
	b.Data = nil
	b.rawData = w.Data

	payload := newPayload(w.Type)
	if payload == nil {
		return nil
	}
	if len(w.Data) > 0 {
		if err := json.Unmarshal(w.Data, payload); err != nil {
			return fmt.Errorf("decode %s block data: %w", w.Type, err)
		}
	}
	b.Data = payload
	return nil
}

// MarshalJSON encodes the block back into its wire shape. Unknown kinds
// re-emit the raw payload untouched.
func (b Block) MarshalJSON() ([]byte, error) {
	w := blockJSON{
		Type:     b.Kind,
		Name:     b.Name,
		AnchorID: b.AnchorID,
	}
	if b.Data != nil {
		data, err := json.Marshal(b.Data)
		if err != nil {
			return nil, fmt.Errorf("encode %s block data: %w", b.Kind, err)
		}
		w.Data = data
	} else {
		w.Data = b.rawData
	}
	return json.Marshal(w)
}

// newPayload returns a zero payload value for a kind, or nil for kinds
// this version does not recognize.
func newPayload(k Kind) Payload {
	switch k {
	case KindSplit:
		return &SplitData{}
	case KindCard:
		return &CardData{}
	case KindAccordion:
		return &AccordionData{}
	case KindPricing:
		return &PricingData{}
	case KindTestimonials:
		return &TestimonialsData{}
	case KindSteps:
		return &StepsData{}
	case KindStaticBanner:
		return &StaticBannerData{}
	case KindTable:
		return &TableData{}
	default:
		return nil
	}
}
