package blocks

import (
	"bytes"
	"strings"
	"testing"
)

func testRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	return r
}

// TestRenderSkipsUnknownKinds verifies that an unrecognized block type
// renders nothing while its neighbors render normally.
func TestRenderSkipsUnknownKinds(t *testing.T) {
	r := testRenderer(t)

	list := []Block{
		{Kind: KindSplit, Name: "About Us", Data: &SplitData{Title: "Our Story", Content: "Founded in a garage."}},
		{Kind: "hologram", Name: "Future"},
		{Kind: KindTable, Data: &TableData{Headers: []string{"Feature"}, Rows: [][]string{{"Fast"}}}},
	}

	var buf bytes.Buffer
	if err := r.Render(&buf, list, Cart{}); err != nil {
		t.Fatalf("Render: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Our Story") {
		t.Error("split block missing from output")
	}
	if !strings.Contains(out, "Fast") {
		t.Error("table block missing from output")
	}
	if strings.Contains(out, "hologram") || strings.Contains(out, "Future") {
		t.Error("unknown block leaked into output")
	}
}

func TestRenderAllKinds(t *testing.T) {
	r := testRenderer(t)

	list := []Block{
		{Kind: KindSplit, Data: &SplitData{Title: "Split"}},
		{Kind: KindCard, Data: &CardData{Cards: []Card{{Title: "Card One"}}}},
		{Kind: KindAccordion, Data: &AccordionData{Items: []AccordionItem{{Title: "Q", Content: "A"}}}},
		{Kind: KindPricing, Data: &PricingData{Plans: []PricingPlan{{Title: "Basic", DiscountedPrice: "10"}}}},
		{Kind: KindTestimonials, Data: &TestimonialsData{Testimonials: []Testimonial{{Quote: "Great", Author: "Ana"}}}},
		{Kind: KindSteps, Data: &StepsData{Steps: []Step{{Title: "Step One", TextPosition: TextRight}}}},
		{Kind: KindStaticBanner, Data: &StaticBannerData{Headline: "Banner"}},
		{Kind: KindTable, Data: &TableData{Rows: [][]string{{"cell"}}}},
	}

	var buf bytes.Buffer
	if err := r.Render(&buf, list, Cart{Currency: "USD", CurrencySymbol: "$"}); err != nil {
		t.Fatalf("Render: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Split", "Card One", "Great", "Step One", "Banner", "cell"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

// TestRenderPricingCart verifies the injected cart context drives the
// add-to-cart form: present when enabled, absent otherwise.
func TestRenderPricingCart(t *testing.T) {
	r := testRenderer(t)

	b := Block{Kind: KindPricing, Name: "Plans", Data: &PricingData{
		Plans: []PricingPlan{{Title: "Pro", DiscountedPrice: "49"}},
	}}

	var with bytes.Buffer
	if err := r.RenderBlock(&with, &b, Cart{Enabled: true, AddURL: "/cart/add", CurrencySymbol: "$"}); err != nil {
		t.Fatalf("RenderBlock: %v", err)
	}
	if !strings.Contains(with.String(), `action="/cart/add"`) {
		t.Error("cart-enabled output missing add-to-cart form")
	}
	if !strings.Contains(with.String(), "$49") {
		t.Error("cart-enabled output missing currency symbol on price")
	}

	var without bytes.Buffer
	if err := r.RenderBlock(&without, &b, Cart{}); err != nil {
		t.Fatalf("RenderBlock: %v", err)
	}
	if strings.Contains(without.String(), "Add to cart") {
		t.Error("cart-disabled output should not contain add-to-cart form")
	}
}

// TestRenderAnchors verifies blocks emit their derived anchors.
func TestRenderAnchors(t *testing.T) {
	r := testRenderer(t)

	b := Block{Kind: KindAccordion, Name: "Why It Works!", Data: &AccordionData{}}
	var buf bytes.Buffer
	if err := r.RenderBlock(&buf, &b, Cart{}); err != nil {
		t.Fatalf("RenderBlock: %v", err)
	}
	if !strings.Contains(buf.String(), `id="why-it-works"`) {
		t.Errorf("output missing derived anchor: %s", buf.String())
	}
}
