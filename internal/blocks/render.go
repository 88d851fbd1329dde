// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package blocks

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"log/slog"
)

//go:embed templates/*.html
var templateFS embed.FS

// Cart is the ambient cart context injected into block rendering. The
// renderer has no dependency on a particular cart implementation — it only
// emits the URLs and currency the caller provides.
type Cart struct {
	Enabled        bool
	AddURL         string
	Currency       string
	CurrencySymbol string
}

// blockView is the data handed to each block template.
type blockView struct {
	Anchor string
	Cart   Cart
	Data   Payload
}

// Renderer renders an ordered block list to HTML. It is safe for
// concurrent use: templates are parsed once and rendering is pure.
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses the embedded per-kind block templates.
func NewRenderer() (*Renderer, error) {
	funcs := template.FuncMap{
		"add": func(a, b int) int { return a + b },
	}
	tmpl, err := template.New("blocks").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse block templates: %w", err)
	}
	return &Renderer{templates: tmpl}, nil
}

// Render writes the HTML for every recognized block in order. Unknown
// kinds are skipped with a warning — a document written by a newer version
// must still render its remaining blocks.
func (r *Renderer) Render(w io.Writer, list []Block, cart Cart) error {
	for i := range list {
		b := &list[i]
		if !b.Known() {
			slog.Warn("skipping unknown block kind", "kind", b.Kind, "name", b.Name)
			continue
		}
		if err := r.RenderBlock(w, b, cart); err != nil {
			return err
		}
	}
	return nil
}

// RenderBlock writes the HTML for a single block. Returns an error for
// unknown kinds; callers iterating a document should use Render, which
// skips them.
func (r *Renderer) RenderBlock(w io.Writer, b *Block, cart Cart) error {
	if !b.Known() {
		return fmt.Errorf("render block: unknown kind %q", b.Kind)
	}

	view := blockView{
		Anchor: Anchor(b),
		Cart:   cart,
		Data:   b.Data,
	}

	name := templateName(b.Kind)
	if err := r.templates.ExecuteTemplate(w, name, view); err != nil {
		return fmt.Errorf("render %s block: %w", b.Kind, err)
	}
	return nil
}

// templateName maps a kind to its embedded template file name. The switch
// is exhaustive over the closed union; adding a kind without a template is
// a compile-visible, localized change here.
func templateName(k Kind) string {
	switch k {
	case KindSplit:
		return "split.html"
	case KindCard:
		return "card.html"
	case KindAccordion:
		return "accordion.html"
	case KindPricing:
		return "pricing.html"
	case KindTestimonials:
		return "testimonials.html"
	case KindSteps:
		return "steps.html"
	case KindStaticBanner:
		return "static_banner.html"
	case KindTable:
		return "table.html"
	}
	return ""
}
