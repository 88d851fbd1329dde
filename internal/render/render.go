// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render produces the public storefront HTML: the full landing
// page (header, announcements, hero, content blocks, footer) and the
// per-type policy pages. Templates are embedded; documents are expected
// to be normalized before they reach the renderer.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"landingpress/internal/blocks"
	"landingpress/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// PolicyLink is a footer link to an enabled policy page.
type PolicyLink struct {
	Label string
	URL   string
}

// PageData is the data handed to the landing page template.
type PageData struct {
	Tenant *models.Tenant
	Doc    *models.LandingPage

	// Blocks is the pre-rendered content block HTML.
	Blocks template.HTML

	CarouselSlides []models.HeroSlide
	StaticSlides   []models.HeroSlide
	PolicyLinks    []PolicyLink

	HomeURL string
	LeadURL string
}

// PolicyPageData is the data handed to the policy page template.
type PolicyPageData struct {
	Tenant  *models.Tenant
	Doc     *models.LandingPage
	Title   string
	Content template.HTML
	BackURL string
}

// Renderer renders storefront pages. Safe for concurrent use.
type Renderer struct {
	page   *template.Template
	blocks *blocks.Renderer
}

// New parses the embedded storefront templates.
func New() (*Renderer, error) {
	br, err := blocks.NewRenderer()
	if err != nil {
		return nil, err
	}

	funcs := template.FuncMap{
		"styleAttr": styleAttr,
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
	}
	tmpl, err := template.New("storefront").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse storefront templates: %w", err)
	}
	return &Renderer{page: tmpl, blocks: br}, nil
}

// Page renders the full landing page for one locale.
func (r *Renderer) Page(w io.Writer, tenant *models.Tenant, doc *models.LandingPage) error {
	var body bytes.Buffer
	cart := blocks.Cart{
		Enabled:        doc.ShowCart,
		AddURL:         doc.CartURL,
		Currency:       doc.Currency,
		CurrencySymbol: doc.CurrencySymbol,
	}
	if err := r.blocks.Render(&body, doc.Blocks, cart); err != nil {
		return fmt.Errorf("render blocks: %w", err)
	}

	data := &PageData{
		Tenant:      tenant,
		Doc:         doc,
		Blocks:      template.HTML(body.String()),
		PolicyLinks: policyLinks(tenant.Slug, doc),
		HomeURL:     localePath(tenant.Slug, doc),
		LeadURL:     "/" + tenant.Slug + "/leads",
	}
	for _, s := range doc.HeroSlides {
		if s.IsCarousel {
			data.CarouselSlides = append(data.CarouselSlides, s)
		} else {
			data.StaticSlides = append(data.StaticSlides, s)
		}
	}

	if err := r.page.ExecuteTemplate(w, "page.html", data); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}

// Policy renders one policy page. The landing document supplies the
// header and footer chrome; contentHTML is the already-substituted,
// markdown-rendered policy body.
func (r *Renderer) Policy(w io.Writer, tenant *models.Tenant, doc *models.LandingPage, title, contentHTML string) error {
	data := &PolicyPageData{
		Tenant:  tenant,
		Doc:     doc,
		Title:   title,
		Content: template.HTML(contentHTML),
		BackURL: localePath(tenant.Slug, doc),
	}
	if err := r.page.ExecuteTemplate(w, "policy.html", data); err != nil {
		return fmt.Errorf("render policy page: %w", err)
	}
	return nil
}

func localePath(slug string, doc *models.LandingPage) string {
	return "/" + slug + "/" + doc.Country + "/" + doc.LanguageCode
}

// policyLinks resolves the footer's policy toggles into links. Only
// enabled toggles with a known type render.
func policyLinks(slug string, doc *models.LandingPage) []PolicyLink {
	labels := map[string]string{
		string(models.PolicyReturns):  "Returns & Refunds",
		string(models.PolicyShipping): "Shipping",
		string(models.PolicyPrivacy):  "Privacy Policy",
		string(models.PolicyTerms):    "Terms & Conditions",
	}
	// Stable render order regardless of map iteration.
	order := []string{
		string(models.PolicyReturns),
		string(models.PolicyShipping),
		string(models.PolicyPrivacy),
		string(models.PolicyTerms),
	}

	var links []PolicyLink
	for _, typ := range order {
		toggle, ok := doc.Footer.Policies[typ]
		if !ok || !toggle.Enabled {
			continue
		}
		links = append(links, PolicyLink{
			Label: labels[typ],
			URL:   localePath(slug, doc) + "/policies/" + typ,
		})
	}
	return links
}

// styleAttr converts a TextStyle into an inline CSS declaration list.
func styleAttr(s models.TextStyle) template.CSS {
	var b strings.Builder
	if s.FontFamily != "" {
		fmt.Fprintf(&b, "font-family:%s;", s.FontFamily)
	}
	if s.FontSize != "" {
		fmt.Fprintf(&b, "font-size:%s;", s.FontSize)
	}
	if s.Color != "" {
		fmt.Fprintf(&b, "color:%s;", s.Color)
	}
	if s.Bold {
		b.WriteString("font-weight:700;")
	}
	if s.Italic {
		b.WriteString("font-style:italic;")
	}
	if s.Alignment != "" {
		fmt.Fprintf(&b, "text-align:%s;", s.Alignment)
	}
	return template.CSS(b.String())
}
