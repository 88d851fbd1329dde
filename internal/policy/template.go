// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package policy renders store policy documents (returns, shipping,
// privacy, terms) from Markdown templates with {key} field substitution.
package policy

import (
	"regexp"

	"landingpress/internal/markdown"
	"landingpress/internal/models"
)

// placeholder matches {key} tokens in a policy template. Keys are
// word characters only, so literal braces in prose survive untouched.
var placeholder = regexp.MustCompile(`\{([A-Za-z0-9_]*)\}`)

// RenderTemplate substitutes {key} placeholders in a policy template with
// the given field values. Placeholders without a matching field are
// stripped rather than left in the output, so a half-configured policy
// never leaks raw template syntax to visitors.
func RenderTemplate(tmpl string, fields map[string]string) string {
	return placeholder.ReplaceAllStringFunc(tmpl, func(m string) string {
		key := m[1 : len(m)-1]
		if v, ok := fields[key]; ok {
			return v
		}
		return ""
	})
}

// ContentHTML renders a policy's effective content as HTML. A policy with
// explicit content wins; otherwise the default template for its type is
// expanded with the policy's field data and converted from Markdown.
func ContentHTML(p *models.Policy) (string, error) {
	src := p.Content
	if src == "" {
		src = RenderTemplate(DefaultTemplate(p.Type), p.FieldsData)
	} else {
		src = RenderTemplate(src, p.FieldsData)
	}
	return markdown.ToHTML(src)
}

// DefaultTemplate returns the built-in Markdown template for a policy
// type. Unknown types get an empty template.
func DefaultTemplate(t models.PolicyType) string {
	switch t {
	case models.PolicyReturns:
		return returnsTemplate
	case models.PolicyShipping:
		return shippingTemplate
	case models.PolicyPrivacy:
		return privacyTemplate
	case models.PolicyTerms:
		return termsTemplate
	default:
		return ""
	}
}

const returnsTemplate = `# Returns Policy

Returns within {return_days} days of delivery are accepted for items in
their original condition.

To start a return, contact us at {contact_email}. Once your return is
approved we will send instructions on how and where to send the package.

Refunds are issued to the original payment method within {refund_days}
business days of receiving the returned item.

{extra_terms}
`

const shippingTemplate = `# Shipping Policy

Orders are processed within {processing_days} business days. Standard
delivery takes {delivery_days} business days.

Shipping costs are calculated at checkout. Orders over {free_shipping_threshold}
qualify for free standard shipping.

For shipping questions contact {contact_email}.

{extra_terms}
`

const privacyTemplate = `# Privacy Policy

{company_name} collects only the information needed to process your order
and provide support: name, contact details, and delivery address.

We never sell personal data. Data is retained for {retention_period} and
can be deleted on request by writing to {contact_email}.

{extra_terms}
`

const termsTemplate = `# Terms of Service

These terms govern purchases from {company_name}.

All prices are shown in the local currency and include applicable taxes
unless stated otherwise. Orders are confirmed by email.

Disputes are governed by the laws of {jurisdiction}. Questions about
these terms can be sent to {contact_email}.

{extra_terms}
`
