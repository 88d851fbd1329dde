// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package blocks

import (
	"regexp"
	"strings"
)

var (
	// nonAnchorChars matches anything that isn't a letter, digit, space,
	// or hyphen after lowercasing.
	nonAnchorChars = regexp.MustCompile(`[^a-z0-9\s-]`)
	// hyphenRuns collapses consecutive hyphens into one.
	hyphenRuns = regexp.MustCompile(`-{2,}`)
)

// Anchor returns the in-page navigation id for a block: the explicit
// AnchorID when the editor set one, otherwise a slug derived from the
// block name. Menu items and footer links target these anchors.
//
// Example: "Why It Works!" → "why-it-works".
func Anchor(b *Block) string {
	if b.AnchorID != "" {
		return b.AnchorID
	}
	return Slugify(b.Name)
}

// Slugify lowercases, strips non-alphanumerics, and collapses whitespace
// and hyphen runs into single hyphens with no leading or trailing hyphen.
func Slugify(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	result = nonAnchorChars.ReplaceAllString(result, "")
	result = strings.Join(strings.Fields(result), "-")
	result = hyphenRuns.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}
