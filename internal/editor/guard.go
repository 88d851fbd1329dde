// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package editor implements the per-operator editing session for one
// tenant's landing pages: locale selection with stale-response guarding,
// the load/normalize cycle, the save/reload cycle, publishing, and the
// locale copy/sync operations.
package editor

import "sync"

// Token identifies one load request. Tokens increase monotonically; only
// the most recently issued token's result may be applied.
type Token uint64

// Guard tracks in-flight load requests so that out-of-order completions
// never overwrite newer state with older data. Two admin requests can race
// on the same session (rapid locale switches), so allocation and the
// staleness check are mutex-protected.
type Guard struct {
	mu      sync.Mutex
	current Token
}

// BeginLoad allocates the next token and records it as current.
func (g *Guard) BeginLoad() Token {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.current++
	return g.current
}

// IsStale reports whether a newer token has been allocated since t.
func (g *Guard) IsStale(t Token) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return t != g.current
}
