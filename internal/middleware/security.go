// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import "net/http"

// Storefront pages are meant to be embeddable previews inside the console,
// so framing is allowed same-origin only. No CSP here: block HTML carries
// inline styles and the page templates load Tailwind from a CDN.
var securityHeaders = map[string]string{
	"X-Content-Type-Options": "nosniff",
	"X-Frame-Options":        "SAMEORIGIN",
	"X-XSS-Protection":       "0",
	"Referrer-Policy":        "strict-origin-when-cross-origin",
	"Permissions-Policy":     "interest-cohort=()",
}

// SecureHeaders sets baseline security headers on every response.
func SecureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for name, value := range securityHeaders {
			w.Header().Set(name, value)
		}
		next.ServeHTTP(w, r)
	})
}
