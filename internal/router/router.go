// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up the HTTP routes and middleware chains. Routes
// split into two groups: the admin JSON API under /admin/api behind
// session auth and CSRF, and the public storefront keyed by tenant slug.
package router

import (
	"time"

	"github.com/go-chi/chi/v5"

	"landingpress/internal/handlers"
	"landingpress/internal/middleware"
	"landingpress/internal/session"
)

// Handlers bundles every handler group the router mounts.
type Handlers struct {
	Auth      *handlers.Auth
	Landing   *handlers.Landing
	Media     *handlers.Media
	Policies  *handlers.Policies
	CRM       *handlers.CRM
	Knowledge *handlers.Knowledge
	Public    *handlers.Public
}

// New creates the configured chi router with all middleware and route
// groups wired up. secureCookies controls the Secure flag on the CSRF
// cookie and should be true behind TLS.
func New(sessionStore *session.Store, secureCookies bool, h Handlers) chi.Router {
	r := chi.NewRouter()

	// Global middleware.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadSession(sessionStore))

	// Health check — no auth, no CSRF.
	r.Get("/health", handlers.Health)

	// Login is rate limited per client IP to slow credential stuffing.
	loginLimiter := middleware.NewRateLimiter(10, time.Minute)

	r.Route("/admin/api", func(r chi.Router) {
		r.Use(middleware.NewCSRF(secureCookies))

		r.With(loginLimiter.Middleware).Post("/login", h.Auth.Login)
		r.Post("/logout", h.Auth.Logout)

		// Authenticated console API.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)

			r.Route("/landing", func(r chi.Router) {
				r.Get("/", h.Landing.Get)
				r.Put("/", h.Landing.Put)
				r.Delete("/", h.Landing.Delete)
				r.Post("/publish", h.Landing.Publish)
				r.Get("/locales", h.Landing.Locales)
				r.Post("/copy", h.Landing.Copy)
				r.Post("/sync", h.Landing.Sync)
			})

			r.Route("/media", func(r chi.Router) {
				r.Get("/", h.Media.List)
				r.Post("/", h.Media.Upload)
				r.Delete("/{id}", h.Media.Delete)
			})

			r.Route("/policies", func(r chi.Router) {
				r.Get("/", h.Policies.List)
				r.Post("/{type}/preview", h.Policies.Preview)
				r.Get("/{type}", h.Policies.Get)
				r.Put("/{type}", h.Policies.Put)
				r.Delete("/{type}", h.Policies.Delete)
			})

			r.Route("/leads", func(r chi.Router) {
				r.Get("/", h.CRM.ListLeads)
				r.Put("/{id}/status", h.CRM.UpdateLeadStatus)
				r.Delete("/{id}", h.CRM.DeleteLead)
			})

			r.Route("/sequences", func(r chi.Router) {
				r.Get("/", h.CRM.ListSequences)
				r.Post("/", h.CRM.CreateSequence)
				r.Put("/{id}", h.CRM.UpdateSequence)
				r.Put("/{id}/status", h.CRM.SetSequenceStatus)
				r.Delete("/{id}", h.CRM.DeleteSequence)
			})

			r.Route("/knowledge", func(r chi.Router) {
				r.Get("/", h.Knowledge.List)
				r.Post("/", h.Knowledge.Ingest)
				r.Delete("/{id}", h.Knowledge.Delete)
			})
		})
	})

	// Public storefront — tenant slug is the first path segment.
	r.Post("/{tenant}/leads", h.Public.CaptureLead)
	r.Get("/{tenant}/{country}/{lang}", h.Public.Page)
	r.Get("/{tenant}/{country}/{lang}/policies/{slug}", h.Public.Policy)

	return r
}
