// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/leadpoint-go/internal/middleware"
)

// Routes returns the API router. Mounted under /api by the caller.
func (h *Handler) Routes() chi.Router {
	secret := []byte(h.cfg.JWTSecret)
	requireAuth := middleware.RequireAuth(secret)
	requireAdmin := middleware.RequireAdmin(secret)
	cors := middleware.CORS(h.cfg.CORSOrigins)

	// Preflight requests are answered by the CORS middleware; the
	// handler below only runs for non-preflight OPTIONS.
	preflight := func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}

	r := chi.NewRouter()

	r.Get("/health", h.Health)

	r.Route("/auth", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			if h.loginGate != nil {
				r.Use(h.loginGate.Middleware())
			}
			r.Post("/login", h.Login)
		})
		r.With(requireAuth).Get("/me", h.Me)
	})

	r.Route("/bookings", func(r chi.Router) {
		r.With(cors).Post("/", h.CreateBooking)
		r.With(cors).Options("/", preflight)
		r.With(requireAdmin).Get("/", h.ListBookings)
		r.With(requireAdmin).Patch("/{id}", h.UpdateBooking)
		r.With(requireAdmin).Delete("/{id}", h.DeleteBooking)
	})

	r.Route("/contact", func(r chi.Router) {
		r.With(cors).Post("/", h.CreateContact)
		r.With(cors).Options("/", preflight)
		r.With(requireAdmin).Get("/", h.ListContacts)
		r.With(requireAdmin).Delete("/{id}", h.DeleteContact)
	})

	r.Route("/email", func(r chi.Router) {
		r.With(requireAdmin).Get("/", h.ListEmails)
		r.With(requireAdmin).Post("/send", h.SendEmail)
	})

	return r
}
