// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The trailbook Authors

package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/trailbook/trailbook/models"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(middleware.Compress(5))

	tours := newResourceHandlers(h.services.Tours, "tour", "tours")
	users := newResourceHandlers(h.services.Users, "user", "users")
	reviews := newResourceHandlers(h.services.Reviews, "review", "reviews")

	router.Route("/api/v1/tours", func(r chi.Router) {
		// aliases and analytics before the parameterised routes
		r.With(aliasTopTours).Get("/top-5-cheap", tours.list)
		r.Get("/tour-stats", h.tourStats)
		r.Get("/tours-within/{distance}/center/{latlng}/unit/{unit}", h.toursWithin)
		r.Get("/distances/{latlng}/unit/{unit}", h.tourDistances)

		r.Get("/", tours.list)
		r.Get("/{id}", tours.get)

		r.Group(func(r chi.Router) {
			r.Use(h.protect)

			r.With(h.restrictTo(models.RoleAdmin, models.RoleLeadGuide, models.RoleGuide)).
				Get("/monthly-plan/{year}", h.monthlyPlan)

			r.Group(func(r chi.Router) {
				r.Use(h.restrictTo(models.RoleAdmin, models.RoleLeadGuide))
				r.Post("/", tours.create)
				r.Patch("/{id}", tours.update)
				r.Delete("/{id}", tours.delete)
			})
		})
	})

	router.Route("/api/v1/users", func(r chi.Router) {
		r.Post("/signup", h.signup)
		r.Post("/login", h.login)
		r.Post("/forgotPassword", h.forgotPassword)
		r.Patch("/resetPassword/{token}", h.resetPassword)

		r.Group(func(r chi.Router) {
			r.Use(h.protect)

			r.Get("/me", h.me)
			r.Patch("/updateMe", h.updateMe)
			r.Delete("/deleteMe", h.deleteMe)
			r.Patch("/updateMyPassword", h.updateMyPassword)

			r.Group(func(r chi.Router) {
				r.Use(h.restrictTo(models.RoleAdmin))
				r.Get("/", users.list)
				r.Get("/{id}", users.get)
				r.Patch("/{id}", users.update)
				r.Delete("/{id}", users.delete)
			})
		})
	})

	router.Route("/api/v1/reviews", func(r chi.Router) {
		r.Use(h.protect)

		r.Get("/", reviews.list)
		r.Get("/{id}", reviews.get)
		r.With(h.restrictTo(models.RoleUser)).Post("/", reviews.create)

		r.Group(func(r chi.Router) {
			r.Use(h.restrictTo(models.RoleUser, models.RoleAdmin))
			r.Patch("/{id}", reviews.update)
			r.Delete("/{id}", reviews.delete)
		})
	})

	return router
}
