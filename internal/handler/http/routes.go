package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	router.Route("/api/v1/users", func(r chi.Router) {
		// routes without authorization
		r.Post("/register", h.register)
		r.Post("/login", h.login)
		r.Post("/refresh-token", h.refreshToken)

		// secured routes
		r.Group(func(r chi.Router) {
			r.Use(h.auth)

			r.Post("/logout", h.logout)
			r.Post("/change-password", h.changePassword)
			r.Get("/current-user", h.currentUser)
			r.Patch("/update-details", h.updateDetails)
			r.Patch("/avatar", h.updateAvatar)
			r.Patch("/cover-image", h.updateCoverImage)
			r.Get("/channel/{userName}", h.channelProfile)
			r.Get("/history", h.watchHistory)
			r.Post("/history/{videoID}", h.recordWatch)
		})
	})

	return router
}
