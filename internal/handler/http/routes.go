package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()

	router.Use(h.withTraceID, h.withLogging)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	if len(h.server.AllowedOrigins) > 0 {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   h.server.AllowedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodOptions},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", traceIDHeader},
			ExposedHeaders:   []string{"Authorization", traceIDHeader},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}
	if h.server.RequestTimeout > 0 {
		router.Use(middleware.Timeout(h.server.RequestTimeout))
	}
	router.Use(h.authenticate)

	// set before mounting so sub-routers inherit them
	router.NotFound(notFound)
	router.MethodNotAllowed(methodNotAllowed)

	basePath := strings.TrimRight(h.server.BasePath, "/")
	if basePath == "" {
		h.routes(router)
		return router
	}

	router.Route(basePath, h.routes)
	return router
}

func (h *Handler) routes(r chi.Router) {
	r.Get("/version/", h.getServerVersion)
	r.Get("/health/", h.health)
	r.Get("/media/*", h.serveMedia)
	r.Head("/media/*", h.serveMedia)

	// routes without authorization
	r.Group(func(r chi.Router) {
		r.Get("/datasets/", h.listDatasets)
		r.Get("/datasets/{id}/", h.getDataset)

		r.Post("/users/register/", h.register)
		r.Post("/users/login/", h.login)
	})

	r.Group(func(r chi.Router) {
		r.Use(h.requireAuth)

		r.Post("/datasets/create/", h.createDataset)

		r.Post("/users/logout/", h.logout)
		r.Get("/users/profile/", h.profile)
		r.Put("/users/update/", h.updateProfile)
		r.Patch("/users/update/", h.updateProfile)
		r.Put("/users/change-password/", h.changePassword)
		r.Patch("/users/change-password/", h.changePassword)
	})
}
