package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging, h.withMetrics, withGZip)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/version", h.getServerVersion)
		r.Method("GET", "/metrics", h.metrics.handler())
	})

	router.Group(func(r chi.Router) {
		r.Use(h.auth, h.withTimestamp)

		r.Get("/info/configuration", h.infoConfiguration)
		r.Get("/info/collections", h.infoCollections)

		r.Get("/storage/{collection}", h.getCollection)
		r.Post("/storage/{collection}", h.postRecords)
		r.Delete("/storage/{collection}", h.deleteCollection)

		r.Get("/storage/{collection}/{id}", h.getRecord)
		r.Put("/storage/{collection}/{id}", h.putRecord)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
