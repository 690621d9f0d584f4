package httpapi

import (
	"net/http"
	"time"

	"github.com/alanya-estates/property-service/internal/adapter/httpapi/middleware"
	"github.com/alanya-estates/property-service/internal/platform/logger"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

const requestTimeout = 30 * time.Second

// RouterOptions carries the settings the router needs beyond its handler.
type RouterOptions struct {
	JWTSecret      string
	AllowedOrigins []string
	// UploadsDir, when set, is served statically under /uploads (local
	// storage driver only).
	UploadsDir string
}

func NewRouter(h *PropertyHandler, opts RouterOptions, log *logger.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RealIP, middleware.RequestLogger(log), chimw.Recoverer)
	r.Use(chimw.Timeout(requestTimeout))
	r.Use(middleware.Tracing("property-service"))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// Listings are public data; reads skip the auth gate entirely.
	r.Get("/api/properties", h.HandleListProperties)
	r.Get("/api/properties/{id}", h.HandleGetProperty)

	r.Group(func(pr chi.Router) {
		pr.Use(middleware.JWTAuth(opts.JWTSecret, log))

		pr.Post("/api/properties/with-files", h.HandleCreateProperty)
		pr.Put("/api/properties/{id}/with-files", h.HandleUpdateProperty)
		pr.Delete("/api/properties/{id}", h.HandleDeleteProperty)
	})

	if opts.UploadsDir != "" {
		fileServer := http.FileServer(http.Dir(opts.UploadsDir))
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", fileServer))
	}

	return r
}
