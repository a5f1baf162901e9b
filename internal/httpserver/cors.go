package httpserver

import (
	"net/http"
	"strings"

	"github.com/fdg312/mealweek/internal/config"
	"github.com/rs/cors"
)

// CORSMiddleware allows only cfg.CORSAllowedOrigins. An empty list blocks
// every cross-origin request.
func CORSMiddleware(cfg *config.Config, next http.Handler) http.Handler {
	origins := make([]string, 0, len(cfg.CORSAllowedOrigins))
	for _, o := range cfg.CORSAllowedOrigins {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	opts := cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: cfg.CORSAllowCredentials,
		MaxAge:           600,
	}
	if len(origins) == 0 {
		opts.AllowOriginFunc = func(string) bool { return false }
	}

	return cors.New(opts).Handler(next)
}
