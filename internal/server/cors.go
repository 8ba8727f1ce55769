package server

import (
	"net/http"
	"strings"

	"github.com/rs/cors"
)

// normalizeOrigin drops a trailing slash; browsers never send a path in Origin.
func normalizeOrigin(origin string) string {
	return strings.TrimRight(strings.TrimSpace(origin), "/")
}

func newCORS(allowedOrigin string) *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins: []string{normalizeOrigin(allowedOrigin)},
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodPost},
		AllowedHeaders: []string{"*"},
		MaxAge:         1800,
	})
}

// corsPolicy rejects cross-origin requests from origins other than the allowed one.
// Requests without an Origin header, or from the service's own origin, are not CORS requests.
func corsPolicy(allowedOrigin string) func(http.Handler) http.Handler {
	c := newCORS(allowedOrigin)
	return func(next http.Handler) http.Handler {
		withHeaders := c.Handler(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" || sameOrigin(r, origin) {
				next.ServeHTTP(w, r)
				return
			}
			if !c.OriginAllowed(r) {
				http.Error(w, "Invalid CORS request", http.StatusForbidden)
				return
			}
			withHeaders.ServeHTTP(w, r)
		})
	}
}

func sameOrigin(r *http.Request, origin string) bool {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return strings.EqualFold(origin, scheme+"://"+r.Host)
}
