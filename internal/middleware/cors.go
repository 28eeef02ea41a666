package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORSMethods is the fixed set of methods cross-origin callers may use.
var CORSMethods = []string{"GET", "HEAD", "PUT", "PATCH", "POST", "DELETE"}

// CORS allows credentialed requests from a single origin and echoes back any
// requested headers. Preflight requests are answered with 204 No Content.
func CORS(origin string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:     []string{origin},
		AllowedMethods:     CORSMethods,
		AllowedHeaders:     []string{"*"},
		ExposedHeaders:     []string{"X-Request-Id"},
		AllowCredentials:   true,
		OptionsPassthrough: true,
	})
	return func(next http.Handler) http.Handler {
		return c.Handler(preflightNoContent(next))
	}
}

// preflightNoContent ends preflight requests that go-chi/cors passed through.
func preflightNoContent(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
