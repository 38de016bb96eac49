package http

import (
	"net/http"
	"slices"
	"strings"
)

const (
	corsAllowMethods = "GET, POST, OPTIONS"
	corsAllowHeaders = "Content-Type"
	corsMaxAge       = "86400"
)

// withCORS stamps CORS headers on every response. An origin list containing
// "*" (or an empty list) allows any origin.
func withCORS(allowed []string, next http.Handler) http.Handler {
	anyOrigin := len(allowed) == 0 || slices.Contains(allowed, "*")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := w.Header()
		switch {
		case anyOrigin:
			header.Set("Access-Control-Allow-Origin", "*")
		default:
			origin := strings.TrimSpace(r.Header.Get("Origin"))
			if origin != "" && slices.Contains(allowed, origin) {
				header.Set("Access-Control-Allow-Origin", origin)
			}
			header.Add("Vary", "Origin")
		}
		header.Set("Access-Control-Allow-Methods", corsAllowMethods)
		header.Set("Access-Control-Allow-Headers", corsAllowHeaders)
		next.ServeHTTP(w, r)
	})
}

func handlePreflight(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Access-Control-Max-Age", corsMaxAge)
	w.WriteHeader(http.StatusNoContent)
}
