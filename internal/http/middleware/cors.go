package middleware

import (
	"net/http"
	"strings"
)

// Headers and methods the chat widget actually uses: JSON bodies plus the
// session ID header it replays between turns.
const (
	corsAllowHeaders = "Content-Type, X-Session-Id"
	corsAllowMethods = "GET, POST, OPTIONS"
	corsMaxAge       = "600"
)

// originSet is the configured origin allowlist. An entry of "*" allows any
// origin; the matched origin is still echoed back per request rather than
// wildcarded, so credentialed widget requests stay valid.
type originSet struct {
	any     bool
	origins map[string]bool
}

func newOriginSet(list []string) originSet {
	set := originSet{origins: make(map[string]bool, len(list))}
	for _, origin := range list {
		origin = strings.TrimSpace(origin)
		switch origin {
		case "":
		case "*":
			set.any = true
		default:
			set.origins[origin] = true
		}
	}
	return set
}

func (s originSet) contains(origin string) bool {
	return origin != "" && (s.any || s.origins[origin])
}

// CORS restricts browser access to the origins the clinic embeds the chat
// widget on. Preflights from an allowed origin are answered without reaching
// the handler.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	allowed := newOriginSet(allowedOrigins)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := strings.TrimSpace(r.Header.Get("Origin"))
			if allowed.contains(origin) {
				h := w.Header()
				h.Set("Access-Control-Allow-Origin", origin)
				h.Add("Vary", "Origin")
				h.Set("Access-Control-Allow-Headers", corsAllowHeaders)
				h.Set("Access-Control-Allow-Methods", corsAllowMethods)
				h.Set("Access-Control-Max-Age", corsMaxAge)
			}

			if isPreflight(r) {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func isPreflight(r *http.Request) bool {
	return r.Method == http.MethodOptions &&
		r.Header.Get("Origin") != "" &&
		r.Header.Get("Access-Control-Request-Method") != ""
}
