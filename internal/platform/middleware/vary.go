package middleware

import (
	"net/http"
	"strings"
)

// Vary adds Accept to the Vary header because responses are negotiated between
// JSON and CBOR. Origin is added separately by the CORS middleware.
func Vary() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			EnsureVary(w.Header(), "Accept")
			next.ServeHTTP(w, r)
		})
	}
}

// EnsureVary appends values to the Vary header, skipping ones already listed.
func EnsureVary(h http.Header, values ...string) {
	seen := make(map[string]struct{})
	for _, line := range h.Values("Vary") {
		for part := range strings.SplitSeq(line, ",") {
			if p := strings.TrimSpace(part); p != "" {
				seen[strings.ToLower(p)] = struct{}{}
			}
		}
	}
	for _, v := range values {
		key := strings.ToLower(strings.TrimSpace(v))
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		h.Add("Vary", v)
	}
}
