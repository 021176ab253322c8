// Package health exposes the liveness endpoint outside the OpenAPI surface.
package health

import (
	"encoding/json"
	"net/http"
)

// Response is the payload for the health endpoint.
type Response struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

// Handler reports the service as healthy together with its build version.
func Handler(version string) http.HandlerFunc {
	body := Response{Status: "healthy", Version: version}
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(body)
	}
}
