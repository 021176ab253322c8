// Package hello serves the greeting as an HTTP Cloud Function.
package hello

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
)

// rfc3339Millis matches the server's timestamp format.
const rfc3339Millis = "2006-01-02T15:04:05.000Z"

const (
	defaultName = "World"
	maxBodySize = 1 << 20
)

func init() {
	functions.HTTP("Hello", helloHandler)
}

// Request is the optional JSON body.
type Request struct {
	Name string `json:"name"`
}

// Response is the JSON reply.
type Response struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

type problem struct {
	Status int    `json:"status"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

// now is replaced in tests.
var now = time.Now

// helloHandler greets the body name, then the name query parameter, then World.
func helloHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		w.Header().Set("Allow", "GET, POST")
		writeProblem(w, http.StatusMethodNotAllowed, "method "+r.Method+" not allowed")
		return
	}

	var req Request
	if r.Method == http.MethodPost && r.Body != nil {
		err := json.NewDecoder(io.LimitReader(r.Body, maxBodySize)).Decode(&req)
		if err != nil && !errors.Is(err, io.EOF) {
			writeProblem(w, http.StatusBadRequest, "request body must be a JSON object")
			return
		}
	}

	name := req.Name
	if name == "" {
		name = r.URL.Query().Get("name")
	}
	if name == "" {
		name = defaultName
	}

	writeJSON(w, http.StatusOK, "application/json", Response{
		Message:   "Hello, " + name + "!",
		Timestamp: now().UTC().Format(rfc3339Millis),
	})
}

func writeProblem(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, "application/problem+json", problem{
		Status: status,
		Title:  http.StatusText(status),
		Detail: detail,
	})
}

func writeJSON(w http.ResponseWriter, status int, contentType string, v any) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
