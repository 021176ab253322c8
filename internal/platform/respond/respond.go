// Package respond renders RFC 9457 problem details for failures that happen outside
// Huma operations: unknown routes, wrong methods and recovered panics.
package respond

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"strconv"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/fxamacker/cbor/v2"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	applog "github.com/janisto/hello-playground/internal/platform/logging"
	appmiddleware "github.com/janisto/hello-playground/internal/platform/middleware"
)

const (
	contentTypeProblemJSON = "application/problem+json"
	contentTypeProblemCBOR = "application/problem+cbor"

	msgNotFound       = "resource not found"
	msgInternalServer = "internal server error"
)

// NotFoundHandler renders a 404 problem.
func NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		WriteProblem(w, r, http.StatusNotFound, msgNotFound)
	}
}

// MethodNotAllowedHandler renders a 405 problem and lists the allowed methods.
func MethodNotAllowedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if allow := allowedMethods(r); len(allow) > 0 {
			w.Header().Set("Allow", strings.Join(allow, ", "))
		}
		WriteProblem(w, r, http.StatusMethodNotAllowed, fmt.Sprintf("method %s not allowed", r.Method))
	}
}

// Recoverer turns panics into 500 problems. http.ErrAbortHandler is re-panicked so the
// server can abort the connection, and nothing is written once headers were sent.
func Recoverer() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := &responseWriter{ResponseWriter: w}
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(rec)
				}
				var err error
				switch v := rec.(type) {
				case error:
					err = v
				default:
					err = fmt.Errorf("%v", v)
				}
				applog.LogError(r.Context(), "panic recovered", err, zap.ByteString("stack", debug.Stack()))
				if rw.wroteHeader {
					return
				}
				WriteProblem(rw, r, http.StatusInternalServerError, msgInternalServer)
			}()
			next.ServeHTTP(rw, r)
		})
	}
}

// WriteProblem negotiates JSON or CBOR from the Accept header and writes a problem body.
func WriteProblem(w http.ResponseWriter, r *http.Request, status int, detail string) {
	problem := &huma.ErrorModel{
		Title:  http.StatusText(status),
		Status: status,
		Detail: detail,
	}

	appmiddleware.EnsureVary(w.Header(), "Accept")
	var (
		body []byte
		err  error
	)
	if acceptsCBOR(r.Header.Get("Accept")) {
		w.Header().Set("Content-Type", contentTypeProblemCBOR)
		body, err = cbor.Marshal(problem)
	} else {
		w.Header().Set("Content-Type", contentTypeProblemJSON)
		body, err = marshalJSON(problem)
	}
	if err != nil {
		applog.LogError(r.Context(), "failed to encode problem", err, zap.Int("status", status))
		http.Error(w, http.StatusText(status), status)
		return
	}

	logProblem(r, status, detail)
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		applog.LogWarn(r.Context(), "failed to write problem", zap.Error(err))
	}
}

func marshalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func logProblem(r *http.Request, status int, detail string) {
	fields := []zap.Field{
		zap.Int("status", status),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	}
	if status >= http.StatusInternalServerError {
		applog.LogError(r.Context(), detail, nil, fields...)
		return
	}
	applog.LogWarn(r.Context(), detail, fields...)
}

// acceptsCBOR reports whether the client prefers CBOR over JSON. Wildcards and ties
// resolve to JSON.
func acceptsCBOR(accept string) bool {
	if strings.TrimSpace(accept) == "" {
		return false
	}
	var cborQ, jsonQ float64
	for part := range strings.SplitSeq(accept, ",") {
		mediaType, q, ok := parseMediaRange(part)
		if !ok {
			continue
		}
		switch mediaType {
		case "application/cbor", contentTypeProblemCBOR, "application/*+cbor":
			cborQ = max(cborQ, q)
		case "application/json", contentTypeProblemJSON, "application/*+json", "application/*", "*/*":
			jsonQ = max(jsonQ, q)
		}
	}
	return cborQ > 0 && cborQ > jsonQ
}

func parseMediaRange(part string) (string, float64, bool) {
	segments := strings.Split(part, ";")
	mediaType := strings.ToLower(strings.TrimSpace(segments[0]))
	if mediaType == "" || !strings.Contains(mediaType, "/") {
		return "", 0, false
	}
	q := 1.0
	for _, param := range segments[1:] {
		key, value, found := strings.Cut(strings.TrimSpace(param), "=")
		if !found || strings.ToLower(strings.TrimSpace(key)) != "q" {
			continue
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil || parsed < 0 || parsed > 1 {
			return "", 0, false
		}
		q = parsed
	}
	return mediaType, q, true
}

// allowedMethods asks chi which methods match the request path.
func allowedMethods(r *http.Request) []string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil || rctx.Routes == nil {
		return nil
	}
	routePath := rctx.RoutePath
	if routePath == "" {
		routePath = r.URL.RawPath
		if routePath == "" {
			routePath = r.URL.Path
		}
		if routePath == "" {
			routePath = "/"
		}
	}

	candidates := []string{
		http.MethodGet,
		http.MethodHead,
		http.MethodPost,
		http.MethodPut,
		http.MethodPatch,
		http.MethodDelete,
		http.MethodOptions,
	}
	allowed := make([]string, 0, len(candidates))
	for _, method := range candidates {
		if rctx.Routes.Match(chi.NewRouteContext(), method, routePath) {
			allowed = append(allowed, method)
		}
	}
	return allowed
}

// responseWriter records whether headers were sent so Recoverer does not write twice.
type responseWriter struct {
	http.ResponseWriter
	wroteHeader bool
}

func (rw *responseWriter) WriteHeader(status int) {
	rw.wroteHeader = true
	rw.ResponseWriter.WriteHeader(status)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	rw.wroteHeader = true
	return rw.ResponseWriter.Write(b)
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}
