package logging

import (
	"fmt"
	"net/http"
	"os"
	"regexp"
	"sync"

	"go.uber.org/zap"
)

const (
	traceparentHeader = "traceparent"
	cloudTraceHeader  = "X-Cloud-Trace-Context"
)

var (
	// W3C Trace Context: {version}-{trace-id}-{parent-id}-{trace-flags}
	traceparentRe = regexp.MustCompile(`^([0-9a-fA-F]{2})-([0-9a-fA-F]{32})-([0-9a-fA-F]{16})-([0-9a-fA-F]{2})$`)
	// Legacy Google header: TRACE_ID/SPAN_ID;o=OPTIONS
	cloudTraceRe = regexp.MustCompile(`^([0-9a-fA-F]+)/([0-9a-zA-Z]+)(?:;o=(\d))?$`)
)

var (
	projectIDOnce   sync.Once
	cachedProjectID string
)

type spanContext struct {
	traceID string
	spanID  string
	sampled bool
}

// parseTrace prefers traceparent and falls back to X-Cloud-Trace-Context.
func parseTrace(h http.Header) (spanContext, bool) {
	if m := traceparentRe.FindStringSubmatch(h.Get(traceparentHeader)); len(m) == 5 {
		return spanContext{traceID: m[2], spanID: m[3], sampled: m[4] == "01"}, true
	}
	if m := cloudTraceRe.FindStringSubmatch(h.Get(cloudTraceHeader)); len(m) == 4 {
		return spanContext{traceID: m[1], spanID: m[2], sampled: m[3] == "1"}, true
	}
	return spanContext{}, false
}

func (sc spanContext) resource(projectID string) string {
	return fmt.Sprintf("projects/%s/traces/%s", projectID, sc.traceID)
}

func traceFields(sc spanContext, projectID string) []zap.Field {
	if projectID == "" || sc.traceID == "" {
		return nil
	}
	return []zap.Field{
		zap.String("logging.googleapis.com/trace", sc.resource(projectID)),
		zap.String("logging.googleapis.com/spanId", sc.spanID),
		zap.Bool("logging.googleapis.com/trace_sampled", sc.sampled),
	}
}

func loggerWithTrace(base *zap.Logger, sc spanContext, projectID, requestID string) *zap.Logger {
	if base == nil {
		base = zap.NewNop()
	}
	fields := traceFields(sc, projectID)
	if requestID != "" {
		fields = append(fields, zap.String("requestId", requestID))
	}
	if len(fields) == 0 {
		return base
	}
	return base.With(fields...)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func resolveProjectID() string {
	projectIDOnce.Do(func() {
		cachedProjectID = firstNonEmpty(
			os.Getenv("GOOGLE_CLOUD_PROJECT"),
			os.Getenv("GCP_PROJECT"),
			os.Getenv("GCLOUD_PROJECT"),
			os.Getenv("PROJECT_ID"),
		)
	})
	return cachedProjectID
}
