package hello

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	"github.com/janisto/hello-playground/internal/greeting"
	applog "github.com/janisto/hello-playground/internal/platform/logging"
	"github.com/janisto/hello-playground/internal/platform/respond"
)

// Register wires the root and hello routes into the provided API router.
func Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-root",
		Method:      http.MethodGet,
		Path:        "/",
		Summary:     "Plain text greeting",
		Tags:        []string{"Hello"},
		Responses:   respond.TextResponses("Hello, World! as plain text"),
	}, rootHandler)

	huma.Register(api, huma.Operation{
		OperationID: "get-hello",
		Method:      http.MethodGet,
		Path:        "/hello",
		Summary:     "JSON greeting",
		Tags:        []string{"Hello"},
	}, getHandler)
}

func rootHandler(ctx context.Context, _ *struct{}) (*respond.TextOutput, error) {
	applog.LogInfo(ctx, "hello root", zap.String("path", "/"))
	return respond.PlainText(greeting.Greet(greeting.DefaultName)), nil
}

func getHandler(ctx context.Context, _ *struct{}) (*GetOutput, error) {
	applog.LogInfo(ctx, "hello get", zap.String("path", "/hello"))
	return &GetOutput{Body: greeting.New(greeting.DefaultName)}, nil
}
