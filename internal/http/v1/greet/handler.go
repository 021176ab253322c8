package greet

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	"github.com/janisto/hello-playground/internal/greeting"
	applog "github.com/janisto/hello-playground/internal/platform/logging"
	"github.com/janisto/hello-playground/internal/platform/respond"
)

type handlers struct {
	state greeting.State
}

// Register wires greet routes into the provided API router. state is only read:
// POST /api/greet appends to a per-request copy, so GET /greetings always serves
// the seeded messages.
func Register(api huma.API, state greeting.State) {
	h := &handlers{state: state}

	huma.Register(api, huma.Operation{
		OperationID: "greet-name",
		Method:      http.MethodGet,
		Path:        "/greet/{name}",
		Summary:     "Greet a name taken from the path",
		Tags:        []string{"Greet"},
		Responses:   respond.TextResponses("Greeting as plain text"),
	}, h.byPath)

	huma.Register(api, huma.Operation{
		OperationID: "greet-query",
		Method:      http.MethodGet,
		Path:        "/greet",
		Summary:     "Greet an optional name taken from the query",
		Tags:        []string{"Greet"},
		Responses:   respond.TextResponses("Greeting as plain text"),
	}, h.byQuery)

	huma.Register(api, huma.Operation{
		OperationID:   "create-greeting",
		Method:        http.MethodPost,
		Path:          "/api/greet",
		Summary:       "Greet a name taken from the request body",
		Tags:          []string{"Greet"},
		DefaultStatus: http.StatusOK,
	}, h.create)

	huma.Register(api, huma.Operation{
		OperationID: "list-greetings",
		Method:      http.MethodGet,
		Path:        "/greetings",
		Summary:     "List the seeded greetings",
		Tags:        []string{"Greet"},
	}, h.list)
}

func (h *handlers) byPath(ctx context.Context, input *PathInput) (*respond.TextOutput, error) {
	applog.LogInfo(ctx, "greet by path", zap.String("name", input.Name))
	return respond.PlainText(greeting.Greet(input.Name)), nil
}

func (h *handlers) byQuery(ctx context.Context, input *QueryInput) (*respond.TextOutput, error) {
	name := input.Name
	if name == "" {
		name = greeting.DefaultName
	}
	applog.LogInfo(ctx, "greet by query", zap.String("name", name))
	return respond.PlainText(greeting.Greet(name)), nil
}

func (h *handlers) create(ctx context.Context, input *CreateInput) (*CreateOutput, error) {
	out := greeting.New(input.Body.Name)
	local := h.state.Append(out.Message)
	applog.LogInfo(ctx, "greet post", zap.String("name", input.Body.Name))
	applog.LogDebug(ctx, "greeting appended to request copy", zap.Int("requestGreetings", local.Len()))
	return &CreateOutput{Body: out}, nil
}

func (h *handlers) list(ctx context.Context, _ *struct{}) (*ListOutput, error) {
	greetings := h.state.Greetings()
	applog.LogInfo(ctx, "list greetings", zap.Int("count", len(greetings)))
	return &ListOutput{Body: greetings}, nil
}
