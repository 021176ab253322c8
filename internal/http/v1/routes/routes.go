package routes

import (
	"github.com/danielgtaylor/huma/v2"

	"github.com/janisto/hello-playground/internal/greeting"
	"github.com/janisto/hello-playground/internal/http/v1/greet"
	"github.com/janisto/hello-playground/internal/http/v1/hello"
)

// Register wires all greeting routes into the provided API router.
func Register(api huma.API, state greeting.State) {
	hello.Register(api)
	greet.Register(api, state)
}
