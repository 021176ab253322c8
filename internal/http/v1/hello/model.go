package hello

import "github.com/janisto/hello-playground/internal/greeting"

// GetOutput is the response wrapper for GET /hello.
type GetOutput struct {
	Body greeting.Greeting
}
