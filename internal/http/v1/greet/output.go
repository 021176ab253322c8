package greet

import "github.com/janisto/hello-playground/internal/greeting"

// CreateOutput is the response wrapper for POST /api/greet.
type CreateOutput struct {
	Body greeting.Greeting
}

// ListOutput is the response wrapper for GET /greetings.
type ListOutput struct {
	Body []string
}
