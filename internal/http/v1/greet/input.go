package greet

// PathInput carries the name from GET /greet/{name}.
type PathInput struct {
	Name string `path:"name" doc:"Name to greet" example:"Alice"`
}

// QueryInput carries the optional name from GET /greet?name=.
type QueryInput struct {
	Name string `query:"name" doc:"Name to greet" example:"Bob" default:"World"`
}

// CreateInput is the request body for POST /api/greet.
type CreateInput struct {
	Body struct {
		Name string `json:"name" doc:"Name to greet" example:"Carol"`
	}
}
