package respond

import "github.com/danielgtaylor/huma/v2"

const contentTypeText = "text/plain; charset=utf-8"

// TextOutput makes a Huma operation write its body verbatim as plain text.
type TextOutput struct {
	ContentType string `header:"Content-Type"`
	Body        []byte
}

// PlainText wraps s as a plain text response.
func PlainText(s string) *TextOutput {
	return &TextOutput{ContentType: contentTypeText, Body: []byte(s)}
}

// TextResponses documents a 200 text/plain response in OpenAPI.
func TextResponses(description string) map[string]*huma.Response {
	return map[string]*huma.Response{
		"200": {
			Description: description,
			Content: map[string]*huma.MediaType{
				"text/plain": {Schema: &huma.Schema{Type: huma.TypeString}},
			},
		},
	}
}
