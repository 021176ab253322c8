package greeting

import (
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"slices"
	"time"

	"github.com/janisto/hello-playground/internal/platform/timeutil"
)

// Format selects how Render writes a greeting.
type Format string

// Supported formats.
const (
	FormatConsole Format = "console"
	FormatJSON    Format = "json"
	FormatHTML    Format = "html"
)

// Formats lists the supported output formats.
func Formats() []Format {
	return []Format{FormatConsole, FormatJSON, FormatHTML}
}

var (
	ErrInvalidTimes    = errors.New("times must be at least 1")
	ErrUnknownLanguage = errors.New("unknown language")
	ErrUnknownFormat   = errors.New("unknown output format")
)

// Options describes one rendering of a greeting.
type Options struct {
	Name     string
	Times    int
	Language string
	Format   Format
}

// DefaultOptions greets World once, in English, on the console.
func DefaultOptions() Options {
	return Options{
		Name:     DefaultName,
		Times:    1,
		Language: DefaultLanguage,
		Format:   FormatConsole,
	}
}

// Validate checks the options before rendering.
func (o Options) Validate() error {
	if o.Times < 1 {
		return ErrInvalidTimes
	}
	if !IsLanguage(o.Language) {
		return fmt.Errorf("%w: %q", ErrUnknownLanguage, o.Language)
	}
	if !slices.Contains(Formats(), o.Format) {
		return fmt.Errorf("%w: %q", ErrUnknownFormat, o.Format)
	}
	return nil
}

func (o Options) target() string {
	if o.Name == "" {
		return DefaultName
	}
	return o.Name
}

// lines returns the console lines, numbering them when Times > 1.
func (o Options) lines() []string {
	text := fmt.Sprintf("%s, %s!", Salutation(o.Language), o.target())
	if o.Times == 1 {
		return []string{text}
	}
	out := make([]string, o.Times)
	for i := range out {
		out[i] = fmt.Sprintf("%s (%d/%d)", text, i+1, o.Times)
	}
	return out
}

// Document is the JSON rendering of a greeting.
type Document struct {
	Greeting  string        `json:"greeting"`
	Target    string        `json:"target"`
	Times     int           `json:"times"`
	Language  string        `json:"language"`
	Timestamp timeutil.Time `json:"timestamp"`
}

// Render validates opts and writes the greeting to w.
func Render(w io.Writer, opts Options) error {
	return render(w, opts, time.Now())
}

func render(w io.Writer, opts Options, now time.Time) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	switch opts.Format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(Document{
			Greeting:  Salutation(opts.Language),
			Target:    opts.target(),
			Times:     opts.Times,
			Language:  opts.Language,
			Timestamp: timeutil.NewTime(now),
		})
	case FormatHTML:
		return pageTemplate.Execute(w, page{
			Language: opts.Language,
			Single:   opts.Times == 1,
			Lines:    opts.lines(),
		})
	default:
		for _, line := range opts.lines() {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
		return nil
	}
}

type page struct {
	Language string
	Single   bool
	Lines    []string
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="{{.Language}}">
<head>
<meta charset="UTF-8">
<title>Hello World</title>
<style>
body { font-family: Arial, sans-serif; display: flex; flex-direction: column; justify-content: center; align-items: center; height: 100vh; margin: 0; background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); color: white; }
.greeting { font-size: {{if .Single}}3rem{{else}}1.5rem{{end}}; margin: 0.5rem; text-align: center; }
</style>
</head>
<body>
{{range .Lines}}<div class="greeting">{{.}}</div>
{{end}}</body>
</html>
`))
