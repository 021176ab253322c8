// Command hello prints greetings to stdout.
//
// Without flags it prints the classic greeting sequence. Any of -name, -times,
// -language or -format switches to a single rendered greeting.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/janisto/hello-playground/internal/greeting"
	"github.com/janisto/hello-playground/internal/platform/logging"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// renderFlags are the flags that select the rendered greeting instead of the
// default sequence.
var renderFlags = map[string]bool{"name": true, "times": true, "language": true, "format": true}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts := greeting.DefaultOptions()
	var (
		format  string
		verbose bool
		useIn   bool
		thread  bool
	)

	fs := flag.NewFlagSet("hello", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.Name, "name", opts.Name, "name to greet")
	fs.IntVar(&opts.Times, "times", opts.Times, "number of repetitions")
	fs.StringVar(&opts.Language, "language", opts.Language,
		"greeting language ("+strings.Join(greeting.Languages(), ", ")+")")
	fs.StringVar(&format, "format", string(opts.Format), "output format (console, json, html)")
	fs.BoolVar(&verbose, "verbose", false, "enable debug logging on stderr")
	fs.BoolVar(&useIn, "stdin", false, "read a name from stdin and greet it")
	fs.BoolVar(&thread, "thread", false, "receive a greeting from a goroutine")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	opts.Format = greeting.Format(format)

	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	logger := logging.New(logging.Options{Output: stderr, Level: level})
	defer func() { _ = logger.Sync() }()

	rendered := false
	fs.Visit(func(f *flag.Flag) {
		if renderFlags[f.Name] {
			rendered = true
		}
	})

	var lines []string
	switch {
	case useIn:
		msg, err := greeting.ReadHello(stdin)
		if err != nil {
			logger.Error("read stdin failed", zap.Error(err))
			return exitError
		}
		lines = []string{msg}
	case thread:
		logger.Debug("starting worker")
		lines = []string{greeting.Concurrent()}
	case rendered:
		if err := opts.Validate(); err != nil {
			logger.Error("invalid options", zap.Error(err))
			return exitError
		}
		logger.Debug("rendering greeting",
			zap.String("name", opts.Name),
			zap.Int("times", opts.Times),
			zap.String("language", opts.Language),
			zap.String("format", string(opts.Format)),
		)
		if err := greeting.Render(stdout, opts); err != nil {
			logger.Error("write failed", zap.Error(err))
			return exitError
		}
		return exitOK
	default:
		lines = sequence()
	}

	if err := writeLines(stdout, lines); err != nil {
		logger.Error("write failed", zap.Error(err))
		return exitError
	}
	return exitOK
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// sequence is the default output: a literal, a formatted greeting, a Greeter and
// one greeting per name.
func sequence() []string {
	lines := []string{
		"Hello, World!",
		greeting.Greet(greeting.DefaultName),
		greeting.NewGreeter("World from Go").Greet(),
	}
	for _, name := range []string{"World", "Everyone", "Go"} {
		lines = append(lines, greeting.Greet(name))
	}
	return lines
}
