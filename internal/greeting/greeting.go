// Package greeting holds the greeting helpers shared by the HTTP service and the
// hello command.
package greeting

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// DefaultName is greeted when no name is given.
const DefaultName = "World"

// Greeting is the message container returned by the API.
type Greeting struct {
	Message string `json:"message" doc:"Greeting message" example:"Hello, World!"`
}

// New builds the English greeting for name.
func New(name string) Greeting {
	return Greeting{Message: Greet(name)}
}

// Greet formats "Hello, <name>!".
func Greet(name string) string {
	return fmt.Sprintf("Hello, %s!", name)
}

// Greeter greets a fixed name.
type Greeter struct {
	name string
}

// NewGreeter returns a Greeter for name.
func NewGreeter(name string) Greeter {
	return Greeter{name: name}
}

// Greet returns the greeting for the stored name.
func (g Greeter) Greet() string {
	return Greet(g.name)
}

// ReadHello reads r to EOF and greets the trimmed content. Read errors are returned
// as is.
func ReadHello(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return Greet(strings.TrimSpace(string(data))), nil
}

// ThreadMessage is the literal sent by Concurrent's worker.
const ThreadMessage = "Hello from thread!"

// Concurrent starts one goroutine that hands ThreadMessage over an unbuffered
// channel, receives it and waits for the goroutine to finish.
func Concurrent() string {
	messages := make(chan string)
	var wg sync.WaitGroup
	wg.Go(func() {
		messages <- ThreadMessage
	})
	received := <-messages
	wg.Wait()
	return received
}
