package greeting

import "slices"

// Seeded messages present at process start.
var seeded = []string{"Hello, World!", "Hello, Go!"}

// State is the in-memory list of greeting messages served by GET /greetings.
// Values are immutable: Append returns a new State.
type State struct {
	greetings []string
}

// NewState returns a State holding the seeded messages.
func NewState() State {
	return State{greetings: slices.Clone(seeded)}
}

// Greetings returns a copy of the messages in insertion order.
func (s State) Greetings() []string {
	return slices.Clone(s.greetings)
}

// Len reports the number of messages.
func (s State) Len() int {
	return len(s.greetings)
}

// Append returns a State with msg added. The receiver is left untouched.
func (s State) Append(msg string) State {
	next := make([]string, 0, len(s.greetings)+1)
	next = append(next, s.greetings...)
	return State{greetings: append(next, msg)}
}
