package tablefilter

import (
	"slices"
	"sync"
)

// Listener receives the input value after each keystroke.
type Listener func(value string)

// SearchInput is a text box that notifies its listeners on every key
// release. Nothing is debounced.
type SearchInput struct {
	ID string

	mu        sync.Mutex
	value     string
	next      int
	listeners map[int]Listener
}

// NewSearchInput builds an empty input.
func NewSearchInput(id string) *SearchInput {
	return &SearchInput{ID: id, listeners: make(map[int]Listener)}
}

// Value returns the current text.
func (in *SearchInput) Value() string {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.value
}

// On registers l and returns a func that removes it.
func (in *SearchInput) On(l Listener) func() {
	in.mu.Lock()
	defer in.mu.Unlock()
	id := in.next
	in.next++
	in.listeners[id] = l
	return func() {
		in.mu.Lock()
		delete(in.listeners, id)
		in.mu.Unlock()
	}
}

// KeyUp sets the text to value and dispatches it to every listener in
// registration order.
func (in *SearchInput) KeyUp(value string) {
	in.mu.Lock()
	in.value = value
	ids := make([]int, 0, len(in.listeners))
	for id := range in.listeners {
		ids = append(ids, id)
	}
	listeners := make([]Listener, 0, len(ids))
	slices.Sort(ids)
	for _, id := range ids {
		listeners = append(listeners, in.listeners[id])
	}
	in.mu.Unlock()

	for _, l := range listeners {
		l(value)
	}
}

// Bind filters table on every keystroke of input. The returned func unbinds.
func Bind(input *SearchInput, table *Table) func() {
	return input.On(func(value string) {
		table.Filter(value)
	})
}
