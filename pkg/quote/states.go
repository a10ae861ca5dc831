package quote

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed states.yaml
var defaultStatesYAML []byte

// State is a lifecycle token with its display label. The server decides which
// transitions are allowed; the catalog only labels menu entries.
type State struct {
	Token string `yaml:"token"`
	Label string `yaml:"label"`
}

// StateCatalog is an ordered list of lifecycle states.
type StateCatalog struct {
	states []State
	index  map[string]int
}

type stateFile struct {
	States []State `yaml:"states"`
}

// DefaultStates returns the catalog shipped with the module.
func DefaultStates() *StateCatalog {
	catalog, err := ParseStates(defaultStatesYAML)
	if err != nil {
		panic(fmt.Sprintf("quote: embedded state catalog: %v", err))
	}
	return catalog
}

// ParseStates decodes a YAML catalog. Tokens must be unique and non-empty.
func ParseStates(data []byte) (*StateCatalog, error) {
	var file stateFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("quote: decode state catalog: %w", err)
	}
	if len(file.States) == 0 {
		return nil, errors.New("quote: state catalog is empty")
	}

	catalog := &StateCatalog{
		states: make([]State, 0, len(file.States)),
		index:  make(map[string]int, len(file.States)),
	}
	for _, state := range file.States {
		token := strings.TrimSpace(state.Token)
		if token == "" {
			return nil, errors.New("quote: state token is required")
		}
		if _, dup := catalog.index[token]; dup {
			return nil, fmt.Errorf("quote: duplicate state token %q", token)
		}
		label := strings.TrimSpace(state.Label)
		if label == "" {
			label = token
		}
		catalog.index[token] = len(catalog.states)
		catalog.states = append(catalog.states, State{Token: token, Label: label})
	}
	return catalog, nil
}

// States returns a copy of the catalog entries in order.
func (c *StateCatalog) States() []State {
	if c == nil {
		return nil
	}
	return append([]State(nil), c.states...)
}

// Label returns the display label for token, falling back to the token.
func (c *StateCatalog) Label(token string) string {
	if c != nil {
		if idx, ok := c.index[token]; ok {
			return c.states[idx].Label
		}
	}
	return token
}

// Lookup reports whether token is part of the catalog.
func (c *StateCatalog) Lookup(token string) (State, bool) {
	if c == nil {
		return State{}, false
	}
	idx, ok := c.index[token]
	if !ok {
		return State{}, false
	}
	return c.states[idx], true
}
