package editor

import (
	"sync"

	"github.com/goliatone/go-cotizador/pkg/quote"
)

// DefaultMenuTrigger is the id of the button that toggles the state menu.
const DefaultMenuTrigger = "estado-menu-toggle"

// StateMenu is the lifecycle state dropdown of a quote page. Each editor owns
// its own menu.
type StateMenu struct {
	mu      sync.Mutex
	trigger string
	open    bool
	states  *quote.StateCatalog
}

// NewStateMenu builds a closed menu toggled by trigger.
func NewStateMenu(trigger string, states *quote.StateCatalog) *StateMenu {
	return &StateMenu{trigger: trigger, states: states}
}

// Toggle opens a closed menu and closes an open one.
func (m *StateMenu) Toggle() {
	m.mu.Lock()
	m.open = !m.open
	m.mu.Unlock()
}

// Close hides the menu.
func (m *StateMenu) Close() {
	m.mu.Lock()
	m.open = false
	m.mu.Unlock()
}

// IsOpen reports whether the menu is shown.
func (m *StateMenu) IsOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.open
}

// HandleClick processes a click anywhere on the page. A click on the trigger
// toggles the menu; any other click closes it.
func (m *StateMenu) HandleClick(target string) {
	if target == m.trigger {
		m.Toggle()
		return
	}
	m.Close()
}

// States lists the menu entries.
func (m *StateMenu) States() []quote.State {
	if m.states == nil {
		return nil
	}
	return m.states.States()
}
