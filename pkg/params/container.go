package params

import (
	"strconv"
	"sync"

	"github.com/goliatone/go-cotizador/pkg/form"
	"github.com/goliatone/go-cotizador/pkg/quote"
)

// Field is one rendered parameter control.
type Field struct {
	Param   quote.Parameter
	Control *form.Control
}

// Label is the displayed label, with " *" appended for required parameters.
func (f Field) Label() string {
	if f.Param.Required {
		return f.Param.Name + " *"
	}
	return f.Param.Name
}

// Container holds the parameter controls of the selected service. Controls are
// addressed by parameter id.
type Container struct {
	mu      sync.Mutex
	id      string
	visible bool
	fields  []Field
	gen     uint64
}

// NewContainer returns an empty, hidden container.
func NewContainer(id string) *Container {
	return &Container{id: id}
}

// ID returns the element id of the container.
func (c *Container) ID() string { return c.id }

// Clear empties and hides the container. Any parameter fetch still in flight
// is invalidated.
func (c *Container) Clear() {
	c.mu.Lock()
	c.reset()
	c.mu.Unlock()
}

// Visible reports whether the container is shown.
func (c *Container) Visible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.visible
}

// Fields returns the rendered fields in schema order.
func (c *Container) Fields() []Field {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Field, len(c.fields))
	copy(out, c.fields)
	return out
}

// Control returns the control rendered for a parameter id.
func (c *Container) Control(paramID int64) (*form.Control, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, f := range c.fields {
		if f.Param.ID == paramID {
			return f.Control, true
		}
	}
	return nil, false
}

// Set assigns a value to the control of a parameter.
func (c *Container) Set(paramID int64, value string) bool {
	ctrl, ok := c.Control(paramID)
	if !ok {
		return false
	}
	ctrl.Value = value
	return true
}

// Values harvests the current parameter values keyed by parameter id. The map
// is never nil.
func (c *Container) Values() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]string, len(c.fields))
	for _, f := range c.fields {
		out[strconv.FormatInt(f.Param.ID, 10)] = f.Control.Value
	}
	return out
}

func (c *Container) reset() {
	c.gen++
	c.fields = nil
	c.visible = false
}

// begin clears the container and returns the generation a fetch must match
// to publish its result.
func (c *Container) begin() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reset()
	return c.gen
}

// publish installs fields when gen is still current. It reports whether the
// fields were kept.
func (c *Container) publish(gen uint64, fields []Field) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return false
	}
	c.fields = fields
	c.visible = len(fields) > 0
	return true
}
