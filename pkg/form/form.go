package form

import (
	"fmt"
	"strings"
)

// Form is an ordered set of controls addressed by id.
type Form struct {
	ID       string
	controls []*Control
	index    map[string]*Control
}

// New builds a form holding controls in the given order. Duplicate ids keep
// the first control.
func New(id string, controls ...*Control) *Form {
	f := &Form{ID: id, index: make(map[string]*Control, len(controls))}
	f.Add(controls...)
	return f
}

// Add appends controls to the form.
func (f *Form) Add(controls ...*Control) {
	if f.index == nil {
		f.index = make(map[string]*Control)
	}
	for _, c := range controls {
		if c == nil || c.ID == "" {
			continue
		}
		if _, exists := f.index[c.ID]; exists {
			continue
		}
		f.controls = append(f.controls, c)
		f.index[c.ID] = c
	}
}

// Control returns the control with the given id.
func (f *Form) Control(id string) (*Control, bool) {
	if f == nil {
		return nil, false
	}
	c, ok := f.index[id]
	return c, ok
}

// Controls returns the controls in declaration order.
func (f *Form) Controls() []*Control {
	if f == nil {
		return nil
	}
	out := make([]*Control, len(f.controls))
	copy(out, f.controls)
	return out
}

// Value returns the current value of a control, or "" when it does not exist.
func (f *Form) Value(id string) string {
	c, ok := f.Control(id)
	if !ok {
		return ""
	}
	return c.Current()
}

// Set assigns a raw value to a control. Checkboxes accept "true"/"on".
func (f *Form) Set(id, value string) error {
	c, ok := f.Control(id)
	if !ok {
		return fmt.Errorf("form: %s: unknown control %q", f.ID, id)
	}
	if c.Kind == KindCheckbox {
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "true", "on", "1", "si", "sí":
			c.Checked = true
		default:
			c.Checked = false
		}
		return nil
	}
	c.Value = value
	return nil
}

// Missing returns the ids of the given controls that are blank. An id with no
// control counts as blank.
func (f *Form) Missing(ids ...string) []string {
	var missing []string
	for _, id := range ids {
		c, ok := f.Control(id)
		if !ok || c.Blank() {
			missing = append(missing, id)
		}
	}
	return missing
}

// Reset empties every control.
func (f *Form) Reset() {
	if f == nil {
		return
	}
	for _, c := range f.controls {
		c.Reset()
	}
}
