package form

import "strings"

// ControlKind is the input kind of a control.
type ControlKind string

const (
	KindText     ControlKind = "text"
	KindNumber   ControlKind = "number"
	KindTextArea ControlKind = "textarea"
	KindSelect   ControlKind = "select"
	KindCheckbox ControlKind = "checkbox"
	KindHidden   ControlKind = "hidden"
)

// Option is one choice of a select control. Attrs carries the data-*
// attributes the server attaches (precio, parametrizable).
type Option struct {
	Value string
	Label string
	Attrs map[string]string
}

// Attr returns the named attribute, or "" when absent.
func (o Option) Attr(name string) string {
	if o.Attrs == nil {
		return ""
	}
	return o.Attrs[name]
}

// Control is a single form field.
type Control struct {
	ID       string
	Name     string
	Label    string
	Kind     ControlKind
	Value    string
	Checked  bool
	Required bool
	Options  []Option
}

// Reset empties the control. Checkboxes are unchecked; every other kind loses
// its value. Select options are kept.
func (c *Control) Reset() {
	if c == nil {
		return
	}
	if c.Kind == KindCheckbox {
		c.Checked = false
		return
	}
	c.Value = ""
}

// Blank reports whether the control holds no meaningful value. Whitespace
// only counts as blank.
func (c *Control) Blank() bool {
	if c == nil {
		return true
	}
	if c.Kind == KindCheckbox {
		return !c.Checked
	}
	return strings.TrimSpace(c.Value) == ""
}

// Current returns the submitted value: "true"/"false" for checkboxes and the
// raw value otherwise.
func (c *Control) Current() string {
	if c == nil {
		return ""
	}
	if c.Kind == KindCheckbox {
		if c.Checked {
			return "true"
		}
		return "false"
	}
	return c.Value
}

// Selected returns the option matching the current value of a select.
func (c *Control) Selected() (Option, bool) {
	if c == nil {
		return Option{}, false
	}
	for _, opt := range c.Options {
		if opt.Value == c.Value {
			return opt, true
		}
	}
	return Option{}, false
}

// Select sets the value, failing when no option carries it.
func (c *Control) Select(value string) bool {
	for _, opt := range c.Options {
		if opt.Value == value {
			c.Value = value
			return true
		}
	}
	return false
}
