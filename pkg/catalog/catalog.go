// Package catalog describes the master-data forms (clients, services and
// materials) from an embedded OpenAPI contract.
package catalog

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/goliatone/go-cotizador/internal/openapi/parser"
	"github.com/goliatone/go-cotizador/pkg/form"
	"github.com/goliatone/go-cotizador/pkg/quote"
)

//go:embed openapi.yaml
var contract []byte

// ErrUnknownForm is returned when no form exists for a kind and action.
var ErrUnknownForm = errors.New("catalog: unknown form")

// Action is the master-data operation a form serves.
type Action string

const (
	ActionCreate Action = "crear"
	ActionUpdate Action = "editar"
	ActionDelete Action = "eliminar"
)

// Field types.
const (
	TypeString  = "string"
	TypeInteger = "integer"
	TypeNumber  = "number"
	TypeBoolean = "boolean"
)

// Field is one input of a master-data form.
type Field struct {
	Name     string
	Label    string
	Type     string
	Format   string
	Widget   string
	Required bool
	Enum     []string
	Default  string
}

// Form is the ordered input list of one endpoint.
type Form struct {
	Kind   quote.EntityKind
	Action Action
	Method string
	Path   string
	Fields []Field
}

// Missing lists required fields whose value is absent or blank.
func (f Form) Missing(values map[string]any) []string {
	var missing []string
	for _, field := range f.Fields {
		if !field.Required {
			continue
		}
		v, ok := values[field.Name]
		if !ok || v == nil {
			missing = append(missing, field.Name)
			continue
		}
		if s, isString := v.(string); isString && strings.TrimSpace(s) == "" {
			missing = append(missing, field.Name)
		}
	}
	return missing
}

// Labels of the options offered for a boolean without a default.
const (
	LabelUnchanged = "Sin cambios"
	LabelYes       = "Sí"
	LabelNo        = "No"
)

// Controls builds input controls for the form, seeded with field defaults.
// A boolean with no default becomes a select whose blank option leaves the
// stored value untouched.
func (f Form) Controls() *form.Form {
	out := form.New(fmt.Sprintf("form-%s-%s", f.Action, f.Kind))
	for _, field := range f.Fields {
		ctrl := &form.Control{
			ID:       field.Name,
			Name:     field.Name,
			Label:    field.Label,
			Required: field.Required,
			Value:    field.Default,
		}
		switch {
		case field.Type == TypeBoolean && field.Default == "":
			ctrl.Kind = form.KindSelect
			ctrl.Options = []form.Option{
				{Value: "", Label: LabelUnchanged},
				{Value: "true", Label: LabelYes},
				{Value: "false", Label: LabelNo},
			}
		case field.Type == TypeBoolean:
			ctrl.Kind = form.KindCheckbox
			ctrl.Checked = field.Default == "true"
			ctrl.Value = ""
		case len(field.Enum) > 0:
			ctrl.Kind = form.KindSelect
			for _, opt := range field.Enum {
				ctrl.Options = append(ctrl.Options, form.Option{Value: opt, Label: opt})
			}
		case field.Widget == "textarea":
			ctrl.Kind = form.KindTextArea
		case field.Type == TypeInteger || field.Type == TypeNumber:
			ctrl.Kind = form.KindNumber
		default:
			ctrl.Kind = form.KindText
		}
		out.Add(ctrl)
	}
	return out
}

// Values reads the payload from controls built by Controls. Blank optional
// fields are left out so the server keeps its current value on update.
// Booleans and integers are typed; decimals stay as typed strings.
func (f Form) Values(controls *form.Form) map[string]any {
	values := make(map[string]any, len(f.Fields))
	for _, field := range f.Fields {
		ctrl, ok := controls.Control(field.Name)
		if !ok {
			continue
		}
		if field.Type == TypeBoolean {
			if ctrl.Kind == form.KindCheckbox {
				values[field.Name] = ctrl.Checked
			} else if b, err := strconv.ParseBool(strings.TrimSpace(ctrl.Value)); err == nil {
				values[field.Name] = b
			}
			continue
		}
		raw := ctrl.Value
		if strings.TrimSpace(raw) == "" {
			if field.Required {
				values[field.Name] = raw
			}
			continue
		}
		if field.Type == TypeInteger {
			if n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64); err == nil {
				values[field.Name] = n
				continue
			}
		}
		values[field.Name] = raw
	}
	return values
}

type formKey struct {
	kind   quote.EntityKind
	action Action
}

// Catalog indexes forms by entity kind and action.
type Catalog struct {
	forms map[formKey]Form
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the catalog built from the embedded contract.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = Load(context.Background(), contract)
	})
	return defaultCatalog, defaultErr
}

// Load builds a catalog from an OpenAPI document. Operations whose path is
// not /cotizaciones/<kind>/.../<action>/ are ignored.
func Load(ctx context.Context, raw []byte) (*Catalog, error) {
	ops, err := parser.Parse(ctx, raw, parser.Options{Validate: true})
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	c := &Catalog{forms: make(map[formKey]Form)}
	for _, op := range ops {
		kind, action, ok := classify(op.Path)
		if !ok {
			continue
		}
		c.forms[formKey{kind, action}] = Form{
			Kind:   kind,
			Action: action,
			Method: op.Method,
			Path:   op.Path,
			Fields: fields(op.Request),
		}
	}
	if len(c.forms) == 0 {
		return nil, errors.New("catalog: contract defines no master-data forms")
	}
	return c, nil
}

// Form returns the form for kind and action.
func (c *Catalog) Form(kind quote.EntityKind, action Action) (Form, error) {
	f, ok := c.forms[formKey{kind, action}]
	if !ok {
		return Form{}, fmt.Errorf("%w: %s %s", ErrUnknownForm, action, kind)
	}
	return f, nil
}

// Forms lists every form ordered by kind then action.
func (c *Catalog) Forms() []Form {
	out := make([]Form, 0, len(c.forms))
	for _, f := range c.forms {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Kind != out[j].Kind {
			return out[i].Kind < out[j].Kind
		}
		return out[i].Action < out[j].Action
	})
	return out
}

func classify(path string) (quote.EntityKind, Action, bool) {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	if len(segments) < 3 || segments[0] != "cotizaciones" {
		return "", "", false
	}
	kind, err := quote.ParseEntityKind(segments[1])
	if err != nil {
		return "", "", false
	}
	action := Action(segments[len(segments)-1])
	switch action {
	case ActionCreate, ActionUpdate, ActionDelete:
		return kind, action, true
	}
	return "", "", false
}

func fields(schema parser.Schema) []Field {
	names := schema.PropertyNames()
	out := make([]Field, 0, len(names))
	for _, name := range names {
		prop := schema.Properties[name]
		label := prop.Label()
		if label == "" {
			label = name
		}
		field := Field{
			Name:     name,
			Label:    label,
			Type:     prop.Type,
			Format:   prop.Format,
			Required: schema.IsRequired(name),
		}
		if w, ok := prop.Extensions["x-widget"].(string); ok {
			field.Widget = w
		}
		for _, e := range prop.Enum {
			field.Enum = append(field.Enum, fmt.Sprint(e))
		}
		if prop.Default != nil {
			field.Default = fmt.Sprint(prop.Default)
		}
		out = append(out, field)
	}
	return out
}
