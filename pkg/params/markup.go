package params

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-cotizador/pkg/form"
	"github.com/goliatone/go-cotizador/pkg/render/template"
	"github.com/goliatone/go-cotizador/pkg/render/template/gotemplate"
)

//go:embed templates/*.tpl
var templateFS embed.FS

const parametersTemplate = "parameters"

var (
	markupPolicyOnce sync.Once
	markupPolicy     *bluemonday.Policy
)

// Markup renders a container as an HTML fragment.
type Markup struct {
	renderer template.TemplateRenderer
}

// NewMarkup uses renderer, or the embedded pongo2 templates when nil.
func NewMarkup(renderer template.TemplateRenderer) (*Markup, error) {
	if renderer == nil {
		sub, err := fs.Sub(templateFS, "templates")
		if err != nil {
			return nil, fmt.Errorf("params: templates: %w", err)
		}
		engine, err := gotemplate.New(gotemplate.WithFS(sub))
		if err != nil {
			return nil, fmt.Errorf("params: template engine: %w", err)
		}
		renderer = engine
	}
	return &Markup{renderer: renderer}, nil
}

// Render returns the sanitized fragment for the container. An empty container
// renders as "".
func (m *Markup) Render(c *Container) (string, error) {
	fields := c.Fields()
	data := make([]map[string]any, 0, len(fields))
	for _, f := range fields {
		data = append(data, fieldData(f))
	}
	raw, err := m.renderer.Render(parametersTemplate, map[string]any{"fields": data})
	if err != nil {
		return "", fmt.Errorf("params: render: %w", err)
	}
	return strings.TrimSpace(sanitizer().Sanitize(raw)), nil
}

func fieldData(f Field) map[string]any {
	ctrl := f.Control
	kind := string(ctrl.Kind)
	if ctrl.Kind != form.KindSelect && ctrl.Kind != form.KindNumber {
		kind = string(form.KindText)
	}
	options := make([]map[string]any, 0, len(ctrl.Options))
	for _, opt := range ctrl.Options {
		options = append(options, map[string]any{
			"value":    opt.Value,
			"label":    opt.Label,
			"selected": opt.Value == ctrl.Value,
		})
	}
	return map[string]any{
		"id":      ctrl.ID,
		"name":    ctrl.Name,
		"label":   f.Label(),
		"kind":    kind,
		"value":   ctrl.Value,
		"options": options,
	}
}

func sanitizer() *bluemonday.Policy {
	markupPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("h4", "div", "label", "select", "option", "input")
		policy.AllowAttrs("class").OnElements("div")
		policy.AllowAttrs("for").OnElements("label")
		policy.AllowAttrs("id", "name").OnElements("select", "input")
		policy.AllowAttrs("type", "value").OnElements("input")
		policy.AllowAttrs("value", "selected").OnElements("option")
		markupPolicy = policy
	})
	return markupPolicy
}
