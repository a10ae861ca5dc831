// Package parser reads an OpenAPI 3 document with kin-openapi and reduces each
// operation to the request body schema needed to build an input form.
package parser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// Extension keys understood on request body properties.
const (
	ExtensionOrder = "x-order"
	ExtensionLabel = "x-label"
)

// Options tune parsing.
type Options struct {
	// Validate runs kin-openapi document validation before extraction.
	Validate bool
}

// Schema is the subset of a JSON schema the forms need.
type Schema struct {
	Type        string
	Format      string
	Title       string
	Description string
	Default     any
	Enum        []any
	Required    []string
	Properties  map[string]Schema
	Extensions  map[string]any
}

// PropertyNames lists properties ordered by their x-order extension, then by
// name.
func (s Schema) PropertyNames() []string {
	names := make([]string, 0, len(s.Properties))
	for name := range s.Properties {
		names = append(names, name)
	}
	sort.SliceStable(names, func(i, j int) bool {
		oi, oki := s.Properties[names[i]].Order()
		oj, okj := s.Properties[names[j]].Order()
		switch {
		case oki && okj && oi != oj:
			return oi < oj
		case oki != okj:
			return oki
		default:
			return names[i] < names[j]
		}
	})
	return names
}

// Order returns the x-order extension.
func (s Schema) Order() (int, bool) {
	switch v := s.Extensions[ExtensionOrder].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case int64:
		return int(v), true
	case json.Number:
		n, err := v.Int64()
		return int(n), err == nil
	default:
		return 0, false
	}
}

// Label returns the x-label extension, falling back to the title.
func (s Schema) Label() string {
	if label, ok := s.Extensions[ExtensionLabel].(string); ok && label != "" {
		return label
	}
	return s.Title
}

// IsRequired reports whether name is listed as required.
func (s Schema) IsRequired(name string) bool {
	for _, r := range s.Required {
		if r == name {
			return true
		}
	}
	return false
}

// Operation is one path/method pair.
type Operation struct {
	ID         string
	Method     string
	Path       string
	Summary    string
	Request    Schema
	Extensions map[string]any
}

// Parse loads raw and returns its operations keyed by operationId. Operations
// without an id are keyed "<method>:<path>".
func Parse(ctx context.Context, raw []byte, opts Options) (map[string]Operation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, errors.New("openapi parser: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi parser: load document: %w", err)
	}
	if opts.Validate {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi parser: validate: %w", err)
		}
	}
	if spec.Paths == nil || spec.Paths.Len() == 0 {
		return nil, errors.New("openapi parser: document does not contain any paths")
	}

	operations := make(map[string]Operation)
	for path, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		for method, op := range item.Operations() {
			collect(operations, method, path, op)
		}
	}
	if len(operations) == 0 {
		return nil, errors.New("openapi parser: no operations extracted")
	}
	return operations, nil
}

func collect(target map[string]Operation, method, path string, op *openapi3.Operation) {
	if op == nil {
		return
	}
	id := op.OperationID
	if id == "" {
		id = strings.ToLower(method) + ":" + path
	}
	target[id] = Operation{
		ID:         id,
		Method:     strings.ToUpper(method),
		Path:       path,
		Summary:    op.Summary,
		Request:    requestSchema(op.RequestBody),
		Extensions: copyExtensions(op.Extensions),
	}
}

func requestSchema(body *openapi3.RequestBodyRef) Schema {
	if body == nil || body.Value == nil {
		return Schema{}
	}
	if mt, ok := body.Value.Content["application/json"]; ok && mt != nil {
		return convertSchema(mt.Schema)
	}
	for _, mt := range body.Value.Content {
		if mt != nil {
			return convertSchema(mt.Schema)
		}
	}
	return Schema{}
}

func convertSchema(ref *openapi3.SchemaRef) Schema {
	if ref == nil || ref.Value == nil {
		return Schema{}
	}
	src := ref.Value
	schema := Schema{
		Type:        firstType(src.Type),
		Format:      src.Format,
		Title:       src.Title,
		Description: src.Description,
		Default:     src.Default,
		Extensions:  copyExtensions(src.Extensions),
	}
	if len(src.Required) > 0 {
		schema.Required = append([]string(nil), src.Required...)
	}
	if len(src.Enum) > 0 {
		schema.Enum = append([]any(nil), src.Enum...)
	}
	if len(src.Properties) > 0 {
		schema.Properties = make(map[string]Schema, len(src.Properties))
		for name, prop := range src.Properties {
			schema.Properties[name] = convertSchema(prop)
		}
	}
	return schema
}

func firstType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	for _, t := range types.Slice() {
		if t != "null" {
			return t
		}
	}
	return ""
}

func copyExtensions(raw map[string]any) map[string]any {
	if len(raw) == 0 {
		return nil
	}
	out := make(map[string]any, len(raw))
	for k, v := range raw {
		if strings.HasPrefix(k, "x-") {
			out[k] = v
		}
	}
	return out
}
