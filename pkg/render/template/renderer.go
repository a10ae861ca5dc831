package template

import "io"

// TemplateRenderer renders named templates or inline template content. When
// writers are given the output is copied to each of them as well.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderString(content string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
}
