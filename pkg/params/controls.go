package params

import (
	"strconv"

	"github.com/goliatone/go-cotizador/pkg/form"
	"github.com/goliatone/go-cotizador/pkg/quote"
)

// ControlID is the element id of a parameter control.
func ControlID(paramID int64) string {
	return "param-" + strconv.FormatInt(paramID, 10)
}

// BuildField renders the control for one parameter. Select and boolean
// parameters become choices, number parameters a numeric input and anything
// else a text input.
func BuildField(p quote.Parameter) Field {
	ctrl := &form.Control{
		ID:       ControlID(p.ID),
		Name:     strconv.FormatInt(p.ID, 10),
		Label:    p.Name,
		Required: p.Required,
	}

	switch p.Type {
	case quote.ParameterSelect:
		ctrl.Kind = form.KindSelect
		for _, opt := range p.Options {
			ctrl.Options = append(ctrl.Options, form.Option{Value: opt, Label: opt})
		}
		preselect(ctrl, p.DefaultValue)
	case quote.ParameterBoolean:
		ctrl.Kind = form.KindSelect
		ctrl.Options = []form.Option{
			{Value: "true", Label: "Sí"},
			{Value: "false", Label: "No"},
		}
		preselect(ctrl, p.DefaultValue)
	case quote.ParameterNumber:
		ctrl.Kind = form.KindNumber
		ctrl.Value = p.DefaultValue
	default:
		ctrl.Kind = form.KindText
		ctrl.Value = p.DefaultValue
	}
	return Field{Param: p, Control: ctrl}
}

// preselect picks the default when it names an option, the first option
// otherwise.
func preselect(ctrl *form.Control, def string) {
	if def != "" && ctrl.Select(def) {
		return
	}
	if len(ctrl.Options) > 0 {
		ctrl.Value = ctrl.Options[0].Value
	}
}
