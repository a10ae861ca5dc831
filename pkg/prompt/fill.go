package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-cotizador/pkg/form"
)

// ErrRequired is returned by the validator of a required control left blank.
var ErrRequired = errors.New("prompt: value required")

// Fill prompts for each control of f in order, or only for ids when given,
// and stores the answers on the controls.
func Fill(ctx context.Context, driver Driver, f *form.Form, ids ...string) error {
	controls := f.Controls()
	if len(ids) > 0 {
		controls = controls[:0]
		for _, id := range ids {
			c, ok := f.Control(id)
			if !ok {
				return fmt.Errorf("prompt: %s: unknown control %q", f.ID, id)
			}
			controls = append(controls, c)
		}
	}
	for _, c := range controls {
		if c.Kind == form.KindHidden {
			continue
		}
		if err := Ask(ctx, driver, c); err != nil {
			return fmt.Errorf("prompt: %s: %w", c.ID, err)
		}
	}
	return nil
}

// Ask prompts for a single control according to its kind.
func Ask(ctx context.Context, driver Driver, c *form.Control) error {
	label := c.Label
	if label == "" {
		label = c.ID
	}
	if c.Required {
		label += " *"
	}

	switch c.Kind {
	case form.KindCheckbox:
		ok, err := driver.Confirm(ctx, ConfirmConfig{Message: label, Default: c.Checked})
		if err != nil {
			return err
		}
		c.Checked = ok
	case form.KindSelect:
		labels := make([]string, len(c.Options))
		def := 0
		for i, opt := range c.Options {
			labels[i] = optionLabel(opt)
			if opt.Value == c.Value {
				def = i
			}
		}
		idx, err := driver.Select(ctx, SelectConfig{Message: label, Options: labels, DefaultIndex: def})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(c.Options) {
			return fmt.Errorf("prompt: selection %d out of range", idx)
		}
		c.Value = c.Options[idx].Value
	case form.KindTextArea:
		out, err := driver.TextArea(ctx, TextAreaConfig{Message: label, Default: c.Value})
		if err != nil {
			return err
		}
		c.Value = out
	default:
		cfg := InputConfig{Message: label, Default: c.Value}
		if c.Required {
			cfg.Validator = requireValue
		}
		out, err := driver.Input(ctx, cfg)
		if err != nil {
			return err
		}
		c.Value = out
	}
	return nil
}

func optionLabel(opt form.Option) string {
	if opt.Label != "" {
		return opt.Label
	}
	if opt.Value == "" {
		return "(ninguno)"
	}
	return opt.Value
}

func requireValue(s string) error {
	if strings.TrimSpace(s) == "" {
		return ErrRequired
	}
	return nil
}
