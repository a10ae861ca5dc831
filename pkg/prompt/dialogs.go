package prompt

import (
	"context"
	"errors"
)

// Notifier shows a message the user has to acknowledge.
type Notifier interface {
	Notify(ctx context.Context, message string) error
}

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(ctx context.Context, message string) (bool, error)
}

// Dialogs implements Notifier and Confirmer on a Driver.
type Dialogs struct {
	driver Driver
}

// NewDialogs wraps driver.
func NewDialogs(driver Driver) *Dialogs {
	return &Dialogs{driver: driver}
}

// Notify prints message.
func (d *Dialogs) Notify(ctx context.Context, message string) error {
	return d.driver.Info(ctx, message)
}

// Confirm asks message, defaulting to no. An aborted prompt counts as a
// refusal.
func (d *Dialogs) Confirm(ctx context.Context, message string) (bool, error) {
	ok, err := d.driver.Confirm(ctx, ConfirmConfig{Message: message})
	if errors.Is(err, ErrAborted) {
		return false, nil
	}
	return ok, err
}
