package form

import (
	"errors"
	"fmt"
)

// ErrUnknownModal is returned for ids that were never registered.
var ErrUnknownModal = errors.New("form: unknown modal")

// Attachment is a sub-container owned by a modal. Clear must empty and hide
// it.
type Attachment interface {
	Clear()
}

// Modal is a dialog wrapping a form.
type Modal struct {
	ID          string
	Form        *Form
	visible     bool
	attachments []Attachment
}

// NewModal builds a hidden modal.
func NewModal(id string, f *Form, attachments ...Attachment) *Modal {
	return &Modal{ID: id, Form: f, attachments: attachments}
}

// Attach registers containers to clear when the modal closes.
func (m *Modal) Attach(attachments ...Attachment) {
	m.attachments = append(m.attachments, attachments...)
}

// Visible reports whether the modal is shown.
func (m *Modal) Visible() bool { return m.visible }

func (m *Modal) show() { m.visible = true }

func (m *Modal) hide() {
	m.visible = false
	m.Form.Reset()
	for _, a := range m.attachments {
		if a != nil {
			a.Clear()
		}
	}
}

// Modals is the set of dialogs on a page. Each modal is independent; showing
// one does not hide another.
type Modals struct {
	byID  map[string]*Modal
	order []string
}

// NewModals registers the given modals.
func NewModals(modals ...*Modal) *Modals {
	set := &Modals{byID: make(map[string]*Modal, len(modals))}
	for _, m := range modals {
		set.Register(m)
	}
	return set
}

// Register adds or replaces a modal.
func (s *Modals) Register(m *Modal) {
	if m == nil || m.ID == "" {
		return
	}
	if _, exists := s.byID[m.ID]; !exists {
		s.order = append(s.order, m.ID)
	}
	s.byID[m.ID] = m
}

// Get returns a registered modal.
func (s *Modals) Get(id string) (*Modal, error) {
	m, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownModal, id)
	}
	return m, nil
}

// Show makes a modal visible.
func (s *Modals) Show(id string) error {
	m, err := s.Get(id)
	if err != nil {
		return err
	}
	m.show()
	return nil
}

// Hide closes a modal, resets its controls and clears its attachments.
func (s *Modals) Hide(id string) error {
	m, err := s.Get(id)
	if err != nil {
		return err
	}
	m.hide()
	return nil
}

// HandleClick closes the visible modal whose backdrop was clicked. The
// backdrop is addressed by the modal id itself; clicks on anything inside the
// dialog carry another target and are ignored. It reports whether a modal was
// closed.
func (s *Modals) HandleClick(target string) bool {
	m, ok := s.byID[target]
	if !ok || !m.visible {
		return false
	}
	m.hide()
	return true
}

// Visible lists the ids of the shown modals in registration order.
func (s *Modals) Visible() []string {
	var out []string
	for _, id := range s.order {
		if s.byID[id].visible {
			out = append(out, id)
		}
	}
	return out
}
