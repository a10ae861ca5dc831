// Package form models the dialogs and controls of the quote editor as plain
// values. A Form owns its controls by id; a Modal pairs a Form with a
// visibility flag and the sub-containers that must be emptied when it closes.
package form
