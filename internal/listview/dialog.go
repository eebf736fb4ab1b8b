package listview

import "errors"

// Kind tags which CRUD dialog is open.
type Kind int

const (
	None Kind = iota
	Add
	Edit
	Delete
	ResetPassword
)

// ErrBusy is returned by Begin while an operation is already in flight,
// so a double submit is rejected structurally rather than relying on a
// disabled button.
var ErrBusy = errors.New("operation already in flight")

// Dialog is a single-slot modal orchestrator: at most one dialog is open
// at a time and opening another replaces it outright, never stacks.
// Target is non-nil exactly for the kinds that act on an existing
// entity (Edit, Delete, ResetPassword).
type Dialog[E any] struct {
	kind    Kind
	target  *E
	err     string
	loading bool
}

func (d *Dialog[E]) Kind() Kind    { return d.kind }
func (d *Dialog[E]) Target() *E    { return d.target }
func (d *Dialog[E]) Err() string   { return d.err }
func (d *Dialog[E]) Loading() bool { return d.loading }

// Open replaces whatever is currently open and clears any stale error.
func (d *Dialog[E]) Open(kind Kind, target *E) {
	if kind == None || kind == Add {
		target = nil
	}
	d.kind = kind
	d.target = target
	d.err = ""
	d.loading = false
}

func (d *Dialog[E]) Close() {
	d.kind = None
	d.target = nil
	d.err = ""
	d.loading = false
}

// Begin marks the open dialog's operation as in flight.
func (d *Dialog[E]) Begin() error {
	if d.loading {
		return ErrBusy
	}
	d.loading = true
	return nil
}

// Fail records a retryable operation error; the dialog stays open so the
// user can resubmit or cancel.
func (d *Dialog[E]) Fail(msg string) {
	d.err = msg
	d.loading = false
}

// Succeed applies the completed mutation and closes the dialog.
func (d *Dialog[E]) Succeed(apply func()) {
	if apply != nil {
		apply()
	}
	d.Close()
}

// Run drives one operation through the begin/fail/succeed cycle: op is
// the (possibly slow) backend call, apply the store write-back executed
// only on success.
func (d *Dialog[E]) Run(op func() error, apply func()) error {
	if err := d.Begin(); err != nil {
		return err
	}
	if err := op(); err != nil {
		d.Fail(err.Error())
		return err
	}
	d.Succeed(apply)
	return nil
}
