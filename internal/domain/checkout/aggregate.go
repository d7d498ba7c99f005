package checkout

import (
	"sync"
	"time"

	"github.com/storefront/backend/internal/domain/shared"
)

// Form is the checkout aggregate for one session. It owns the field values,
// per-field validation errors and the submission lifecycle, and guards them
// with a mutex so concurrent requests from the same session stay consistent.
type Form struct {
	mu    sync.Mutex
	state State
	form  FormState
}

// NewForm returns a Form in the editing state with empty fields. The promised
// delivery date is fixed at construction and not recomputed on resubmission.
func NewForm() *Form {
	return NewFormAt(time.Now())
}

// NewFormAt is NewForm with an explicit clock reading
func NewFormAt(now time.Time) *Form {
	form := NewFormState()
	form.DeliveryDate = DeliveryDate(now)
	return &Form{
		state: StateEditing,
		form:  form,
	}
}

// SetField stores a field value and validates it in place. The contact number
// is normalized before storage so the stored value is always digits-only.
// Unknown field names are rejected.
func (f *Form) SetField(name, value string) (FormState, error) {
	if !KnownField(name) {
		return FormState{}, shared.ErrInvalidInput
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == StateSubmitting {
		return f.snapshotLocked(), shared.ErrSubmitInProgress
	}
	// Any edit after a successful submission starts a fresh order.
	if f.state == StateSuccess {
		f.state = StateEditing
		f.form.SubmitSuccess = false
	}

	if name == FieldContactNumber {
		value = NormalizeContactNumber(value)
	}
	f.form.Fields[name] = value

	if msg := ValidateField(name, value); msg != "" {
		f.form.Errors[name] = msg
	} else {
		delete(f.form.Errors, name)
	}
	return f.snapshotLocked(), nil
}

// BeginSubmit re-validates every field and, when the form is clean, moves the
// aggregate into the submitting state. It fails when a submission is already
// in flight or when validation finds errors; the error map in the returned
// snapshot carries the field-scoped messages either way.
func (f *Form) BeginSubmit() (FormState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == StateSubmitting {
		return f.snapshotLocked(), shared.ErrSubmitInProgress
	}

	f.form.Errors = ValidateAll(f.form.Fields)
	if len(f.form.Errors) > 0 {
		f.state = StateEditing
		return f.snapshotLocked(), shared.ErrInvalidInput
	}

	f.state = StateSubmitting
	f.form.Submitting = true
	f.form.SubmitSuccess = false
	return f.snapshotLocked(), nil
}

// FailSubmit returns the aggregate to the editing state after an upstream
// failure so the user can retry with the entered values intact
func (f *Form) FailSubmit() FormState {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.state = StateEditing
	f.form.Submitting = false
	f.form.SubmitSuccess = false
	return f.snapshotLocked()
}

// CompleteSubmit marks the submission as accepted
func (f *Form) CompleteSubmit() FormState {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.state = StateSuccess
	f.form.Submitting = false
	f.form.SubmitSuccess = true
	return f.snapshotLocked()
}

// Reset discards all entered values and errors and returns to editing
func (f *Form) Reset() FormState {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.state = StateEditing
	next := NewFormState()
	next.DeliveryDate = DeliveryDate(time.Now())
	f.form = next
	return f.snapshotLocked()
}

// State reports the current lifecycle state
func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Snapshot returns a deep copy of the current form state
func (f *Form) Snapshot() FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshotLocked()
}

func (f *Form) snapshotLocked() FormState {
	return f.form.clone()
}
