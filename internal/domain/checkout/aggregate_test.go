package checkout

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/backend/internal/domain/shared"
)

func fillValid(f *Form) {
	_, _ = f.SetField(FieldFullName, "Jane Doe")
	_, _ = f.SetField(FieldEmail, "jane@example.com")
	_, _ = f.SetField(FieldContactNumber, "512345678")
	_, _ = f.SetField(FieldShippingAddress, "1 Main St")
}

func TestForm_SetField(t *testing.T) {
	t.Run("rejects unknown field names", func(t *testing.T) {
		f := NewForm()
		_, err := f.SetField("creditCard", "x")
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	t.Run("validates on change and clears the error once fixed", func(t *testing.T) {
		f := NewForm()

		snap, err := f.SetField(FieldEmail, "not-an-email")
		require.NoError(t, err)
		assert.NotEmpty(t, snap.Errors[FieldEmail])

		snap, err = f.SetField(FieldEmail, "jane@example.com")
		require.NoError(t, err)
		assert.NotContains(t, snap.Errors, FieldEmail)
	})

	t.Run("normalizes the contact number before storing", func(t *testing.T) {
		f := NewForm()
		snap, err := f.SetField(FieldContactNumber, "+512-345-6789999")
		require.NoError(t, err)
		assert.Equal(t, "512345678", snap.Fields[FieldContactNumber])
		assert.NotContains(t, snap.Errors, FieldContactNumber)
	})

	t.Run("editing after success starts a new order", func(t *testing.T) {
		f := NewForm()
		fillValid(f)
		_, err := f.BeginSubmit()
		require.NoError(t, err)
		f.CompleteSubmit()

		snap, err := f.SetField(FieldNotes, "ring the bell")
		require.NoError(t, err)
		assert.Equal(t, StateEditing, f.State())
		assert.False(t, snap.SubmitSuccess)
	})
}

func TestForm_SubmitLifecycle(t *testing.T) {
	t.Run("begin submit fails on validation errors", func(t *testing.T) {
		f := NewForm()
		_, _ = f.SetField(FieldFullName, "Jane Doe")

		snap, err := f.BeginSubmit()
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
		assert.Equal(t, StateEditing, f.State())
		assert.NotEmpty(t, snap.Errors[FieldEmail])
		assert.NotEmpty(t, snap.Errors[FieldContactNumber])
		assert.NotEmpty(t, snap.Errors[FieldShippingAddress])
	})

	t.Run("a second submit is blocked while one is in flight", func(t *testing.T) {
		f := NewForm()
		fillValid(f)

		snap, err := f.BeginSubmit()
		require.NoError(t, err)
		assert.True(t, snap.Submitting)

		_, err = f.BeginSubmit()
		assert.ErrorIs(t, err, shared.ErrSubmitInProgress)

		_, err = f.SetField(FieldNotes, "too late")
		assert.ErrorIs(t, err, shared.ErrSubmitInProgress)
	})

	t.Run("failure returns to editing with values intact", func(t *testing.T) {
		f := NewForm()
		fillValid(f)
		_, err := f.BeginSubmit()
		require.NoError(t, err)

		snap := f.FailSubmit()
		assert.Equal(t, StateEditing, f.State())
		assert.False(t, snap.Submitting)
		assert.Equal(t, "Jane Doe", snap.Fields[FieldFullName])

		// The retry goes through.
		_, err = f.BeginSubmit()
		assert.NoError(t, err)
	})

	t.Run("success flags the snapshot and reset clears everything", func(t *testing.T) {
		f := NewForm()
		fillValid(f)
		_, err := f.BeginSubmit()
		require.NoError(t, err)

		snap := f.CompleteSubmit()
		assert.Equal(t, StateSuccess, f.State())
		assert.True(t, snap.SubmitSuccess)
		assert.False(t, snap.Submitting)

		snap = f.Reset()
		assert.Equal(t, StateEditing, f.State())
		assert.Empty(t, snap.Fields)
		assert.Empty(t, snap.Errors)
	})
}

func TestForm_DeliveryDateFixedAtCreation(t *testing.T) {
	f := NewFormAt(time.Date(2026, 3, 25, 10, 0, 0, 0, time.UTC))

	snap := f.Snapshot()
	assert.Equal(t, "2026-04-01", snap.DeliveryDate)

	// Submission does not move the promised date.
	fillValid(f)
	_, err := f.BeginSubmit()
	require.NoError(t, err)
	assert.Equal(t, "2026-04-01", f.Snapshot().DeliveryDate)
}

func TestForm_SnapshotIsolation(t *testing.T) {
	f := NewForm()
	_, _ = f.SetField(FieldFullName, "Jane Doe")

	snap := f.Snapshot()
	snap.Fields[FieldFullName] = "mutated"

	assert.Equal(t, "Jane Doe", f.Snapshot().Fields[FieldFullName])
}
