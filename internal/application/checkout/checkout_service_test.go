package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/checkout"
	"github.com/storefront/backend/internal/domain/shared"
)

type stubGateway struct {
	received []checkout.OrderRequest
	err      error
}

func (g *stubGateway) PlaceOrder(_ context.Context, order checkout.OrderRequest) (OrderConfirmation, error) {
	g.received = append(g.received, order)
	if g.err != nil {
		return OrderConfirmation{}, g.err
	}
	return OrderConfirmation{TransactionURL: "https://pay.example.com/t/1"}, nil
}

// manualScheduler captures deferred work so tests fire it on demand
type manualScheduler struct {
	delay   time.Duration
	pending []func()
}

func (m *manualScheduler) schedule(d time.Duration, fn func()) {
	m.delay = d
	m.pending = append(m.pending, fn)
}

func (m *manualScheduler) fire() {
	for _, fn := range m.pending {
		fn()
	}
	m.pending = nil
}

func validForm() *checkout.Form {
	f := checkout.NewForm()
	_, _ = f.SetField(checkout.FieldFullName, "Jane Doe")
	_, _ = f.SetField(checkout.FieldEmail, "jane@example.com")
	_, _ = f.SetField(checkout.FieldContactNumber, "512345678")
	_, _ = f.SetField(checkout.FieldShippingAddress, "1 Main St")
	return f
}

func cartWith(t *testing.T, quantities map[string]int) *cart.Store {
	t.Helper()
	store := cart.NewStore()
	for id, qty := range quantities {
		require.NoError(t, store.AddItem(cart.Item{
			ID:       id,
			Title:    "Widget " + id,
			Price:    decimal.NewFromInt(100),
			Quantity: qty,
		}))
	}
	return store
}

func TestCheckoutService_View(t *testing.T) {
	svc := NewCheckoutService(&stubGateway{})
	form := checkout.NewForm()
	store := cart.NewStore()

	view := svc.View(form, store)
	assert.True(t, view.CartEmpty)
	assert.NotEmpty(t, view.DeliveryDate)
	assert.True(t, view.TransactionAmount.IsZero())
}

func TestCheckoutService_SetField(t *testing.T) {
	svc := NewCheckoutService(&stubGateway{})
	form := checkout.NewForm()
	store := cartWith(t, map[string]int{"p1": 1})

	view, err := svc.SetField(form, store, checkout.FieldEmail, "bad")
	require.NoError(t, err)
	assert.NotEmpty(t, view.Errors[checkout.FieldEmail])
	assert.False(t, view.CartEmpty)

	_, err = svc.SetField(form, store, "unknown", "x")
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestCheckoutService_Submit(t *testing.T) {
	t.Run("full flow: order shape, success flag, delayed cart clear", func(t *testing.T) {
		gateway := &stubGateway{}
		sched := &manualScheduler{}
		svc := NewCheckoutService(gateway,
			WithClearDelay(3*time.Second),
			WithScheduler(sched.schedule))

		form := validForm()
		store := cartWith(t, nil)
		// p1 added twice: 2 then 1 must merge into one line of 3.
		require.NoError(t, store.AddItem(cart.Item{ID: "p1", Title: "Widget", Price: decimal.NewFromInt(100), Quantity: 2}))
		require.NoError(t, store.AddItem(cart.Item{ID: "p1", Title: "Widget", Price: decimal.NewFromInt(100), Quantity: 1}))

		result, err := svc.Submit(context.Background(), form, store)
		require.NoError(t, err)
		assert.Equal(t, "https://pay.example.com/t/1", result.TransactionURL)
		assert.True(t, result.Checkout.SubmitSuccess)
		assert.False(t, result.Checkout.Submitting)

		require.Len(t, gateway.received, 1)
		order := gateway.received[0]
		require.Len(t, order.Products, 1)
		assert.Equal(t, checkout.OrderProduct{ID: "p1", Quantity: 3}, order.Products[0])
		assert.True(t, order.TransactionAmount.Equal(decimal.NewFromInt(300)))
		assert.Equal(t, "Jane Doe", order.FullName)
		assert.Equal(t, form.Snapshot().DeliveryDate, order.OrderDeliveryDate)

		// The cart survives until the scheduled clear fires.
		assert.Equal(t, 3*time.Second, sched.delay)
		assert.False(t, store.IsEmpty())
		sched.fire()
		assert.True(t, store.IsEmpty())
		assert.Equal(t, checkout.StateEditing, form.State())
		assert.Empty(t, form.Snapshot().Fields)
	})

	t.Run("empty cart is rejected before anything is sent", func(t *testing.T) {
		gateway := &stubGateway{}
		svc := NewCheckoutService(gateway)

		result, err := svc.Submit(context.Background(), validForm(), cart.NewStore())
		assert.ErrorIs(t, err, shared.ErrCartEmpty)
		assert.True(t, result.Checkout.CartEmpty)
		assert.Empty(t, gateway.received)
	})

	t.Run("validation failures keep the session editing", func(t *testing.T) {
		gateway := &stubGateway{}
		svc := NewCheckoutService(gateway)
		form := checkout.NewForm()
		_, _ = form.SetField(checkout.FieldFullName, "Jane Doe")

		result, err := svc.Submit(context.Background(), form, cartWith(t, map[string]int{"p1": 1}))
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
		assert.NotEmpty(t, result.Checkout.Errors[checkout.FieldEmail])
		assert.Equal(t, checkout.StateEditing, form.State())
		assert.Empty(t, gateway.received)
	})

	t.Run("duplicate submission is blocked while in flight", func(t *testing.T) {
		gateway := &stubGateway{}
		svc := NewCheckoutService(gateway)
		form := validForm()
		store := cartWith(t, map[string]int{"p1": 1})

		_, err := form.BeginSubmit()
		require.NoError(t, err)

		_, err = svc.Submit(context.Background(), form, store)
		assert.ErrorIs(t, err, shared.ErrSubmitInProgress)
		assert.Empty(t, gateway.received)
	})

	t.Run("upstream failure surfaces and returns to editing", func(t *testing.T) {
		boom := errors.New("bad gateway")
		gateway := &stubGateway{err: boom}
		sched := &manualScheduler{}
		svc := NewCheckoutService(gateway, WithScheduler(sched.schedule))
		form := validForm()
		store := cartWith(t, map[string]int{"p1": 2})

		result, err := svc.Submit(context.Background(), form, store)
		require.Error(t, err)
		assert.ErrorIs(t, err, boom)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ORDER_SUBMIT_FAILED", domainErr.Code)

		assert.Equal(t, checkout.StateEditing, form.State())
		assert.False(t, result.Checkout.Submitting)
		assert.False(t, result.Checkout.SubmitSuccess)
		assert.Equal(t, "Jane Doe", result.Checkout.Fields[checkout.FieldFullName])
		assert.False(t, store.IsEmpty(), "failed submission must not touch the cart")
		assert.Empty(t, sched.pending)

		// The retry succeeds.
		gateway.err = nil
		retry, err := svc.Submit(context.Background(), form, store)
		require.NoError(t, err)
		assert.Equal(t, "https://pay.example.com/t/1", retry.TransactionURL)
	})
}
