package checkout

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/checkout"
	"github.com/storefront/backend/internal/domain/shared"
)

// OrderGateway is the outbound port to the commerce API order endpoint.
// Implemented by the upstream client in the infrastructure layer.
type OrderGateway interface {
	PlaceOrder(ctx context.Context, order checkout.OrderRequest) (OrderConfirmation, error)
}

// CheckoutService runs the checkout flow for a session: field edits with
// validation on change, submission with the duplicate-submit and empty-cart
// guards, and the post-success cart clear.
type CheckoutService struct {
	gateway    OrderGateway
	logger     *zap.Logger
	clearDelay time.Duration
	schedule   func(d time.Duration, fn func())
}

// CheckoutServiceOption configures a CheckoutService
type CheckoutServiceOption func(*CheckoutService)

// WithCheckoutLogger sets the service logger
func WithCheckoutLogger(logger *zap.Logger) CheckoutServiceOption {
	return func(s *CheckoutService) {
		s.logger = logger
	}
}

// WithClearDelay overrides how long after a successful submission the cart
// is cleared
func WithClearDelay(d time.Duration) CheckoutServiceOption {
	return func(s *CheckoutService) {
		s.clearDelay = d
	}
}

// WithScheduler replaces the deferred-execution primitive, used by tests to
// fire the post-success clear deterministically
func WithScheduler(schedule func(d time.Duration, fn func())) CheckoutServiceOption {
	return func(s *CheckoutService) {
		s.schedule = schedule
	}
}

// NewCheckoutService creates a CheckoutService
func NewCheckoutService(gateway OrderGateway, opts ...CheckoutServiceOption) *CheckoutService {
	s := &CheckoutService{
		gateway:    gateway,
		logger:     zap.NewNop(),
		clearDelay: 3 * time.Second,
		schedule: func(d time.Duration, fn func()) {
			time.AfterFunc(d, fn)
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// View returns the current checkout page state for a session
func (s *CheckoutService) View(form *checkout.Form, store *cart.Store) CheckoutView {
	return toView(form.Snapshot(), store.IsEmpty(), store.Total())
}

// SetField updates one form field, validating it in place. Validation
// problems are reported inside the view, not as an error; the error return
// covers unknown fields and edits during an in-flight submission.
func (s *CheckoutService) SetField(form *checkout.Form, store *cart.Store, name, value string) (CheckoutView, error) {
	snap, err := form.SetField(name, value)
	if err != nil {
		return toView(snap, store.IsEmpty(), store.Total()), err
	}
	return toView(snap, store.IsEmpty(), store.Total()), nil
}

// Submit places the order built from the form fields and the live cart.
// An empty cart and an in-flight submission are rejected before anything is
// sent; validation failures keep the session in editing with field-scoped
// errors in the view. On upstream failure the session returns to editing and
// the caller gets a retryable error. On success the cart is cleared and the
// form reset after the configured delay.
func (s *CheckoutService) Submit(ctx context.Context, form *checkout.Form, store *cart.Store) (SubmitResult, error) {
	if store.IsEmpty() {
		return SubmitResult{Checkout: s.View(form, store)}, shared.ErrCartEmpty
	}

	snap, err := form.BeginSubmit()
	if err != nil {
		return SubmitResult{Checkout: toView(snap, store.IsEmpty(), store.Total())}, err
	}

	order := checkout.BuildOrderRequest(snap.Fields, snap.DeliveryDate, store.Items())

	confirmation, err := s.gateway.PlaceOrder(ctx, order)
	if err != nil {
		snap = form.FailSubmit()
		s.logger.Error("order submission failed",
			zap.String("delivery_date", order.OrderDeliveryDate),
			zap.Int("lines", len(order.Products)),
			zap.Error(err))
		return SubmitResult{Checkout: toView(snap, store.IsEmpty(), store.Total())},
			errors.Join(errOrderSubmitFailed, err)
	}

	snap = form.CompleteSubmit()
	s.logger.Info("order accepted",
		zap.String("transaction_amount", order.TransactionAmount.StringFixed(2)),
		zap.Int("lines", len(order.Products)))

	s.schedule(s.clearDelay, func() {
		store.Clear()
		form.Reset()
	})

	return SubmitResult{
		TransactionURL: confirmation.TransactionURL,
		Checkout:       toView(snap, store.IsEmpty(), store.Total()),
	}, nil
}

// errOrderSubmitFailed is the user-facing shape of any upstream order
// failure; the joined underlying error stays available for logs and tests
var errOrderSubmitFailed = shared.NewDomainError("ORDER_SUBMIT_FAILED",
	"The order could not be submitted. Please try again.")
