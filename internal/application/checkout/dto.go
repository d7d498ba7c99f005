package checkout

import (
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/checkout"
)

// CheckoutView is the checkout page state: form snapshot plus the cart facts
// the form depends on
type CheckoutView struct {
	Fields            map[string]string `json:"fields"`
	Errors            map[string]string `json:"errors"`
	DeliveryDate      string            `json:"deliveryDate"`
	Submitting        bool              `json:"submitting"`
	SubmitSuccess     bool              `json:"submitSuccess"`
	CartEmpty         bool              `json:"cartEmpty"`
	TransactionAmount decimal.Decimal   `json:"transactionAmount"`
}

// SubmitResult carries the payment redirect target after an accepted order
type SubmitResult struct {
	TransactionURL string       `json:"transactionUrl"`
	Checkout       CheckoutView `json:"checkout"`
}

// OrderConfirmation is what the outbound order gateway reports back on
// success
type OrderConfirmation struct {
	TransactionURL string
	OrderNumber    string
}

func toView(form checkout.FormState, cartEmpty bool, amount decimal.Decimal) CheckoutView {
	return CheckoutView{
		Fields:            form.Fields,
		Errors:            form.Errors,
		DeliveryDate:      form.DeliveryDate,
		Submitting:        form.Submitting,
		SubmitSuccess:     form.SubmitSuccess,
		CartEmpty:         cartEmpty,
		TransactionAmount: amount,
	}
}
