package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appcheckout "github.com/storefront/backend/internal/application/checkout"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/storefront/backend/internal/interfaces/http/dto"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
)

// CheckoutHandler serves the checkout flow
type CheckoutHandler struct {
	BaseHandler
	checkouts *appcheckout.CheckoutService
}

// NewCheckoutHandler creates a CheckoutHandler
func NewCheckoutHandler(checkouts *appcheckout.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkouts: checkouts}
}

// RegisterRoutes wires the checkout routes
func (h *CheckoutHandler) RegisterRoutes(rg *gin.RouterGroup) {
	checkout := rg.Group("/checkout")
	checkout.GET("", h.View)
	checkout.PUT("/fields/:name", h.SetField)
	checkout.POST("/submit", h.Submit)
}

// SetFieldRequest carries one form field value. An empty value is legal: it
// clears the field and reports the required-field error in the view.
type SetFieldRequest struct {
	Value string `json:"value"`
}

// View returns the checkout page state
func (h *CheckoutHandler) View(c *gin.Context) {
	sess := middleware.GetSession(c)
	h.Success(c, h.checkouts.View(sess.Checkout, sess.Cart))
}

// SetField updates one checkout form field, validating on change
func (h *CheckoutHandler) SetField(c *gin.Context) {
	var req SetFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	sess := middleware.GetSession(c)
	view, err := h.checkouts.SetField(sess.Checkout, sess.Cart, c.Param("name"), req.Value)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// Submit places the order built from the form and the live cart
func (h *CheckoutHandler) Submit(c *gin.Context) {
	sess := middleware.GetSession(c)

	result, err := h.checkouts.Submit(c.Request.Context(), sess.Checkout, sess.Cart)
	if err != nil {
		logger.GetGinLogger(c).Warn("checkout submission rejected", zap.Error(err))

		// Keep the checkout view in the envelope so clients can render the
		// field errors without a second request.
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) {
			c.JSON(dto.GetHTTPStatus(domainErr.Code), dto.Response{
				Data: result.Checkout,
				Error: &dto.ErrorInfo{
					Code:      domainErr.Code,
					Message:   domainErr.Message,
					RequestID: getRequestID(c),
				},
			})
			return
		}
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
