package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appcart "github.com/storefront/backend/internal/application/cart"
	"github.com/storefront/backend/internal/interfaces/http/dto"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
)

// CartHandler serves the session cart
type CartHandler struct {
	BaseHandler
	carts *appcart.CartService
}

// NewCartHandler creates a CartHandler
func NewCartHandler(carts *appcart.CartService) *CartHandler {
	return &CartHandler{carts: carts}
}

// RegisterRoutes wires the cart routes
func (h *CartHandler) RegisterRoutes(rg *gin.RouterGroup) {
	cart := rg.Group("/cart")
	cart.GET("", h.View)
	cart.DELETE("", h.Clear)
	cart.POST("/items", h.AddItem)
	cart.PATCH("/items/:id/quantity", h.UpdateQuantity)
	cart.DELETE("/items/:id", h.RemoveItem)
	cart.GET("/selected-product", h.SelectedProduct)
	cart.PUT("/selected-product", h.SelectProduct)
}

// AddItemRequest adds a catalog product to the cart
type AddItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"omitempty,min=1"`
	Language  string `json:"language" binding:"omitempty,bcp47_language_tag"`
}

// UpdateQuantityRequest steps a line quantity up or down
type UpdateQuantityRequest struct {
	Direction string `json:"direction" binding:"required,oneof=increment decrement"`
}

// SelectProductRequest marks a product as the one being viewed
type SelectProductRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Language  string `json:"language" binding:"omitempty,bcp47_language_tag"`
}

// View returns the cart snapshot
func (h *CartHandler) View(c *gin.Context) {
	sess := middleware.GetSession(c)
	h.Success(c, h.carts.View(sess.Cart))
}

// AddItem resolves a product and adds it to the cart
func (h *CartHandler) AddItem(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	sess := middleware.GetSession(c)
	view, err := h.carts.AddProduct(c.Request.Context(), sess.Cart, req.Language, req.ProductID, req.Quantity)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, view)
}

// UpdateQuantity adjusts one line's quantity
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	sess := middleware.GetSession(c)
	view, err := h.carts.UpdateQuantity(sess.Cart, c.Param("id"), req.Direction)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// RemoveItem drops a line from the cart
func (h *CartHandler) RemoveItem(c *gin.Context) {
	sess := middleware.GetSession(c)
	h.Success(c, h.carts.RemoveItem(sess.Cart, c.Param("id")))
}

// Clear empties the cart
func (h *CartHandler) Clear(c *gin.Context) {
	sess := middleware.GetSession(c)
	h.Success(c, h.carts.Clear(sess.Cart))
}

// SelectedProduct returns the product currently being viewed, if any
func (h *CartHandler) SelectedProduct(c *gin.Context) {
	sess := middleware.GetSession(c)
	product := sess.Cart.SelectedProduct()
	if product == nil {
		h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, "No product is selected")
		return
	}
	h.Success(c, product)
}

// SelectProduct marks a catalog product as selected for the session
func (h *CartHandler) SelectProduct(c *gin.Context) {
	var req SelectProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	sess := middleware.GetSession(c)
	view, err := h.carts.SelectProduct(c.Request.Context(), sess.Cart, req.Language, req.ProductID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}
