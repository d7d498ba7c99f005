package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appcatalog "github.com/storefront/backend/internal/application/catalog"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/storefront/backend/internal/infrastructure/upstream"
	"github.com/storefront/backend/internal/interfaces/http/dto"
)

// CatalogHandler serves the category listing
type CatalogHandler struct {
	BaseHandler
	categories *appcatalog.CategoryService
}

// NewCatalogHandler creates a CatalogHandler
func NewCatalogHandler(categories *appcatalog.CategoryService) *CatalogHandler {
	return &CatalogHandler{categories: categories}
}

// RegisterRoutes wires the catalog routes
func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/catalog/categories", h.ListCategories)
}

// ListCategoriesRequest carries the optional language selector
type ListCategoriesRequest struct {
	Language string `form:"language" binding:"omitempty,bcp47_language_tag"`
}

// ListCategories returns the category listing for the requested language
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	var req ListCategoriesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	categories, err := h.categories.ListCategories(c.Request.Context(), req.Language)
	if err != nil {
		logger.GetGinLogger(c).Warn("category listing failed",
			zap.String("language", req.Language), zap.Error(err))
		if errors.Is(err, upstream.ErrUnavailable) || errors.Is(err, upstream.ErrRequestFailed) ||
			errors.Is(err, upstream.ErrInvalidResponse) {
			h.Error(c, http.StatusBadGateway, dto.ErrCodeUpstreamUnavailable,
				"The catalog is temporarily unavailable")
			return
		}
		h.HandleError(c, err)
		return
	}

	h.Success(c, categories)
}
