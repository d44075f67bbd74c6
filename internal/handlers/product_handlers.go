package handlers

import (
	"net/http"

	"storefront/internal/filters"
	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ProductHandlers serves product group detail pages and SKU-level lookups.
type ProductHandlers struct {
	productService services.ProductService
}

func NewProductHandlers(productService services.ProductService) *ProductHandlers {
	return &ProductHandlers{productService: productService}
}

// ListByCategoryRequest represents query parameters for category listings.
type ListByCategoryRequest struct {
	Path     string `query:"path"`
	Page     int    `query:"page"`
	PageSize int    `query:"page_size"`
}

// ListByCategory returns a slice of product group summaries under a
// category subtree, without a total count.
func (h *ProductHandlers) ListByCategory(c echo.Context) error {
	var req ListByCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}
	if req.Path == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Category path is required")
	}
	clampPaging(&req.Page, &req.PageSize)

	slice, err := h.productService.BrowseByCategory(c.Request().Context(), req.Path, models.SliceRequest{
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		return httpError(err, "Category not found")
	}
	return c.JSON(http.StatusOK, slice)
}

// GetGroup serves the product group detail page: the group record, its
// column layout, the variant rows matching the active filters, and the
// per-attribute option counts for the in-group filter sidebar.
func (h *ProductHandlers) GetGroup(c echo.Context) error {
	slug := c.Param("slug")
	if slug == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Product group slug is required")
	}

	ctx := c.Request().Context()
	filterSet := filters.Parse(c.QueryParams())

	detail, err := h.productService.GetGroupBySlug(ctx, slug)
	if err != nil {
		return httpError(err, "Product group not found")
	}

	columns, err := h.productService.ColumnConfig(ctx, detail.ID)
	if err != nil {
		return httpError(err, "Product group not found")
	}

	skuIDs, err := h.productService.MatchingSkuIDs(ctx, detail.ID, filterSet)
	if err != nil {
		return httpError(err, "Product group not found")
	}

	rows, err := h.productService.VariantTable(ctx, detail.ID, skuIDs)
	if err != nil {
		return httpError(err, "Product group not found")
	}

	facets, err := h.productService.FacetCounts(ctx, detail.ID, filterSet)
	if err != nil {
		return httpError(err, "Product group not found")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"group":   detail,
		"columns": columns,
		"rows":    rows,
		"facets":  facets,
	})
}

// GetSkuByPartNumber looks a single SKU up by its exact part number.
func (h *ProductHandlers) GetSkuByPartNumber(c echo.Context) error {
	partNumber := c.Param("part_number")
	if partNumber == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Part number is required")
	}

	sku, err := h.productService.GetSkuByPartNumber(c.Request().Context(), partNumber)
	if err != nil {
		return httpError(err, "SKU not found")
	}
	return c.JSON(http.StatusOK, sku)
}

// CheckSku reports whether a SKU exists and is purchasable. Used by the
// cart service before accepting a line item.
func (h *ProductHandlers) CheckSku(c echo.Context) error {
	skuID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid SKU ID format")
	}

	active, err := h.productService.SkuExistsAndActive(c.Request().Context(), skuID)
	if err != nil {
		return httpError(err, "SKU not found")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"sku_id": skuID,
		"active": active,
	})
}

// GetSkuPriceRequest represents query parameters for SKU price resolution.
type GetSkuPriceRequest struct {
	Quantity int `query:"quantity"`
}

// GetSkuPrice resolves the effective unit price of a SKU at a quantity,
// honoring quantity-break price tiers.
func (h *ProductHandlers) GetSkuPrice(c echo.Context) error {
	skuID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid SKU ID format")
	}

	var req GetSkuPriceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}
	if req.Quantity <= 0 {
		req.Quantity = 1
	}

	info, err := h.productService.SkuPriceInfo(c.Request().Context(), skuID, req.Quantity)
	if err != nil {
		return httpError(err, "SKU not found")
	}
	return c.JSON(http.StatusOK, info)
}
