package handlers

import (
	"net/http"

	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/labstack/echo/v4"
)

const defaultDropdownLimit = 8

// SearchHandlers serves keyword search over product groups.
type SearchHandlers struct {
	searchService services.SearchService
}

func NewSearchHandlers(searchService services.SearchService) *SearchHandlers {
	return &SearchHandlers{searchService: searchService}
}

// SearchRequest represents query parameters for the search results page.
type SearchRequest struct {
	Query    string `query:"q"`
	Page     int    `query:"page"`
	PageSize int    `query:"page_size"`
}

// Search returns a counted page of product groups matching a query string.
// An empty query is a valid request with an empty result.
func (h *SearchHandlers) Search(c echo.Context) error {
	var req SearchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}
	clampPaging(&req.Page, &req.PageSize)

	page, err := h.searchService.Search(c.Request().Context(), req.Query, models.PageRequest{
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		return httpError(err, "No results")
	}
	return c.JSON(http.StatusOK, page)
}

// DropdownRequest represents query parameters for typeahead suggestions.
type DropdownRequest struct {
	Query string `query:"q"`
	Limit int    `query:"limit"`
}

// Dropdown returns a short uncounted suggestion list for the search box.
func (h *SearchHandlers) Dropdown(c echo.Context) error {
	var req DropdownRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}
	if req.Limit <= 0 || req.Limit > 20 {
		req.Limit = defaultDropdownLimit
	}

	items, err := h.searchService.Dropdown(c.Request().Context(), req.Query, req.Limit)
	if err != nil {
		return httpError(err, "No results")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"suggestions": items,
		"query":       req.Query,
	})
}
