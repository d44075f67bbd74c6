package handlers

import (
	"net/http"
	"strconv"

	"storefront/internal/filters"
	"storefront/internal/services"

	"github.com/labstack/echo/v4"
)

// CategoryHandlers serves the navigation tree and the filtered browse pages.
type CategoryHandlers struct {
	categoryService services.CategoryService
	browseService   services.BrowseService
}

func NewCategoryHandlers(categoryService services.CategoryService, browseService services.BrowseService) *CategoryHandlers {
	return &CategoryHandlers{
		categoryService: categoryService,
		browseService:   browseService,
	}
}

// GetSections returns the full navigation tree: every top-level category
// with its second-level headers and their children.
func (h *CategoryHandlers) GetSections(c echo.Context) error {
	sections, err := h.categoryService.Sections(c.Request().Context())
	if err != nil {
		return httpError(err, "Categories not found")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"sections": sections,
	})
}

// GetTopLevel returns the root categories in sort order.
func (h *CategoryHandlers) GetTopLevel(c echo.Context) error {
	categories, err := h.categoryService.TopLevel(c.Request().Context())
	if err != nil {
		return httpError(err, "Categories not found")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"categories": categories,
	})
}

// GetChildren returns the direct children of one category.
func (h *CategoryHandlers) GetChildren(c echo.Context) error {
	parentID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid category ID format")
	}

	children, err := h.categoryService.Children(c.Request().Context(), parentID)
	if err != nil {
		return httpError(err, "Category not found")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"categories": children,
	})
}

// Browse serves a category page under the active filter set. A mid-level
// category answers with its child categories and per-child match counts; a
// leaf category answers with the variant tables of its matching product
// groups. Both carry the breadcrumb trail and the facet sidebar.
func (h *CategoryHandlers) Browse(c echo.Context) error {
	slug := c.Param("slug")
	if slug == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Category slug is required")
	}

	ctx := c.Request().Context()
	filterSet := filters.Parse(c.QueryParams())

	category, err := h.categoryService.GetBySlug(ctx, slug)
	if err != nil {
		return httpError(err, "Category not found")
	}

	breadcrumb, err := h.categoryService.Breadcrumb(ctx, category.Path)
	if err != nil {
		return httpError(err, "Category not found")
	}

	facets, err := h.browseService.Facets(ctx, category, filterSet)
	if err != nil {
		return httpError(err, "Category not found")
	}

	payload := map[string]interface{}{
		"category":   category,
		"breadcrumb": breadcrumb,
		"facets":     facets,
	}

	if category.IsLeaf {
		tables, err := h.browseService.LeafGroupTables(ctx, category, filterSet)
		if err != nil {
			return httpError(err, "Category not found")
		}
		payload["groups"] = tables
	} else {
		children, err := h.browseService.FilteredChildren(ctx, category, filterSet)
		if err != nil {
			return httpError(err, "Category not found")
		}
		payload["children"] = children
	}

	return c.JSON(http.StatusOK, payload)
}
