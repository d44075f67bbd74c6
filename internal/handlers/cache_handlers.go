package handlers

import (
	"log"
	"net/http"

	"storefront/internal/caching"

	"github.com/labstack/echo/v4"
)

// CacheHandlers exposes the internal invalidation hook the catalog admin
// pipeline calls after a bulk import or price change.
type CacheHandlers struct {
	cache caching.CacheService
	local *caching.LocalCache
}

func NewCacheHandlers(cache caching.CacheService, local *caching.LocalCache) *CacheHandlers {
	return &CacheHandlers{cache: cache, local: local}
}

// InvalidateRequest represents the invalidation request payload.
type InvalidateRequest struct {
	Namespace string `json:"namespace"`
}

var knownNamespaces = map[string]bool{
	caching.NamespaceProductDetail:  true,
	caching.NamespaceProductListing: true,
	caching.NamespaceSearchResults:  true,
	caching.NamespaceInventory:      true,
	caching.NamespaceCategoryBrowse: true,
	caching.NamespaceCategoryFacets: true,
}

// Invalidate drops cached entries. An empty or "all" namespace clears every
// tier; otherwise only the named namespace is dropped from the shared tier.
// The process-local tier is always flushed since it cannot be evicted per
// namespace remotely.
func (h *CacheHandlers) Invalidate(c echo.Context) error {
	var req InvalidateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	ctx := c.Request().Context()
	h.local.Flush()

	if req.Namespace == "" || req.Namespace == "all" {
		if err := h.cache.InvalidateAll(ctx); err != nil {
			log.Printf("cache invalidate all failed: %v", err)
			return echo.NewHTTPError(http.StatusServiceUnavailable, "Cache unavailable")
		}
		return c.JSON(http.StatusOK, map[string]string{"invalidated": "all"})
	}

	if !knownNamespaces[req.Namespace] {
		return echo.NewHTTPError(http.StatusBadRequest, "Unknown cache namespace")
	}
	if err := h.cache.InvalidateNamespace(ctx, req.Namespace); err != nil {
		log.Printf("cache invalidate %s failed: %v", req.Namespace, err)
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Cache unavailable")
	}
	return c.JSON(http.StatusOK, map[string]string{"invalidated": req.Namespace})
}
