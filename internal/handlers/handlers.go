package handlers

import (
	"errors"
	"net/http"

	"storefront/internal/common"

	"github.com/labstack/echo/v4"
)

const (
	defaultPageSize = 24
	maxPageSize     = 100
)

// httpError maps service errors onto transport status codes. Missing rows
// are the caller's 404; an unreachable store is a 503 the client may retry.
func httpError(err error, notFoundMsg string) error {
	switch {
	case errors.Is(err, common.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, notFoundMsg)
	case errors.Is(err, common.ErrStoreUnavailable):
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Store temporarily unavailable")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
}

func clampPaging(page, pageSize *int) {
	if *page < 0 {
		*page = 0
	}
	if *pageSize <= 0 {
		*pageSize = defaultPageSize
	}
	if *pageSize > maxPageSize {
		*pageSize = maxPageSize
	}
}
