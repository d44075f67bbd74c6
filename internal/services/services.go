// Package services orchestrates the catalog read path: repository calls run
// under a bounded deadline, results flow through the cache tiers, and store
// failures map onto the shared error taxonomy. All services are safe for
// concurrent use; no request mutates catalog data.
package services

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"storefront/internal/common"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// storeTimeout bounds every query against the store and the shared cache.
// A slow facet aggregation fails fast instead of exhausting the pool.
const storeTimeout = 3 * time.Second

func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, storeTimeout)
}

// mapStoreErr translates driver-level failures into the service taxonomy:
// missing rows become ErrNotFound, deadline and connection failures become
// the retryable ErrStoreUnavailable.
func mapStoreErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, pgx.ErrNoRows):
		return common.ErrNotFound
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
	case isConnectionErr(err):
		return fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
	default:
		return err
	}
}

// isConnectionErr recognizes failures to reach the store, as opposed to
// failures the store answered with.
func isConnectionErr(err error) bool {
	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
