package services

import (
	"context"
	"errors"
	"net"
	"testing"

	"storefront/internal/common"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestMapStoreErr(t *testing.T) {
	assert.NoError(t, mapStoreErr(nil))

	assert.ErrorIs(t, mapStoreErr(pgx.ErrNoRows), common.ErrNotFound)

	assert.ErrorIs(t, mapStoreErr(context.DeadlineExceeded), common.ErrStoreUnavailable)
	assert.ErrorIs(t, mapStoreErr(context.Canceled), common.ErrStoreUnavailable)

	// A refused dial or a dead pool is retryable, not a caller mistake.
	dial := &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}
	assert.ErrorIs(t, mapStoreErr(dial), common.ErrStoreUnavailable)
	assert.ErrorIs(t, mapStoreErr(&pgconn.ConnectError{}), common.ErrStoreUnavailable)

	// Anything the store answered with passes through untranslated.
	plain := errors.New("syntax error at or near")
	assert.Equal(t, plain, mapStoreErr(plain))
}
