package core_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentline/threadpulse-go/pkg/core"
	"github.com/agentline/threadpulse-go/pkg/storage"
)

func TestThreadErrorFormat(t *testing.T) {
	err := core.NewThreadError("Open", core.ErrInvalidInput)
	assert.Equal(t, "threadpulse: Open: invalid input", err.Error())
}

func TestThreadErrorUnwrap(t *testing.T) {
	inner := errors.New("disk full")
	err := core.NewThreadError("Sweep", inner)

	assert.ErrorIs(t, err, inner)

	var threadErr *core.ThreadError
	require.ErrorAs(t, err, &threadErr)
	assert.Equal(t, "Sweep", threadErr.Op)
}

func TestNewThreadErrorNil(t *testing.T) {
	assert.NoError(t, core.NewThreadError("Open", nil))
}

func TestNotFoundMatchesStorageSentinel(t *testing.T) {
	// The client re-exports the storage sentinel, so callers can match
	// either one through the wrap chain.
	wrapped := core.NewThreadError("Get", storage.ErrNotFound)
	assert.ErrorIs(t, wrapped, core.ErrNotFound)
	assert.ErrorIs(t, wrapped, storage.ErrNotFound)
}
