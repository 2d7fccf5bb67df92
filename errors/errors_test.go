package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New("test error")
	require.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestWrap(t *testing.T) {
	original := New("original")
	wrapped := Wrap(original, "wrapped")

	assert.Contains(t, wrapped.Error(), "wrapped")
	assert.Contains(t, wrapped.Error(), "original")
	assert.True(t, Is(wrapped, original))
}

func TestSentinels(t *testing.T) {
	err := Wrap(ErrNotFound, "asset lookup")
	assert.True(t, IsNotFoundError(err))
	assert.False(t, IsInvalidRequestError(err))

	err = Wrapf(ErrRateLimited, "retry after %ds", 30)
	assert.True(t, IsRateLimitedError(err))

	err = Wrap(ErrServiceUnavailable, "healthcheck")
	assert.True(t, IsServiceUnavailableError(err))

	assert.False(t, IsNotFoundError(nil))
}

func TestNewInvalidRequestError(t *testing.T) {
	err := NewInvalidRequestError("%s is required", "qualified_name")
	require.NotNil(t, err)
	assert.True(t, Is(err, ErrInvalidRequest))
	assert.Contains(t, err.Error(), "qualified_name is required")
}

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("no asset with guid %q", "abc-123")
	assert.True(t, IsNotFoundError(err))
	assert.Contains(t, err.Error(), `no asset with guid "abc-123"`)
}

func TestWithHint(t *testing.T) {
	err := WithHint(New("error"), "check that LUMEN_API_KEY is set")

	hints := GetAllHints(err)
	require.Len(t, hints, 1)
	assert.Equal(t, "check that LUMEN_API_KEY is set", hints[0])
}
