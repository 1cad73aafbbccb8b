package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	t.Run("Leaf", func(t *testing.T) {
		err := New(KindNotFound, "order not found")
		assert.Equal(t, KindNotFound, KindOf(err))
		assert.Equal(t, "order not found", err.Error())
	})

	t.Run("Wrapped", func(t *testing.T) {
		cause := errors.New("disk full")
		err := Wrap(KindStorageUnavailable, "failed to persist snapshot", cause)

		assert.Equal(t, KindStorageUnavailable, KindOf(err))
		assert.ErrorIs(t, err, cause)
	})

	t.Run("Wrapped Through fmt", func(t *testing.T) {
		inner := New(KindConflict, "email already registered")
		err := fmt.Errorf("register: %w", inner)

		assert.Equal(t, KindConflict, KindOf(err))
		assert.True(t, IsConflict(err))
	})

	t.Run("Plain Error", func(t *testing.T) {
		assert.Equal(t, KindUnknown, KindOf(errors.New("boom")))
	})
}

func TestMessage(t *testing.T) {
	err := Wrap(KindInvalidInput, "quantity must be at least 1", errors.New("got 0"))
	assert.Equal(t, "quantity must be at least 1", Message(err))
	assert.Equal(t, "quantity must be at least 1: got 0", err.Error())

	assert.Equal(t, "boom", Message(errors.New("boom")))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "invalid_input", KindInvalidInput.String())
	assert.Equal(t, "unauthorized", KindUnauthorized.String())
	assert.Equal(t, "not_found", KindNotFound.String())
	assert.Equal(t, "conflict", KindConflict.String())
	assert.Equal(t, "storage_unavailable", KindStorageUnavailable.String())
	assert.Equal(t, "storage_corrupt", KindStorageCorrupt.String())
	assert.Equal(t, "unknown", KindUnknown.String())
}
