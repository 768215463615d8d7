package otp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndVerify(t *testing.T) {
	store := NewStore(time.Minute)

	code, err := store.Generate("user@example.com")
	require.NoError(t, err)
	assert.Len(t, code, 6)

	assert.True(t, store.Verify("user@example.com", code))
}

func TestVerifyConsumesCode(t *testing.T) {
	store := NewStore(time.Minute)

	code, err := store.Generate("user@example.com")
	require.NoError(t, err)

	assert.True(t, store.Verify("user@example.com", code))
	assert.False(t, store.Verify("user@example.com", code))
}

func TestVerifyWrongCode(t *testing.T) {
	store := NewStore(time.Minute)

	code, err := store.Generate("user@example.com")
	require.NoError(t, err)

	wrong := "000000"
	if code == wrong {
		wrong = "000001"
	}
	assert.False(t, store.Verify("user@example.com", wrong))
	assert.False(t, store.Verify("other@example.com", code))

	// The failed attempts did not consume the real code.
	assert.True(t, store.Verify("user@example.com", code))
}

func TestGenerateReplacesOutstandingCode(t *testing.T) {
	store := NewStore(time.Minute)

	first, err := store.Generate("user@example.com")
	require.NoError(t, err)
	second, err := store.Generate("user@example.com")
	require.NoError(t, err)

	if first != second {
		assert.False(t, store.Verify("user@example.com", first))
	}
	assert.True(t, store.Verify("user@example.com", second))
}

func TestExpiry(t *testing.T) {
	store := NewStore(10 * time.Millisecond)

	code, err := store.Generate("user@example.com")
	require.NoError(t, err)

	time.Sleep(30 * time.Millisecond)
	assert.False(t, store.Verify("user@example.com", code))
}

func TestRestore(t *testing.T) {
	store := NewStore(time.Minute)

	code, err := store.Generate("user@example.com")
	require.NoError(t, err)

	require.True(t, store.Verify("user@example.com", code))
	store.Restore("user@example.com", code)
	assert.True(t, store.Verify("user@example.com", code))
}
