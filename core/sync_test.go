package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenStartsCompleted(t *testing.T) {
	token := newCompletedToken()
	assert.False(t, token.Pending())
	assert.Nil(t, token.Take(), "a completed token carries no fence to drain")
}

func TestTokenPollReclaimsFinishedWork(t *testing.T) {
	backend := newMockBackend(defaultMockCaps())
	fence, err := backend.CreateFence()
	require.NoError(t, err)

	token := newPendingToken(fence)
	assert.True(t, token.Pending())

	// GPU still busy: poll must not block or change anything.
	require.NoError(t, token.Poll(backend))
	assert.True(t, token.Pending())

	fence.(*mockFence).signaled = true
	require.NoError(t, token.Poll(backend))
	assert.False(t, token.Pending())
	assert.False(t, fence.(*mockFence).signaled, "reclaiming must reset the fence for reuse")
}

func TestTokenWaitDrains(t *testing.T) {
	backend := newMockBackend(defaultMockCaps())
	fence, err := backend.CreateFence()
	require.NoError(t, err)
	fence.(*mockFence).signaled = true

	token := newPendingToken(fence)
	require.NoError(t, token.Wait(backend))
	assert.False(t, token.Pending())
	assert.False(t, fence.(*mockFence).signaled)
}

func TestTokenTakeReturnsOutstandingFence(t *testing.T) {
	backend := newMockBackend(defaultMockCaps())
	fence, err := backend.CreateFence()
	require.NoError(t, err)

	token := newPendingToken(fence)
	assert.Same(t, fence, token.Take())
}

func TestTokenDoubleTakePanics(t *testing.T) {
	token := newCompletedToken()
	token.Take()
	assert.Panics(t, func() { token.Take() })
}

func TestTokenPollAfterReclaimIsIdempotent(t *testing.T) {
	backend := newMockBackend(defaultMockCaps())
	fence, err := backend.CreateFence()
	require.NoError(t, err)
	fence.(*mockFence).signaled = true

	token := newPendingToken(fence)
	require.NoError(t, token.Poll(backend))
	for i := 0; i < 3; i++ {
		require.NoError(t, token.Poll(backend))
		assert.False(t, token.Pending())
	}
}
