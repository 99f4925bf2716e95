package core

import "github.com/cockroachdb/errors"

type tokenState uint8

const (
	tokenCompleted tokenState = iota
	tokenPending
	tokenConsumed
)

func (s tokenState) String() string {
	switch s {
	case tokenCompleted:
		return "completed"
	case tokenPending:
		return "pending"
	case tokenConsumed:
		return "consumed"
	default:
		return "invalid"
	}
}

// FrameToken tracks the completion state of the previously submitted frame.
// At most one token exists per presenter; each submission consumes the old
// token and installs a new one. A pending token holds the fence the GPU
// will signal; a completed token holds nothing and composes for free.
//
// Taking a token twice is a programming error and panics: submitting
// against an already-consumed token would silently corrupt the
// synchronization chain.
type FrameToken struct {
	state tokenState
	fence Fence
}

// newCompletedToken returns the already-signalled placeholder used at
// startup and after a failed flush.
func newCompletedToken() *FrameToken {
	return &FrameToken{state: tokenCompleted}
}

// newPendingToken wraps the fence of an in-flight submission.
func newPendingToken(fence Fence) *FrameToken {
	return &FrameToken{state: tokenPending, fence: fence}
}

// Pending reports whether GPU work tied to this token may still be running.
func (t *FrameToken) Pending() bool {
	return t.state == tokenPending
}

// Poll releases CPU-side bookkeeping for work that has already finished.
// Never blocks; a still-running frame just stays pending.
func (t *FrameToken) Poll(b Backend) error {
	if t.state != tokenPending {
		return nil
	}
	done, err := b.FenceDone(t.fence)
	if err != nil {
		return errors.Wrap(err, "backend.FenceDone()")
	}
	if !done {
		return nil
	}
	if err := b.ResetFence(t.fence); err != nil {
		return errors.Wrap(err, "backend.ResetFence()")
	}
	t.state = tokenCompleted
	t.fence = nil
	return nil
}

// Take consumes the token ahead of composing the next frame's chain,
// returning the fence still tied to in-flight work, or nil when the token
// had already completed. Panics on double consumption.
func (t *FrameToken) Take() Fence {
	if t.state == tokenConsumed {
		panic("core: frame token consumed twice")
	}
	fence := t.fence
	if t.state == tokenCompleted {
		fence = nil
	}
	t.state = tokenConsumed
	t.fence = nil
	return fence
}

// Wait blocks until the token's work has finished, then resets the fence
// for reuse. Only the terminal shutdown path calls this.
func (t *FrameToken) Wait(b Backend) error {
	if t.state != tokenPending {
		return nil
	}
	if err := b.WaitFence(t.fence); err != nil {
		return errors.Wrap(err, "backend.WaitFence()")
	}
	if err := b.ResetFence(t.fence); err != nil {
		return errors.Wrap(err, "backend.ResetFence()")
	}
	t.state = tokenCompleted
	t.fence = nil
	return nil
}
