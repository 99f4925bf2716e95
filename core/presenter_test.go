package core

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPresenter(t *testing.T, backend *mockBackend) *Presenter {
	t.Helper()
	p, err := NewPresenter(backend, PresenterConfiguration{
		Extent:        Extent{Width: 800, Height: 600},
		QueueFamilies: QueueFamilies{Graphics: 0, Present: 0},
		Record:        noopRecorder,
	})
	require.NoError(t, err)
	return p
}

func TestPresenterInitialBuild(t *testing.T) {
	backend := newMockBackend(defaultMockCaps())
	p := newTestPresenter(t, backend)

	sc := p.Swapchain()
	require.NotNil(t, sc)
	assert.Len(t, sc.Images, 3, "min image count 2 should be raised by one and capped at 3")
	assert.Equal(t, FormatB8G8R8A8SRGB, sc.Format.Format)
	assert.Equal(t, ColorSpaceSRGBNonlinear, sc.Format.ColorSpace)
	assert.Equal(t, PresentModeFIFO, sc.PresentMode)
	assert.Equal(t, Extent{Width: 800, Height: 600}, sc.Extent)
	assert.Equal(t, uint64(1), sc.Generation)

	created := sc.Handle.(*mockSwapchain)
	assert.Equal(t, []uint32{0}, created.info.QueueFamilies,
		"same graphics and present family should request exclusive images")
	assert.Nil(t, created.info.OldSwapchain)
	assert.Equal(t, len(sc.Images), backend.targetsLive,
		"one render target per swapchain image")
}

func TestPresenterConcurrentSharing(t *testing.T) {
	backend := newMockBackend(defaultMockCaps())
	p, err := NewPresenter(backend, PresenterConfiguration{
		Extent:        Extent{Width: 800, Height: 600},
		QueueFamilies: QueueFamilies{Graphics: 0, Present: 2},
		Record:        noopRecorder,
	})
	require.NoError(t, err)

	created := p.Swapchain().Handle.(*mockSwapchain)
	assert.Equal(t, []uint32{0, 2}, created.info.QueueFamilies)
}

func TestPresenterSteadyState(t *testing.T) {
	backend := newMockBackend(defaultMockCaps())
	p := newTestPresenter(t, backend)

	for i := 0; i < 6; i++ {
		outcome, err := p.Redraw()
		require.NoError(t, err)
		assert.Equal(t, OutcomePresented, outcome)
	}

	assert.Equal(t, []uint32{0, 1, 2, 0, 1, 2}, backend.presentedIndices)
	assert.Equal(t, uint64(1), p.Swapchain().Generation, "steady state must not rebuild")
	assert.True(t, p.token.Pending(), "last submission's token should be outstanding")
	assert.Len(t, backend.recordedExtents, 6)
}

func TestPresenterCurrentExtentWins(t *testing.T) {
	caps := defaultMockCaps()
	caps.CurrentExtent = Extent{Width: 1280, Height: 720}
	backend := newMockBackend(caps)
	p := newTestPresenter(t, backend)

	assert.Equal(t, Extent{Width: 1280, Height: 720}, p.Swapchain().Extent,
		"a surface dictating its extent overrides the window size")
}

func TestPresenterOutOfDateAcquireRecovers(t *testing.T) {
	backend := newMockBackend(defaultMockCaps())
	p := newTestPresenter(t, backend)
	oldHandle := p.Swapchain().Handle

	backend.acquireErrs = append(backend.acquireErrs, ErrOutOfDate)

	outcome, err := p.Redraw()
	require.NoError(t, err)
	assert.Equal(t, OutcomeSkippedRecreating, outcome)
	assert.Empty(t, backend.presentedIndices, "nothing may be presented on a skipped frame")
	assert.False(t, p.token.Pending(), "a skipped frame must not advance the token")

	outcome, err = p.Redraw()
	require.NoError(t, err)
	assert.Equal(t, OutcomePresented, outcome)

	rebuilt := p.Swapchain()
	assert.Equal(t, uint64(2), rebuilt.Generation)
	created := rebuilt.Handle.(*mockSwapchain)
	assert.Same(t, oldHandle, created.info.OldSwapchain,
		"the retired swapchain should be threaded through for image handoff")
	assert.Equal(t, 1, backend.destroyedChains)
	assert.Equal(t, len(rebuilt.Images), backend.targetsLive,
		"old generation's targets must be gone once the new one exists")
}

func TestPresenterSuboptimalPresentsThenRebuilds(t *testing.T) {
	backend := newMockBackend(defaultMockCaps())
	p := newTestPresenter(t, backend)

	backend.suboptimalNext = true
	outcome, err := p.Redraw()
	require.NoError(t, err)
	assert.Equal(t, OutcomePresented, outcome, "a suboptimal image is still shown")
	assert.Equal(t, uint64(1), p.Swapchain().Generation)

	outcome, err = p.Redraw()
	require.NoError(t, err)
	assert.Equal(t, OutcomePresented, outcome)
	assert.Equal(t, uint64(2), p.Swapchain().Generation, "the frame after a suboptimal present rebuilds")
}

func TestPresenterMinimizedSurface(t *testing.T) {
	backend := newMockBackend(defaultMockCaps())
	p := newTestPresenter(t, backend)

	p.Resized(Extent{})
	for i := 0; i < 3; i++ {
		outcome, err := p.Redraw()
		require.NoError(t, err)
		assert.Equal(t, OutcomeSkippedDegenerateSurface, outcome)
	}
	assert.Equal(t, uint64(1), p.Swapchain().Generation, "a degenerate tick must leave the old swapchain alone")
	assert.Equal(t, 0, backend.destroyedChains)

	p.Resized(Extent{Width: 1024, Height: 768})
	outcome, err := p.Redraw()
	require.NoError(t, err)
	assert.Equal(t, OutcomePresented, outcome)
	assert.Equal(t, Extent{Width: 1024, Height: 768}, p.Swapchain().Extent)
	assert.Equal(t, uint64(2), p.Swapchain().Generation)
}

func TestPresenterResizeClampsToSurfaceBounds(t *testing.T) {
	caps := defaultMockCaps()
	caps.MinExtent = Extent{Width: 200, Height: 200}
	caps.MaxExtent = Extent{Width: 1920, Height: 1080}
	backend := newMockBackend(caps)
	p := newTestPresenter(t, backend)

	p.Resized(Extent{Width: 4000, Height: 4000})
	outcome, err := p.Redraw()
	require.NoError(t, err)
	assert.Equal(t, OutcomePresented, outcome)
	assert.Equal(t, Extent{Width: 1920, Height: 1080}, p.Swapchain().Extent)

	p.Resized(Extent{Width: 10, Height: 10})
	outcome, err = p.Redraw()
	require.NoError(t, err)
	assert.Equal(t, OutcomePresented, outcome)
	assert.Equal(t, Extent{Width: 200, Height: 200}, p.Swapchain().Extent)
}

func TestPresenterSubmitFailureDropsFrame(t *testing.T) {
	backend := newMockBackend(defaultMockCaps())
	p := newTestPresenter(t, backend)

	backend.submitErrs = append(backend.submitErrs, errors.New("queue hiccup"))

	outcome, err := p.Redraw()
	require.NoError(t, err)
	assert.Equal(t, OutcomeSkippedRecreating, outcome)
	assert.False(t, p.token.Pending())
	assert.Empty(t, backend.presentedIndices)

	outcome, err = p.Redraw()
	require.NoError(t, err)
	assert.Equal(t, OutcomePresented, outcome)
	assert.Equal(t, uint64(2), p.Swapchain().Generation)
}

func TestPresenterPresentOutOfDate(t *testing.T) {
	backend := newMockBackend(defaultMockCaps())
	p := newTestPresenter(t, backend)

	backend.presentErrs = append(backend.presentErrs, ErrOutOfDate)

	outcome, err := p.Redraw()
	require.NoError(t, err)
	assert.Equal(t, OutcomeSkippedRecreating, outcome)

	outcome, err = p.Redraw()
	require.NoError(t, err)
	assert.Equal(t, OutcomePresented, outcome)
	assert.Equal(t, uint64(2), p.Swapchain().Generation)
}

func TestPresenterFatalErrorPropagates(t *testing.T) {
	backend := newMockBackend(defaultMockCaps())
	p := newTestPresenter(t, backend)

	backend.acquireErrs = append(backend.acquireErrs, ErrDeviceLost)

	_, err := p.Redraw()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDeviceLost))
}

func TestPresenterRejectsMismatchedRenderPass(t *testing.T) {
	backend := newMockBackend(defaultMockCaps())
	backend.targetErr = ErrIncompatibleAttachment

	_, err := NewPresenter(backend, PresenterConfiguration{
		Extent: Extent{Width: 800, Height: 600},
		Record: noopRecorder,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIncompatibleAttachment))
	assert.Equal(t, 0, backend.signalsLive, "failed setup must release its signals")
	assert.Equal(t, 0, backend.fencesLive, "failed setup must release its fence")
	assert.Empty(t, backend.liveSwapchains)
}

func TestPresenterShutdownReleasesEverything(t *testing.T) {
	backend := newMockBackend(defaultMockCaps())
	p := newTestPresenter(t, backend)

	for i := 0; i < 3; i++ {
		_, err := p.Redraw()
		require.NoError(t, err)
	}

	require.NoError(t, p.Shutdown())
	assert.GreaterOrEqual(t, backend.waitIdleCalls, 1)
	assert.Equal(t, 0, backend.signalsLive)
	assert.Equal(t, 0, backend.fencesLive)
	assert.Equal(t, 0, backend.targetsLive)
	assert.Empty(t, backend.liveSwapchains)
}

func TestPresenterRequiresRecorder(t *testing.T) {
	backend := newMockBackend(defaultMockCaps())
	_, err := NewPresenter(backend, PresenterConfiguration{
		Extent: Extent{Width: 800, Height: 600},
	})
	require.Error(t, err)
}
