package core

import "github.com/cockroachdb/errors"

// mockBackend scripts a presentation engine in memory. Unless an error is
// queued, the pretend GPU finishes every submission instantly and hands
// out images round robin.
type mockBackend struct {
	caps    Capabilities
	capsErr error

	// queued failures, consumed one per call
	acquireErrs []error
	submitErrs  []error
	presentErrs []error
	targetErr   error

	suboptimalNext bool

	swapchainSeq       int
	liveSwapchains     map[*mockSwapchain]bool
	destroyedChains    int
	acquireCursor      uint32
	currentSwapchain   *mockSwapchain
	signalsLive        int
	fencesLive         int
	targetsLive        int
	waitIdleCalls      int
	recordedExtents    []Extent
	submittedTargets   []*mockTarget
	presentedIndices   []uint32
	presentedSwapchain []*mockSwapchain
}

type mockSwapchain struct {
	id         int
	imageCount uint32
	info       SwapchainInfo
	destroyed  bool
}

type mockImage struct {
	owner *mockSwapchain
	index uint32
}

type mockTarget struct {
	image *mockImage
}

type mockSignal struct{}

type mockFence struct {
	signaled bool
}

func newMockBackend(caps Capabilities) *mockBackend {
	return &mockBackend{
		caps:           caps,
		liveSwapchains: map[*mockSwapchain]bool{},
	}
}

func pop(queue *[]error) error {
	if len(*queue) == 0 {
		return nil
	}
	err := (*queue)[0]
	*queue = (*queue)[1:]
	return err
}

func (m *mockBackend) SurfaceSupport() (Capabilities, error) {
	if m.capsErr != nil {
		return Capabilities{}, m.capsErr
	}
	return m.caps, nil
}

func (m *mockBackend) CreateSwapchain(info SwapchainInfo) (SwapchainHandle, []ImageHandle, error) {
	m.swapchainSeq++
	count := info.MinImageCount
	if m.caps.MaxImageCount > 0 && count > m.caps.MaxImageCount {
		count = m.caps.MaxImageCount
	}
	sc := &mockSwapchain{
		id:         m.swapchainSeq,
		imageCount: count,
		info:       info,
	}
	m.liveSwapchains[sc] = true
	m.currentSwapchain = sc
	m.acquireCursor = 0

	images := make([]ImageHandle, count)
	for idx := range images {
		images[idx] = &mockImage{owner: sc, index: uint32(idx)}
	}
	return sc, images, nil
}

func (m *mockBackend) DestroySwapchain(handle SwapchainHandle) {
	sc := handle.(*mockSwapchain)
	sc.destroyed = true
	delete(m.liveSwapchains, sc)
	m.destroyedChains++
}

func (m *mockBackend) CreateRenderTarget(image ImageHandle, format SurfaceFormat, extent Extent) (RenderTarget, error) {
	if m.targetErr != nil {
		return nil, m.targetErr
	}
	m.targetsLive++
	return &mockTarget{image: image.(*mockImage)}, nil
}

func (m *mockBackend) DestroyRenderTarget(target RenderTarget) {
	m.targetsLive--
}

func (m *mockBackend) CreateSignal() (Signal, error) {
	m.signalsLive++
	return &mockSignal{}, nil
}

func (m *mockBackend) DestroySignal(signal Signal) {
	m.signalsLive--
}

func (m *mockBackend) CreateFence() (Fence, error) {
	m.fencesLive++
	return &mockFence{}, nil
}

func (m *mockBackend) DestroyFence(fence Fence) {
	m.fencesLive--
}

func (m *mockBackend) FenceDone(fence Fence) (bool, error) {
	return fence.(*mockFence).signaled, nil
}

func (m *mockBackend) WaitFence(fence Fence) error {
	f := fence.(*mockFence)
	if !f.signaled {
		return errors.New("mock: wait on a fence no submission will signal")
	}
	return nil
}

func (m *mockBackend) ResetFence(fence Fence) error {
	fence.(*mockFence).signaled = false
	return nil
}

func (m *mockBackend) Acquire(handle SwapchainHandle, imageReady Signal) (AcquiredImage, error) {
	if err := pop(&m.acquireErrs); err != nil {
		return AcquiredImage{}, err
	}
	sc := handle.(*mockSwapchain)
	if sc.destroyed {
		return AcquiredImage{}, errors.New("mock: acquire from destroyed swapchain")
	}
	index := m.acquireCursor % sc.imageCount
	m.acquireCursor++
	suboptimal := m.suboptimalNext
	m.suboptimalNext = false
	return AcquiredImage{Index: index, Suboptimal: suboptimal}, nil
}

func (m *mockBackend) Record(target RenderTarget, extent Extent, rec Recorder) error {
	m.recordedExtents = append(m.recordedExtents, extent)
	return rec(struct{}{}, extent)
}

func (m *mockBackend) Submit(target RenderTarget, imageReady, renderDone Signal, done Fence) error {
	if err := pop(&m.submitErrs); err != nil {
		return err
	}
	m.submittedTargets = append(m.submittedTargets, target.(*mockTarget))
	if done != nil {
		done.(*mockFence).signaled = true
	}
	return nil
}

func (m *mockBackend) Present(handle SwapchainHandle, index uint32, renderDone Signal) error {
	if err := pop(&m.presentErrs); err != nil {
		return err
	}
	sc := handle.(*mockSwapchain)
	if sc.destroyed {
		return errors.New("mock: present to destroyed swapchain")
	}
	m.presentedIndices = append(m.presentedIndices, index)
	m.presentedSwapchain = append(m.presentedSwapchain, sc)
	return nil
}

func (m *mockBackend) WaitIdle() error {
	m.waitIdleCalls++
	return nil
}

// defaultMockCaps is a typical desktop surface: FIFO plus mailbox, sRGB
// BGRA first, window-driven extent.
func defaultMockCaps() Capabilities {
	return Capabilities{
		Formats: []SurfaceFormat{
			{Format: FormatB8G8R8A8UNorm, ColorSpace: ColorSpaceSRGBNonlinear},
			{Format: FormatB8G8R8A8SRGB, ColorSpace: ColorSpaceSRGBNonlinear},
		},
		PresentModes:  []PresentMode{PresentModeFIFO},
		MinImageCount: 2,
		MaxImageCount: 3,
		CurrentExtent: ExtentUndefined,
		MinExtent:     Extent{},
		MaxExtent:     Extent{Width: 4096, Height: 4096},
	}
}

func noopRecorder(cmd CommandHandle, extent Extent) error {
	return nil
}
