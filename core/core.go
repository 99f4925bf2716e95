// Package core drives interactive presentation of rendered frames to a
// display surface. It owns the swapchain lifecycle: image acquisition,
// per-frame submission ordering, CPU/GPU synchronization through chained
// completion tokens, and swapchain recreation when the surface resizes or
// goes stale. Everything device-shaped is reached through the Backend
// interface so the machinery runs the same against Vulkan or a test double.
package core

// Opaque backend handles. Concrete backends put their own values behind
// these; nothing outside a backend inspects them.
type (
	// SwapchainHandle identifies a live swapchain inside a backend.
	SwapchainHandle interface{}

	// ImageHandle identifies a single presentable image. Images are owned
	// by their swapchain and are only ever referenced by index across frames.
	ImageHandle interface{}

	// RenderTarget is a swapchain image bound to the attachment slots the
	// session's render pass expects, plus whatever per-image recording
	// state the backend needs.
	RenderTarget interface{}

	// Signal is a GPU-side ordering primitive (a semaphore in Vulkan terms).
	Signal interface{}

	// Fence is a CPU-visible completion primitive backing FrameToken.
	Fence interface{}

	// CommandHandle is the open command stream handed to a Recorder.
	// The Vulkan backend passes a vk.CommandBuffer.
	CommandHandle interface{}
)

// Recorder records the caller's draw work into an already-open render pass.
// The presenter begins and ends the pass; the recorder only issues the
// draw/dispatch calls in between.
type Recorder func(cmd CommandHandle, extent Extent) error

// AcquiredImage is the result of a successful acquire. It is valid only for
// the swapchain generation it came from and must not be kept across rebuilds.
type AcquiredImage struct {
	Index uint32

	// Suboptimal means the image is usable but no longer matches the
	// surface exactly. The frame is still presented; the swapchain goes
	// stale for the next tick.
	Suboptimal bool
}

// SwapchainInfo carries everything a backend needs to construct a swapchain.
type SwapchainInfo struct {
	MinImageCount uint32
	Format        SurfaceFormat
	PresentMode   PresentMode
	Extent        Extent

	// QueueFamilies lists the distinct families touching the images. One
	// entry means exclusive access, two means concurrent sharing between
	// the graphics and presentation families.
	QueueFamilies []uint32

	// OldSwapchain, when non-nil, lets the presentation engine transition
	// images from the retired swapchain without a flash. The old swapchain
	// must not be used for acquisition once the new one exists.
	OldSwapchain SwapchainHandle
}

// Backend is the presentation-facing slice of the graphics API. The
// presenter owns every handle it gets back and returns each one to the
// backend that produced it.
type Backend interface {
	// SurfaceSupport queries the surface's capabilities fresh. Results are
	// never cached by callers; image-count bounds and the current extent
	// may change between calls.
	SurfaceSupport() (Capabilities, error)

	CreateSwapchain(info SwapchainInfo) (SwapchainHandle, []ImageHandle, error)
	DestroySwapchain(handle SwapchainHandle)

	// CreateRenderTarget binds one swapchain image to the session's render
	// pass. Fails with ErrIncompatibleAttachment if the image format does
	// not match what the render pass expects.
	CreateRenderTarget(image ImageHandle, format SurfaceFormat, extent Extent) (RenderTarget, error)
	DestroyRenderTarget(target RenderTarget)

	CreateSignal() (Signal, error)
	DestroySignal(signal Signal)
	CreateFence() (Fence, error)
	DestroyFence(fence Fence)

	// FenceDone polls without blocking.
	FenceDone(fence Fence) (bool, error)
	WaitFence(fence Fence) error
	ResetFence(fence Fence) error

	// Acquire blocks until the presentation engine hands over an image or
	// reports failure. There is deliberately no timeout.
	Acquire(handle SwapchainHandle, imageReady Signal) (AcquiredImage, error)

	// Record builds the frame's command sequence: begin the render pass
	// against target, run rec, end the pass.
	Record(target RenderTarget, extent Extent, rec Recorder) error

	// Submit enqueues the recorded work, waiting on imageReady, signalling
	// renderDone and done when the GPU finishes.
	Submit(target RenderTarget, imageReady, renderDone Signal, done Fence) error

	// Present hands the image at index back to the presentation engine
	// once renderDone has signalled.
	Present(handle SwapchainHandle, index uint32, renderDone Signal) error

	// WaitIdle blocks until no submitted work remains in flight.
	WaitIdle() error
}

// FrameOutcome reports what a single redraw tick did.
type FrameOutcome int

const (
	// OutcomePresented means a frame reached the presentation engine.
	OutcomePresented FrameOutcome = iota

	// OutcomeSkippedDegenerateSurface means the surface currently has no
	// presentable area (minimized window) and the tick was a no-op.
	OutcomeSkippedDegenerateSurface

	// OutcomeSkippedRecreating means the swapchain went stale mid-tick;
	// the next tick rebuilds before acquiring again.
	OutcomeSkippedRecreating
)

func (o FrameOutcome) String() string {
	switch o {
	case OutcomePresented:
		return "presented"
	case OutcomeSkippedDegenerateSurface:
		return "skipped: degenerate surface"
	case OutcomeSkippedRecreating:
		return "skipped: recreating swapchain"
	default:
		return "unknown outcome"
	}
}
