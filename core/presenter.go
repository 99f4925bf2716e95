package core

import (
	"github.com/cockroachdb/errors"
	log "github.com/sirupsen/logrus"
)

// PresenterConfiguration is resolved once, at session creation.
type PresenterConfiguration struct {
	// Extent is the window's size, used when the surface does not dictate
	// its own and before the first resize signal arrives.
	Extent Extent

	// QueueFamilies drives the image sharing mode; see QueueFamilies.
	QueueFamilies QueueFamilies

	// Record supplies the frame's draw content. The presenter opens and
	// closes the render pass around it.
	Record Recorder

	// Log receives degraded-frame diagnostics. Defaults to the standard
	// logger when nil.
	Log log.FieldLogger
}

// NewPresenter performs the one-time setup: synchronization primitives and
// the first swapchain plus render-target build. Configuration problems
// (an unusable surface, a mismatched render pass format) fail here, not
// mid-loop.
func NewPresenter(b Backend, cfg PresenterConfiguration) (*Presenter, error) {
	if cfg.Record == nil {
		return nil, errors.New("core: PresenterConfiguration.Record is required")
	}
	logger := cfg.Log
	if logger == nil {
		logger = log.StandardLogger()
	}

	p := &Presenter{
		backend: b,
		cfg:     cfg,
		log:     logger,
		desired: cfg.Extent,
		token:   newCompletedToken(),
	}

	var err error
	if p.imageReady, err = b.CreateSignal(); err != nil {
		return nil, errors.Wrap(err, "backend.CreateSignal()")
	}
	if p.renderDone, err = b.CreateSignal(); err != nil {
		p.destroySync()
		return nil, errors.Wrap(err, "backend.CreateSignal()")
	}
	if p.fence, err = b.CreateFence(); err != nil {
		p.destroySync()
		return nil, errors.Wrap(err, "backend.CreateFence()")
	}

	if err := p.rebuild(); err != nil {
		p.destroySync()
		return nil, err
	}
	return p, nil
}

// Presenter is the stateful driver of the presentation loop. It owns the
// swapchain, the render-target set and the frame token; nothing else
// mutates them. A single goroutine drives it: the loop's concurrency is
// CPU/GPU pipelining, not CPU threads.
type Presenter struct {
	backend Backend
	cfg     PresenterConfiguration
	log     log.FieldLogger

	swapchain *Swapchain
	targets   []RenderTarget

	imageReady Signal
	renderDone Signal
	fence      Fence
	token      *FrameToken

	stale   bool
	desired Extent
}

// Swapchain exposes the current swapchain state; callers must not retain
// it across ticks.
func (p *Presenter) Swapchain() *Swapchain {
	return p.swapchain
}

// Resized marks the swapchain stale. The rebuild happens lazily on the
// next Redraw so resize storms collapse into one reconstruction.
func (p *Presenter) Resized(extent Extent) {
	p.desired = extent
	p.stale = true
}

// Redraw runs one iteration of the presentation loop: reclaim finished
// work, rebuild if stale, acquire, record, submit and present. Transient
// surface trouble degrades to a skipped frame; only fatal device errors
// propagate.
func (p *Presenter) Redraw() (FrameOutcome, error) {
	if err := p.token.Poll(p.backend); err != nil {
		if fatal(err) {
			return OutcomeSkippedRecreating, err
		}
		p.log.WithError(err).Warn("frame token poll failed")
	}

	if p.stale || p.swapchain == nil {
		if err := p.rebuild(); err != nil {
			switch {
			case errors.Is(err, ErrUnsupportedDimensions):
				// Momentarily degenerate surface, typically minimized.
				// Nothing to do until the window comes back.
				return OutcomeSkippedDegenerateSurface, nil
			case errors.Is(err, ErrOutOfDate):
				return OutcomeSkippedRecreating, nil
			default:
				return OutcomeSkippedRecreating, err
			}
		}
	}

	acquired, err := p.backend.Acquire(p.swapchain.Handle, p.imageReady)
	if err != nil {
		if errors.Is(err, ErrOutOfDate) {
			p.stale = true
			return OutcomeSkippedRecreating, nil
		}
		return OutcomeSkippedRecreating, errors.Wrap(err, "backend.Acquire()")
	}
	if acquired.Suboptimal {
		// Usable image, wrong geometry. Present it, rebuild next tick.
		p.stale = true
	}

	target := p.targets[acquired.Index]
	if err := p.backend.Record(target, p.swapchain.Extent, p.cfg.Record); err != nil {
		return OutcomeSkippedRecreating, errors.Wrap(err, "backend.Record()")
	}

	// Compose the chain: consume the previous token, let its work drain,
	// then append this frame's submission and present request. The drain
	// is the loop's only backpressure; with the GPU keeping up the fence
	// has long signalled and Take returns nil.
	if prev := p.token.Take(); prev != nil {
		if err := p.backend.WaitFence(prev); err != nil {
			p.token = newCompletedToken()
			return OutcomeSkippedRecreating, errors.Wrap(err, "backend.WaitFence()")
		}
		if err := p.backend.ResetFence(prev); err != nil {
			p.token = newCompletedToken()
			return OutcomeSkippedRecreating, errors.Wrap(err, "backend.ResetFence()")
		}
	}

	if err := p.backend.Submit(target, p.imageReady, p.renderDone, p.fence); err != nil {
		p.token = newCompletedToken()
		if fatal(err) {
			return OutcomeSkippedRecreating, errors.Wrap(err, "backend.Submit()")
		}
		p.stale = true
		if !errors.Is(err, ErrOutOfDate) {
			p.log.WithError(err).Warn("frame submit failed, dropping frame")
		}
		return OutcomeSkippedRecreating, nil
	}
	p.token = newPendingToken(p.fence)

	if err := p.backend.Present(p.swapchain.Handle, acquired.Index, p.renderDone); err != nil {
		// The submission is in flight either way, so the pending token
		// stays; the rebuild path drains it before touching any resource
		// it uses.
		p.stale = true
		if fatal(err) {
			return OutcomeSkippedRecreating, errors.Wrap(err, "backend.Present()")
		}
		if !errors.Is(err, ErrOutOfDate) {
			p.log.WithError(err).Warn("present failed, dropping frame")
		}
		return OutcomeSkippedRecreating, nil
	}

	return OutcomePresented, nil
}

// Shutdown waits for outstanding GPU work, then releases everything the
// presenter owns. This is the only deliberate blocking wait in the loop;
// it guarantees nothing is in flight against resources about to die.
func (p *Presenter) Shutdown() error {
	var firstErr error
	if err := p.token.Wait(p.backend); err != nil {
		firstErr = err
	}
	if err := p.backend.WaitIdle(); err != nil && firstErr == nil {
		firstErr = err
	}

	destroyRenderTargets(p.backend, p.targets)
	p.targets = nil
	if p.swapchain != nil {
		p.backend.DestroySwapchain(p.swapchain.Handle)
		p.swapchain = nil
	}
	p.destroySync()
	return firstErr
}

func (p *Presenter) destroySync() {
	if p.imageReady != nil {
		p.backend.DestroySignal(p.imageReady)
		p.imageReady = nil
	}
	if p.renderDone != nil {
		p.backend.DestroySignal(p.renderDone)
		p.renderDone = nil
	}
	if p.fence != nil {
		p.backend.DestroyFence(p.fence)
		p.fence = nil
	}
}

// rebuild replaces the swapchain and its render targets as one unit. On
// ErrUnsupportedDimensions the previous state is left untouched and the
// caller retries on a later tick.
func (p *Presenter) rebuild() error {
	caps, err := p.backend.SurfaceSupport()
	if err != nil {
		return errors.Wrap(err, "backend.SurfaceSupport()")
	}

	extent := ChooseExtent(caps, p.desired)
	if extent.Degenerate() {
		return errors.Wrapf(ErrUnsupportedDimensions, "extent %dx%d", extent.Width, extent.Height)
	}

	if p.swapchain != nil {
		// Outstanding frames still reference the old targets.
		if err := p.backend.WaitIdle(); err != nil {
			return errors.Wrap(err, "backend.WaitIdle()")
		}
		if err := p.token.Wait(p.backend); err != nil {
			return err
		}
	}

	next, err := buildSwapchain(p.backend, caps, p.desired, p.cfg.QueueFamilies, p.swapchain)
	if err != nil {
		return err
	}

	destroyRenderTargets(p.backend, p.targets)
	p.targets = nil
	if p.swapchain != nil {
		p.backend.DestroySwapchain(p.swapchain.Handle)
	}
	p.swapchain = next

	targets, err := buildRenderTargets(p.backend, next)
	if err != nil {
		// Render pass and swapchain format fell out of lockstep; nothing
		// to present against until the caller fixes the setup.
		p.backend.DestroySwapchain(next.Handle)
		p.swapchain = nil
		return err
	}
	p.targets = targets
	p.stale = false

	p.log.WithFields(log.Fields{
		"generation": next.Generation,
		"images":     len(next.Images),
		"width":      next.Extent.Width,
		"height":     next.Extent.Height,
	}).Debug("swapchain rebuilt")
	return nil
}
