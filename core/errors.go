package core

import "github.com/cockroachdb/errors"

// Error taxonomy for the presentation loop. Transient errors are consumed
// by the presenter (a stale swapchain and a retry, never a crash); fatal
// ones propagate so the session can be torn down with a real diagnostic.
var (
	// ErrOutOfDate marks a swapchain the presentation engine refuses to
	// serve until it is rebuilt. Transient: recovered by rebuilding.
	ErrOutOfDate = errors.New("swapchain out of date")

	// ErrUnsupportedDimensions marks an extent outside what the device
	// supports right now (a minimized or mid-resize surface). Transient:
	// the caller retries on a later tick.
	ErrUnsupportedDimensions = errors.New("requested dimensions unsupported by surface")

	// ErrUnsupportedSurface means the device cannot present to the surface
	// at all. Configuration error, fatal at setup time.
	ErrUnsupportedSurface = errors.New("device cannot present to surface")

	// ErrIncompatibleAttachment means an image's format does not match the
	// render pass's attachment format. Configuration error: format
	// selection and render pass creation fell out of lockstep.
	ErrIncompatibleAttachment = errors.New("image format incompatible with render pass attachment")

	// ErrDeviceLost is fatal; nothing in this package recovers it.
	ErrDeviceLost = errors.New("device lost")

	// ErrOutOfMemory is a driver-level allocation failure. Fatal.
	ErrOutOfMemory = errors.New("out of device memory")
)

// fatal reports whether err ends the presentation session rather than a
// single frame.
func fatal(err error) bool {
	return errors.Is(err, ErrDeviceLost) || errors.Is(err, ErrOutOfMemory)
}
