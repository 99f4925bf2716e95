package core

import "math"

// Format is a pixel format negotiated with the presentation surface. Only
// the formats presentation engines commonly expose are modelled; backends
// skip anything they cannot map.
type Format uint32

const (
	FormatUndefined Format = iota
	FormatB8G8R8A8SRGB
	FormatB8G8R8A8UNorm
	FormatR8G8B8A8SRGB
	FormatR8G8B8A8UNorm
)

// ColorSpace qualifies how a format's values are interpreted on output.
type ColorSpace uint32

const (
	ColorSpaceSRGBNonlinear ColorSpace = iota
	ColorSpaceDisplayP3Nonlinear
)

// SurfaceFormat pairs a pixel format with its color space.
type SurfaceFormat struct {
	Format     Format
	ColorSpace ColorSpace
}

// PresentMode is the policy governing when a presented image becomes visible.
type PresentMode uint32

const (
	PresentModeImmediate PresentMode = iota
	PresentModeMailbox
	PresentModeFIFO
	PresentModeFIFORelaxed
)

// Extent is a surface size in pixels.
type Extent struct {
	Width  uint32
	Height uint32
}

// ExtentUndefined is reported by surfaces that take their size from the
// swapchain rather than dictating it.
var ExtentUndefined = Extent{Width: math.MaxUint32, Height: math.MaxUint32}

// Degenerate reports whether the extent has no presentable area.
func (e Extent) Degenerate() bool {
	return e.Width == 0 || e.Height == 0
}

func clamp(v, lo, hi uint32) uint32 {
	if v < lo {
		return lo
	}
	if hi > 0 && v > hi {
		return hi
	}
	return v
}

// Capabilities is a read-only snapshot of what the surface supports for one
// physical device. It is queried fresh before every swapchain build; bounds
// and the current extent may change between builds.
type Capabilities struct {
	Formats      []SurfaceFormat
	PresentModes []PresentMode

	MinImageCount uint32
	// MaxImageCount of zero means unbounded.
	MaxImageCount uint32

	// CurrentExtent is ExtentUndefined when the surface has no fixed size.
	CurrentExtent Extent
	MinExtent     Extent
	MaxExtent     Extent
}

// ChooseFormat picks BGRA8 sRGB with a nonlinear sRGB color space when the
// surface offers it, otherwise the first supported pairing. Any supported
// format beats failing.
func ChooseFormat(caps Capabilities) SurfaceFormat {
	for _, f := range caps.Formats {
		if f.Format == FormatB8G8R8A8SRGB && f.ColorSpace == ColorSpaceSRGBNonlinear {
			return f
		}
	}
	if len(caps.Formats) == 0 {
		return SurfaceFormat{Format: FormatUndefined}
	}
	return caps.Formats[0]
}

// ChoosePresentMode prefers mailbox (low latency, no tearing), then
// immediate, then FIFO. FIFO is always supported and is the guaranteed
// fallback.
func ChoosePresentMode(caps Capabilities) PresentMode {
	best := PresentModeFIFO
	for _, m := range caps.PresentModes {
		switch m {
		case PresentModeMailbox:
			return PresentModeMailbox
		case PresentModeImmediate:
			best = PresentModeImmediate
		}
	}
	return best
}

// ChooseImageCount asks for one image above the minimum so the CPU is less
// likely to block on the presentation engine, clamped to the maximum when
// that bound is finite.
func ChooseImageCount(caps Capabilities) uint32 {
	count := caps.MinImageCount + 1
	if caps.MaxImageCount > 0 && count > caps.MaxImageCount {
		count = caps.MaxImageCount
	}
	return count
}

// ChooseExtent resolves the swapchain size: the surface's current extent
// when it has one, otherwise the desired size clamped into the supported
// range.
func ChooseExtent(caps Capabilities, desired Extent) Extent {
	if caps.CurrentExtent != ExtentUndefined {
		return caps.CurrentExtent
	}
	return Extent{
		Width:  clamp(desired.Width, caps.MinExtent.Width, caps.MaxExtent.Width),
		Height: clamp(desired.Height, caps.MinExtent.Height, caps.MaxExtent.Height),
	}
}
