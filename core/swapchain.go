package core

import "github.com/cockroachdb/errors"

// QueueFamilies identifies the queue families a presentation session runs
// on. Graphics and Present may name the same family.
type QueueFamilies struct {
	Graphics uint32
	Present  uint32
}

// Shared reports whether swapchain images must be shared across two
// distinct families.
func (q QueueFamilies) Shared() bool {
	return q.Graphics != q.Present
}

func (q QueueFamilies) list() []uint32 {
	if q.Shared() {
		return []uint32{q.Graphics, q.Present}
	}
	return []uint32{q.Graphics}
}

// Swapchain is the negotiated set of presentable images together with the
// properties they were built with. It is owned exclusively by the presenter
// and is replaced, never mutated, when the surface changes. Generation
// increases monotonically across replacements; anything derived from an
// older generation is invalid the moment a newer one exists.
type Swapchain struct {
	Handle      SwapchainHandle
	Images      []ImageHandle
	Format      SurfaceFormat
	PresentMode PresentMode
	Extent      Extent
	Generation  uint64
}

// buildSwapchain negotiates format, present mode, image count and extent
// from a fresh capability snapshot and asks the backend for the swapchain.
// When prev is non-nil the new swapchain is built on top of it so the
// presentation engine can hand images over without a flash; prev must not
// be acquired from afterwards.
func buildSwapchain(b Backend, caps Capabilities, desired Extent, families QueueFamilies, prev *Swapchain) (*Swapchain, error) {
	if len(caps.Formats) == 0 || len(caps.PresentModes) == 0 {
		return nil, errors.Wrap(ErrUnsupportedSurface, "buildSwapchain")
	}

	extent := ChooseExtent(caps, desired)
	if extent.Degenerate() ||
		extent.Width < caps.MinExtent.Width || extent.Height < caps.MinExtent.Height ||
		(caps.MaxExtent.Width > 0 && extent.Width > caps.MaxExtent.Width) ||
		(caps.MaxExtent.Height > 0 && extent.Height > caps.MaxExtent.Height) {
		return nil, errors.Wrapf(ErrUnsupportedDimensions, "extent %dx%d", extent.Width, extent.Height)
	}

	info := SwapchainInfo{
		MinImageCount: ChooseImageCount(caps),
		Format:        ChooseFormat(caps),
		PresentMode:   ChoosePresentMode(caps),
		Extent:        extent,
		QueueFamilies: families.list(),
	}

	var generation uint64 = 1
	if prev != nil {
		info.OldSwapchain = prev.Handle
		generation = prev.Generation + 1
	}

	handle, images, err := b.CreateSwapchain(info)
	if err != nil {
		return nil, errors.Wrap(err, "backend.CreateSwapchain()")
	}

	return &Swapchain{
		Handle:      handle,
		Images:      images,
		Format:      info.Format,
		PresentMode: info.PresentMode,
		Extent:      extent,
		Generation:  generation,
	}, nil
}
