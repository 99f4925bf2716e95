package core

import "github.com/cockroachdb/errors"

// buildRenderTargets binds every swapchain image to a render target, in
// image order. The returned set is index-aligned with sc.Images and belongs
// to sc's generation only; it is rebuilt whole whenever the swapchain is.
func buildRenderTargets(b Backend, sc *Swapchain) ([]RenderTarget, error) {
	targets := make([]RenderTarget, 0, len(sc.Images))
	for idx, image := range sc.Images {
		target, err := b.CreateRenderTarget(image, sc.Format, sc.Extent)
		if err != nil {
			destroyRenderTargets(b, targets)
			return nil, errors.Wrapf(err, "backend.CreateRenderTarget() image %d", idx)
		}
		targets = append(targets, target)
	}
	return targets, nil
}

func destroyRenderTargets(b Backend, targets []RenderTarget) {
	for _, target := range targets {
		b.DestroyRenderTarget(target)
	}
}
