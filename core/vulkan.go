package core

import (
	"math"

	"github.com/cockroachdb/errors"
	vk "github.com/vulkan-go/vulkan"
)

// BackendConfiguration wires an already-created device, surface and render
// pass into a VulkanBackend. Device selection, pipeline construction and
// surface creation belong to the caller.
type BackendConfiguration struct {
	PhysicalDevice vk.PhysicalDevice
	Device         vk.Device
	Surface        vk.Surface

	GraphicsQueue vk.Queue
	PresentQueue  vk.Queue
	QueueFamilies QueueFamilies

	// RenderPass is the fixed render pass every render target binds to.
	RenderPass vk.RenderPass

	// AttachmentFormat is the color format RenderPass was created against.
	// Render-target creation rejects images of any other format.
	AttachmentFormat Format

	// ClearColor fills the color attachment at render pass begin.
	ClearColor [4]float32
}

// NewVulkanBackend creates the Vulkan implementation of Backend. The
// command pool lives on the graphics queue family with per-buffer reset so
// command sequences can be re-recorded every frame.
func NewVulkanBackend(cfg BackendConfiguration) (*VulkanBackend, error) {
	if cfg.Device == nil || cfg.PhysicalDevice == nil {
		return nil, errors.New("core: BackendConfiguration requires a device")
	}
	if cfg.RenderPass == vk.NullRenderPass {
		return nil, errors.New("core: BackendConfiguration requires a render pass")
	}

	cpci := vk.CommandPoolCreateInfo{
		SType:            vk.StructureTypeCommandPoolCreateInfo,
		QueueFamilyIndex: cfg.QueueFamilies.Graphics,
		Flags:            vk.CommandPoolCreateFlags(vk.CommandPoolCreateResetCommandBufferBit),
	}

	var commandPool vk.CommandPool
	if err := vk.Error(vk.CreateCommandPool(cfg.Device, &cpci, nil, &commandPool)); err != nil {
		return nil, errors.New("vk.CreateCommandPool(): " + err.Error())
	}

	return &VulkanBackend{
		configuration: cfg,
		commandPool:   commandPool,
	}, nil
}

// VulkanBackend implements Backend on the Vulkan API.
type VulkanBackend struct {
	configuration BackendConfiguration
	commandPool   vk.CommandPool
}

type vulkanRenderTarget struct {
	view        vk.ImageView
	framebuffer vk.Framebuffer
	commands    vk.CommandBuffer
}

// Destroy releases the backend's own resources. Presenter-owned handles
// must have been returned first.
func (v *VulkanBackend) Destroy() {
	vk.DestroyCommandPool(v.configuration.Device, v.commandPool, nil)
}

// SurfaceSupport implements Backend
func (v *VulkanBackend) SurfaceSupport() (Capabilities, error) {
	var supported vk.Bool32
	if err := vk.Error(vk.GetPhysicalDeviceSurfaceSupport(
		v.configuration.PhysicalDevice,
		v.configuration.QueueFamilies.Present,
		v.configuration.Surface,
		&supported,
	)); err != nil {
		return Capabilities{}, errors.New("vk.GetPhysicalDeviceSurfaceSupport(): " + err.Error())
	}
	if !supported.B() {
		return Capabilities{}, errors.Wrap(ErrUnsupportedSurface, "vk.GetPhysicalDeviceSurfaceSupport()")
	}
	return QuerySurfaceSupport(v.configuration.PhysicalDevice, v.configuration.Surface)
}

// QuerySurfaceSupport reads the surface's current capabilities for a
// physical device. Callers building a render pass ahead of the backend use
// this directly so format selection and render pass creation stay in
// lockstep. Never cached: bounds and extent can change between calls.
func QuerySurfaceSupport(physicalDevice vk.PhysicalDevice, surface vk.Surface) (Capabilities, error) {
	var surfaceCapabilities vk.SurfaceCapabilities
	if err := vk.Error(vk.GetPhysicalDeviceSurfaceCapabilities(physicalDevice, surface, &surfaceCapabilities)); err != nil {
		return Capabilities{}, errors.New("vk.GetPhysicalDeviceSurfaceCapabilities(): " + err.Error())
	}
	surfaceCapabilities.Deref()
	surfaceCapabilities.CurrentExtent.Deref()
	surfaceCapabilities.MinImageExtent.Deref()
	surfaceCapabilities.MaxImageExtent.Deref()

	var formatCount uint32
	if err := vk.Error(vk.GetPhysicalDeviceSurfaceFormats(physicalDevice, surface, &formatCount, nil)); err != nil {
		return Capabilities{}, errors.New("vk.GetPhysicalDeviceSurfaceFormats(): " + err.Error())
	}
	surfaceFormats := make([]vk.SurfaceFormat, formatCount)
	if err := vk.Error(vk.GetPhysicalDeviceSurfaceFormats(physicalDevice, surface, &formatCount, surfaceFormats)); err != nil {
		return Capabilities{}, errors.New("vk.GetPhysicalDeviceSurfaceFormats(): " + err.Error())
	}

	var modeCount uint32
	if err := vk.Error(vk.GetPhysicalDeviceSurfacePresentModes(physicalDevice, surface, &modeCount, nil)); err != nil {
		return Capabilities{}, errors.New("vk.GetPhysicalDeviceSurfacePresentModes(): " + err.Error())
	}
	presentModes := make([]vk.PresentMode, modeCount)
	if err := vk.Error(vk.GetPhysicalDeviceSurfacePresentModes(physicalDevice, surface, &modeCount, presentModes)); err != nil {
		return Capabilities{}, errors.New("vk.GetPhysicalDeviceSurfacePresentModes(): " + err.Error())
	}

	caps := Capabilities{
		MinImageCount: surfaceCapabilities.MinImageCount,
		MaxImageCount: surfaceCapabilities.MaxImageCount,
		CurrentExtent: extentFromVk(surfaceCapabilities.CurrentExtent),
		MinExtent:     extentFromVk(surfaceCapabilities.MinImageExtent),
		MaxExtent:     extentFromVk(surfaceCapabilities.MaxImageExtent),
	}

	for _, sf := range surfaceFormats {
		sf.Deref()
		format, ok := formatFromVk(sf.Format)
		if !ok || sf.ColorSpace != vk.ColorSpaceSrgbNonlinear {
			continue
		}
		caps.Formats = append(caps.Formats, SurfaceFormat{
			Format:     format,
			ColorSpace: ColorSpaceSRGBNonlinear,
		})
	}
	for _, pm := range presentModes {
		if mode, ok := presentModeFromVk(pm); ok {
			caps.PresentModes = append(caps.PresentModes, mode)
		}
	}

	if len(caps.Formats) == 0 || len(caps.PresentModes) == 0 {
		return Capabilities{}, errors.Wrap(ErrUnsupportedSurface, "no usable surface formats or present modes")
	}
	return caps, nil
}

// CreateSwapchain implements Backend
func (v *VulkanBackend) CreateSwapchain(info SwapchainInfo) (SwapchainHandle, []ImageHandle, error) {
	dev := v.configuration.Device

	// Composite alpha and transform come from a fresh capability read; the
	// supported sets are device properties the negotiated info does not
	// carry.
	var surfaceCapabilities vk.SurfaceCapabilities
	if err := vk.Error(vk.GetPhysicalDeviceSurfaceCapabilities(v.configuration.PhysicalDevice, v.configuration.Surface, &surfaceCapabilities)); err != nil {
		return nil, nil, errors.New("vk.GetPhysicalDeviceSurfaceCapabilities(): " + err.Error())
	}
	surfaceCapabilities.Deref()

	compositeAlpha := vk.CompositeAlphaOpaqueBit
	for _, flag := range []vk.CompositeAlphaFlagBits{
		vk.CompositeAlphaOpaqueBit,
		vk.CompositeAlphaPreMultipliedBit,
		vk.CompositeAlphaPostMultipliedBit,
		vk.CompositeAlphaInheritBit,
	} {
		if surfaceCapabilities.SupportedCompositeAlpha&vk.CompositeAlphaFlags(flag) != 0 {
			compositeAlpha = flag
			break
		}
	}

	preTransform := vk.SurfaceTransformIdentityBit
	if surfaceCapabilities.SupportedTransforms&vk.SurfaceTransformFlags(vk.SurfaceTransformIdentityBit) == 0 {
		preTransform = surfaceCapabilities.CurrentTransform
	}

	sharingMode := vk.SharingModeExclusive
	var familyIndices []uint32
	if len(info.QueueFamilies) > 1 {
		sharingMode = vk.SharingModeConcurrent
		familyIndices = info.QueueFamilies
	}

	oldSwapchain := vk.NullSwapchain
	if info.OldSwapchain != nil {
		old, ok := info.OldSwapchain.(vk.Swapchain)
		if !ok {
			return nil, nil, errors.New("core: old swapchain handle is not a vulkan swapchain")
		}
		oldSwapchain = old
	}

	scci := vk.SwapchainCreateInfo{
		SType:           vk.StructureTypeSwapchainCreateInfo,
		Surface:         v.configuration.Surface,
		MinImageCount:   info.MinImageCount,
		ImageFormat:     VulkanFormat(info.Format.Format),
		ImageColorSpace: vk.ColorSpaceSrgbNonlinear,
		ImageExtent: vk.Extent2D{
			Width:  info.Extent.Width,
			Height: info.Extent.Height,
		},
		ImageArrayLayers:      1,
		ImageUsage:            vk.ImageUsageFlags(vk.ImageUsageColorAttachmentBit),
		ImageSharingMode:      sharingMode,
		QueueFamilyIndexCount: uint32(len(familyIndices)),
		PQueueFamilyIndices:   familyIndices,
		PreTransform:          preTransform,
		CompositeAlpha:        compositeAlpha,
		PresentMode:           presentModeToVk(info.PresentMode),
		Clipped:               vk.True,
		OldSwapchain:          oldSwapchain,
	}

	var swapchain vk.Swapchain
	if ret := vk.CreateSwapchain(dev, &scci, nil, &swapchain); ret != vk.Success {
		return nil, nil, vkResult("vk.CreateSwapchain()", ret)
	}

	var imageCount uint32
	if err := vk.Error(vk.GetSwapchainImages(dev, swapchain, &imageCount, nil)); err != nil {
		vk.DestroySwapchain(dev, swapchain, nil)
		return nil, nil, errors.New("vk.GetSwapchainImages(): " + err.Error())
	}
	swapchainImages := make([]vk.Image, imageCount)
	if err := vk.Error(vk.GetSwapchainImages(dev, swapchain, &imageCount, swapchainImages)); err != nil {
		vk.DestroySwapchain(dev, swapchain, nil)
		return nil, nil, errors.New("vk.GetSwapchainImages(): " + err.Error())
	}

	images := make([]ImageHandle, len(swapchainImages))
	for idx, image := range swapchainImages {
		images[idx] = image
	}
	return swapchain, images, nil
}

// DestroySwapchain implements Backend
func (v *VulkanBackend) DestroySwapchain(handle SwapchainHandle) {
	if swapchain, ok := handle.(vk.Swapchain); ok {
		vk.DestroySwapchain(v.configuration.Device, swapchain, nil)
	}
}

// CreateRenderTarget implements Backend
func (v *VulkanBackend) CreateRenderTarget(image ImageHandle, format SurfaceFormat, extent Extent) (RenderTarget, error) {
	if format.Format != v.configuration.AttachmentFormat {
		return nil, errors.Wrapf(ErrIncompatibleAttachment,
			"swapchain format %d, render pass expects %d", format.Format, v.configuration.AttachmentFormat)
	}
	vkImage, ok := image.(vk.Image)
	if !ok {
		return nil, errors.New("core: image handle is not a vulkan image")
	}
	dev := v.configuration.Device

	ivci := vk.ImageViewCreateInfo{
		SType:    vk.StructureTypeImageViewCreateInfo,
		Image:    vkImage,
		ViewType: vk.ImageViewType2d,
		Format:   VulkanFormat(format.Format),
		Components: vk.ComponentMapping{
			R: vk.ComponentSwizzleIdentity,
			G: vk.ComponentSwizzleIdentity,
			B: vk.ComponentSwizzleIdentity,
			A: vk.ComponentSwizzleIdentity,
		},
		SubresourceRange: vk.ImageSubresourceRange{
			AspectMask: vk.ImageAspectFlags(vk.ImageAspectColorBit),
			LevelCount: 1,
			LayerCount: 1,
		},
	}
	var view vk.ImageView
	if err := vk.Error(vk.CreateImageView(dev, &ivci, nil, &view)); err != nil {
		return nil, errors.New("vk.CreateImageView(): " + err.Error())
	}

	fci := vk.FramebufferCreateInfo{
		SType:           vk.StructureTypeFramebufferCreateInfo,
		RenderPass:      v.configuration.RenderPass,
		AttachmentCount: 1,
		PAttachments:    []vk.ImageView{view},
		Width:           extent.Width,
		Height:          extent.Height,
		Layers:          1,
	}
	var framebuffer vk.Framebuffer
	if err := vk.Error(vk.CreateFramebuffer(dev, &fci, nil, &framebuffer)); err != nil {
		vk.DestroyImageView(dev, view, nil)
		return nil, errors.New("vk.CreateFramebuffer(): " + err.Error())
	}

	cbai := vk.CommandBufferAllocateInfo{
		SType:              vk.StructureTypeCommandBufferAllocateInfo,
		CommandPool:        v.commandPool,
		Level:              vk.CommandBufferLevelPrimary,
		CommandBufferCount: 1,
	}
	commandBuffers := make([]vk.CommandBuffer, 1)
	if err := vk.Error(vk.AllocateCommandBuffers(dev, &cbai, commandBuffers)); err != nil {
		vk.DestroyFramebuffer(dev, framebuffer, nil)
		vk.DestroyImageView(dev, view, nil)
		return nil, errors.New("vk.AllocateCommandBuffers(): " + err.Error())
	}

	return &vulkanRenderTarget{
		view:        view,
		framebuffer: framebuffer,
		commands:    commandBuffers[0],
	}, nil
}

// DestroyRenderTarget implements Backend
func (v *VulkanBackend) DestroyRenderTarget(target RenderTarget) {
	rt, ok := target.(*vulkanRenderTarget)
	if !ok {
		return
	}
	dev := v.configuration.Device
	vk.FreeCommandBuffers(dev, v.commandPool, 1, []vk.CommandBuffer{rt.commands})
	vk.DestroyFramebuffer(dev, rt.framebuffer, nil)
	vk.DestroyImageView(dev, rt.view, nil)
}

// CreateSignal implements Backend
func (v *VulkanBackend) CreateSignal() (Signal, error) {
	sci := vk.SemaphoreCreateInfo{
		SType: vk.StructureTypeSemaphoreCreateInfo,
	}
	var semaphore vk.Semaphore
	if err := vk.Error(vk.CreateSemaphore(v.configuration.Device, &sci, nil, &semaphore)); err != nil {
		return nil, errors.New("vk.CreateSemaphore(): " + err.Error())
	}
	return semaphore, nil
}

// DestroySignal implements Backend
func (v *VulkanBackend) DestroySignal(signal Signal) {
	if semaphore, ok := signal.(vk.Semaphore); ok {
		vk.DestroySemaphore(v.configuration.Device, semaphore, nil)
	}
}

// CreateFence implements Backend
func (v *VulkanBackend) CreateFence() (Fence, error) {
	fci := vk.FenceCreateInfo{
		SType: vk.StructureTypeFenceCreateInfo,
	}
	var fence vk.Fence
	if err := vk.Error(vk.CreateFence(v.configuration.Device, &fci, nil, &fence)); err != nil {
		return nil, errors.New("vk.CreateFence(): " + err.Error())
	}
	return fence, nil
}

// DestroyFence implements Backend
func (v *VulkanBackend) DestroyFence(fence Fence) {
	if f, ok := fence.(vk.Fence); ok {
		vk.DestroyFence(v.configuration.Device, f, nil)
	}
}

// FenceDone implements Backend
func (v *VulkanBackend) FenceDone(fence Fence) (bool, error) {
	f, ok := fence.(vk.Fence)
	if !ok {
		return false, errors.New("core: fence handle is not a vulkan fence")
	}
	switch ret := vk.GetFenceStatus(v.configuration.Device, f); ret {
	case vk.Success:
		return true, nil
	case vk.NotReady:
		return false, nil
	default:
		return false, vkResult("vk.GetFenceStatus()", ret)
	}
}

// WaitFence implements Backend
func (v *VulkanBackend) WaitFence(fence Fence) error {
	f, ok := fence.(vk.Fence)
	if !ok {
		return errors.New("core: fence handle is not a vulkan fence")
	}
	return vkResult("vk.WaitForFences()",
		vk.WaitForFences(v.configuration.Device, 1, []vk.Fence{f}, vk.True, math.MaxUint64))
}

// ResetFence implements Backend
func (v *VulkanBackend) ResetFence(fence Fence) error {
	f, ok := fence.(vk.Fence)
	if !ok {
		return errors.New("core: fence handle is not a vulkan fence")
	}
	return vkResult("vk.ResetFences()",
		vk.ResetFences(v.configuration.Device, 1, []vk.Fence{f}))
}

// Acquire implements Backend
func (v *VulkanBackend) Acquire(handle SwapchainHandle, imageReady Signal) (AcquiredImage, error) {
	swapchain, ok := handle.(vk.Swapchain)
	if !ok {
		return AcquiredImage{}, errors.New("core: swapchain handle is not a vulkan swapchain")
	}
	semaphore, ok := imageReady.(vk.Semaphore)
	if !ok {
		return AcquiredImage{}, errors.New("core: signal handle is not a vulkan semaphore")
	}

	var imageIndex uint32
	ret := vk.AcquireNextImage(v.configuration.Device, swapchain, math.MaxUint64, semaphore, vk.NullFence, &imageIndex)
	switch ret {
	case vk.Success:
		return AcquiredImage{Index: imageIndex}, nil
	case vk.Suboptimal:
		return AcquiredImage{Index: imageIndex, Suboptimal: true}, nil
	default:
		return AcquiredImage{}, vkResult("vk.AcquireNextImage()", ret)
	}
}

// Record implements Backend
func (v *VulkanBackend) Record(target RenderTarget, extent Extent, rec Recorder) error {
	rt, ok := target.(*vulkanRenderTarget)
	if !ok {
		return errors.New("core: render target is not a vulkan render target")
	}

	cbbi := vk.CommandBufferBeginInfo{
		SType: vk.StructureTypeCommandBufferBeginInfo,
		Flags: vk.CommandBufferUsageFlags(vk.CommandBufferUsageOneTimeSubmitBit),
	}
	if err := vk.Error(vk.BeginCommandBuffer(rt.commands, &cbbi)); err != nil {
		return errors.New("vk.BeginCommandBuffer(): " + err.Error())
	}

	clearValues := make([]vk.ClearValue, 1)
	clearValues[0].SetColor(v.configuration.ClearColor[:])

	rpbi := vk.RenderPassBeginInfo{
		SType:       vk.StructureTypeRenderPassBeginInfo,
		RenderPass:  v.configuration.RenderPass,
		Framebuffer: rt.framebuffer,
		RenderArea: vk.Rect2D{
			Offset: vk.Offset2D{X: 0, Y: 0},
			Extent: vk.Extent2D{
				Width:  extent.Width,
				Height: extent.Height,
			},
		},
		ClearValueCount: 1,
		PClearValues:    clearValues,
	}
	vk.CmdBeginRenderPass(rt.commands, &rpbi, vk.SubpassContentsInline)

	if err := rec(rt.commands, extent); err != nil {
		vk.CmdEndRenderPass(rt.commands)
		vk.EndCommandBuffer(rt.commands)
		return errors.Wrap(err, "recorder")
	}

	vk.CmdEndRenderPass(rt.commands)
	if err := vk.Error(vk.EndCommandBuffer(rt.commands)); err != nil {
		return errors.New("vk.EndCommandBuffer(): " + err.Error())
	}
	return nil
}

// Submit implements Backend
func (v *VulkanBackend) Submit(target RenderTarget, imageReady, renderDone Signal, done Fence) error {
	rt, ok := target.(*vulkanRenderTarget)
	if !ok {
		return errors.New("core: render target is not a vulkan render target")
	}
	wait, ok := imageReady.(vk.Semaphore)
	if !ok {
		return errors.New("core: signal handle is not a vulkan semaphore")
	}
	signal, ok := renderDone.(vk.Semaphore)
	if !ok {
		return errors.New("core: signal handle is not a vulkan semaphore")
	}
	fence := vk.NullFence
	if done != nil {
		f, ok := done.(vk.Fence)
		if !ok {
			return errors.New("core: fence handle is not a vulkan fence")
		}
		fence = f
	}

	submit := []vk.SubmitInfo{{
		SType:              vk.StructureTypeSubmitInfo,
		WaitSemaphoreCount: 1,
		PWaitSemaphores:    []vk.Semaphore{wait},
		PWaitDstStageMask: []vk.PipelineStageFlags{
			vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit),
		},
		CommandBufferCount:   1,
		PCommandBuffers:      []vk.CommandBuffer{rt.commands},
		SignalSemaphoreCount: 1,
		PSignalSemaphores:    []vk.Semaphore{signal},
	}}

	return vkResult("vk.QueueSubmit()",
		vk.QueueSubmit(v.configuration.GraphicsQueue, 1, submit, fence))
}

// Present implements Backend
func (v *VulkanBackend) Present(handle SwapchainHandle, index uint32, renderDone Signal) error {
	swapchain, ok := handle.(vk.Swapchain)
	if !ok {
		return errors.New("core: swapchain handle is not a vulkan swapchain")
	}
	semaphore, ok := renderDone.(vk.Semaphore)
	if !ok {
		return errors.New("core: signal handle is not a vulkan semaphore")
	}

	presentInfo := vk.PresentInfo{
		SType:              vk.StructureTypePresentInfo,
		WaitSemaphoreCount: 1,
		PWaitSemaphores:    []vk.Semaphore{semaphore},
		SwapchainCount:     1,
		PSwapchains:        []vk.Swapchain{swapchain},
		PImageIndices:      []uint32{index},
	}

	return vkResult("vk.QueuePresent()",
		vk.QueuePresent(v.configuration.PresentQueue, &presentInfo))
}

// WaitIdle implements Backend
func (v *VulkanBackend) WaitIdle() error {
	return vkResult("vk.DeviceWaitIdle()", vk.DeviceWaitIdle(v.configuration.Device))
}

// vkResult maps a Vulkan result onto the package error taxonomy so the
// presenter can tell transient surface trouble from session-ending
// failures with errors.Is.
func vkResult(op string, ret vk.Result) error {
	switch ret {
	case vk.Success:
		return nil
	case vk.ErrorOutOfDate, vk.ErrorSurfaceLost:
		return errors.Wrap(ErrOutOfDate, op)
	case vk.ErrorDeviceLost:
		return errors.Wrap(ErrDeviceLost, op)
	case vk.ErrorOutOfHostMemory, vk.ErrorOutOfDeviceMemory:
		return errors.Wrap(ErrOutOfMemory, op)
	default:
		return errors.Wrap(vk.Error(ret), op)
	}
}

func formatFromVk(format vk.Format) (Format, bool) {
	switch format {
	case vk.FormatB8g8r8a8Srgb:
		return FormatB8G8R8A8SRGB, true
	case vk.FormatB8g8r8a8Unorm:
		return FormatB8G8R8A8UNorm, true
	case vk.FormatR8g8b8a8Srgb:
		return FormatR8G8B8A8SRGB, true
	case vk.FormatR8g8b8a8Unorm:
		return FormatR8G8B8A8UNorm, true
	default:
		return FormatUndefined, false
	}
}

// VulkanFormat translates a negotiated format back to the raw enum, for
// callers creating render passes or pipelines against the swapchain.
func VulkanFormat(format Format) vk.Format {
	switch format {
	case FormatB8G8R8A8SRGB:
		return vk.FormatB8g8r8a8Srgb
	case FormatB8G8R8A8UNorm:
		return vk.FormatB8g8r8a8Unorm
	case FormatR8G8B8A8SRGB:
		return vk.FormatR8g8b8a8Srgb
	case FormatR8G8B8A8UNorm:
		return vk.FormatR8g8b8a8Unorm
	default:
		return vk.FormatUndefined
	}
}

func presentModeFromVk(mode vk.PresentMode) (PresentMode, bool) {
	switch mode {
	case vk.PresentModeImmediate:
		return PresentModeImmediate, true
	case vk.PresentModeMailbox:
		return PresentModeMailbox, true
	case vk.PresentModeFifo:
		return PresentModeFIFO, true
	case vk.PresentModeFifoRelaxed:
		return PresentModeFIFORelaxed, true
	default:
		return PresentModeFIFO, false
	}
}

func presentModeToVk(mode PresentMode) vk.PresentMode {
	switch mode {
	case PresentModeImmediate:
		return vk.PresentModeImmediate
	case PresentModeMailbox:
		return vk.PresentModeMailbox
	case PresentModeFIFORelaxed:
		return vk.PresentModeFifoRelaxed
	default:
		return vk.PresentModeFifo
	}
}

func extentFromVk(extent vk.Extent2D) Extent {
	return Extent{Width: extent.Width, Height: extent.Height}
}
