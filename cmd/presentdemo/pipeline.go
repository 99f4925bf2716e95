// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"fmt"
	"unsafe"

	vk "github.com/vulkan-go/vulkan"

	"github.com/koru3d/present/core"
	"github.com/koru3d/present/model"
)

func newRenderPass(device vk.Device, format vk.Format) (vk.RenderPass, error) {
	rpci := vk.RenderPassCreateInfo{
		SType:           vk.StructureTypeRenderPassCreateInfo,
		AttachmentCount: 1,
		PAttachments: []vk.AttachmentDescription{{
			Format:         format,
			Samples:        vk.SampleCount1Bit,
			LoadOp:         vk.AttachmentLoadOpClear,
			StoreOp:        vk.AttachmentStoreOpStore,
			StencilLoadOp:  vk.AttachmentLoadOpDontCare,
			StencilStoreOp: vk.AttachmentStoreOpDontCare,
			InitialLayout:  vk.ImageLayoutUndefined,
			FinalLayout:    vk.ImageLayoutPresentSrc,
		}},
		SubpassCount: 1,
		PSubpasses: []vk.SubpassDescription{{
			PipelineBindPoint:    vk.PipelineBindPointGraphics,
			ColorAttachmentCount: 1,
			PColorAttachments: []vk.AttachmentReference{{
				Attachment: 0,
				Layout:     vk.ImageLayoutColorAttachmentOptimal,
			}},
		}},
		DependencyCount: 1,
		PDependencies: []vk.SubpassDependency{{
			SrcSubpass:    vk.SubpassExternal,
			DstSubpass:    0,
			SrcStageMask:  vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit),
			DstStageMask:  vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit),
			DstAccessMask: vk.AccessFlags(vk.AccessColorAttachmentWriteBit),
		}},
	}

	var renderPass vk.RenderPass
	if err := vk.Error(vk.CreateRenderPass(device, &rpci, nil, &renderPass)); err != nil {
		return vk.NullRenderPass, fmt.Errorf("vk.CreateRenderPass(): %s", err.Error())
	}
	return renderPass, nil
}

type trianglePipeline struct {
	device vk.Device

	layout     vk.PipelineLayout
	handle     vk.Pipeline
	vertModule vk.ShaderModule
	fragModule vk.ShaderModule

	vertexBuffer vk.Buffer
	vertexMemory vk.DeviceMemory
	vertexCount  uint32
}

// newTrianglePipeline builds the demo's graphics pipeline. Viewport and
// scissor are dynamic so swapchain rebuilds never touch the pipeline.
func newTrianglePipeline(device vk.Device, physicalDevice vk.PhysicalDevice, renderPass vk.RenderPass, vertCode, fragCode []byte) (*trianglePipeline, error) {
	p := &trianglePipeline{device: device}

	var err error
	if p.vertModule, err = newShaderModule(device, vertCode); err != nil {
		return nil, err
	}
	if p.fragModule, err = newShaderModule(device, fragCode); err != nil {
		p.Destroy()
		return nil, err
	}

	plci := vk.PipelineLayoutCreateInfo{
		SType: vk.StructureTypePipelineLayoutCreateInfo,
	}
	if err := vk.Error(vk.CreatePipelineLayout(device, &plci, nil, &p.layout)); err != nil {
		p.Destroy()
		return nil, fmt.Errorf("vk.CreatePipelineLayout(): %s", err.Error())
	}

	bindings := model.VertexBindingDescriptions()
	attributes := model.VertexAttributeDescriptions()

	gpci := []vk.GraphicsPipelineCreateInfo{{
		SType:      vk.StructureTypeGraphicsPipelineCreateInfo,
		StageCount: 2,
		PStages: []vk.PipelineShaderStageCreateInfo{
			{
				SType:  vk.StructureTypePipelineShaderStageCreateInfo,
				Stage:  vk.ShaderStageVertexBit,
				Module: p.vertModule,
				PName:  "main\x00",
			},
			{
				SType:  vk.StructureTypePipelineShaderStageCreateInfo,
				Stage:  vk.ShaderStageFragmentBit,
				Module: p.fragModule,
				PName:  "main\x00",
			},
		},
		PVertexInputState: &vk.PipelineVertexInputStateCreateInfo{
			SType:                           vk.StructureTypePipelineVertexInputStateCreateInfo,
			VertexBindingDescriptionCount:   uint32(len(bindings)),
			PVertexBindingDescriptions:      bindings,
			VertexAttributeDescriptionCount: uint32(len(attributes)),
			PVertexAttributeDescriptions:    attributes,
		},
		PInputAssemblyState: &vk.PipelineInputAssemblyStateCreateInfo{
			SType:    vk.StructureTypePipelineInputAssemblyStateCreateInfo,
			Topology: vk.PrimitiveTopologyTriangleList,
		},
		PViewportState: &vk.PipelineViewportStateCreateInfo{
			SType:         vk.StructureTypePipelineViewportStateCreateInfo,
			ViewportCount: 1,
			ScissorCount:  1,
		},
		PRasterizationState: &vk.PipelineRasterizationStateCreateInfo{
			SType:       vk.StructureTypePipelineRasterizationStateCreateInfo,
			PolygonMode: vk.PolygonModeFill,
			CullMode:    vk.CullModeFlags(vk.CullModeNone),
			FrontFace:   vk.FrontFaceClockwise,
			LineWidth:   1.0,
		},
		PMultisampleState: &vk.PipelineMultisampleStateCreateInfo{
			SType:                vk.StructureTypePipelineMultisampleStateCreateInfo,
			RasterizationSamples: vk.SampleCount1Bit,
		},
		PColorBlendState: &vk.PipelineColorBlendStateCreateInfo{
			SType:           vk.StructureTypePipelineColorBlendStateCreateInfo,
			AttachmentCount: 1,
			PAttachments: []vk.PipelineColorBlendAttachmentState{{
				ColorWriteMask: vk.ColorComponentFlags(
					vk.ColorComponentRBit | vk.ColorComponentGBit |
						vk.ColorComponentBBit | vk.ColorComponentABit),
			}},
		},
		PDynamicState: &vk.PipelineDynamicStateCreateInfo{
			SType:             vk.StructureTypePipelineDynamicStateCreateInfo,
			DynamicStateCount: 2,
			PDynamicStates: []vk.DynamicState{
				vk.DynamicStateViewport,
				vk.DynamicStateScissor,
			},
		},
		Layout:     p.layout,
		RenderPass: renderPass,
	}}

	pipelines := make([]vk.Pipeline, 1)
	if err := vk.Error(vk.CreateGraphicsPipelines(device, vk.NullPipelineCache, 1, gpci, nil, pipelines)); err != nil {
		p.Destroy()
		return nil, fmt.Errorf("vk.CreateGraphicsPipelines(): %s", err.Error())
	}
	p.handle = pipelines[0]

	if err := p.uploadVertices(physicalDevice, model.Triangle()); err != nil {
		p.Destroy()
		return nil, err
	}
	return p, nil
}

func newShaderModule(device vk.Device, code []byte) (vk.ShaderModule, error) {
	smci := vk.ShaderModuleCreateInfo{
		SType:    vk.StructureTypeShaderModuleCreateInfo,
		CodeSize: uint(len(code)),
		PCode:    core.SliceUint32(code),
	}
	var shader vk.ShaderModule
	if err := vk.Error(vk.CreateShaderModule(device, &smci, nil, &shader)); err != nil {
		return vk.NullShaderModule, fmt.Errorf("vk.CreateShaderModule(): %s", err.Error())
	}
	return shader, nil
}

func (p *trianglePipeline) uploadVertices(physicalDevice vk.PhysicalDevice, vertices []model.Vertex) error {
	raw := model.Bytes(vertices)

	bci := vk.BufferCreateInfo{
		SType:       vk.StructureTypeBufferCreateInfo,
		Size:        vk.DeviceSize(len(raw)),
		Usage:       vk.BufferUsageFlags(vk.BufferUsageVertexBufferBit),
		SharingMode: vk.SharingModeExclusive,
	}
	if err := vk.Error(vk.CreateBuffer(p.device, &bci, nil, &p.vertexBuffer)); err != nil {
		return fmt.Errorf("vk.CreateBuffer(): %s", err.Error())
	}

	var memoryRequirements vk.MemoryRequirements
	vk.GetBufferMemoryRequirements(p.device, p.vertexBuffer, &memoryRequirements)
	memoryRequirements.Deref()

	memoryType, err := findMemoryType(physicalDevice, memoryRequirements.MemoryTypeBits,
		vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit|vk.MemoryPropertyHostCoherentBit))
	if err != nil {
		return err
	}

	mai := vk.MemoryAllocateInfo{
		SType:           vk.StructureTypeMemoryAllocateInfo,
		AllocationSize:  memoryRequirements.Size,
		MemoryTypeIndex: memoryType,
	}
	if err := vk.Error(vk.AllocateMemory(p.device, &mai, nil, &p.vertexMemory)); err != nil {
		return fmt.Errorf("vk.AllocateMemory(): %s", err.Error())
	}
	if err := vk.Error(vk.BindBufferMemory(p.device, p.vertexBuffer, p.vertexMemory, 0)); err != nil {
		return fmt.Errorf("vk.BindBufferMemory(): %s", err.Error())
	}

	var mapped unsafe.Pointer
	vk.MapMemory(p.device, p.vertexMemory, 0, memoryRequirements.Size, 0, &mapped)
	vk.Memcopy(mapped, raw)
	vk.UnmapMemory(p.device, p.vertexMemory)

	p.vertexCount = uint32(len(vertices))
	return nil
}

func findMemoryType(device vk.PhysicalDevice, filter uint32, properties vk.MemoryPropertyFlags) (uint32, error) {
	var memoryProperties vk.PhysicalDeviceMemoryProperties
	vk.GetPhysicalDeviceMemoryProperties(device, &memoryProperties)
	memoryProperties.Deref()

	for idx := uint32(0); idx < memoryProperties.MemoryTypeCount; idx++ {
		if filter&(1<<idx) != 0 {
			memoryProperties.MemoryTypes[idx].Deref()
			if memoryProperties.MemoryTypes[idx].PropertyFlags&properties == properties {
				return idx, nil
			}
		}
	}
	return 0, fmt.Errorf("no suitable memory type found")
}

// Recorder returns the draw callback handed to the presenter.
func (p *trianglePipeline) Recorder() core.Recorder {
	return func(cmd core.CommandHandle, extent core.Extent) error {
		buffer, ok := cmd.(vk.CommandBuffer)
		if !ok {
			return fmt.Errorf("unexpected command handle %T", cmd)
		}

		vk.CmdBindPipeline(buffer, vk.PipelineBindPointGraphics, p.handle)
		vk.CmdSetViewport(buffer, 0, 1, []vk.Viewport{{
			Width:    float32(extent.Width),
			Height:   float32(extent.Height),
			MaxDepth: 1.0,
		}})
		vk.CmdSetScissor(buffer, 0, 1, []vk.Rect2D{{
			Extent: vk.Extent2D{Width: extent.Width, Height: extent.Height},
		}})
		vk.CmdBindVertexBuffers(buffer, 0, 1, []vk.Buffer{p.vertexBuffer}, []vk.DeviceSize{0})
		vk.CmdDraw(buffer, p.vertexCount, 1, 0, 0)
		return nil
	}
}

func (p *trianglePipeline) Destroy() {
	if p.vertexBuffer != vk.NullBuffer {
		vk.DestroyBuffer(p.device, p.vertexBuffer, nil)
	}
	if p.vertexMemory != vk.NullDeviceMemory {
		vk.FreeMemory(p.device, p.vertexMemory, nil)
	}
	if p.handle != vk.NullPipeline {
		vk.DestroyPipeline(p.device, p.handle, nil)
	}
	if p.layout != vk.NullPipelineLayout {
		vk.DestroyPipelineLayout(p.device, p.layout, nil)
	}
	if p.vertModule != vk.NullShaderModule {
		vk.DestroyShaderModule(p.device, p.vertModule, nil)
	}
	if p.fragModule != vk.NullShaderModule {
		vk.DestroyShaderModule(p.device, p.fragModule, nil)
	}
}
