// Package model holds the vertex layouts shared between CPU-side geometry
// and pipeline vertex input state.
package model

import (
	"unsafe"

	glm "github.com/go-gl/mathgl/mgl32"
	vk "github.com/vulkan-go/vulkan"
)

// Vertex is the interleaved per-vertex layout. The attribute descriptions
// below must match this struct field for field.
type Vertex struct {
	Pos   glm.Vec3
	Color glm.Vec4
}

// Uniform defines a model-view-projection block.
type Uniform struct {
	Model      glm.Mat4
	View       glm.Mat4
	Projection glm.Mat4
}

// VertexSize is the stride of one Vertex in a packed buffer.
const VertexSize = int(unsafe.Sizeof(Vertex{}))

// Bytes reinterprets the vertex slice as raw bytes for upload into mapped
// device memory. The returned slice aliases vertices.
func Bytes(vertices []Vertex) []byte {
	if len(vertices) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&vertices[0])), len(vertices)*VertexSize)
}

// Triangle returns a clip-space triangle with red, green and blue corners.
func Triangle() []Vertex {
	return []Vertex{
		{Pos: glm.Vec3{0.0, -0.5, 0.0}, Color: glm.Vec4{1.0, 0.0, 0.0, 1.0}},
		{Pos: glm.Vec3{0.5, 0.5, 0.0}, Color: glm.Vec4{0.0, 1.0, 0.0, 1.0}},
		{Pos: glm.Vec3{-0.5, 0.5, 0.0}, Color: glm.Vec4{0.0, 0.0, 1.0, 1.0}},
	}
}

// VertexBindingDescriptions return Vulkan vertex binding descriptors
func VertexBindingDescriptions() []vk.VertexInputBindingDescription {
	return []vk.VertexInputBindingDescription{{
		Binding:   0,
		Stride:    uint32(VertexSize),
		InputRate: vk.VertexInputRateVertex,
	}}
}

// VertexAttributeDescriptions return Vulkan attribute descriptors
func VertexAttributeDescriptions() []vk.VertexInputAttributeDescription {
	return []vk.VertexInputAttributeDescription{
		{
			Binding:  0,
			Location: 0,
			Format:   vk.FormatR32g32b32Sfloat,
			Offset:   uint32(unsafe.Offsetof(Vertex{}.Pos)),
		},
		{
			Binding:  0,
			Location: 1,
			Format:   vk.FormatR32g32b32a32Sfloat,
			Offset:   uint32(unsafe.Offsetof(Vertex{}.Color)),
		},
	}
}
