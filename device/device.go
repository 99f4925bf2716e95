// Package device handles Vulkan bootstrap: instance creation, physical
// device discovery and suitability checks, queue family selection and
// logical device construction. It stops where presentation begins; the
// core package takes over from the logical device.
package device

import vk "github.com/vulkan-go/vulkan"

// PhysicalDeviceInfo describes available physical properties of a rendering device
type PhysicalDeviceInfo struct {
	ID            int
	VendorID      int
	DriverVersion int
	Name          string
	Invalid       bool
	Extensions    []string
	Layers        []string
	Memory        vk.DeviceSize
}
