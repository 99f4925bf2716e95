package device

import (
	"strings"
	"unsafe"

	"github.com/cockroachdb/errors"
	vk "github.com/vulkan-go/vulkan"

	"github.com/koru3d/present/core"
)

// SwapchainExtension must be offered by a physical device before it can
// present anything.
const SwapchainExtension = "VK_KHR_swapchain"

var DefaultVulkanApplicationInfo = &vk.ApplicationInfo{
	SType:              vk.StructureTypeApplicationInfo,
	ApiVersion:         vk.MakeVersion(1, 0, 0),
	ApplicationVersion: vk.MakeVersion(1, 0, 0),
	PApplicationName:   "Present demo\x00",
	PEngineName:        "https://github.com/koru3d\x00",
}

// InstanceConfiguration adjusts instance creation. Extensions normally come
// from the windowing layer; DebugMode additionally pulls in the standard
// validation layer and the debug report extension.
type InstanceConfiguration struct {
	DebugMode  bool
	Extensions []string
	Layers     []string
}

// NewInstance initializes the Vulkan loader through the given proc
// address (typically from the windowing library) and creates an instance.
func NewInstance(appInfo *vk.ApplicationInfo, procAddr unsafe.Pointer, cfg InstanceConfiguration) (*Instance, error) {
	if procAddr == nil {
		return nil, errors.New("device: instance proc address is nil")
	}
	vk.SetGetInstanceProcAddr(procAddr)
	if err := vk.Init(); err != nil {
		return nil, errors.New("vk.Init(): " + err.Error())
	}

	extensions := cfg.Extensions
	layers := cfg.Layers
	if cfg.DebugMode {
		extensions = append(extensions, "VK_EXT_debug_report")
		layers = append(layers, "VK_LAYER_KHRONOS_validation")
	}
	extensions = terminated(extensions)
	layers = terminated(layers)

	instanceInfo := vk.InstanceCreateInfo{
		SType:                   vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo:        appInfo,
		EnabledExtensionCount:   uint32(len(extensions)),
		PpEnabledExtensionNames: extensions,
		EnabledLayerCount:       uint32(len(layers)),
		PpEnabledLayerNames:     layers,
	}

	inst := &Instance{}
	if err := vk.Error(vk.CreateInstance(&instanceInfo, nil, &inst.instance)); err != nil {
		return nil, errors.New("vk.CreateInstance(): " + err.Error())
	}
	vk.InitInstance(inst.instance)

	if err := inst.enumerateDevices(); err != nil {
		vk.DestroyInstance(inst.instance, nil)
		return nil, err
	}
	return inst, nil
}

// Instance wraps a Vulkan instance together with the physical devices it
// exposes.
type Instance struct {
	availableDevices []vk.PhysicalDevice

	instance vk.Instance
}

// Handle returns the raw instance for surface creation.
func (in *Instance) Handle() vk.Instance {
	return in.instance
}

// PhysicalDevices returns the raw handles in enumeration order, matching
// the indices reported by Info.
func (in *Instance) PhysicalDevices() []vk.PhysicalDevice {
	return in.availableDevices
}

func (in *Instance) enumerateDevices() error {
	var deviceCount uint32
	if err := vk.Error(vk.EnumeratePhysicalDevices(in.instance, &deviceCount, nil)); err != nil {
		return errors.New("vk.EnumeratePhysicalDevices(): " + err.Error())
	}
	in.availableDevices = make([]vk.PhysicalDevice, deviceCount)
	if err := vk.Error(vk.EnumeratePhysicalDevices(in.instance, &deviceCount, in.availableDevices)); err != nil {
		return errors.New("vk.EnumeratePhysicalDevices(): " + err.Error())
	}
	if deviceCount == 0 {
		return errors.New("device: no Vulkan capable devices found")
	}
	return nil
}

// Info collects descriptive properties for every enumerated device.
func (in *Instance) Info() []PhysicalDeviceInfo {
	pdi := make([]PhysicalDeviceInfo, len(in.availableDevices))

	for i := 0; i < len(in.availableDevices); i++ {
		var numDeviceExtensions uint32
		if err := vk.Error(vk.EnumerateDeviceExtensionProperties(in.availableDevices[i], "", &numDeviceExtensions, nil)); err != nil {
			pdi[i].Invalid = true
		}
		deviceExt := make([]vk.ExtensionProperties, numDeviceExtensions)
		if err := vk.Error(vk.EnumerateDeviceExtensionProperties(in.availableDevices[i], "", &numDeviceExtensions, deviceExt)); err != nil {
			pdi[i].Invalid = true
		}
		for _, ext := range deviceExt {
			ext.Deref()
			pdi[i].Extensions = append(pdi[i].Extensions, vk.ToString(ext.ExtensionName[:]))
		}

		var numDeviceLayers uint32
		if err := vk.Error(vk.EnumerateDeviceLayerProperties(in.availableDevices[i], &numDeviceLayers, nil)); err != nil {
			pdi[i].Invalid = true
		}
		deviceLayers := make([]vk.LayerProperties, numDeviceLayers)
		if err := vk.Error(vk.EnumerateDeviceLayerProperties(in.availableDevices[i], &numDeviceLayers, deviceLayers)); err != nil {
			pdi[i].Invalid = true
		}
		for _, layer := range deviceLayers {
			layer.Deref()
			pdi[i].Layers = append(pdi[i].Layers, vk.ToString(layer.LayerName[:]))
		}

		var memoryProperties vk.PhysicalDeviceMemoryProperties
		vk.GetPhysicalDeviceMemoryProperties(in.availableDevices[i], &memoryProperties)
		memoryProperties.Deref()
		for iMem := uint32(0); iMem < memoryProperties.MemoryHeapCount; iMem++ {
			pdi[i].Memory = pdi[i].Memory + memoryProperties.MemoryHeaps[iMem].Size
		}

		var physicalDeviceProperties vk.PhysicalDeviceProperties
		vk.GetPhysicalDeviceProperties(in.availableDevices[i], &physicalDeviceProperties)
		physicalDeviceProperties.Deref()
		pdi[i].ID = int(physicalDeviceProperties.DeviceID)
		pdi[i].VendorID = int(physicalDeviceProperties.VendorID)
		pdi[i].Name = vk.ToString(physicalDeviceProperties.DeviceName[:])
		pdi[i].DriverVersion = int(physicalDeviceProperties.DriverVersion)
	}
	return pdi
}

// Destroy tears the instance down. Logical devices created from it must be
// destroyed first.
func (in *Instance) Destroy() {
	if in == nil {
		return
	}
	in.availableDevices = nil
	vk.DestroyInstance(in.instance, nil)
}

// Suitable reports whether the physical device can drive the given surface.
// The second return names the first missing requirement for log output.
func Suitable(physicalDevice vk.PhysicalDevice, surface vk.Surface, required []string) (bool, string) {
	var numDeviceExtensions uint32
	if err := vk.Error(vk.EnumerateDeviceExtensionProperties(physicalDevice, "", &numDeviceExtensions, nil)); err != nil {
		return false, "extension enumeration failed"
	}
	deviceExt := make([]vk.ExtensionProperties, numDeviceExtensions)
	if err := vk.Error(vk.EnumerateDeviceExtensionProperties(physicalDevice, "", &numDeviceExtensions, deviceExt)); err != nil {
		return false, "extension enumeration failed"
	}

	available := make(map[string]struct{}, len(deviceExt))
	for _, ext := range deviceExt {
		ext.Deref()
		available[vk.ToString(ext.ExtensionName[:])] = struct{}{}
	}
	for _, want := range append([]string{SwapchainExtension}, required...) {
		if _, ok := available[strings.TrimRight(want, "\x00")]; !ok {
			return false, "missing extension " + want
		}
	}

	if _, err := FindQueueFamilies(physicalDevice, surface); err != nil {
		return false, err.Error()
	}
	return true, ""
}

// FindQueueFamilies locates a graphics-capable family and a family that can
// present to the surface, preferring a single family that does both.
func FindQueueFamilies(physicalDevice vk.PhysicalDevice, surface vk.Surface) (core.QueueFamilies, error) {
	var familyCount uint32
	vk.GetPhysicalDeviceQueueFamilyProperties(physicalDevice, &familyCount, nil)
	familyProperties := make([]vk.QueueFamilyProperties, familyCount)
	vk.GetPhysicalDeviceQueueFamilyProperties(physicalDevice, &familyCount, familyProperties)

	const none = ^uint32(0)
	graphics, present := none, none

	for idx, props := range familyProperties {
		props.Deref()
		family := uint32(idx)

		hasGraphics := props.QueueFlags&vk.QueueFlags(vk.QueueGraphicsBit) != 0

		var supported vk.Bool32
		if err := vk.Error(vk.GetPhysicalDeviceSurfaceSupport(physicalDevice, family, surface, &supported)); err != nil {
			return core.QueueFamilies{}, errors.New("vk.GetPhysicalDeviceSurfaceSupport(): " + err.Error())
		}
		canPresent := supported.B()

		if hasGraphics && canPresent {
			return core.QueueFamilies{Graphics: family, Present: family}, nil
		}
		if hasGraphics && graphics == none {
			graphics = family
		}
		if canPresent && present == none {
			present = family
		}
	}

	if graphics == none {
		return core.QueueFamilies{}, errors.New("device: no graphics queue family")
	}
	if present == none {
		return core.QueueFamilies{}, errors.New("device: no queue family can present to the surface")
	}
	return core.QueueFamilies{Graphics: graphics, Present: present}, nil
}

// Logical is a created logical device with its presentation queues.
type Logical struct {
	Device        vk.Device
	GraphicsQueue vk.Queue
	PresentQueue  vk.Queue
}

// distinctFamilies lists each queue family exactly once; device creation
// rejects duplicate family indices.
func distinctFamilies(families core.QueueFamilies) []uint32 {
	distinct := []uint32{families.Graphics}
	if families.Shared() {
		distinct = append(distinct, families.Present)
	}
	return distinct
}

// NewLogical creates a logical device with one queue per distinct family.
func NewLogical(physicalDevice vk.PhysicalDevice, families core.QueueFamilies, extensions []string) (*Logical, error) {
	distinct := distinctFamilies(families)

	queueInfos := make([]vk.DeviceQueueCreateInfo, 0, len(distinct))
	for _, family := range distinct {
		queueInfos = append(queueInfos, vk.DeviceQueueCreateInfo{
			SType:            vk.StructureTypeDeviceQueueCreateInfo,
			QueueFamilyIndex: family,
			QueueCount:       1,
			PQueuePriorities: []float32{1.0},
		})
	}

	extensions = terminated(append([]string{SwapchainExtension}, extensions...))
	deviceInfo := vk.DeviceCreateInfo{
		SType:                   vk.StructureTypeDeviceCreateInfo,
		QueueCreateInfoCount:    uint32(len(queueInfos)),
		PQueueCreateInfos:       queueInfos,
		EnabledExtensionCount:   uint32(len(extensions)),
		PpEnabledExtensionNames: extensions,
	}

	var dev vk.Device
	if err := vk.Error(vk.CreateDevice(physicalDevice, &deviceInfo, nil, &dev)); err != nil {
		return nil, errors.New("vk.CreateDevice(): " + err.Error())
	}

	logical := &Logical{Device: dev}
	vk.GetDeviceQueue(dev, families.Graphics, 0, &logical.GraphicsQueue)
	vk.GetDeviceQueue(dev, families.Present, 0, &logical.PresentQueue)
	return logical, nil
}

// Destroy tears the device down. All work must have drained first.
func (l *Logical) Destroy() {
	if l == nil {
		return
	}
	vk.DestroyDevice(l.Device, nil)
}

// terminated null terminates every string for handoff to C.
func terminated(in []string) []string {
	out := make([]string, len(in))
	for idx, s := range in {
		if strings.HasSuffix(s, "\x00") {
			out[idx] = s
			continue
		}
		out[idx] = s + "\x00"
	}
	return out
}
