// Copyright (c) 2026 glimmer authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package device holds physical device introspection and selection.
package device

import (
	"errors"

	vk "github.com/vulkan-go/vulkan"
)

// ErrNoSuitableDevice means no enumerated physical device exposes a
// queue family that can both render and present to the given surface.
var ErrNoSuitableDevice = errors.New("device: no physical device is compatible with the presentation surface")

// Info describes available physical properties of a rendering device
type Info struct {
	ID            int
	VendorID      int
	DriverVersion int
	Name          string
	Invalid       bool
	Extensions    []string
	Layers        []string
	Memory        uint
}

// Enumerate collects Info for every given physical device. Devices that
// fail a property query are marked Invalid instead of aborting the scan.
func Enumerate(devices []vk.PhysicalDevice) []Info {
	infos := make([]Info, len(devices))
	for i := 0; i < len(devices); i++ {
		var numDeviceExtensions uint32
		if err := vk.Error(vk.EnumerateDeviceExtensionProperties(devices[i], "", &numDeviceExtensions, nil)); err != nil {
			infos[i].Invalid = true
		}
		deviceExt := make([]vk.ExtensionProperties, numDeviceExtensions)
		if err := vk.Error(vk.EnumerateDeviceExtensionProperties(devices[i], "", &numDeviceExtensions, deviceExt)); err != nil {
			infos[i].Invalid = true
		}
		for _, ext := range deviceExt {
			ext.Deref()
			infos[i].Extensions = append(infos[i].Extensions, vk.ToString(ext.ExtensionName[:]))
		}

		var numDeviceLayers uint32
		if err := vk.Error(vk.EnumerateDeviceLayerProperties(devices[i], &numDeviceLayers, nil)); err != nil {
			infos[i].Invalid = true
		}
		deviceLayers := make([]vk.LayerProperties, numDeviceLayers)
		if err := vk.Error(vk.EnumerateDeviceLayerProperties(devices[i], &numDeviceLayers, deviceLayers)); err != nil {
			infos[i].Invalid = true
		}
		for _, layer := range deviceLayers {
			layer.Deref()
			infos[i].Layers = append(infos[i].Layers, vk.ToString(layer.LayerName[:]))
		}

		var memoryProperties vk.PhysicalDeviceMemoryProperties
		vk.GetPhysicalDeviceMemoryProperties(devices[i], &memoryProperties)
		memoryProperties.Deref()
		for iMem := (uint32)(0); iMem < memoryProperties.MemoryHeapCount; iMem++ {
			memoryProperties.MemoryHeaps[iMem].Deref()
			infos[i].Memory = infos[i].Memory + uint(memoryProperties.MemoryHeaps[iMem].Size)
		}

		var physicalDeviceProperties vk.PhysicalDeviceProperties
		vk.GetPhysicalDeviceProperties(devices[i], &physicalDeviceProperties)
		physicalDeviceProperties.Deref()
		infos[i].ID = (int)(physicalDeviceProperties.DeviceID)
		infos[i].VendorID = (int)(physicalDeviceProperties.VendorID)
		infos[i].Name = vk.ToString(physicalDeviceProperties.DeviceName[:])
		infos[i].DriverVersion = (int)(physicalDeviceProperties.DriverVersion)
	}
	return infos
}

// Select picks the first physical device with a queue family that has
// graphics capability and present support for the surface, and returns
// it together with that family's index. The handle is only used to
// negotiate a logical device, it is not retained here.
func Select(devices []vk.PhysicalDevice, surface vk.Surface) (vk.PhysicalDevice, uint32, error) {
	for _, candidate := range devices {
		var queueFamilyCount uint32
		vk.GetPhysicalDeviceQueueFamilyProperties(candidate, &queueFamilyCount, nil)
		queueFamilies := make([]vk.QueueFamilyProperties, queueFamilyCount)
		vk.GetPhysicalDeviceQueueFamilyProperties(candidate, &queueFamilyCount, queueFamilies)

		for i := uint32(0); i < queueFamilyCount; i++ {
			queueFamilies[i].Deref()
			if queueFamilies[i].QueueFlags&vk.QueueFlags(vk.QueueGraphicsBit) == 0 {
				continue
			}

			var supportsPresent vk.Bool32
			vk.GetPhysicalDeviceSurfaceSupport(candidate, i, surface, &supportsPresent)
			if supportsPresent == vk.True {
				return candidate, i, nil
			}
		}
	}
	return nil, 0, ErrNoSuitableDevice
}
