// Copyright (c) 2026 glimmer authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package core owns the GPU side of glimmer: the Vulkan instance, the
// renderer that binds a logical device to a window surface, and the
// surface configuration that is kept in sync with the window size.
package core

import (
	"unsafe"

	vk "github.com/vulkan-go/vulkan"

	"github.com/glimmergfx/glimmer/device"
)

// Instance describes a Vulkan instance and supporting methods.
// Once created it is ready to use.
type Instance interface {
	// PhysicalDevicesInfo returns a struct for each physical device
	// along with info about those devices
	PhysicalDevicesInfo() []device.Info

	// AvailableDevices returns handles of physical devices
	// from the Vulkan API
	AvailableDevices() []vk.PhysicalDevice

	// SetSurface sets the window surface for rendering
	SetSurface(unsafe.Pointer)

	// Surface returns the window surface, if it's not set
	// it should return a valid but empty surface
	Surface() vk.Surface

	// Extensions returns enabled instance extensions
	Extensions() []string

	// Inner returns the inner handle of the underlying API
	Inner() interface{}

	// Destroy destroys internal members
	Destroy()
}

// Renderer owns the logical device, the queue and the configured
// presentation surface. It is created with internal values set only;
// Initialise must run before anything else and is the single blocking
// step of the whole bootstrap.
type Renderer interface {
	// Initialise selects a surface-compatible device, creates the
	// logical device and queue, negotiates the surface configuration
	// and applies it. Any error is unrecoverable.
	Initialise() error

	// Resize updates the surface configuration with a new client size
	// and re-applies it. Safe to call repeatedly with the same size.
	Resize(width, height uint32) error

	// Draw acquires the next presentable image, submits the clear pass
	// and presents. Submission is fire-and-forget for the caller.
	Draw() error

	// Configuration returns the currently applied surface configuration.
	Configuration() SurfaceConfiguration

	// Destroy destroys internal members
	Destroy()
}
