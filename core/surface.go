// Copyright (c) 2026 glimmer authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	vk "github.com/vulkan-go/vulkan"
)

// undefinedExtent is the Vulkan sentinel for "the window manager lets
// the swapchain decide the surface size".
const undefinedExtent = ^uint32(0)

// SurfaceConfiguration is the negotiated contract between the renderer
// and the presentation surface: pixel format, client size, presentation
// mode and alpha compositing. It is mutated in place on every resize
// and re-applied to the surface.
type SurfaceConfiguration struct {
	Format     vk.Format
	ColorSpace vk.ColorSpace

	Width  uint32
	Height uint32

	PresentMode    vk.PresentMode
	CompositeAlpha vk.CompositeAlphaFlagBits

	// ImageCount bounds the number of queued frames
	ImageCount uint32
}

// SetExtent records a new client size. The applied size always equals
// the last recorded one; callers re-apply the configuration afterwards.
func (c *SurfaceConfiguration) SetExtent(width, height uint32) {
	c.Width = width
	c.Height = height
}

// Extent returns the recorded size as a Vulkan extent.
func (c SurfaceConfiguration) Extent() vk.Extent2D {
	return vk.Extent2D{
		Width:  c.Width,
		Height: c.Height,
	}
}

// ValidateExtent rejects zero-area sizes. Configuring a zero-sized
// surface is an initialisation failure, not a degraded state.
func ValidateExtent(width, height uint32) error {
	if width == 0 || height == 0 {
		return ErrZeroSurfaceExtent
	}
	return nil
}

// ChooseSurfaceFormat selects the first gamma-encoded (sRGB) format the
// surface reports, falling back to the first reported one. Rendering
// into a linear format would get gamma-corrected twice on most
// compositors.
func ChooseSurfaceFormat(formats []vk.SurfaceFormat) (vk.Format, vk.ColorSpace) {
	if len(formats) == 0 {
		return vk.FormatUndefined, vk.ColorSpaceSrgbNonlinear
	}
	for _, format := range formats {
		if IsSrgbFormat(format.Format) && format.ColorSpace == vk.ColorSpaceSrgbNonlinear {
			return format.Format, format.ColorSpace
		}
	}
	return formats[0].Format, formats[0].ColorSpace
}

// IsSrgbFormat reports whether a format stores gamma-encoded values.
func IsSrgbFormat(format vk.Format) bool {
	switch format {
	case vk.FormatB8g8r8a8Srgb,
		vk.FormatR8g8b8a8Srgb,
		vk.FormatA8b8g8r8SrgbPack32,
		vk.FormatB8g8r8Srgb,
		vk.FormatR8g8b8Srgb:
		return true
	}
	return false
}

// canonical composite alpha order, matching how surfaces report support
var compositeAlphaModes = []vk.CompositeAlphaFlagBits{
	vk.CompositeAlphaOpaqueBit,
	vk.CompositeAlphaPreMultipliedBit,
	vk.CompositeAlphaPostMultipliedBit,
	vk.CompositeAlphaInheritBit,
}

// ChooseCompositeAlpha returns the first alpha compositing mode the
// surface supports, in canonical bit order.
func ChooseCompositeAlpha(supported vk.CompositeAlphaFlags) vk.CompositeAlphaFlagBits {
	for _, mode := range compositeAlphaModes {
		if supported&vk.CompositeAlphaFlags(mode) != 0 {
			return mode
		}
	}
	return vk.CompositeAlphaOpaqueBit
}

// ClampImageCount bounds a desired swapchain length by the surface
// capabilities. A max of zero means unbounded.
func ClampImageCount(desired, min, max uint32) uint32 {
	if desired < min {
		desired = min
	}
	if max > 0 && desired > max {
		desired = max
	}
	return desired
}
