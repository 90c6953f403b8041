// Copyright (c) 2026 glimmer authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core_test

import (
	"testing"

	qt "github.com/frankban/quicktest"
	vk "github.com/vulkan-go/vulkan"

	"github.com/glimmergfx/glimmer/core"
)

func TestChooseSurfaceFormatPrefersSrgb(t *testing.T) {
	c := qt.New(t)

	format, colorSpace := core.ChooseSurfaceFormat([]vk.SurfaceFormat{
		{Format: vk.FormatB8g8r8a8Unorm, ColorSpace: vk.ColorSpaceSrgbNonlinear},
		{Format: vk.FormatB8g8r8a8Srgb, ColorSpace: vk.ColorSpaceSrgbNonlinear},
		{Format: vk.FormatR8g8b8a8Srgb, ColorSpace: vk.ColorSpaceSrgbNonlinear},
	})

	c.Assert(format, qt.Equals, vk.FormatB8g8r8a8Srgb)
	c.Assert(colorSpace, qt.Equals, vk.ColorSpaceSrgbNonlinear)
}

func TestChooseSurfaceFormatFallsBackToFirst(t *testing.T) {
	c := qt.New(t)

	format, colorSpace := core.ChooseSurfaceFormat([]vk.SurfaceFormat{
		{Format: vk.FormatB8g8r8a8Unorm, ColorSpace: vk.ColorSpaceSrgbNonlinear},
		{Format: vk.FormatR8g8b8a8Unorm, ColorSpace: vk.ColorSpaceSrgbNonlinear},
	})

	c.Assert(format, qt.Equals, vk.FormatB8g8r8a8Unorm)
	c.Assert(colorSpace, qt.Equals, vk.ColorSpaceSrgbNonlinear)
}

func TestChooseSurfaceFormatEmpty(t *testing.T) {
	c := qt.New(t)

	format, _ := core.ChooseSurfaceFormat(nil)
	c.Assert(format, qt.Equals, vk.FormatUndefined)
}

func TestIsSrgbFormat(t *testing.T) {
	c := qt.New(t)

	c.Assert(core.IsSrgbFormat(vk.FormatB8g8r8a8Srgb), qt.IsTrue)
	c.Assert(core.IsSrgbFormat(vk.FormatR8g8b8a8Srgb), qt.IsTrue)
	c.Assert(core.IsSrgbFormat(vk.FormatB8g8r8a8Unorm), qt.IsFalse)
	c.Assert(core.IsSrgbFormat(vk.FormatUndefined), qt.IsFalse)
}

func TestValidateExtent(t *testing.T) {
	c := qt.New(t)

	c.Assert(core.ValidateExtent(400, 400), qt.IsNil)
	c.Assert(core.ValidateExtent(0, 400), qt.ErrorIs, core.ErrZeroSurfaceExtent)
	c.Assert(core.ValidateExtent(400, 0), qt.ErrorIs, core.ErrZeroSurfaceExtent)
	c.Assert(core.ValidateExtent(0, 0), qt.ErrorIs, core.ErrZeroSurfaceExtent)
}

func TestSetExtentLastWins(t *testing.T) {
	c := qt.New(t)

	var cfg core.SurfaceConfiguration
	cfg.SetExtent(800, 600)
	cfg.SetExtent(1024, 768)
	cfg.SetExtent(640, 480)

	c.Assert(cfg.Extent(), qt.Equals, vk.Extent2D{Width: 640, Height: 480})

	cfg.SetExtent(640, 480)
	c.Assert(cfg.Extent(), qt.Equals, vk.Extent2D{Width: 640, Height: 480})
}

func TestChooseCompositeAlpha(t *testing.T) {
	c := qt.New(t)

	opaque := vk.CompositeAlphaFlags(vk.CompositeAlphaOpaqueBit)
	inherit := vk.CompositeAlphaFlags(vk.CompositeAlphaInheritBit)
	post := vk.CompositeAlphaFlags(vk.CompositeAlphaPostMultipliedBit)

	c.Assert(core.ChooseCompositeAlpha(opaque|inherit), qt.Equals, vk.CompositeAlphaOpaqueBit)
	c.Assert(core.ChooseCompositeAlpha(post|inherit), qt.Equals, vk.CompositeAlphaPostMultipliedBit)
	c.Assert(core.ChooseCompositeAlpha(inherit), qt.Equals, vk.CompositeAlphaInheritBit)
	c.Assert(core.ChooseCompositeAlpha(0), qt.Equals, vk.CompositeAlphaOpaqueBit)
}

func TestClampImageCount(t *testing.T) {
	c := qt.New(t)

	c.Assert(core.ClampImageCount(3, 2, 8), qt.Equals, uint32(3))
	c.Assert(core.ClampImageCount(1, 2, 8), qt.Equals, uint32(2))
	c.Assert(core.ClampImageCount(16, 2, 8), qt.Equals, uint32(8))

	// max of zero means the surface imposes no upper bound
	c.Assert(core.ClampImageCount(16, 2, 0), qt.Equals, uint32(16))
}
