// Copyright (c) 2026 glimmer authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core_test

import (
	"testing"

	qt "github.com/frankban/quicktest"
	glm "github.com/go-gl/mathgl/mgl32"
	"github.com/gobuffalo/envy"

	"github.com/glimmergfx/glimmer/core"
)

func TestDefaultConfiguration(t *testing.T) {
	c := qt.New(t)

	cfg := core.DefaultConfiguration()

	c.Assert(cfg.App.Title, qt.Equals, "Glimmer")
	c.Assert(cfg.App.Deferred, qt.IsFalse)
	c.Assert(cfg.Renderer.ScreenWidth, qt.Equals, uint32(400))
	c.Assert(cfg.Renderer.ScreenHeight, qt.Equals, uint32(400))
	c.Assert(cfg.Renderer.SwapchainSize, qt.Equals, uint32(3))
	c.Assert(cfg.Renderer.ClearColor, qt.Equals, glm.Vec4{1, 0, 0, 1})
	c.Assert(cfg.Time.FramesPerSecond, qt.Equals, 60)
}

func TestFromEnvOverrides(t *testing.T) {
	c := qt.New(t)

	envy.Temp(func() {
		envy.Set("GLIMMER_TITLE", "Minecraft Launcher")
		envy.Set("GLIMMER_DEFERRED_BOOTSTRAP", "true")
		envy.Set("GLIMMER_WIDTH", "1280")
		envy.Set("GLIMMER_HEIGHT", "720")
		envy.Set("GLIMMER_SWAPCHAIN_SIZE", "2")
		envy.Set("GLIMMER_FPS", "144")
		envy.Set("GLIMMER_CLEAR_COLOR", "0,0,1,1")

		cfg, err := core.FromEnv()
		c.Assert(err, qt.IsNil)

		c.Assert(cfg.App.Title, qt.Equals, "Minecraft Launcher")
		c.Assert(cfg.App.Deferred, qt.IsTrue)
		c.Assert(cfg.Renderer.ScreenWidth, qt.Equals, uint32(1280))
		c.Assert(cfg.Renderer.ScreenHeight, qt.Equals, uint32(720))
		c.Assert(cfg.Renderer.SwapchainSize, qt.Equals, uint32(2))
		c.Assert(cfg.Time.FramesPerSecond, qt.Equals, 144)
		c.Assert(cfg.Renderer.ClearColor, qt.Equals, glm.Vec4{0, 0, 1, 1})
	})
}

func TestFromEnvKeepsDefaultsWhenUnset(t *testing.T) {
	c := qt.New(t)

	envy.Temp(func() {
		cfg, err := core.FromEnv()
		c.Assert(err, qt.IsNil)
		c.Assert(cfg, qt.DeepEquals, core.DefaultConfiguration())
	})
}

func TestFromEnvRejectsMalformedValues(t *testing.T) {
	c := qt.New(t)

	envy.Temp(func() {
		envy.Set("GLIMMER_WIDTH", "wide")

		_, err := core.FromEnv()
		c.Assert(err, qt.ErrorMatches, "GLIMMER_WIDTH: .*")
	})
}

func TestParseClearColor(t *testing.T) {
	c := qt.New(t)

	color, err := core.ParseClearColor("0.5, 0.25, 1, 0")
	c.Assert(err, qt.IsNil)
	c.Assert(color, qt.Equals, glm.Vec4{0.5, 0.25, 1, 0})

	_, err = core.ParseClearColor("1,0,0")
	c.Assert(err, qt.ErrorMatches, ".*want 4 comma separated components")

	_, err = core.ParseClearColor("1,0,red,1")
	c.Assert(err, qt.IsNotNil)

	_, err = core.ParseClearColor("1,0,0,2")
	c.Assert(err, qt.ErrorMatches, ".*component 3 out of \\[0,1\\]")
}
