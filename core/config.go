// Copyright (c) 2026 glimmer authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"fmt"
	"strconv"
	"strings"

	glm "github.com/go-gl/mathgl/mgl32"
	"github.com/gobuffalo/envy"
)

// Configuration defines a global application configuration setting
type Configuration struct {
	App      AppConfiguration
	Time     TimeConfiguration
	Renderer RendererConfiguration
}

// AppConfiguration is used to configure the window and event loop
type AppConfiguration struct {
	// Title is the fixed window title
	Title string

	// Deferred runs renderer initialisation concurrently with the
	// event loop instead of awaiting it before the loop starts
	Deferred bool

	// Debug loads Vulkan validation layers
	Debug bool
}

// TimeConfiguration is used to configure time services
type TimeConfiguration struct {
	// FramesPerSecond caps frames per second that is put out
	// To unlimit, set to 0
	FramesPerSecond int

	// EventPollDelay is the window event poll interval in milliseconds
	EventPollDelay int
}

// RendererConfiguration is used to configure the renderer
type RendererConfiguration struct {
	// SwapchainSize bounds the number of in-flight frames
	SwapchainSize uint32

	// ScreenWidth and ScreenHeight is the initial window client size.
	// The applied surface size always comes from the window system;
	// these only seed window creation.
	ScreenWidth  uint32
	ScreenHeight uint32

	// ClearColor is the color every frame is cleared to
	ClearColor glm.Vec4
}

// DefaultConfiguration returns the stock setup: a 400x400 window,
// vsync-bounded triple buffering and a red clear.
func DefaultConfiguration() Configuration {
	return Configuration{
		App: AppConfiguration{
			Title: "Glimmer",
		},
		Time: TimeConfiguration{
			FramesPerSecond: 60,
			EventPollDelay:  5,
		},
		Renderer: RendererConfiguration{
			SwapchainSize: 3,
			ScreenWidth:   400,
			ScreenHeight:  400,
			ClearColor:    glm.Vec4{1, 0, 0, 1},
		},
	}
}

// FromEnv builds a Configuration from defaults with optional GLIMMER_*
// environment overrides. Unset keys keep their defaults, so a bare
// process runs without any setup.
func FromEnv() (Configuration, error) {
	cfg := DefaultConfiguration()

	cfg.App.Title = envy.Get("GLIMMER_TITLE", cfg.App.Title)

	if err := envBool("GLIMMER_DEFERRED_BOOTSTRAP", &cfg.App.Deferred); err != nil {
		return cfg, err
	}
	if err := envBool("GLIMMER_VULKAN_DEBUG", &cfg.App.Debug); err != nil {
		return cfg, err
	}
	if err := envUint32("GLIMMER_WIDTH", &cfg.Renderer.ScreenWidth); err != nil {
		return cfg, err
	}
	if err := envUint32("GLIMMER_HEIGHT", &cfg.Renderer.ScreenHeight); err != nil {
		return cfg, err
	}
	if err := envUint32("GLIMMER_SWAPCHAIN_SIZE", &cfg.Renderer.SwapchainSize); err != nil {
		return cfg, err
	}
	if err := envInt("GLIMMER_FPS", &cfg.Time.FramesPerSecond); err != nil {
		return cfg, err
	}

	if raw := envy.Get("GLIMMER_CLEAR_COLOR", ""); raw != "" {
		color, err := ParseClearColor(raw)
		if err != nil {
			return cfg, err
		}
		cfg.Renderer.ClearColor = color
	}

	return cfg, nil
}

// ParseClearColor parses a "r,g,b,a" list of floats in [0,1].
func ParseClearColor(raw string) (glm.Vec4, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != 4 {
		return glm.Vec4{}, fmt.Errorf("clear color %q: want 4 comma separated components", raw)
	}

	var color glm.Vec4
	for i, part := range parts {
		component, err := strconv.ParseFloat(strings.TrimSpace(part), 32)
		if err != nil {
			return glm.Vec4{}, fmt.Errorf("clear color %q: %s", raw, err.Error())
		}
		if component < 0 || component > 1 {
			return glm.Vec4{}, fmt.Errorf("clear color %q: component %d out of [0,1]", raw, i)
		}
		color[i] = float32(component)
	}
	return color, nil
}

func envBool(key string, out *bool) error {
	raw := envy.Get(key, "")
	if raw == "" {
		return nil
	}
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		return fmt.Errorf("%s: %s", key, err.Error())
	}
	*out = parsed
	return nil
}

func envInt(key string, out *int) error {
	raw := envy.Get(key, "")
	if raw == "" {
		return nil
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("%s: %s", key, err.Error())
	}
	*out = parsed
	return nil
}

func envUint32(key string, out *uint32) error {
	raw := envy.Get(key, "")
	if raw == "" {
		return nil
	}
	parsed, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return fmt.Errorf("%s: %s", key, err.Error())
	}
	*out = uint32(parsed)
	return nil
}

// InstanceConfiguration is used to create an Instance. Extensions come
// from the window system at runtime, the rest from AppConfiguration.
type InstanceConfiguration struct {
	DebugMode bool

	Extensions []string
	Layers     []string
}
