// Copyright (c) 2026 glimmer authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package app owns the window and the event loop. It mediates between
// the synchronous window bootstrap and the asynchronous renderer
// bootstrap, and forwards window events to the renderer once it exists.
package app

import (
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/glimmergfx/glimmer/core"
)

// State tracks how far the application bootstrap has progressed.
// Transitions run strictly forward; events that need a renderer are
// dropped in every state before StateRendererReady.
type State uint8

const (
	// StateNoWindow is the initial state, before Run creates the window
	StateNoWindow State = iota

	// StateWindowCreated means the window and surface exist
	StateWindowCreated

	// StateRendererPending means renderer initialisation is in flight
	StateRendererPending

	// StateRendererReady means window events reach the renderer
	StateRendererReady
)

func (s State) String() string {
	switch s {
	case StateNoWindow:
		return "no-window"
	case StateWindowCreated:
		return "window-created"
	case StateRendererPending:
		return "renderer-pending"
	case StateRendererReady:
		return "renderer-ready"
	}
	return "unknown"
}

// New creates an App around the given configuration. Nothing touches
// the window system until Run.
func New(cfg core.Configuration) *App {
	var bootstrap Bootstrap = SyncBootstrap{}
	if cfg.App.Deferred {
		bootstrap = DeferredBootstrap{}
	}
	return &App{
		configuration: cfg,
		bootstrap:     bootstrap,
		done:          make(chan Completion, 1),
	}
}

// App drives the platform event loop and owns the window for its whole
// lifetime. The renderer shares the window's surface, so the window is
// destroyed only after the renderer is.
type App struct {
	configuration core.Configuration
	bootstrap     Bootstrap

	window   *sdl.Window
	instance core.Instance
	renderer core.Renderer

	state            State
	pendingBootstrap bool
	done             chan Completion
}

// State returns the current bootstrap state.
func (a *App) State() State {
	return a.state
}

// Run creates the window, launches renderer initialisation through the
// configured bootstrap strategy and dispatches events until the window
// is closed or an unrecoverable error occurs. It must be called on the
// locked main OS thread.
func (a *App) Run() error {
	if err := a.createWindow(); err != nil {
		return err
	}
	defer a.window.Destroy()
	defer a.instance.Destroy()

	for _, info := range a.instance.PhysicalDevicesInfo() {
		log.WithFields(log.Fields{
			"name":   info.Name,
			"vendor": info.VendorID,
			"driver": info.DriverVersion,
			"memory": info.Memory,
		}).Debug("physical device")
	}

	renderer, err := core.NewVulkanRenderer(a.instance, a.configuration.Renderer)
	if err != nil {
		return err
	}

	a.state = StateRendererPending
	a.pendingBootstrap = true
	a.bootstrap.Launch(renderer, a.done)
	defer func() {
		if a.renderer != nil {
			a.renderer.Destroy()
		}
	}()
	defer a.drainBootstrap()

	// A synchronous strategy has delivered by now; install before the
	// first dispatch so the loop starts out ready.
	select {
	case completion := <-a.done:
		if err := a.installRenderer(completion); err != nil {
			return err
		}
	default:
		log.Info("renderer initialising in the background")
	}

	timeService := core.NewTime(a.configuration.Time)
	defer timeService.Stop()

	for {
		select {
		case completion := <-a.done:
			if err := a.installRenderer(completion); err != nil {
				return err
			}
		case <-timeService.EventTicker().C:
			quit, err := a.pollEvents()
			if err != nil {
				return err
			}
			if quit {
				log.Info("event loop exited")
				return nil
			}
		case <-timeService.FpsTicker().C:
			if err := a.redraw(); err != nil {
				return err
			}
		}
	}
}

// createWindow moves the app out of StateNoWindow: it creates the SDL
// window, the Vulkan instance with the extensions the window demands,
// and the presentation surface binding the two.
func (a *App) createWindow() error {
	window, err := sdl.CreateWindow(a.configuration.App.Title,
		sdl.WINDOWPOS_UNDEFINED,
		sdl.WINDOWPOS_UNDEFINED,
		int32(a.configuration.Renderer.ScreenWidth),
		int32(a.configuration.Renderer.ScreenHeight),
		sdl.WINDOW_VULKAN|sdl.WINDOW_RESIZABLE)
	if err != nil {
		return errors.New("sdl.CreateWindow(): " + err.Error())
	}
	a.window = window

	instance, err := core.NewVulkanInstance(
		core.DefaultApplicationInfo,
		sdl.VulkanGetVkGetInstanceProcAddr(),
		core.InstanceConfiguration{
			DebugMode:  a.configuration.App.Debug,
			Extensions: window.VulkanGetInstanceExtensions(),
			Layers:     []string{},
		})
	if err != nil {
		window.Destroy()
		return err
	}
	a.instance = instance

	surface, err := window.VulkanCreateSurface(instance.Inner())
	if err != nil {
		instance.Destroy()
		window.Destroy()
		return errors.New("window.VulkanCreateSurface(): " + err.Error())
	}
	instance.SetSurface(surface)

	a.state = StateWindowCreated
	return nil
}

// installRenderer moves the app from StateRendererPending to
// StateRendererReady and schedules the first visible frame. A failed
// initialisation is unrecoverable.
func (a *App) installRenderer(completion Completion) error {
	a.pendingBootstrap = false
	if completion.Err != nil {
		return fmt.Errorf("renderer initialisation: %w", completion.Err)
	}
	a.renderer = completion.Renderer
	a.state = StateRendererReady

	cfg := completion.Renderer.Configuration()
	log.WithFields(log.Fields{
		"width":  cfg.Width,
		"height": cfg.Height,
		"format": cfg.Format,
		"images": cfg.ImageCount,
	}).Info("renderer ready")

	return a.redraw()
}

// drainBootstrap waits out an in-flight initialisation before the
// surface and instance it runs against are torn down. There is no
// cancellation; the completion always arrives. A renderer delivered
// after the loop has decided to exit is destroyed right away.
func (a *App) drainBootstrap() {
	if !a.pendingBootstrap {
		return
	}
	log.Info("waiting for in-flight renderer initialisation before teardown")
	completion := <-a.done
	a.pendingBootstrap = false
	if completion.Err != nil {
		log.WithError(completion.Err).Warn("discarded renderer initialisation failure during teardown")
		return
	}
	completion.Renderer.Destroy()
}

func (a *App) pollEvents() (bool, error) {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch et := event.(type) {
		case *sdl.QuitEvent:
			return true, nil
		case *sdl.KeyboardEvent:
			if et.Keysym.Sym == sdl.K_ESCAPE {
				return true, nil
			}
		case *sdl.WindowEvent:
			switch et.Event {
			case sdl.WINDOWEVENT_SIZE_CHANGED:
				if err := a.resize(uint32(et.Data1), uint32(et.Data2)); err != nil {
					return false, err
				}
			case sdl.WINDOWEVENT_EXPOSED:
				if err := a.redraw(); err != nil {
					return false, err
				}
			}
		}
	}
	return false, nil
}

// resize forwards a new client size to the renderer. Before the
// renderer is ready the event is dropped, not queued.
func (a *App) resize(width, height uint32) error {
	if a.state != StateRendererReady {
		log.WithFields(log.Fields{
			"width":  width,
			"height": height,
			"state":  a.state.String(),
		}).Debug("resize dropped")
		return nil
	}
	return a.renderer.Resize(width, height)
}

// redraw renders one frame. Before the renderer is ready the request
// is dropped; the first frame after readiness is the first visible one.
func (a *App) redraw() error {
	if a.state != StateRendererReady {
		return nil
	}
	return a.renderer.Draw()
}
