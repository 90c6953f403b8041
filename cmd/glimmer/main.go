// Copyright (c) 2026 glimmer authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"runtime"

	log "github.com/sirupsen/logrus"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/glimmergfx/glimmer/app"
	"github.com/glimmergfx/glimmer/core"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	cfg, err := core.FromEnv()
	if err != nil {
		log.Fatal(err)
	}

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		log.Fatal("sdl.Init(): " + err.Error())
	}
	defer sdl.Quit()

	if err := sdl.VulkanLoadLibrary(""); err != nil {
		log.Fatal("sdl.VulkanLoadLibrary(): " + err.Error())
	}
	defer sdl.VulkanUnloadLibrary()

	if err := app.New(cfg).Run(); err != nil {
		log.Fatal(err)
	}
}
