// Copyright (c) 2026 glimmer authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package app

import (
	"github.com/glimmergfx/glimmer/core"
)

// Completion carries the result of renderer initialisation back into
// the event loop.
type Completion struct {
	Renderer core.Renderer
	Err      error
}

// Bootstrap decides how renderer initialisation relates to the event
// loop. Window creation is synchronous, device negotiation is not; the
// strategy bridges the two without the loop needing to know which
// variant runs.
type Bootstrap interface {
	// Launch starts initialisation of the renderer. The result is
	// always delivered on done, which must have capacity for it.
	Launch(renderer core.Renderer, done chan<- Completion)
}

// SyncBootstrap drives initialisation to completion on the calling
// goroutine. The completion is already delivered when Launch returns,
// so the loop observes a ready renderer before dispatching any event.
type SyncBootstrap struct{}

// Launch implements interface
func (SyncBootstrap) Launch(renderer core.Renderer, done chan<- Completion) {
	done <- Completion{Renderer: renderer, Err: renderer.Initialise()}
}

// DeferredBootstrap schedules initialisation on its own goroutine and
// injects the completion into the loop once it finishes. The loop stays
// responsive meanwhile; resize and redraw events arriving before the
// completion are dropped, not queued.
type DeferredBootstrap struct{}

// Launch implements interface
func (DeferredBootstrap) Launch(renderer core.Renderer, done chan<- Completion) {
	go func() {
		done <- Completion{Renderer: renderer, Err: renderer.Initialise()}
	}()
}
