// Copyright (c) 2026 glimmer authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package app

import (
	"errors"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
)

func TestSyncBootstrapDeliversBeforeReturning(t *testing.T) {
	c := qt.New(t)

	renderer := &fakeRenderer{}
	done := make(chan Completion, 1)

	SyncBootstrap{}.Launch(renderer, done)

	select {
	case completion := <-done:
		c.Assert(completion.Err, qt.IsNil)
		c.Assert(completion.Renderer, qt.Equals, renderer)
	default:
		c.Fatal("completion not delivered synchronously")
	}
	c.Assert(renderer.inits, qt.Equals, 1)
}

func TestDeferredBootstrapDeliversIntoLoop(t *testing.T) {
	c := qt.New(t)

	renderer := &fakeRenderer{}
	done := make(chan Completion, 1)

	DeferredBootstrap{}.Launch(renderer, done)

	select {
	case completion := <-done:
		c.Assert(completion.Err, qt.IsNil)
		c.Assert(completion.Renderer, qt.Equals, renderer)
	case <-time.After(time.Second):
		c.Fatal("completion never delivered")
	}
	c.Assert(renderer.inits, qt.Equals, 1)
}

func TestBootstrapPropagatesInitialisationError(t *testing.T) {
	c := qt.New(t)

	boom := errors.New("device request rejected")
	renderer := &fakeRenderer{initErr: boom}
	done := make(chan Completion, 1)

	SyncBootstrap{}.Launch(renderer, done)

	completion := <-done
	c.Assert(completion.Err, qt.ErrorIs, boom)
}

func TestNewSelectsStrategyFromConfiguration(t *testing.T) {
	c := qt.New(t)

	a := newTestApp()
	c.Assert(a.bootstrap, qt.Equals, SyncBootstrap{})

	cfg := a.configuration
	cfg.App.Deferred = true
	deferred := New(cfg)
	c.Assert(deferred.bootstrap, qt.Equals, DeferredBootstrap{})
}
