// Copyright (c) 2026 glimmer authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import "errors"

var (
	// ErrDeviceCreation means the selected physical device rejected
	// the logical device request.
	ErrDeviceCreation = errors.New("core: logical device creation was rejected")

	// ErrZeroSurfaceExtent means the window system reported a zero-area
	// client size while the surface was being configured. A resize event
	// is expected shortly after window creation, but initialisation has
	// already failed at that point.
	ErrZeroSurfaceExtent = errors.New("core: surface extent must not be zero during initialisation")

	// ErrFrameAcquisition means no presentable image could be acquired,
	// even after reconfiguring the surface once.
	ErrFrameAcquisition = errors.New("core: could not acquire a presentable image")
)
