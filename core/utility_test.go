// Copyright (c) 2026 glimmer authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestSafeString(t *testing.T) {
	c := qt.New(t)

	c.Assert(safeString("VK_KHR_surface"), qt.Equals, "VK_KHR_surface\x00")
	c.Assert(safeString(""), qt.Equals, "\x00")
}

func TestSafeStrings(t *testing.T) {
	c := qt.New(t)

	c.Assert(safeStrings([]string{"a", "b"}), qt.DeepEquals, []string{"a\x00", "b\x00"})
	c.Assert(safeStrings(nil), qt.DeepEquals, []string{})
}
