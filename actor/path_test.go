// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package actor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gerrors "github.com/tochemey/coffeehouse/errors"
)

func TestPath(t *testing.T) {
	root := newRootPath("house")
	require.Equal(t, "house/user", root.String())
	require.Equal(t, "user", root.Name())
	require.Nil(t, root.Parent())

	waiter := root.child("waiter")
	require.Equal(t, "house/user/waiter", waiter.String())
	require.Equal(t, "house", waiter.System())
	require.True(t, waiter.Parent().Equals(root))
	require.True(t, waiter.Equals(root.child("waiter")))
	require.False(t, waiter.Equals(root.child("barista")))
}

func TestValidateName(t *testing.T) {
	for _, name := range []string{"barista", "guest-1", "Guest_2", "waiter.v2", "7"} {
		assert.NoError(t, validateName(name), name)
	}
	for _, name := range []string{"", "-guest", "_guest", "guest 1", "guest/1"} {
		assert.ErrorIs(t, validateName(name), gerrors.ErrInvalidActorName, name)
	}
}

func TestPIDMap(t *testing.T) {
	system := &actorSystem{name: "house"}
	m := newPIDMap()
	first := &PID{path: newRootPath("house").child("guest"), system: system}
	second := &PID{path: newRootPath("house").child("guest"), system: system}

	m.set(first)
	found, ok := m.get("house/user/guest")
	require.True(t, ok)
	require.Same(t, first, found)
	require.Equal(t, 1, m.len())

	// another reference for the same path is not removed
	m.delete(second)
	require.Equal(t, 1, m.len())

	m.delete(first)
	_, ok = m.get("house/user/guest")
	require.False(t, ok)
	require.Empty(t, m.pids())
}
