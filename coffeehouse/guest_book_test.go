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

package coffeehouse

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tochemey/coffeehouse/actor"
	"github.com/tochemey/coffeehouse/testkit"
)

func TestGuestBook(t *testing.T) {
	ctx := context.Background()
	kit := testkit.New(ctx, t)
	t.Cleanup(func() {
		kit.Shutdown(ctx)
	})

	alice := kit.Spawn(ctx, "alice", actor.NewFuncActor(nil))
	bob := kit.Spawn(ctx, "bob", actor.NewFuncActor(nil))

	t.Run("With bookkeeping", func(t *testing.T) {
		book := newGuestBook()
		require.True(t, book.add(alice))
		require.False(t, book.add(alice))
		require.True(t, book.add(bob))
		require.Equal(t, 2, book.Len())

		book.serve(alice)
		book.serve(alice)
		count, ok := book.get(alice)
		require.True(t, ok)
		require.Equal(t, 2, count)
		require.Equal(t, 2, book.Served())

		require.True(t, book.remove(alice))
		require.False(t, book.remove(alice))
		_, ok = book.get(alice)
		require.False(t, ok)
		require.Equal(t, 1, book.Len())

		// served coffees are not forgotten when a guest leaves
		require.Equal(t, 2, book.Served())
	})
	t.Run("With per guest limit", func(t *testing.T) {
		book := newGuestBook()
		book.add(alice)
		book.add(bob)

		assert.True(t, book.allowed(alice, 1, PerGuestLimit))
		book.serve(alice)
		assert.False(t, book.allowed(alice, 1, PerGuestLimit))
		assert.True(t, book.allowed(bob, 1, PerGuestLimit))
		assert.True(t, book.allowed(alice, Unlimited, PerGuestLimit))
	})
	t.Run("With shared limit", func(t *testing.T) {
		book := newGuestBook()
		book.add(alice)
		book.add(bob)

		assert.True(t, book.allowed(bob, 2, SharedLimit))
		book.serve(alice)
		book.serve(alice)
		assert.False(t, book.allowed(bob, 2, SharedLimit))
	})
	t.Run("With unknown guest", func(t *testing.T) {
		book := newGuestBook()
		assert.False(t, book.allowed(alice, Unlimited, PerGuestLimit))
	})
	t.Run("With snapshot", func(t *testing.T) {
		book := newGuestBook()
		book.add(alice)
		book.add(bob)
		book.serve(bob)

		status := book.snapshot()
		assert.Equal(t, map[string]int{"alice": 0, "bob": 1}, status.Guests)
		assert.Equal(t, 1, status.Served)
	})
}
