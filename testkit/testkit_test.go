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

package testkit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/tochemey/coffeehouse/actor"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type testPing struct{}

type testPong struct {
	Count int
}

// pinger answers every ping with the number of pings received so far
type pinger struct {
	count int
}

func (x *pinger) PreStart(*actor.Context) error { return nil }

func (x *pinger) Receive(ctx *actor.ReceiveContext) {
	switch ctx.Message().(type) {
	case *actor.PostStart:
	case *testPing:
		x.count++
		ctx.Response(&testPong{Count: x.count})
	default:
		ctx.Unhandled()
	}
}

func (x *pinger) PostStop(*actor.Context) error { return nil }

func newTestKit(t *testing.T) (*TestKit, context.Context) {
	ctx := context.Background()
	kit := New(ctx, t)
	t.Cleanup(func() {
		kit.Shutdown(ctx)
	})
	return kit, ctx
}

func TestTestKit(t *testing.T) {
	t.Run("ActorSystem", func(t *testing.T) {
		kit, _ := newTestKit(t)
		require.True(t, kit.ActorSystem().Running())
		require.Equal(t, "testkit/user/a/b", kit.Path("a", "b"))
	})
	t.Run("Spawn", func(t *testing.T) {
		kit, ctx := newTestKit(t)
		pid := kit.Spawn(ctx, "pinger", &pinger{})
		require.Same(t, pid, kit.ExpectActor(kit.Path("pinger")))
	})
	t.Run("SpawnChild", func(t *testing.T) {
		kit, ctx := newTestKit(t)
		kit.Spawn(ctx, "parent", &pinger{})
		child := kit.SpawnChild(ctx, "child", "parent", &pinger{})
		require.Equal(t, "testkit/user/parent/child", child.ID())
		require.Same(t, child, kit.ExpectActor(kit.Path("parent", "child")))
	})
}

func TestProbe(t *testing.T) {
	t.Run("With Send", func(t *testing.T) {
		kit, ctx := newTestKit(t)
		pid := kit.Spawn(ctx, "pinger", &pinger{})

		probe := kit.NewProbe(ctx)
		probe.Send(pid, new(testPing))
		probe.ExpectMessage(&testPong{Count: 1})
		require.Same(t, pid, probe.Sender())

		probe.Send(pid, new(testPing))
		pong := probe.ExpectMessageOfType(new(testPong)).(*testPong)
		require.Equal(t, 2, pong.Count)
		probe.ExpectNoMessageWithin(100 * time.Millisecond)
		probe.Stop()
	})
	t.Run("With SendSync", func(t *testing.T) {
		kit, ctx := newTestKit(t)
		pid := kit.Spawn(ctx, "pinger", &pinger{})

		probe := kit.NewProbe(ctx)
		probe.SendSync(pid, new(testPing), time.Second)
		require.Equal(t, &testPong{Count: 1}, probe.ExpectAnyMessage())
		probe.ExpectNoMessage()
	})
	t.Run("With ExpectTerminated", func(t *testing.T) {
		kit, ctx := newTestKit(t)
		pid := kit.Spawn(ctx, "pinger", &pinger{})

		probe := kit.NewProbe(ctx)
		probe.Watch(pid)
		require.NoError(t, pid.Shutdown(ctx))
		probe.ExpectTerminated(pid)
	})
}
