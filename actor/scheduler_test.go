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
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	gerrors "github.com/tochemey/coffeehouse/errors"
	"github.com/tochemey/coffeehouse/log"
)

func TestScheduler(t *testing.T) {
	t.Run("With ScheduleOnce", func(t *testing.T) {
		ctx := context.Background()
		system := newTestSystem(t)
		messages := make(chan any, 16)

		pid, err := system.Spawn(ctx, "collector", newCollector(messages))
		require.NoError(t, err)

		start := time.Now()
		require.NoError(t, system.ScheduleOnce(ctx, new(ping), pid, 100*time.Millisecond))
		require.IsType(t, new(ping), expectMessage(t, messages))
		require.GreaterOrEqual(t, time.Since(start), 100*time.Millisecond)
	})
	t.Run("With sender", func(t *testing.T) {
		ctx := context.Background()
		system := newTestSystem(t)
		messages := make(chan any, 16)

		collector, err := system.Spawn(ctx, "collector", newCollector(messages))
		require.NoError(t, err)
		echo, err := system.Spawn(ctx, "echo", NewFuncActor(func(ctx *ReceiveContext) {
			ctx.Response(ctx.Message())
		}))
		require.NoError(t, err)

		require.NoError(t, system.ScheduleOnce(ctx, new(ping), echo, 10*time.Millisecond, WithSender(collector)))
		require.IsType(t, new(ping), expectMessage(t, messages))
	})
	t.Run("With CancelSchedule", func(t *testing.T) {
		ctx := context.Background()
		system := newTestSystem(t)
		messages := make(chan any, 16)

		pid, err := system.Spawn(ctx, "collector", newCollector(messages))
		require.NoError(t, err)

		require.NoError(t, system.ScheduleOnce(ctx, new(ping), pid, 200*time.Millisecond, WithReference("reference")))
		require.NoError(t, system.CancelSchedule("reference"))
		expectNoMessage(t, messages, 400*time.Millisecond)

		require.ErrorIs(t, system.CancelSchedule("reference"), gerrors.ErrScheduledReferenceNotFound)
		require.ErrorIs(t, system.CancelSchedule("unknown"), gerrors.ErrScheduledReferenceNotFound)
	})
	t.Run("With fired reference", func(t *testing.T) {
		ctx := context.Background()
		system := newTestSystem(t)
		messages := make(chan any, 16)

		pid, err := system.Spawn(ctx, "collector", newCollector(messages))
		require.NoError(t, err)

		require.NoError(t, system.ScheduleOnce(ctx, new(ping), pid, 10*time.Millisecond, WithReference("reference")))
		expectMessage(t, messages)
		require.ErrorIs(t, system.CancelSchedule("reference"), gerrors.ErrScheduledReferenceNotFound)
	})
	t.Run("With stopped receiver", func(t *testing.T) {
		ctx := context.Background()
		system := newTestSystem(t)
		recorder := newEventRecorder(t, system)

		pid, err := system.Spawn(ctx, "counter", newCounter())
		require.NoError(t, err)
		require.NoError(t, system.ScheduleOnce(ctx, new(ping), pid, 100*time.Millisecond))
		require.NoError(t, pid.Shutdown(ctx))

		require.Eventually(t, func() bool {
			return len(eventsOf[*Deadletter](recorder)) == 1
		}, receiveTimeout, 20*time.Millisecond)
		require.True(t, system.Running())
	})
	t.Run("With schedule to self", func(t *testing.T) {
		ctx := context.Background()
		system := newTestSystem(t)
		messages := make(chan any, 16)

		pid, err := system.Spawn(ctx, "timer", NewFuncActor(func(ctx *ReceiveContext) {
			switch ctx.Message().(type) {
			case *ping:
				if err := ctx.ScheduleOnce(new(count), 20*time.Millisecond); err != nil {
					ctx.Err(err)
				}
			case *count:
				messages <- ctx.Message()
			}
		}))
		require.NoError(t, err)
		require.NoError(t, Tell(ctx, pid, new(ping)))
		require.IsType(t, new(count), expectMessage(t, messages))
	})
	t.Run("With scheduler not started", func(t *testing.T) {
		scheduler := newScheduler(log.DiscardLogger, time.Second)
		require.ErrorIs(t, scheduler.ScheduleOnce(new(ping), nil, time.Second), gerrors.ErrSchedulerNotStarted)
		require.ErrorIs(t, scheduler.Cancel("reference"), gerrors.ErrSchedulerNotStarted)
	})
	t.Run("With undefined receiver", func(t *testing.T) {
		system := newTestSystem(t)
		err := system.ScheduleOnce(context.Background(), new(ping), nil, time.Second)
		require.ErrorIs(t, err, gerrors.ErrUndefinedActor)
	})
	t.Run("With stopped scheduler", func(t *testing.T) {
		ctx := context.Background()
		scheduler := newScheduler(log.DiscardLogger, time.Second)
		scheduler.Start(ctx)
		scheduler.Stop(ctx)
		require.Zero(t, scheduler.Pending())
		require.ErrorIs(t, scheduler.ScheduleOnce(new(ping), nil, time.Second), gerrors.ErrSchedulerNotStarted)
	})
}
