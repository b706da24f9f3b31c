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
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/goleak"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/tochemey/coffeehouse/actor"
	"github.com/tochemey/coffeehouse/log"
	"github.com/tochemey/coffeehouse/testkit"
)

const houseName = "coffee-house"

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type houseFixture struct {
	ctx      context.Context
	kit      *testkit.TestKit
	logs     *observer.ObservedLogs
	reader   *sdkmetric.ManualReader
	provider *sdkmetric.MeterProvider
	house    *actor.PID
}

func newHouseFixture(t *testing.T) *houseFixture {
	ctx := context.Background()
	core, logs := observer.New(zapcore.DebugLevel)
	kit := testkit.New(ctx, t, testkit.WithLogger(log.NewZapWithCore(core)))
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	t.Cleanup(func() {
		kit.Shutdown(ctx)
		assert.NoError(t, provider.Shutdown(ctx))
	})

	return &houseFixture{
		ctx:      ctx,
		kit:      kit,
		logs:     logs,
		reader:   reader,
		provider: provider,
	}
}

// open spawns the house with short durations unless overridden
func (f *houseFixture) open(limit Limit, opts ...Option) {
	opts = append([]Option{
		WithMeterProvider(f.provider),
		WithBaristaPrepareCoffeeDuration(10 * time.Millisecond),
		WithGuestFinishCoffeeDuration(50 * time.Millisecond),
	}, opts...)
	f.house = f.kit.Spawn(f.ctx, houseName, NewCoffeeHouse(limit, opts...))
}

func (f *houseFixture) status(t *testing.T) *Status {
	t.Helper()
	reply, err := actor.Ask(f.ctx, f.house, new(GetStatus), time.Second)
	require.NoError(t, err)
	status, ok := reply.(*Status)
	require.True(t, ok)
	return status
}

func (f *houseFixture) logCount(message string) int {
	return f.logs.FilterMessage(message).Len()
}

func (f *houseFixture) counter(t *testing.T, name string) int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, f.reader.Collect(f.ctx, &rm))

	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			if sum, ok := m.Data.(metricdata.Sum[int64]); ok {
				for _, point := range sum.DataPoints {
					total += point.Value
				}
			}
		}
	}
	return total
}

// forwardingBarista hands every order to the probe, keeping the sender
func forwardingBarista(probe testkit.Probe) func() actor.Actor {
	return func() actor.Actor {
		return actor.NewFuncActor(func(ctx *actor.ReceiveContext) {
			if _, ok := ctx.Message().(*PrepareCoffee); ok {
				ctx.Forward(probe.PID())
			}
		})
	}
}

func TestCoffeeHouse(t *testing.T) {
	t.Run("With open house", func(t *testing.T) {
		f := newHouseFixture(t)
		f.open(10)

		require.Equal(t, 1, f.logCount("CoffeeHouse Open"))
		waiter := f.kit.ExpectActor(f.kit.Path(houseName, waiterName))
		barista := f.kit.ExpectActor(f.kit.Path(houseName, baristaName))
		require.True(t, waiter.Parent().Equals(f.house))
		require.True(t, barista.Parent().Equals(f.house))

		status := f.status(t)
		require.Empty(t, status.Guests)
		require.Zero(t, status.Served)
	})
	t.Run("With guest creation", func(t *testing.T) {
		f := newHouseFixture(t)
		probe := f.kit.NewProbe(f.ctx)
		f.open(Unlimited, WithBarista(forwardingBarista(probe)))

		probe.Send(f.house, &CreateGuest{FavoriteCoffee: Akkaccino, CaffeineLimit: Unlimited})

		guest := f.kit.ExpectActor(f.kit.Path(houseName, "guest-1"))
		require.True(t, guest.Parent().Equals(f.house))

		status := f.status(t)
		require.Contains(t, status.Guests, "guest-1")
		require.EqualValues(t, 1, f.counter(t, "coffeehouse_guest_count"))
	})
	t.Run("With an approved order forwarded to the barista once", func(t *testing.T) {
		f := newHouseFixture(t)
		probe := f.kit.NewProbe(f.ctx)
		f.open(Unlimited, WithBarista(forwardingBarista(probe)))

		probe.Send(f.house, &CreateGuest{FavoriteCoffee: Akkaccino, CaffeineLimit: Unlimited})

		received := probe.ExpectMessageOfType(new(PrepareCoffee))
		order := received.(*PrepareCoffee)
		require.Equal(t, Akkaccino, order.Coffee)
		require.Equal(t, "guest-1", order.Guest.Name())
		require.Equal(t, waiterName, probe.Sender().Name())
		probe.ExpectNoMessage()

		status := f.status(t)
		require.Equal(t, 1, status.Served)
		require.Equal(t, 1, status.Guests["guest-1"])
		require.EqualValues(t, 1, f.counter(t, "coffeehouse_approved_count"))
	})
	t.Run("With a guest above the house limit", func(t *testing.T) {
		f := newHouseFixture(t)
		f.open(1, WithGuestFinishCoffeeDuration(200*time.Millisecond))
		probe := f.kit.NewProbe(f.ctx)

		probe.Send(f.house, &CreateGuest{FavoriteCoffee: Akkaccino, CaffeineLimit: Unlimited})
		guest := f.kit.ExpectActor(f.kit.Path(houseName, "guest-1"))
		probe.Watch(guest)
		probe.ExpectTerminated(guest)

		require.Equal(t, 1, f.logCount("Enjoying my 1 yummy Akkaccino!"))
		require.Equal(t, 1, f.logCount("Sorry, guest-1, but you have reached your limit."))
		require.Eventually(t, func() bool {
			_, seated := f.status(t).Guests["guest-1"]
			return !seated
		}, time.Second, 10*time.Millisecond)
		require.Equal(t, 1, f.logCount("Removed guest guest-1 from bookkeeper"))
		require.EqualValues(t, 1, f.counter(t, "coffeehouse_rejected_count"))
		require.Zero(t, f.counter(t, "coffeehouse_guest_count"))

		// the house does not remove a guest twice
		time.Sleep(100 * time.Millisecond)
		require.Equal(t, 1, f.logCount("Removed guest guest-1 from bookkeeper"))
		require.True(t, f.house.IsRunning())
	})
	t.Run("With a guest above its own caffeine limit", func(t *testing.T) {
		f := newHouseFixture(t)
		f.open(Unlimited)
		probe := f.kit.NewProbe(f.ctx)

		probe.Send(f.house, &CreateGuest{FavoriteCoffee: CaffeJava, CaffeineLimit: 1})
		guest := f.kit.ExpectActor(f.kit.Path(houseName, "guest-1"))
		probe.Watch(guest)
		probe.ExpectTerminated(guest)

		require.Equal(t, 1, f.logCount("Enjoying my 2 yummy CaffeJava!"))
		require.Zero(t, f.logCount("Sorry, guest-1, but you have reached your limit."))
		require.Eventually(t, func() bool {
			return len(f.status(t).Guests) == 0
		}, time.Second, 10*time.Millisecond)
		require.True(t, f.house.IsRunning())
		require.Zero(t, f.house.RestartCount())
	})
	t.Run("With unlimited caffeine", func(t *testing.T) {
		f := newHouseFixture(t)
		f.open(Unlimited, WithGuestFinishCoffeeDuration(10*time.Millisecond))
		probe := f.kit.NewProbe(f.ctx)

		probe.Send(f.house, &CreateGuest{FavoriteCoffee: MochaPlay, CaffeineLimit: Unlimited})

		require.Eventually(t, func() bool {
			return f.status(t).Guests["guest-1"] >= 3
		}, 3*time.Second, 20*time.Millisecond)
		require.GreaterOrEqual(t, f.logCount("Enjoying my 3 yummy MochaPlay!"), 1)
		require.Zero(t, f.logs.FilterMessageSnippet("Sorry").Len())
	})
	t.Run("With a shared limit", func(t *testing.T) {
		f := newHouseFixture(t)
		f.open(2, WithLimitPolicy(SharedLimit))
		probe := f.kit.NewProbe(f.ctx)

		probe.Send(f.house, &CreateGuest{FavoriteCoffee: Akkaccino, CaffeineLimit: Unlimited})
		probe.Send(f.house, &CreateGuest{FavoriteCoffee: CaffeJava, CaffeineLimit: Unlimited})

		require.Eventually(t, func() bool {
			return len(f.status(t).Guests) == 0
		}, 3*time.Second, 20*time.Millisecond)
		require.Equal(t, 2, f.status(t).Served)
		require.Equal(t, 2, f.logs.FilterMessageSnippet("but you have reached your limit.").Len())
	})
	t.Run("With an order from an unknown guest", func(t *testing.T) {
		f := newHouseFixture(t)
		probe := f.kit.NewProbe(f.ctx)
		f.open(Unlimited, WithBarista(forwardingBarista(probe)))

		probe.Send(f.house, &ApproveCoffee{Coffee: Akkaccino, Guest: probe.PID()})
		probe.ExpectNoMessage()
		require.Eventually(t, func() bool {
			return f.logCount("Sorry, but the Akkaccino order comes from somebody who is not our guest.") == 1
		}, time.Second, 10*time.Millisecond)
		require.Zero(t, f.status(t).Served)
		require.EqualValues(t, 1, f.counter(t, "coffeehouse_rejected_count"))
		require.Zero(t, f.counter(t, "coffeehouse_approved_count"))
	})
	t.Run("With a frustrated waiter", func(t *testing.T) {
		frustrated := func(*actor.PID) actor.Actor {
			return actor.NewFuncActor(func(ctx *actor.ReceiveContext) {
				if order, ok := ctx.Message().(*PrepareCoffee); ok {
					ctx.Err(&FrustratedError{Coffee: order.Coffee, Guest: order.Guest})
				}
			})
		}
		f := newHouseFixture(t)
		probe := f.kit.NewProbe(f.ctx)
		f.open(Unlimited, WithBarista(forwardingBarista(probe)), WithWaiter(frustrated))

		probe.Send(f.house, &CreateGuest{FavoriteCoffee: Akkaccino, CaffeineLimit: Unlimited})

		received := probe.ExpectMessageOfType(new(PrepareCoffee))
		order := received.(*PrepareCoffee)
		require.Equal(t, Akkaccino, order.Coffee)
		require.Equal(t, "guest-1", order.Guest.Name())
		require.Equal(t, waiterName, probe.Sender().Name())
		probe.ExpectNoMessage()

		waiter := f.kit.ExpectActor(f.kit.Path(houseName, waiterName))
		require.Eventually(t, func() bool {
			return waiter.RestartCount() == 1
		}, time.Second, 10*time.Millisecond)
		require.EqualValues(t, 1, f.counter(t, "coffeehouse_replay_count"))
		require.True(t, f.house.IsRunning())
	})
	t.Run("With complaints", func(t *testing.T) {
		f := newHouseFixture(t)
		f.open(Unlimited, WithBaristaAccuracy(0), WithWaiterMaxComplaintCount(1))
		probe := f.kit.NewProbe(f.ctx)

		probe.Send(f.house, &CreateGuest{FavoriteCoffee: Akkaccino, CaffeineLimit: Unlimited})

		waiter := f.kit.ExpectActor(f.kit.Path(houseName, waiterName))
		require.Eventually(t, func() bool {
			return waiter.RestartCount() >= 1
		}, 3*time.Second, 10*time.Millisecond)
		require.GreaterOrEqual(t, f.logs.FilterMessageSnippet("Expected a Akkaccino, but got a").Len(), 2)
		require.GreaterOrEqual(t, f.counter(t, "coffeehouse_replay_count"), int64(1))
		require.Zero(t, f.logs.FilterMessageSnippet("yummy").Len())
	})
}
