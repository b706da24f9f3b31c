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

	"github.com/stretchr/testify/require"

	"github.com/tochemey/coffeehouse/actor"
	"github.com/tochemey/coffeehouse/supervisor"
	"github.com/tochemey/coffeehouse/testkit"
)

func newKit(t *testing.T) (*testkit.TestKit, context.Context) {
	ctx := context.Background()
	kit := testkit.New(ctx, t)
	t.Cleanup(func() {
		kit.Shutdown(ctx)
	})
	return kit, ctx
}

func TestBarista(t *testing.T) {
	t.Run("With accurate barista", func(t *testing.T) {
		kit, ctx := newKit(t)
		probe := kit.NewProbe(ctx)
		barista := kit.Spawn(ctx, "barista", NewBarista(10*time.Millisecond, 100))

		probe.Send(barista, &PrepareCoffee{Coffee: Akkaccino, Guest: probe.PID()})
		probe.ExpectMessage(&CoffeePrepared{Coffee: Akkaccino, Guest: probe.PID()})
		require.True(t, probe.Sender().Equals(barista))

		probe.SendSync(barista, &PrepareCoffee{Coffee: MochaPlay}, time.Second)
		probe.ExpectMessage(&CoffeePrepared{Coffee: MochaPlay})
	})
	t.Run("With clumsy barista", func(t *testing.T) {
		kit, ctx := newKit(t)
		probe := kit.NewProbe(ctx)
		barista := kit.Spawn(ctx, "barista", NewBarista(0, 0))

		probe.Send(barista, &PrepareCoffee{Coffee: CaffeJava})
		received := probe.ExpectMessageOfType(new(CoffeePrepared))
		require.NotEqual(t, CaffeJava, received.(*CoffeePrepared).Coffee)
	})
	t.Run("With unhandled message", func(t *testing.T) {
		kit, ctx := newKit(t)
		probe := kit.NewProbe(ctx)
		barista := kit.Spawn(ctx, "barista", NewBarista(0, 100),
			actor.WithSupervisor(supervisor.NewSupervisor(supervisor.WithAnyErrorDirective(supervisor.StopDirective))))
		probe.Watch(barista)

		probe.Send(barista, new(GetStatus))
		probe.ExpectTerminated(barista)
	})
}

func TestWaiter(t *testing.T) {
	t.Run("With orders relayed to the barista", func(t *testing.T) {
		kit, ctx := newKit(t)
		barista := kit.NewProbe(ctx)
		guest := kit.NewProbe(ctx)
		waiter := kit.Spawn(ctx, "waiter", NewWaiter(barista.PID(), 2))

		guest.Send(waiter, &ServeCoffee{Coffee: Akkaccino, Guest: guest.PID()})
		barista.ExpectMessage(&PrepareCoffee{Coffee: Akkaccino, Guest: guest.PID()})
		require.True(t, barista.Sender().Equals(waiter))

		guest.Send(waiter, &PrepareCoffee{Coffee: CaffeJava, Guest: guest.PID()})
		barista.ExpectMessage(&PrepareCoffee{Coffee: CaffeJava, Guest: guest.PID()})

		barista.Send(waiter, &CoffeePrepared{Coffee: CaffeJava, Guest: guest.PID()})
		guest.ExpectMessage(&CoffeeServed{Coffee: CaffeJava})
		require.True(t, guest.Sender().Equals(waiter))
		barista.ExpectNoMessage()
	})
	t.Run("With complaints", func(t *testing.T) {
		kit, ctx := newKit(t)
		barista := kit.NewProbe(ctx)
		guest := kit.NewProbe(ctx)
		waiter := kit.Spawn(ctx, "waiter", NewWaiter(barista.PID(), 1),
			actor.WithSupervisor(supervisor.NewSupervisor(
				supervisor.WithRule(supervisor.OfType[*FrustratedError](), supervisor.StopDirective),
			)))
		guest.Watch(waiter)

		guest.Send(waiter, &Complaint{Coffee: MochaPlay, Guest: guest.PID()})
		barista.ExpectMessage(&PrepareCoffee{Coffee: MochaPlay, Guest: guest.PID()})

		guest.Send(waiter, &Complaint{Coffee: MochaPlay, Guest: guest.PID()})
		guest.ExpectTerminated(waiter)
		barista.ExpectNoMessage()
	})
}

func TestGuest(t *testing.T) {
	t.Run("With orders", func(t *testing.T) {
		kit, ctx := newKit(t)
		house := kit.NewProbe(ctx)
		guest := kit.Spawn(ctx, "guest-1", NewGuest(house.PID(), Akkaccino, 20*time.Millisecond, Unlimited))

		house.ExpectMessage(&ApproveCoffee{Coffee: Akkaccino, Guest: guest})
		house.ExpectNoMessageWithin(50 * time.Millisecond)

		house.Send(guest, &CoffeeServed{Coffee: Akkaccino})
		house.ExpectMessage(&ApproveCoffee{Coffee: Akkaccino, Guest: guest})
	})
	t.Run("With wrong coffee", func(t *testing.T) {
		kit, ctx := newKit(t)
		house := kit.NewProbe(ctx)
		guest := kit.Spawn(ctx, "guest-1", NewGuest(house.PID(), Akkaccino, 20*time.Millisecond, Unlimited))
		house.ExpectMessage(&ApproveCoffee{Coffee: Akkaccino, Guest: guest})

		house.Send(guest, &CoffeeServed{Coffee: CaffeJava})
		house.ExpectMessage(&Complaint{Coffee: Akkaccino, Guest: guest})
		house.ExpectNoMessageWithin(100 * time.Millisecond)
	})
	t.Run("With caffeine limit", func(t *testing.T) {
		kit, ctx := newKit(t)
		house := kit.NewProbe(ctx)
		guest := kit.Spawn(ctx, "guest-1", NewGuest(house.PID(), MochaPlay, 10*time.Millisecond, 1),
			actor.WithSupervisor(supervisor.NewSupervisor(
				supervisor.WithRule(supervisor.OfType[*CaffeineError](), supervisor.StopDirective),
			)))
		house.ExpectMessage(&ApproveCoffee{Coffee: MochaPlay, Guest: guest})
		house.Watch(guest)

		house.Send(guest, &CoffeeServed{Coffee: MochaPlay})
		house.ExpectMessage(&ApproveCoffee{Coffee: MochaPlay, Guest: guest})

		house.Send(guest, &CoffeeServed{Coffee: MochaPlay})
		house.ExpectTerminated(guest)
	})
	t.Run("With pending coffee when stopped", func(t *testing.T) {
		kit, ctx := newKit(t)
		house := kit.NewProbe(ctx)
		guest := kit.Spawn(ctx, "guest-1", NewGuest(house.PID(), Akkaccino, 100*time.Millisecond, Unlimited))
		house.ExpectMessage(&ApproveCoffee{Coffee: Akkaccino, Guest: guest})

		house.Send(guest, &CoffeeServed{Coffee: Akkaccino})
		require.Eventually(t, func() bool {
			return guest.ProcessedCount() >= 2
		}, time.Second, 5*time.Millisecond)
		require.NoError(t, guest.Shutdown(ctx))

		house.ExpectNoMessageWithin(200 * time.Millisecond)
	})
}
