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
	"errors"
	"fmt"
	"strings"
	"time"

	otelmetric "go.opentelemetry.io/otel/metric"

	"github.com/tochemey/coffeehouse/actor"
	"github.com/tochemey/coffeehouse/internal/metric"
	"github.com/tochemey/coffeehouse/supervisor"
)

const (
	baristaName = "barista"
	waiterName  = "waiter"
	guestPrefix = "guest-"
)

// CoffeeHouse seats the guests and approves their orders against the
// caffeine limit. It supervises the Barista, the Waiter and the guests.
type CoffeeHouse struct {
	caffeineLimit                Limit
	limitPolicy                  LimitPolicy
	guestFinishCoffeeDuration    time.Duration
	baristaPrepareCoffeeDuration time.Duration
	baristaAccuracy              int
	waiterMaxComplaintCount      int
	meterProvider                otelmetric.MeterProvider
	newBarista                   func() actor.Actor
	newWaiter                    func(barista *actor.PID) actor.Actor

	barista    *actor.PID
	waiter     *actor.PID
	guestBook  *guestBook
	guestSeq   int
	supervisor *supervisor.Supervisor
	metric     *metric.CoffeeHouseMetric
}

var _ actor.Actor = (*CoffeeHouse)(nil)

// NewCoffeeHouse creates a CoffeeHouse enforcing the given caffeine limit
func NewCoffeeHouse(caffeineLimit Limit, opts ...Option) *CoffeeHouse {
	house := &CoffeeHouse{
		caffeineLimit:                caffeineLimit,
		limitPolicy:                  PerGuestLimit,
		guestFinishCoffeeDuration:    DefaultGuestFinishCoffeeDuration,
		baristaPrepareCoffeeDuration: DefaultBaristaPrepareCoffeeDuration,
		baristaAccuracy:              DefaultBaristaAccuracy,
		waiterMaxComplaintCount:      DefaultWaiterMaxComplaintCount,
	}

	for _, opt := range opts {
		opt.Apply(house)
	}

	if house.newBarista == nil {
		house.newBarista = func() actor.Actor {
			return NewBarista(house.baristaPrepareCoffeeDuration, house.baristaAccuracy)
		}
	}

	if house.newWaiter == nil {
		house.newWaiter = func(barista *actor.PID) actor.Actor {
			return NewWaiter(barista, house.waiterMaxComplaintCount)
		}
	}
	return house
}

// PreStart opens the house and hires the barista and the waiter
func (x *CoffeeHouse) PreStart(ctx *actor.Context) error {
	x.guestBook = newGuestBook()
	x.guestSeq = 0

	chm, err := metric.NewCoffeeHouseMetric(metric.NewProvider(x.meterProvider).Meter())
	if err != nil {
		return err
	}
	x.metric = chm
	x.supervisor = x.newSupervisor()

	if x.barista, err = ctx.Spawn(baristaName, x.newBarista(), actor.WithSupervisor(x.supervisor)); err != nil {
		return fmt.Errorf("failed to hire the barista: %w", err)
	}

	if x.waiter, err = ctx.Spawn(waiterName, x.newWaiter(x.barista), actor.WithSupervisor(x.supervisor)); err != nil {
		return fmt.Errorf("failed to hire the waiter: %w", err)
	}

	ctx.Logger().Debug("CoffeeHouse Open")
	return nil
}

// Receive handles the house messages
func (x *CoffeeHouse) Receive(ctx *actor.ReceiveContext) {
	switch msg := ctx.Message().(type) {
	case *actor.PostStart:
	case *CreateGuest:
		x.seat(ctx, msg)
	case *ApproveCoffee:
		x.approve(ctx, msg)
	case *Complaint:
		guest := msg.Guest
		if guest == nil {
			guest = ctx.Sender()
		}
		ctx.Tell(x.waiter, &Complaint{Coffee: msg.Coffee, Guest: guest})
	case *actor.Terminated:
		if x.guestBook.remove(msg.PID()) {
			ctx.Logger().Debugf("Removed guest %s from bookkeeper", msg.PID().Name())
			x.metric.GuestLeft(ctx.Context())
		}
	case *GetStatus:
		ctx.Response(x.guestBook.snapshot())
	default:
		ctx.Unhandled()
	}
}

// PostStop releases the staff references
func (x *CoffeeHouse) PostStop(*actor.Context) error {
	x.barista = nil
	x.waiter = nil
	return nil
}

func (x *CoffeeHouse) seat(ctx *actor.ReceiveContext, msg *CreateGuest) {
	x.guestSeq++
	name := fmt.Sprintf("%s%d", guestPrefix, x.guestSeq)
	guest := ctx.Spawn(name,
		NewGuest(ctx.Self(), msg.FavoriteCoffee, x.guestFinishCoffeeDuration, msg.CaffeineLimit),
		actor.WithSupervisor(x.supervisor))
	if guest == nil {
		return
	}

	ctx.Watch(guest)
	x.guestBook.add(guest)
	x.metric.GuestArrived(ctx.Context())
}

func (x *CoffeeHouse) approve(ctx *actor.ReceiveContext, msg *ApproveCoffee) {
	if _, ok := x.guestBook.get(msg.Guest); !ok {
		ctx.Logger().Infof("Sorry, but the %s order comes from somebody who is not our guest.", msg.Coffee)
		x.metric.Rejected(ctx.Context(), msg.Coffee.String())
		return
	}

	if !x.guestBook.allowed(msg.Guest, x.caffeineLimit, x.limitPolicy) {
		ctx.Logger().Infof("Sorry, %s, but you have reached your limit.", msg.Guest.Name())
		ctx.Stop(msg.Guest)
		x.metric.Rejected(ctx.Context(), msg.Coffee.String())
		return
	}

	x.guestBook.serve(msg.Guest)
	ctx.Tell(x.waiter, &PrepareCoffee{Coffee: msg.Coffee, Guest: msg.Guest})
	x.metric.Approved(ctx.Context(), msg.Coffee.String())
}

// newSupervisor builds the decision table for the house children.
// A frustrated waiter is restarted and the order it was serving goes
// straight to the barista.
func (x *CoffeeHouse) newSupervisor() *supervisor.Supervisor {
	return supervisor.NewSupervisor(
		supervisor.WithRule(supervisor.OfType[*FrustratedError](), supervisor.RestartDirective, x.replay),
		supervisor.WithRule(supervisor.ChildNamed(baristaName), supervisor.RestartDirective),
		supervisor.WithRule(isGuest, supervisor.StopDirective),
	)
}

func (x *CoffeeHouse) replay(failure *supervisor.Failure) {
	var frustrated *FrustratedError
	if !errors.As(failure.Err, &frustrated) {
		return
	}

	ctx := context.Background()
	if err := x.waiter.Tell(ctx, x.barista, &PrepareCoffee{Coffee: frustrated.Coffee, Guest: frustrated.Guest}); err != nil {
		x.waiter.Logger().Warnf("failed to replay the %s order: %v", frustrated.Coffee, err)
		return
	}
	x.metric.Replayed(ctx, frustrated.Coffee.String())
}

func isGuest(failure *supervisor.Failure) bool {
	return strings.HasPrefix(failure.Name, guestPrefix)
}
