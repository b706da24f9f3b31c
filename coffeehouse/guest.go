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
	"time"

	"github.com/google/uuid"

	"github.com/tochemey/coffeehouse/actor"
)

// Guest orders its favorite coffee, drinks it and orders again until it
// reaches its caffeine limit.
type Guest struct {
	coffeeHouse          *actor.PID
	favoriteCoffee       Coffee
	finishCoffeeDuration time.Duration
	caffeineLimit        Limit

	coffeeCount int
	drinking    string
}

var _ actor.Actor = (*Guest)(nil)

// NewGuest creates a Guest ordering from the given CoffeeHouse
func NewGuest(coffeeHouse *actor.PID, favoriteCoffee Coffee, finishCoffeeDuration time.Duration, caffeineLimit Limit) *Guest {
	return &Guest{
		coffeeHouse:          coffeeHouse,
		favoriteCoffee:       favoriteCoffee,
		finishCoffeeDuration: finishCoffeeDuration,
		caffeineLimit:        caffeineLimit,
	}
}

// PreStart resets the guest state
func (x *Guest) PreStart(*actor.Context) error {
	x.coffeeCount = 0
	x.drinking = ""
	return nil
}

// Receive handles the coffee served to the guest
func (x *Guest) Receive(ctx *actor.ReceiveContext) {
	switch msg := ctx.Message().(type) {
	case *actor.PostStart:
		x.order(ctx)
	case *CoffeeServed:
		if msg.Coffee != x.favoriteCoffee {
			ctx.Logger().Infof("Expected a %s, but got a %s!", x.favoriteCoffee, msg.Coffee)
			ctx.Tell(x.coffeeHouse, &Complaint{Coffee: x.favoriteCoffee, Guest: ctx.Self()})
			return
		}

		x.coffeeCount++
		ctx.Logger().Infof("Enjoying my %d yummy %s!", x.coffeeCount, msg.Coffee)

		reference := uuid.NewString()
		if err := ctx.ScheduleOnce(new(CoffeeFinished), x.finishCoffeeDuration, actor.WithReference(reference)); err != nil {
			ctx.Err(err)
			return
		}
		x.drinking = reference
	case *CoffeeFinished:
		x.drinking = ""
		if x.coffeeCount > int(x.caffeineLimit) {
			ctx.Err(&CaffeineError{Count: x.coffeeCount, Limit: x.caffeineLimit})
			return
		}
		x.order(ctx)
	default:
		ctx.Unhandled()
	}
}

// PostStop cancels the pending CoffeeFinished
func (x *Guest) PostStop(ctx *actor.Context) error {
	if x.drinking != "" {
		// the coffee may have been finished already
		_ = ctx.ActorSystem().CancelSchedule(x.drinking)
		x.drinking = ""
	}
	return nil
}

func (x *Guest) order(ctx *actor.ReceiveContext) {
	ctx.Tell(x.coffeeHouse, &ApproveCoffee{Coffee: x.favoriteCoffee, Guest: ctx.Self()})
}
