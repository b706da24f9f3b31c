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
	"math/rand/v2"
	"time"

	"github.com/tochemey/coffeehouse/actor"
)

// Barista prepares the coffees. It handles one order at a time.
type Barista struct {
	prepareCoffeeDuration time.Duration
	accuracy              int
}

var _ actor.Actor = (*Barista)(nil)

// NewBarista creates a Barista that takes prepareCoffeeDuration per coffee
// and prepares the requested coffee accuracy percent of the time
func NewBarista(prepareCoffeeDuration time.Duration, accuracy int) *Barista {
	return &Barista{
		prepareCoffeeDuration: prepareCoffeeDuration,
		accuracy:              accuracy,
	}
}

// PreStart prepares the barista for work
func (x *Barista) PreStart(*actor.Context) error {
	return nil
}

// Receive handles the orders sent to the barista
func (x *Barista) Receive(ctx *actor.ReceiveContext) {
	switch msg := ctx.Message().(type) {
	case *actor.PostStart:
	case *PrepareCoffee:
		// blocking on purpose: orders are prepared one at a time
		time.Sleep(x.prepareCoffeeDuration)
		ctx.Response(&CoffeePrepared{
			Coffee: x.pick(msg.Coffee),
			Guest:  msg.Guest,
		})
	default:
		ctx.Unhandled()
	}
}

// PostStop handles the barista stop routine
func (x *Barista) PostStop(*actor.Context) error {
	return nil
}

func (x *Barista) pick(coffee Coffee) Coffee {
	if rand.IntN(100) < x.accuracy {
		return coffee
	}
	return RandomOther(coffee)
}
