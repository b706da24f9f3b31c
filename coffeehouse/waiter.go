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
	"github.com/tochemey/coffeehouse/actor"
)

// Waiter relays the orders to the Barista and serves the prepared coffees
// to the guests. It fails with a FrustratedError once the guests complained
// more than it can bear.
type Waiter struct {
	barista           *actor.PID
	maxComplaintCount int
	complaintCount    int
}

var _ actor.Actor = (*Waiter)(nil)

// NewWaiter creates a Waiter
func NewWaiter(barista *actor.PID, maxComplaintCount int) *Waiter {
	return &Waiter{
		barista:           barista,
		maxComplaintCount: maxComplaintCount,
	}
}

// PreStart resets the complaint counter
func (x *Waiter) PreStart(*actor.Context) error {
	x.complaintCount = 0
	return nil
}

// Receive relays orders to the barista and coffees to the guests
func (x *Waiter) Receive(ctx *actor.ReceiveContext) {
	switch msg := ctx.Message().(type) {
	case *actor.PostStart:
	case *PrepareCoffee:
		ctx.Tell(x.barista, &PrepareCoffee{Coffee: msg.Coffee, Guest: msg.Guest})
	case *ServeCoffee:
		ctx.Tell(x.barista, &PrepareCoffee{Coffee: msg.Coffee, Guest: msg.Guest})
	case *CoffeePrepared:
		if msg.Guest == nil {
			ctx.Logger().Warnf("no guest to serve the %s to", msg.Coffee)
			return
		}
		ctx.Tell(msg.Guest, &CoffeeServed{Coffee: msg.Coffee})
	case *Complaint:
		if x.complaintCount == x.maxComplaintCount {
			ctx.Err(&FrustratedError{Coffee: msg.Coffee, Guest: msg.Guest})
			return
		}
		x.complaintCount++
		ctx.Tell(x.barista, &PrepareCoffee{Coffee: msg.Coffee, Guest: msg.Guest})
	default:
		ctx.Unhandled()
	}
}

// PostStop handles the waiter stop routine
func (x *Waiter) PostStop(*actor.Context) error {
	return nil
}
