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

// CreateGuest asks the CoffeeHouse to seat a new guest
type CreateGuest struct {
	FavoriteCoffee Coffee
	CaffeineLimit  Limit
}

// ApproveCoffee is a guest order checked against the caffeine limit
type ApproveCoffee struct {
	Coffee Coffee
	Guest  *actor.PID
}

// PrepareCoffee asks for a coffee to be prepared for the guest
type PrepareCoffee struct {
	Coffee Coffee
	Guest  *actor.PID
}

// ServeCoffee asks the Waiter to serve a coffee to the guest
type ServeCoffee struct {
	Coffee Coffee
	Guest  *actor.PID
}

// CoffeePrepared is the Barista reply once a coffee is ready
type CoffeePrepared struct {
	Coffee Coffee
	Guest  *actor.PID
}

// CoffeeServed is delivered to the guest with the coffee
type CoffeeServed struct {
	Coffee Coffee
}

// CoffeeFinished is the message a guest schedules to itself while drinking
type CoffeeFinished struct{}

// Complaint is sent by a guest served the wrong coffee
type Complaint struct {
	Coffee Coffee
	Guest  *actor.PID
}

// GetStatus requests a Status from the CoffeeHouse
type GetStatus struct{}

// Status is a snapshot of the CoffeeHouse guest book
type Status struct {
	// Guests maps the seated guests names to the coffees they were served
	Guests map[string]int
	// Served is the number of coffees approved since the house opened
	Served int
}
