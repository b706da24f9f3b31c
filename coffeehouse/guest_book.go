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

// guestBook records the guests seated in the house with the number of
// coffees each of them was served. It is owned by the CoffeeHouse actor
// and only mutated from its Receive, hence no locking.
type guestBook struct {
	guests map[*actor.PID]int
	served int
}

func newGuestBook() *guestBook {
	return &guestBook{
		guests: make(map[*actor.PID]int),
	}
}

// add records a guest. It returns false when the guest is already recorded.
func (b *guestBook) add(guest *actor.PID) bool {
	if _, ok := b.guests[guest]; ok {
		return false
	}
	b.guests[guest] = 0
	return true
}

// remove deletes a guest and reports whether it was recorded
func (b *guestBook) remove(guest *actor.PID) bool {
	if _, ok := b.guests[guest]; !ok {
		return false
	}
	delete(b.guests, guest)
	return true
}

// get returns the number of coffees served to the guest
func (b *guestBook) get(guest *actor.PID) (int, bool) {
	count, ok := b.guests[guest]
	return count, ok
}

// serve accounts one more coffee for the guest
func (b *guestBook) serve(guest *actor.PID) {
	b.guests[guest]++
	b.served++
}

// allowed reports whether the guest may be served one more coffee
func (b *guestBook) allowed(guest *actor.PID, limit Limit, policy LimitPolicy) bool {
	count, ok := b.guests[guest]
	if !ok {
		return false
	}

	if policy == SharedLimit {
		return b.served < int(limit)
	}
	return count < int(limit)
}

// Len returns the number of guests seated
func (b *guestBook) Len() int {
	return len(b.guests)
}

// Served returns the number of coffees served since the house opened
func (b *guestBook) Served() int {
	return b.served
}

func (b *guestBook) snapshot() *Status {
	guests := make(map[string]int, b.Len())
	for guest, count := range b.guests {
		guests[guest.Name()] = count
	}
	return &Status{
		Guests: guests,
		Served: b.Served(),
	}
}
