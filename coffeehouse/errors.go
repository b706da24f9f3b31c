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
	"fmt"

	"github.com/tochemey/coffeehouse/actor"
)

// FrustratedError is raised by a Waiter that received too many complaints.
// It carries the request that was being served so that it can be replayed.
type FrustratedError struct {
	Coffee Coffee
	Guest  *actor.PID
}

var _ error = (*FrustratedError)(nil)

func (e *FrustratedError) Error() string {
	guest := "nobody"
	if e.Guest != nil {
		guest = e.Guest.Name()
	}
	return fmt.Sprintf("waiter is frustrated serving %s to %s", e.Coffee, guest)
}

// CaffeineError is raised by a guest that drank more than its caffeine limit
type CaffeineError struct {
	Count int
	Limit Limit
}

var _ error = (*CaffeineError)(nil)

func (e *CaffeineError) Error() string {
	return fmt.Sprintf("too much caffeine: %d coffees for a limit of %s", e.Count, e.Limit)
}
